package dto

import "github.com/polkiloo/restaurant/internal/domain/model"

// AuthRequest describes mail/password payload.
type AuthRequest struct {
	Mail     string `json:"mail"`
	Password string `json:"password"`
}

// UserResponse exposes a user without credentials.
type UserResponse struct {
	ID   string `json:"id"`
	Mail string `json:"mail"`
	Role string `json:"role"`
}

// SignInResponse carries the issued token.
type SignInResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID.String(), Mail: u.Mail, Role: string(u.Role)}
}
