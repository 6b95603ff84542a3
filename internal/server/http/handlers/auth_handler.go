package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/restaurant/internal/server/http/dto"
	"github.com/polkiloo/restaurant/internal/server/http/middleware"
)

// AuthHandler processes sign-up and sign-in.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// SignUp handles POST /signup.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgMalformedBody)
		return
	}

	user, err := h.facade.SignUp(c.Request.Context(), req.Mail, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, dto.NewUserResponse(user))
}

// SignIn handles POST /signin.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgMalformedBody)
		return
	}

	user, token, err := h.facade.SignIn(c.Request.Context(), req.Mail, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.Response{
		State:   true,
		Message: "logged in",
		Data:    dto.SignInResponse{Token: token, User: dto.NewUserResponse(user)},
	})
}
