package postgres

import (
	"context"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	const query = `INSERT INTO users (id, mail, password_hash, role, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.storage.pool.Exec(ctx, query, user.ID, user.Mail, user.PasswordHash, string(user.Role), user.CreatedAt)
	return mapError(err)
}

func (r *userRepository) GetByMail(ctx context.Context, mail string) (*model.User, error) {
	const query = `SELECT id, mail, password_hash, role, created_at FROM users WHERE mail=$1`
	var (
		u    model.User
		role string
	)
	err := r.storage.pool.QueryRow(ctx, query, mail).Scan(&u.ID, &u.Mail, &u.PasswordHash, &role, &u.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	u.Role = model.Role(role)
	return &u, nil
}
