package httpapi

import (
	"time"

	"github.com/dmitrijs2005/tpforum/internal/server/models"
)

const (
	actionRegister = "register"
	actionLogin    = "login"
)

type authRequest struct {
	Action   string `json:"action"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userDTO struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url"`
	CreatedAt *string `json:"created_at,omitempty"`
}

type authResponse struct {
	User         userDTO `json:"user"`
	SessionToken string  `json:"session_token"`
	Message      string  `json:"message"`
}

type sessionResponse struct {
	User userDTO `json:"user"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toUserDTO(u *models.User) userDTO {
	dto := userDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
	}
	if !u.CreatedAt.IsZero() {
		ts := u.CreatedAt.UTC().Format(time.RFC3339)
		dto.CreatedAt = &ts
	}
	return dto
}
