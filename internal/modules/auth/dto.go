package auth

import "hostelfinder/internal/domain"

type RegisterRequest struct {
	Name     string          `json:"name" validate:"required,max=100"`
	Email    string          `json:"email" validate:"required,email,max=100"`
	Password string          `json:"password" validate:"required,min=8,max=72"`
	Phone    string          `json:"phone" validate:"required,len=10,number"`
	UserType domain.UserType `json:"user_type" validate:"omitempty,oneof=seeker owner"`
}

// LoginForm is the OAuth2 password-flow form; username carries the email.
type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
