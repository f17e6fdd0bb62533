package auth

import "errors"

type RegisterDTO struct {
	Username    string `json:"username" binding:"required,min=3,max=32"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	Email       string `json:"email"    binding:"omitempty,email"`
	DisplayName string `json:"displayName"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

var (
	errBadCredentials = errors.New("invalid username or password")
	errUsernameTaken  = errors.New("username already taken")
)
