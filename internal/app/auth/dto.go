package auth

import "fleurish/internal/app/ports"

type CredentialsRequest struct {
	SessionID string
	Email     string
	Password  string
}

type SessionRequest struct {
	SessionID string
}

type UserResponse struct {
	User ports.User `json:"user"`
}
