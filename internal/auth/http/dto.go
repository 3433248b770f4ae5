package http

import "time"

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Code string `json:"code" binding:"trimmedmin=1"`
}

// LoginResponse is the response for POST /auth/login. SessionToken is the
// cookie value, usable as a bearer token by non-browser clients.
type LoginResponse struct {
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Redirect     string    `json:"redirect"`
}
