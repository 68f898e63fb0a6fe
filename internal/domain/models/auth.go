package models

import "time"

// AccessToken is returned by a successful admin login.
type AccessToken struct {
	Token     string    `json:"access_token"`
	Type      string    `json:"token_type"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}
