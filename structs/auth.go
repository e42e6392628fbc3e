package structs

import (
	"time"
)

// AuthClaims are the claims of a verified dashboard session token.
type AuthClaims struct {
	Sub      string    `json:"sub"`
	Email    string    `json:"email"`
	Verified bool      `json:"email_verified"`
	Exp      time.Time `json:"exp"`
}
