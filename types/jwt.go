package types

import "github.com/golang-jwt/jwt/v5"

// Claims represents the JWT claims. Role travels inside the token so handlers
// receive the caller's role from a verified claim instead of a client-held
// session flag.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
