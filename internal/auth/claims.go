package auth

import "github.com/golang-jwt/jwt/v5"

// Claims is the payload of both access and refresh tokens.
// Subject carries the user's email; UserID is the "id" claim.
type Claims struct {
	jwt.RegisteredClaims

	UserID int64 `json:"id"`
}
