package models

import "github.com/golang-jwt/jwt/v5"

// UserRole is the role claim carried by access tokens.
type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RoleScheduler UserRole = "SCHEDULER"
	RoleViewer    UserRole = "VIEWER"
)

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	Email  string   `json:"email"`
	jwt.RegisteredClaims
}
