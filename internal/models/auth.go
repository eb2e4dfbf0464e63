package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleMember UserRole = "MEMBER"
)

// RoleFor maps the member admin flag onto an RBAC role.
func RoleFor(m *Member) UserRole {
	if m != nil && m.IsAdmin {
		return RoleAdmin
	}
	return RoleMember
}

// LoginRequest identifies a member by MHT ID plus their registered email or mobile.
type LoginRequest struct {
	MhtID      string `json:"mhtId" validate:"required"`
	Identifier string `json:"identifier" validate:"required"`
}

// LoginResponse returns the issued token and member info.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresIn   int64     `json:"expiresIn"`
	Member      Member    `json:"member"`
	IssuedAt    time.Time `json:"issuedAt"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	MemberID string   `json:"memberId"`
	MhtID    string   `json:"mhtId"`
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token belongs to an admin.
func (c *JWTClaims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
