package auth

import "github.com/golang-jwt/jwt/v5"

// Claims are the JWT claims accepted by the loan risk API.
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Role constants
const (
	RoleUnderwriter = "underwriter"
	RoleAnalyst     = "analyst"
	RoleAPIClient   = "api_client"
)
