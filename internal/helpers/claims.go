package helpers

import "github.com/golang-jwt/jwt/v5"

// OrganizerClaims are the claims read from an organizer's access token.
type OrganizerClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func (oc *OrganizerClaims) IsAdmin() bool {
	return oc.Role == "admin"
}

func (oc *OrganizerClaims) GetSafeRole() string {
	if oc.Role == "" {
		return "organizer"
	}
	return oc.Role
}
