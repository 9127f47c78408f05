package model

import "github.com/google/uuid"

// Principal is the authenticated caller extracted from the access token.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

func (p Principal) IsAdmin() bool      { return p.Role == RoleAdmin }
func (p Principal) IsAccountant() bool { return p.Role == RoleAccountant }
func (p Principal) IsAgencyHead() bool { return p.Role == RoleAgencyHead }
