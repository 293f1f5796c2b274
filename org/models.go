// Package org defines the tenant-side entities: organizations, users, and
// the memberships that bind an actor to an organization with a role.
package org

import (
	"github.com/xraph/certpay/id"
	"github.com/xraph/certpay/types"
)

// Role is the authorization level of a member within an organization.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// WriteRoles are the roles permitted to perform mutating payroll operations.
var WriteRoles = []Role{RoleOwner, RoleAdmin}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// In reports whether r appears in allowed.
func (r Role) In(allowed []Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// Organization is a contractor tenant. Immutable after creation.
type Organization struct {
	types.Entity
	ID   id.OrganizationID `json:"id"`
	Name string            `json:"name"`
}

// User is an actor identity. One record per actor.
type User struct {
	types.Entity
	ID    id.UserID `json:"id"`
	Email string    `json:"email"`
}

// Membership binds a user to an organization with a role.
// Unique per (organization, user) pair.
type Membership struct {
	types.Entity
	OrganizationID id.OrganizationID `json:"organization_id"`
	UserID         id.UserID         `json:"user_id"`
	Role           Role              `json:"role"`
}
