package service

import (
	"slices"

	"uhs-recruit/internal/model"

	"github.com/google/uuid"
)

type PrincipalKind string

const (
	PrincipalAdmin PrincipalKind = "admin"
	PrincipalUser  PrincipalKind = "user"
)

// Principal is the authenticated caller. Exactly one of Admin / User is set, matching Kind.
type Principal struct {
	Kind  PrincipalKind
	Role  model.Role
	Admin *model.AdminUser
	User  *model.User
}

func (p *Principal) ID() uuid.UUID {
	if p.Admin != nil {
		return p.Admin.ID
	}
	if p.User != nil {
		return p.User.ID
	}
	return uuid.Nil
}

func (p *Principal) IsSuperAdmin() bool {
	return p.Role == model.RoleSuperAdmin
}

// VendorScope is the tenant filter for candidate data: nil means every tenant.
func (p *Principal) VendorScope() *uuid.UUID {
	if p.IsSuperAdmin() {
		return nil
	}
	id := p.ID()
	return &id
}

// PrincipalView is the public shape of a principal in session responses.
type PrincipalView struct {
	ID     uuid.UUID  `json:"id"`
	Email  string     `json:"email"`
	Name   string     `json:"name"`
	Avatar string     `json:"avatar,omitempty"`
	Role   model.Role `json:"role"`
	Kind   string     `json:"kind"`
}

func (p *Principal) View() PrincipalView {
	v := PrincipalView{Role: p.Role, Kind: string(p.Kind)}
	switch {
	case p.Admin != nil:
		v.ID, v.Email, v.Name, v.Avatar = p.Admin.ID, p.Admin.Email, p.Admin.Name, p.Admin.Avatar
	case p.User != nil:
		v.ID, v.Email, v.Name, v.Avatar = p.User.ID, p.User.Email, p.User.Name, p.User.Avatar
	}
	return v
}

// Authorize passes when the principal's role is one of roles.
func Authorize(p *Principal, roles ...model.Role) error {
	if p == nil {
		return newError(ErrUnauthorized, "Unauthorized")
	}
	if slices.Contains(roles, p.Role) {
		return nil
	}
	return newError(ErrForbidden, "Forbidden")
}

// requireAdmin narrows p to an admin-area caller.
func requireAdmin(p *Principal) error {
	return Authorize(p, model.AdminRoles...)
}
