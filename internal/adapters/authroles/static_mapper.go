// Package authroles maps identity provider groups onto application roles.
package authroles

import (
	domainauth "github.com/target/invoice-dashboard/internal/domain/auth"
)

// StaticRoleMapper maps groups by exact membership. An empty UserGroup means
// every authenticated identity is at least a user.
type StaticRoleMapper struct {
	AdminGroup string
	UserGroup  string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	for _, g := range groups {
		if m.AdminGroup != "" && g == m.AdminGroup {
			return domainauth.RoleAdmin
		}
	}
	if m.UserGroup == "" {
		return domainauth.RoleUser
	}
	for _, g := range groups {
		if g == m.UserGroup {
			return domainauth.RoleUser
		}
	}
	return domainauth.RoleGuest
}
