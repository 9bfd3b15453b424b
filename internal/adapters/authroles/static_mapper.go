package authroles

import (
	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
)

// StaticRoleMapper translates backend role names to application roles by
// simple string membership. The backend's defaults are "admin" and
// "usuario"; deployments with different vocabularies override the names via
// config. Unknown names are dropped.
type StaticRoleMapper struct {
	AdminRole string
	UserRole  string
}

func (m StaticRoleMapper) Map(names []string) []domainauth.Role {
	adminName := m.AdminRole
	if adminName == "" {
		adminName = string(domainauth.RoleAdmin)
	}
	userName := m.UserRole
	if userName == "" {
		userName = string(domainauth.RoleUser)
	}

	var roles []domainauth.Role
	for _, n := range names {
		switch n {
		case adminName:
			roles = append(roles, domainauth.RoleAdmin)
		case userName:
			roles = append(roles, domainauth.RoleUser)
		}
	}
	return roles
}
