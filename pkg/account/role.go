// Package account normalizes marketplace account roles.
package account

import (
	"fmt"
	"strings"
	"unicode"
)

// Role is the canonical account role.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleSitter Role = "sitter"
	RoleAdmin  Role = "admin"
)

// aliases maps squashed role names (lowercase, separators removed) to roles.
var aliases = map[string]Role{
	"owner":         RoleOwner,
	"petowner":      RoleOwner,
	"user":          RoleOwner,
	"customer":      RoleOwner,
	"sitter":        RoleSitter,
	"petsitter":     RoleSitter,
	"provider":      RoleSitter,
	"admin":         RoleAdmin,
	"administrator": RoleAdmin,
	"moderator":     RoleAdmin,
}

// ParseRole maps role names written in any common convention
// ("PET_OWNER", "petOwner", "pet-owner", "Pet Owner") to a Role.
func ParseRole(name string) (Role, error) {
	key := squash(name)
	if r, ok := aliases[key]; ok {
		return r, nil
	}
	names := make([]string, 0, len(Roles()))
	for _, r := range Roles() {
		names = append(names, r.String())
	}
	return "", fmt.Errorf("account: unknown role %q (want one of %s)", name, strings.Join(names, ", "))
}

// NormalizeRole is ParseRole falling back to RoleOwner for unknown names.
func NormalizeRole(name string) Role {
	r, err := ParseRole(name)
	if err != nil {
		return RoleOwner
	}
	return r
}

// Roles lists the canonical roles.
func Roles() []Role {
	return []Role{RoleOwner, RoleSitter, RoleAdmin}
}

func (r Role) String() string { return string(r) }

// Title renders the role for display.
func (r Role) Title() string {
	if r == "" {
		return ""
	}
	s := string(r)
	return strings.ToUpper(s[:1]) + s[1:]
}

func squash(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		if r == '_' || r == '-' || r == '.' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
