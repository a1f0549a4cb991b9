package account

import (
	"strings"
	"testing"
)

func TestParseRoleConventions(t *testing.T) {
	cases := map[string]Role{
		"PET_OWNER":  RoleOwner,
		"petOwner":   RoleOwner,
		"pet-owner":  RoleOwner,
		"Pet Owner":  RoleOwner,
		"Owner":      RoleOwner,
		"PET_SITTER": RoleSitter,
		"petSitter":  RoleSitter,
		"sitter":     RoleSitter,
		"ADMIN":      RoleAdmin,
		" admin ":    RoleAdmin,
	}
	for in, want := range cases {
		got, err := ParseRole(in)
		if err != nil {
			t.Fatalf("ParseRole(%q): unexpected error %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseRole(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseRoleUnknown(t *testing.T) {
	_, err := ParseRole("walker")
	if err == nil {
		t.Fatalf("expected error for unknown role")
	}
	if !strings.Contains(err.Error(), "owner, sitter, admin") {
		t.Fatalf("expected the error to list the roles, got %v", err)
	}
	if got := NormalizeRole("walker"); got != RoleOwner {
		t.Fatalf("expected owner fallback, got %q", got)
	}
}

func TestRoleTitle(t *testing.T) {
	if RoleSitter.Title() != "Sitter" || Role("").Title() != "" {
		t.Fatalf("unexpected titles")
	}
}
