package commands

import (
	"testing"
)

func TestCommandTree(t *testing.T) {
	root := New()
	if root.Use != "petsit" {
		t.Fatalf("unexpected root %q", root.Use)
	}
	want := map[string][]string{
		"book":       {"sitter", "date", "start", "end", "for", "owner", "notes", "interactive", "view", "json"},
		"bookings":   {"sitter", "month", "all", "page", "size", "show-id", "json"},
		"cancel":     {"purge", "json"},
		"confirm":    {"json"},
		"sitters":    {"view", "city", "print", "json"},
		"demo":       nil,
		"info":       nil,
		"version":    {"short", "output"},
		"completion": nil,
	}
	for name, flags := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("expected %s command, got %v %v", name, cmd, err)
		}
		for _, f := range flags {
			if cmd.Flags().Lookup(f) == nil {
				t.Fatalf("%s: missing --%s", name, f)
			}
		}
	}
	if confirm, _, _ := root.Find([]string{"confirm"}); confirm.Flags().Lookup("purge") != nil {
		t.Fatalf("confirm: unexpected --purge")
	}
	if root.PersistentFlags().Lookup("verbose") == nil {
		t.Fatalf("expected persistent --verbose")
	}
}

func TestChangeCommandsNeedAnID(t *testing.T) {
	root := New()
	cmd, _, _ := root.Find([]string{"cancel"})
	if err := cmd.Args(cmd, nil); err == nil {
		t.Fatalf("expected an error without a booking id")
	}
	if err := cmd.Args(cmd, []string{"1f3a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
