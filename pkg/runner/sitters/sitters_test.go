package sitters

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/petsit/pkg/app"
	"tableflip.dev/petsit/pkg/sitter"
	"tableflip.dev/petsit/pkg/state/viewmode"
	"tableflip.dev/petsit/pkg/store"
)

type dirConfig string

func (d dirConfig) BasePath() string       { return string(d) }
func (dirConfig) View() string             { return "list" }
func (dirConfig) PageSize() int            { return 10 }
func (dirConfig) LogFile() string          { return "" }
func (dirConfig) LogLevel() string         { return "info" }
func (dirConfig) Location() *time.Location { return time.UTC }

func newService(t *testing.T) *app.Service {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	p, err := store.Load(dirConfig(t.TempDir()), nil)
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	svc := &app.Service{Persistence: p}
	if _, err := svc.SeedDemo(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return svc
}

func TestListView(t *testing.T) {
	var out bytes.Buffer
	s := &Sitters{Service: newService(t), Out: &out}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("sitters: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Sitters - 7 sitters") || !strings.Contains(got, "Dev Patel") {
		t.Fatalf("unexpected list:\n%s", got)
	}
}

func TestMapViewFiltered(t *testing.T) {
	var out bytes.Buffer
	s := &Sitters{Service: newService(t), City: "port", Mode: viewmode.New(viewmode.Map), Out: &out}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("sitters: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Sitters - 1 sitter\n") || !strings.Contains(got, "A Ava Moreno · Portland") {
		t.Fatalf("unexpected map:\n%s", got)
	}
	if strings.Contains(got, "Ben Okafor") {
		t.Fatalf("city filter leaked:\n%s", got)
	}
}

func TestJSON(t *testing.T) {
	var out bytes.Buffer
	s := &Sitters{Service: newService(t), JSON: true, Interactive: true, Out: &out}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("sitters: %v", err)
	}
	var got []sitter.Sitter
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 7 || got[0].ID != "ava" {
		t.Fatalf("unexpected sitters %v", got)
	}
}
