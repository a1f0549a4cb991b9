package sitters

import (
	"context"
	"encoding/json"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/petsit/pkg/app"
	"tableflip.dev/petsit/pkg/printers"
	"tableflip.dev/petsit/pkg/runner/book"
	"tableflip.dev/petsit/pkg/state/viewmode"
	"tableflip.dev/petsit/pkg/tui/sitterview"
)

const (
	mapWidth  = 60
	mapHeight = 14
)

// Sitters lists or browses the sitter directory.
type Sitters struct {
	Service *app.Service
	City    string
	Mode    *viewmode.State
	// Interactive opens the browser; choosing a sitter continues to Book.
	Interactive bool
	Book        *book.Book
	JSON        bool
	Out         io.Writer
}

func (s *Sitters) Do(ctx context.Context) error {
	if s.Mode == nil {
		s.Mode = viewmode.NewDefault()
	}
	all, err := s.Service.Sitters(ctx, s.City)
	if err != nil {
		return err
	}
	out := s.Out
	if out == nil {
		out = color.Output
	}

	if s.Interactive && !s.JSON {
		chosen, err := sitterview.Run(all, s.Mode)
		if err != nil || chosen == nil {
			return err
		}
		if s.Book == nil {
			return nil
		}
		next := *s.Book
		next.Service = s.Service
		next.SitterID = chosen.ID
		next.Out = out
		return next.Do(ctx)
	}

	if s.JSON {
		return json.NewEncoder(out).Encode(all)
	}
	pp := &printers.PrettyPrint{Out: out}
	pp.TitleWithCount("Sitters", len(all), "sitter")
	if s.Mode.IsMapView() {
		pp.SitterMap(mapWidth, mapHeight, all...)
		return nil
	}
	pp.Sitters(all...)
	return nil
}
