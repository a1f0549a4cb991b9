package theme

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/petsit/pkg/calendar"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer   FooterTheme
	Panel    PanelTheme
	Form     FormTheme
	Calendar calendar.Options
	Map      MapTheme
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// FormTheme styles booking form fields.
type FormTheme struct {
	Label   lipgloss.Style
	Value   lipgloss.Style
	Focused lipgloss.Style
	Muted   lipgloss.Style
	Ready   lipgloss.Style
	Invalid lipgloss.Style
}

// MapTheme styles the sitter map grid.
type MapTheme struct {
	Land     lipgloss.Style
	Marker   lipgloss.Style
	Selected lipgloss.Style
	Legend   lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: muted,
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Form: FormTheme{
			Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Width(7),
			Value:   lipgloss.NewStyle(),
			Focused: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Muted:   muted,
			Ready:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Invalid: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		},
		Calendar: calendar.DefaultOptions(),
		Map: MapTheme{
			Land:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			Marker:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
			Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).Reverse(true),
			Legend:   muted,
		},
	}
}

// Plain returns a theme without colors, used by tests and non-TTY output.
func Plain() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Footer:   FooterTheme{Help: plain, Status: plain, Error: plain},
		Panel:    PanelTheme{Frame: plain, Title: plain, Body: plain},
		Form:     FormTheme{Label: plain.Width(7), Value: plain, Focused: plain, Muted: plain, Ready: plain, Invalid: plain},
		Calendar: calendar.PlainOptions(),
		Map:      MapTheme{Land: plain, Marker: plain, Selected: plain, Legend: plain},
	}
}
