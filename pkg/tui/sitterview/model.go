// Package sitterview browses sitters as a list or on a map.
package sitterview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/petsit/pkg/sitter"
	"tableflip.dev/petsit/pkg/state/viewmode"
	"tableflip.dev/petsit/pkg/tui/theme"
)

const (
	mapWidth  = 48
	mapHeight = 12
	// rows kept below the list for the selected sitter's details
	detailRows = 5
)

// Model is the sitter browser.
type Model struct {
	list    list.Model
	mode    *viewmode.State
	sitters []sitter.Sitter
	theme   theme.Theme

	width  int
	height int

	status string
	chosen *sitter.Sitter
	cancel func()
}

// New constructs a browser over sitters. mode is shared with the caller so
// the chosen view survives the program; nil starts in list view.
func New(sitters []sitter.Sitter, mode *viewmode.State, th *theme.Theme) *Model {
	if mode == nil {
		mode = viewmode.NewDefault()
	}
	t := theme.Default()
	if th != nil {
		t = *th
	}

	items := make([]list.Item, 0, len(sitters))
	for _, s := range sitters {
		items = append(items, s)
	}
	l := list.New(items, list.NewDefaultDelegate(), 40, 20)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	m := &Model{
		list:    l,
		mode:    mode,
		sitters: sitters,
		theme:   t,
	}
	m.cancel = mode.Subscribe(func(next viewmode.Mode) {
		m.status = fmt.Sprintf("Switched to %s view", next)
	})
	return m
}

// Run launches the browser and returns the sitter picked with enter, or nil.
func Run(sitters []sitter.Sitter, mode *viewmode.State) (*sitter.Sitter, error) {
	m := New(sitters, mode, nil)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return nil, err
	}
	return m.Chosen(), nil
}

// Close stops listening to the shared view mode.
func (m *Model) Close() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Chosen returns the sitter picked with enter.
func (m *Model) Chosen() *sitter.Sitter { return m.chosen }

// Mode returns the view mode state.
func (m *Model) Mode() *viewmode.State { return m.mode }

// Selected returns the highlighted sitter.
func (m *Model) Selected() (sitter.Sitter, bool) {
	s, ok := m.list.SelectedItem().(sitter.Sitter)
	return s, ok
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		m.list.SetSize(v.Width, max(v.Height-detailRows-3, 4))
		return m, nil
	case tea.KeyPressMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		if handled, cmd := m.handleKey(v); handled {
			return m, cmd
		}
		if m.mode.IsMapView() {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return true, tea.Quit
	case "esc":
		if m.list.FilterState() == list.FilterApplied {
			return false, nil
		}
		return true, tea.Quit
	case "v":
		m.mode.Toggle()
		return true, nil
	case "l":
		m.mode.SwitchToList()
		return true, nil
	case "m":
		m.mode.SwitchToMap()
		return true, nil
	case "enter":
		if s, ok := m.Selected(); ok {
			m.chosen = &s
			return true, tea.Quit
		}
		return true, nil
	}
	if !m.mode.IsMapView() {
		return false, nil
	}
	switch msg.String() {
	case "down", "right", "j", "n", "tab":
		m.step(1)
		return true, nil
	case "up", "left", "k", "h", "p", "shift+tab":
		m.step(-1)
		return true, nil
	}
	return false, nil
}

func (m *Model) step(delta int) {
	n := len(m.list.VisibleItems())
	if n == 0 {
		return
	}
	m.list.Select((m.list.Index() + delta + n) % n)
}

// View implements tea.Model.
func (m *Model) View() string {
	th := m.theme
	header := th.Panel.Title.Render(fmt.Sprintf("Sitters · %s view (%d)", m.mode.Mode(), len(m.sitters)))

	var body string
	switch {
	case len(m.sitters) == 0:
		body = th.Form.Muted.Render("No sitters yet. Run `petsit demo` to add some.")
	case m.mode.IsMapView():
		body = m.renderMap()
	default:
		body = lipgloss.JoinVertical(lipgloss.Left, m.list.View(), "", m.renderDetail())
	}

	footer := "v toggle view · l list · m map · enter book · q quit"
	if m.mode.IsMapView() {
		footer = "n/p or arrows select · " + footer
	} else {
		footer = "/ filter · " + footer
	}
	lines := []string{header, "", body, ""}
	if m.status != "" {
		lines = append(lines, th.Footer.Status.Render(m.status))
	}
	lines = append(lines, th.Footer.Help.Render(footer))
	return strings.Join(lines, "\n")
}

func (m *Model) renderDetail() string {
	s, ok := m.Selected()
	if !ok {
		return ""
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	th := m.theme
	lines := []string{
		th.Panel.Title.Render(s.Name) + "  " + th.Form.Muted.Render(s.Description()),
	}
	if role := s.Role.Title(); role != "" {
		lines[0] += "  " + th.Form.Muted.Render("["+role+"]")
	}
	if s.Bio != "" {
		lines = append(lines, th.Panel.Body.Render(wordwrap.String(s.Bio, max(width-4, 20))))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderMap() string {
	th := m.theme.Map
	items := m.list.VisibleItems()
	visible := make([]sitter.Sitter, 0, len(items))
	for _, it := range items {
		if s, ok := it.(sitter.Sitter); ok {
			visible = append(visible, s)
		}
	}
	selected, _ := m.Selected()

	grid := make([][]string, mapHeight)
	for y := range grid {
		grid[y] = make([]string, mapWidth)
		for x := range grid[y] {
			grid[y][x] = th.Land.Render("·")
		}
	}
	for i, p := range sitter.Project(visible, mapWidth, mapHeight) {
		style := th.Marker
		if visible[i].ID == selected.ID {
			style = th.Selected
		}
		grid[p.Y][p.X] = style.Render(visible[i].Initial())
	}
	rows := make([]string, mapHeight)
	for y, row := range grid {
		rows[y] = strings.Join(row, "")
	}

	legend := make([]string, 0, len(visible))
	for _, s := range visible {
		marker := "  "
		if s.ID == selected.ID {
			marker = "> "
		}
		legend = append(legend, th.Legend.Render(fmt.Sprintf("%s%s %s · %s", marker, s.Initial(), s.Name, s.City)))
	}
	frame := m.theme.Panel.Frame.Render(strings.Join(rows, "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, frame, "  ", strings.Join(legend, "\n"))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
