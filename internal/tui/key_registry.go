package tui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ViewMode selects which bindings apply. Reordering is meaningless while a
// filter hides part of a column, so filtered views register fewer keys.
type ViewMode int

const (
	ViewModeBoard ViewMode = iota
	ViewModeFiltered
)

type KeyHandler func(m DashboardModel, key string) (DashboardModel, tea.Cmd, bool)

// KeyBinding maps one key to a handler. Label, when set, replaces Key in
// the help line so paired keys can share one entry.
type KeyBinding struct {
	Key         string
	Label       string
	Handler     KeyHandler
	Description string
	ViewModes   []ViewMode
	Priority    int
}

func (b KeyBinding) AppliesToView(mode ViewMode) bool {
	if len(b.ViewModes) == 0 {
		return true
	}
	for _, v := range b.ViewModes {
		if v == mode {
			return true
		}
	}
	return false
}

type HandlerRegistry struct {
	bindings []KeyBinding
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

func (r *HandlerRegistry) Register(b KeyBinding) {
	r.bindings = append(r.bindings, b)
	sort.SliceStable(r.bindings, func(i, j int) bool {
		return r.bindings[i].Priority > r.bindings[j].Priority
	})
}

func (r *HandlerRegistry) Handle(m DashboardModel, key string) (DashboardModel, tea.Cmd, bool) {
	mode := m.viewMode()
	for _, b := range r.bindings {
		if b.Key == key && b.AppliesToView(mode) {
			next, cmd, handled := b.Handler(m, key)
			if handled {
				return next, cmd, true
			}
		}
	}
	return m, nil, false
}

func (r *HandlerRegistry) GetBindingsForView(mode ViewMode) []KeyBinding {
	var out []KeyBinding
	for _, b := range r.bindings {
		if b.AppliesToView(mode) {
			out = append(out, b)
		}
	}
	return out
}

func (r *HandlerRegistry) HelpForView(mode ViewMode) string {
	bindings := r.GetBindingsForView(mode)
	seen := make(map[string]bool)
	var parts []string
	for _, b := range bindings {
		if b.Description == "" {
			continue
		}
		if seen[b.Description] {
			continue
		}
		seen[b.Description] = true
		label := b.Key
		if b.Label != "" {
			label = b.Label
		}
		parts = append(parts, "["+label+"]"+b.Description)
	}
	return strings.Join(parts, "|")
}
