package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akyairhashvil/cohortops/internal/config"
	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/service"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SessionState defines the high-level mode of the application.
type SessionState int

const (
	StateNaming SessionState = iota
	StateDashboard
)

// MainModel is the root bubbletea model. A member who has never set a
// display name is asked for one before the dashboard opens.
type MainModel struct {
	state     SessionState
	ctx       context.Context
	svc       *service.Services
	me        models.Member
	opts      Options
	textInput textinput.Model
	dashboard DashboardModel
	err       error
	width     int
	height    int
}

func NewMainModel(ctx context.Context, svc *service.Services, me models.Member, opts Options) MainModel {
	m := MainModel{ctx: ctx, svc: svc, me: me, opts: opts}
	if NeedsName(me) {
		m.state = StateNaming
		ti := textinput.New()
		ti.Placeholder = "Your name"
		ti.Focus()
		ti.CharLimit = config.MaxInputLength
		ti.Width = 30
		m.textInput = ti
		return m
	}
	m.state = StateDashboard
	m.dashboard = NewDashboardModel(ctx, svc, me, opts)
	return m
}

// NeedsName reports whether the member still carries the external id as
// its display name.
func NeedsName(me models.Member) bool {
	name := strings.TrimSpace(me.DisplayName)
	return name == "" || name == me.ExternalID
}

func (m MainModel) Init() tea.Cmd {
	if m.state == StateDashboard {
		return m.dashboard.Init()
	}
	return textinput.Blink
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}

	switch m.state {
	case StateNaming:
		return m.updateNaming(msg)
	case StateDashboard:
		next, cmd := m.dashboard.Update(msg)
		m.dashboard = next.(DashboardModel)
		return m, cmd
	}
	return m, nil
}

func (m MainModel) updateNaming(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		name := strings.TrimSpace(m.textInput.Value())
		if name == "" {
			m.err = errors.New("please enter a name")
			return m, nil
		}
		ctx, cancel := context.WithTimeout(m.ctx, config.DefaultDBTimeout)
		defer cancel()
		me, err := m.svc.Members.UpdateProfile(ctx, m.me.ID, service.ProfileInput{
			DisplayName: name,
			Location:    m.me.Location,
			Timezone:    m.me.Timezone,
		})
		if err != nil {
			m.err = errors.New(describeError(err))
			return m, nil
		}
		m.me, m.err = me, nil
		m.state = StateDashboard
		m.dashboard = NewDashboardModel(m.ctx, m.svc, me, m.opts)
		m.dashboard.width, m.dashboard.height = m.width, m.height
		return m, m.dashboard.Init()
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m MainModel) View() string {
	switch m.state {
	case StateNaming:
		view := fmt.Sprintf(
			"\n  %s\n\n  %s\n\n  %s\n",
			"Welcome to the cohort.",
			"What should your teammates call you?",
			m.textInput.View(),
		)
		if m.err != nil {
			view += "\n  " + CurrentTheme.Warn.Render(m.err.Error()) + "\n"
		}
		return view
	case StateDashboard:
		return m.dashboard.View()
	}
	return ""
}
