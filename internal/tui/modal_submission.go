package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akyairhashvil/cohortops/internal/config"
	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/service"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldGoals = iota
	fieldDeliverables
	fieldBlockers
	fieldReflection
	fieldMood
	fieldHours
	fieldCount
)

var formLabels = [fieldCount]string{
	"Goals",
	"Deliverables",
	"Blockers (optional)",
	"Reflection (optional)",
	fmt.Sprintf("Mood %d-%d (optional)", config.MinMood, config.MaxMood),
	"Hours (optional)",
}

// SubmissionForm is the weekly submission editor.
type SubmissionForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
	Err    string
}

// newSubmissionForm prefills from existing when the member already submitted.
func newSubmissionForm(existing *models.Submission) *SubmissionForm {
	f := &SubmissionForm{}
	for i := range f.inputs {
		ti := textinput.New()
		ti.CharLimit = config.MaxInputLength
		ti.Width = 50
		f.inputs[i] = ti
	}
	f.inputs[fieldGoals].Placeholder = "What are you aiming for this sprint?"
	f.inputs[fieldDeliverables].Placeholder = "What did you ship?"
	f.inputs[fieldMood].CharLimit = 1
	f.inputs[fieldMood].Width = 5
	f.inputs[fieldHours].CharLimit = 6
	f.inputs[fieldHours].Width = 8
	if existing != nil {
		f.inputs[fieldGoals].SetValue(existing.Goals)
		f.inputs[fieldDeliverables].SetValue(existing.Deliverables)
		if existing.Blockers != nil {
			f.inputs[fieldBlockers].SetValue(*existing.Blockers)
		}
		if existing.Reflection != nil {
			f.inputs[fieldReflection].SetValue(*existing.Reflection)
		}
		if existing.Mood != nil {
			f.inputs[fieldMood].SetValue(strconv.Itoa(*existing.Mood))
		}
		if existing.Hours != nil {
			f.inputs[fieldHours].SetValue(strconv.FormatFloat(*existing.Hours, 'f', -1, 64))
		}
	}
	f.inputs[fieldGoals].Focus()
	return f
}

func (f *SubmissionForm) Focused() int { return f.focus }

func (f *SubmissionForm) Last() bool { return f.focus == fieldCount-1 }

// Shift moves focus by delta, wrapping around.
func (f *SubmissionForm) Shift(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

func (f *SubmissionForm) SetValue(field int, v string) {
	f.inputs[field].SetValue(v)
}

func (f *SubmissionForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// Input parses the numeric fields; the tracker validates the rest.
func (f *SubmissionForm) Input() (service.SubmissionInput, error) {
	in := service.SubmissionInput{
		Goals:        f.inputs[fieldGoals].Value(),
		Deliverables: f.inputs[fieldDeliverables].Value(),
		Blockers:     optional(f.inputs[fieldBlockers].Value()),
		Reflection:   optional(f.inputs[fieldReflection].Value()),
	}
	if raw := strings.TrimSpace(f.inputs[fieldMood].Value()); raw != "" {
		mood, err := strconv.Atoi(raw)
		if err != nil {
			return in, fmt.Errorf("mood must be a whole number")
		}
		in.Mood = &mood
	}
	if raw := strings.TrimSpace(f.inputs[fieldHours].Value()); raw != "" {
		hours, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, fmt.Errorf("hours must be a number")
		}
		in.Hours = &hours
	}
	return in, nil
}

func (f *SubmissionForm) View(sprint *models.Sprint) string {
	var b strings.Builder
	b.WriteString(CurrentTheme.Focused.Render("Weekly submission: "+FormatSprint(sprint)) + "\n\n")
	for i := range f.inputs {
		label := CurrentTheme.Dim.Render(formLabels[i])
		if i == f.focus {
			label = CurrentTheme.Focused.Render(formLabels[i])
		}
		b.WriteString(label + "\n" + f.inputs[i].View() + "\n")
	}
	if f.Err != "" {
		b.WriteString("\n" + CurrentTheme.Warn.Render(f.Err) + "\n")
	}
	b.WriteString("\n" + CurrentTheme.Dim.Render("[tab]next [shift+tab]prev [ctrl+s]submit [esc]cancel"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Border).
		Padding(1, 2).
		Render(b.String())
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
