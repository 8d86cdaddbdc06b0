package tui

import (
	"github.com/akyairhashvil/cohortops/internal/config"
	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/charmbracelet/bubbles/textinput"
)

type ModalType int

const (
	ModalNone ModalType = iota
	ModalTaskCreate
	ModalTaskDelete
	ModalSubmission
	ModalFilter
)

// ModalManager tracks which overlay owns the keyboard and its selection.
type ModalManager struct {
	current    ModalType
	createIn   models.TaskStatus
	deleteTask models.Task
	form       *SubmissionForm
}

func (m *ModalManager) Is(t ModalType) bool { return m.current == t }

func (m *ModalManager) IsOpen() bool { return m.current != ModalNone }

func (m *ModalManager) Close() {
	m.current = ModalNone
	m.deleteTask = models.Task{}
	m.form = nil
}

// InputState stores the single-line text inputs.
type InputState struct {
	taskInput   textinput.Model
	filterInput textinput.Model
}

func newInputState() InputState {
	ti := textinput.New()
	ti.Placeholder = "New task..."
	ti.CharLimit = config.MaxTaskTitleLength
	ti.Width = 50

	fi := textinput.New()
	fi.Placeholder = "status:todo priority:high assignee:ada text"
	fi.CharLimit = config.MaxSearchLength
	fi.Width = 50

	return InputState{taskInput: ti, filterInput: fi}
}
