package tui

import (
	"errors"
	"fmt"

	"github.com/akyairhashvil/cohortops/internal/board"
	"github.com/akyairhashvil/cohortops/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case snapshotMsg:
		return m.handleSnapshot(msg)
	case moveResultMsg:
		return m.handleMoveResult(board.Result(msg))
	case reportSavedMsg:
		if msg.err != nil {
			m.log.Warn("report export failed", zap.Error(msg.err))
			m.setStatusError("Report failed: " + describeError(msg.err))
			return m, nil
		}
		m.log.Info("report exported", zap.String("path", msg.path))
		m.Message = "Report saved to " + msg.path
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.modal.IsOpen() {
			return m.handleModalInput(msg)
		}
		// Clear error on keypress
		if m.err != nil {
			m.err = nil
			return m, nil
		}
		m.Message = ""
		next, cmd, _ := m.keys.Handle(m, msg.String())
		return next, cmd
	}
	return m.updateInputs(msg)
}

func (m DashboardModel) handleSnapshot(msg snapshotMsg) (DashboardModel, tea.Cmd) {
	if msg.err != nil {
		m.log.Error("dashboard load failed", zap.Error(msg.err))
		m.err = msg.err
		return m, nil
	}
	m.snap, m.loaded, m.err = msg.snap, true, nil
	if m.board.Pending() > 0 && !m.board.Stale() {
		m.refreshQueued = true
		return m, nil
	}
	m.refreshQueued = false
	m.board.Reset(msg.snap.Board)
	m.clampCursor()
	return m, nil
}

func (m DashboardModel) handleMoveResult(res board.Result) (DashboardModel, tea.Cmd) {
	m.board.Resolve(res)
	if res.Err != nil {
		m.setStatusError(fmt.Sprintf("Move failed: %s; refreshing", describeError(res.Err)))
		m.clampCursor()
		return m, m.loadCmd()
	}
	if m.board.Pending() == 0 && m.refreshQueued {
		m.refreshQueued = false
		return m, m.loadCmd()
	}
	m.clampCursor()
	return m, m.nextMoveCmd()
}

func (m DashboardModel) handleModalInput(msg tea.KeyMsg) (DashboardModel, tea.Cmd) {
	switch m.modal.current {
	case ModalTaskCreate:
		switch msg.Type {
		case tea.KeyEsc:
			m.inputs.taskInput.Reset()
			m.modal.Close()
			return m, nil
		case tea.KeyEnter:
			return m.createTask()
		}
		var cmd tea.Cmd
		m.inputs.taskInput, cmd = m.inputs.taskInput.Update(msg)
		return m, cmd
	case ModalTaskDelete:
		switch msg.String() {
		case "y", "enter":
			return m.deleteTask()
		case "n", "esc":
			m.modal.Close()
		}
		return m, nil
	case ModalFilter:
		switch msg.Type {
		case tea.KeyEsc:
			m.search.Query = ""
			m.inputs.filterInput.Reset()
			m.modal.Close()
			m.clampCursor()
			return m, nil
		case tea.KeyEnter:
			m.search.Query = m.inputs.filterInput.Value()
			m.inputs.filterInput.Blur()
			m.modal.Close()
			m.view.focusedTaskIdx = 0
			return m, nil
		}
		var cmd tea.Cmd
		m.inputs.filterInput, cmd = m.inputs.filterInput.Update(msg)
		return m, cmd
	case ModalSubmission:
		form := m.modal.form
		switch msg.String() {
		case "esc":
			m.modal.Close()
			return m, nil
		case "tab", "down":
			form.Shift(1)
			return m, nil
		case "shift+tab", "up":
			form.Shift(-1)
			return m, nil
		case "ctrl+s":
			return m.submitForm()
		case "enter":
			if form.Last() {
				return m.submitForm()
			}
			form.Shift(1)
			return m, nil
		}
		return m, form.Update(msg)
	}
	return m, nil
}

func (m DashboardModel) updateInputs(msg tea.Msg) (DashboardModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.modal.current {
	case ModalTaskCreate:
		m.inputs.taskInput, cmd = m.inputs.taskInput.Update(msg)
	case ModalFilter:
		m.inputs.filterInput, cmd = m.inputs.filterInput.Update(msg)
	case ModalSubmission:
		cmd = m.modal.form.Update(msg)
	}
	return m, cmd
}

// describeError turns service errors into status-line text.
func describeError(err error) string {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, service.ErrNoAvailablePartner):
		return "no available partner right now"
	case errors.Is(err, service.ErrInvalidTransition):
		return "that change is not allowed in the current state"
	case errors.Is(err, service.ErrConstraintViolation):
		return "conflicts with existing data"
	case errors.Is(err, service.ErrNotFound):
		return "not found"
	}
	return err.Error()
}
