package tui

import (
	"errors"
	"slices"

	"github.com/akyairhashvil/cohortops/internal/board"
	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/util"
	tea "github.com/charmbracelet/bubbletea"
)

func defaultRegistry() *HandlerRegistry {
	r := NewHandlerRegistry()
	reg := func(key, label, desc string, h KeyHandler, modes ...ViewMode) {
		r.Register(KeyBinding{Key: key, Label: label, Handler: h, Description: desc, ViewModes: modes})
	}
	reg("left", "←/→", "column", handleColumnFocus)
	reg("h", "", "", handleColumnFocus)
	reg("right", "", "", handleColumnFocus)
	reg("l", "", "", handleColumnFocus)
	reg("up", "↑/↓", "task", handleTaskFocus)
	reg("k", "", "", handleTaskFocus)
	reg("down", "", "", handleTaskFocus)
	reg("j", "", "", handleTaskFocus)
	reg("<", "</>", "move", handleStatusMove)
	reg(">", "", "", handleStatusMove)
	reg("K", "K/J", "reorder", handleReorder, ViewModeBoard)
	reg("J", "", "", handleReorder, ViewModeBoard)
	reg("a", "", "add", handleAddTask)
	reg("d", "", "delete", handleDeleteTask)
	reg("/", "", "filter", handleFilter)
	reg("w", "", "submit week", handleSubmission)
	reg("n", "", "coffee chat", handleRequestPairing)
	reg("c", "", "chat done", handleCompletePairing)
	reg("s", "", "skip chat", handleSkipPairing)
	reg("p", "", "pdf", handleReport)
	reg("r", "", "refresh", handleRefresh)
	reg("T", "", "theme", handleTheme)
	reg("q", "", "quit", handleQuit)
	return r
}

func handleQuit(m DashboardModel, key string) (DashboardModel, tea.Cmd, bool) {
	return m, tea.Quit, true
}

func handleRefresh(m DashboardModel, key string) (DashboardModel, tea.Cmd, bool) {
	m.Message = "Refreshing..."
	return m, m.loadCmd(), true
}

func handleColumnFocus(m DashboardModel, key string) (DashboardModel, tea.Cmd, bool) {
	delta := 1
	if key == "left" || key == "h" {
		delta = -1
	}
	m.view.focusedColIdx = util.Clamp(m.view.focusedColIdx+delta, 0, len(models.TaskStatuses)-1)
	m.clampCursor()
	return m, nil, true
}

func handleTaskFocus(m DashboardModel, key string) (DashboardModel, tea.Cmd, bool) {
	delta := 1
	if key == "up" || key == "k" {
		delta = -1
	}
	m.view.focusedTaskIdx += delta
	m.clampCursor()
	return m, nil, true
}

func handleStatusMove(m DashboardModel, key string) (DashboardModel, tea.Cmd, bool) {
	task, ok := m.focusedTask()
	if !ok {
		return m, nil, true
	}
	idx := slices.Index(models.TaskStatuses, task.Status)
	if key == "<" {
		idx--
	} else {
		idx++
	}
	if idx < 0 || idx >= len(models.TaskStatuses) {
		return m, nil, true
	}
	return m.applyMove(board.MoveIntent{TaskID: task.ID, Status: models.TaskStatuses[idx]})
}

func handleReorder(m DashboardModel, key string) (DashboardModel, tea.Cmd, bool) {
	task, ok := m.focusedTask()
	if !ok {
		return m, nil, true
	}
	target := task.Position + 1
	if key == "K" {
		target = task.Position - 1
	}
	if target < 0 || target >= len(m.board.Board().Column(task.Status)) {
		return m, nil, true
	}
	return m.applyMove(board.MoveIntent{TaskID: task.ID, Status: task.Status, Position: util.Ptr(target)})
}

// applyMove predicts the move locally and queues it for the store.
func (m DashboardModel) applyMove(intent board.MoveIntent) (DashboardModel, tea.Cmd, bool) {
	_, err := m.board.Apply(intent)
	if err != nil {
		if errors.Is(err, board.ErrStale) {
			m.setStatusError("Board is out of date; press r to refresh")
		} else {
			m.setStatusError("Cannot move: " + err.Error())
		}
		return m, nil, true
	}
	m.followTask(intent.TaskID)
	return m, m.nextMoveCmd(), true
}

func handleAddTask(m DashboardModel, key string) (DashboardModel, tea.Cmd, bool) {
	m.modal.current = ModalTaskCreate
	m.modal.createIn = m.focusedStatus()
	m.inputs.taskInput.Reset()
	return m, m.inputs.taskInput.Focus(), true
}

func handleDeleteTask(m DashboardModel, key string) (DashboardModel, tea.Cmd, bool) {
	task, ok := m.focusedTask()
	if !ok {
		return m, nil, true
	}
	if task.CreatedBy != nil && *task.CreatedBy != m.me.ID && !m.me.IsAdmin() {
		m.setStatusError("Only the task's creator or an admin can delete it")
		return m, nil, true
	}
	m.modal.current = ModalTaskDelete
	m.modal.deleteTask = task
	return m, nil, true
}

func handleFilter(m DashboardModel, key string) (DashboardModel, tea.Cmd, bool) {
	m.modal.current = ModalFilter
	m.inputs.filterInput.SetValue(m.search.Query)
	return m, m.inputs.filterInput.Focus(), true
}

func handleSubmission(m DashboardModel, key string) (DashboardModel, tea.Cmd, bool) {
	if m.snap.Sprint == nil {
		m.setStatusError("No active sprint to submit for")
		return m, nil, true
	}
	return m.openSubmission()
}

func handleRequestPairing(m DashboardModel, key string) (DashboardModel, tea.Cmd, bool) {
	next, cmd := m.requestPairing()
	return next, cmd, true
}

func handleCompletePairing(m DashboardModel, key string) (DashboardModel, tea.Cmd, bool) {
	next, cmd := m.closePairing(true)
	return next, cmd, true
}

func handleSkipPairing(m DashboardModel, key string) (DashboardModel, tea.Cmd, bool) {
	next, cmd := m.closePairing(false)
	return next, cmd, true
}

func handleReport(m DashboardModel, key string) (DashboardModel, tea.Cmd, bool) {
	if m.snap.Sprint == nil {
		m.setStatusError("No active sprint to report on")
		return m, nil, true
	}
	m.Message = "Generating report..."
	return m, m.reportCmd(m.snap.Sprint.ID), true
}

var themeOrder = []string{"default", "dracula"}

func handleTheme(m DashboardModel, key string) (DashboardModel, tea.Cmd, bool) {
	idx := 0
	for i, name := range themeOrder {
		if Themes[name].Name == CurrentTheme.Name {
			idx = i
		}
	}
	SetTheme(themeOrder[(idx+1)%len(themeOrder)])
	m.Message = "Theme: " + CurrentTheme.Name
	return m, nil, true
}
