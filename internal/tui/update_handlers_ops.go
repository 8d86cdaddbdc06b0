package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m DashboardModel) createTask() (DashboardModel, tea.Cmd) {
	title := strings.TrimSpace(m.inputs.taskInput.Value())
	if title == "" {
		m.modal.Close()
		return m, nil
	}
	var task models.Task
	err := m.call(func(ctx context.Context) error {
		var err error
		task, err = m.svc.Tasks.Create(ctx, service.TaskInput{
			SprintID:  m.snap.SprintID(),
			Title:     title,
			Status:    m.modal.createIn,
			CreatedBy: m.me.ID,
		})
		return err
	})
	if err != nil {
		m.setStatusError("Error creating task: " + describeError(err))
		return m, nil
	}
	m.inputs.taskInput.Reset()
	m.modal.Close()
	m.Message = "Added " + task.Title
	return m, m.loadCmd()
}

func (m DashboardModel) deleteTask() (DashboardModel, tea.Cmd) {
	task := m.modal.deleteTask
	m.modal.Close()
	if err := m.call(func(ctx context.Context) error { return m.svc.Tasks.Delete(ctx, task.ID) }); err != nil {
		m.setStatusError("Error deleting task: " + describeError(err))
		return m, nil
	}
	m.Message = "Deleted " + task.Title
	return m, m.loadCmd()
}

// openSubmission starts the form, prefilled with this sprint's submission.
func (m DashboardModel) openSubmission() (DashboardModel, tea.Cmd, bool) {
	var existing *models.Submission
	err := m.call(func(ctx context.Context) error {
		sub, err := m.svc.Submissions.Get(ctx, m.me.ID, m.snap.Sprint.ID)
		if err != nil {
			return err
		}
		existing = &sub
		return nil
	})
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		m.setStatusError("Error loading submission: " + describeError(err))
		return m, nil, true
	}
	m.modal.current = ModalSubmission
	m.modal.form = newSubmissionForm(existing)
	return m, nil, true
}

func (m DashboardModel) submitForm() (DashboardModel, tea.Cmd) {
	form := m.modal.form
	in, err := form.Input()
	if err != nil {
		form.Err = err.Error()
		return m, nil
	}
	err = m.call(func(ctx context.Context) error {
		_, err := m.svc.Submissions.Submit(ctx, m.me.ID, m.snap.Sprint.ID, in)
		return err
	})
	if err != nil {
		form.Err = describeError(err)
		return m, nil
	}
	m.modal.Close()
	m.Message = "Submission saved"
	return m, m.loadCmd()
}

func (m DashboardModel) requestPairing() (DashboardModel, tea.Cmd) {
	if m.snap.Sprint == nil {
		m.setStatusError("No active sprint to pair in")
		return m, nil
	}
	if m.snap.Pairing != nil {
		m.setStatusError("You already have a coffee chat this sprint")
		return m, nil
	}
	var p models.Pairing
	err := m.call(func(ctx context.Context) error {
		ids, err := m.svc.Members.IDs(ctx)
		if err != nil {
			return err
		}
		p, err = m.svc.Pairing.Request(ctx, m.snap.Sprint.ID, m.me.ID, ids)
		return err
	})
	if err != nil {
		m.log.Debug("pairing request failed", zap.Error(err))
		m.setStatusError("Coffee chat: " + describeError(err))
		return m, nil
	}
	partner, _ := p.Partner(m.me.ID)
	m.Message = "Matched with " + nameOf(m.snap.Names, partner)
	return m, m.loadCmd()
}

// closePairing marks the current coffee chat completed or skipped.
func (m DashboardModel) closePairing(completed bool) (DashboardModel, tea.Cmd) {
	if m.snap.Pairing == nil {
		m.setStatusError("No open coffee chat")
		return m, nil
	}
	id := m.snap.Pairing.ID
	err := m.call(func(ctx context.Context) error {
		var err error
		if completed {
			_, err = m.svc.Pairing.MarkCompleted(ctx, id, "")
		} else {
			_, err = m.svc.Pairing.MarkSkipped(ctx, id)
		}
		return err
	})
	if err != nil {
		m.setStatusError("Coffee chat: " + describeError(err))
		return m, nil
	}
	if completed {
		m.Message = "Coffee chat completed"
	} else {
		m.Message = "Coffee chat skipped"
	}
	return m, m.loadCmd()
}
