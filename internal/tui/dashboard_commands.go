package tui

import (
	"context"

	"github.com/akyairhashvil/cohortops/internal/board"
	"github.com/akyairhashvil/cohortops/internal/report"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Messages ---
type snapshotMsg struct {
	snap Snapshot
	err  error
}

type moveResultMsg board.Result

type reportSavedMsg struct {
	path string
	err  error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	ctx, svc, me, timeout := m.ctx, m.svc, m.me, m.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		snap, err := LoadSnapshot(ctx, svc, me)
		return snapshotMsg{snap: snap, err: err}
	}
}

// nextMoveCmd sends the oldest queued move once the previous one has been
// resolved, so moves reach the store in the order they were made.
func (m DashboardModel) nextMoveCmd() tea.Cmd {
	cmd, ok := m.board.Next()
	if !ok {
		return nil
	}
	return m.moveCmd(cmd)
}

// moveCmd sends an optimistic move to the store off the UI goroutine.
func (m DashboardModel) moveCmd(cmd board.Command) tea.Cmd {
	ctx, tasks, timeout := m.ctx, m.svc.Tasks, m.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return moveResultMsg(board.Execute(ctx, tasks, cmd))
	}
}

func (m DashboardModel) reportCmd(sprintID int64) tea.Cmd {
	ctx, svc, dir, timeout := m.ctx, m.svc, m.opts.ReportDir, m.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		r, err := report.Build(ctx, svc, sprintID)
		if err != nil {
			return reportSavedMsg{err: err}
		}
		path, err := report.Save(dir, r)
		return reportSavedMsg{path: path, err: err}
	}
}
