package tui

import (
	"fmt"
	"strings"

	"github.com/akyairhashvil/cohortops/internal/config"
	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/charmbracelet/lipgloss"
)

func renderLogo() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("cohort") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true).Render("ops")
}

func (m DashboardModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	if m.err != nil {
		return fmt.Sprintf("\nError: %v\n\nPress any key to continue.", m.err)
	}
	if !m.loaded {
		return "Loading cohort..."
	}

	if overlay := m.renderModal(); overlay != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)

	var body string
	if m.width < config.CompactModeThreshold {
		body = m.renderBoard(m.width, bodyHeight)
	} else {
		side := m.renderSidePanes(bodyHeight)
		body = lipgloss.JoinHorizontal(lipgloss.Top, side, m.renderBoard(m.width-lipgloss.Width(side), bodyHeight))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m DashboardModel) renderHeader() string {
	parts := []string{
		renderLogo(),
		FormatSprint(m.snap.Sprint),
		FormatStreak(m.snap.Streak),
		FormatMood(m.snap.Mood),
	}
	if n := m.board.Pending(); n > 0 {
		parts = append(parts, fmt.Sprintf("syncing %d", n))
	}
	if m.board.Stale() {
		parts = append(parts, CurrentTheme.Warn.Render("stale"))
	}
	line := truncateLabel(strings.Join(parts, "  |  "), m.width)

	status := CurrentTheme.Dim.Render(truncateLabel(m.me.DisplayName+"  v"+versionLabel(), m.width))
	if m.Message != "" {
		status = CurrentTheme.Highlight.Render(truncateLabel(m.Message, m.width))
	}
	return CurrentTheme.Focused.Render(line) + "\n" + status
}

func (m DashboardModel) renderFooter() string {
	help := m.keys.HelpForView(m.viewMode())
	if m.search.Active() {
		help = "filter: " + m.search.Query + "  " + help
	}
	return CurrentTheme.Dim.Render(truncateLabel(help, m.width))
}

func (m DashboardModel) renderSidePanes(height int) string {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Border).
		Padding(0, 1).
		Width(config.SidePaneWidth - 2)
	inner := config.SidePaneWidth - 4

	var missing strings.Builder
	missing.WriteString(CurrentTheme.Header.Render("Who's missing") + "\n")
	if m.snap.Sprint == nil {
		missing.WriteString(CurrentTheme.Dim.Render("No active sprint"))
	} else {
		missing.WriteString(FormatCompletion(m.snap.Status) + "\n")
		if !m.snap.Submitted {
			missing.WriteString(CurrentTheme.Warn.Render("You haven't submitted [w]") + "\n")
		}
		names := m.snap.Status.Missing()
		for i, mem := range names {
			if i == config.MaxMissingDisplayed {
				missing.WriteString(CurrentTheme.Dim.Render(fmt.Sprintf("  +%d more", len(names)-i)))
				break
			}
			missing.WriteString("  " + truncateLabel(mem.DisplayName, inner-2) + "\n")
		}
		if len(names) == 0 && len(m.snap.Status.Members) > 0 {
			missing.WriteString(CurrentTheme.Dim.Render("Everyone is in"))
		}
	}

	var chat strings.Builder
	chat.WriteString(CurrentTheme.Header.Render("Coffee chat") + "\n")
	if m.snap.Sprint == nil {
		chat.WriteString(CurrentTheme.Dim.Render("No active sprint"))
	} else {
		chat.WriteString(truncateLabel(FormatPairing(m.snap.Pairing, m.me.ID, m.snap.Names), inner) + "\n")
		if m.snap.Pairing == nil {
			chat.WriteString(CurrentTheme.Dim.Render("[n] find a match"))
		} else {
			chat.WriteString(CurrentTheme.Dim.Render("[c] done  [s] skip"))
		}
	}

	panes := lipgloss.JoinVertical(lipgloss.Left, frame.Render(missing.String()), frame.Render(chat.String()))
	return lipgloss.NewStyle().MaxHeight(max(height, 0)).Render(panes)
}

func (m DashboardModel) renderBoard(width, height int) string {
	if height <= 4 {
		return ""
	}
	b := m.visibleBoard()
	n := len(models.TaskStatuses)
	colWidth := max(width/n-2, config.MinColumnWidth)
	colFrame := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(colWidth).
		Height(height - 2).
		MaxHeight(height)
	activeFrame := colFrame.BorderForeground(CurrentTheme.Border).BorderStyle(lipgloss.ThickBorder())

	visible := min(config.MaxVisibleTasks, max(height-4, 1))
	cols := make([]string, 0, n)
	for ci, status := range models.TaskStatuses {
		col := b.Column(status)
		focused := ci == m.view.focusedColIdx
		title := fmt.Sprintf("%s (%d)", status.Label(), len(col))
		lines := []string{CurrentTheme.Header.Width(colWidth).Render(title)}
		if len(col) == 0 {
			lines = append(lines, CurrentTheme.Dim.Render("  (empty)"))
		}
		start := 0
		if focused && m.view.focusedTaskIdx >= visible {
			start = m.view.focusedTaskIdx - visible + 1
		}
		for ti := start; ti < len(col) && ti < start+visible; ti++ {
			lines = append(lines, m.renderTask(col[ti], focused && ti == m.view.focusedTaskIdx, colWidth))
		}
		if rest := len(col) - start - visible; rest > 0 {
			lines = append(lines, CurrentTheme.Dim.Render(fmt.Sprintf("  ... %d more", rest)))
		}
		frame := colFrame
		if focused {
			frame = activeFrame
		}
		cols = append(cols, frame.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m DashboardModel) renderTask(t models.Task, focused bool, width int) string {
	prefix := "  "
	if focused {
		prefix = "> "
	}
	marker := CurrentTheme.priority(t.Priority).Render(priorityGlyph(t.Priority))
	suffix := ""
	if t.AssigneeID != nil {
		suffix = " @" + nameOf(m.snap.Names, *t.AssigneeID)
	}
	style := CurrentTheme.Task
	switch {
	case focused:
		style = CurrentTheme.Focused
	case t.Status == models.TaskDone:
		style = CurrentTheme.DoneTask
	}
	text := truncateLabel(t.Title+suffix, width-4)
	return prefix + marker + " " + style.Render(text)
}

func priorityGlyph(p models.TaskPriority) string {
	switch p {
	case models.PriorityUrgent:
		return "!!"
	case models.PriorityHigh:
		return "! "
	case models.PriorityLow:
		return ". "
	}
	return "- "
}

func (m DashboardModel) renderModal() string {
	switch m.modal.current {
	case ModalTaskCreate:
		return CurrentTheme.Input.Render(fmt.Sprintf("New task in %s\n%s", m.modal.createIn.Label(), m.inputs.taskInput.View()))
	case ModalTaskDelete:
		return CurrentTheme.Input.Render(fmt.Sprintf("Delete %q and its sub-tasks? [y/n]", m.modal.deleteTask.Title))
	case ModalFilter:
		return CurrentTheme.Input.Render("Filter\n" + m.inputs.filterInput.View())
	case ModalSubmission:
		return m.modal.form.View(m.snap.Sprint)
	}
	return ""
}
