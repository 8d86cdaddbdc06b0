package tui

import (
	"fmt"
	"strings"

	"github.com/akyairhashvil/cohortops/internal/config"
	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/charmbracelet/x/ansi"
)

// FormatMood renders an average mood, distinguishing "no data" from a low score.
func FormatMood(avg models.MoodAverage) string {
	if !avg.Valid {
		return "mood n/a"
	}
	return fmt.Sprintf("mood %.1f/%d", avg.Value, config.MaxMood)
}

// FormatStreak renders a submission streak (e.g., "3 sprint streak").
func FormatStreak(n int) string {
	switch n {
	case 0:
		return "no streak"
	case 1:
		return "1 sprint streak"
	}
	return fmt.Sprintf("%d sprint streak", n)
}

// FormatCompletion formats submission counts for display.
func FormatCompletion(r models.SprintStatusReport) string {
	if len(r.Members) == 0 {
		return "No members"
	}
	return fmt.Sprintf("%d/%d submitted (%.0f%%)", r.Submitted(), len(r.Members), r.CompletionRate()*100)
}

// FormatSprint returns the sprint name with its date range.
func FormatSprint(s *models.Sprint) string {
	if s == nil {
		return "No active sprint"
	}
	switch {
	case s.StartDate != nil && s.EndDate != nil:
		return fmt.Sprintf("%s (%s - %s)", s.Name, s.StartDate.Format("Jan 2"), s.EndDate.Format("Jan 2"))
	case s.StartDate != nil:
		return fmt.Sprintf("%s (from %s)", s.Name, s.StartDate.Format("Jan 2"))
	}
	return s.Name
}

// FormatPairing describes a coffee chat from the viewer's side.
func FormatPairing(p *models.Pairing, me int64, names map[int64]string) string {
	if p == nil {
		return "No coffee chat yet"
	}
	partner, ok := p.Partner(me)
	if !ok {
		partner = p.MemberB
	}
	line := fmt.Sprintf("with %s [%s]", nameOf(names, partner), p.Status)
	if p.ScheduledAt != nil {
		line += " " + p.ScheduledAt.Format("Mon Jan 2 15:04")
	}
	return line
}

func nameOf(names map[int64]string, id int64) string {
	if n := strings.TrimSpace(names[id]); n != "" {
		return n
	}
	return fmt.Sprintf("#%d", id)
}

func truncateLabel(text string, max int) string {
	if max <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= max {
		return text
	}
	return ansi.Truncate(text, max, config.TruncationSuffix)
}
