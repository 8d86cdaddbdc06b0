package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/service"
)

// Snapshot is everything the dashboard shows, loaded in one pass.
type Snapshot struct {
	Me        models.Member
	Sprint    *models.Sprint
	Status    models.SprintStatusReport
	Submitted bool
	Streak    int
	Mood      models.MoodAverage
	Pairing   *models.Pairing
	Board     models.Board
	Names     map[int64]string
}

// LoadSnapshot reads the dashboard state for me. Without an active sprint
// the board shows the backlog and the mood covers the whole cohort.
func LoadSnapshot(ctx context.Context, svc *service.Services, me models.Member) (Snapshot, error) {
	snap := Snapshot{Me: me}
	members, err := svc.Members.List(ctx)
	if err != nil {
		return snap, fmt.Errorf("list members: %w", err)
	}
	snap.Names = make(map[int64]string, len(members))
	for _, mem := range members {
		snap.Names[mem.ID] = mem.DisplayName
	}

	if snap.Sprint, err = svc.Sprints.GetActive(ctx); err != nil {
		return snap, fmt.Errorf("active sprint: %w", err)
	}
	if snap.Streak, err = svc.Submissions.ComputeStreak(ctx, me.ID); err != nil {
		return snap, fmt.Errorf("streak: %w", err)
	}

	var sprintID *int64
	scope := service.MoodScope{}
	if snap.Sprint != nil {
		sprintID = &snap.Sprint.ID
		scope.SprintID = sprintID
		if snap.Status, err = svc.Submissions.StatusForSprint(ctx, snap.Sprint.ID); err != nil {
			return snap, fmt.Errorf("sprint status: %w", err)
		}
		for _, s := range snap.Status.Members {
			if s.Member.ID == me.ID {
				snap.Submitted = s.Submitted
			}
		}
		if snap.Pairing, err = svc.Pairing.CurrentFor(ctx, me.ID, snap.Sprint.ID); err != nil {
			return snap, fmt.Errorf("current pairing: %w", err)
		}
	}
	if snap.Mood, err = svc.Submissions.AverageMood(ctx, scope); err != nil {
		return snap, fmt.Errorf("average mood: %w", err)
	}
	if snap.Board, err = svc.Tasks.List(ctx, sprintID); err != nil {
		return snap, fmt.Errorf("task board: %w", err)
	}
	return snap, nil
}

// SprintID returns the active sprint's id, or nil for the backlog.
func (s Snapshot) SprintID() *int64 {
	if s.Sprint == nil {
		return nil
	}
	id := s.Sprint.ID
	return &id
}

// RenderSummary is the plain-text dashboard for non-interactive output.
func RenderSummary(s Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s | %s | %s\n", FormatSprint(s.Sprint), FormatStreak(s.Streak), FormatMood(s.Mood))
	if s.Sprint != nil {
		fmt.Fprintf(&b, "Submissions: %s\n", FormatCompletion(s.Status))
		if missing := s.Status.Missing(); len(missing) > 0 {
			names := make([]string, len(missing))
			for i, m := range missing {
				names[i] = m.DisplayName
			}
			fmt.Fprintf(&b, "Missing: %s\n", strings.Join(names, ", "))
		}
		fmt.Fprintf(&b, "Coffee chat: %s\n", FormatPairing(s.Pairing, s.Me.ID, s.Names))
	}
	for _, status := range models.TaskStatuses {
		col := s.Board.Column(status)
		fmt.Fprintf(&b, "\n%s (%d)\n", status.Label(), len(col))
		for _, t := range col {
			line := fmt.Sprintf("  - %s [%s]", t.Title, t.Priority)
			if t.AssigneeID != nil {
				line += " @" + nameOf(s.Names, *t.AssigneeID)
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}
