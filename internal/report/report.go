// Package report assembles a sprint summary from the core components and
// renders it as a PDF.
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akyairhashvil/cohortops/internal/config"
	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/service"
	"github.com/akyairhashvil/cohortops/internal/util"
	"github.com/go-pdf/fpdf"
)

// SprintReport is everything the PDF shows for one sprint.
type SprintReport struct {
	Sprint      models.Sprint
	Status      models.SprintStatusReport
	Pairings    []models.Pairing
	Board       models.Board
	Moods       models.MoodAverage
	HighFives   []models.HighFive
	Names       map[int64]string
	GeneratedAt time.Time
}

// Build gathers the sprint's data from svc.
func Build(ctx context.Context, svc *service.Services, sprintID int64) (SprintReport, error) {
	sprint, err := svc.Sprints.Get(ctx, sprintID)
	if err != nil {
		return SprintReport{}, err
	}
	status, err := svc.Submissions.StatusForSprint(ctx, sprintID)
	if err != nil {
		return SprintReport{}, err
	}
	pairings, err := svc.Pairing.ForSprint(ctx, sprintID)
	if err != nil {
		return SprintReport{}, err
	}
	board, err := svc.Tasks.List(ctx, &sprintID)
	if err != nil {
		return SprintReport{}, err
	}
	moods, err := svc.Submissions.AverageMood(ctx, service.MoodScope{SprintID: &sprintID})
	if err != nil {
		return SprintReport{}, err
	}
	highFives, err := svc.Recognition.HighFives(ctx, sprintID)
	if err != nil {
		return SprintReport{}, err
	}
	names := make(map[int64]string, len(status.Members))
	for _, s := range status.Members {
		names[s.Member.ID] = s.Member.DisplayName
	}
	return SprintReport{
		Sprint:      sprint,
		Status:      status,
		Pairings:    pairings,
		Board:       board,
		Moods:       moods,
		HighFives:   highFives,
		Names:       names,
		GeneratedAt: time.Now(),
	}, nil
}

func (r SprintReport) name(id int64) string {
	if n, ok := r.Names[id]; ok && n != "" {
		return n
	}
	return fmt.Sprintf("member #%d", id)
}

// WritePDF renders r to w.
func WritePDF(w io.Writer, r SprintReport) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(r.Sprint.Name), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Sprint Report: %s", r.Sprint.Name)))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, dateRange(r.Sprint))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Generated "+r.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	section(pdf, "Submissions")
	pdf.Cell(0, 7, fmt.Sprintf("%d of %d submitted (%.0f%%)",
		r.Status.Submitted(), len(r.Status.Members), r.Status.CompletionRate()*100))
	pdf.Ln(7)
	if missing := r.Status.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, m := range missing {
			names[i] = m.DisplayName
		}
		pdf.MultiCell(0, 6, tr("Missing: "+strings.Join(names, ", ")), "", "", false)
	}
	if r.Moods.Valid {
		pdf.Cell(0, 7, fmt.Sprintf("Average mood: %.1f / %d (%d responses)", r.Moods.Value, config.MaxMood, r.Moods.Samples))
	} else {
		pdf.Cell(0, 7, "Average mood: no data")
	}
	pdf.Ln(10)

	section(pdf, "Coffee Chats")
	if len(r.Pairings) == 0 {
		pdf.Cell(0, 7, "  - No pairings this sprint.")
		pdf.Ln(7)
	}
	for _, p := range r.Pairings {
		pdf.Cell(0, 7, tr(fmt.Sprintf("  %s & %s  [%s]", r.name(p.MemberA), r.name(p.MemberB), p.Status)))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	section(pdf, "Task Board")
	for _, s := range models.TaskStatuses {
		col := r.Board.Column(s)
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 7, fmt.Sprintf("%s (%d)", s.Label(), len(col)))
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 11)
		for _, n := range Flatten(BuildHierarchy(col), 0) {
			line := fmt.Sprintf("%s  - %s (%s)", strings.Repeat("    ", n.Level), n.Title, n.Priority)
			if n.AssigneeID != nil {
				line += ", " + r.name(*n.AssigneeID)
			}
			pdf.Cell(0, 7, tr(line))
			pdf.Ln(6)
		}
		pdf.Ln(2)
	}
	pdf.Ln(4)

	if len(r.HighFives) > 0 {
		section(pdf, "High Fives")
		for _, h := range r.HighFives {
			text := fmt.Sprintf("%s -> %s: %s", r.name(h.FromMemberID), r.name(h.ToMemberID), h.Message)
			pdf.MultiCell(0, 6, tr(text), "", "", false)
		}
	}

	return pdf.Output(w)
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, title)
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 11)
}

func dateRange(s models.Sprint) string {
	switch {
	case s.StartDate != nil && s.EndDate != nil:
		return s.StartDate.Format("Jan 2, 2006") + " - " + s.EndDate.Format("Jan 2, 2006")
	case s.StartDate != nil:
		return "Starts " + s.StartDate.Format("Jan 2, 2006")
	}
	return "Undated"
}

// Save writes the report under dir and returns the file path.
func Save(dir string, r SprintReport) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, util.ReportFileName(r.Sprint.ID, r.Sprint.Name))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", err
	}
	if err := WritePDF(f, r); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
