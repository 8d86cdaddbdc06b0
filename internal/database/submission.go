package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const submissionColumns = `id, member_id, sprint_id, goals, deliverables, blockers, reflection,
	mood, hours, created_at, updated_at`

// SubmissionSeed carries already-validated submission fields.
type SubmissionSeed struct {
	Goals        string
	Deliverables string
	Blockers     *string
	Reflection   *string
	Mood         *int
	Hours        *float64
}

// MoodFilter narrows a mood aggregate; nil fields are unconstrained.
type MoodFilter struct {
	MemberID *int64
	SprintID *int64
}

// MoodStats is the raw aggregate behind an average mood.
type MoodStats struct {
	Average sql.NullFloat64 `db:"average"`
	Samples int             `db:"samples"`
}

// UpsertSubmission writes the member's submission for the sprint, replacing
// any earlier one. A concurrent first insert is retried as an update.
func (d *Database) UpsertSubmission(ctx context.Context, memberID, sprintID int64, seed SubmissionSeed) (models.Submission, error) {
	s, err := d.upsertSubmissionOnce(ctx, memberID, sprintID, seed)
	if errors.Is(err, ErrConstraintViolation) {
		zap.L().Debug("submission insert raced, retrying as update",
			zap.Int64("member_id", memberID), zap.Int64("sprint_id", sprintID))
		s, err = d.upsertSubmissionOnce(ctx, memberID, sprintID, seed)
	}
	return s, wrapSubmissionErr("upsert", 0, err)
}

func (d *Database) upsertSubmissionOnce(ctx context.Context, memberID, sprintID int64, seed SubmissionSeed) (models.Submission, error) {
	var s models.Submission
	err := d.WithTx(ctx, func(tx *sqlx.Tx) error {
		now := d.stamp()
		n, err := execx(ctx, tx,
			`UPDATE submissions SET goals = ?, deliverables = ?, blockers = ?, reflection = ?,
			 mood = ?, hours = ?, updated_at = ? WHERE member_id = ? AND sprint_id = ?`,
			seed.Goals, seed.Deliverables, toNullableArg(seed.Blockers), toNullableArg(seed.Reflection),
			toNullableArg(seed.Mood), toNullableArg(seed.Hours), now, memberID, sprintID)
		if err != nil {
			return classify(err)
		}
		if n == 0 {
			if _, err := execx(ctx, tx,
				`INSERT INTO submissions (member_id, sprint_id, goals, deliverables, blockers, reflection,
				 mood, hours, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				memberID, sprintID, seed.Goals, seed.Deliverables, toNullableArg(seed.Blockers),
				toNullableArg(seed.Reflection), toNullableArg(seed.Mood), toNullableArg(seed.Hours), now, now); err != nil {
				return classify(err)
			}
		}
		s, err = submissionFor(ctx, tx, memberID, sprintID)
		return err
	})
	return s, err
}

func (d *Database) GetSubmission(ctx context.Context, memberID, sprintID int64) (models.Submission, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	s, err := submissionFor(ctx, d.DB, memberID, sprintID)
	return s, wrapSubmissionErr("get", 0, err)
}

// ListSprintSubmissions returns every submission for the sprint, oldest first.
func (d *Database) ListSprintSubmissions(ctx context.Context, sprintID int64) ([]models.Submission, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var subs []models.Submission
	err := selectx(ctx, d.DB, &subs,
		"SELECT "+submissionColumns+" FROM submissions WHERE sprint_id = ? ORDER BY created_at ASC, id ASC", sprintID)
	return subs, wrapSubmissionErr("list", 0, err)
}

// SubmittedSprintIDs returns the sprints the member has a submission for.
func (d *Database) SubmittedSprintIDs(ctx context.Context, memberID int64) (map[int64]bool, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var ids []int64
	if err := selectx(ctx, d.DB, &ids, "SELECT sprint_id FROM submissions WHERE member_id = ?", memberID); err != nil {
		return nil, wrapSubmissionErr("list", 0, err)
	}
	out := make(map[int64]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// MoodStats averages non-null moods matching f.
func (d *Database) MoodStats(ctx context.Context, f MoodFilter) (MoodStats, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	query := "SELECT AVG(mood) AS average, COUNT(mood) AS samples FROM submissions WHERE mood IS NOT NULL"
	var args []any
	if f.MemberID != nil {
		query += " AND member_id = ?"
		args = append(args, *f.MemberID)
	}
	if f.SprintID != nil {
		query += " AND sprint_id = ?"
		args = append(args, *f.SprintID)
	}
	var stats MoodStats
	err := getx(ctx, d.DB, &stats, query, args...)
	return stats, wrapSubmissionErr("mood", 0, err)
}

// AverageHours returns the member's mean reported hours, or nil when none were reported.
func (d *Database) AverageHours(ctx context.Context, memberID int64) (*float64, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var avg sql.NullFloat64
	err := getx(ctx, d.DB, &avg, "SELECT AVG(hours) FROM submissions WHERE member_id = ? AND hours IS NOT NULL", memberID)
	if err != nil {
		return nil, wrapSubmissionErr("hours", 0, err)
	}
	return scanNullFloat(avg), nil
}

func submissionFor(ctx context.Context, q sqlx.ExtContext, memberID, sprintID int64) (models.Submission, error) {
	var s models.Submission
	err := getx(ctx, q, &s,
		"SELECT "+submissionColumns+" FROM submissions WHERE member_id = ? AND sprint_id = ?", memberID, sprintID)
	return s, classify(err)
}
