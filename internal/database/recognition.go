package database

import (
	"context"

	"github.com/akyairhashvil/cohortops/internal/models"
)

const (
	highFiveColumns = "id, from_member_id, to_member_id, sprint_id, message, created_at"
	noteColumns     = "id, member_id, sprint_id, content, created_at"
)

// HighFiveCounts is the number of high-fives a member gave and received.
type HighFiveCounts struct {
	Given    int `db:"given"`
	Received int `db:"received"`
}

func (d *Database) AddHighFive(ctx context.Context, from, to, sprintID int64, message string) (models.HighFive, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var id int64
	err := getx(ctx, d.DB, &id,
		`INSERT INTO high_fives (from_member_id, to_member_id, sprint_id, message, created_at)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`,
		from, to, sprintID, message, d.stamp())
	if err != nil {
		return models.HighFive{}, wrapRecognitionErr("high-five", 0, err)
	}
	var h models.HighFive
	err = getx(ctx, d.DB, &h, "SELECT "+highFiveColumns+" FROM high_fives WHERE id = ?", id)
	return h, wrapRecognitionErr("high-five", id, err)
}

func (d *Database) ListHighFives(ctx context.Context, sprintID int64) ([]models.HighFive, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var out []models.HighFive
	err := selectx(ctx, d.DB, &out,
		"SELECT "+highFiveColumns+" FROM high_fives WHERE sprint_id = ? ORDER BY created_at DESC, id DESC", sprintID)
	return out, wrapRecognitionErr("high-fives", sprintID, err)
}

func (d *Database) CountHighFives(ctx context.Context, memberID int64) (HighFiveCounts, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var c HighFiveCounts
	err := getx(ctx, d.DB, &c,
		`SELECT
			COALESCE(SUM(CASE WHEN from_member_id = ? THEN 1 ELSE 0 END), 0) AS given,
			COALESCE(SUM(CASE WHEN to_member_id = ? THEN 1 ELSE 0 END), 0) AS received
		 FROM high_fives WHERE from_member_id = ? OR to_member_id = ?`,
		memberID, memberID, memberID, memberID)
	return c, wrapRecognitionErr("count", memberID, err)
}

func (d *Database) AddOneOnOneNote(ctx context.Context, memberID, sprintID int64, content string) (models.OneOnOneNote, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var id int64
	err := getx(ctx, d.DB, &id,
		"INSERT INTO one_on_one_notes (member_id, sprint_id, content, created_at) VALUES (?, ?, ?, ?) RETURNING id",
		memberID, sprintID, content, d.stamp())
	if err != nil {
		return models.OneOnOneNote{}, wrapRecognitionErr("note", 0, err)
	}
	var n models.OneOnOneNote
	err = getx(ctx, d.DB, &n, "SELECT "+noteColumns+" FROM one_on_one_notes WHERE id = ?", id)
	return n, wrapRecognitionErr("note", id, err)
}

// ListOneOnOneNotes returns the member's notes for a sprint, oldest first.
func (d *Database) ListOneOnOneNotes(ctx context.Context, memberID, sprintID int64) ([]models.OneOnOneNote, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var out []models.OneOnOneNote
	err := selectx(ctx, d.DB, &out,
		"SELECT "+noteColumns+" FROM one_on_one_notes WHERE member_id = ? AND sprint_id = ? ORDER BY created_at ASC, id ASC",
		memberID, sprintID)
	return out, wrapRecognitionErr("notes", memberID, err)
}

func (d *Database) CountOneOnOneNotes(ctx context.Context, memberID int64) (int, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var n int
	err := getx(ctx, d.DB, &n, "SELECT COUNT(*) FROM one_on_one_notes WHERE member_id = ?", memberID)
	return n, wrapRecognitionErr("count", memberID, err)
}
