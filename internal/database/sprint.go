package database

import (
	"context"
	"errors"
	"time"

	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/jmoiron/sqlx"
)

const sprintColumns = "id, name, start_date, end_date, is_active, created_at"

// sprintOrder puts dated sprints first, newest start first.
const sprintOrder = "CASE WHEN start_date IS NULL THEN 1 ELSE 0 END ASC, start_date DESC, id DESC"

type SprintSeed struct {
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
}

func (d *Database) CreateSprint(ctx context.Context, seed SprintSeed) (models.Sprint, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var id int64
	err := getx(ctx, d.DB, &id,
		"INSERT INTO sprints (name, start_date, end_date, is_active, created_at) VALUES (?, ?, ?, 0, ?) RETURNING id",
		seed.Name, nullableTime(seed.StartDate), nullableTime(seed.EndDate), d.stamp())
	if err != nil {
		return models.Sprint{}, wrapSprintErr("create", 0, err)
	}
	s, err := sprintByID(ctx, d.DB, id)
	return s, wrapSprintErr("create", id, err)
}

func (d *Database) GetSprint(ctx context.Context, id int64) (models.Sprint, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	s, err := sprintByID(ctx, d.DB, id)
	return s, wrapSprintErr("get", id, err)
}

// ListSprints returns every sprint, newest start date first; sprints without
// a start date come last, newest id first.
func (d *Database) ListSprints(ctx context.Context) ([]models.Sprint, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var sprints []models.Sprint
	err := selectx(ctx, d.DB, &sprints, "SELECT "+sprintColumns+" FROM sprints ORDER BY "+sprintOrder)
	return sprints, wrapSprintErr("list", 0, err)
}

// ActivateSprint makes id the only active sprint. Deactivation and
// activation commit together; an unknown id leaves the previous flag intact.
func (d *Database) ActivateSprint(ctx context.Context, id int64) (models.Sprint, error) {
	var s models.Sprint
	err := d.WithTx(ctx, func(tx *sqlx.Tx) error {
		if d.isPostgres() {
			// Serializes activations so the last one wins instead of the
			// loser tripping the single-active index.
			if _, err := tx.ExecContext(ctx, "LOCK TABLE sprints IN SHARE ROW EXCLUSIVE MODE"); err != nil {
				return err
			}
		}
		if _, err := execx(ctx, tx, "UPDATE sprints SET is_active = 0 WHERE is_active = 1 AND id <> ?", id); err != nil {
			return err
		}
		n, err := execx(ctx, tx, "UPDATE sprints SET is_active = 1 WHERE id = ?", id)
		if err != nil {
			return classify(err)
		}
		if n == 0 {
			return ErrNotFound
		}
		s, err = sprintByID(ctx, tx, id)
		return err
	})
	return s, wrapSprintErr("activate", id, err)
}

// GetActiveSprint returns the flagged sprint, falling back to the most
// recently created one. It returns nil when no sprint exists.
func (d *Database) GetActiveSprint(ctx context.Context) (*models.Sprint, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var s models.Sprint
	err := getx(ctx, d.DB, &s, "SELECT "+sprintColumns+" FROM sprints WHERE is_active = 1")
	if errors.Is(classify(err), ErrNotFound) {
		err = getx(ctx, d.DB, &s,
			"SELECT "+sprintColumns+" FROM sprints ORDER BY created_at DESC, id DESC LIMIT 1")
	}
	if err != nil {
		if errors.Is(classify(err), ErrNotFound) {
			return nil, nil
		}
		return nil, wrapSprintErr("active", 0, err)
	}
	return &s, nil
}

func sprintByID(ctx context.Context, q sqlx.ExtContext, id int64) (models.Sprint, error) {
	var s models.Sprint
	err := getx(ctx, q, &s, "SELECT "+sprintColumns+" FROM sprints WHERE id = ?", id)
	return s, classify(err)
}

// recentSprintIDs returns the ids of the n most recent sprints by start date.
func recentSprintIDs(ctx context.Context, q sqlx.ExtContext, n int) ([]int64, error) {
	var ids []int64
	err := selectx(ctx, q, &ids, "SELECT id FROM sprints ORDER BY "+sprintOrder+" LIMIT ?", n)
	return ids, err
}
