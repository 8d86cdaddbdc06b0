package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akyairhashvil/cohortops/internal/config"
	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/jmoiron/sqlx"
)

const pairingColumns = "id, sprint_id, member_a_id, member_b_id, status, notes, scheduled_at, created_at, completed_at"

const openStatuses = "('pending', 'scheduled')"

// ExclusionScope selects which existing pairings block a re-pairing.
type ExclusionScope struct {
	Window        string
	RecentSprints int
}

// PairPlan is a pairing chosen by the caller; MemberA is the requester.
type PairPlan struct {
	MemberA int64
	MemberB int64
}

// Planner picks pairs given the exclusions in force when the write
// transaction started. Returning an error aborts the whole batch.
type Planner func(excluded models.ExclusionSet) ([]PairPlan, error)

// CreatePairings derives the exclusion set, asks plan for pairs and inserts
// them, all inside one transaction, so two concurrent requests cannot book
// the same partner.
func (d *Database) CreatePairings(ctx context.Context, sprintID int64, scope ExclusionScope, plan Planner) ([]models.Pairing, error) {
	var created []models.Pairing
	err := d.WithTx(ctx, func(tx *sqlx.Tx) error {
		if d.isPostgres() {
			// sqlite's immediate transactions already serialize writers.
			if _, err := tx.ExecContext(ctx, "LOCK TABLE pairings IN SHARE ROW EXCLUSIVE MODE"); err != nil {
				return err
			}
		}
		if _, err := sprintByID(ctx, tx, sprintID); err != nil {
			return err
		}
		existing, err := exclusionPairings(ctx, tx, scope)
		if err != nil {
			return err
		}
		plans, err := plan(models.NewExclusionSet(existing))
		if err != nil {
			return err
		}
		now := d.stamp()
		for _, p := range plans {
			var id int64
			if err := getx(ctx, tx, &id,
				`INSERT INTO pairings (sprint_id, member_a_id, member_b_id, status, created_at)
				 VALUES (?, ?, ?, 'pending', ?) RETURNING id`,
				sprintID, p.MemberA, p.MemberB, now); err != nil {
				return classify(err)
			}
			pairing, err := pairingByID(ctx, tx, id)
			if err != nil {
				return err
			}
			created = append(created, pairing)
		}
		return nil
	})
	if err != nil {
		return nil, wrapPairingErr("create", 0, err)
	}
	return created, nil
}

// exclusionPairings loads the pairings that block re-pairing under scope.
func exclusionPairings(ctx context.Context, q sqlx.ExtContext, scope ExclusionScope) ([]models.Pairing, error) {
	var pairings []models.Pairing
	switch scope.Window {
	case config.ExclusionHistory:
		err := selectx(ctx, q, &pairings, "SELECT "+pairingColumns+" FROM pairings")
		return pairings, err
	case config.ExclusionRecent:
		ids, err := recentSprintIDs(ctx, q, scope.RecentSprints)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			break
		}
		query, args, err := inx(
			"SELECT "+pairingColumns+" FROM pairings WHERE status IN "+openStatuses+" OR sprint_id IN (?)", ids)
		if err != nil {
			return nil, err
		}
		err = selectx(ctx, q, &pairings, query, args...)
		return pairings, err
	case config.ExclusionOpen, "":
	default:
		return nil, fmt.Errorf("unknown exclusion window %q", scope.Window)
	}
	err := selectx(ctx, q, &pairings, "SELECT "+pairingColumns+" FROM pairings WHERE status IN "+openStatuses)
	return pairings, err
}

func (d *Database) GetPairing(ctx context.Context, id int64) (models.Pairing, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	p, err := pairingByID(ctx, d.DB, id)
	return p, wrapPairingErr("get", id, err)
}

// SchedulePairing moves a pending pairing to scheduled.
func (d *Database) SchedulePairing(ctx context.Context, id int64, at time.Time) (models.Pairing, error) {
	return d.transitionPairing(ctx, "schedule", id,
		[]models.PairingStatus{models.PairingPending},
		"status = ?, scheduled_at = ?", models.PairingScheduled, at.UTC())
}

// CompletePairing closes an open pairing, recording optional notes.
func (d *Database) CompletePairing(ctx context.Context, id int64, notes string) (models.Pairing, error) {
	return d.transitionPairing(ctx, "complete", id,
		[]models.PairingStatus{models.PairingPending, models.PairingScheduled},
		"status = ?, notes = ?, completed_at = ?", models.PairingCompleted, nullableString(notes), d.stamp())
}

func (d *Database) SkipPairing(ctx context.Context, id int64) (models.Pairing, error) {
	return d.transitionPairing(ctx, "skip", id,
		[]models.PairingStatus{models.PairingPending, models.PairingScheduled},
		"status = ?, completed_at = ?", models.PairingSkipped, d.stamp())
}

// transitionPairing applies set only when the pairing is currently in one of
// from; the status check and the write are a single statement.
func (d *Database) transitionPairing(ctx context.Context, op string, id int64, from []models.PairingStatus, set string, args ...any) (models.Pairing, error) {
	var p models.Pairing
	err := d.WithTx(ctx, func(tx *sqlx.Tx) error {
		query, qargs, err := inx("UPDATE pairings SET "+set+" WHERE id = ? AND status IN (?)",
			append(args, id, from)...)
		if err != nil {
			return err
		}
		n, err := execx(ctx, tx, query, qargs...)
		if err != nil {
			return classify(err)
		}
		current, err := pairingByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: pairing is %s", ErrInvalidTransition, current.Status)
		}
		p = current
		return nil
	})
	return p, wrapPairingErr(op, id, err)
}

// CurrentPairing returns the member's newest open pairing in the sprint, or nil.
func (d *Database) CurrentPairing(ctx context.Context, memberID, sprintID int64) (*models.Pairing, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var p models.Pairing
	err := getx(ctx, d.DB, &p,
		"SELECT "+pairingColumns+` FROM pairings
		 WHERE sprint_id = ? AND (member_a_id = ? OR member_b_id = ?) AND status IN `+openStatuses+`
		 ORDER BY created_at DESC, id DESC LIMIT 1`,
		sprintID, memberID, memberID)
	if err != nil {
		if errors.Is(classify(err), ErrNotFound) {
			return nil, nil
		}
		return nil, wrapPairingErr("current", 0, err)
	}
	return &p, nil
}

// MemberPairings returns every pairing involving the member, newest first.
func (d *Database) MemberPairings(ctx context.Context, memberID int64) ([]models.Pairing, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var pairings []models.Pairing
	err := selectx(ctx, d.DB, &pairings,
		"SELECT "+pairingColumns+" FROM pairings WHERE member_a_id = ? OR member_b_id = ? ORDER BY created_at DESC, id DESC",
		memberID, memberID)
	return pairings, wrapPairingErr("history", 0, err)
}

func (d *Database) SprintPairings(ctx context.Context, sprintID int64) ([]models.Pairing, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var pairings []models.Pairing
	err := selectx(ctx, d.DB, &pairings,
		"SELECT "+pairingColumns+" FROM pairings WHERE sprint_id = ? ORDER BY created_at ASC, id ASC", sprintID)
	return pairings, wrapPairingErr("list", 0, err)
}

func pairingByID(ctx context.Context, q sqlx.ExtContext, id int64) (models.Pairing, error) {
	var p models.Pairing
	err := getx(ctx, q, &p, "SELECT "+pairingColumns+" FROM pairings WHERE id = ?", id)
	return p, classify(err)
}
