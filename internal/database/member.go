package database

import (
	"context"
	"errors"

	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const memberColumns = "id, external_id, display_name, location, timezone, role, created_at, updated_at"

// MemberSeed is the identity asserted by the caller on first access.
type MemberSeed struct {
	ExternalID  string
	DisplayName string
	Role        models.Role
}

// MemberProfile holds the self-editable member fields.
type MemberProfile struct {
	DisplayName string
	Location    *string
	Timezone    *string
}

// EnsureMember returns the member for seed.ExternalID, creating it on first
// access. A non-empty display name or role in seed refreshes the stored one.
func (d *Database) EnsureMember(ctx context.Context, seed MemberSeed) (models.Member, error) {
	m, err := d.ensureMemberOnce(ctx, seed)
	if errors.Is(err, ErrConstraintViolation) {
		// Another caller inserted the same identity first.
		zap.L().Debug("ensure member raced, retrying", zap.String("external_id", seed.ExternalID))
		m, err = d.ensureMemberOnce(ctx, seed)
	}
	return m, wrapMemberErr("ensure", 0, err)
}

func (d *Database) ensureMemberOnce(ctx context.Context, seed MemberSeed) (models.Member, error) {
	var m models.Member
	err := d.WithTx(ctx, func(tx *sqlx.Tx) error {
		existing, err := memberByExternalID(ctx, tx, seed.ExternalID)
		now := d.stamp()
		if errors.Is(err, ErrNotFound) {
			role := seed.Role
			if role == "" {
				role = models.RoleMember
			}
			var id int64
			if err := getx(ctx, tx, &id,
				`INSERT INTO members (external_id, display_name, role, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?) RETURNING id`,
				seed.ExternalID, seed.DisplayName, role, now, now); err != nil {
				return classify(err)
			}
			m, err = memberByID(ctx, tx, id)
			return err
		}
		if err != nil {
			return err
		}
		changed := false
		if seed.DisplayName != "" && seed.DisplayName != existing.DisplayName {
			existing.DisplayName = seed.DisplayName
			changed = true
		}
		if seed.Role != "" && seed.Role != existing.Role {
			existing.Role = seed.Role
			changed = true
		}
		if changed {
			if _, err := execx(ctx, tx,
				"UPDATE members SET display_name = ?, role = ?, updated_at = ? WHERE id = ?",
				existing.DisplayName, existing.Role, now, existing.ID); err != nil {
				return err
			}
			existing.UpdatedAt = now
		}
		m = existing
		return nil
	})
	return m, err
}

func (d *Database) GetMember(ctx context.Context, id int64) (models.Member, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	m, err := memberByID(ctx, d.DB, id)
	return m, wrapMemberErr("get", id, err)
}

func (d *Database) GetMemberByExternalID(ctx context.Context, externalID string) (models.Member, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	m, err := memberByExternalID(ctx, d.DB, externalID)
	return m, wrapMemberErr("get", 0, err)
}

// ListMembers returns the whole cohort ordered by display name.
func (d *Database) ListMembers(ctx context.Context) ([]models.Member, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var members []models.Member
	err := selectx(ctx, d.DB, &members,
		"SELECT "+memberColumns+" FROM members ORDER BY display_name ASC, id ASC")
	return members, wrapMemberErr("list", 0, err)
}

func (d *Database) UpdateMemberProfile(ctx context.Context, id int64, p MemberProfile) (models.Member, error) {
	var m models.Member
	err := d.WithTx(ctx, func(tx *sqlx.Tx) error {
		n, err := execx(ctx, tx,
			"UPDATE members SET display_name = ?, location = ?, timezone = ?, updated_at = ? WHERE id = ?",
			p.DisplayName, toNullableArg(p.Location), toNullableArg(p.Timezone), d.stamp(), id)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		m, err = memberByID(ctx, tx, id)
		return err
	})
	return m, wrapMemberErr("update", id, err)
}

func memberByID(ctx context.Context, q sqlx.ExtContext, id int64) (models.Member, error) {
	var m models.Member
	err := getx(ctx, q, &m, "SELECT "+memberColumns+" FROM members WHERE id = ?", id)
	return m, classify(err)
}

func memberByExternalID(ctx context.Context, q sqlx.ExtContext, externalID string) (models.Member, error) {
	var m models.Member
	err := getx(ctx, q, &m, "SELECT "+memberColumns+" FROM members WHERE external_id = ?", externalID)
	return m, classify(err)
}
