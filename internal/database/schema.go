package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// schemaStatements are written once and rendered per driver.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS members (
		id {{pk}},
		external_id TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		location TEXT,
		timezone TEXT,
		role TEXT NOT NULL DEFAULT 'member' CHECK (role IN ('member', 'admin')),
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sprints (
		id {{pk}},
		name TEXT NOT NULL,
		start_date {{ts}},
		end_date {{ts}},
		is_active INTEGER NOT NULL DEFAULT 0,
		created_at {{ts}} NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_sprints_single_active ON sprints(is_active) WHERE is_active = 1`,
	`CREATE TABLE IF NOT EXISTS submissions (
		id {{pk}},
		member_id {{fk}} NOT NULL REFERENCES members(id),
		sprint_id {{fk}} NOT NULL REFERENCES sprints(id),
		goals TEXT NOT NULL,
		deliverables TEXT NOT NULL,
		blockers TEXT,
		reflection TEXT,
		mood INTEGER CHECK (mood IS NULL OR mood BETWEEN 1 AND 5),
		hours {{real}} CHECK (hours IS NULL OR hours >= 0),
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL,
		UNIQUE (member_id, sprint_id)
	)`,
	`CREATE TABLE IF NOT EXISTS pairings (
		id {{pk}},
		sprint_id {{fk}} NOT NULL REFERENCES sprints(id),
		member_a_id {{fk}} NOT NULL REFERENCES members(id),
		member_b_id {{fk}} NOT NULL REFERENCES members(id),
		status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'scheduled', 'completed', 'skipped')),
		notes TEXT,
		scheduled_at {{ts}},
		created_at {{ts}} NOT NULL,
		completed_at {{ts}},
		CHECK (member_a_id <> member_b_id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_pairings_open_pair
		ON pairings({{least}}(member_a_id, member_b_id), {{greatest}}(member_a_id, member_b_id))
		WHERE status IN ('pending', 'scheduled')`,
	`CREATE INDEX IF NOT EXISTS idx_pairings_sprint ON pairings(sprint_id)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id {{pk}},
		sprint_id {{fk}} REFERENCES sprints(id),
		parent_id {{fk}} REFERENCES tasks(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'todo' CHECK (status IN ('todo', 'in_progress', 'review', 'done')),
		priority TEXT NOT NULL DEFAULT 'medium' CHECK (priority IN ('low', 'medium', 'high', 'urgent')),
		assignee_id {{fk}} REFERENCES members(id),
		created_by {{fk}} REFERENCES members(id),
		due_date {{ts}},
		position INTEGER NOT NULL DEFAULT 0,
		version {{fk}} NOT NULL DEFAULT 1,
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_partition ON tasks(sprint_id, status, position)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_id)`,
	`CREATE TABLE IF NOT EXISTS task_comments (
		id {{pk}},
		task_id {{fk}} NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		member_id {{fk}} NOT NULL REFERENCES members(id),
		content TEXT NOT NULL,
		created_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS high_fives (
		id {{pk}},
		from_member_id {{fk}} NOT NULL REFERENCES members(id),
		to_member_id {{fk}} NOT NULL REFERENCES members(id),
		sprint_id {{fk}} NOT NULL REFERENCES sprints(id),
		message TEXT NOT NULL,
		created_at {{ts}} NOT NULL,
		CHECK (from_member_id <> to_member_id)
	)`,
	`CREATE TABLE IF NOT EXISTS one_on_one_notes (
		id {{pk}},
		member_id {{fk}} NOT NULL REFERENCES members(id),
		sprint_id {{fk}} NOT NULL REFERENCES sprints(id),
		content TEXT NOT NULL,
		created_at {{ts}} NOT NULL
	)`,
}

func (d *Database) schemaReplacer() *strings.Replacer {
	if d.isPostgres() {
		return strings.NewReplacer(
			"{{pk}}", "BIGSERIAL PRIMARY KEY",
			"{{fk}}", "BIGINT",
			"{{ts}}", "TIMESTAMPTZ",
			"{{real}}", "DOUBLE PRECISION",
			"{{least}}", "LEAST",
			"{{greatest}}", "GREATEST",
		)
	}
	return strings.NewReplacer(
		"{{pk}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
		"{{fk}}", "INTEGER",
		"{{ts}}", "DATETIME",
		"{{real}}", "REAL",
		"{{least}}", "min",
		"{{greatest}}", "max",
	)
}

// Migrate creates any missing tables and indexes. It is idempotent.
func (d *Database) Migrate(ctx context.Context) error {
	r := d.schemaReplacer()
	return d.WithTx(ctx, func(tx *sqlx.Tx) error {
		for i, stmt := range schemaStatements {
			if _, err := tx.ExecContext(ctx, r.Replace(stmt)); err != nil {
				return fmt.Errorf("schema statement %d: %w", i, err)
			}
		}
		return nil
	})
}
