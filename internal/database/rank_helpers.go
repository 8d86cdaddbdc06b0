package database

import (
	"context"
	"strconv"

	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/jmoiron/sqlx"
)

// partition identifies one ordered board column: a sprint (or the backlog
// when SprintID is nil) combined with a status.
type partition struct {
	SprintID *int64
	Status   models.TaskStatus
}

func partitionOf(t models.Task) partition {
	return partition{SprintID: t.SprintID, Status: t.Status}
}

func (p partition) key() string {
	if p.SprintID == nil {
		return "backlog/" + string(p.Status)
	}
	return string(p.Status) + "/" + strconv.FormatInt(*p.SprintID, 10)
}

// where returns a predicate selecting the partition's rows.
func (p partition) where() (string, []any) {
	if p.SprintID == nil {
		return "sprint_id IS NULL AND status = ?", []any{p.Status}
	}
	return "sprint_id = ? AND status = ?", []any{*p.SprintID, p.Status}
}

// countPartition returns the number of tasks in p, ignoring excludeID.
func countPartition(ctx context.Context, q sqlx.ExtContext, p partition, excludeID int64) (int, error) {
	pred, args := p.where()
	var n int
	err := getx(ctx, q, &n, "SELECT COUNT(*) FROM tasks WHERE "+pred+" AND id <> ?", append(args, excludeID)...)
	return n, err
}

// closeGap shifts every task after position in p up by one.
func closeGap(ctx context.Context, q sqlx.ExtContext, p partition, position int, excludeID int64) error {
	pred, args := p.where()
	_, err := execx(ctx, q,
		"UPDATE tasks SET position = position - 1 WHERE "+pred+" AND position > ? AND id <> ?",
		append(args, position, excludeID)...)
	return err
}

// openGap shifts every task at or after position in p down by one.
func openGap(ctx context.Context, q sqlx.ExtContext, p partition, position int, excludeID int64) error {
	pred, args := p.where()
	_, err := execx(ctx, q,
		"UPDATE tasks SET position = position + 1 WHERE "+pred+" AND position >= ? AND id <> ?",
		append(args, position, excludeID)...)
	return err
}

// renumberPartition rewrites positions in p as 0..n-1 keeping the current order.
func renumberPartition(ctx context.Context, q sqlx.ExtContext, p partition) error {
	pred, args := p.where()
	var ids []int64
	if err := selectx(ctx, q, &ids, "SELECT id FROM tasks WHERE "+pred+" ORDER BY position ASC, id ASC", args...); err != nil {
		return err
	}
	for i, id := range ids {
		if _, err := execx(ctx, q, "UPDATE tasks SET position = ? WHERE id = ? AND position <> ?", i, id, i); err != nil {
			return err
		}
	}
	return nil
}
