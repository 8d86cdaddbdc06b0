package database

import (
	"context"
	"time"

	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/jmoiron/sqlx"
)

// TaskSeed describes a new task. Status and Priority must already be valid.
type TaskSeed struct {
	SprintID    *int64
	ParentID    *int64
	Title       string
	Description *string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	AssigneeID  *int64
	CreatedBy   int64
	DueDate     *time.Time
}

// TaskFields are the editable, non-positional task fields.
type TaskFields struct {
	Title       string
	Description *string
	Priority    models.TaskPriority
	AssigneeID  *int64
	DueDate     *time.Time
}

// CreateTask appends the task to the end of its (sprint, status) partition.
// A sub-task without a sprint inherits its parent's.
func (d *Database) CreateTask(ctx context.Context, seed TaskSeed) (models.Task, error) {
	var t models.Task
	err := d.WithTx(ctx, func(tx *sqlx.Tx) error {
		if seed.ParentID != nil {
			parent, err := taskByID(ctx, tx, *seed.ParentID)
			if err != nil {
				return err
			}
			if seed.SprintID == nil {
				seed.SprintID = parent.SprintID
			}
		}
		pos, err := countPartition(ctx, tx, partition{SprintID: seed.SprintID, Status: seed.Status}, 0)
		if err != nil {
			return err
		}
		now := d.stamp()
		var id int64
		if err := getx(ctx, tx, &id,
			`INSERT INTO tasks (sprint_id, parent_id, title, description, status, priority, assignee_id,
			 created_by, due_date, position, version, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?) RETURNING id`,
			toNullableArg(seed.SprintID), toNullableArg(seed.ParentID), seed.Title, toNullableArg(seed.Description),
			seed.Status, seed.Priority, toNullableArg(seed.AssigneeID), nullableInt64(seed.CreatedBy),
			nullableTime(seed.DueDate), pos, now, now); err != nil {
			return classify(err)
		}
		t, err = taskByID(ctx, tx, id)
		return err
	})
	return t, wrapTaskErr("create", 0, err)
}

func (d *Database) GetTask(ctx context.Context, id int64) (models.Task, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	t, err := taskByID(ctx, d.DB, id)
	return t, wrapTaskErr("get", id, err)
}

// UpdateTaskFields overwrites the editable fields and bumps the version.
func (d *Database) UpdateTaskFields(ctx context.Context, id int64, f TaskFields) (models.Task, error) {
	var t models.Task
	err := d.WithTx(ctx, func(tx *sqlx.Tx) error {
		n, err := execx(ctx, tx,
			`UPDATE tasks SET title = ?, description = ?, priority = ?, assignee_id = ?, due_date = ?,
			 version = version + 1, updated_at = ? WHERE id = ?`,
			f.Title, toNullableArg(f.Description), f.Priority, toNullableArg(f.AssigneeID),
			nullableTime(f.DueDate), d.stamp(), id)
		if err != nil {
			return classify(err)
		}
		if n == 0 {
			return ErrNotFound
		}
		t, err = taskByID(ctx, tx, id)
		return err
	})
	return t, wrapTaskErr("update", id, err)
}

// MoveTask places the task in status at position, clamped to the
// destination's bounds; a nil position appends. The source partition's gap
// is closed and the destination shifted in the same transaction. Moving to
// the same status without a position is a no-op.
func (d *Database) MoveTask(ctx context.Context, id int64, status models.TaskStatus, position *int) (models.Task, error) {
	var t models.Task
	err := d.WithTx(ctx, func(tx *sqlx.Tx) error {
		cur, err := taskByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if cur.Status == status && position == nil {
			t = cur
			return nil
		}
		src := partitionOf(cur)
		dst := partition{SprintID: cur.SprintID, Status: status}
		if err := closeGap(ctx, tx, src, cur.Position, id); err != nil {
			return err
		}
		n, err := countPartition(ctx, tx, dst, id)
		if err != nil {
			return err
		}
		target := n
		if position != nil {
			target = min(max(*position, 0), n)
		}
		if err := openGap(ctx, tx, dst, target, id); err != nil {
			return err
		}
		if _, err := execx(ctx, tx,
			"UPDATE tasks SET status = ?, position = ?, version = version + 1, updated_at = ? WHERE id = ?",
			status, target, d.stamp(), id); err != nil {
			return err
		}
		t, err = taskByID(ctx, tx, id)
		return err
	})
	return t, wrapTaskErr("move", id, err)
}

type subtreeRow struct {
	ID       int64             `db:"id"`
	SprintID *int64            `db:"sprint_id"`
	Status   models.TaskStatus `db:"status"`
}

// DeleteTask removes the task, its sub-tasks at any depth and their
// comments, then renumbers every partition it touched. It returns the
// number of tasks removed.
func (d *Database) DeleteTask(ctx context.Context, id int64) (int, error) {
	var removed int
	err := d.WithTx(ctx, func(tx *sqlx.Tx) error {
		var rows []subtreeRow
		if err := selectx(ctx, tx, &rows,
			`WITH RECURSIVE subtree(id) AS (
				SELECT id FROM tasks WHERE id = ?
				UNION ALL
				SELECT t.id FROM tasks t JOIN subtree s ON t.parent_id = s.id
			)
			SELECT t.id, t.sprint_id, t.status FROM tasks t JOIN subtree s ON s.id = t.id`, id); err != nil {
			return err
		}
		if len(rows) == 0 {
			return ErrNotFound
		}
		ids := make([]int64, 0, len(rows))
		touched := make(map[string]partition)
		for _, r := range rows {
			ids = append(ids, r.ID)
			p := partition{SprintID: r.SprintID, Status: r.Status}
			touched[p.key()] = p
		}
		for _, stmt := range []string{
			"DELETE FROM task_comments WHERE task_id IN (?)",
			"DELETE FROM tasks WHERE id IN (?)",
		} {
			query, args, err := inx(stmt, ids)
			if err != nil {
				return err
			}
			if _, err := execx(ctx, tx, query, args...); err != nil {
				return err
			}
		}
		for _, p := range touched {
			if err := renumberPartition(ctx, tx, p); err != nil {
				return err
			}
		}
		removed = len(ids)
		return nil
	})
	return removed, wrapTaskErr("delete", id, err)
}

// ListTasks returns the sprint's tasks (the backlog when sprintID is nil)
// in board order.
func (d *Database) ListTasks(ctx context.Context, sprintID *int64) ([]models.Task, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	query, args := NewTaskQuery().WhereSprintOrBacklog(sprintID).OrderBy("status ASC, " + taskOrder).Build()
	var tasks []models.Task
	err := selectx(ctx, d.DB, &tasks, query, args...)
	return tasks, wrapTaskErr("list", 0, err)
}

// ListAssignedTasks is ListTasks narrowed to one assignee.
func (d *Database) ListAssignedTasks(ctx context.Context, sprintID *int64, memberID int64) ([]models.Task, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	query, args := NewTaskQuery().WhereSprintOrBacklog(sprintID).WhereAssignee(memberID).OrderBy("status ASC, " + taskOrder).Build()
	var tasks []models.Task
	err := selectx(ctx, d.DB, &tasks, query, args...)
	return tasks, wrapTaskErr("list", 0, err)
}

func (d *Database) ListSubtasks(ctx context.Context, parentID int64) ([]models.Task, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	query, args := NewTaskQuery().WhereParent(parentID).Build()
	var tasks []models.Task
	err := selectx(ctx, d.DB, &tasks, query, args...)
	return tasks, wrapTaskErr("list", parentID, err)
}

// ListColumn returns one partition in order.
func (d *Database) ListColumn(ctx context.Context, sprintID *int64, status models.TaskStatus) ([]models.Task, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	query, args := NewTaskQuery().WhereSprintOrBacklog(sprintID).WhereStatus(status).Build()
	var tasks []models.Task
	err := selectx(ctx, d.DB, &tasks, query, args...)
	return tasks, wrapTaskErr("list", 0, err)
}

func taskByID(ctx context.Context, q sqlx.ExtContext, id int64) (models.Task, error) {
	query, args := NewTaskQuery().Where("id = ?", id).OrderBy("").Build()
	var t models.Task
	err := getx(ctx, q, &t, query, args...)
	return t, classify(err)
}
