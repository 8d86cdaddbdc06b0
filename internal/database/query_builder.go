package database

import (
	"fmt"
	"strings"

	"github.com/akyairhashvil/cohortops/internal/models"
)

const taskColumns = `id, sprint_id, parent_id, title, description, status, priority, assignee_id,
	created_by, due_date, position, version, created_at, updated_at`

const taskOrder = "position ASC, id ASC"

type TaskQuery struct {
	columns string
	filters []string
	args    []any
	orderBy string
	limit   int
}

func NewTaskQuery() *TaskQuery {
	return &TaskQuery{columns: taskColumns, orderBy: taskOrder}
}

func (q *TaskQuery) Where(filter string, args ...any) *TaskQuery {
	q.filters = append(q.filters, filter)
	q.args = append(q.args, args...)
	return q
}

func (q *TaskQuery) WhereBacklog() *TaskQuery {
	return q.Where("sprint_id IS NULL")
}

func (q *TaskQuery) WhereSprint(sprintID int64) *TaskQuery {
	return q.Where("sprint_id = ?", sprintID)
}

// WhereSprintOrBacklog scopes to a sprint, or to the backlog when sprintID is nil.
func (q *TaskQuery) WhereSprintOrBacklog(sprintID *int64) *TaskQuery {
	if sprintID == nil {
		return q.WhereBacklog()
	}
	return q.WhereSprint(*sprintID)
}

func (q *TaskQuery) WhereStatus(status models.TaskStatus) *TaskQuery {
	return q.Where("status = ?", status)
}

func (q *TaskQuery) WhereAssignee(memberID int64) *TaskQuery {
	return q.Where("assignee_id = ?", memberID)
}

func (q *TaskQuery) WhereParent(parentID int64) *TaskQuery {
	return q.Where("parent_id = ?", parentID)
}

func (q *TaskQuery) OrderBy(orderBy string) *TaskQuery {
	q.orderBy = orderBy
	return q
}

func (q *TaskQuery) Limit(limit int) *TaskQuery {
	q.limit = limit
	return q
}

// Build renders the query with '?' placeholders; callers rebind.
func (q *TaskQuery) Build() (string, []any) {
	query := fmt.Sprintf("SELECT %s FROM tasks", q.columns)
	if len(q.filters) > 0 {
		query += " WHERE " + strings.Join(q.filters, " AND ")
	}
	if q.orderBy != "" {
		query += " ORDER BY " + q.orderBy
	}
	if q.limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.limit)
	}
	return query, q.args
}
