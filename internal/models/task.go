package models

import "time"

// TaskStatus is the board column a task belongs to.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
)

// TaskStatuses lists the board columns in display order.
var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskReview, TaskDone}

func (s TaskStatus) Valid() bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Label returns the column heading.
func (s TaskStatus) Label() string {
	switch s {
	case TaskTodo:
		return "To Do"
	case TaskInProgress:
		return "In Progress"
	case TaskReview:
		return "Review"
	case TaskDone:
		return "Done"
	}
	return string(s)
}

// TaskPriority orders urgency on the board.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task is a unit of work on the board. Position orders tasks within their
// (sprint, status) partition; Version increases on every server-side write.
type Task struct {
	ID          int64        `db:"id" json:"id"`
	SprintID    *int64       `db:"sprint_id" json:"sprint_id,omitempty"`
	ParentID    *int64       `db:"parent_id" json:"parent_id,omitempty"`
	Title       string       `db:"title" json:"title"`
	Description *string      `db:"description" json:"description,omitempty"`
	Status      TaskStatus   `db:"status" json:"status"`
	Priority    TaskPriority `db:"priority" json:"priority"`
	AssigneeID  *int64       `db:"assignee_id" json:"assignee_id,omitempty"`
	CreatedBy   *int64       `db:"created_by" json:"created_by,omitempty"`
	DueDate     *time.Time   `db:"due_date" json:"due_date,omitempty"`
	Position    int          `db:"position" json:"position"`
	Version     int64        `db:"version" json:"version"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}

// TaskComment is an append-only remark on a task.
type TaskComment struct {
	ID        int64     `db:"id" json:"id"`
	TaskID    int64     `db:"task_id" json:"task_id"`
	MemberID  int64     `db:"member_id" json:"member_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Board is the status-partitioned, position-ordered view of a task set.
type Board struct {
	Columns map[TaskStatus][]Task `json:"columns"`
}

// NewBoard partitions tasks by status, keeping the order they arrive in.
func NewBoard(tasks []Task) Board {
	b := Board{Columns: make(map[TaskStatus][]Task, len(TaskStatuses))}
	for _, s := range TaskStatuses {
		b.Columns[s] = []Task{}
	}
	for _, t := range tasks {
		b.Columns[t.Status] = append(b.Columns[t.Status], t)
	}
	return b
}

// Column returns the ordered tasks for status.
func (b Board) Column(status TaskStatus) []Task {
	return b.Columns[status]
}

// Len returns the total number of tasks on the board.
func (b Board) Len() int {
	n := 0
	for _, col := range b.Columns {
		n += len(col)
	}
	return n
}
