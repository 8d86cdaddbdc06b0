package service

import (
	"context"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/akyairhashvil/cohortops/internal/config"
	"github.com/akyairhashvil/cohortops/internal/database"
	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/util"
	"go.uber.org/zap"
)

type TaskInput struct {
	SprintID    *int64
	ParentID    *int64
	Title       string
	Description *string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	AssigneeID  *int64
	DueDate     *time.Time
	CreatedBy   int64
}

// TaskPatch changes only the fields that are set. ClearAssignee and
// ClearDueDate unset those fields.
type TaskPatch struct {
	Title         *string
	Description   *string
	Priority      *models.TaskPriority
	AssigneeID    *int64
	ClearAssignee bool
	DueDate       *time.Time
	ClearDueDate  bool
}

type MoveInput struct {
	Status   models.TaskStatus
	Position *int
}

// TaskFilter is a read-side projection. Names resolves assignee ids for
// the assignee: search term.
type TaskFilter struct {
	AssigneeID *int64
	Search     string
	Names      map[int64]string
}

// TaskBoard manages tasks ordered within (sprint, status) partitions.
type TaskBoard struct {
	repo database.TaskRepository
	log  *zap.Logger
}

func NewTaskBoard(repo database.TaskRepository, log *zap.Logger) *TaskBoard {
	return &TaskBoard{repo: repo, log: named(log, "tasks")}
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", invalid("title", "must not be empty")
	}
	if utf8.RuneCountInString(title) > config.MaxTaskTitleLength {
		return "", invalid("title", "must be at most %d characters", config.MaxTaskTitleLength)
	}
	return title, nil
}

func (b *TaskBoard) Create(ctx context.Context, in TaskInput) (models.Task, error) {
	title, err := validateTitle(in.Title)
	if err != nil {
		return models.Task{}, err
	}
	if in.Status == "" {
		in.Status = models.TaskTodo
	}
	if !in.Status.Valid() {
		return models.Task{}, invalid("status", "unknown status %q", in.Status)
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !in.Priority.Valid() {
		return models.Task{}, invalid("priority", "unknown priority %q", in.Priority)
	}
	task, err := b.repo.CreateTask(ctx, database.TaskSeed{
		SprintID:    in.SprintID,
		ParentID:    in.ParentID,
		Title:       title,
		Description: util.OptionalText(in.Description),
		Status:      in.Status,
		Priority:    in.Priority,
		AssigneeID:  in.AssigneeID,
		CreatedBy:   in.CreatedBy,
		DueDate:     in.DueDate,
	})
	if err != nil {
		return models.Task{}, err
	}
	b.log.Debug("task created", zap.Int64("task_id", task.ID), zap.String("status", string(task.Status)), zap.Int("position", task.Position))
	return task, nil
}

func (b *TaskBoard) Get(ctx context.Context, id int64) (models.Task, error) {
	return b.repo.GetTask(ctx, id)
}

func (b *TaskBoard) Update(ctx context.Context, id int64, patch TaskPatch) (models.Task, error) {
	cur, err := b.repo.GetTask(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	fields := database.TaskFields{
		Title:       cur.Title,
		Description: cur.Description,
		Priority:    cur.Priority,
		AssigneeID:  cur.AssigneeID,
		DueDate:     cur.DueDate,
	}
	if patch.Title != nil {
		if fields.Title, err = validateTitle(*patch.Title); err != nil {
			return models.Task{}, err
		}
	}
	if patch.Description != nil {
		fields.Description = util.OptionalText(patch.Description)
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return models.Task{}, invalid("priority", "unknown priority %q", *patch.Priority)
		}
		fields.Priority = *patch.Priority
	}
	switch {
	case patch.ClearAssignee:
		fields.AssigneeID = nil
	case patch.AssigneeID != nil:
		fields.AssigneeID = patch.AssigneeID
	}
	switch {
	case patch.ClearDueDate:
		fields.DueDate = nil
	case patch.DueDate != nil:
		fields.DueDate = patch.DueDate
	}
	return b.repo.UpdateTaskFields(ctx, id, fields)
}

// Move changes status and/or position. The returned task carries the new
// version so optimistic clients can reconcile.
func (b *TaskBoard) Move(ctx context.Context, id int64, in MoveInput) (models.Task, error) {
	if !in.Status.Valid() {
		return models.Task{}, invalid("status", "unknown status %q", in.Status)
	}
	task, err := b.repo.MoveTask(ctx, id, in.Status, in.Position)
	if err != nil {
		return models.Task{}, err
	}
	b.log.Debug("task moved", zap.Int64("task_id", id), zap.String("status", string(task.Status)), zap.Int("position", task.Position))
	return task, nil
}

// Delete removes the task with its sub-tasks and comments.
func (b *TaskBoard) Delete(ctx context.Context, id int64) error {
	n, err := b.repo.DeleteTask(ctx, id)
	if err != nil {
		return err
	}
	b.log.Info("task deleted", zap.Int64("task_id", id), zap.Int("removed", n))
	return nil
}

func (b *TaskBoard) AddComment(ctx context.Context, taskID, memberID int64, content string) (models.TaskComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.TaskComment{}, invalid("content", "must not be empty")
	}
	if utf8.RuneCountInString(content) > config.MaxCommentLength {
		return models.TaskComment{}, invalid("content", "must be at most %d characters", config.MaxCommentLength)
	}
	return b.repo.AddTaskComment(ctx, taskID, memberID, content)
}

func (b *TaskBoard) Comments(ctx context.Context, taskID int64) ([]models.TaskComment, error) {
	if _, err := b.repo.GetTask(ctx, taskID); err != nil {
		return nil, err
	}
	return b.repo.ListTaskComments(ctx, taskID)
}

func (b *TaskBoard) Subtasks(ctx context.Context, parentID int64) ([]models.Task, error) {
	return b.repo.ListSubtasks(ctx, parentID)
}

// List returns the sprint's board, or the backlog's when sprintID is nil.
func (b *TaskBoard) List(ctx context.Context, sprintID *int64) (models.Board, error) {
	tasks, err := b.repo.ListTasks(ctx, sprintID)
	if err != nil {
		return models.Board{}, err
	}
	return models.NewBoard(tasks), nil
}

// ListAssigned returns the board holding only memberID's tasks.
func (b *TaskBoard) ListAssigned(ctx context.Context, sprintID *int64, memberID int64) (models.Board, error) {
	tasks, err := b.repo.ListAssignedTasks(ctx, sprintID, memberID)
	if err != nil {
		return models.Board{}, err
	}
	return models.NewBoard(tasks), nil
}

// Filter keeps the tasks matching f, preserving order.
func Filter(tasks []models.Task, f TaskFilter) []models.Task {
	q := util.ParseSearchQuery(f.Search)
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.AssigneeID != nil && (t.AssigneeID == nil || *t.AssigneeID != *f.AssigneeID) {
			continue
		}
		if !matchesQuery(t, q, f.Names) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterBoard applies Filter column by column.
func FilterBoard(board models.Board, f TaskFilter) models.Board {
	out := models.Board{Columns: make(map[models.TaskStatus][]models.Task, len(board.Columns))}
	for status, col := range board.Columns {
		out.Columns[status] = Filter(col, f)
	}
	return out
}

func matchesQuery(t models.Task, q util.SearchQuery, names map[int64]string) bool {
	if q.Empty() {
		return true
	}
	if len(q.Status) > 0 && !slices.Contains(q.Status, string(t.Status)) {
		return false
	}
	if len(q.Priority) > 0 && !slices.Contains(q.Priority, string(t.Priority)) {
		return false
	}
	if len(q.Assignee) > 0 && !matchesAssignee(t, q.Assignee, names) {
		return false
	}
	return q.MatchesText(t.Title, util.Deref(t.Description))
}

// matchesAssignee accepts "none" for unassigned tasks and otherwise a
// case-insensitive fragment of the assignee's display name.
func matchesAssignee(t models.Task, terms []string, names map[int64]string) bool {
	for _, term := range terms {
		if t.AssigneeID == nil {
			if term == "none" {
				return true
			}
			continue
		}
		if strings.Contains(strings.ToLower(names[*t.AssigneeID]), term) {
			return true
		}
	}
	return false
}
