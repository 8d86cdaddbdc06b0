package database

import (
	"context"

	"github.com/akyairhashvil/cohortops/internal/models"
)

const commentColumns = "id, task_id, member_id, content, created_at"

func (d *Database) AddTaskComment(ctx context.Context, taskID, memberID int64, content string) (models.TaskComment, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var id int64
	err := getx(ctx, d.DB, &id,
		"INSERT INTO task_comments (task_id, member_id, content, created_at) VALUES (?, ?, ?, ?) RETURNING id",
		taskID, memberID, content, d.stamp())
	if err != nil {
		return models.TaskComment{}, wrapTaskErr("comment", taskID, err)
	}
	var c models.TaskComment
	err = getx(ctx, d.DB, &c, "SELECT "+commentColumns+" FROM task_comments WHERE id = ?", id)
	return c, wrapTaskErr("comment", taskID, err)
}

// ListTaskComments returns the task's comments oldest first.
func (d *Database) ListTaskComments(ctx context.Context, taskID int64) ([]models.TaskComment, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var comments []models.TaskComment
	err := selectx(ctx, d.DB, &comments,
		"SELECT "+commentColumns+" FROM task_comments WHERE task_id = ? ORDER BY created_at ASC, id ASC", taskID)
	return comments, wrapTaskErr("comments", taskID, err)
}
