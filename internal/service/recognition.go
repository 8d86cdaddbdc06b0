package service

import (
	"context"
	"strings"

	"github.com/akyairhashvil/cohortops/internal/config"
	"github.com/akyairhashvil/cohortops/internal/database"
	"github.com/akyairhashvil/cohortops/internal/models"
	"go.uber.org/zap"
)

// Recognition keeps the high-five and 1:1 note logs.
type Recognition struct {
	repo database.RecognitionRepository
	log  *zap.Logger
}

func NewRecognition(repo database.RecognitionRepository, log *zap.Logger) *Recognition {
	return &Recognition{repo: repo, log: named(log, "recognition")}
}

func (r *Recognition) GiveHighFive(ctx context.Context, from, to, sprintID int64, message string) (models.HighFive, error) {
	if from == to {
		return models.HighFive{}, invalid("to_member_id", "cannot high-five yourself")
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return models.HighFive{}, invalid("message", "must not be empty")
	}
	h, err := r.repo.AddHighFive(ctx, from, to, sprintID, message)
	if err != nil {
		return models.HighFive{}, err
	}
	r.log.Debug("high-five", zap.Int64("from", from), zap.Int64("to", to), zap.Int64("sprint_id", sprintID))
	return h, nil
}

func (r *Recognition) HighFives(ctx context.Context, sprintID int64) ([]models.HighFive, error) {
	return r.repo.ListHighFives(ctx, sprintID)
}

// HighFiveCounts returns how many high-fives the member gave and received.
func (r *Recognition) HighFiveCounts(ctx context.Context, memberID int64) (given, received int, err error) {
	c, err := r.repo.CountHighFives(ctx, memberID)
	if err != nil {
		return 0, 0, err
	}
	return c.Given, c.Received, nil
}

func (r *Recognition) AddOneOnOneNote(ctx context.Context, memberID, sprintID int64, content string) (models.OneOnOneNote, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.OneOnOneNote{}, invalid("content", "must not be empty")
	}
	if len([]rune(content)) > config.MaxCommentLength {
		return models.OneOnOneNote{}, invalid("content", "must be at most %d characters", config.MaxCommentLength)
	}
	return r.repo.AddOneOnOneNote(ctx, memberID, sprintID, content)
}

func (r *Recognition) OneOnOneNotes(ctx context.Context, memberID, sprintID int64) ([]models.OneOnOneNote, error) {
	return r.repo.ListOneOnOneNotes(ctx, memberID, sprintID)
}
