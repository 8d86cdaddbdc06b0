package service

import (
	"context"
	"strings"
	"time"

	"github.com/akyairhashvil/cohortops/internal/database"
	"github.com/akyairhashvil/cohortops/internal/models"
	"go.uber.org/zap"
)

type SprintInput struct {
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
}

// SprintRegistry owns the single active sprint.
type SprintRegistry struct {
	repo database.SprintRepository
	log  *zap.Logger
}

func NewSprintRegistry(repo database.SprintRepository, log *zap.Logger) *SprintRegistry {
	return &SprintRegistry{repo: repo, log: named(log, "sprints")}
}

func (s *SprintRegistry) Create(ctx context.Context, in SprintInput) (models.Sprint, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Sprint{}, invalid("name", "must not be empty")
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return models.Sprint{}, invalid("end_date", "must not be before start_date")
	}
	sprint, err := s.repo.CreateSprint(ctx, database.SprintSeed{Name: name, StartDate: in.StartDate, EndDate: in.EndDate})
	if err != nil {
		return models.Sprint{}, err
	}
	s.log.Info("sprint created", zap.Int64("sprint_id", sprint.ID), zap.String("name", sprint.Name))
	return sprint, nil
}

// Activate flips the active flag to id; every other sprint is deactivated
// atomically.
func (s *SprintRegistry) Activate(ctx context.Context, id int64) (models.Sprint, error) {
	sprint, err := s.repo.ActivateSprint(ctx, id)
	if err != nil {
		return models.Sprint{}, err
	}
	s.log.Info("sprint activated", zap.Int64("sprint_id", id))
	return sprint, nil
}

// GetActive returns the flagged sprint, else the newest one, else nil.
func (s *SprintRegistry) GetActive(ctx context.Context) (*models.Sprint, error) {
	return s.repo.GetActiveSprint(ctx)
}

func (s *SprintRegistry) List(ctx context.Context) ([]models.Sprint, error) {
	return s.repo.ListSprints(ctx)
}

func (s *SprintRegistry) Get(ctx context.Context, id int64) (models.Sprint, error) {
	return s.repo.GetSprint(ctx, id)
}
