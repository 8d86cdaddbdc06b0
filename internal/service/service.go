package service

import (
	"math/rand/v2"
	"time"

	"github.com/akyairhashvil/cohortops/internal/config"
	"github.com/akyairhashvil/cohortops/internal/database"
	"go.uber.org/zap"
)

// Services bundles every component over one store.
type Services struct {
	Members     *Members
	Sprints     *SprintRegistry
	Submissions *SubmissionTracker
	Pairing     *PairingMatcher
	Tasks       *TaskBoard
	Recognition *Recognition
}

// Options tunes the components; zero values take config defaults.
type Options struct {
	Exclusion     string
	RecentSprints int
	MinLength     int
	Now           func() time.Time
	Rand          *rand.Rand
}

// OptionsFromConfig maps loaded configuration onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Exclusion:     cfg.Pairing.Exclusion,
		RecentSprints: cfg.Pairing.RecentSprints,
		MinLength:     cfg.Submission.MinLength,
	}
}

func New(repo database.Repository, opts Options, log *zap.Logger) *Services {
	if opts.Exclusion == "" {
		opts.Exclusion = config.ExclusionOpen
	}
	if opts.RecentSprints <= 0 {
		opts.RecentSprints = config.DefaultRecentSprints
	}
	scope := database.ExclusionScope{Window: opts.Exclusion, RecentSprints: opts.RecentSprints}
	return &Services{
		Members:     NewMembers(repo, log),
		Sprints:     NewSprintRegistry(repo, log),
		Submissions: NewSubmissionTracker(repo, SubmissionOptions{MinLength: opts.MinLength, Now: opts.Now}, log),
		Pairing:     NewPairingMatcher(repo, scope, opts.Rand, log),
		Tasks:       NewTaskBoard(repo, log),
		Recognition: NewRecognition(repo, log),
	}
}
