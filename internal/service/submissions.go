package service

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/akyairhashvil/cohortops/internal/config"
	"github.com/akyairhashvil/cohortops/internal/database"
	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/util"
	"go.uber.org/zap"
)

// SubmissionStore is the slice of the store the tracker reads.
type SubmissionStore interface {
	database.SubmissionRepository
	database.SprintRepository
	database.MemberRepository
	database.RecognitionRepository
}

type SubmissionInput struct {
	Goals        string
	Deliverables string
	Blockers     *string
	Reflection   *string
	Mood         *int
	Hours        *float64
}

// MoodScope narrows AverageMood; both nil means the whole cohort.
type MoodScope struct {
	MemberID *int64
	SprintID *int64
}

type SubmissionOptions struct {
	MinLength int
	Now       func() time.Time
}

// SubmissionTracker records weekly submissions and derives completion,
// streak and mood aggregates from them.
type SubmissionTracker struct {
	repo      SubmissionStore
	minLength int
	now       func() time.Time
	log       *zap.Logger
}

func NewSubmissionTracker(repo SubmissionStore, opts SubmissionOptions, log *zap.Logger) *SubmissionTracker {
	if opts.MinLength <= 0 {
		opts.MinLength = config.MinSubmissionLength
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &SubmissionTracker{repo: repo, minLength: opts.MinLength, now: opts.Now, log: named(log, "submissions")}
}

// ValidateSubmission trims in and checks every field rule, returning the
// normalized seed.
func ValidateSubmission(in SubmissionInput, minLength int) (database.SubmissionSeed, error) {
	seed := database.SubmissionSeed{
		Goals:        strings.TrimSpace(in.Goals),
		Deliverables: strings.TrimSpace(in.Deliverables),
		Blockers:     util.OptionalText(in.Blockers),
		Reflection:   util.OptionalText(in.Reflection),
		Mood:         in.Mood,
		Hours:        in.Hours,
	}
	if util.TrimmedLen(seed.Goals) < minLength {
		return seed, invalid("goals", "must be at least %d characters", minLength)
	}
	if util.TrimmedLen(seed.Deliverables) < minLength {
		return seed, invalid("deliverables", "must be at least %d characters", minLength)
	}
	if in.Mood != nil && (*in.Mood < config.MinMood || *in.Mood > config.MaxMood) {
		return seed, invalid("mood", "must be between %d and %d", config.MinMood, config.MaxMood)
	}
	if in.Hours != nil && (*in.Hours < 0 || *in.Hours > config.MaxWeeklyHours) {
		return seed, invalid("hours", "must be between 0 and %d", config.MaxWeeklyHours)
	}
	return seed, nil
}

// Submit creates or replaces the member's submission for the sprint.
func (s *SubmissionTracker) Submit(ctx context.Context, memberID, sprintID int64, in SubmissionInput) (models.Submission, error) {
	seed, err := ValidateSubmission(in, s.minLength)
	if err != nil {
		return models.Submission{}, err
	}
	if _, err := s.repo.GetSprint(ctx, sprintID); err != nil {
		return models.Submission{}, err
	}
	if _, err := s.repo.GetMember(ctx, memberID); err != nil {
		return models.Submission{}, err
	}
	sub, err := s.repo.UpsertSubmission(ctx, memberID, sprintID, seed)
	if err != nil {
		return models.Submission{}, err
	}
	s.log.Info("submission saved",
		zap.Int64("member_id", memberID), zap.Int64("sprint_id", sprintID), zap.Bool("updated", sub.UpdatedAt.After(sub.CreatedAt)))
	return sub, nil
}

func (s *SubmissionTracker) Get(ctx context.Context, memberID, sprintID int64) (models.Submission, error) {
	return s.repo.GetSubmission(ctx, memberID, sprintID)
}

// StatusForSprint reports every cohort member with whether they submitted.
func (s *SubmissionTracker) StatusForSprint(ctx context.Context, sprintID int64) (models.SprintStatusReport, error) {
	if _, err := s.repo.GetSprint(ctx, sprintID); err != nil {
		return models.SprintStatusReport{}, err
	}
	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		return models.SprintStatusReport{}, err
	}
	subs, err := s.repo.ListSprintSubmissions(ctx, sprintID)
	if err != nil {
		return models.SprintStatusReport{}, err
	}
	return BuildStatusReport(sprintID, members, subs), nil
}

// BuildStatusReport joins the cohort against the sprint's submissions.
func BuildStatusReport(sprintID int64, members []models.Member, subs []models.Submission) models.SprintStatusReport {
	submitted := make(map[int64]time.Time, len(subs))
	for _, sub := range subs {
		submitted[sub.MemberID] = sub.UpdatedAt
	}
	report := models.SprintStatusReport{SprintID: sprintID, Members: make([]models.SubmissionState, 0, len(members))}
	for _, m := range members {
		state := models.SubmissionState{Member: m}
		if at, ok := submitted[m.ID]; ok {
			state.Submitted = true
			state.SubmittedAt = &at
		}
		report.Members = append(report.Members, state)
	}
	return report
}

func (s *SubmissionTracker) ComputeStreak(ctx context.Context, memberID int64) (int, error) {
	sprints, err := s.repo.ListSprints(ctx)
	if err != nil {
		return 0, err
	}
	submitted, err := s.repo.SubmittedSprintIDs(ctx, memberID)
	if err != nil {
		return 0, err
	}
	return Streak(sprints, submitted, s.now()), nil
}

// Streak counts consecutive submitted sprints walking back from the most
// recent submittable one, stopping at the first gap.
func Streak(sprints []models.Sprint, submitted map[int64]bool, now time.Time) int {
	n := 0
	for _, sp := range Submittable(sprints, now) {
		if !submitted[sp.ID] {
			break
		}
		n++
	}
	return n
}

// Submittable drops sprints that start after now and orders the rest by
// start date descending, then id descending. Undated sprints go last.
func Submittable(sprints []models.Sprint, now time.Time) []models.Sprint {
	out := make([]models.Sprint, 0, len(sprints))
	for _, sp := range sprints {
		if sp.StartDate != nil && sp.StartDate.After(now) {
			continue
		}
		out = append(out, sp)
	}
	slices.SortStableFunc(out, func(a, b models.Sprint) int {
		switch {
		case a.StartDate == nil && b.StartDate != nil:
			return 1
		case a.StartDate != nil && b.StartDate == nil:
			return -1
		case a.StartDate != nil && !a.StartDate.Equal(*b.StartDate):
			return b.StartDate.Compare(*a.StartDate)
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out
}

// AverageMood returns the mean mood in scope; Valid is false when nothing in
// scope carries a mood.
func (s *SubmissionTracker) AverageMood(ctx context.Context, scope MoodScope) (models.MoodAverage, error) {
	stats, err := s.repo.MoodStats(ctx, database.MoodFilter{MemberID: scope.MemberID, SprintID: scope.SprintID})
	if err != nil {
		return models.MoodAverage{}, err
	}
	if !stats.Average.Valid || stats.Samples == 0 {
		return models.MoodAverage{}, nil
	}
	return models.MoodAverage{Value: stats.Average.Float64, Samples: stats.Samples, Valid: true}, nil
}

// Engagement gathers the member's participation history in one summary.
func (s *SubmissionTracker) Engagement(ctx context.Context, memberID int64) (models.Engagement, error) {
	if _, err := s.repo.GetMember(ctx, memberID); err != nil {
		return models.Engagement{}, err
	}
	sprints, err := s.repo.ListSprints(ctx)
	if err != nil {
		return models.Engagement{}, err
	}
	submitted, err := s.repo.SubmittedSprintIDs(ctx, memberID)
	if err != nil {
		return models.Engagement{}, err
	}
	now := s.now()
	eng := models.Engagement{
		MemberID:    memberID,
		Streak:      Streak(sprints, submitted, now),
		Submissions: len(submitted),
	}
	eligible := Submittable(sprints, now)
	eng.SubmittableSprints = len(eligible)
	if len(eligible) > 0 {
		hit := 0
		for _, sp := range eligible {
			if submitted[sp.ID] {
				hit++
			}
		}
		eng.ParticipationRate = float64(hit) / float64(len(eligible))
	}
	if eng.Mood, err = s.AverageMood(ctx, MoodScope{MemberID: &memberID}); err != nil {
		return models.Engagement{}, err
	}
	if eng.AverageHours, err = s.repo.AverageHours(ctx, memberID); err != nil {
		return models.Engagement{}, err
	}
	counts, err := s.repo.CountHighFives(ctx, memberID)
	if err != nil {
		return models.Engagement{}, err
	}
	eng.HighFivesGiven, eng.HighFivesReceived = counts.Given, counts.Received
	if eng.OneOnOneNotes, err = s.repo.CountOneOnOneNotes(ctx, memberID); err != nil {
		return models.Engagement{}, err
	}
	return eng, nil
}
