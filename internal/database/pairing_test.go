package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akyairhashvil/cohortops/internal/config"
	"github.com/akyairhashvil/cohortops/internal/models"
)

func fixedPlan(pairs ...PairPlan) Planner {
	return func(models.ExclusionSet) ([]PairPlan, error) { return pairs, nil }
}

func TestCreatePairingsSeesOpenExclusions(t *testing.T) {
	db, members, sprints, _ := NewTestDataBuilder(t).
		WithMembers(3).
		WithSprints(1, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)).
		Build()
	ctx := context.Background()
	scope := ExclusionScope{Window: config.ExclusionOpen}

	created, err := db.CreatePairings(ctx, sprints[0], scope, fixedPlan(PairPlan{MemberA: members[0], MemberB: members[1]}))
	if err != nil {
		t.Fatalf("CreatePairings failed: %v", err)
	}
	if len(created) != 1 || created[0].Status != models.PairingPending {
		t.Fatalf("unexpected pairings %+v", created)
	}

	var seen models.ExclusionSet
	_, err = db.CreatePairings(ctx, sprints[0], scope, func(ex models.ExclusionSet) ([]PairPlan, error) {
		seen = ex
		return nil, nil
	})
	if err != nil {
		t.Fatalf("CreatePairings failed: %v", err)
	}
	if !seen.Excludes(members[1], members[0]) || seen.Excludes(members[0], members[2]) {
		t.Fatalf("unexpected exclusion set %v", seen)
	}

	if _, err := db.CompletePairing(ctx, created[0].ID, "great chat"); err != nil {
		t.Fatalf("CompletePairing failed: %v", err)
	}
	_, err = db.CreatePairings(ctx, sprints[0], scope, func(ex models.ExclusionSet) ([]PairPlan, error) {
		seen = ex
		return nil, nil
	})
	if err != nil {
		t.Fatalf("CreatePairings failed: %v", err)
	}
	if len(seen) != 0 {
		t.Fatalf("expected completed pairing to leave the open window, got %v", seen)
	}
	_, err = db.CreatePairings(ctx, sprints[0], ExclusionScope{Window: config.ExclusionHistory},
		func(ex models.ExclusionSet) ([]PairPlan, error) {
			seen = ex
			return nil, nil
		})
	if err != nil {
		t.Fatalf("CreatePairings failed: %v", err)
	}
	if !seen.Excludes(members[0], members[1]) {
		t.Fatalf("expected history window to keep completed pairing excluded")
	}
}

func TestRecentWindowScopesBySprint(t *testing.T) {
	db, members, sprints, _ := NewTestDataBuilder(t).
		WithMembers(4).
		WithSprints(3, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)).
		Build()
	ctx := context.Background()
	open := ExclusionScope{Window: config.ExclusionOpen}

	old, err := db.CreatePairings(ctx, sprints[0], open, fixedPlan(PairPlan{MemberA: members[0], MemberB: members[1]}))
	if err != nil {
		t.Fatalf("CreatePairings failed: %v", err)
	}
	recent, err := db.CreatePairings(ctx, sprints[2], open, fixedPlan(PairPlan{MemberA: members[2], MemberB: members[3]}))
	if err != nil {
		t.Fatalf("CreatePairings failed: %v", err)
	}
	for _, p := range append(old, recent...) {
		if _, err := db.SkipPairing(ctx, p.ID); err != nil {
			t.Fatalf("SkipPairing failed: %v", err)
		}
	}

	var seen models.ExclusionSet
	_, err = db.CreatePairings(ctx, sprints[2], ExclusionScope{Window: config.ExclusionRecent, RecentSprints: 2},
		func(ex models.ExclusionSet) ([]PairPlan, error) {
			seen = ex
			return nil, nil
		})
	if err != nil {
		t.Fatalf("CreatePairings failed: %v", err)
	}
	if seen.Excludes(members[0], members[1]) {
		t.Fatalf("pairing from an old sprint should not be excluded")
	}
	if !seen.Excludes(members[2], members[3]) {
		t.Fatalf("pairing from a recent sprint should be excluded")
	}
}

func TestOpenPairUniqueIndex(t *testing.T) {
	db, members, sprints, _ := NewTestDataBuilder(t).
		WithMembers(2).
		WithSprints(1, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)).
		Build()
	ctx := context.Background()
	scope := ExclusionScope{Window: config.ExclusionOpen}

	if _, err := db.CreatePairings(ctx, sprints[0], scope, fixedPlan(PairPlan{MemberA: members[0], MemberB: members[1]})); err != nil {
		t.Fatalf("CreatePairings failed: %v", err)
	}
	// A planner that ignores exclusions still cannot double-book the pair.
	_, err := db.CreatePairings(ctx, sprints[0], scope, fixedPlan(PairPlan{MemberA: members[1], MemberB: members[0]}))
	if !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
	if _, err := db.CreatePairings(ctx, sprints[0], scope, fixedPlan(PairPlan{MemberA: members[0], MemberB: members[0]})); err == nil {
		t.Fatalf("expected self-pairing to be rejected by the store")
	}
	if _, err := db.CreatePairings(ctx, 999, scope, fixedPlan()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown sprint, got %v", err)
	}
	planErr := errors.New("nobody left")
	if _, err := db.CreatePairings(ctx, sprints[0], scope, func(models.ExclusionSet) ([]PairPlan, error) {
		return nil, planErr
	}); !errors.Is(err, planErr) {
		t.Fatalf("expected planner error to surface, got %v", err)
	}
}

func TestPairingTransitions(t *testing.T) {
	db, members, sprints, _ := NewTestDataBuilder(t).
		WithMembers(2).
		WithSprints(1, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)).
		Build()
	ctx := context.Background()

	created, err := db.CreatePairings(ctx, sprints[0], ExclusionScope{Window: config.ExclusionOpen},
		fixedPlan(PairPlan{MemberA: members[0], MemberB: members[1]}))
	if err != nil {
		t.Fatalf("CreatePairings failed: %v", err)
	}
	id := created[0].ID

	current, err := db.CurrentPairing(ctx, members[1], sprints[0])
	if err != nil || current == nil || current.ID != id {
		t.Fatalf("CurrentPairing = %+v, %v", current, err)
	}

	at := time.Date(2026, 1, 7, 15, 0, 0, 0, time.UTC)
	scheduled, err := db.SchedulePairing(ctx, id, at)
	if err != nil {
		t.Fatalf("SchedulePairing failed: %v", err)
	}
	if scheduled.Status != models.PairingScheduled || scheduled.ScheduledAt == nil || !scheduled.ScheduledAt.Equal(at) {
		t.Fatalf("unexpected scheduled pairing %+v", scheduled)
	}
	if _, err := db.SchedulePairing(ctx, id, at); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected rescheduling to be invalid, got %v", err)
	}
	done, err := db.CompletePairing(ctx, id, "")
	if err != nil {
		t.Fatalf("CompletePairing failed: %v", err)
	}
	if done.Status != models.PairingCompleted || done.CompletedAt == nil || done.Notes != nil {
		t.Fatalf("unexpected completed pairing %+v", done)
	}
	if _, err := db.SkipPairing(ctx, id); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected skip after completion to be invalid, got %v", err)
	}
	if _, err := db.CompletePairing(ctx, id, "again"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected double completion to be invalid, got %v", err)
	}
	if _, err := db.CompletePairing(ctx, 999, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	current, err = db.CurrentPairing(ctx, members[0], sprints[0])
	if err != nil || current != nil {
		t.Fatalf("expected no current pairing after completion, got %+v, %v", current, err)
	}
	history, err := db.MemberPairings(ctx, members[0])
	if err != nil || len(history) != 1 {
		t.Fatalf("MemberPairings = %+v, %v", history, err)
	}
	sprintPairs, err := db.SprintPairings(ctx, sprints[0])
	if err != nil || len(sprintPairs) != 1 {
		t.Fatalf("SprintPairings = %+v, %v", sprintPairs, err)
	}
}
