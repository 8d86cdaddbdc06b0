package database

import (
	"context"
	"testing"
	"time"

	"github.com/akyairhashvil/cohortops/internal/util"
)

func TestUpsertSubmissionUpdatesInPlace(t *testing.T) {
	db, members, sprints, _ := NewTestDataBuilder(t).
		WithMembers(1).
		WithSprints(1, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)).
		Build()
	ctx := context.Background()

	first, err := db.UpsertSubmission(ctx, members[0], sprints[0], SubmissionSeed{
		Goals:        "ship the parser",
		Deliverables: "parser + tests",
		Blockers:     util.Ptr("waiting on review"),
		Mood:         util.Ptr(2),
	})
	if err != nil {
		t.Fatalf("UpsertSubmission failed: %v", err)
	}
	second, err := db.UpsertSubmission(ctx, members[0], sprints[0], SubmissionSeed{
		Goals:        "ship the lexer too",
		Deliverables: "lexer + parser",
		Mood:         util.Ptr(4),
		Hours:        util.Ptr(12.5),
	})
	if err != nil {
		t.Fatalf("UpsertSubmission (second) failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected update in place, got ids %d and %d", first.ID, second.ID)
	}
	if second.Goals != "ship the lexer too" || second.Blockers != nil || *second.Mood != 4 || *second.Hours != 12.5 {
		t.Fatalf("second submission did not supersede the first: %+v", second)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) || !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("unexpected timestamps: first %+v second %+v", first, second)
	}
	subs, err := db.ListSprintSubmissions(ctx, sprints[0])
	if err != nil {
		t.Fatalf("ListSprintSubmissions failed: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("expected 1 row, got %d", len(subs))
	}
}

func TestMoodStatsNoData(t *testing.T) {
	db, members, sprints, _ := NewTestDataBuilder(t).
		WithMembers(2).
		WithSprints(2, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)).
		Build()
	ctx := context.Background()

	stats, err := db.MoodStats(ctx, MoodFilter{})
	if err != nil {
		t.Fatalf("MoodStats failed: %v", err)
	}
	if stats.Average.Valid || stats.Samples != 0 {
		t.Fatalf("expected no data, got %+v", stats)
	}

	seed := SubmissionSeed{Goals: "goals goals goals", Deliverables: "deliverables"}
	if _, err := db.UpsertSubmission(ctx, members[0], sprints[0], seed); err != nil {
		t.Fatalf("UpsertSubmission failed: %v", err)
	}
	stats, err = db.MoodStats(ctx, MoodFilter{MemberID: &members[0]})
	if err != nil {
		t.Fatalf("MoodStats failed: %v", err)
	}
	if stats.Average.Valid {
		t.Fatalf("expected moodless submission to yield no data, got %+v", stats)
	}

	seed.Mood = util.Ptr(1)
	if _, err := db.UpsertSubmission(ctx, members[0], sprints[1], seed); err != nil {
		t.Fatalf("UpsertSubmission failed: %v", err)
	}
	seed.Mood = util.Ptr(4)
	if _, err := db.UpsertSubmission(ctx, members[1], sprints[1], seed); err != nil {
		t.Fatalf("UpsertSubmission failed: %v", err)
	}
	stats, err = db.MoodStats(ctx, MoodFilter{SprintID: &sprints[1]})
	if err != nil {
		t.Fatalf("MoodStats failed: %v", err)
	}
	if !stats.Average.Valid || stats.Average.Float64 != 2.5 || stats.Samples != 2 {
		t.Fatalf("unexpected sprint mood %+v", stats)
	}
	stats, err = db.MoodStats(ctx, MoodFilter{MemberID: &members[0]})
	if err != nil {
		t.Fatalf("MoodStats failed: %v", err)
	}
	if !stats.Average.Valid || stats.Average.Float64 != 1 || stats.Samples != 1 {
		t.Fatalf("expected lowest mood to be distinct from no data, got %+v", stats)
	}

	hours, err := db.AverageHours(ctx, members[0])
	if err != nil {
		t.Fatalf("AverageHours failed: %v", err)
	}
	if hours != nil {
		t.Fatalf("expected nil hours, got %v", *hours)
	}
	submitted, err := db.SubmittedSprintIDs(ctx, members[0])
	if err != nil {
		t.Fatalf("SubmittedSprintIDs failed: %v", err)
	}
	if !submitted[sprints[0]] || !submitted[sprints[1]] || len(submitted) != 2 {
		t.Fatalf("unexpected submitted set %v", submitted)
	}
}
