package database

import (
	"context"
	"testing"
	"time"
)

func TestRecognitionLogs(t *testing.T) {
	db, members, sprints, _ := NewTestDataBuilder(t).
		WithMembers(3).
		WithSprints(1, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)).
		Build()
	ctx := context.Background()

	if _, err := db.AddHighFive(ctx, members[0], members[1], sprints[0], "great demo"); err != nil {
		t.Fatalf("AddHighFive failed: %v", err)
	}
	if _, err := db.AddHighFive(ctx, members[2], members[0], sprints[0], "thanks for pairing"); err != nil {
		t.Fatalf("AddHighFive failed: %v", err)
	}
	if _, err := db.AddHighFive(ctx, members[0], members[0], sprints[0], "me"); err == nil {
		t.Fatalf("expected self high-five to be rejected by the store")
	}
	all, err := db.ListHighFives(ctx, sprints[0])
	if err != nil || len(all) != 2 {
		t.Fatalf("ListHighFives = %v, %v", all, err)
	}
	if all[0].Message != "thanks for pairing" {
		t.Fatalf("expected newest first, got %+v", all)
	}
	counts, err := db.CountHighFives(ctx, members[0])
	if err != nil {
		t.Fatalf("CountHighFives failed: %v", err)
	}
	if counts.Given != 1 || counts.Received != 1 {
		t.Fatalf("unexpected counts %+v", counts)
	}
	empty, err := db.CountHighFives(ctx, 999)
	if err != nil || empty.Given != 0 || empty.Received != 0 {
		t.Fatalf("expected zero counts, got %+v, %v", empty, err)
	}

	for _, note := range []string{"discuss goals", "ask about review"} {
		if _, err := db.AddOneOnOneNote(ctx, members[1], sprints[0], note); err != nil {
			t.Fatalf("AddOneOnOneNote failed: %v", err)
		}
	}
	notes, err := db.ListOneOnOneNotes(ctx, members[1], sprints[0])
	if err != nil || len(notes) != 2 || notes[0].Content != "discuss goals" {
		t.Fatalf("ListOneOnOneNotes = %+v, %v", notes, err)
	}
	n, err := db.CountOneOnOneNotes(ctx, members[1])
	if err != nil || n != 2 {
		t.Fatalf("CountOneOnOneNotes = %d, %v", n, err)
	}
}
