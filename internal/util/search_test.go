package util

import (
	"reflect"
	"testing"
)

func TestParseSearchQuery(t *testing.T) {
	query := "status:done priority:High assignee:42 Fix login"
	got := ParseSearchQuery(query)

	if !reflect.DeepEqual(got.Status, []string{"done"}) {
		t.Fatalf("Status = %v, want %v", got.Status, []string{"done"})
	}
	if !reflect.DeepEqual(got.Priority, []string{"high"}) {
		t.Fatalf("Priority = %v, want %v", got.Priority, []string{"high"})
	}
	if !reflect.DeepEqual(got.Assignee, []string{"42"}) {
		t.Fatalf("Assignee = %v, want %v", got.Assignee, []string{"42"})
	}
	if !reflect.DeepEqual(got.Text, []string{"fix", "login"}) {
		t.Fatalf("Text = %v, want %v", got.Text, []string{"fix", "login"})
	}
}

func TestSearchQueryMatchesText(t *testing.T) {
	q := ParseSearchQuery("login bug")
	if !q.MatchesText("Fix the Login", "regression bug") {
		t.Fatalf("expected terms spread across fields to match")
	}
	if q.MatchesText("Fix the login") {
		t.Fatalf("expected missing term to fail")
	}
	if !ParseSearchQuery("").Empty() {
		t.Fatalf("expected empty query")
	}
}
