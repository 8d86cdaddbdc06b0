package models

import "time"

// SubmissionState is one row of the "who's missing" view.
type SubmissionState struct {
	Member      Member     `json:"member"`
	Submitted   bool       `json:"submitted"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// SprintStatusReport is the per-sprint completion state for the whole cohort.
type SprintStatusReport struct {
	SprintID int64             `json:"sprint_id"`
	Members  []SubmissionState `json:"members"`
}

// Missing returns the members without a submission, in report order.
func (r SprintStatusReport) Missing() []Member {
	var out []Member
	for _, s := range r.Members {
		if !s.Submitted {
			out = append(out, s.Member)
		}
	}
	return out
}

// Submitted returns the number of members who have submitted.
func (r SprintStatusReport) Submitted() int {
	n := 0
	for _, s := range r.Members {
		if s.Submitted {
			n++
		}
	}
	return n
}

// CompletionRate is the submitted fraction in [0, 1]; an empty cohort is 0.
func (r SprintStatusReport) CompletionRate() float64 {
	if len(r.Members) == 0 {
		return 0
	}
	return float64(r.Submitted()) / float64(len(r.Members))
}

// MoodAverage is the mean mood of a scope. Valid is false when no submission
// in scope carried a mood, which is not the same as a low average.
type MoodAverage struct {
	Value   float64 `json:"value"`
	Samples int     `json:"samples"`
	Valid   bool    `json:"valid"`
}

// Engagement summarizes one member's participation history.
type Engagement struct {
	MemberID           int64       `json:"member_id"`
	Streak             int         `json:"streak"`
	Submissions        int         `json:"submissions"`
	SubmittableSprints int         `json:"submittable_sprints"`
	ParticipationRate  float64     `json:"participation_rate"`
	Mood               MoodAverage `json:"mood"`
	AverageHours       *float64    `json:"average_hours,omitempty"`
	HighFivesGiven     int         `json:"high_fives_given"`
	HighFivesReceived  int         `json:"high_fives_received"`
	OneOnOneNotes      int         `json:"one_on_one_notes"`
}

// RoundResult is the outcome of generating pairings for a whole cohort.
type RoundResult struct {
	SprintID int64     `json:"sprint_id"`
	Pairings []Pairing `json:"pairings"`
	Unpaired []int64   `json:"unpaired"`
}
