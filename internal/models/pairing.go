package models

import "time"

// PairingStatus enumerates the coffee-chat lifecycle states.
type PairingStatus string

const (
	PairingPending   PairingStatus = "pending"
	PairingScheduled PairingStatus = "scheduled"
	PairingCompleted PairingStatus = "completed"
	PairingSkipped   PairingStatus = "skipped"
)

// Open reports whether the pairing still occupies both members.
func (s PairingStatus) Open() bool {
	return s == PairingPending || s == PairingScheduled
}

// Pairing is an unordered two-member coffee-chat assignment. MemberA is the
// member who requested the pairing (or was placed first in a round); use
// Members or Partner instead of comparing the fields directly.
type Pairing struct {
	ID          int64         `db:"id" json:"id"`
	SprintID    int64         `db:"sprint_id" json:"sprint_id"`
	MemberA     int64         `db:"member_a_id" json:"member_a_id"`
	MemberB     int64         `db:"member_b_id" json:"member_b_id"`
	Status      PairingStatus `db:"status" json:"status"`
	Notes       *string       `db:"notes" json:"notes,omitempty"`
	ScheduledAt *time.Time    `db:"scheduled_at" json:"scheduled_at,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	CompletedAt *time.Time    `db:"completed_at" json:"completed_at,omitempty"`
}

// Pair is the normalized, order-independent identity of two members.
type Pair struct {
	Low  int64
	High int64
}

// NewPair normalizes a and b so that NewPair(a, b) == NewPair(b, a).
func NewPair(a, b int64) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{Low: a, High: b}
}

// Members returns the normalized pair.
func (p Pairing) Members() Pair {
	return NewPair(p.MemberA, p.MemberB)
}

// Involves reports whether memberID is one of the two members.
func (p Pairing) Involves(memberID int64) bool {
	return p.MemberA == memberID || p.MemberB == memberID
}

// Partner returns the other member, or false when memberID is not part of the pairing.
func (p Pairing) Partner(memberID int64) (int64, bool) {
	switch memberID {
	case p.MemberA:
		return p.MemberB, true
	case p.MemberB:
		return p.MemberA, true
	}
	return 0, false
}

// ExclusionSet records which members may not be paired with each other.
type ExclusionSet map[Pair]struct{}

// NewExclusionSet builds the set from the given pairings.
func NewExclusionSet(pairings []Pairing) ExclusionSet {
	set := make(ExclusionSet, len(pairings))
	for _, p := range pairings {
		set.Add(p.MemberA, p.MemberB)
	}
	return set
}

func (s ExclusionSet) Add(a, b int64) {
	s[NewPair(a, b)] = struct{}{}
}

// Excludes reports whether a and b must not be paired.
func (s ExclusionSet) Excludes(a, b int64) bool {
	_, ok := s[NewPair(a, b)]
	return ok
}
