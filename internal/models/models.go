package models

import "time"

// Role distinguishes regular cohort members from administrators.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

// Member is a cohort participant. Members are never hard-deleted; history
// rows keep referencing them.
type Member struct {
	ID          int64     `db:"id" json:"id"`
	ExternalID  string    `db:"external_id" json:"external_id"`
	DisplayName string    `db:"display_name" json:"display_name"`
	Location    *string   `db:"location" json:"location,omitempty"`
	Timezone    *string   `db:"timezone" json:"timezone,omitempty"`
	Role        Role      `db:"role" json:"role"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// IsAdmin reports whether the member may run administrative operations.
func (m Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// Sprint is a named time box. At most one sprint is active at a time.
type Sprint struct {
	ID        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	StartDate *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate   *time.Time `db:"end_date" json:"end_date,omitempty"`
	IsActive  bool       `db:"is_active" json:"is_active"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// Submission is one member's weekly report for one sprint.
type Submission struct {
	ID           int64     `db:"id" json:"id"`
	MemberID     int64     `db:"member_id" json:"member_id"`
	SprintID     int64     `db:"sprint_id" json:"sprint_id"`
	Goals        string    `db:"goals" json:"goals"`
	Deliverables string    `db:"deliverables" json:"deliverables"`
	Blockers     *string   `db:"blockers" json:"blockers,omitempty"`
	Reflection   *string   `db:"reflection" json:"reflection,omitempty"`
	Mood         *int      `db:"mood" json:"mood,omitempty"`
	Hours        *float64  `db:"hours" json:"hours,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// HighFive is a peer recognition event.
type HighFive struct {
	ID           int64     `db:"id" json:"id"`
	FromMemberID int64     `db:"from_member_id" json:"from_member_id"`
	ToMemberID   int64     `db:"to_member_id" json:"to_member_id"`
	SprintID     int64     `db:"sprint_id" json:"sprint_id"`
	Message      string    `db:"message" json:"message"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// OneOnOneNote is a member's preparation note for a 1:1 in a sprint.
type OneOnOneNote struct {
	ID        int64     `db:"id" json:"id"`
	MemberID  int64     `db:"member_id" json:"member_id"`
	SprintID  int64     `db:"sprint_id" json:"sprint_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
