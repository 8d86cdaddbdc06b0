package database

import (
	"context"
	"time"

	"github.com/akyairhashvil/cohortops/internal/models"
)

// MemberRepository defines member-related database operations.
type MemberRepository interface {
	EnsureMember(ctx context.Context, seed MemberSeed) (models.Member, error)
	GetMember(ctx context.Context, id int64) (models.Member, error)
	GetMemberByExternalID(ctx context.Context, externalID string) (models.Member, error)
	ListMembers(ctx context.Context) ([]models.Member, error)
	UpdateMemberProfile(ctx context.Context, id int64, p MemberProfile) (models.Member, error)
}

// SprintRepository defines sprint-related database operations.
type SprintRepository interface {
	CreateSprint(ctx context.Context, seed SprintSeed) (models.Sprint, error)
	GetSprint(ctx context.Context, id int64) (models.Sprint, error)
	ListSprints(ctx context.Context) ([]models.Sprint, error)
	ActivateSprint(ctx context.Context, id int64) (models.Sprint, error)
	GetActiveSprint(ctx context.Context) (*models.Sprint, error)
}

// SubmissionRepository defines submission-related database operations.
type SubmissionRepository interface {
	UpsertSubmission(ctx context.Context, memberID, sprintID int64, seed SubmissionSeed) (models.Submission, error)
	GetSubmission(ctx context.Context, memberID, sprintID int64) (models.Submission, error)
	ListSprintSubmissions(ctx context.Context, sprintID int64) ([]models.Submission, error)
	SubmittedSprintIDs(ctx context.Context, memberID int64) (map[int64]bool, error)
	MoodStats(ctx context.Context, f MoodFilter) (MoodStats, error)
	AverageHours(ctx context.Context, memberID int64) (*float64, error)
}

// PairingRepository defines coffee-chat pairing operations.
type PairingRepository interface {
	CreatePairings(ctx context.Context, sprintID int64, scope ExclusionScope, plan Planner) ([]models.Pairing, error)
	GetPairing(ctx context.Context, id int64) (models.Pairing, error)
	SchedulePairing(ctx context.Context, id int64, at time.Time) (models.Pairing, error)
	CompletePairing(ctx context.Context, id int64, notes string) (models.Pairing, error)
	SkipPairing(ctx context.Context, id int64) (models.Pairing, error)
	CurrentPairing(ctx context.Context, memberID, sprintID int64) (*models.Pairing, error)
	MemberPairings(ctx context.Context, memberID int64) ([]models.Pairing, error)
	SprintPairings(ctx context.Context, sprintID int64) ([]models.Pairing, error)
}

// TaskRepository defines task board operations.
type TaskRepository interface {
	CreateTask(ctx context.Context, seed TaskSeed) (models.Task, error)
	GetTask(ctx context.Context, id int64) (models.Task, error)
	UpdateTaskFields(ctx context.Context, id int64, f TaskFields) (models.Task, error)
	MoveTask(ctx context.Context, id int64, status models.TaskStatus, position *int) (models.Task, error)
	DeleteTask(ctx context.Context, id int64) (int, error)
	ListTasks(ctx context.Context, sprintID *int64) ([]models.Task, error)
	ListAssignedTasks(ctx context.Context, sprintID *int64, memberID int64) ([]models.Task, error)
	ListSubtasks(ctx context.Context, parentID int64) ([]models.Task, error)
	ListColumn(ctx context.Context, sprintID *int64, status models.TaskStatus) ([]models.Task, error)
	AddTaskComment(ctx context.Context, taskID, memberID int64, content string) (models.TaskComment, error)
	ListTaskComments(ctx context.Context, taskID int64) ([]models.TaskComment, error)
}

// RecognitionRepository defines high-five and 1:1 note operations.
type RecognitionRepository interface {
	AddHighFive(ctx context.Context, from, to, sprintID int64, message string) (models.HighFive, error)
	ListHighFives(ctx context.Context, sprintID int64) ([]models.HighFive, error)
	CountHighFives(ctx context.Context, memberID int64) (HighFiveCounts, error)
	AddOneOnOneNote(ctx context.Context, memberID, sprintID int64, content string) (models.OneOnOneNote, error)
	ListOneOnOneNotes(ctx context.Context, memberID, sprintID int64) ([]models.OneOnOneNote, error)
	CountOneOnOneNotes(ctx context.Context, memberID int64) (int, error)
}

// Repository combines all repository interfaces.
//
//go:generate mockgen -destination=../service/mock_repository_test.go -package=service github.com/akyairhashvil/cohortops/internal/database SprintRepository,PairingRepository
type Repository interface {
	MemberRepository
	SprintRepository
	SubmissionRepository
	PairingRepository
	TaskRepository
	RecognitionRepository
}

var _ Repository = (*Database)(nil)
