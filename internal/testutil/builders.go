package testutil

import (
	"time"

	"github.com/akyairhashvil/cohortops/internal/models"
)

// TaskBuilder provides fluent API for creating test tasks.
type TaskBuilder struct {
	task models.Task
}

func NewTask(id int64) *TaskBuilder {
	return &TaskBuilder{
		task: models.Task{
			ID:        id,
			Title:     "Test Task",
			Status:    models.TaskTodo,
			Priority:  models.PriorityMedium,
			Version:   1,
			CreatedAt: time.Now(),
		},
	}
}

func (b *TaskBuilder) WithTitle(title string) *TaskBuilder {
	b.task.Title = title
	return b
}

func (b *TaskBuilder) WithStatus(s models.TaskStatus) *TaskBuilder {
	b.task.Status = s
	return b
}

func (b *TaskBuilder) WithPriority(p models.TaskPriority) *TaskBuilder {
	b.task.Priority = p
	return b
}

func (b *TaskBuilder) WithPosition(p int) *TaskBuilder {
	b.task.Position = p
	return b
}

func (b *TaskBuilder) WithVersion(v int64) *TaskBuilder {
	b.task.Version = v
	return b
}

func (b *TaskBuilder) WithSprint(id int64) *TaskBuilder {
	b.task.SprintID = &id
	return b
}

func (b *TaskBuilder) WithAssignee(id int64) *TaskBuilder {
	b.task.AssigneeID = &id
	return b
}

func (b *TaskBuilder) Build() models.Task {
	return b.task
}

// Column builds a status column whose positions match the slice order.
func Column(status models.TaskStatus, firstID int64, titles ...string) []models.Task {
	out := make([]models.Task, len(titles))
	for i, title := range titles {
		out[i] = NewTask(firstID + int64(i)).WithTitle(title).WithStatus(status).WithPosition(i).Build()
	}
	return out
}

// SprintBuilder provides fluent API for creating test sprints.
type SprintBuilder struct {
	sprint models.Sprint
}

func NewSprint(id int64) *SprintBuilder {
	return &SprintBuilder{
		sprint: models.Sprint{
			ID:        id,
			Name:      "Sprint",
			CreatedAt: time.Now(),
		},
	}
}

func (b *SprintBuilder) WithName(name string) *SprintBuilder {
	b.sprint.Name = name
	return b
}

// WithDates sets a start date and an end date days later.
func (b *SprintBuilder) WithDates(start time.Time, days int) *SprintBuilder {
	end := start.AddDate(0, 0, days)
	b.sprint.StartDate = &start
	b.sprint.EndDate = &end
	return b
}

func (b *SprintBuilder) Active() *SprintBuilder {
	b.sprint.IsActive = true
	return b
}

func (b *SprintBuilder) Build() models.Sprint {
	return b.sprint
}

// PairingBuilder provides fluent API for creating test pairings.
type PairingBuilder struct {
	pairing models.Pairing
}

func NewPairing(id, sprintID, a, b int64) *PairingBuilder {
	return &PairingBuilder{
		pairing: models.Pairing{
			ID:        id,
			SprintID:  sprintID,
			MemberA:   a,
			MemberB:   b,
			Status:    models.PairingPending,
			CreatedAt: time.Now(),
		},
	}
}

func (b *PairingBuilder) WithStatus(s models.PairingStatus) *PairingBuilder {
	b.pairing.Status = s
	return b
}

func (b *PairingBuilder) Build() models.Pairing {
	return b.pairing
}
