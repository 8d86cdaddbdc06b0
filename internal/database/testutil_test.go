package database

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/akyairhashvil/cohortops/internal/config"
	"github.com/akyairhashvil/cohortops/internal/models"
)

// stepClock advances one second per reading so created_at orders are stable.
type stepClock struct {
	mu  sync.Mutex
	cur time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

func setupTestDB(t *testing.T, ctx context.Context) *Database {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	clock := &stepClock{cur: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)}
	db, err := Open(ctx, Options{Driver: config.DriverSQLite, DSN: dbPath, Now: clock.Now})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("db close failed: %v", err)
		}
	})
	return db
}

type TestDataBuilder struct {
	t         *testing.T
	ctx       context.Context
	db        *Database
	memberIDs []int64
	sprintIDs []int64
	taskIDs   []int64
}

func NewTestDataBuilder(t *testing.T) *TestDataBuilder {
	t.Helper()
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	return &TestDataBuilder{t: t, ctx: ctx, db: db}
}

func (b *TestDataBuilder) WithMembers(count int) *TestDataBuilder {
	b.t.Helper()
	for i := 0; i < count; i++ {
		n := len(b.memberIDs) + 1
		m, err := b.db.EnsureMember(b.ctx, MemberSeed{
			ExternalID:  fmt.Sprintf("member-%d", n),
			DisplayName: fmt.Sprintf("Member %02d", n),
		})
		if err != nil {
			b.t.Fatalf("EnsureMember failed: %v", err)
		}
		b.memberIDs = append(b.memberIDs, m.ID)
	}
	return b
}

// WithSprints creates count weekly sprints, oldest first, starting at start.
func (b *TestDataBuilder) WithSprints(count int, start time.Time) *TestDataBuilder {
	b.t.Helper()
	for i := 0; i < count; i++ {
		s := start.AddDate(0, 0, 7*(len(b.sprintIDs)))
		e := s.AddDate(0, 0, 6)
		sprint, err := b.db.CreateSprint(b.ctx, SprintSeed{
			Name:      fmt.Sprintf("Sprint %d", len(b.sprintIDs)+1),
			StartDate: &s,
			EndDate:   &e,
		})
		if err != nil {
			b.t.Fatalf("CreateSprint failed: %v", err)
		}
		b.sprintIDs = append(b.sprintIDs, sprint.ID)
	}
	return b
}

func (b *TestDataBuilder) WithTasks(sprintID *int64, status models.TaskStatus, titles ...string) *TestDataBuilder {
	b.t.Helper()
	for _, title := range titles {
		task, err := b.db.CreateTask(b.ctx, TaskSeed{
			SprintID: sprintID,
			Title:    title,
			Status:   status,
			Priority: models.PriorityMedium,
		})
		if err != nil {
			b.t.Fatalf("CreateTask(%q) failed: %v", title, err)
		}
		b.taskIDs = append(b.taskIDs, task.ID)
	}
	return b
}

func (b *TestDataBuilder) Build() (*Database, []int64, []int64, []int64) {
	return b.db, b.memberIDs, b.sprintIDs, b.taskIDs
}

func columnTitles(t *testing.T, db *Database, sprintID *int64, status models.TaskStatus) []string {
	t.Helper()
	tasks, err := db.ListColumn(context.Background(), sprintID, status)
	if err != nil {
		t.Fatalf("ListColumn failed: %v", err)
	}
	titles := make([]string, 0, len(tasks))
	for i, task := range tasks {
		if task.Position != i {
			t.Fatalf("task %q at index %d has position %d", task.Title, i, task.Position)
		}
		titles = append(titles, task.Title)
	}
	return titles
}
