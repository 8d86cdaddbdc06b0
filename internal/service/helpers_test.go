package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/akyairhashvil/cohortops/internal/config"
	"github.com/akyairhashvil/cohortops/internal/database"
	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

type fixture struct {
	t   *testing.T
	ctx context.Context
	db  *database.Database
	svc *Services
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, database.Options{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "service.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(1, 2))
	}
	return &fixture{t: t, ctx: ctx, db: db, svc: New(db, opts, zaptest.NewLogger(t))}
}

func (f *fixture) members(n int) []int64 {
	f.t.Helper()
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		m, err := f.svc.Members.EnsureMember(f.ctx, Identity{
			ExternalID:  fmt.Sprintf("ext-%d", i+1),
			DisplayName: fmt.Sprintf("Member %d", i+1),
		})
		require.NoError(f.t, err)
		ids = append(ids, m.ID)
	}
	return ids
}

// sprint creates a sprint starting daysAgo days before testNow.
func (f *fixture) sprint(name string, daysAgo int) models.Sprint {
	f.t.Helper()
	start := testNow.AddDate(0, 0, -daysAgo)
	end := start.AddDate(0, 0, 6)
	s, err := f.svc.Sprints.Create(f.ctx, SprintInput{Name: name, StartDate: &start, EndDate: &end})
	require.NoError(f.t, err)
	return s
}

func (f *fixture) submit(memberID, sprintID int64, mood *int) {
	f.t.Helper()
	_, err := f.svc.Submissions.Submit(f.ctx, memberID, sprintID, SubmissionInput{
		Goals:        "finish the onboarding guide",
		Deliverables: "guide draft and review notes",
		Mood:         mood,
	})
	require.NoError(f.t, err)
}
