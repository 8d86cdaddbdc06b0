package board

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/akyairhashvil/cohortops/internal/config"
	"github.com/akyairhashvil/cohortops/internal/database"
	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/service"
	"github.com/akyairhashvil/cohortops/internal/testutil"
	"github.com/akyairhashvil/cohortops/internal/util"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// snapshot is todo: a(1) b(2) c(3), done: x(10).
func snapshot() models.Board {
	tasks := testutil.Column(models.TaskTodo, 1, "a", "b", "c")
	tasks = append(tasks, testutil.Column(models.TaskDone, 10, "x")...)
	return models.NewBoard(tasks)
}

func titles(col []models.Task) []string {
	out := make([]string, len(col))
	for i, t := range col {
		out[i] = t.Title
		if t.Position != i {
			out[i] += "!"
		}
	}
	return out
}

func TestApplyPredictsLocally(t *testing.T) {
	v := NewView(snapshot(), zaptest.NewLogger(t))

	cmd, err := v.Apply(MoveIntent{TaskID: 2, Status: models.TaskDone})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, cmd.RequestID)
	assert.Equal(t, 1, v.Pending())

	b := v.Board()
	assert.Equal(t, []string{"a", "c"}, titles(b.Column(models.TaskTodo)))
	assert.Equal(t, []string{"x", "b"}, titles(b.Column(models.TaskDone)))

	_, err = v.Apply(MoveIntent{TaskID: 3, Status: models.TaskTodo, Position: util.Ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, titles(v.Board().Column(models.TaskTodo)))

	_, err = v.Apply(MoveIntent{TaskID: 1, Status: models.TaskReview, Position: util.Ptr(9)})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, titles(v.Board().Column(models.TaskReview)), "position clamps to column length")

	_, err = v.Apply(MoveIntent{TaskID: 404, Status: models.TaskDone})
	assert.ErrorIs(t, err, ErrUnknownTask)
}

func TestResolveSuccessKeepsPrediction(t *testing.T) {
	v := NewView(snapshot(), nil)
	first, err := v.Apply(MoveIntent{TaskID: 1, Status: models.TaskDone})
	require.NoError(t, err)
	second, err := v.Apply(MoveIntent{TaskID: 3, Status: models.TaskInProgress})
	require.NoError(t, err)

	sent, ok := v.Next()
	require.True(t, ok)
	assert.Equal(t, first.RequestID, sent.RequestID)
	_, ok = v.Next()
	assert.False(t, ok, "second command waits for the first result")

	server := testutil.NewTask(1).WithTitle("a (renamed)").WithStatus(models.TaskDone).WithPosition(1).WithVersion(2).Build()
	v.Resolve(Result{RequestID: first.RequestID, Task: server})

	assert.Equal(t, 1, v.Pending())
	b := v.Board()
	assert.Equal(t, []string{"x", "a (renamed)"}, titles(b.Column(models.TaskDone)))
	assert.Equal(t, []string{"c"}, titles(b.Column(models.TaskInProgress)), "remaining prediction replays")
	assert.Equal(t, []string{"b"}, titles(b.Column(models.TaskTodo)))

	sent, ok = v.Next()
	require.True(t, ok)
	assert.Equal(t, second.RequestID, sent.RequestID)
	v.Resolve(Result{RequestID: second.RequestID, Task: testutil.NewTask(3).WithTitle("c").WithStatus(models.TaskInProgress).WithVersion(2).Build()})
	assert.Zero(t, v.Pending())
	assert.False(t, v.Stale())
	assert.Equal(t, []string{"c"}, titles(v.Board().Column(models.TaskInProgress)))
}

func TestResolveIgnoresOlderServerCopy(t *testing.T) {
	v := NewView(snapshot(), nil)
	cmd, err := v.Apply(MoveIntent{TaskID: 2, Status: models.TaskTodo, Position: util.Ptr(0)})
	require.NoError(t, err)
	_, ok := v.Next()
	require.True(t, ok)

	// A version no newer than the snapshot's carries nothing to adopt.
	v.Resolve(Result{RequestID: cmd.RequestID, Task: testutil.NewTask(2).WithTitle("stale b").WithVersion(1).Build()})
	assert.Equal(t, []string{"a", "b", "c"}, titles(v.Board().Column(models.TaskTodo)))
}

func TestResolveFailureMarksStale(t *testing.T) {
	v := NewView(snapshot(), zaptest.NewLogger(t))
	cmd, err := v.Apply(MoveIntent{TaskID: 1, Status: models.TaskDone})
	require.NoError(t, err)
	_, err = v.Apply(MoveIntent{TaskID: 2, Status: models.TaskDone})
	require.NoError(t, err)
	_, ok := v.Next()
	require.True(t, ok)

	v.Resolve(Result{RequestID: uuid.New(), Err: errors.New("late")})
	assert.False(t, v.Stale(), "unknown request ids are ignored")

	v.Resolve(Result{RequestID: cmd.RequestID, Err: service.ErrNotFound})
	assert.True(t, v.Stale())
	assert.Zero(t, v.Pending())
	assert.Equal(t, []string{"a", "b", "c"}, titles(v.Board().Column(models.TaskTodo)), "projection falls back to the snapshot")

	_, err = v.Apply(MoveIntent{TaskID: 3, Status: models.TaskDone})
	assert.ErrorIs(t, err, ErrStale)
	_, ok = v.Next()
	assert.False(t, ok, "failure drops the queue")

	v.Reset(models.NewBoard(testutil.Column(models.TaskReview, 1, "a")))
	assert.False(t, v.Stale())
	assert.Equal(t, []string{"a"}, titles(v.Board().Column(models.TaskReview)))
}

func TestExecuteAndRefreshAgainstBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockBackend(ctrl)
	ctx := context.Background()
	sprintID := int64(7)

	v := NewView(snapshot(), zaptest.NewLogger(t))
	_, err := v.Apply(MoveIntent{TaskID: 3, Status: models.TaskReview})
	require.NoError(t, err)
	cmd, ok := v.Next()
	require.True(t, ok)

	moved := testutil.NewTask(3).WithTitle("c").WithStatus(models.TaskReview).WithVersion(2).Build()
	backend.EXPECT().
		Move(gomock.Any(), int64(3), service.MoveInput{Status: models.TaskReview}).
		Return(moved, nil)
	res := Execute(ctx, backend, cmd)
	require.NoError(t, res.Err)
	assert.Equal(t, cmd.RequestID, res.RequestID)
	v.Resolve(res)
	assert.Equal(t, []string{"c"}, titles(v.Board().Column(models.TaskReview)))

	_, err = v.Apply(MoveIntent{TaskID: 1, Status: models.TaskDone})
	require.NoError(t, err)
	cmd, ok = v.Next()
	require.True(t, ok)
	backend.EXPECT().Move(gomock.Any(), int64(1), gomock.Any()).Return(models.Task{}, service.ErrNotFound)
	v.Resolve(Execute(ctx, backend, cmd))
	require.True(t, v.Stale())

	fresh := models.NewBoard(testutil.Column(models.TaskTodo, 2, "b"))
	backend.EXPECT().List(gomock.Any(), &sprintID).Return(fresh, nil)
	b, err := Refresh(ctx, backend, &sprintID)
	require.NoError(t, err)
	v.Reset(b)
	assert.False(t, v.Stale())
	assert.Equal(t, 1, v.Board().Len())
}

func TestMoveMatchesStoreOrdering(t *testing.T) {
	b := models.NewBoard(testutil.Column(models.TaskTodo, 1, "a", "b", "c", "d"))
	b = move(b, MoveIntent{TaskID: 4, Status: models.TaskTodo, Position: util.Ptr(1)})
	assert.Equal(t, []string{"a", "d", "b", "c"}, titles(b.Column(models.TaskTodo)))
	b = move(b, MoveIntent{TaskID: 1, Status: models.TaskTodo, Position: util.Ptr(2)})
	assert.Equal(t, []string{"d", "b", "a", "c"}, titles(b.Column(models.TaskTodo)))
	b = move(b, MoveIntent{TaskID: 3, Status: models.TaskTodo, Position: util.Ptr(-3)})
	assert.Equal(t, []string{"c", "d", "b", "a"}, titles(b.Column(models.TaskTodo)))
	same := move(b, MoveIntent{TaskID: 2, Status: models.TaskTodo})
	assert.Equal(t, titles(b.Column(models.TaskTodo)), titles(same.Column(models.TaskTodo)))
}

func TestBackToBackReordersReachStoreInOrder(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, database.Options{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "board.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	svc := service.New(db, service.Options{}, zaptest.NewLogger(t))
	me, err := svc.Members.EnsureMember(ctx, service.Identity{ExternalID: "ada", DisplayName: "Ada"})
	require.NoError(t, err)
	for _, title := range []string{"a", "b", "c"} {
		_, err := svc.Tasks.Create(ctx, service.TaskInput{Title: title, CreatedBy: me.ID})
		require.NoError(t, err)
	}
	snap, err := Refresh(ctx, svc.Tasks, nil)
	require.NoError(t, err)
	c := snap.Column(models.TaskTodo)[2]

	v := NewView(snap, zaptest.NewLogger(t))
	first, err := v.Apply(MoveIntent{TaskID: c.ID, Status: models.TaskTodo, Position: util.Ptr(1)})
	require.NoError(t, err)
	second, err := v.Apply(MoveIntent{TaskID: c.ID, Status: models.TaskTodo, Position: util.Ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, titles(v.Board().Column(models.TaskTodo)))

	// A result for a command that was never sent changes nothing.
	v.Resolve(Result{RequestID: second.RequestID, Task: c})
	assert.Equal(t, 2, v.Pending())

	for _, want := range []Command{first, second} {
		cmd, ok := v.Next()
		require.True(t, ok)
		require.Equal(t, want.RequestID, cmd.RequestID)
		_, ok = v.Next()
		require.False(t, ok)
		v.Resolve(Execute(ctx, svc.Tasks, cmd))
	}

	assert.Zero(t, v.Pending())
	assert.False(t, v.Stale())
	assert.Equal(t, []string{"c", "a", "b"}, titles(v.Board().Column(models.TaskTodo)))
	server, err := Refresh(ctx, svc.Tasks, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, titles(server.Column(models.TaskTodo)))
}
