// Package board keeps a client-side task board that applies moves before the
// store acknowledges them and reconciles against the authoritative result.
package board

import (
	"context"
	"errors"
	"slices"

	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrStale       = errors.New("board is stale; refresh required")
	ErrUnknownTask = errors.New("task not on board")
)

// Backend is the authoritative side of the board. *service.TaskBoard
// satisfies it.
//
//go:generate mockgen -destination=mock_backend_test.go -package=board github.com/akyairhashvil/cohortops/internal/board Backend
type Backend interface {
	Move(ctx context.Context, id int64, in service.MoveInput) (models.Task, error)
	List(ctx context.Context, sprintID *int64) (models.Board, error)
}

var _ Backend = (*service.TaskBoard)(nil)

// MoveIntent is what the user asked for.
type MoveIntent struct {
	TaskID   int64
	Status   models.TaskStatus
	Position *int
}

// Command is an intent tagged with the request id its result will carry.
type Command struct {
	RequestID uuid.UUID
	Intent    MoveIntent
}

// Result is the store's answer to a Command.
type Result struct {
	RequestID uuid.UUID
	Task      models.Task
	Err       error
}

// View is the board as the user sees it: the last authoritative snapshot
// with pending predictions replayed on top. Commands reach the store one at
// a time in the order they were applied; only pending[0] is ever in flight.
// It is not safe for concurrent use; bubbletea drives it from a single
// goroutine.
type View struct {
	base      models.Board
	projected models.Board
	pending   []Command
	inFlight  bool
	stale     bool
	log       *zap.Logger
}

func NewView(snapshot models.Board, log *zap.Logger) *View {
	if log == nil {
		log = zap.NewNop()
	}
	v := &View{log: log}
	v.Reset(snapshot)
	return v
}

// Reset replaces the snapshot, discarding every pending prediction.
func (v *View) Reset(snapshot models.Board) {
	v.base = cloneBoard(snapshot)
	v.pending = nil
	v.inFlight = false
	v.stale = false
	v.project()
}

// Board returns the projected board.
func (v *View) Board() models.Board { return v.projected }

func (v *View) Stale() bool { return v.stale }

// Pending reports how many predictions await a result.
func (v *View) Pending() int { return len(v.pending) }

// Task finds a task in the projected board.
func (v *View) Task(id int64) (models.Task, bool) {
	t, _, ok := locate(v.projected, id)
	return t, ok
}

// Apply predicts intent locally and queues the command. Use Next to obtain
// the command to send.
func (v *View) Apply(intent MoveIntent) (Command, error) {
	if v.stale {
		return Command{}, ErrStale
	}
	if _, _, ok := locate(v.projected, intent.TaskID); !ok {
		return Command{}, ErrUnknownTask
	}
	cmd := Command{RequestID: uuid.New(), Intent: intent}
	v.pending = append(v.pending, cmd)
	v.projected = move(v.projected, intent)
	return cmd, nil
}

// Next marks the oldest queued command as in flight and returns it. It
// returns false while another command awaits its result or nothing is queued.
func (v *View) Next() (Command, bool) {
	if v.inFlight || len(v.pending) == 0 {
		return Command{}, false
	}
	v.inFlight = true
	return v.pending[0], true
}

// Resolve reconciles the result of the in-flight command. Any other result
// is ignored.
func (v *View) Resolve(res Result) {
	if !v.inFlight || v.pending[0].RequestID != res.RequestID {
		v.log.Debug("ignoring result for unknown request", zap.Stringer("request_id", res.RequestID))
		return
	}
	v.inFlight = false
	if res.Err != nil {
		v.log.Warn("optimistic move rolled back",
			zap.Stringer("request_id", res.RequestID),
			zap.Int64("task_id", v.pending[0].Intent.TaskID),
			zap.Int("dropped", len(v.pending)),
			zap.Error(res.Err))
		v.pending = nil
		v.stale = true
		v.projected = cloneBoard(v.base)
		return
	}
	v.pending = v.pending[1:]
	if known, _, ok := locate(v.base, res.Task.ID); ok && res.Task.Version > known.Version {
		pos := res.Task.Position
		v.base = move(v.base, MoveIntent{TaskID: res.Task.ID, Status: res.Task.Status, Position: &pos})
		replace(v.base, res.Task)
	}
	v.project()
}

func (v *View) project() {
	v.projected = cloneBoard(v.base)
	for _, c := range v.pending {
		v.projected = move(v.projected, c.Intent)
	}
}

// Execute sends cmd to the backend. It does not touch any View, so it can
// run off the UI goroutine.
func Execute(ctx context.Context, b Backend, cmd Command) Result {
	task, err := b.Move(ctx, cmd.Intent.TaskID, service.MoveInput{
		Status:   cmd.Intent.Status,
		Position: cmd.Intent.Position,
	})
	return Result{RequestID: cmd.RequestID, Task: task, Err: err}
}

// Refresh fetches a fresh snapshot for Reset.
func Refresh(ctx context.Context, b Backend, sprintID *int64) (models.Board, error) {
	return b.List(ctx, sprintID)
}

// move mirrors the store's reindexing: close the gap in the source column,
// clamp the target into the destination, shift the tail down by one.
func move(b models.Board, in MoveIntent) models.Board {
	task, from, ok := locate(b, in.TaskID)
	if !ok || !in.Status.Valid() {
		return b
	}
	if task.Status == in.Status && in.Position == nil {
		return b
	}
	out := cloneBoard(b)
	src := slices.Delete(out.Columns[task.Status], from, from+1)
	out.Columns[task.Status] = src

	dst := out.Columns[in.Status]
	target := len(dst)
	if in.Position != nil {
		target = min(max(*in.Position, 0), len(dst))
	}
	task.Status = in.Status
	out.Columns[in.Status] = slices.Insert(dst, target, task)

	renumber(out.Columns[task.Status])
	renumber(src)
	return out
}

func renumber(col []models.Task) {
	for i := range col {
		col[i].Position = i
	}
}

func locate(b models.Board, id int64) (models.Task, int, bool) {
	for _, col := range b.Columns {
		for i, t := range col {
			if t.ID == id {
				return t, i, true
			}
		}
	}
	return models.Task{}, -1, false
}

// replace overwrites the stored copy of t in place, keeping its slot.
func replace(b models.Board, t models.Task) {
	col := b.Columns[t.Status]
	for i := range col {
		if col[i].ID == t.ID {
			t.Position = col[i].Position
			col[i] = t
			return
		}
	}
}

func cloneBoard(b models.Board) models.Board {
	out := models.Board{Columns: make(map[models.TaskStatus][]models.Task, len(models.TaskStatuses))}
	for _, s := range models.TaskStatuses {
		out.Columns[s] = slices.Clone(b.Columns[s])
		if out.Columns[s] == nil {
			out.Columns[s] = []models.Task{}
		}
	}
	return out
}
