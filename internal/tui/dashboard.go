package tui

import (
	"context"
	"time"

	"github.com/akyairhashvil/cohortops/internal/board"
	"github.com/akyairhashvil/cohortops/internal/config"
	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Options configures the dashboard.
type Options struct {
	ReportDir string
	Timeout   time.Duration
	Theme     string
	Log       *zap.Logger
}

// ViewState tracks cursor focus.
type ViewState struct {
	focusedColIdx  int
	focusedTaskIdx int
}

type DashboardModel struct {
	ctx  context.Context
	svc  *service.Services
	me   models.Member
	opts Options
	log  *zap.Logger
	keys *HandlerRegistry

	snap   Snapshot
	loaded bool
	board  *board.View
	// refreshQueued defers a reload until in-flight moves resolve.
	refreshQueued bool

	view   ViewState
	modal  ModalManager
	inputs InputState
	search SearchManager

	err           error
	Message       string
	width, height int
}

func NewDashboardModel(ctx context.Context, svc *service.Services, me models.Member, opts Options) DashboardModel {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = config.DefaultDBTimeout
	}
	if opts.Theme != "" {
		SetTheme(opts.Theme)
	}
	log := opts.Log.Named("tui")
	return DashboardModel{
		ctx:    ctx,
		svc:    svc,
		me:     me,
		opts:   opts,
		log:    log,
		keys:   defaultRegistry(),
		board:  board.NewView(models.NewBoard(nil), log),
		view:   ViewState{focusedColIdx: config.DefaultFocusColumn},
		inputs: newInputState(),
	}
}

func (m DashboardModel) Init() tea.Cmd { return m.loadCmd() }

func (m DashboardModel) viewMode() ViewMode {
	if m.search.Active() {
		return ViewModeFiltered
	}
	return ViewModeBoard
}

// visibleBoard is the projected board with the filter applied.
func (m DashboardModel) visibleBoard() models.Board {
	return m.search.Apply(m.board.Board(), m.snap.Names)
}

func (m DashboardModel) focusedStatus() models.TaskStatus {
	return models.TaskStatuses[m.view.focusedColIdx]
}

// focusedTask returns the task under the cursor in the visible board.
func (m DashboardModel) focusedTask() (models.Task, bool) {
	col := m.visibleBoard().Column(m.focusedStatus())
	if m.view.focusedTaskIdx < 0 || m.view.focusedTaskIdx >= len(col) {
		return models.Task{}, false
	}
	return col[m.view.focusedTaskIdx], true
}

// clampCursor keeps the task cursor inside the focused column.
func (m *DashboardModel) clampCursor() {
	n := len(m.visibleBoard().Column(m.focusedStatus()))
	if m.view.focusedTaskIdx >= n {
		m.view.focusedTaskIdx = n - 1
	}
	if m.view.focusedTaskIdx < 0 {
		m.view.focusedTaskIdx = 0
	}
}

// followTask moves the cursor onto id wherever it now sits.
func (m *DashboardModel) followTask(id int64) {
	b := m.visibleBoard()
	for ci, s := range models.TaskStatuses {
		for ti, t := range b.Column(s) {
			if t.ID == id {
				m.view.focusedColIdx, m.view.focusedTaskIdx = ci, ti
				return
			}
		}
	}
	m.clampCursor()
}

func (m *DashboardModel) setStatusError(msg string) {
	m.Message = msg
}

// call runs fn against the services with the dashboard's timeout.
func (m DashboardModel) call(fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(m.ctx, m.opts.Timeout)
	defer cancel()
	return fn(ctx)
}
