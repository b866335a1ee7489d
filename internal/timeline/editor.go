package timeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/genba/internal/domain"
)

var (
	// ErrNotDragging is returned for pointer moves or releases with no drag.
	ErrNotDragging = errors.New("no drag in progress")

	// ErrDragInProgress is returned when a pointer-down arrives mid-drag.
	ErrDragInProgress = errors.New("drag already in progress")

	// ErrUnschedulable is returned when the pressed bar has no complete range.
	ErrUnschedulable = errors.New("item has no start and end date")
)

// State is the editor's interaction state.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Source supplies a project's child tasks from the in-memory board.
type Source interface {
	ChildTasks(projectID string) []domain.Task
}

// LocalState receives previews and final dates synchronously so the bars
// track the pointer without waiting on storage.
type LocalState interface {
	ApplyLocal(changes []DateChange)
}

// Persister writes one commit atomically.
type Persister interface {
	ApplyDateChanges(ctx context.Context, changes []DateChange) error
}

// Dispatcher runs a persistence job without blocking the caller.
type Dispatcher func(job func())

// GoDispatcher runs each job on its own goroutine.
func GoDispatcher(job func()) { go job() }

// Config wires the editor's collaborators.
type Config struct {
	// DayWidth is the width of one day column, in the same unit as pointer X.
	DayWidth   float64
	Source     Source
	Local      LocalState
	Persister  Persister
	Notifier   domain.Notifier
	Dispatcher Dispatcher
	Logger     *slog.Logger
}

// editorState is either idle or dragging; only the dragging state carries
// drag data, so a delta can never be computed without a baseline.
type editorState interface{ state() State }

type idleState struct{}

func (idleState) state() State { return Idle }

type draggingState struct {
	drag    DragState
	preview []DateChange
}

func (*draggingState) state() State { return Dragging }

// Editor is the drag state machine. It is not safe for concurrent use;
// pointer events are expected from a single event loop.
type Editor struct {
	cfg Config
	cur editorState
}

// New validates cfg and returns an idle editor.
func New(cfg Config) (*Editor, error) {
	if cfg.DayWidth <= 0 {
		return nil, fmt.Errorf("day width must be positive, got %v", cfg.DayWidth)
	}
	if cfg.Persister == nil {
		return nil, fmt.Errorf("persister is required")
	}
	if cfg.Notifier == nil {
		cfg.Notifier = domain.NoopNotifier{}
	}
	if cfg.Dispatcher == nil {
		cfg.Dispatcher = GoDispatcher
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Editor{cfg: cfg, cur: idleState{}}, nil
}

// State reports whether a drag is active.
func (e *Editor) State() State { return e.cur.state() }

// Active returns the current drag, if any.
func (e *Editor) Active() (DragState, bool) {
	d, ok := e.cur.(*draggingState)
	if !ok {
		return DragState{}, false
	}
	return d.drag, true
}

// Preview returns the changes last published during the active drag.
func (e *Editor) Preview() []DateChange {
	if d, ok := e.cur.(*draggingState); ok {
		return d.preview
	}
	return nil
}

// PointerDown starts a drag on item with the given handle at pointer x.
// A whole-project move snapshots the project's child tasks so they can be
// shifted with it.
func (e *Editor) PointerDown(item Item, handle Handle, x float64) error {
	if _, ok := e.cur.(*draggingState); ok {
		return ErrDragInProgress
	}
	if _, err := ParseHandle(string(handle)); err != nil {
		return err
	}
	if item.Range.Start.IsZero() || item.Range.End.IsZero() {
		return ErrUnschedulable
	}

	drag := DragState{
		Item:     item,
		Handle:   handle,
		OriginX:  x,
		Original: domain.NewDateRange(item.Range.Start, item.Range.End),
	}
	if item.Kind == KindProject && handle == HandleMove && e.cfg.Source != nil {
		for _, t := range e.cfg.Source.ChildTasks(item.ID) {
			r, ok := t.Range()
			if !ok {
				continue
			}
			drag.Children = append(drag.Children, ChildBaseline{ID: t.ID, Original: r})
		}
	}

	e.cur = &draggingState{drag: drag}
	e.cfg.Logger.Debug("drag_start",
		"kind", string(item.Kind), "id", item.ID, "handle", string(handle), "children", len(drag.Children))
	return nil
}

// PointerMove recomputes the preview for pointer x and publishes it to
// local state immediately.
func (e *Editor) PointerMove(x float64) ([]DateChange, error) {
	d, ok := e.cur.(*draggingState)
	if !ok {
		return nil, ErrNotDragging
	}
	offset := DayOffset(x-d.drag.OriginX, e.cfg.DayWidth)
	d.preview = Changes(d.drag, offset)
	e.publish(d.preview)
	return d.preview, nil
}

// PointerUp ends the drag at pointer x and returns to Idle. When the
// pointer ended a whole day or more away from its origin, the final dates
// are handed to the persister as one batch without waiting for it; the
// returned bool reports whether that happened. A release on the origin day
// is a click and writes nothing.
//
// A failed write is reported through the notifier; local dates are kept.
func (e *Editor) PointerUp(ctx context.Context, x float64) (Commit, bool, error) {
	d, ok := e.cur.(*draggingState)
	if !ok {
		return Commit{}, false, ErrNotDragging
	}
	e.cur = idleState{}

	offset := DayOffset(x-d.drag.OriginX, e.cfg.DayWidth)
	changes := Changes(d.drag, offset)
	e.publish(changes)

	if offset == 0 {
		e.cfg.Logger.Debug("drag_click", "kind", string(d.drag.Item.Kind), "id", d.drag.Item.ID)
		return Commit{}, false, nil
	}

	commit := Commit{Changes: changes}
	e.dispatch(context.WithoutCancel(ctx), d.drag.Item, commit)
	return commit, true, nil
}

// Reset drops an active drag without publishing or persisting anything.
// It is meant for tearing down the hosting view, not as a user gesture.
func (e *Editor) Reset() {
	e.cur = idleState{}
}

func (e *Editor) publish(changes []DateChange) {
	if e.cfg.Local != nil {
		e.cfg.Local.ApplyLocal(changes)
	}
}

func (e *Editor) dispatch(ctx context.Context, item Item, commit Commit) {
	persister, notifier, logger := e.cfg.Persister, e.cfg.Notifier, e.cfg.Logger
	e.cfg.Dispatcher(func() {
		if err := persister.ApplyDateChanges(ctx, commit.Changes); err != nil {
			logger.ErrorContext(ctx, "drag_commit_failed",
				"kind", string(item.Kind), "id", item.ID, "changes", len(commit.Changes), "error", err.Error())
			notifier.Notify(domain.Notification{
				Message: fmt.Sprintf("saving new dates for %s %s failed: %v", item.Kind, item.ID, err),
				Level:   domain.NotifyError,
			})
			return
		}
		logger.InfoContext(ctx, "drag_commit",
			"kind", string(item.Kind), "id", item.ID, "changes", len(commit.Changes))
	})
}
