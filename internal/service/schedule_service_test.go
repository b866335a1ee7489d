package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/testutil"
	"github.com/alexanderramin/genba/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rangeOf(t *testing.T, start, end string) domain.DateRange {
	t.Helper()
	return domain.NewDateRange(testutil.Date(start), testutil.Date(end))
}

func TestScheduleService_ApplyDateChanges(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	svc := NewScheduleService(f.projects, f.tasks, f.uow, f.feed)

	p := testutil.NewTestProject("Station", testutil.WithSchedule("2025-06-02", "2025-06-20"))
	require.NoError(t, f.projects.Create(ctx, p))
	task := testutil.NewTestTask(p.ID, "Pour", "2025-06-03", "2025-06-05")
	require.NoError(t, f.tasks.Create(ctx, task))

	err := svc.ApplyDateChanges(ctx, []timeline.DateChange{
		{Kind: timeline.KindProject, ID: p.ID, Range: rangeOf(t, "2025-06-05", "2025-06-23")},
		{Kind: timeline.KindTask, ID: task.ID, Range: rangeOf(t, "2025-06-06", "2025-06-08")},
	})
	require.NoError(t, err)

	gotP, err := f.projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	pr, _ := gotP.Range()
	assert.Equal(t, rangeOf(t, "2025-06-05", "2025-06-23"), pr)

	gotT, err := f.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	tr, _ := gotT.Range()
	assert.Equal(t, rangeOf(t, "2025-06-06", "2025-06-08"), tr)

	assert.Len(t, f.changes.list(), 2)
}

func TestScheduleService_ApplyDateChanges_RollsBackBatch(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p := testutil.NewTestProject("Station", testutil.WithSchedule("2025-06-02", "2025-06-20"))
	require.NoError(t, f.projects.Create(ctx, p))
	task := testutil.NewTestTask(p.ID, "Pour", "2025-06-03", "2025-06-05")
	require.NoError(t, f.tasks.Create(ctx, task))

	failUoW := &testutil.FailOnNthExecUoW{DB: f.db, FailOn: 2, Err: fmt.Errorf("injected write failure")}
	svc := NewScheduleService(f.projects, f.tasks, failUoW, f.feed)

	err := svc.ApplyDateChanges(ctx, []timeline.DateChange{
		{Kind: timeline.KindProject, ID: p.ID, Range: rangeOf(t, "2025-06-05", "2025-06-23")},
		{Kind: timeline.KindTask, ID: task.ID, Range: rangeOf(t, "2025-06-06", "2025-06-08")},
	})
	require.Error(t, err)

	gotP, err := f.projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", domain.FormatOptionalDate(gotP.StartDate))
	assert.Empty(t, f.changes.list())
}

func TestScheduleService_ApplyDateChanges_RejectsInverted(t *testing.T) {
	f := setup(t)
	svc := NewScheduleService(f.projects, f.tasks, f.uow, f.feed)

	err := svc.ApplyDateChanges(context.Background(), []timeline.DateChange{
		{Kind: timeline.KindTask, ID: "x", Range: domain.DateRange{Start: testutil.Date("2025-06-09"), End: testutil.Date("2025-06-01")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestScheduleService_Reschedule_ProjectMoveShiftsChildren(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	svc := NewScheduleService(f.projects, f.tasks, f.uow, f.feed)

	p := testutil.NewTestProject("Station", testutil.WithSchedule("2025-06-02", "2025-06-20"))
	require.NoError(t, f.projects.Create(ctx, p))
	a := testutil.NewTestTask(p.ID, "a", "2025-06-03", "2025-06-05")
	b := testutil.NewTestTask(p.ID, "b", "2025-06-10", "2025-06-10")
	undated := testutil.NewTestTask(p.ID, "later", "2025-06-01", "2025-06-01", testutil.Unscheduled())
	for _, task := range []*domain.Task{a, b, undated} {
		require.NoError(t, f.tasks.Create(ctx, task))
	}

	changes, err := svc.Reschedule(ctx, timeline.KindProject, p.ID, timeline.HandleMove, 7)
	require.NoError(t, err)
	require.Len(t, changes, 3)

	for _, c := range []struct {
		id         string
		start, end string
	}{
		{a.ID, "2025-06-10", "2025-06-12"},
		{b.ID, "2025-06-17", "2025-06-17"},
	} {
		got, err := f.tasks.GetByID(ctx, c.id)
		require.NoError(t, err)
		r, _ := got.Range()
		assert.Equal(t, rangeOf(t, c.start, c.end), r)
	}
	gotP, err := f.projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-09", domain.FormatOptionalDate(gotP.StartDate))
	assert.Equal(t, "2025-06-27", domain.FormatOptionalDate(gotP.EndDate))
}

func TestScheduleService_Reschedule_ResizeClampsAndZeroIsNoop(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	svc := NewScheduleService(f.projects, f.tasks, f.uow, f.feed)

	p := testutil.NewTestProject("Station")
	require.NoError(t, f.projects.Create(ctx, p))
	task := testutil.NewTestTask(p.ID, "Pour", "2025-06-03", "2025-06-05")
	require.NoError(t, f.tasks.Create(ctx, task))

	_, err := svc.Reschedule(ctx, timeline.KindTask, task.ID, timeline.HandleMove, 0)
	require.NoError(t, err)
	assert.Empty(t, f.changes.list(), "zero offset writes nothing")

	changes, err := svc.Reschedule(ctx, timeline.KindTask, task.ID, timeline.HandleResizeLeft, 10)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, rangeOf(t, "2025-06-05", "2025-06-05"), changes[0].Range)

	_, err = svc.Reschedule(ctx, timeline.KindProject, p.ID, timeline.HandleMove, 1)
	assert.ErrorIs(t, err, timeline.ErrUnschedulable)

	_, err = svc.Reschedule(ctx, timeline.KindTask, task.ID, "spin", 1)
	assert.Error(t, err)
}

// A drag on the board commits through the schedule service and the next
// snapshot sees the new lanes.
func TestBoardDrag_CommitsThroughScheduleService(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p := testutil.NewTestProject("Station", testutil.WithSchedule("2025-06-09", "2025-06-30"))
	require.NoError(t, f.projects.Create(ctx, p))
	a := testutil.NewTestTask(p.ID, "a", "2025-06-10", "2025-06-12")
	b := testutil.NewTestTask(p.ID, "b", "2025-06-11", "2025-06-13")
	require.NoError(t, f.tasks.Create(ctx, a))
	require.NoError(t, f.tasks.Create(ctx, b))

	boards := NewBoardService(f.projects, f.tasks, f.workers, f.assignments)
	w := DefaultWindow(testutil.Date("2025-06-11"), 35)
	board, err := boards.Snapshot(ctx, w)
	require.NoError(t, err)
	require.Equal(t, 2, board.Layout[p.ID].LaneCount)

	editor, err := timeline.New(timeline.Config{
		DayWidth:   4,
		Source:     board,
		Local:      board,
		Persister:  NewScheduleService(f.projects, f.tasks, f.uow, f.feed),
		Dispatcher: func(job func()) { job() },
	})
	require.NoError(t, err)

	bRange, _ := b.Range()
	require.NoError(t, editor.PointerDown(timeline.Item{Kind: timeline.KindTask, ID: b.ID, Range: bRange}, timeline.HandleMove, 10))
	_, err = editor.PointerMove(18)
	require.NoError(t, err)
	assert.Equal(t, 2, board.Layout[p.ID].LaneCount, "lanes hold still mid-drag")

	_, committed, err := editor.PointerUp(ctx, 22)
	require.NoError(t, err)
	require.True(t, committed)
	board.Relayout()
	assert.Equal(t, 1, board.Layout[p.ID].LaneCount)

	fresh, err := boards.Snapshot(ctx, w)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Layout[p.ID].LaneCount)
	stored, err := f.tasks.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-14", domain.FormatOptionalDate(stored.Start))
}
