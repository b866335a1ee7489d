package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/testutil"
	"github.com/alexanderramin/genba/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWindow_StartsMonday(t *testing.T) {
	tests := []struct {
		today, monday string
	}{
		{"2025-06-11", "2025-06-09"},
		{"2025-06-09", "2025-06-09"},
		{"2025-06-15", "2025-06-09"},
	}
	for _, tc := range tests {
		w := DefaultWindow(testutil.Date(tc.today), 0)
		assert.Equal(t, tc.monday, domain.FormatDate(w.Start), tc.today)
		assert.Equal(t, DefaultDays, w.Days)
	}
}

func TestWindow_DatesAndColumns(t *testing.T) {
	w := Window{Start: testutil.Date("2025-06-09"), Days: 7}

	dates := w.Dates()
	require.Len(t, dates, 7)
	assert.Equal(t, "2025-06-15", domain.FormatDate(dates[6]))
	assert.Equal(t, "2025-06-15", domain.FormatDate(w.End()))
	assert.Equal(t, 2, w.Column(testutil.Date("2025-06-11")))
	assert.Equal(t, -1, w.Column(testutil.Date("2025-06-16")))
	assert.True(t, w.Contains(testutil.Date("2025-06-09")))
}

func TestWindow_ScrollClampsToOneYear(t *testing.T) {
	today := testutil.Date("2025-06-11")
	w := DefaultWindow(today, 35)

	assert.Equal(t, "2025-06-16", domain.FormatDate(w.Scroll(7, today).Start))
	assert.Equal(t, "2024-06-11", domain.FormatDate(w.Scroll(-400, today).Start))

	far := w.Scroll(400, today)
	assert.Equal(t, "2026-05-08", domain.FormatDate(far.Start))
	assert.Equal(t, "2026-06-11", domain.FormatDate(far.End()))
}

func TestBoardService_Snapshot(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p := testutil.NewTestProject("Station", testutil.WithSchedule("2025-06-11", "2025-06-20"), testutil.WithOrder(1))
	q := testutil.NewTestProject("Depot", testutil.WithOrder(0))
	require.NoError(t, f.projects.Create(ctx, p))
	require.NoError(t, f.projects.Create(ctx, q))
	// Scenario from the lane engine: A=0, B=1, D=2, C=0.
	for _, task := range []*domain.Task{
		testutil.NewTestTask(p.ID, "A", "2025-06-11", "2025-06-14"),
		testutil.NewTestTask(p.ID, "B", "2025-06-13", "2025-06-16"),
		testutil.NewTestTask(p.ID, "C", "2025-06-17", "2025-06-20"),
		testutil.NewTestTask(p.ID, "D", "2025-06-13", "2025-06-13"),
	} {
		require.NoError(t, f.tasks.Create(ctx, task))
	}

	w := testutil.NewTestWorker("Sato")
	require.NoError(t, f.workers.Create(ctx, w))
	in := domain.CellKey{WorkerID: w.ID, Date: testutil.Date("2025-06-12")}
	out := domain.CellKey{WorkerID: w.ID, Date: testutil.Date("2025-08-01")}
	require.NoError(t, f.assignments.Put(ctx, in, []domain.Assignment{domain.ProjectAssignment{ProjectID: p.ID}}))
	require.NoError(t, f.assignments.Put(ctx, out, []domain.Assignment{domain.ProjectAssignment{ProjectID: p.ID}}))

	svc := NewBoardService(f.projects, f.tasks, f.workers, f.assignments)
	board, err := svc.Snapshot(ctx, DefaultWindow(testutil.Date("2025-06-11"), 35))
	require.NoError(t, err)

	require.Len(t, board.Projects, 2)
	assert.Equal(t, "Depot", board.Projects[0].Name)
	assert.Equal(t, 0, board.Layout[q.ID].LaneCount)

	res := board.Layout[p.ID]
	assert.Equal(t, 3, res.LaneCount)
	levels := make(map[string]int)
	for _, pt := range res.Positioned {
		levels[pt.Text] = pt.Level
	}
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "D": 2, "C": 0}, levels)

	assert.Len(t, board.Assignments, 1)
	assert.Equal(t, []domain.Assignment{domain.ProjectAssignment{ProjectID: p.ID}}, board.Cell(w.ID, testutil.Date("2025-06-12")))
	assert.Equal(t, "Station", board.ProjectNames()[p.ID])
}

func TestBoard_ApplyLocalKeepsLanesUntilRelayout(t *testing.T) {
	p := testutil.NewTestProject("P", testutil.WithSchedule("2025-06-01", "2025-06-30"))
	a := *testutil.NewTestTask(p.ID, "a", "2025-06-02", "2025-06-04")
	b := *testutil.NewTestTask(p.ID, "b", "2025-06-03", "2025-06-05")
	board := &Board{
		Projects: []*domain.Project{p},
		Tasks:    map[string][]domain.Task{p.ID: {a, b}},
	}
	board.Relayout()
	require.Equal(t, 2, board.Layout[p.ID].LaneCount)

	moved := domain.NewDateRange(testutil.Date("2025-06-10"), testutil.Date("2025-06-12"))
	board.ApplyLocal([]timeline.DateChange{
		{Kind: timeline.KindTask, ID: b.ID, Range: moved},
		{Kind: timeline.KindProject, ID: p.ID, Range: moved},
		{Kind: timeline.KindTask, ID: "ghost", Range: moved},
	})

	children := board.ChildTasks(p.ID)
	r, _ := children[1].Range()
	assert.Equal(t, moved, r)
	pr, _ := p.Range()
	assert.Equal(t, moved, pr)
	assert.Equal(t, 2, board.Layout[p.ID].LaneCount)
	for _, pt := range board.Layout[p.ID].Positioned {
		if pt.ID != b.ID {
			continue
		}
		lr, ok := pt.Range()
		require.True(t, ok)
		assert.Equal(t, moved, lr, "layout shows the preview dates")
		assert.Equal(t, 1, pt.Level, "lane is frozen until relayout")
	}

	board.Relayout()
	assert.Equal(t, 1, board.Layout[p.ID].LaneCount)

	children[0].Text = "mutated copy"
	assert.Equal(t, "a", board.Tasks[p.ID][0].Text)
}

func TestBoard_Filtered(t *testing.T) {
	board := &Board{
		Projects: []*domain.Project{{ID: "1", Name: "Station Renovation"}, {ID: "2", Name: "Depot"}},
		Workers:  []*domain.Worker{{ID: "a", Name: "Sato", NameKana: "さとう"}, {ID: "b", Name: "Ito", NameKana: "いとう"}},
	}

	f := board.Filtered("station")
	require.Len(t, f.Projects, 1)
	assert.Equal(t, "1", f.Projects[0].ID)
	assert.Empty(t, f.Workers)

	f = board.Filtered("さと")
	assert.Empty(t, f.Projects)
	require.Len(t, f.Workers, 1)
	assert.Equal(t, "a", f.Workers[0].ID)

	f = board.Filtered("  ")
	assert.Len(t, f.Projects, 2)
	assert.Len(t, f.Workers, 2)
	assert.Len(t, board.Projects, 2, "source board is untouched")
}
