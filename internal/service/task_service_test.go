package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_SaveCreatesThenUpdates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	svc := NewTaskService(f.tasks, f.projects, f.feed)

	p := testutil.NewTestProject("Station")
	require.NoError(t, f.projects.Create(ctx, p))

	task := &domain.Task{ProjectID: p.ID, Text: "Scaffold", Start: testutil.DatePtr("2025-03-03"), End: testutil.DatePtr("2025-03-05")}
	require.NoError(t, svc.Save(ctx, task))
	require.NotEmpty(t, task.ID)

	task.Text = "Scaffold east side"
	require.NoError(t, svc.Save(ctx, task))

	list, err := svc.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Scaffold east side", list[0].Text)
	assert.Len(t, f.changes.list(), 2)
}

func TestTaskService_SaveRejectsBadRanges(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	svc := NewTaskService(f.tasks, f.projects, f.feed)

	p := testutil.NewTestProject("Station")
	require.NoError(t, f.projects.Create(ctx, p))

	tests := []struct {
		name       string
		start, end *string
	}{
		{"inverted", strp("2025-03-09"), strp("2025-03-01")},
		{"missing start", nil, strp("2025-03-01")},
		{"missing end", strp("2025-03-01"), nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			task := &domain.Task{ProjectID: p.ID, Text: "x"}
			if tc.start != nil {
				task.Start = testutil.DatePtr(*tc.start)
			}
			if tc.end != nil {
				task.End = testutil.DatePtr(*tc.end)
			}
			assert.ErrorIs(t, svc.Save(ctx, task), domain.ErrInvalidRange)
			assert.Empty(t, task.ID)
		})
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTaskService_SaveUnknownProject(t *testing.T) {
	f := setup(t)
	svc := NewTaskService(f.tasks, f.projects, f.feed)

	task := &domain.Task{ProjectID: "ghost", Text: "x", Start: testutil.DatePtr("2025-03-01"), End: testutil.DatePtr("2025-03-01")}
	assert.ErrorIs(t, svc.Save(context.Background(), task), domain.ErrNotFound)
}

func TestTaskService_Delete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	svc := NewTaskService(f.tasks, f.projects, f.feed)

	p := testutil.NewTestProject("Station")
	require.NoError(t, f.projects.Create(ctx, p))
	task := testutil.NewTestTask(p.ID, "a", "2025-01-01", "2025-01-02")
	require.NoError(t, f.tasks.Create(ctx, task))

	require.NoError(t, svc.Delete(ctx, task.ID))
	_, err := svc.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []Change{{Collection: CollectionTasks, Op: OpDelete, IDs: []string{task.ID}}}, f.changes.list())
}

func strp(s string) *string { return &s }
