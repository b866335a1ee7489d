package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore_PutMergesAndCreates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	store := NewDocumentStore(f.db, f.uow, f.feed)

	require.NoError(t, store.Put(ctx, CollectionProjects, "p1", Record{"name": "Station", "color": "teal", "order": float64(2)}))
	require.NoError(t, store.Put(ctx, CollectionProjects, "p1", Record{"startDate": "2025-06-02", "endDate": "2025-06-06"}))

	docs, err := store.Get(ctx, CollectionProjects)
	require.NoError(t, err)
	require.Contains(t, docs, "p1")
	doc := docs["p1"]
	assert.Equal(t, "Station", doc["name"])
	assert.Equal(t, "2025-06-02", doc["startDate"])
	assert.Equal(t, 2, doc["order"])

	require.NoError(t, store.Put(ctx, CollectionTasks, "t1", Record{"projectId": "p1", "text": "Pour", "start": "2025-06-03", "end": "2025-06-04"}))
	tasks, err := store.Get(ctx, CollectionTasks)
	require.NoError(t, err)
	assert.Equal(t, "Pour", tasks["t1"]["text"])

	assert.ErrorIs(t, store.Put(ctx, CollectionTasks, "t1", Record{"end": "2025-06-01"}), domain.ErrInvalidRange)
	tasks, err = store.Get(ctx, CollectionTasks)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-04", tasks["t1"]["end"], "rejected merge leaves the task untouched")

	changes := f.changes.list()
	assert.Len(t, changes, 3)
}

func TestDocumentStore_PutRejectsBadFields(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	store := NewDocumentStore(f.db, f.uow, f.feed)

	assert.Error(t, store.Put(ctx, CollectionProjects, "p1", Record{"name": "x", "colour": "red"}))
	assert.Error(t, store.Put(ctx, CollectionProjects, "p1", Record{"name": 7}))
	assert.ErrorIs(t, store.Put(ctx, CollectionProjects, "p1",
		Record{"name": "x", "startDate": "2025-06-09", "endDate": "2025-06-01"}), domain.ErrInvalidRange)
	assert.ErrorIs(t, store.Put(ctx, CollectionTasks, "t1",
		Record{"text": "Pour", "start": "2025-06-09", "end": "2025-06-01"}), domain.ErrInvalidRange)
	assert.ErrorIs(t, store.Put(ctx, CollectionTasks, "t1", Record{"text": "Pour"}), domain.ErrInvalidRange)
	assert.ErrorIs(t, store.Put(ctx, "photos", "p1", Record{}), ErrUnknownCollection)
	assert.Error(t, store.Put(ctx, CollectionProjects, "", Record{"name": "x"}))
	assert.Empty(t, f.changes.list())
}

func TestDocumentStore_WorkersAndCells(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	store := NewDocumentStore(f.db, f.uow, f.feed)

	require.NoError(t, store.Put(ctx, CollectionWorkers, "w1", Record{"name": "Sato", "nameKana": "さとう", "order": 0}))
	require.NoError(t, store.Put(ctx, CollectionWorkers, "w1", Record{"order": 4, "birthDate": "1980-07-15"}))

	workers, err := store.Get(ctx, CollectionWorkers)
	require.NoError(t, err)
	assert.Equal(t, 4, workers["w1"]["order"])
	assert.Equal(t, "1980-07-15", workers["w1"]["birthDate"])

	key := domain.CellKey{WorkerID: "w1", Date: testutil.Date("2025-06-02")}.String()
	entries := []domain.Assignment{domain.StatusAssignment{Status: domain.StatusDayOff}}
	require.NoError(t, store.Put(ctx, CollectionAssignments, key, Record{"assignments": entries}))

	cells, err := store.Get(ctx, CollectionAssignments)
	require.NoError(t, err)
	assert.Equal(t, entries, cells[key]["assignments"])

	assert.ErrorIs(t, store.Put(ctx, CollectionAssignments, "nonsense", Record{}), domain.ErrInvalidCellKey)

	require.NoError(t, store.Delete(ctx, CollectionAssignments, key))
	require.NoError(t, store.Delete(ctx, CollectionWorkers, "w1"))
	assert.ErrorIs(t, store.Delete(ctx, CollectionWorkers, "w1"), domain.ErrNotFound)
}

func TestDocumentStore_DeletePublishesCascades(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	store := NewDocumentStore(f.db, f.uow, f.feed)

	require.NoError(t, store.Put(ctx, CollectionProjects, "p1", Record{"name": "Station"}))
	for _, id := range []string{"t1", "t2"} {
		require.NoError(t, store.Put(ctx, CollectionTasks, id,
			Record{"projectId": "p1", "text": id, "start": "2025-06-03", "end": "2025-06-04"}))
	}
	require.NoError(t, store.Put(ctx, CollectionWorkers, "w1", Record{"name": "Sato"}))
	key := domain.CellKey{WorkerID: "w1", Date: testutil.Date("2025-06-03")}.String()
	require.NoError(t, store.Put(ctx, CollectionAssignments, key,
		Record{"assignments": []domain.Assignment{domain.ProjectAssignment{ProjectID: "p1"}}}))

	var tasks, cells []Change
	defer store.Subscribe(CollectionTasks, func(c Change) { tasks = append(tasks, c) })()
	defer store.Subscribe(CollectionAssignments, func(c Change) { cells = append(cells, c) })()

	require.NoError(t, store.Delete(ctx, CollectionProjects, "p1"))
	require.Len(t, tasks, 1)
	assert.Equal(t, OpDelete, tasks[0].Op)
	assert.ElementsMatch(t, []string{"t1", "t2"}, tasks[0].IDs)
	left, err := store.Get(ctx, CollectionTasks)
	require.NoError(t, err)
	assert.Empty(t, left)

	require.NoError(t, store.Delete(ctx, CollectionWorkers, "w1"))
	assert.Equal(t, []Change{{Collection: CollectionAssignments, Op: OpDelete, IDs: []string{key}}}, cells)
}

func TestDocumentStore_Subscribe(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	store := NewDocumentStore(f.db, f.uow, f.feed)

	var got []Change
	unsub := store.Subscribe(CollectionProjects, func(c Change) { got = append(got, c) })
	require.NoError(t, store.Put(ctx, CollectionProjects, "p1", Record{"name": "Station"}))
	require.NoError(t, store.Delete(ctx, CollectionProjects, "p1"))
	unsub()
	require.NoError(t, store.Put(ctx, CollectionProjects, "p2", Record{"name": "Depot"}))

	assert.Equal(t, []Change{
		{Collection: CollectionProjects, Op: OpPut, IDs: []string{"p1"}},
		{Collection: CollectionProjects, Op: OpDelete, IDs: []string{"p1"}},
	}, got)

	_, err := store.Get(ctx, "photos")
	assert.ErrorIs(t, err, ErrUnknownCollection)
}
