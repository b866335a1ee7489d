package service

import (
	"sync"
)

// Collection names a document collection of the board store.
type Collection string

const (
	CollectionProjects    Collection = "projects"
	CollectionTasks       Collection = "tasks"
	CollectionWorkers     Collection = "workers"
	CollectionAssignments Collection = "assignments"
)

// Collections lists every collection in load order.
var Collections = []Collection{CollectionProjects, CollectionTasks, CollectionWorkers, CollectionAssignments}

// ChangeOp is the kind of write a Change reports.
type ChangeOp string

const (
	OpPut    ChangeOp = "put"
	OpDelete ChangeOp = "delete"
)

// Change is published after a write to a collection commits.
type Change struct {
	Collection Collection
	Op         ChangeOp
	IDs        []string
}

// Feed fans committed changes out to subscribers of a collection.
// Callbacks run synchronously on the publishing goroutine, which for drag
// commits is not the UI goroutine.
type Feed struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Collection]map[int]func(Change)
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[Collection]map[int]func(Change))}
}

// Subscribe registers fn for changes to c and returns its cancel func.
func (f *Feed) Subscribe(c Collection, fn func(Change)) (unsubscribe func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	if f.subs[c] == nil {
		f.subs[c] = make(map[int]func(Change))
	}
	f.subs[c][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs[c], id)
			f.mu.Unlock()
		})
	}
}

// Publish delivers ch to the collection's subscribers. A nil Feed drops it.
func (f *Feed) Publish(ch Change) {
	if f == nil || len(ch.IDs) == 0 {
		return
	}
	f.mu.RLock()
	fns := make([]func(Change), 0, len(f.subs[ch.Collection]))
	for _, fn := range f.subs[ch.Collection] {
		fns = append(fns, fn)
	}
	f.mu.RUnlock()

	for _, fn := range fns {
		fn(ch)
	}
}

func (f *Feed) put(c Collection, ids ...string) {
	f.Publish(Change{Collection: c, Op: OpPut, IDs: ids})
}

func (f *Feed) remove(c Collection, ids ...string) {
	f.Publish(Change{Collection: c, Op: OpDelete, IDs: ids})
}
