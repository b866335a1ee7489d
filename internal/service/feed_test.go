package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeed_DeliversPerCollection(t *testing.T) {
	feed := NewFeed()
	var projects, tasks []Change
	feed.Subscribe(CollectionProjects, func(c Change) { projects = append(projects, c) })
	unsub := feed.Subscribe(CollectionTasks, func(c Change) { tasks = append(tasks, c) })

	feed.put(CollectionProjects, "p1")
	feed.remove(CollectionTasks, "t1", "t2")
	feed.put(CollectionTasks)

	unsub()
	unsub()
	feed.put(CollectionTasks, "t3")

	assert.Equal(t, []Change{{Collection: CollectionProjects, Op: OpPut, IDs: []string{"p1"}}}, projects)
	assert.Equal(t, []Change{{Collection: CollectionTasks, Op: OpDelete, IDs: []string{"t1", "t2"}}}, tasks)
}

func TestFeed_NilIsSilent(t *testing.T) {
	var feed *Feed
	assert.NotPanics(t, func() { feed.put(CollectionProjects, "p1") })
}

func TestFeed_ConcurrentPublish(t *testing.T) {
	feed := NewFeed()
	var mu sync.Mutex
	count := 0
	feed.Subscribe(CollectionAssignments, func(Change) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			feed.put(CollectionAssignments, "cell")
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, count)
}
