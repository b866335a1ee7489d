package layout

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/genba/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) *time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &t
}

func task(id, start, end string) domain.Task {
	return domain.Task{ID: id, ProjectID: "p1", Text: id, Start: day(start), End: day(end)}
}

func levelsOf(r Result) map[string]int { return r.Levels() }

func TestAssignLanes_WorkedExample(t *testing.T) {
	tasks := []domain.Task{
		task("A", "2025-06-11", "2025-06-14"),
		task("B", "2025-06-13", "2025-06-16"),
		task("C", "2025-06-17", "2025-06-20"),
		task("D", "2025-06-13", "2025-06-13"),
	}

	res := AssignLanes(tasks)

	assert.Equal(t, 3, res.LaneCount)
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "D": 2, "C": 0}, levelsOf(res))
}

func TestAssignLanes_SingleTask(t *testing.T) {
	res := AssignLanes([]domain.Task{task("only", "2025-06-01", "2025-06-05")})

	require.Len(t, res.Positioned, 1)
	assert.Equal(t, 0, res.Positioned[0].Level)
	assert.Equal(t, 1, res.LaneCount)
}

func TestAssignLanes_Empty(t *testing.T) {
	res := AssignLanes(nil)
	assert.Equal(t, 0, res.LaneCount)
	assert.Empty(t, res.Positioned)
}

func TestAssignLanes_SkipsTasksWithoutDates(t *testing.T) {
	noEnd := domain.Task{ID: "noend", ProjectID: "p1", Start: day("2025-06-01")}
	noStart := domain.Task{ID: "nostart", ProjectID: "p1", End: day("2025-06-01")}

	res := AssignLanes([]domain.Task{noEnd, task("ok", "2025-06-01", "2025-06-02"), noStart})

	require.Len(t, res.Positioned, 1)
	assert.Equal(t, "ok", res.Positioned[0].ID)
	assert.Equal(t, 1, res.LaneCount)
}

func TestAssignLanes_BoundaryDayOverlaps(t *testing.T) {
	res := AssignLanes([]domain.Task{
		task("first", "2025-06-01", "2025-06-03"),
		task("touching", "2025-06-03", "2025-06-05"),
		task("after", "2025-06-04", "2025-06-04"),
	})

	assert.Equal(t, map[string]int{"first": 0, "touching": 1, "after": 0}, levelsOf(res))
	assert.Equal(t, 2, res.LaneCount)
}

func TestAssignLanes_SequentialTasksShareLane(t *testing.T) {
	res := AssignLanes([]domain.Task{
		task("w3", "2025-06-15", "2025-06-20"),
		task("w1", "2025-06-01", "2025-06-07"),
		task("w2", "2025-06-08", "2025-06-14"),
	})

	assert.Equal(t, 1, res.LaneCount)
	for _, pt := range res.Positioned {
		assert.Equal(t, 0, pt.Level, pt.ID)
	}
	assert.Equal(t, "w1", res.Positioned[0].ID, "positioned in start order")
}

func TestAssignLanes_EqualStartKeepsInputOrder(t *testing.T) {
	a := task("a", "2025-06-01", "2025-06-02")
	b := task("b", "2025-06-01", "2025-06-02")

	assert.Equal(t, map[string]int{"a": 0, "b": 1}, levelsOf(AssignLanes([]domain.Task{a, b})))
	assert.Equal(t, map[string]int{"b": 0, "a": 1}, levelsOf(AssignLanes([]domain.Task{b, a})))
}

func TestAssignLanes_KnownPatterns(t *testing.T) {
	cases := []struct {
		name  string
		tasks []domain.Task
		lanes int
	}{
		{
			name: "nested",
			tasks: []domain.Task{
				task("outer", "2025-06-01", "2025-06-30"),
				task("inner1", "2025-06-05", "2025-06-06"),
				task("inner2", "2025-06-10", "2025-06-12"),
			},
			lanes: 2,
		},
		{
			name: "staircase",
			tasks: []domain.Task{
				task("s1", "2025-06-01", "2025-06-04"),
				task("s2", "2025-06-03", "2025-06-06"),
				task("s3", "2025-06-05", "2025-06-08"),
				task("s4", "2025-06-07", "2025-06-10"),
			},
			lanes: 2,
		},
		{
			name: "all same day",
			tasks: []domain.Task{
				task("x", "2025-06-01", "2025-06-01"),
				task("y", "2025-06-01", "2025-06-01"),
				task("z", "2025-06-01", "2025-06-01"),
			},
			lanes: 3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.lanes, AssignLanes(tc.tasks).LaneCount)
		})
	}
}

// maxConcurrent is the largest number of tasks covering one day, which is
// the lower bound on lanes for any valid layout.
func maxConcurrent(tasks []domain.Task) int {
	best := 0
	for _, probe := range tasks {
		n := 0
		for _, other := range tasks {
			r, _ := other.Range()
			if r.Contains(*probe.Start) {
				n++
			}
		}
		if n > best {
			best = n
		}
	}
	return best
}

func randomTasks(rng *rand.Rand, n int) []domain.Task {
	base := *day("2025-06-01")
	tasks := make([]domain.Task, n)
	for i := range tasks {
		s := base.AddDate(0, 0, rng.Intn(40))
		e := s.AddDate(0, 0, rng.Intn(8))
		tasks[i] = domain.Task{ID: fmt.Sprintf("t%02d", i), ProjectID: "p1", Start: &s, End: &e}
	}
	return tasks
}

// TestAssignLanes_Invariants property-tests no-overlap within a lane,
// lane minimality and determinism on random inputs.
func TestAssignLanes_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		tasks := randomTasks(rng, rng.Intn(25))
		res := AssignLanes(tasks)

		require.Len(t, res.Positioned, len(tasks), "trial %d", trial)

		for i, a := range res.Positioned {
			ra, _ := a.Range()
			for _, b := range res.Positioned[i+1:] {
				if a.Level != b.Level {
					continue
				}
				rb, _ := b.Range()
				assert.False(t, ra.Overlaps(rb), "trial %d: %s and %s share lane %d", trial, a.ID, b.ID, a.Level)
			}
			assert.GreaterOrEqual(t, a.Level, 0)
			assert.Less(t, a.Level, res.LaneCount)
		}

		assert.Equal(t, maxConcurrent(tasks), res.LaneCount, "trial %d: lane count must be minimal", trial)
		assert.Equal(t, res, AssignLanes(tasks), "trial %d: layout must be deterministic", trial)
	}
}

func TestByProject_GroupsAndIncludesEmptyProjects(t *testing.T) {
	projects := []*domain.Project{{ID: "p1"}, {ID: "p2"}}
	other := task("x", "2025-06-01", "2025-06-02")
	other.ProjectID = "p2"
	orphan := task("orphan", "2025-06-01", "2025-06-02")
	orphan.ProjectID = "gone"

	res := ByProject(projects, []domain.Task{
		task("a", "2025-06-01", "2025-06-03"),
		task("b", "2025-06-02", "2025-06-04"),
		other,
		orphan,
	})

	require.Len(t, res, 2)
	assert.Equal(t, 2, res["p1"].LaneCount)
	assert.Equal(t, 1, res["p2"].LaneCount)
	assert.Equal(t, "x", res["p2"].Positioned[0].ID)

	empty := ByProject([]*domain.Project{{ID: "p3"}}, nil)
	assert.Equal(t, 0, empty["p3"].LaneCount)
}

func TestRowHeight(t *testing.T) {
	assert.Equal(t, 2, RowHeight(0))
	assert.Equal(t, 2, RowHeight(1))
	assert.Equal(t, 4, RowHeight(3))
}
