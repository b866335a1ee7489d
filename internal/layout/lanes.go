// Package layout packs a project's tasks into non-overlapping lanes.
package layout

import (
	"sort"

	"github.com/alexanderramin/genba/internal/domain"
)

// Result is the lane layout of one project's tasks.
type Result struct {
	Positioned []domain.PositionedTask
	LaneCount  int
}

type placed struct {
	task domain.Task
	span domain.DateRange
}

// AssignLanes places every schedulable task into the lowest lane where it
// overlaps nothing already placed, opening a new lane when none fits.
//
// Tasks are considered in start-date order. The sort is stable, so tasks
// sharing a start date keep their input order and repeated calls on the same
// input yield the same levels. Tasks without both dates are left out.
// Positioned is returned in placement order.
func AssignLanes(tasks []domain.Task) Result {
	items := make([]placed, 0, len(tasks))
	for _, t := range tasks {
		span, ok := t.Range()
		if !ok {
			continue
		}
		items = append(items, placed{task: t, span: span})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].span.Start.Before(items[j].span.Start)
	})

	var lanes [][]domain.DateRange
	out := Result{Positioned: make([]domain.PositionedTask, 0, len(items))}

	for _, it := range items {
		level := firstFreeLane(lanes, it.span)
		if level == len(lanes) {
			lanes = append(lanes, nil)
		}
		lanes[level] = append(lanes[level], it.span)
		out.Positioned = append(out.Positioned, domain.PositionedTask{Task: it.task, Level: level})
	}

	out.LaneCount = len(lanes)
	return out
}

// firstFreeLane returns the index of the first lane with no range
// overlapping span, or len(lanes) when every lane is taken.
func firstFreeLane(lanes [][]domain.DateRange, span domain.DateRange) int {
	for i, lane := range lanes {
		free := true
		for _, r := range lane {
			if r.Overlaps(span) {
				free = false
				break
			}
		}
		if free {
			return i
		}
	}
	return len(lanes)
}

// ByProject lays out every project's tasks. Every project gets an entry,
// including projects with no tasks. Tasks whose project is not listed are
// ignored.
func ByProject(projects []*domain.Project, tasks []domain.Task) map[string]Result {
	grouped := make(map[string][]domain.Task, len(projects))
	for _, p := range projects {
		grouped[p.ID] = nil
	}
	for _, t := range tasks {
		if _, ok := grouped[t.ProjectID]; ok {
			grouped[t.ProjectID] = append(grouped[t.ProjectID], t)
		}
	}

	out := make(map[string]Result, len(grouped))
	for id, group := range grouped {
		out[id] = AssignLanes(group)
	}
	return out
}

// Levels returns task ID → lane for quick lookups by renderers.
func (r Result) Levels() map[string]int {
	m := make(map[string]int, len(r.Positioned))
	for _, pt := range r.Positioned {
		m[pt.ID] = pt.Level
	}
	return m
}

// RowHeight is the number of terminal rows a project row reserves: one for
// the project bar plus one per lane, with at least one lane row.
func RowHeight(laneCount int) int {
	if laneCount < 1 {
		laneCount = 1
	}
	return 1 + laneCount
}
