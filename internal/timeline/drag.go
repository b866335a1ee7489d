// Package timeline turns pointer drags on project and task bars into
// whole-day date changes.
package timeline

import (
	"fmt"
	"math"

	"github.com/alexanderramin/genba/internal/domain"
)

// ItemKind tags the kind of bar being dragged.
type ItemKind string

const (
	KindProject ItemKind = "project"
	KindTask    ItemKind = "task"
)

// Handle is the drag affordance in use.
type Handle string

const (
	HandleMove        Handle = "move"
	HandleResizeLeft  Handle = "resize-left"
	HandleResizeRight Handle = "resize-right"
)

// ParseHandle validates a handle name.
func ParseHandle(s string) (Handle, error) {
	switch h := Handle(s); h {
	case HandleMove, HandleResizeLeft, HandleResizeRight:
		return h, nil
	default:
		return "", fmt.Errorf("unknown handle %q (expected move, resize-left or resize-right)", s)
	}
}

// Item is a draggable bar and its current dates.
type Item struct {
	Kind  ItemKind
	ID    string
	Range domain.DateRange
}

// ChildBaseline is a child task's dates captured when its project drag began.
type ChildBaseline struct {
	ID       string
	Original domain.DateRange
}

// DragState is the data of an active drag. Original and Children are the
// baseline every preview is computed from; they never change mid-drag.
type DragState struct {
	Item     Item
	Handle   Handle
	OriginX  float64
	Original domain.DateRange
	Children []ChildBaseline
}

// DateChange is a new date range for one project or task.
type DateChange struct {
	Kind  ItemKind
	ID    string
	Range domain.DateRange
}

// Collection is the store collection the change is written to.
func (c DateChange) Collection() string {
	if c.Kind == KindProject {
		return "projects"
	}
	return "tasks"
}

// Commit is the single batch written when a drag ends with a change.
type Commit struct {
	Changes []DateChange
}

// DayOffset converts a pointer delta into whole days, rounding to the
// nearest day boundary. Halves round up, so half a day left is still a
// click while half a day right is one day.
func DayOffset(dx, dayWidth float64) int {
	if dayWidth <= 0 {
		return 0
	}
	return int(math.Floor(dx/dayWidth + 0.5))
}

// Apply computes the range a handle produces from original after moving
// offset days. Moves keep the duration. Resizes never invert the range:
// a start dragged past the end is clamped to the end, and vice versa.
func Apply(handle Handle, original domain.DateRange, offset int) domain.DateRange {
	switch handle {
	case HandleMove:
		start := domain.AddDays(original.Start, offset)
		return domain.DateRange{Start: start, End: domain.AddDays(start, original.Days())}
	case HandleResizeLeft:
		start := domain.AddDays(original.Start, offset)
		end := domain.Day(original.End)
		if start.After(end) {
			start = end
		}
		return domain.DateRange{Start: start, End: end}
	case HandleResizeRight:
		start := domain.Day(original.Start)
		end := domain.AddDays(original.End, offset)
		if end.Before(start) {
			end = start
		}
		return domain.DateRange{Start: start, End: end}
	default:
		return original
	}
}

// Changes derives the item change and, for a whole-project move, one
// change per child shifted by the same offset.
func Changes(s DragState, offset int) []DateChange {
	changes := make([]DateChange, 0, 1+len(s.Children))
	changes = append(changes, DateChange{
		Kind:  s.Item.Kind,
		ID:    s.Item.ID,
		Range: Apply(s.Handle, s.Original, offset),
	})
	for _, c := range s.Children {
		changes = append(changes, DateChange{
			Kind:  KindTask,
			ID:    c.ID,
			Range: c.Original.Shift(offset),
		})
	}
	return changes
}
