package domain

import (
	"fmt"
	"strings"
	"time"
)

// Assignment is one entry in a worker's day cell. It is either a
// ProjectAssignment or a StatusAssignment; the set is closed.
type Assignment interface {
	Kind() AssignmentKind
	isAssignment()
}

// AssignmentKind tags the concrete Assignment variant.
type AssignmentKind string

const (
	AssignProject AssignmentKind = "project"
	AssignStatus  AssignmentKind = "status"
)

// WorkerStatus is a non-project day state.
type WorkerStatus string

const (
	StatusDayOff     WorkerStatus = "day_off"
	StatusHalfDayOff WorkerStatus = "half_day_off"
)

// ValidWorkerStatuses is the canonical set of accepted status strings.
var ValidWorkerStatuses = map[WorkerStatus]bool{
	StatusDayOff:     true,
	StatusHalfDayOff: true,
}

// ProjectAssignment places the worker on a project for the day.
type ProjectAssignment struct {
	ProjectID string
}

func (ProjectAssignment) Kind() AssignmentKind { return AssignProject }
func (ProjectAssignment) isAssignment()        {}

// StatusAssignment marks the worker as off (fully or half) for the day.
type StatusAssignment struct {
	Status WorkerStatus
}

func (StatusAssignment) Kind() AssignmentKind { return AssignStatus }
func (StatusAssignment) isAssignment()        {}

// CellKey identifies one worker/day cell in the grid.
type CellKey struct {
	WorkerID string
	Date     time.Time
}

// String renders the key as w<workerID>-<yyyy-mm-dd>.
func (k CellKey) String() string {
	return "w" + k.WorkerID + "-" + FormatDate(k.Date)
}

// ParseCellKey parses a key produced by CellKey.String. Worker IDs may
// themselves contain dashes; the date is always the last 10 characters.
func ParseCellKey(s string) (CellKey, error) {
	const dateLen = len(DateLayout)
	if !strings.HasPrefix(s, "w") || len(s) < 1+1+1+dateLen || s[len(s)-dateLen-1] != '-' {
		return CellKey{}, fmt.Errorf("%w: %q", ErrInvalidCellKey, s)
	}
	id := s[1 : len(s)-dateLen-1]
	d, err := time.Parse(DateLayout, s[len(s)-dateLen:])
	if err != nil {
		return CellKey{}, fmt.Errorf("%w: %q", ErrInvalidCellKey, s)
	}
	return CellKey{WorkerID: id, Date: d}, nil
}

// DescribeAssignment returns a short human label, resolving project names
// through names when available.
func DescribeAssignment(a Assignment, names map[string]string) string {
	switch v := a.(type) {
	case ProjectAssignment:
		if n, ok := names[v.ProjectID]; ok {
			return n
		}
		return v.ProjectID
	case StatusAssignment:
		switch v.Status {
		case StatusHalfDayOff:
			return "half day off"
		default:
			return "day off"
		}
	default:
		panic(fmt.Sprintf("unhandled assignment type %T", a))
	}
}
