package domain

import (
	"sort"
	"time"
)

// Project is a construction site shown as a bar with its tasks below it.
// Both dates are optional: a project may not be scheduled yet.
type Project struct {
	ID          string
	Name        string
	Color       string
	BorderColor string
	StartDate   *time.Time
	EndDate     *time.Time
	Order       *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Range returns the project's span when both dates are set.
func (p *Project) Range() (DateRange, bool) {
	if p.StartDate == nil || p.EndDate == nil {
		return DateRange{}, false
	}
	return NewDateRange(*p.StartDate, *p.EndDate), true
}

// HasSchedule reports whether both project dates are set.
func (p *Project) HasSchedule() bool {
	_, ok := p.Range()
	return ok
}

// DisplayID returns the first 8 characters of the ID.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	if p.ID == "" {
		return "--"
	}
	return p.ID
}

// Validate checks direct-edit invariants.
func (p *Project) Validate() error {
	if r, ok := p.Range(); ok {
		return ValidateRange(r.Start, r.End)
	}
	return nil
}

func orderKey(o *int) int {
	if o == nil {
		return int(^uint(0) >> 1)
	}
	return *o
}

// SortProjects orders projects by display rank; unranked projects go last
// and keep their relative order.
func SortProjects(projects []*Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return orderKey(projects[i].Order) < orderKey(projects[j].Order)
	})
}
