package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/genba/internal/domain"
	"github.com/google/uuid"
)

// Cell is the converted content of one worker/day cell.
type Cell struct {
	Key     domain.CellKey
	Entries []domain.Assignment
}

// GeneratedSite holds the domain records built from a site file.
type GeneratedSite struct {
	Projects []*domain.Project
	Tasks    []*domain.Task
	Workers  []*domain.Worker
	Cells    []Cell
}

// Convert transforms a validated SiteSchema into domain records with fresh
// IDs. Projects and workers are ranked in file order starting at zero.
// Call ValidateSiteSchema first; Convert assumes the schema is valid.
func Convert(schema *SiteSchema) (*GeneratedSite, error) {
	now := time.Now().UTC().Truncate(time.Second)
	out := &GeneratedSite{}

	projectIDs := make(map[string]string, len(schema.Projects))
	for i, p := range schema.Projects {
		start, err := domain.ParseOptionalDate(p.StartDate)
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", p.Name, err)
		}
		end, err := domain.ParseOptionalDate(p.EndDate)
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", p.Name, err)
		}
		order := i
		proj := &domain.Project{
			ID:        uuid.New().String(),
			Name:      p.Name,
			Color:     p.Color,
			StartDate: start,
			EndDate:   end,
			Order:     &order,
			CreatedAt: now,
			UpdatedAt: now,
		}
		projectIDs[p.key()] = proj.ID
		out.Projects = append(out.Projects, proj)

		for _, t := range p.Tasks {
			ts, err := domain.ParseDate(t.Start)
			if err != nil {
				return nil, fmt.Errorf("task %q: %w", t.Text, err)
			}
			te, err := domain.ParseDate(t.End)
			if err != nil {
				return nil, fmt.Errorf("task %q: %w", t.Text, err)
			}
			out.Tasks = append(out.Tasks, &domain.Task{
				ID:        uuid.New().String(),
				ProjectID: proj.ID,
				Text:      t.Text,
				Start:     &ts,
				End:       &te,
				Color:     t.Color,
			})
		}
	}

	workerIDs := make(map[string]string, len(schema.Workers))
	for i, w := range schema.Workers {
		birth, err := domain.ParseOptionalDate(w.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("worker %q: %w", w.Name, err)
		}
		order := i
		worker := &domain.Worker{
			ID:        uuid.New().String(),
			Name:      w.Name,
			NameKana:  w.NameKana,
			BirthDate: birth,
			Order:     &order,
		}
		workerIDs[w.key()] = worker.ID
		out.Workers = append(out.Workers, worker)
	}

	cells, err := convertAssignments(schema.Assignments, projectIDs, workerIDs)
	if err != nil {
		return nil, err
	}
	out.Cells = cells
	return out, nil
}

// convertAssignments expands day runs into cells. A later entry for the
// same cell replaces an earlier one.
func convertAssignments(in []AssignmentImport, projectIDs, workerIDs map[string]string) ([]Cell, error) {
	var cells []Cell
	index := make(map[string]int)
	for _, a := range in {
		from, err := domain.ParseDate(a.Date)
		if err != nil {
			return nil, fmt.Errorf("assignment for %q: %w", a.Worker, err)
		}
		to := from
		if a.To != "" {
			if to, err = domain.ParseDate(a.To); err != nil {
				return nil, fmt.Errorf("assignment for %q: %w", a.Worker, err)
			}
		}

		entries := make([]domain.Assignment, 0, len(a.Projects)+1)
		for _, ref := range a.Projects {
			entries = append(entries, domain.ProjectAssignment{ProjectID: projectIDs[ref]})
		}
		if a.Status != "" {
			entries = append(entries, domain.StatusAssignment{Status: domain.WorkerStatus(a.Status)})
		}

		for _, day := range domain.NewDateRange(from, to).Dates() {
			key := domain.CellKey{WorkerID: workerIDs[a.Worker], Date: day}
			if i, ok := index[key.String()]; ok {
				cells[i].Entries = entries
				continue
			}
			index[key.String()] = len(cells)
			cells = append(cells, Cell{Key: key, Entries: entries})
		}
	}
	return cells, nil
}
