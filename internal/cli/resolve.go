package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/genba/internal/domain"
)

// resolveID picks the single candidate matching input: an exact ID first,
// then a case-insensitive exact name, then a unique ID prefix.
func resolveID(what, input string, ids []string, names func(i int) []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s is required", what)
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}
	for i, id := range ids {
		for _, n := range names(i) {
			if n != "" && strings.EqualFold(n, input) {
				return id, nil
			}
		}
	}
	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", what, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s %q is ambiguous (%d matches)", what, input, len(matches))
	}
}

func resolveProject(ctx context.Context, app *App, input string) (*domain.Project, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	id, err := resolveID("project", input, ids, func(i int) []string { return []string{projects[i].Name} })
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("project not found: %q", input)
}

func resolveTask(ctx context.Context, app *App, input string) (*domain.Task, error) {
	tasks, err := app.Tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	id, err := resolveID("task", input, ids, func(i int) []string { return []string{tasks[i].Text} })
	if err != nil {
		return nil, err
	}
	return app.Tasks.GetByID(ctx, id)
}

func resolveWorker(ctx context.Context, app *App, input string) (*domain.Worker, error) {
	workers, err := app.Workers.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(workers))
	for i, w := range workers {
		ids[i] = w.ID
	}
	id, err := resolveID("worker", input, ids, func(i int) []string {
		return []string{workers[i].Name, workers[i].NameKana}
	})
	if err != nil {
		return nil, err
	}
	for _, w := range workers {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, fmt.Errorf("worker not found: %q", input)
}

// projectNames maps project IDs to names for labels.
func projectNames(ctx context.Context, app *App) (map[string]string, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names, nil
}

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}
