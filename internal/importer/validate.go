package importer

import (
	"fmt"

	"github.com/alexanderramin/genba/internal/domain"
)

// ValidateSiteSchema checks the schema before conversion and returns every
// problem found.
func ValidateSiteSchema(schema *SiteSchema) []error {
	var errs []error

	projectRefs := make(map[string]bool)
	for i, p := range schema.Projects {
		errs = append(errs, validateProject(i, p, projectRefs)...)
	}

	workerRefs := make(map[string]bool)
	for i, w := range schema.Workers {
		field := fmt.Sprintf("workers[%d]", i)
		if w.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", field))
			continue
		}
		if workerRefs[w.key()] {
			errs = append(errs, fmt.Errorf("%s: duplicate ref %q", field, w.key()))
		}
		workerRefs[w.key()] = true
		errs = append(errs, checkDate(field+".birth_date", w.BirthDate, false)...)
	}

	for i, a := range schema.Assignments {
		errs = append(errs, validateAssignment(i, a, projectRefs, workerRefs)...)
	}
	return errs
}

func validateProject(i int, p ProjectImport, refs map[string]bool) []error {
	var errs []error
	field := fmt.Sprintf("projects[%d]", i)

	if p.Name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", field))
	} else if refs[p.key()] {
		errs = append(errs, fmt.Errorf("%s: duplicate ref %q", field, p.key()))
	}
	refs[p.key()] = true

	startErrs := checkDate(field+".start_date", p.StartDate, false)
	endErrs := checkDate(field+".end_date", p.EndDate, false)
	errs = append(errs, startErrs...)
	errs = append(errs, endErrs...)
	if (p.StartDate == "") != (p.EndDate == "") {
		errs = append(errs, fmt.Errorf("%s: start_date and end_date must be set together", field))
	}
	if len(startErrs) == 0 && len(endErrs) == 0 && p.StartDate != "" && p.EndDate != "" {
		errs = append(errs, checkRange(field, p.StartDate, p.EndDate)...)
	}

	for j, t := range p.Tasks {
		tf := fmt.Sprintf("%s.tasks[%d]", field, j)
		if t.Text == "" {
			errs = append(errs, fmt.Errorf("%s.text is required", tf))
		}
		s := checkDate(tf+".start", t.Start, true)
		e := checkDate(tf+".end", t.End, true)
		errs = append(errs, s...)
		errs = append(errs, e...)
		if len(s) == 0 && len(e) == 0 {
			errs = append(errs, checkRange(tf, t.Start, t.End)...)
		}
	}
	return errs
}

func validateAssignment(i int, a AssignmentImport, projects, workers map[string]bool) []error {
	var errs []error
	field := fmt.Sprintf("assignments[%d]", i)

	if !workers[a.Worker] {
		errs = append(errs, fmt.Errorf("%s: unknown worker %q", field, a.Worker))
	}
	d := checkDate(field+".date", a.Date, true)
	to := checkDate(field+".to", a.To, false)
	errs = append(errs, d...)
	errs = append(errs, to...)
	if len(d) == 0 && len(to) == 0 && a.To != "" {
		errs = append(errs, checkRange(field, a.Date, a.To)...)
	}
	for _, ref := range a.Projects {
		if !projects[ref] {
			errs = append(errs, fmt.Errorf("%s: unknown project %q", field, ref))
		}
	}
	if a.Status != "" && !domain.ValidWorkerStatuses[domain.WorkerStatus(a.Status)] {
		errs = append(errs, fmt.Errorf("%s.status: invalid value %q", field, a.Status))
	}
	if len(a.Projects) == 0 && a.Status == "" {
		errs = append(errs, fmt.Errorf("%s: needs at least one project or a status", field))
	}
	return errs
}

func checkDate(field, value string, required bool) []error {
	if value == "" {
		if required {
			return []error{fmt.Errorf("%s is required", field)}
		}
		return nil
	}
	if _, err := domain.ParseDate(value); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value)}
	}
	return nil
}

func checkRange(field, start, end string) []error {
	s, _ := domain.ParseDate(start)
	e, _ := domain.ParseDate(end)
	if err := domain.ValidateRange(s, e); err != nil {
		return []error{fmt.Errorf("%s: %w", field, err)}
	}
	return nil
}
