package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMinimalSchema() *SiteSchema {
	return &SiteSchema{
		Projects: []ProjectImport{
			{
				Ref:       "station",
				Name:      "Station Renovation",
				StartDate: "2025-03-03",
				EndDate:   "2025-03-21",
				Tasks: []TaskImport{
					{Text: "Scaffolding", Start: "2025-03-03", End: "2025-03-05"},
				},
			},
		},
		Workers: []WorkerImport{
			{Ref: "sato", Name: "Sato", NameKana: "さとう"},
		},
		Assignments: []AssignmentImport{
			{Worker: "sato", Date: "2025-03-03", Projects: []string{"station"}},
		},
	}
}

func TestValidateSiteSchema_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateSiteSchema(validMinimalSchema()))
}

func TestValidateSiteSchema_Empty(t *testing.T) {
	assert.Empty(t, ValidateSiteSchema(&SiteSchema{}))
}

func TestValidateSiteSchema_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *SiteSchema)
		want   string
	}{
		{"project name missing", func(s *SiteSchema) { s.Projects[0].Name = "" }, "projects[0].name is required"},
		{"bad project date", func(s *SiteSchema) { s.Projects[0].StartDate = "03/03/2025" }, "projects[0].start_date: invalid date format"},
		{"half scheduled project", func(s *SiteSchema) { s.Projects[0].EndDate = "" }, "must be set together"},
		{"inverted project", func(s *SiteSchema) { s.Projects[0].EndDate = "2025-03-01" }, "is after end"},
		{"task without end", func(s *SiteSchema) { s.Projects[0].Tasks[0].End = "" }, "tasks[0].end is required"},
		{"inverted task", func(s *SiteSchema) { s.Projects[0].Tasks[0].Start = "2025-03-09" }, "projects[0].tasks[0]: start date is after end date"},
		{"task text missing", func(s *SiteSchema) { s.Projects[0].Tasks[0].Text = "" }, "tasks[0].text is required"},
		{"worker name missing", func(s *SiteSchema) { s.Workers[0].Name = "" }, "workers[0].name is required"},
		{"bad birth date", func(s *SiteSchema) { s.Workers[0].BirthDate = "1980" }, "workers[0].birth_date"},
		{"unknown worker", func(s *SiteSchema) { s.Assignments[0].Worker = "kato" }, `unknown worker "kato"`},
		{"unknown project", func(s *SiteSchema) { s.Assignments[0].Projects = []string{"depot"} }, `unknown project "depot"`},
		{"bad status", func(s *SiteSchema) {
			s.Assignments[0].Projects = nil
			s.Assignments[0].Status = "vacation"
		}, `invalid value "vacation"`},
		{"empty cell", func(s *SiteSchema) { s.Assignments[0].Projects = nil }, "needs at least one project or a status"},
		{"inverted run", func(s *SiteSchema) { s.Assignments[0].To = "2025-03-01" }, "assignments[0]: start date is after end date"},
		{"duplicate project", func(s *SiteSchema) {
			s.Projects = append(s.Projects, ProjectImport{Ref: "station", Name: "Again"})
		}, `duplicate ref "station"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validMinimalSchema()
			tc.mutate(s)
			errs := ValidateSiteSchema(s)
			require.NotEmpty(t, errs)
			var msgs []string
			for _, e := range errs {
				msgs = append(msgs, e.Error())
			}
			assert.Contains(t, strings.Join(msgs, "\n"), tc.want)
		})
	}
}

func TestValidateSiteSchema_RefDefaultsToName(t *testing.T) {
	s := validMinimalSchema()
	s.Projects[0].Ref = ""
	s.Workers[0].Ref = ""
	s.Assignments[0].Worker = "Sato"
	s.Assignments[0].Projects = []string{"Station Renovation"}

	assert.Empty(t, ValidateSiteSchema(s))
}
