package importer

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// SiteSchema is the top-level structure of a site file. YAML is the
// primary format; JSON files parse as well.
type SiteSchema struct {
	Projects    []ProjectImport    `yaml:"projects" json:"projects"`
	Workers     []WorkerImport     `yaml:"workers" json:"workers"`
	Assignments []AssignmentImport `yaml:"assignments,omitempty" json:"assignments,omitempty"`
}

// ProjectImport defines a project and its tasks. Ref is how assignments
// point at the project; it defaults to the name.
type ProjectImport struct {
	Ref       string       `yaml:"ref,omitempty" json:"ref,omitempty"`
	Name      string       `yaml:"name" json:"name"`
	Color     string       `yaml:"color,omitempty" json:"color,omitempty"`
	StartDate string       `yaml:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate   string       `yaml:"end_date,omitempty" json:"end_date,omitempty"`
	Tasks     []TaskImport `yaml:"tasks,omitempty" json:"tasks,omitempty"`
}

// TaskImport defines a task nested under its project.
type TaskImport struct {
	Text  string `yaml:"text" json:"text"`
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
}

// WorkerImport defines a crew member. Ref defaults to the name.
type WorkerImport struct {
	Ref       string `yaml:"ref,omitempty" json:"ref,omitempty"`
	Name      string `yaml:"name" json:"name"`
	NameKana  string `yaml:"name_kana,omitempty" json:"name_kana,omitempty"`
	BirthDate string `yaml:"birth_date,omitempty" json:"birth_date,omitempty"`
}

// AssignmentImport fills one worker/day cell, or a run of days when To is
// set.
type AssignmentImport struct {
	Worker   string   `yaml:"worker" json:"worker"`
	Date     string   `yaml:"date" json:"date"`
	To       string   `yaml:"to,omitempty" json:"to,omitempty"`
	Projects []string `yaml:"projects,omitempty" json:"projects,omitempty"`
	Status   string   `yaml:"status,omitempty" json:"status,omitempty"`
}

// LoadSiteSchema reads and parses a site file.
func LoadSiteSchema(path string) (*SiteSchema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening site file: %w", err)
	}
	defer f.Close()
	return DecodeSiteSchema(f)
}

// DecodeSiteSchema parses a site file from r. Unknown keys are rejected so
// typos surface instead of silently dropping data.
func DecodeSiteSchema(r io.Reader) (*SiteSchema, error) {
	var schema SiteSchema
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&schema); err != nil {
		if err == io.EOF {
			return &schema, nil
		}
		return nil, fmt.Errorf("parsing site file: %w", err)
	}
	return &schema, nil
}

func (p ProjectImport) key() string {
	if p.Ref != "" {
		return p.Ref
	}
	return p.Name
}

func (w WorkerImport) key() string {
	if w.Ref != "" {
		return w.Ref
	}
	return w.Name
}
