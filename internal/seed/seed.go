package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/resource-dashboard/backend/internal/models"
)

//go:embed data/seed.yaml
var defaultSeed []byte

type Dataset struct {
	Resources []models.ResourceRecord `yaml:"resources"`
	Issues    []models.IssueRecord    `yaml:"issues"`
}

// Load reads the dataset at path, or the embedded seed when path is empty.
func Load(path string) (Dataset, error) {
	if path == "" {
		return Parse(bytes.NewReader(defaultSeed))
	}
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a YAML dataset and assigns ids to records that lack one.
func Parse(r io.Reader) (Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil && !errors.Is(err, io.EOF) {
		return Dataset{}, fmt.Errorf("decode seed: %w", err)
	}
	ds.AssignIDs()
	return ds, nil
}

func (d *Dataset) AssignIDs() {
	for i := range d.Resources {
		if d.Resources[i].ID == "" {
			d.Resources[i].ID = uuid.NewString()
		}
	}
	for i := range d.Issues {
		if d.Issues[i].ID == "" {
			d.Issues[i].ID = uuid.NewString()
		}
		for j := range d.Issues[i].History {
			if d.Issues[i].History[j].ID == "" {
				d.Issues[i].History[j].ID = uuid.NewString()
			}
		}
	}
}

// Check validates every record and returns one message per invalid record.
// Invalid records stay in the dataset.
func Check(d Dataset, v *validator.Validate) []string {
	var problems []string
	for i, r := range d.Resources {
		if err := v.Struct(r); err != nil {
			problems = append(problems, fmt.Sprintf("resource %d (%s): %v", i, r.ID, err))
		}
	}
	for i, issue := range d.Issues {
		if err := v.Struct(issue); err != nil {
			problems = append(problems, fmt.Sprintf("issue %d (%s): %v", i, issue.ID, err))
		}
	}
	return problems
}
