// Package plan reads template plans: a construction with its phases,
// stages and budgeted tasks, written as YAML or JSON.
package plan

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/canteiro/internal/domain"
	"gopkg.in/yaml.v3"
)

// Plan is the file form of a template construction.
type Plan struct {
	Construction ConstructionSpec `json:"construction" yaml:"construction"`
	Phases       []PhaseSpec      `json:"phases" yaml:"phases"`
}

type ConstructionSpec struct {
	Name       string `json:"name" yaml:"name"`
	Address    string `json:"address,omitempty" yaml:"address,omitempty"`
	PostalCode string `json:"postal_code,omitempty" yaml:"postal_code,omitempty"`
	City       string `json:"city,omitempty" yaml:"city,omitempty"`
	District   string `json:"district,omitempty" yaml:"district,omitempty"`
	OwnerID    string `json:"owner_id,omitempty" yaml:"owner_id,omitempty"`
}

type PhaseSpec struct {
	Name   string      `json:"name" yaml:"name"`
	Stages []StageSpec `json:"stages,omitempty" yaml:"stages,omitempty"`
}

type StageSpec struct {
	Name  string     `json:"name" yaml:"name"`
	Tasks []TaskSpec `json:"tasks,omitempty" yaml:"tasks,omitempty"`
}

// TaskSpec is one budgeted task. A missing budgeted_cost counts as 0.
type TaskSpec struct {
	Name         string   `json:"name" yaml:"name"`
	BudgetedCost *float64 `json:"budgeted_cost,omitempty" yaml:"budgeted_cost,omitempty"`
}

// Format is the encoding of a plan file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension; anything other
// than .json is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// ParseFormat accepts "yaml", "yml" and "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml", "":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", domain.Invalidf("unknown plan format %q (want yaml or json)", s)
	}
}

//go:embed default_plan.yaml
var defaultPlanYAML []byte

// Default returns the built-in six-phase residential plan.
func Default() *Plan {
	p, err := Parse(defaultPlanYAML, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded default plan is invalid: %v", err))
	}
	return p
}

// Load reads, schema-checks and validates the plan file at path.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes data, checks it against the plan schema and then runs the
// semantic checks. All problems come back wrapped in ErrInvalidInput.
func Parse(data []byte, format Format) (*Plan, error) {
	doc, err := toJSON(data, format)
	if err != nil {
		return nil, err
	}
	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	var p Plan
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("%w: decoding plan: %v", domain.ErrInvalidInput, err)
	}
	if errs := Validate(&p); len(errs) > 0 {
		return nil, joinInvalid(errs)
	}
	return &p, nil
}

// toJSON normalises a document to JSON so one schema serves both formats.
func toJSON(data []byte, format Format) ([]byte, error) {
	if format == FormatJSON {
		if !json.Valid(data) {
			return nil, domain.Invalidf("plan is not valid JSON")
		}
		return data, nil
	}
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: parsing plan YAML: %v", domain.ErrInvalidInput, err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: plan YAML has no JSON form: %v", domain.ErrInvalidInput, err)
	}
	return out, nil
}

// Encode writes p in the given format.
func Encode(w io.Writer, p *Plan, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	}
}

// Marshal is Encode into a byte slice.
func Marshal(p *Plan, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, p, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Counts returns the number of phases, stages and tasks in the plan.
func (p *Plan) Counts() (phases, stages, tasks int) {
	phases = len(p.Phases)
	for _, ph := range p.Phases {
		stages += len(ph.Stages)
		for _, st := range ph.Stages {
			tasks += len(st.Tasks)
		}
	}
	return phases, stages, tasks
}
