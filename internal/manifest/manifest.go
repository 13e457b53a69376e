// Package manifest loads and validates the YAML file describing which
// dashboards to generate: the artifact's build coordinate and one entry per
// deployed endpoint with its flavor and decision outputs.
package manifest

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/prometheus/common/model"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/decisionops/dashgen/pkg/types"
)

//go:embed schema.json
var schemaJSON string

// Flavor selects which domain dashboard an endpoint gets.
type Flavor string

const (
	// FlavorDecision endpoints are backed by a decision model; their domain
	// dashboard carries one panel per supported decision output.
	FlavorDecision Flavor = "decision"
	// FlavorRule endpoints are backed by a rule unit; their domain dashboard
	// has no generated panels.
	FlavorRule Flavor = "rule"
)

type Manifest struct {
	Artifact  Artifact   `yaml:"artifact"`
	AuditLink bool       `yaml:"audit_link"`
	Endpoints []Endpoint `yaml:"endpoints"`
}

type Artifact struct {
	ID      string `yaml:"id"`
	Version string `yaml:"version"`
}

type Endpoint struct {
	Name   string `yaml:"name"`
	Flavor Flavor `yaml:"flavor"`

	// Optional template overrides; empty means the built-in template.
	OperationalTemplate string `yaml:"operational_template"`
	DomainTemplate      string `yaml:"domain_template"`

	Decisions []Decision `yaml:"decisions"`
}

type Decision struct {
	Name      string  `yaml:"name"`
	ID        string  `yaml:"id"`
	ValueType *string `yaml:"type"`
}

// Coordinate returns the artifact's build coordinate.
func (m *Manifest) Coordinate() types.BuildCoordinate {
	return types.BuildCoordinate{ArtifactID: m.Artifact.ID, Version: m.Artifact.Version}
}

// Descriptors converts the endpoint's decisions into the domain model form
// consumed by dashboard synthesis.
func (e Endpoint) Descriptors() []types.DecisionDescriptor {
	out := make([]types.DecisionDescriptor, 0, len(e.Decisions))
	for _, d := range e.Decisions {
		out = append(out, types.DecisionDescriptor{Name: d.Name, ID: d.ID, ValueType: d.ValueType})
	}
	return out
}

// Load reads, schema-checks and validates a manifest file.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	// Decode once into a generic form for schema validation, once into the
	// typed form used by the rest of the program.
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if err := validateSchema(generic); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return &m, nil
}

func validateSchema(doc any) error {
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schemaJSON), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			errs = append(errs, e.String())
		}
		return fmt.Errorf("manifest schema invalid: %v", errs)
	}
	return nil
}

// Validate enforces the constraints the JSON schema cannot express.
func (m *Manifest) Validate() error {
	seen := make(map[string]struct{}, len(m.Endpoints))
	for _, ep := range m.Endpoints {
		if _, dup := seen[ep.Name]; dup {
			return fmt.Errorf("duplicate endpoint %q", ep.Name)
		}
		seen[ep.Name] = struct{}{}

		if ep.Flavor != FlavorDecision && ep.Flavor != FlavorRule {
			return fmt.Errorf("endpoint %q: unknown flavor %q", ep.Name, ep.Flavor)
		}
		if ep.Flavor == FlavorRule && len(ep.Decisions) > 0 {
			return fmt.Errorf("endpoint %q: rule endpoints carry no decisions", ep.Name)
		}

		// Endpoint and decision names end up embedded in query label values.
		if !model.LabelValue(ep.Name).IsValid() {
			return fmt.Errorf("endpoint %q: name is not a valid label value", ep.Name)
		}
		for _, d := range ep.Decisions {
			if d.Name == "" {
				return fmt.Errorf("endpoint %q: decision with empty name", ep.Name)
			}
			if !model.LabelValue(d.Name).IsValid() {
				return fmt.Errorf("endpoint %q: decision name %q is not a valid label value", ep.Name, d.Name)
			}
		}
	}
	return nil
}
