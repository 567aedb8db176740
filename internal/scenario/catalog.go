// Package scenario loads the catalogue of demo fields: which alternatives a
// field can be reset to and which syntax, limits, predicate and formatter it
// is bound with.
package scenario

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Scenario is one configured field.
type Scenario struct {
	Name         string
	Alternatives []float64
	Predicate    string
	Format       string
	Syntax       string
	Precision    *float64
	Scale        *float64
}

// catalogFile is the top-level TOML structure. Numbers are decoded loosely
// so that integers and floats can be mixed.
type catalogFile struct {
	Scenario []rawScenario `toml:"scenario"`
}

type rawScenario struct {
	Name         string `toml:"name"`
	Alternatives []any  `toml:"alternatives"`
	Predicate    string `toml:"predicate"`
	Format       string `toml:"format"`
	Syntax       string `toml:"syntax"`
	Precision    any    `toml:"precision"`
	Scale        any    `toml:"scale"`
}

const DefaultCatalogTOML = `# Decimal input scenarios.
# Each [[scenario]] becomes one field. Keys:
#   alternatives  values the field can be reset to (ctrl+r)
#   predicate     integer | non_negative | positive | non_zero
#   format        plain | financial | fixed | grouped
#   syntax        decimal | positive
#   precision     total significant digits
#   scale         digits after the decimal point

[[scenario]]
name = "Decimals"
alternatives = [10, -20.4, -0.5]

[[scenario]]
name = "Integers"
alternatives = [1, 2, 3, 1.1]
predicate = "integer"

[[scenario]]
name = "Zero or Greater"
alternatives = [10, -20.4, 0, -0.5]
predicate = "non_negative"

[[scenario]]
name = "Financial"
alternatives = [10, -20.4, 0, -0.5]
format = "financial"

[[scenario]]
name = "Price"
alternatives = [10, 999.99, 1000.001]
syntax = "positive"
format = "fixed"
precision = 5
scale = 2
`

// Load reads the catalogue at path, writing the default catalogue first if
// the file does not exist.
func Load(path string) ([]Scenario, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create scenario dir: %w", err)
		}
		if err := os.WriteFile(path, []byte(DefaultCatalogTOML), 0o644); err != nil {
			return nil, fmt.Errorf("write default scenarios: %w", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenarios: %w", err)
	}
	return Parse(data)
}

// DefaultCatalog returns the built-in catalogue.
func DefaultCatalog() []Scenario {
	list, err := Parse([]byte(DefaultCatalogTOML))
	if err != nil {
		panic(fmt.Sprintf("default scenarios: %v", err))
	}
	return list
}

// Parse decodes and validates catalogue TOML. Names must be unique and
// every predicate, format and syntax name must be known.
func Parse(data []byte) ([]Scenario, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}
	if len(f.Scenario) == 0 {
		return nil, fmt.Errorf("no scenarios defined")
	}

	seen := make(map[string]bool, len(f.Scenario))
	out := make([]Scenario, 0, len(f.Scenario))
	for i, raw := range f.Scenario {
		s, err := raw.normalize()
		if err != nil {
			return nil, fmt.Errorf("scenario[%d]: %w", i, err)
		}
		key := strings.ToLower(s.Name)
		if seen[key] {
			return nil, fmt.Errorf("scenario[%d]: duplicate name %q", i, s.Name)
		}
		seen[key] = true
		out = append(out, s)
	}
	return out, nil
}

func (r rawScenario) normalize() (Scenario, error) {
	s := Scenario{
		Name:      strings.TrimSpace(r.Name),
		Predicate: strings.ToLower(strings.TrimSpace(r.Predicate)),
		Format:    strings.ToLower(strings.TrimSpace(r.Format)),
		Syntax:    strings.ToLower(strings.TrimSpace(r.Syntax)),
	}
	if s.Name == "" {
		return Scenario{}, fmt.Errorf("name is required")
	}
	for j, a := range r.Alternatives {
		n, err := toFloat(a)
		if err != nil {
			return Scenario{}, fmt.Errorf("%q: alternatives[%d]: %w", s.Name, j, err)
		}
		s.Alternatives = append(s.Alternatives, n)
	}
	if err := checkName("predicate", s.Predicate, predicateNames()); err != nil {
		return Scenario{}, fmt.Errorf("%q: %w", s.Name, err)
	}
	if err := checkName("format", s.Format, formatNames()); err != nil {
		return Scenario{}, fmt.Errorf("%q: %w", s.Name, err)
	}
	if err := checkName("syntax", s.Syntax, syntaxNames()); err != nil {
		return Scenario{}, fmt.Errorf("%q: %w", s.Name, err)
	}
	var err error
	if s.Precision, err = optionalFloat(r.Precision); err != nil {
		return Scenario{}, fmt.Errorf("%q: precision: %w", s.Name, err)
	}
	if s.Scale, err = optionalFloat(r.Scale); err != nil {
		return Scenario{}, fmt.Errorf("%q: scale: %w", s.Name, err)
	}
	return s, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int64:
		return float64(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%v is not a finite number", n)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%v (%T) is not a number", v, v)
	}
}

func optionalFloat(v any) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	n, err := toFloat(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
