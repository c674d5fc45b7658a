package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bennyhartnett/swucalc/pkg/calc"
	"github.com/bennyhartnett/swucalc/pkg/input"
	"github.com/bennyhartnett/swucalc/pkg/units"
)

// Number is a raw numeric field. It keeps the text as written so that
// validation happens in one place, with the field's unit applied.
type Number string

// UnmarshalYAML accepts any scalar, quoted or not.
func (n *Number) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number, got a %s", value.Line, kindName(value.Kind))
	}
	*n = Number(value.Value)
	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	default:
		return "non-scalar"
	}
}

// Units names the display units of the numeric fields.
type Units struct {
	Mass  string `yaml:"mass,omitempty"`
	Assay string `yaml:"assay,omitempty"`
	Work  string `yaml:"work,omitempty"`
}

// Over returns u with empty names taken from base.
func (u Units) Over(base Units) Units {
	if u.Mass == "" {
		u.Mass = base.Mass
	}
	if u.Assay == "" {
		u.Assay = base.Assay
	}
	if u.Work == "" {
		u.Work = base.Work
	}
	return u
}

// Entry is one named calculation as written in a scenario file or on the
// command line.
type Entry struct {
	Name         string `yaml:"name"`
	Mode         string `yaml:"mode"`
	ProductAssay Number `yaml:"product_assay"`
	FeedAssay    Number `yaml:"feed_assay"`
	TailsAssay   Number `yaml:"tails_assay"`
	Product      Number `yaml:"product"`
	Feed         Number `yaml:"feed"`
	SWU          Number `yaml:"swu"`
	FeedCost     Number `yaml:"feed_cost"`
	SWUCost      Number `yaml:"swu_cost"`
	Units        Units  `yaml:"units"`
}

// File is a parsed scenario document.
type File struct {
	Units     Units   `yaml:"units"`
	Scenarios []Entry `yaml:"scenarios"`
}

// required lists the fields each mode cannot run without.
var required = map[string][]string{
	"unit":    {"product_assay", "feed_assay", "tails_assay"},
	"product": {"product_assay", "feed_assay", "tails_assay", "product"},
	"feed":    {"product_assay", "feed_assay", "tails_assay", "feed"},
	"swu":     {"product_assay", "feed_assay", "tails_assay", "swu"},
	"optimum": {"product_assay", "feed_assay", "feed_cost", "swu_cost"},
}

// Required returns the fields a mode cannot run without, or nil for an
// unknown mode.
func Required(mode string) []string {
	return append([]string(nil), required[mode]...)
}

// Load reads and parses a scenario file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file (%s): %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a scenario document and checks its names and modes.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios defined")
	}

	seen := make(map[string]bool, len(f.Scenarios))
	for i := range f.Scenarios {
		e := &f.Scenarios[i]
		e.Name = strings.TrimSpace(e.Name)
		e.Mode = strings.ToLower(strings.TrimSpace(e.Mode))
		if e.Name == "" {
			return nil, fmt.Errorf("scenarios[%d]: each scenario must have a non-empty name", i)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("scenarios: duplicate name %q", e.Name)
		}
		seen[e.Name] = true
		if _, err := calc.Get(e.Mode); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", e.Name, err)
		}
	}
	return &f, nil
}

// Requests converts every entry to canonical units. Unit names missing
// from an entry come from the file, then from defaults.
func (f *File) Requests(defaults Units) ([]calc.Request, error) {
	base := f.Units.Over(defaults)
	reqs := make([]calc.Request, 0, len(f.Scenarios))
	for _, e := range f.Scenarios {
		r, err := e.Request(base)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", e.Name, err)
		}
		reqs = append(reqs, r)
	}
	return reqs, nil
}

// Request validates e and converts it to canonical units.
func (e Entry) Request(defaults Units) (calc.Request, error) {
	u := e.Units.Over(defaults)
	mass, err := units.Lookup(units.Mass, u.Mass)
	if err != nil {
		return calc.Request{}, err
	}
	assay, err := units.Lookup(units.Assay, u.Assay)
	if err != nil {
		return calc.Request{}, err
	}
	work, err := units.Lookup(units.Work, u.Work)
	if err != nil {
		return calc.Request{}, err
	}

	fields := map[string]Number{
		"product_assay": e.ProductAssay,
		"feed_assay":    e.FeedAssay,
		"tails_assay":   e.TailsAssay,
		"product":       e.Product,
		"feed":          e.Feed,
		"swu":           e.SWU,
		"feed_cost":     e.FeedCost,
		"swu_cost":      e.SWUCost,
	}
	need, ok := required[e.Mode]
	if !ok {
		return calc.Request{}, fmt.Errorf("unknown mode: %s", e.Mode)
	}
	for _, name := range need {
		if strings.TrimSpace(string(fields[name])) == "" {
			return calc.Request{}, &input.ValidationError{Field: name, Reason: fmt.Sprintf("is required by mode %s", e.Mode)}
		}
	}

	req := calc.Request{Name: e.Name, Mode: e.Mode}
	parsers := []struct {
		field string
		dst   *float64
		parse func(field, raw string) (float64, error)
	}{
		{"product_assay", &req.Xp, func(f, raw string) (float64, error) { return input.ParseAssay(f, raw, assay) }},
		{"feed_assay", &req.Xf, func(f, raw string) (float64, error) { return input.ParseAssay(f, raw, assay) }},
		{"tails_assay", &req.Xw, func(f, raw string) (float64, error) { return input.ParseAssay(f, raw, assay) }},
		{"product", &req.Product, func(f, raw string) (float64, error) { return input.ParseMass(f, raw, mass) }},
		{"feed", &req.Feed, func(f, raw string) (float64, error) { return input.ParseMass(f, raw, mass) }},
		{"swu", &req.SWU, func(f, raw string) (float64, error) { return input.ParseWork(f, raw, work) }},
		// prices are per canonical unit: per kg of feed, per SWU
		{"feed_cost", &req.FeedCost, input.ParsePositive},
		{"swu_cost", &req.SWUCost, input.ParsePositive},
	}
	for _, p := range parsers {
		raw := string(fields[p.field])
		if strings.TrimSpace(raw) == "" {
			continue
		}
		v, err := p.parse(p.field, raw)
		if err != nil {
			return calc.Request{}, err
		}
		*p.dst = v
	}
	return req, nil
}
