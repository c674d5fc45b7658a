package units

import (
	"fmt"
	"sort"
	"strings"
)

// Kind is the physical dimension a unit measures.
type Kind string

const (
	Mass  Kind = "mass"
	Assay Kind = "assay"
	Work  Kind = "work"
)

// Base scale factors. Everything is stored in kg, assay fraction and SWU.
const (
	Kg    = 1
	G     = 1e-3 * Kg
	Lb    = 0.45359237 * Kg
	Tonne = 1000 * Kg

	Fraction = 1
	Percent  = 1e-2 * Fraction
	PPM      = 1e-6 * Fraction

	SWU  = 1
	KSWU = 1e3 * SWU
	MSWU = 1e6 * SWU
)

// Unit is a named linear scale onto the base unit of its kind.
type Unit struct {
	Name  string
	Kind  Kind
	Scale float64 // base units per one of this unit
}

// canonical units keyed by kind, then display name
var table = map[Kind]map[string]Unit{
	Mass: {
		"kg": {Name: "kg", Kind: Mass, Scale: Kg},
		"g":  {Name: "g", Kind: Mass, Scale: G},
		"lb": {Name: "lb", Kind: Mass, Scale: Lb},
		"t":  {Name: "t", Kind: Mass, Scale: Tonne},
	},
	Assay: {
		"%":        {Name: "%", Kind: Assay, Scale: Percent},
		"ppm":      {Name: "ppm", Kind: Assay, Scale: PPM},
		"fraction": {Name: "fraction", Kind: Assay, Scale: Fraction},
	},
	Work: {
		"SWU":  {Name: "SWU", Kind: Work, Scale: SWU},
		"kSWU": {Name: "kSWU", Kind: Work, Scale: KSWU},
		"MSWU": {Name: "MSWU", Kind: Work, Scale: MSWU},
	},
}

// lowercase spellings accepted on input
var aliases = map[Kind]map[string]string{
	Mass: {
		"kg": "kg", "kilogram": "kg", "kilograms": "kg",
		"g": "g", "gram": "g", "grams": "g",
		"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
		"t": "t", "tonne": "t", "tonnes": "t", "mt": "t",
	},
	Assay: {
		"%": "%", "pct": "%", "percent": "%", "wt%": "%",
		"ppm": "ppm",
		"fraction": "fraction", "frac": "fraction", "": "fraction",
	},
	Work: {
		"swu": "SWU", "kswu": "kSWU", "mswu": "MSWU",
	},
}

// Base returns the canonical unit of a kind.
func Base(k Kind) Unit {
	switch k {
	case Mass:
		return table[Mass]["kg"]
	case Assay:
		return table[Assay]["fraction"]
	default:
		return table[Work]["SWU"]
	}
}

// Lookup resolves a unit name of the given kind. Names are matched
// case-insensitively against the known spellings.
func Lookup(k Kind, name string) (Unit, error) {
	known, ok := aliases[k]
	if !ok {
		return Unit{}, fmt.Errorf("unknown unit kind: %s", k)
	}
	canon, ok := known[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Unit{}, fmt.Errorf("unknown %s unit: %q (available: %s)", k, name, strings.Join(Names(k), ", "))
	}
	return table[k][canon], nil
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(k Kind, name string) Unit {
	u, err := Lookup(k, name)
	if err != nil {
		panic(err)
	}
	return u
}

// Names returns the display names of a kind, sorted.
func Names(k Kind) []string {
	names := make([]string, 0, len(table[k]))
	for n := range table[k] {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ToBase converts v from u to its base unit.
func (u Unit) ToBase(v float64) float64 { return v * u.Scale }

// FromBase converts a base-unit value to u.
func (u Unit) FromBase(v float64) float64 { return v / u.Scale }

func (u Unit) String() string { return u.Name }
