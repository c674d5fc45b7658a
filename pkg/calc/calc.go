package calc

import (
	"fmt"
	"sort"
	"strings"
)

// Request carries every input a calculation mode may need, in canonical
// units (kg, assay fraction, SWU). Modes read only the fields they use.
type Request struct {
	Name     string  `json:"name"`
	Mode     string  `json:"mode"`
	Xp       float64 `json:"product_assay"`
	Xf       float64 `json:"feed_assay"`
	Xw       float64 `json:"tails_assay,omitempty"`
	Product  float64 `json:"product,omitempty"`
	Feed     float64 `json:"feed,omitempty"`
	SWU      float64 `json:"swu,omitempty"`
	FeedCost float64 `json:"feed_cost,omitempty"`
	SWUCost  float64 `json:"swu_cost,omitempty"`
}

// Result is the outcome of one request. On failure only the identifying
// fields and Err are set.
type Result struct {
	Name    string  `json:"name"`
	Mode    string  `json:"mode"`
	Xp      float64 `json:"product_assay"`
	Xf      float64 `json:"feed_assay"`
	Xw      float64 `json:"tails_assay"`
	Product float64 `json:"product"`
	Feed    float64 `json:"feed"`
	Waste   float64 `json:"waste"`
	SWU     float64 `json:"swu"`
	Cost    float64 `json:"cost,omitempty"`
	Err     string  `json:"error,omitempty"`
}

// OK reports whether the request succeeded.
func (r Result) OK() bool { return r.Err == "" }

// Mode is one way of solving the enrichment equations.
type Mode interface {
	Name() string
	Describe() string
	Run(req Request) (Result, error)
}

var registry = map[string]func() Mode{}

// Register adds a mode constructor to the registry.
func Register(name string, constructor func() Mode) {
	registry[name] = constructor
}

// Get returns a mode by name.
func Get(name string) (Mode, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown mode: %s (available: %s)", name, strings.Join(Names(), ", "))
	}
	return ctor(), nil
}

// Names returns all registered mode names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Run resolves req.Mode and runs it. Errors from the mode are returned
// unwrapped so callers can match them with errors.Is.
func Run(req Request) (Result, error) {
	m, err := Get(req.Mode)
	if err != nil {
		return Result{}, err
	}
	return m.Run(req)
}

// Failed builds the row reported for a request that returned err.
func Failed(req Request, err error) Result {
	return Result{
		Name: req.Name,
		Mode: req.Mode,
		Xp:   req.Xp,
		Xf:   req.Xf,
		Xw:   req.Xw,
		Err:  err.Error(),
	}
}
