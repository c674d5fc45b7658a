package input

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bennyhartnett/swucalc/pkg/units"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("invalid input")

// ValidationError reports a raw field value that cannot be used.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %q %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, raw, reason string) error {
	return &ValidationError{Field: field, Value: raw, Reason: reason}
}

// parseFinite reads a plain decimal number. Digit grouping is rejected
// rather than guessed at.
func parseFinite(field, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, invalid(field, raw, "is empty")
	}
	if strings.ContainsAny(s, ",_") {
		return 0, invalid(field, raw, "must not contain digit separators")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, invalid(field, raw, "is not a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalid(field, raw, "is not a finite number")
	}
	return v, nil
}

// ParseAssay converts raw, given in unit u, to an assay fraction strictly
// inside (0, 1).
func ParseAssay(field, raw string, u units.Unit) (float64, error) {
	if u.Kind != units.Assay {
		return 0, fmt.Errorf("%s: %s is not an assay unit", field, u)
	}
	v, err := parseFinite(field, raw)
	if err != nil {
		return 0, err
	}
	x := u.ToBase(v)
	if x <= 0 || x >= 1 {
		return 0, invalid(field, raw, fmt.Sprintf("must be between 0 and %g %s exclusive", u.FromBase(1), u))
	}
	return x, nil
}

// ParseMass converts raw, given in unit u, to a positive mass in kg.
func ParseMass(field, raw string, u units.Unit) (float64, error) {
	if u.Kind != units.Mass {
		return 0, fmt.Errorf("%s: %s is not a mass unit", field, u)
	}
	return parseScaled(field, raw, u)
}

// ParseWork converts raw, given in unit u, to a positive SWU quantity.
func ParseWork(field, raw string, u units.Unit) (float64, error) {
	if u.Kind != units.Work {
		return 0, fmt.Errorf("%s: %s is not a work unit", field, u)
	}
	return parseScaled(field, raw, u)
}

// ParsePositive reads a positive finite number with no unit, such as a price.
func ParsePositive(field, raw string) (float64, error) {
	v, err := parseFinite(field, raw)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, invalid(field, raw, "must be positive")
	}
	return v, nil
}

func parseScaled(field, raw string, u units.Unit) (float64, error) {
	v, err := ParsePositive(field, raw)
	if err != nil {
		return 0, err
	}
	b := u.ToBase(v)
	if b <= 0 || math.IsInf(b, 0) {
		return 0, invalid(field, raw, "is out of range")
	}
	return b, nil
}
