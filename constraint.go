package cube

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	// NameKey is the reserved constraint key selecting a cube by its name
	// rather than by a coordinate.
	NameKey = "name"

	// NoUnits is the sentinel in a units list marking a constraint that
	// carries no unit override.
	NoUnits = "None"
)

// Tolerances for comparing constraint values against coordinate points.
// Unit conversion rescales points in floating point, so exact equality
// would reject values that round-trip through a conversion.
const (
	matchAbsTol = 1e-12
	matchRelTol = 1e-9
)

type valueKind uint8

const (
	valueInt valueKind = iota
	valueFloat
	valueString
)

// Value is the coerced right-hand side of a constraint expression. Parsing
// tries integer first, then float, and keeps the text otherwise.
type Value struct {
	kind valueKind
	i    int64
	f    float64
	s    string
}

func parseValue(raw string) Value {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Value{kind: valueInt, i: i}
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return Value{kind: valueFloat, f: f}
	}
	return Value{kind: valueString, s: raw}
}

// Matches reports whether a numeric coordinate point equals the value.
// String values never match numeric points.
func (v Value) Matches(point float64) bool {
	switch v.kind {
	case valueInt:
		return scalar.EqualWithinAbsOrRel(float64(v.i), point, matchAbsTol, matchRelTol)
	case valueFloat:
		return scalar.EqualWithinAbsOrRel(v.f, point, matchAbsTol, matchRelTol)
	default:
		return false
	}
}

// String returns the value as written in the constraint expression.
func (v Value) String() string {
	switch v.kind {
	case valueInt:
		return strconv.FormatInt(v.i, 10)
	case valueFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}

// CoordSelector filters cubes on a coordinate value, optionally converting
// the coordinate into Units before comparison.
type CoordSelector struct {
	Key   string
	Value Value
	Units string
}

// Constraints is the parsed form of a constraint list: an optional identity
// selector on the cube name, plus coordinate selectors applied conjunctively
// in the order they were written.
//
// A unit the caller supplied for the name selector is retained so that
// extraction can reject it: a unit override is meaningless for a selector
// that is not a coordinate.
type Constraints struct {
	name      string
	hasName   bool
	nameUnits string
	coords    []CoordSelector
}

// Name returns the identity selector, if one was given.
func (cs *Constraints) Name() (string, bool) {
	return cs.name, cs.hasName
}

// CoordSelectors returns the coordinate selectors in constraint order.
func (cs *Constraints) CoordSelectors() []CoordSelector {
	return cs.coords
}

// ParseConstraints turns "key=value" constraint expressions and an optional
// positionally-aligned units list into a Constraints value.
//
// Values are coerced numerically where possible. Duplicate keys are defined
// behavior: the last value wins, and a unit override is only replaced when
// the later duplicate carries a non-"None" unit.
//
// If unitStrs is non-nil its length must equal len(exprs), otherwise
// ErrUnitsLengthMismatch is returned and no partial result is produced.
// The inputs are never modified.
func ParseConstraints(exprs []string, unitStrs []string) (*Constraints, error) {
	if unitStrs != nil && len(unitStrs) != len(exprs) {
		return nil, fmt.Errorf("%w: %d units for %d constraints", ErrUnitsLengthMismatch, len(unitStrs), len(exprs))
	}

	cs := &Constraints{}
	for i, expr := range exprs {
		key, raw, ok := strings.Cut(expr, "=")
		if !ok {
			return nil, fmt.Errorf("malformed constraint %q: missing '='", expr)
		}

		unit := ""
		if unitStrs != nil && unitStrs[i] != NoUnits {
			unit = unitStrs[i]
		}

		if key == NameKey {
			cs.name = raw
			cs.hasName = true
			if unit != "" {
				cs.nameUnits = unit
			}
			continue
		}

		if j := cs.coordIndex(key); j >= 0 {
			cs.coords[j].Value = parseValue(raw)
			if unit != "" {
				cs.coords[j].Units = unit
			}
			continue
		}
		cs.coords = append(cs.coords, CoordSelector{Key: key, Value: parseValue(raw), Units: unit})
	}

	return cs, nil
}

func (cs *Constraints) coordIndex(key string) int {
	for i := range cs.coords {
		if cs.coords[i].Key == key {
			return i
		}
	}
	return -1
}
