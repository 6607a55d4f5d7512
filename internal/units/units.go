// Package units parses CF-style unit strings and converts values between
// compatible units. A unit expression is a whitespace-separated product of
// factors, each a symbol with an optional integer exponent, e.g. "m s-1",
// "mm h-1", "kg m-2", "K", "%", or "1" for dimensionless.
//
// Only linear-scale units are supported: conversion is a single multiplication
// into and out of SI base units. Offset units such as degC are rejected.
package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/unit"
)

// ErrIncompatible indicates a conversion between dimensionally different units.
var ErrIncompatible = errors.New("units are not convertible")

// ErrUnknown indicates an unrecognised unit symbol.
var ErrUnknown = errors.New("unknown unit")

// Unit is a parsed unit expression: a linear scale into SI base units plus
// dimensional exponents.
type Unit struct {
	expr  string
	scale float64
	dims  unit.Dimensions
}

type factor struct {
	scale float64
	dims  unit.Dimensions
}

// SI prefixes by symbol. "da" is the only two-character prefix.
var prefixes = map[string]float64{
	"Y": 1e24, "Z": 1e21, "E": 1e18, "P": 1e15, "T": 1e12,
	"G": 1e9, "M": 1e6, "k": 1e3, "h": 1e2, "da": 1e1,
	"d": 1e-1, "c": 1e-2, "m": 1e-3, "u": 1e-6, "n": 1e-9,
	"p": 1e-12, "f": 1e-15, "a": 1e-18, "z": 1e-21, "y": 1e-24,
}

// Named units. Full symbols take precedence over prefixed forms, so "m" is
// metre (not milli) and "h" is hour (not hecto).
var named = map[string]factor{
	"m":   {1, unit.Dimensions{unit.LengthDim: 1}},
	"g":   {1e-3, unit.Dimensions{unit.MassDim: 1}},
	"s":   {1, unit.Dimensions{unit.TimeDim: 1}},
	"A":   {1, unit.Dimensions{unit.CurrentDim: 1}},
	"K":   {1, unit.Dimensions{unit.TemperatureDim: 1}},
	"mol": {1, unit.Dimensions{unit.MoleDim: 1}},
	"cd":  {1, unit.Dimensions{unit.LuminousIntensityDim: 1}},
	"rad": {1, unit.Dimensions{unit.AngleDim: 1}},

	"min": {60, unit.Dimensions{unit.TimeDim: 1}},
	"h":   {3600, unit.Dimensions{unit.TimeDim: 1}},
	"d":   {86400, unit.Dimensions{unit.TimeDim: 1}},
	"day": {86400, unit.Dimensions{unit.TimeDim: 1}},

	"Hz": {1, unit.Dimensions{unit.TimeDim: -1}},
	"N":  {1, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 1, unit.TimeDim: -2}},
	"Pa": {1, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -2}},
	"J":  {1, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -2}},
	"W":  {1, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -3}},
	"L":  {1e-3, unit.Dimensions{unit.LengthDim: 3}},

	"1": {1, unit.Dimensions{}},
	"%": {0.01, unit.Dimensions{}},
}

// Units requiring affine (offset) conversion, which this package does not do.
var offsetUnits = map[string]struct{}{
	"degC": {}, "Celsius": {}, "celsius": {}, "degF": {}, "Fahrenheit": {},
}

// Parse parses a unit expression.
func Parse(expr string) (*Unit, error) {
	fields := strings.Fields(expr)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty unit expression")
	}

	u := &Unit{
		expr:  strings.Join(fields, " "),
		scale: 1,
		dims:  unit.Dimensions{},
	}

	for _, tok := range fields {
		sym, exp, err := splitExponent(tok)
		if err != nil {
			return nil, err
		}

		f, err := resolve(sym)
		if err != nil {
			return nil, err
		}

		u.scale *= math.Pow(f.scale, float64(exp))
		for d, n := range f.dims {
			u.dims[d] += n * exp
		}
	}

	// Drop cancelled dimensions so comparisons see canonical form.
	for d, n := range u.dims {
		if n == 0 {
			delete(u.dims, d)
		}
	}

	return u, nil
}

// splitExponent separates a token such as "s-1", "m2" or "m^-2" into its
// symbol and integer exponent. A bare symbol has exponent 1.
func splitExponent(tok string) (string, int, error) {
	// Dimensionless marker is a lone "1", not an exponent.
	if tok == "1" {
		return "1", 1, nil
	}

	i := len(tok)
	for i > 0 {
		c := tok[i-1]
		if (c >= '0' && c <= '9') || c == '-' || c == '+' {
			i--
			continue
		}
		break
	}

	if i == len(tok) {
		return tok, 1, nil
	}

	exp, err := strconv.Atoi(tok[i:])
	if err != nil {
		return "", 0, fmt.Errorf("bad exponent in unit term %q", tok)
	}

	sym := strings.TrimSuffix(tok[:i], "^")
	if sym == "" {
		return "", 0, fmt.Errorf("bad unit term %q", tok)
	}
	return sym, exp, nil
}

// resolve maps a symbol to its scale and dimensions, trying the full symbol
// first and then an SI prefix plus a named unit.
func resolve(sym string) (factor, error) {
	if _, ok := offsetUnits[sym]; ok {
		return factor{}, fmt.Errorf("offset unit %q is not supported: %w", sym, ErrUnknown)
	}

	if f, ok := named[sym]; ok {
		return f, nil
	}

	if len(sym) > 2 {
		if p, ok := prefixes["da"]; ok && strings.HasPrefix(sym, "da") {
			if f, ok := named[sym[2:]]; ok {
				return factor{p * f.scale, f.dims}, nil
			}
		}
	}
	if len(sym) > 1 {
		if p, ok := prefixes[sym[:1]]; ok {
			if f, ok := named[sym[1:]]; ok {
				return factor{p * f.scale, f.dims}, nil
			}
		}
	}

	return factor{}, fmt.Errorf("%w: %q", ErrUnknown, sym)
}

// String returns the original (whitespace-normalised) expression.
func (u *Unit) String() string {
	return u.expr
}

// Unit implements gonum's unit.Uniter for dimensional comparison.
func (u *Unit) Unit() *unit.Unit {
	return unit.New(u.scale, u.dims)
}

// ConvertibleTo reports whether values in u can be rescaled into v.
func (u *Unit) ConvertibleTo(v *Unit) bool {
	return unit.DimensionsMatch(u, v)
}

// Factor returns the multiplier taking values in from to values in to.
func Factor(from, to *Unit) (float64, error) {
	if !from.ConvertibleTo(to) {
		return 0, fmt.Errorf("cannot convert %q to %q: %w", from, to, ErrIncompatible)
	}
	return from.scale / to.scale, nil
}

// Convert rescales values from one unit expression to another, returning a
// new slice. The inputs are never modified.
func Convert(values []float64, from, to string) ([]float64, error) {
	fu, err := Parse(from)
	if err != nil {
		return nil, err
	}
	tu, err := Parse(to)
	if err != nil {
		return nil, err
	}

	f, err := Factor(fu, tu)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * f
	}
	return out, nil
}
