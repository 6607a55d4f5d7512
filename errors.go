package cube

import (
	"errors"

	"github.com/scigolib/cube/internal/units"
)

// Error kinds surfaced by parsing and extraction. All are detected
// synchronously and returned immediately; callers dispatch with errors.Is.
var (
	// ErrUnitsLengthMismatch reports a units list whose length differs from
	// the constraints list.
	ErrUnitsLengthMismatch = errors.New("units list must match constraints")

	// ErrCoordinateNotFound reports a constraint or unit-override key that
	// does not correspond to any coordinate on the cube.
	ErrCoordinateNotFound = errors.New("coordinate not found")

	// ErrNoMatch reports that no cube satisfied every constraint.
	ErrNoMatch = errors.New("constraint(s) could not be matched in input cube")

	// ErrAmbiguousMatch reports that more than one cube or slice satisfied
	// the constraints.
	ErrAmbiguousMatch = errors.New("constraints matched more than one cube")

	// ErrIncompatibleUnits reports a dimensionally impossible unit
	// conversion.
	ErrIncompatibleUnits = units.ErrIncompatible
)
