package cube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConstraintsBasicNoUnits(t *testing.T) {
	cs, err := ParseConstraints([]string{"percentile=10", "threshold=0.1"}, nil)
	require.NoError(t, err)

	_, hasName := cs.Name()
	assert.False(t, hasName)

	sels := cs.CoordSelectors()
	require.Len(t, sels, 2)

	assert.Equal(t, "percentile", sels[0].Key)
	assert.Equal(t, valueInt, sels[0].Value.kind)
	assert.Equal(t, int64(10), sels[0].Value.i)
	assert.Empty(t, sels[0].Units)

	assert.Equal(t, "threshold", sels[1].Key)
	assert.Equal(t, valueFloat, sels[1].Value.kind)
	assert.Equal(t, 0.1, sels[1].Value.f)
	assert.Empty(t, sels[1].Units)
}

func TestParseConstraintsSomeUnits(t *testing.T) {
	cs, err := ParseConstraints(
		[]string{"percentile=10", "threshold=0.1"},
		[]string{"None", "mm h-1"},
	)
	require.NoError(t, err)

	sels := cs.CoordSelectors()
	require.Len(t, sels, 2)
	assert.Empty(t, sels[0].Units, "None entries must produce no unit override")
	assert.Equal(t, "mm h-1", sels[1].Units)
}

func TestParseConstraintsUnmatchedUnits(t *testing.T) {
	cs, err := ParseConstraints(
		[]string{"percentile=10", "threshold=0.1"},
		[]string{"mm h-1"},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnitsLengthMismatch)
	assert.Contains(t, err.Error(), "units list must match constraints")
	assert.Nil(t, cs, "no partial result on validation failure")
}

func TestParseConstraintsNameSelector(t *testing.T) {
	cs, err := ParseConstraints(
		[]string{"name=probability_of_precipitation", "threshold=0.1"},
		nil,
	)
	require.NoError(t, err)

	name, hasName := cs.Name()
	assert.True(t, hasName)
	assert.Equal(t, "probability_of_precipitation", name)
	assert.Len(t, cs.CoordSelectors(), 1)
}

func TestParseConstraintsValueCoercion(t *testing.T) {
	tests := []struct {
		name string
		expr string
		kind valueKind
		str  string
	}{
		{name: "integer", expr: "percentile=10", kind: valueInt, str: "10"},
		{name: "negative integer", expr: "level=-3", kind: valueInt, str: "-3"},
		{name: "float", expr: "threshold=0.1", kind: valueFloat, str: "0.1"},
		{name: "scientific float", expr: "threshold=1e-3", kind: valueFloat, str: "0.001"},
		{name: "string", expr: "cell_method=mean", kind: valueString, str: "mean"},
		{name: "value containing equals", expr: "expr=a=b", kind: valueString, str: "a=b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := ParseConstraints([]string{tt.expr}, nil)
			require.NoError(t, err)

			sels := cs.CoordSelectors()
			require.Len(t, sels, 1)
			assert.Equal(t, tt.kind, sels[0].Value.kind)
			assert.Equal(t, tt.str, sels[0].Value.String())
		})
	}
}

func TestParseConstraintsDuplicateKeys(t *testing.T) {
	// Last value wins; an earlier unit override survives a later "None".
	cs, err := ParseConstraints(
		[]string{"threshold=0.1", "threshold=0.2"},
		[]string{"mm h-1", "None"},
	)
	require.NoError(t, err)

	sels := cs.CoordSelectors()
	require.Len(t, sels, 1)
	assert.Equal(t, 0.2, sels[0].Value.f)
	assert.Equal(t, "mm h-1", sels[0].Units)
}

func TestParseConstraintsMalformed(t *testing.T) {
	_, err := ParseConstraints([]string{"threshold"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing '='")
}

func TestParseConstraintsDoesNotMutateInputs(t *testing.T) {
	exprs := []string{"threshold=0.1"}
	units := []string{"mm h-1"}
	_, err := ParseConstraints(exprs, units)
	require.NoError(t, err)
	assert.Equal(t, []string{"threshold=0.1"}, exprs)
	assert.Equal(t, []string{"mm h-1"}, units)
}

func TestValueMatches(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		point float64
		want  bool
	}{
		{name: "integer equal", value: parseValue("10"), point: 10, want: true},
		{name: "integer unequal", value: parseValue("10"), point: 25, want: false},
		{name: "float equal", value: parseValue("0.1"), point: 0.1, want: true},
		{name: "float within rounding", value: parseValue("0.1"), point: 0.1 * 3.6e6 / 3.6e6, want: true},
		{name: "float unequal", value: parseValue("0.1"), point: 0.03, want: false},
		{name: "string never matches numeric", value: parseValue("wet"), point: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Matches(tt.point))
		})
	}
}
