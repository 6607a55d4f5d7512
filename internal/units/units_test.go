package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr string
	}{
		{name: "metre per second", expr: "m s-1"},
		{name: "millimetre per hour", expr: "mm h-1"},
		{name: "kelvin", expr: "K"},
		{name: "dimensionless", expr: "1"},
		{name: "percent", expr: "%"},
		{name: "rain amount", expr: "kg m-2"},
		{name: "caret exponent", expr: "m s^-1"},
		{name: "positive exponent", expr: "m2"},
		{name: "pressure", expr: "hPa"},
		{name: "frequency", expr: "Hz"},
		{name: "days", expr: "d"},
		{name: "unknown symbol", expr: "wibble", wantErr: "unknown unit"},
		{name: "offset unit rejected", expr: "degC", wantErr: "not supported"},
		{name: "empty expression", expr: "", wantErr: "empty unit expression"},
		{name: "bad exponent", expr: "m--2", wantErr: "bad exponent"},
		{name: "bare exponent", expr: "-1", wantErr: "bad unit term"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Parse(tt.expr)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expr, u.String())
		})
	}
}

func TestFactor(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want float64
	}{
		{name: "rain rate", from: "m s-1", to: "mm h-1", want: 3.6e6},
		{name: "rain rate inverse", from: "mm h-1", to: "m s-1", want: 1.0 / 3.6e6},
		{name: "length prefix", from: "mm", to: "m", want: 1e-3},
		{name: "hours to seconds", from: "h", to: "s", want: 3600},
		{name: "minutes to hours", from: "min", to: "h", want: 1.0 / 60},
		{name: "fraction to percent", from: "1", to: "%", want: 100},
		{name: "identity", from: "mm h-1", to: "mm h-1", want: 1},
		{name: "grams to kilograms", from: "g", to: "kg", want: 1e-3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, err := Parse(tt.from)
			require.NoError(t, err)
			to, err := Parse(tt.to)
			require.NoError(t, err)

			got, err := Factor(from, to)
			require.NoError(t, err)
			assert.InEpsilon(t, tt.want, got, 1e-12)
		})
	}
}

func TestFactorIncompatible(t *testing.T) {
	m, err := Parse("m")
	require.NoError(t, err)
	s, err := Parse("s")
	require.NoError(t, err)

	assert.False(t, m.ConvertibleTo(s))

	_, err = Factor(m, s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompatible)
}

func TestConvertibleToCancelledDimensions(t *testing.T) {
	// mm mm-1 cancels to dimensionless and must compare equal to "1".
	ratio, err := Parse("mm mm-1")
	require.NoError(t, err)
	one, err := Parse("1")
	require.NoError(t, err)

	assert.True(t, ratio.ConvertibleTo(one))
}

func TestConvert(t *testing.T) {
	in := []float64{0.03 * 0.001 / 3600, 0.1 * 0.001 / 3600, 1.0 * 0.001 / 3600}

	out, err := Convert(in, "m s-1", "mm h-1")
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.InDelta(t, 0.03, out[0], 1e-12)
	assert.InDelta(t, 0.1, out[1], 1e-12)
	assert.InDelta(t, 1.0, out[2], 1e-12)

	// Input slice is never modified.
	assert.Equal(t, 0.03*0.001/3600, in[0])
}

func TestConvertErrors(t *testing.T) {
	_, err := Convert([]float64{1}, "m", "s")
	assert.ErrorIs(t, err, ErrIncompatible)

	_, err = Convert([]float64{1}, "wibble", "m")
	assert.ErrorIs(t, err, ErrUnknown)

	_, err = Convert([]float64{1}, "m", "wibble")
	assert.ErrorIs(t, err, ErrUnknown)
}
