package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/cube"
)

const mmhToMs = 0.001 / 3600.0

func precipCube() *cube.Cube {
	return &cube.Cube{
		Name:  "probability_of_precipitation",
		Units: "1",
		Shape: []int{3, 3, 3},
		Data: []float64{
			0.85, 0.95, 0.73, 0.75, 0.85, 0.65, 0.70, 0.80, 0.62,
			0.18, 0.20, 0.15, 0.11, 0.16, 0.09, 0.10, 0.14, 0.03,
			0.03, 0.04, 0.01, 0.02, 0.02, 0.00, 0.01, 0.00, 0.00,
		},
		Coords: []*cube.Coord{
			{Name: "threshold", Units: "m s-1", Dim: 0,
				Points: []float64{0.03 * mmhToMs, 0.1 * mmhToMs, 1.0 * mmhToMs}},
			{Name: "projection_y_coordinate", Units: "m", Dim: 1,
				Points: []float64{0, 1, 2}},
			{Name: "projection_x_coordinate", Units: "m", Dim: 2,
				Points: []float64{0, 1, 2}},
		},
	}
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.cube")
	require.NoError(t, cube.Save(path, precipCube()))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
