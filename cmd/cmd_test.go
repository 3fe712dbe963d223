package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBuilding = `{
  "substances": [
    {"name": "concrete", "thermal_conductivity": 1.6, "density": 2300, "specific_heat": 880},
    {"name": "glass", "thermal_conductivity": 1.0, "density": 2500, "specific_heat": 840,
     "front_emissivity": 0.84, "back_emissivity": 0.84,
     "solar_transmittance": 0.8, "front_solar_reflectance": 0.08, "back_solar_reflectance": 0.08}
  ],
  "materials": [
    {"name": "concrete_150", "substance": "concrete", "thickness": 0.15},
    {"name": "glass_6", "substance": "glass", "thickness": 0.006}
  ],
  "constructions": [
    {"name": "wall", "layers": [{"material": "concrete_150"}]},
    {"name": "pair_glass", "layers": [
      {"material": "glass_6"}, {"cavity": {"thickness": 0.012, "gas": "argon"}}, {"material": "glass_6"}
    ]}
  ],
  "spaces": [{"name": "room", "volume": 50}],
  "surfaces": [
    {"name": "south", "construction": "wall", "area": 10, "direction": "s",
     "front_boundary": {"type": "outdoor"}, "back_boundary": {"type": "space", "space": "room"}}
  ],
  "fenestrations": [
    {"name": "window", "construction": "pair_glass", "area": 2, "direction": "s",
     "front_boundary": {"type": "outdoor"}, "back_boundary": {"type": "space", "space": "room"}}
  ]
}`

func writeBuilding(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "building.json")
	require.NoError(t, os.WriteFile(path, []byte(testBuilding), 0o644))
	return path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestDiscretizeCommand(t *testing.T) {
	out := execute(t, "discretize", "-i", writeBuilding(t), "--log", "warn")

	assert.Contains(t, out, "═══ wall ═══")
	assert.Contains(t, out, "═══ pair_glass ═══")
	assert.Contains(t, out, "subdivisions")
	assert.Contains(t, out, "argon")
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	execute(t, "run", "-i", writeBuilding(t), "-o", dir,
		"--outdoor-temperature", "5", "--days", "1", "--run-up-days", "0", "--log", "warn")

	for _, name := range []string{"result_detail.csv", "result_summary.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
	_, err := os.Stat(filepath.Join(dir, "temperature.png"))
	assert.True(t, os.IsNotExist(err))
}
