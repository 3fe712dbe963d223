package envelope_heat_calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulationStateHeader(t *testing.T) {
	h := NewSimulationStateHeader()
	i := h.Push(SimulationStateElement{Kind: SpaceDryBulbTemperature, Index: 0}, 22)
	j := h.Push(SimulationStateElement{Kind: SurfaceNodeTemperature, Index: 3, Node: 2}, 20)
	k := h.Push(SimulationStateElement{Kind: SurfaceFrontConvectionCoefficient, Index: 1, Fenestration: true}, 10)

	assert.Equal(t, []int{0, 1, 2}, []int{i, j, k})
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []string{"rm0_t_r", "b3_t_n2", "f1_h_s_front"}, h.Names())

	assert.Equal(t, 1, h.Find(SimulationStateElement{Kind: SurfaceNodeTemperature, Index: 3, Node: 2}))
	assert.Equal(t, -1, h.Find(SimulationStateElement{Kind: SurfaceNodeTemperature, Index: 3, Node: 2, Fenestration: true}))

	// TakeValues は毎回新しい配列を返す
	s1 := h.TakeValues()
	s2 := h.TakeValues()
	require.Equal(t, SimulationState{22, 20, 10}, s1)
	s1[0] = 0
	assert.Equal(t, 22.0, s2[0])
	assert.Equal(t, 22.0, h.TakeValues()[0])
}

func TestModelStateLayout(t *testing.T) {
	b := twoZoneBuilding()
	header := NewSimulationStateHeader()
	m, err := NewThermalModel(b, header, DefaultModelOptions())
	require.NoError(t, err)

	// 室ごとに4つ、面ごとに節点数 + 8 の状態量を持つ
	n := 4 * len(m.Zones)
	for _, s := range append(append([]*ThermalSurface{}, m.Surfaces...), m.Fenestrations...) {
		n += s.Discretization().NNodes() + 8
	}
	assert.Equal(t, n, header.Len())

	// 名前は重複しない
	seen := map[string]bool{}
	for _, name := range header.Names() {
		assert.False(t, seen[name], name)
		seen[name] = true
	}
	assert.True(t, seen["f0_q_back"])
	assert.True(t, seen["rm1_v_inf"])
}
