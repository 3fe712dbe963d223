package envelope_heat_calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// 面を1つだけ作成する
func newTestSurface(t *testing.T, b *Building, srf Surface, opts DiscretizationOptions, fenestration bool) (*ThermalSurface, SimulationState) {
	t.Helper()
	ci, err := b.construction_index(srf.Construction)
	require.NoError(t, err)
	d, err := Discretize(b, &b.Constructions[ci], opts)
	require.NoError(t, err)

	header := NewSimulationStateHeader()
	s, err := NewThermalSurface(header, 0, &srf, d, ci, b.Spaces, fenestration)
	require.NoError(t, err)
	return s, header.TakeValues()
}

func TestSurfacePureResistor(t *testing.T) {
	b := testBuilding()
	srf := Surface{
		Name: "wall", Construction: "insulated", Area: 1, Tilt: 90,
		FrontHs: ptr(10), BackHs: ptr(10),
	}
	s, state := newTestSurface(t, b, srf, DefaultDiscretizationOptions(900), false)

	q_front, q_back, err := s.March(state, NewEnvironment(20), NewEnvironment(0), 900)
	require.NoError(t, err)

	q := 20.0 / (0.1 + 2.5 + 0.1)
	assert.InDelta(t, q, q_front, 1e-9)
	assert.InDelta(t, -q, q_back, 1e-9)
	assert.InDelta(t, 20-q/10, s.FrontTemperature(state), 1e-9)
	assert.InDelta(t, q/10, s.BackTemperature(state), 1e-9)

	// 状態量にも書き戻される
	assert.Equal(t, q_front, s.FrontHeatFlow(state))
	assert.Equal(t, q_back, s.BackHeatFlow(state))
	assert.Equal(t, 10.0, s.FrontHeatTransferCoefficient(state))
}

func TestSurfaceConcreteWallSteadyState(t *testing.T) {
	b := testBuilding()
	// 表面温度をほぼ固定するため表面熱伝達率を大きくとる
	srf := Surface{
		Name: "wall", Construction: "concrete", Area: 1, Tilt: 90,
		FrontHs: ptr(1e4), BackHs: ptr(1e4),
	}
	opts := DefaultDiscretizationOptions(900)
	opts.MaxDx = 0.05
	s, state := newTestSurface(t, b, srf, opts, false)
	require.GreaterOrEqual(t, len(s.Discretization().Segments), 3)

	const dt = 4.0
	n := int(48 * 3600 / dt)
	var q_front, q_back float64
	var err error
	for i := 0; i < n; i++ {
		q_front, q_back, err = s.March(state, NewEnvironment(30), NewEnvironment(20), dt)
		require.NoError(t, err)
	}

	assert.InEpsilon(t, 40.8, q_front, 0.01)
	assert.InEpsilon(t, -40.8, q_back, 0.01)
	assert.InDelta(t, -q_front, q_back, 1e-6)

	// 定常状態の温度分布は直線
	nodes := s.NodeTemperatures(state)
	for i := 1; i < len(nodes)-1; i++ {
		assert.InDelta(t, (nodes[i-1]+nodes[i+1])/2, nodes[i], 1e-6)
	}
}

func TestSurfaceSteadyStateMixed(t *testing.T) {
	b := testBuilding()
	srf := Surface{
		Name: "wall", Construction: "concrete_insulated", Area: 1, Tilt: 90,
		FrontHs: ptr(10), BackHs: ptr(10),
	}
	s, state := newTestSurface(t, b, srf, DefaultDiscretizationOptions(900), false)

	// 熱容量を持つ節点と持たない節点が混在する
	assert.Less(t, s.Discretization().NMassiveNodes(), s.Discretization().NNodes())

	r_total := 0.1 + 0.2/0.816 + 2.5 + 0.1
	var q_front, q_back float64
	var err error
	for i := 0; i < 10*24*12; i++ {
		q_front, q_back, err = s.March(state, NewEnvironment(0), NewEnvironment(20), 300)
		require.NoError(t, err)
	}
	assert.InEpsilon(t, -20/r_total, q_front, 1e-3)
	assert.InEpsilon(t, 20/r_total, q_back, 1e-3)
}

func TestSurfaceAdiabatic(t *testing.T) {
	b := testBuilding()
	srf := Surface{
		Name: "slab", Construction: "concrete", Area: 1, Tilt: 0,
		FrontHs: ptr(10), BackHs: ptr(10),
	}
	s, state := newTestSurface(t, b, srf, DefaultDiscretizationOptions(900), false)

	for i := 0; i < 2000; i++ {
		_, q_back, err := s.March(state, NewEnvironment(30), Environment{Adiabatic: true}, 60)
		require.NoError(t, err)
		assert.Zero(t, q_back)
	}
	// 断熱側から熱が逃げないため全体が表側の温度に近づく
	assert.Greater(t, s.BackTemperature(state), theta_init)
}

func TestSurfaceOpaqueAbsorbsSolarAtFace(t *testing.T) {
	b := testBuilding()
	srf := Surface{
		Name: "wall", Construction: "concrete", Area: 1, Tilt: 90,
		FrontHs: ptr(10), BackHs: ptr(10),
	}
	s, state := newTestSurface(t, b, srf, DefaultDiscretizationOptions(900), false)

	s.SetFrontSolarIrradiance(state, 400)
	s.SetBackSolarIrradiance(state, 100)
	s.absorbed_solar(state)

	q := s.net.q_sol
	assert.InDelta(t, 0.7*400, q[0], 1e-9)
	assert.InDelta(t, 0.9*100, q[len(q)-1], 1e-9)
	for _, v := range q[1 : len(q)-1] {
		assert.Zero(t, v)
	}

	_, _, err := s.March(state, NewEnvironment(20), NewEnvironment(20), 60)
	require.NoError(t, err)
	assert.Greater(t, s.FrontTemperature(state), s.BackTemperature(state))

	transmitted, _ := s.TransmittedSolar(state)
	assert.Zero(t, transmitted)
}

func TestFenestrationOptics(t *testing.T) {
	b := testBuilding()
	srf := Surface{
		Name: "window", Construction: "double_glazing", Area: 2, Tilt: 90, Height: 1.2,
		FrontHs: ptr(20), BackHs: ptr(8),
	}
	s, state := newTestSurface(t, b, srf, DefaultDiscretizationOptions(900), true)

	s.SetFrontSolarIrradiance(state, 500)
	to_back, to_front := s.TransmittedSolar(state)

	pane := Glazing{Tau: 0.8, RhoFront: 0.08, RhoBack: 0.08}
	system := Combine(pane, pane)
	assert.InDelta(t, system.Tau*500*2, to_back, 1e-9)
	assert.Zero(t, to_front)

	// 各ガラスの吸収分は層の両側の節点に半分ずつ与えられる
	s.absorbed_solar(state)
	alphas := AbsorbedFractions([]Glazing{pane, pane})
	q := s.net.q_sol
	require.Len(t, q, 4)
	assert.InDelta(t, alphas[0]*500/2, q[0], 1e-9)
	assert.InDelta(t, alphas[0]*500/2, q[1], 1e-9)
	assert.InDelta(t, alphas[1]*500/2, q[2], 1e-9)
	assert.InDelta(t, alphas[1]*500/2, q[3], 1e-9)

	// 吸収＋透過＋反射 = 入射
	assert.InDelta(t, 500*(1-system.RhoFront), floats.Sum(q)+system.Tau*500, 1e-9)

	for i := 0; i < 60; i++ {
		_, _, err := s.March(state, NewEnvironment(0), NewEnvironment(20), 10)
		require.NoError(t, err)
	}
	for _, v := range s.NodeTemperatures(state) {
		assert.False(t, math.IsNaN(v))
	}
}

func TestSurfaceCavityDegenerate(t *testing.T) {
	b := testBuilding()
	b.Substances[2].BackEmissivity = ptr(math.NaN())
	srf := Surface{
		Name: "window", Construction: "double_glazing", Area: 1, Tilt: 90,
		FrontHs: ptr(10), BackHs: ptr(10),
	}
	s, state := newTestSurface(t, b, srf, DefaultDiscretizationOptions(900), true)

	_, _, err := s.March(state, NewEnvironment(0), NewEnvironment(20), 10)
	assert.ErrorIs(t, err, ErrNumericDegeneracy)
	assert.Contains(t, err.Error(), "window")
}

func TestSurfaceConvectiveBoundary(t *testing.T) {
	b := testBuilding()
	b.Spaces = []Space{{Name: "room", Volume: 30}}
	srf := Surface{
		Name: "wall", Construction: "concrete", Area: 10, Tilt: 90,
		Front: OutdoorBoundary(), Back: SpaceBoundary("room"),
	}
	s, state := newTestSurface(t, b, srf, DefaultDiscretizationOptions(900), false)
	assert.Equal(t, -1, s.FrontSpace)
	assert.Equal(t, 0, s.BackSpace)

	outdoor := Environment{AirTemperature: 0, AirSpeed: 4, Windward: true}
	s.SetFrontIRIrradiance(state, black_body(0))
	_, _, err := s.March(state, outdoor, NewEnvironment(22), 60)
	require.NoError(t, err)

	// 外気側は強制対流を含むため室側より大きい
	assert.Greater(t, s.FrontHeatTransferCoefficient(state), s.BackHeatTransferCoefficient(state))
	assert.Greater(t, s.BackHeatTransferCoefficient(state), h_c_min)
}

func TestNewThermalSurfaceErrors(t *testing.T) {
	b := testBuilding()
	b.Spaces = []Space{{Name: "room", Volume: 30}}
	d, err := Discretize(b, construction(b, "concrete"), DefaultDiscretizationOptions(900))
	require.NoError(t, err)

	tests := []struct {
		name string
		srf  Surface
		want error
	}{
		{"zero area", Surface{Name: "a", Area: 0}, ErrInvalidInput},
		{"unknown front space", Surface{Name: "a", Area: 1, Front: SpaceBoundary("attic")}, ErrUnknownSpace},
		{"unknown back space", Surface{Name: "a", Area: 1, Back: SpaceBoundary("attic")}, ErrUnknownSpace},
		{"invalid boundary", Surface{Name: "a", Area: 1, Back: Boundary{Type: "ground"}}, ErrInvalidInput},
		{"invalid direction", Surface{Name: "a", Area: 1, Direction: "up"}, ErrInvalidInput},
		{"negative tilt", Surface{Name: "a", Area: 1, Tilt: -10}, ErrInvalidInput},
		{"tilt above 180", Surface{Name: "a", Area: 1, Tilt: 200}, ErrInvalidInput},
		{"NaN tilt", Surface{Name: "a", Area: 1, Tilt: math.NaN()}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewThermalSurface(NewSimulationStateHeader(), 0, &tt.srf, d, 0, b.Spaces, false)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
