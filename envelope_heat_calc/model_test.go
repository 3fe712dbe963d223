package envelope_heat_calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestModelSingleZoneClosedForm(t *testing.T) {
	const (
		volume = 40.0
		area   = 4.0
		t_out  = 30.0
	)
	b := singleZoneBuilding(volume, area)
	header := NewSimulationStateHeader()
	opts := DefaultModelOptions()
	opts.NStepHourly = 60
	m, err := NewThermalModel(b, header, opts)
	require.NoError(t, err)
	require.Equal(t, 1, m.DtSubdivisions)
	state := header.TakeValues()

	// C dT/dt = U A (To - T), U = 1 / (0.1 + 2.5 + 0.1)
	ua := area / 2.7
	c := volume * rho_a * c_a
	exact := func(time float64) float64 {
		return t_out + (theta_init-t_out)*math.Exp(-ua*time/c)
	}

	z := m.Zones[0]
	w := CurrentWeather{DryBulbTemperature: t_out}
	for n := 0; n < 800; n++ {
		require.NoError(t, m.March(w, state))
		time := float64(n+1) * m.MainDt
		if !assert.InDelta(t, exact(time), z.Temperature(state), 0.15, "step %d", n) {
			break
		}
	}
}

func runModel(t *testing.T, parallel bool, steps int) SimulationState {
	t.Helper()
	b := twoZoneBuilding()
	header := NewSimulationStateHeader()
	opts := DefaultModelOptions()
	opts.Parallel = parallel
	m, err := NewThermalModel(b, header, opts)
	require.NoError(t, err)
	state := header.TakeValues()

	w := CurrentWeather{DryBulbTemperature: 5, WindSpeed: 3, WindDirection: 90}
	for n := 0; n < steps; n++ {
		for _, s := range m.Fenestrations {
			s.SetFrontSolarIrradiance(state, 300)
		}
		require.NoError(t, m.March(w, state))
	}
	return state
}

func TestModelParallelMatchesSerial(t *testing.T) {
	defer goleak.VerifyNone(t)

	serial := runModel(t, false, 8)
	parallel := runModel(t, true, 8)
	assert.Equal(t, serial, parallel)

	for _, v := range serial {
		assert.False(t, math.IsNaN(v))
	}
}

func TestModelTwoZones(t *testing.T) {
	b := twoZoneBuilding()
	header := NewSimulationStateHeader()
	m, err := NewThermalModel(b, header, DefaultModelOptions())
	require.NoError(t, err)

	require.Len(t, m.Zones, 2)
	require.Len(t, m.Surfaces, 5)
	require.Len(t, m.Fenestrations, 1)
	assert.GreaterOrEqual(t, m.DtSubdivisions, 1)
	assert.InDelta(t, m.MainDt, m.Dt*float64(m.DtSubdivisions), 1e-9)

	// 離散化されない構成はない
	for i, d := range m.Discretizations {
		assert.NotNil(t, d, b.Constructions[i].Name)
	}

	// 間仕切りは両方の室に、断熱された床は寝室のみに接する
	living, bedroom := m.Zones[0], m.Zones[1]
	assert.Len(t, living.bounds, 4)
	assert.Len(t, bedroom.bounds, 3)

	state := header.TakeValues()
	assert.InDelta(t, 0.005, bedroom.InfiltrationVolume(state), 1e-12)

	// 窓の透過日射は居間に入り、居間の方が暖まる
	for n := 0; n < 16; n++ {
		m.Fenestrations[0].SetFrontSolarIrradiance(state, 500)
		require.NoError(t, m.March(CurrentWeather{DryBulbTemperature: 22}, state))
	}
	assert.Greater(t, living.Temperature(state), bedroom.Temperature(state))
}

func TestNewThermalModelErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(b *Building)
		opts   func(o *ModelOptions)
		want   error
	}{
		{"unknown construction", func(b *Building) { b.Surfaces[0].Construction = "steel" }, nil, ErrUnknownConstruction},
		{"unknown space", func(b *Building) { b.Surfaces[0].Back = SpaceBoundary("attic") }, nil, ErrUnknownSpace},
		{"zero volume", func(b *Building) { b.Spaces[1].Volume = 0 }, nil, ErrInvalidInput},
		{"bad construction", func(b *Building) { b.Materials[0].Thickness = 0 }, nil, ErrDiscretization},
		{"zero n_step_hourly", nil, func(o *ModelOptions) { o.NStepHourly = 0 }, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := twoZoneBuilding()
			if tt.modify != nil {
				tt.modify(b)
			}
			opts := DefaultModelOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			_, err := NewThermalModel(b, NewSimulationStateHeader(), opts)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestModelMarchErrors(t *testing.T) {
	b := twoZoneBuilding()
	header := NewSimulationStateHeader()
	m, err := NewThermalModel(b, header, DefaultModelOptions())
	require.NoError(t, err)
	state := header.TakeValues()

	err = m.March(CurrentWeather{DryBulbTemperature: math.NaN()}, state)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestModelNumericDegeneracy(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		b := twoZoneBuilding()
		b.Substances[2].BackEmissivity = ptr(math.NaN())
		header := NewSimulationStateHeader()
		opts := DefaultModelOptions()
		opts.Parallel = parallel
		m, err := NewThermalModel(b, header, opts)
		require.NoError(t, err)

		err = m.March(CurrentWeather{DryBulbTemperature: 5}, header.TakeValues())
		assert.ErrorIs(t, err, ErrNumericDegeneracy, "parallel=%v", parallel)
		assert.Contains(t, err.Error(), "south_window")
	}
}

func TestIsWindward(t *testing.T) {
	m := &ThermalModel{}
	south := &ThermalSurface{Tilt: 90, Azimuth: 0}

	assert.True(t, m.is_windward(south, 180, true))
	assert.False(t, m.is_windward(south, 0, true))
	assert.True(t, m.is_windward(south, 0, false))

	west := &ThermalSurface{Tilt: 90, Azimuth: 90}
	assert.True(t, m.is_windward(west, 270, true))

	roof := &ThermalSurface{Tilt: 0}
	for _, d := range []float64{0, 90, 180, 270} {
		assert.True(t, m.is_windward(roof, d, true))
	}
}

func TestOutdoorIRIrradiance(t *testing.T) {
	b := singleZoneBuilding(40, 4)
	header := NewSimulationStateHeader()
	m, err := NewThermalModel(b, header, DefaultModelOptions())
	require.NoError(t, err)
	state := header.TakeValues()
	s := m.Surfaces[0]

	// 鉛直面は天空と地面を半分ずつ見る
	m.update_outdoor_irradiance(CurrentWeather{DryBulbTemperature: 10, HorizontalIR: 300}, state)
	assert.InDelta(t, 0.5*300+0.5*black_body(10), state[s.i_back_ir], 1e-9)

	// 室側は変更しない
	assert.Equal(t, black_body(theta_init), state[s.i_front_ir])

	// 大気放射量がない場合は天空の放射率から求める
	m.update_outdoor_irradiance(CurrentWeather{DryBulbTemperature: 10, SkyEmissivity: 0.8}, state)
	assert.InDelta(t, 0.5*0.8*black_body(10)+0.5*black_body(10), state[s.i_back_ir], 1e-9)

	m.update_outdoor_irradiance(CurrentWeather{DryBulbTemperature: 10}, state)
	assert.InDelta(t, 0.5*eps*black_body(10)+0.5*black_body(10), state[s.i_back_ir], 1e-9)
}
