package envelope_heat_calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTarpNaturalConvection(t *testing.T) {
	tests := []struct {
		name      string
		theta_air float64
		theta_s   float64
		cos_tilt  float64
		want      float64
	}{
		{"no temperature difference", 20, 20, 1, h_c_min},
		{"vertical", 20, 28, 0, 1.31 * 2},
		{"air warmer facing up", 28, 20, 1, 9.482 * 2 / (7.238 - 1)},
		{"surface warmer facing up", 20, 28, 1, 1.81 * 2 / (1.382 + 1)},
		{"surface warmer facing down", 20, 28, -1, 9.482 * 2 / (7.238 - 1)},
		{"air warmer facing down", 28, 20, -1, 1.81 * 2 / (1.382 + 1)},
		{"tilted", 28, 20, 0.5, 9.482 * 2 / (7.238 - 0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tarp_natural_convection(tt.theta_air, tt.theta_s, tt.cos_tilt), 1e-9)
		})
	}
}

func TestTarpConvection(t *testing.T) {
	// 周長 8 m, 面積 4 m2, 風速 2 m/s のとき sqrt(P V / A) = 2
	env := Environment{AirTemperature: 10, AirSpeed: 2, Windward: true}
	h := tarp_convection(env, 10, 0, 3, 4, 8)
	assert.InDelta(t, 2.537*1.52*2+h_c_min, h, 1e-9)

	env.Windward = false
	assert.InDelta(t, 2.537*0.5*1.52*2+h_c_min, tarp_convection(env, 10, 0, 3, 4, 8), 1e-9)

	// 無風時は自然対流のみ
	env.AirSpeed = 0
	assert.InDelta(t, 1.31*2, tarp_convection(env, 18, 0, 6, 4, 8), 1e-9)

	// 粗い面ほど大きい
	env.AirSpeed = 3
	assert.Greater(t, tarp_convection(env, 10, 0, 1, 4, 8), tarp_convection(env, 10, 0, 6, 4, 8))

	assert.Panics(t, func() { tarp_convection(env, 10, 0, 7, 4, 8) })
}

func TestRadiation(t *testing.T) {
	assert.InDelta(t, 315.6, black_body(0), 0.1)
	assert.InDelta(t, 20.0, radiant_temperature(black_body(20)), 1e-9)
	assert.InDelta(t, 5.14, radiative_coefficient(0.9, 20, 20), 0.01)

	// 放射率に比例する
	assert.InEpsilon(t, 0.5*radiative_coefficient(0.9, 30, 10), radiative_coefficient(0.45, 30, 10), 1e-12)
}

func TestNewEnvironment(t *testing.T) {
	env := NewEnvironment(22)
	assert.Equal(t, 22.0, env.AirTemperature)
	assert.Zero(t, env.AirSpeed)
	assert.False(t, env.Adiabatic)
	assert.InDelta(t, 22.0, radiant_temperature(env.IRIrradiance), 1e-9)
	assert.False(t, math.IsNaN(env.IRIrradiance))
}
