package envelope_heat_calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfiltrationRate(t *testing.T) {
	tests := []struct {
		name string
		a    Airtightness
		want float64
	}{
		{"two stories balanced", Airtightness{CValue: 2, Story: StoryTwo, InsidePressure: InsidePressureBalanced}, 0.020 * 2 * math.Sqrt(20)},
		{"one story balanced", Airtightness{CValue: 2, Story: StoryOne, InsidePressure: InsidePressureBalanced}, 0.022 * 2 * math.Sqrt(20)},
		{"two stories negative", Airtightness{CValue: 5, Story: StoryTwo, InsidePressure: InsidePressureNegative}, 0.020*5*math.Sqrt(20) - 0.13},
		{"clamped to zero", Airtightness{CValue: 2, Story: StoryOne, InsidePressure: InsidePressurePositive}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.a.rate(20, 0), 1e-12)
			// 室内外の温度差の向きによらない
			assert.InDelta(t, tt.want, tt.a.rate(0, 20), 1e-12)
		})
	}
	assert.InDelta(t, 0.17889, (&Airtightness{CValue: 2, Story: StoryTwo, InsidePressure: InsidePressureBalanced}).rate(20, 0), 1e-5)
}

func TestInfiltrationControl(t *testing.T) {
	b := twoZoneBuilding()
	b.Airtightness = &Airtightness{CValue: 2, Story: StoryTwo, InsidePressure: InsidePressureBalanced}
	m, state := newControlFixture(t, b)
	ic, err := NewInfiltrationControl(b, m)
	require.NoError(t, err)

	living, bedroom := m.Zones[0], m.Zones[1]
	ic.Update(0, state)

	n := 0.020 * 2 * math.Sqrt(22)
	assert.InDelta(t, n*60/3600, living.InfiltrationVolume(state), 1e-12)

	// すきま風量を指定した室は対象外
	assert.Equal(t, 0.005, bedroom.InfiltrationVolume(state))
}

func TestInfiltrationControlWithoutAirtightness(t *testing.T) {
	b := twoZoneBuilding()
	m, state := newControlFixture(t, b)
	ic, err := NewInfiltrationControl(b, m)
	require.NoError(t, err)

	before := append(SimulationState{}, state...)
	ic.Update(-10, state)
	assert.Equal(t, before, state)
}

func TestInfiltrationValidation(t *testing.T) {
	for _, a := range []Airtightness{
		{CValue: -1, Story: StoryOne, InsidePressure: InsidePressureBalanced},
		{CValue: 2, Story: "three", InsidePressure: InsidePressureBalanced},
		{CValue: 2, Story: StoryOne, InsidePressure: "none"},
	} {
		b := twoZoneBuilding()
		a := a
		b.Airtightness = &a
		m, _ := newControlFixture(t, b)
		_, err := NewInfiltrationControl(b, m)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", a)
	}
}
