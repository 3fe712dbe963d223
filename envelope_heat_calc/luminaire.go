package envelope_heat_calc

import (
	"fmt"
	"math"
)

// 照明
type Luminaire struct {
	Name  string  `json:"name" yaml:"name"`
	Space string  `json:"space" yaml:"space"`
	Power float64 `json:"power" yaml:"power"` // 最大発熱量, W

	// 時刻別の発熱割合（0時～23時）, -。省略した場合は常に1とする。
	Schedule []float64 `json:"schedule,omitempty" yaml:"schedule,omitempty"`
}

/*
時刻別の割合を取得する。

Args:
	schedule: 時刻別の割合 [24]（空の場合は常に1）
	hour: 時刻, h
*/
func schedule_fraction(schedule []float64, hour int) float64 {
	if len(schedule) == 0 {
		return 1.0
	}
	return schedule[hour%len(schedule)]
}

func validate_schedule(schedule []float64) error {
	if len(schedule) != 0 && len(schedule) != 24 {
		return fmt.Errorf("%w: schedule must have 24 values, got %d", ErrInvalidInput, len(schedule))
	}
	for _, v := range schedule {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: schedule value %g", ErrInvalidInput, v)
		}
	}
	return nil
}

// 照明の発熱量を室ごとに集計して状態量に書き込む。
type LightingControl struct {
	luminaires []Luminaire
	targets    []*ThermalZone
	zones      []*ThermalZone
}

func NewLightingControl(b *Building, m *ThermalModel) (*LightingControl, error) {
	lc := &LightingControl{zones: m.Zones}
	for _, l := range b.Luminaires {
		i, err := b.space_index(l.Space)
		if err != nil {
			return nil, fmt.Errorf("luminaire %q: %w", l.Name, err)
		}
		if err := validate_schedule(l.Schedule); err != nil {
			return nil, fmt.Errorf("luminaire %q: %w", l.Name, err)
		}
		lc.luminaires = append(lc.luminaires, l)
		lc.targets = append(lc.targets, m.Zones[i])
	}
	return lc, nil
}

/*
Args:
	hour: 時刻（0～23）, h
	state: 状態量
*/
func (lc *LightingControl) Update(hour int, state SimulationState) {
	for _, z := range lc.zones {
		z.SetLightingPower(state, 0)
	}
	for k, l := range lc.luminaires {
		z := lc.targets[k]
		z.SetLightingPower(state, z.LightingPower(state)+l.Power*schedule_fraction(l.Schedule, hour))
	}
}
