package envelope_heat_calc

import (
	"fmt"
	"math"
)

// 暖冷房設備の種類
type HVACType string

const (
	// 時刻別の一定出力で暖房する
	HVACElectricHeater HVACType = "electric_heater"

	// 設定温度を保つよう能力の範囲内で暖冷房する
	HVACIdealHeaterCooler HVACType = "ideal_heater_cooler"
)

// 暖冷房設備
type HVAC struct {
	Name  string   `json:"name" yaml:"name"`
	Type  HVACType `json:"type" yaml:"type"`
	Space string   `json:"space" yaml:"space"`

	// electric_heater: 出力, W
	Power float64 `json:"power,omitempty" yaml:"power,omitempty"`
	// electric_heater: 時刻別の出力割合 [24]
	Schedule []float64 `json:"schedule,omitempty" yaml:"schedule,omitempty"`

	// ideal_heater_cooler: 暖房・冷房の設定温度, degree C（nil の場合は運転しない）
	HeatingSetpoint *float64 `json:"heating_setpoint,omitempty" yaml:"heating_setpoint,omitempty"`
	CoolingSetpoint *float64 `json:"cooling_setpoint,omitempty" yaml:"cooling_setpoint,omitempty"`
	// ideal_heater_cooler: 暖房・冷房能力, W
	HeatingCapacity float64 `json:"heating_capacity,omitempty" yaml:"heating_capacity,omitempty"`
	CoolingCapacity float64 `json:"cooling_capacity,omitempty" yaml:"cooling_capacity,omitempty"`
}

func (h *HVAC) validate() error {
	switch h.Type {
	case HVACElectricHeater:
		if h.Power < 0 {
			return fmt.Errorf("%w: power %g", ErrInvalidInput, h.Power)
		}
		return validate_schedule(h.Schedule)
	case HVACIdealHeaterCooler:
		if h.HeatingCapacity < 0 || h.CoolingCapacity < 0 {
			return fmt.Errorf("%w: negative capacity", ErrInvalidInput)
		}
		if h.HeatingSetpoint != nil && h.CoolingSetpoint != nil && *h.HeatingSetpoint > *h.CoolingSetpoint {
			return fmt.Errorf("%w: heating setpoint %g above cooling setpoint %g", ErrInvalidInput, *h.HeatingSetpoint, *h.CoolingSetpoint)
		}
		return nil
	default:
		return fmt.Errorf("%w: hvac type %q", ErrInvalidInput, h.Type)
	}
}

/*
暖冷房の供給熱量を室ごとに集計して状態量に書き込む。

熱計算モデルは状態量の供給熱量を室の熱収支に加えるだけであり、
供給熱量の決定はここで行う。
*/
type HVACControl struct {
	hvacs   []HVAC
	targets []*ThermalZone
	model   *ThermalModel
	main_dt float64
}

func NewHVACControl(b *Building, m *ThermalModel) (*HVACControl, error) {
	hc := &HVACControl{model: m, main_dt: m.MainDt}
	for _, h := range b.HVACs {
		i, err := b.space_index(h.Space)
		if err != nil {
			return nil, fmt.Errorf("hvac %q: %w", h.Name, err)
		}
		if err := h.validate(); err != nil {
			return nil, fmt.Errorf("hvac %q: %w", h.Name, err)
		}
		hc.hvacs = append(hc.hvacs, h)
		hc.targets = append(hc.targets, m.Zones[i])
	}
	return hc, nil
}

/*
Args:
	hour: 時刻（0～23）, h
	theta_o: 外気温度, degree C
	state: 状態量（照明発熱・すきま風量は更新済みであること）
*/
func (hc *HVACControl) Update(hour int, theta_o float64, state SimulationState) {
	for _, z := range hc.model.Zones {
		z.SetHeatingCoolingPower(state, 0)
	}
	for k := range hc.hvacs {
		h := &hc.hvacs[k]
		z := hc.targets[k]
		var q float64
		switch h.Type {
		case HVACElectricHeater:
			q = h.Power * schedule_fraction(h.Schedule, hour)
		case HVACIdealHeaterCooler:
			q = hc.ideal_load(h, z, theta_o, state)
		}
		z.SetHeatingCoolingPower(state, z.HeatingCoolingPower(state)+q)
	}
}

/*
主時間間隔の終わりに室温が設定温度となる供給熱量を求め、能力で制限する。

Notes:
	運転の判定は供給熱量なしで主時間間隔の終わりに達する室温（成り行きの室温）による。
Returns:
	供給熱量（暖房を正）, W
*/
func (hc *HVACControl) ideal_load(h *HVAC, z *ThermalZone, theta_o float64, state SimulationState) float64 {
	t0 := z.Temperature(state)
	c := z.Mcp()

	// 暖冷房なしの熱収支（照明発熱と同じ室の他の設備の供給熱量は含む）
	a, b := z.abc(state, theta_o, hc.model.TransmittedSolar(z.Index, state))
	t_free := EstimateFutureTemperature(t0, a, b, c, hc.main_dt)

	var set, q_min, q_max float64
	switch {
	case h.HeatingSetpoint != nil && t_free < *h.HeatingSetpoint:
		set, q_min, q_max = *h.HeatingSetpoint, 0, h.HeatingCapacity
	case h.CoolingSetpoint != nil && t_free > *h.CoolingSetpoint:
		set, q_min, q_max = *h.CoolingSetpoint, -h.CoolingCapacity, 0
	default:
		return 0
	}

	var q float64
	if math.Abs(b) < b_threshold {
		q = c*(set-t0)/hc.main_dt - a
	} else {
		e := math.Exp(-b * hc.main_dt / c)
		q = b*(set-t0*e)/(1.0-e) - a
	}

	return math.Min(math.Max(q, q_min), q_max)
}
