package envelope_heat_calc

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// 室の状態（観測用）
type ZoneSnapshot struct {
	Name           string  `json:"name"`
	Temperature    float64 `json:"t_r"`
	HeatingCooling float64 `json:"q_hvac"`
	Lighting       float64 `json:"q_light"`
}

// 主時間ステップごとの計算結果を受け取る。
type Observer interface {
	Observe(n int, w CurrentWeather, zones []ZoneSnapshot)
}

/*
建物の熱計算一式

熱計算モデルと、状態量を書き込む周辺の処理（日射・すきま風・照明・暖冷房）をまとめる。
*/
type Simulation struct {
	Building *Building
	Header   *SimulationStateHeader
	Model    *ThermalModel
	State    SimulationState
	Interval Interval

	solar        *SolarDistribution
	infiltration *InfiltrationControl
	lighting     *LightingControl
	hvac         *HVACControl
}

func NewSimulation(b *Building, cfg Config) (*Simulation, error) {
	itv, err := IntervalFromNStepHourly(cfg.NStepHourly)
	if err != nil {
		return nil, err
	}

	header := NewSimulationStateHeader()
	m, err := NewThermalModel(b, header, cfg.ModelOptions())
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		Building: b,
		Header:   header,
		Model:    m,
		Interval: itv,
		solar:    NewSolarDistribution(m),
	}
	if s.infiltration, err = NewInfiltrationControl(b, m); err != nil {
		return nil, err
	}
	if s.lighting, err = NewLightingControl(b, m); err != nil {
		return nil, err
	}
	if s.hvac, err = NewHVACControl(b, m); err != nil {
		return nil, err
	}
	s.State = header.TakeValues()

	return s, nil
}

// ステップ n の時刻（0～23）, h
func (s *Simulation) hour(n int) int {
	n_hour := s.Interval.get_n_hour()
	h := n / n_hour
	if n%n_hour < 0 {
		h--
	}
	h %= 24
	if h < 0 {
		h += 24
	}
	return h
}

/*
主時間ステップ n を計算する。

周辺の処理が状態量を更新した後に熱計算モデルを1ステップ進める。
*/
func (s *Simulation) Step(n int, w CurrentWeather) error {
	hour := s.hour(n)
	s.solar.Update(w, s.State)
	s.infiltration.Update(w.DryBulbTemperature, s.State)
	s.lighting.Update(hour, s.State)
	s.hvac.Update(hour, w.DryBulbTemperature, s.State)

	if err := s.Model.March(w, s.State); err != nil {
		return fmt.Errorf("step %d: %w", n, err)
	}
	return nil
}

func (s *Simulation) Snapshot() []ZoneSnapshot {
	ret := make([]ZoneSnapshot, len(s.Model.Zones))
	for i, z := range s.Model.Zones {
		ret[i] = ZoneSnapshot{
			Name:           z.Name,
			Temperature:    z.Temperature(s.State),
			HeatingCooling: z.HeatingCoolingPower(s.State),
			Lighting:       z.LightingPower(s.State),
		}
	}
	return ret
}

/*
助走計算と本計算を行う。

Args:
	ctx: 主時間ステップの間で中断を確認する
	b: 建物定義
	weather: 気象条件
	cfg: 設定
	observers: ステップごとの結果の通知先
Returns:
	本計算の記録
*/
func Run(ctx context.Context, b *Building, weather WeatherSource, cfg Config, observers ...Observer) (*Recorder, error) {
	log.Infof("計算開始")

	sim, err := NewSimulation(b, cfg)
	if err != nil {
		return nil, err
	}

	n_step_main := sim.Interval.get_n_step(cfg.Days)
	n_step_run_up := sim.Interval.get_n_step(cfg.RunUpDays)

	log.WithFields(log.Fields{
		"zones":         len(sim.Model.Zones),
		"surfaces":      len(sim.Model.Surfaces),
		"fenestrations": len(sim.Model.Fenestrations),
		"interval":      sim.Interval,
		"subdivisions":  sim.Model.DtSubdivisions,
		"parallel":      sim.Model.Parallel,
	}).Info("model created")

	log.Infof("助走計算")
	for n := -n_step_run_up; n < 0; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := sim.Step(n, weather.At(n)); err != nil {
			return nil, err
		}
	}

	log.Infof("本計算")
	result := NewRecorder(sim.Header, sim.Model, sim.Interval)
	m := 1
	for n := 0; n < n_step_main; n++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		w := weather.At(n)
		if err := sim.Step(n, w); err != nil {
			return result, err
		}
		result.Record(n, w, sim.State)

		if len(observers) > 0 {
			zones := sim.Snapshot()
			for _, o := range observers {
				o.Observe(n, w, zones)
			}
		}

		if n+1 == n_step_main*m/12 {
			log.Infof("%d / 12 calculated.", m)
			m++
		}
	}

	return result, nil
}
