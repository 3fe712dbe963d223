package envelope_heat_calc

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
)

// 計算結果の1行（縦持ち）
type ResultRow struct {
	Step    int     `csv:"step"`
	Time    string  `csv:"time"`
	Element string  `csv:"element"`
	Value   float64 `csv:"value"`
}

// 室ごとの集計結果
type ZoneSummary struct {
	Zone           string  `csv:"zone"`
	MeanTemp       float64 `csv:"t_r_mean"`
	MinTemp        float64 `csv:"t_r_min"`
	MaxTemp        float64 `csv:"t_r_max"`
	HeatingEnergy  float64 `csv:"heating_kwh"`
	CoolingEnergy  float64 `csv:"cooling_kwh"`
	LightingEnergy float64 `csv:"lighting_kwh"`
}

/*
計算結果を記録する。

室の状態量と面の表面温度・表面熱伝達率・熱流を主時間ステップごとに保持する。
面の内部節点の温度は記録しない。
*/
type Recorder struct {
	itv     Interval
	names   []string
	offsets []int

	zone_names []string
	i_theta    []int // 記録対象の中での室温の位置
	i_hvac     []int
	i_light    []int

	steps   []int
	theta_o []float64
	values  [][]float64 // [記録対象][ステップ]
}

func NewRecorder(header *SimulationStateHeader, m *ThermalModel, itv Interval) *Recorder {
	r := &Recorder{itv: itv}

	last_node := make(map[[2]int]int)
	for _, s := range append(append([]*ThermalSurface{}, m.Surfaces...), m.Fenestrations...) {
		f := 0
		if s.IsFenestration {
			f = 1
		}
		last_node[[2]int{f, s.Index}] = s.Discretization().NNodes() - 1
	}

	for off, e := range header.Elements() {
		if e.Kind == SurfaceNodeTemperature {
			f := 0
			if e.Fenestration {
				f = 1
			}
			if e.Node != 0 && e.Node != last_node[[2]int{f, e.Index}] {
				continue
			}
		}
		k := len(r.offsets)
		switch e.Kind {
		case SpaceDryBulbTemperature:
			r.i_theta = append(r.i_theta, k)
		case SpaceHeatingCoolingPower:
			r.i_hvac = append(r.i_hvac, k)
		case SpaceLightingPower:
			r.i_light = append(r.i_light, k)
		}
		r.names = append(r.names, e.Name())
		r.offsets = append(r.offsets, off)
	}
	r.values = make([][]float64, len(r.offsets))

	for _, z := range m.Zones {
		r.zone_names = append(r.zone_names, z.Name)
	}

	return r
}

// ステップ n の状態量を記録する。
func (r *Recorder) Record(n int, w CurrentWeather, state SimulationState) {
	r.steps = append(r.steps, n)
	r.theta_o = append(r.theta_o, w.DryBulbTemperature)
	for k, off := range r.offsets {
		r.values[k] = append(r.values[k], state[off])
	}
}

// 記録したステップ数
func (r *Recorder) Len() int {
	return len(r.steps)
}

func (r *Recorder) ZoneNames() []string {
	return r.zone_names
}

// 室 i の室温, degree C, [n]
func (r *Recorder) ZoneTemperatures(i int) []float64 {
	return r.values[r.i_theta[i]]
}

// 外気温度, degree C, [n]
func (r *Recorder) OutdoorTemperatures() []float64 {
	return r.theta_o
}

// ステップ n の時刻の表記（通算日 時:分）
func (r *Recorder) time_label(n int) string {
	n_hour := r.itv.get_n_hour()
	day := n/(24*n_hour) + 1
	minutes := (n % (24 * n_hour)) * 60 / n_hour
	return fmt.Sprintf("%03d %02d:%02d", day, minutes/60, minutes%60)
}

// 計算結果を縦持ちの CSV として書き出す。
func (r *Recorder) WriteCSV(w io.Writer) error {
	rows := make([]*ResultRow, 0, len(r.steps)*(len(r.names)+1))
	for j, n := range r.steps {
		t := r.time_label(n)
		rows = append(rows, &ResultRow{Step: n, Time: t, Element: "t_o", Value: r.theta_o[j]})
		for k, name := range r.names {
			rows = append(rows, &ResultRow{Step: n, Time: t, Element: name, Value: r.values[k][j]})
		}
	}
	return gocsv.Marshal(rows, w)
}

/*
室ごとに室温の平均・最小・最大と暖冷房・照明のエネルギーを集計する。

Notes:
	エネルギーは主時間ステップの瞬時値に時間間隔を乗じて積算する。
*/
func (r *Recorder) Summary() []*ZoneSummary {
	if len(r.steps) == 0 {
		return nil
	}
	h := r.itv.get_time()
	ret := make([]*ZoneSummary, len(r.zone_names))
	for i, name := range r.zone_names {
		t := r.values[r.i_theta[i]]
		var heating, cooling float64
		for _, q := range r.values[r.i_hvac[i]] {
			if q > 0 {
				heating += q
			} else {
				cooling -= q
			}
		}
		ret[i] = &ZoneSummary{
			Zone:           name,
			MeanTemp:       floats.Sum(t) / float64(len(t)),
			MinTemp:        floats.Min(t),
			MaxTemp:        floats.Max(t),
			HeatingEnergy:  heating * h / 1000.0,
			CoolingEnergy:  cooling * h / 1000.0,
			LightingEnergy: floats.Sum(r.values[r.i_light[i]]) * h / 1000.0,
		}
	}
	return ret
}

func (r *Recorder) WriteSummaryCSV(w io.Writer) error {
	return gocsv.Marshal(r.Summary(), w)
}
