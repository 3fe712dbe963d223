package envelope_heat_calc

import (
	"fmt"
	"math"
)

// 建物の階数（共同住宅の場合は住戸の階数）
type Story string

// 建物の階数（共同住宅の場合は住戸の階数）
const (
	StoryOne Story = "one" // 1階
	StoryTwo Story = "two" // 2階（2階以上の階数の場合も2階とする。）
)

// 室内圧力
type InsidePressure string

// 室内圧力
const (
	InsidePressurePositive InsidePressure = "positive" // 正圧
	InsidePressureNegative InsidePressure = "negative" // 負圧
	InsidePressureBalanced InsidePressure = "balanced" // ゼロバランス
)

// 建物の気密性能
type Airtightness struct {
	CValue         float64        `json:"c_value" yaml:"c_value"` // 相当隙間面積, cm2/m2
	Story          Story          `json:"story" yaml:"story"`
	InsidePressure InsidePressure `json:"inside_pressure" yaml:"inside_pressure"`
}

// 係数a, 回/(h (cm2/m2 K^0.5))
var infiltration_a = map[Story]float64{
	StoryOne: 0.022, // 1階建ての時の係数
	StoryTwo: 0.020, // 2階建ての時の係数
}

// 係数b, 回/h（階数と換気方式の組み合わせで決定する）
var infiltration_b = map[InsidePressure]map[Story]float64{
	InsidePressureBalanced: {
		StoryOne: 0.00,
		StoryTwo: 0.00,
	},
	InsidePressurePositive: {
		StoryOne: 0.26,
		StoryTwo: 0.14,
	},
	InsidePressureNegative: {
		StoryOne: 0.28,
		StoryTwo: 0.13,
	},
}

func (a *Airtightness) validate() error {
	if a.CValue < 0 {
		return fmt.Errorf("%w: c_value %g", ErrInvalidInput, a.CValue)
	}
	if _, ok := infiltration_a[a.Story]; !ok {
		return fmt.Errorf("%w: story %q", ErrInvalidInput, a.Story)
	}
	if _, ok := infiltration_b[a.InsidePressure]; !ok {
		return fmt.Errorf("%w: inside pressure %q", ErrInvalidInput, a.InsidePressure)
	}
	return nil
}

/*
すきま風の換気回数を求める（住宅用、圧力バランスを解いた近似式バージョン）

住宅を１つの空間に見立てて予め圧力バランスを解いた近似式を用いる。

Args:
	theta_r: 気積加重平均室温, degree C
	theta_o: 外気温度, degree C
Returns:
	換気回数, 1/h
*/
func (a *Airtightness) rate(theta_r, theta_o float64) float64 {
	// 室内外温度差, K
	delta_theta := math.Abs(theta_r - theta_o)

	// 切片bの符号は-とする
	return math.Max(infiltration_a[a.Story]*(a.CValue*math.Sqrt(delta_theta))-infiltration_b[a.InsidePressure][a.Story], 0)
}

/*
室ごとのすきま風量を状態量に書き込む。

すきま風量が指定された室はその値を保持し、それ以外の室は気密性能から求める。
気密性能が指定されない場合は何もしない。
*/
type InfiltrationControl struct {
	airtightness *Airtightness
	zones        []*ThermalZone
}

func NewInfiltrationControl(b *Building, m *ThermalModel) (*InfiltrationControl, error) {
	ic := &InfiltrationControl{airtightness: b.Airtightness}
	if b.Airtightness == nil {
		return ic, nil
	}
	if err := b.Airtightness.validate(); err != nil {
		return nil, err
	}
	for i := range b.Spaces {
		if b.Spaces[i].InfiltrationRate == nil {
			ic.zones = append(ic.zones, m.Zones[i])
		}
	}
	return ic, nil
}

/*
Args:
	theta_o: 外気温度, degree C
	state: 状態量
*/
func (ic *InfiltrationControl) Update(theta_o float64, state SimulationState) {
	if ic.airtightness == nil || len(ic.zones) == 0 {
		return
	}

	// 室気積加重平均室温, degree C
	var sum_t, sum_v float64
	for _, z := range ic.zones {
		sum_t += z.Temperature(state) * z.Volume
		sum_v += z.Volume
	}
	theta_r := sum_t / sum_v

	n := ic.airtightness.rate(theta_r, theta_o)
	for _, z := range ic.zones {
		z.SetInfiltrationVolume(state, n*z.Volume/3600.0)
	}
}
