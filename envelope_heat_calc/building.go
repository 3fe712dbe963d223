package envelope_heat_calc

import (
	"fmt"
	"math"
)

// 室
type Space struct {
	Name   string  `json:"name" yaml:"name"`
	Volume float64 `json:"volume" yaml:"volume"` // 気積, m3

	// 一定のすきま風量, m3/s（nil の場合は建物の気密性能から求める）
	InfiltrationRate *float64 `json:"infiltration_rate,omitempty" yaml:"infiltration_rate,omitempty"`
}

// 面（外壁・内壁・窓）
type Surface struct {
	Name         string  `json:"name" yaml:"name"`
	Construction string  `json:"construction" yaml:"construction"`
	Area         float64 `json:"area" yaml:"area"` // 面積, m2

	// 方位（s, sw, ..., top, bottom）。指定した場合は Tilt と Azimuth より優先する。
	Direction Direction `json:"direction,omitempty" yaml:"direction,omitempty"`
	Tilt      float64   `json:"tilt" yaml:"tilt"`       // 傾斜角（0: 上向き水平, 90: 鉛直）, degree
	Azimuth   float64   `json:"azimuth" yaml:"azimuth"` // 方位角（南0, 西90）, degree

	Height    float64  `json:"height,omitempty" yaml:"height,omitempty"`       // 高さ（中空層の相関式に用いる）, m
	Perimeter *float64 `json:"perimeter,omitempty" yaml:"perimeter,omitempty"` // 周長, m
	Roughness int      `json:"roughness,omitempty" yaml:"roughness,omitempty"` // 表面粗さ区分, 1～6

	Front Boundary `json:"front_boundary" yaml:"front_boundary"`
	Back  Boundary `json:"back_boundary" yaml:"back_boundary"`

	// 固定の表面熱伝達率, W/m2 K（nil の場合は対流・放射から毎ステップ計算する）
	FrontHs *float64 `json:"front_hs,omitempty" yaml:"front_hs,omitempty"`
	BackHs  *float64 `json:"back_hs,omitempty" yaml:"back_hs,omitempty"`
}

// 傾斜角, degree
func (s *Surface) tilt() float64 {
	if s.Direction != "" {
		return s.Direction.beta_w_j() * 180.0 / math.Pi
	}
	return s.Tilt
}

// 方位角, degree
func (s *Surface) azimuth() float64 {
	if s.Direction != "" {
		if s.Direction == DirectionTop || s.Direction == DirectionBottom {
			return 0
		}
		return s.Direction.alpha_w_j() * 180.0 / math.Pi
	}
	return s.Azimuth
}

func (s *Surface) height() float64 {
	if s.Height > 0 {
		return s.Height
	}
	return math.Sqrt(s.Area)
}

func (s *Surface) perimeter() float64 {
	if s.Perimeter != nil && *s.Perimeter > 0 {
		return *s.Perimeter
	}
	return 4.0 * math.Sqrt(s.Area)
}

func (s *Surface) roughness() int {
	if s.Roughness == 0 {
		return 3
	}
	return s.Roughness
}

/*
建物の定義

モデルの読み込み処理から受け取る定義であり、熱計算中は読み取り専用とする。
*/
type Building struct {
	Substances    []Substance    `json:"substances" yaml:"substances"`
	Materials     []Material     `json:"materials" yaml:"materials"`
	Constructions []Construction `json:"constructions" yaml:"constructions"`
	Spaces        []Space        `json:"spaces" yaml:"spaces"`
	Surfaces      []Surface      `json:"surfaces" yaml:"surfaces"`
	Fenestrations []Surface      `json:"fenestrations" yaml:"fenestrations"`
	HVACs         []HVAC         `json:"hvacs,omitempty" yaml:"hvacs,omitempty"`
	Luminaires    []Luminaire    `json:"luminaires,omitempty" yaml:"luminaires,omitempty"`
	Airtightness  *Airtightness  `json:"airtightness,omitempty" yaml:"airtightness,omitempty"`
}

func (b *Building) substance(name string) (*Substance, error) {
	for i := range b.Substances {
		if b.Substances[i].Name == name {
			return &b.Substances[i], nil
		}
	}
	return nil, fmt.Errorf("%w: unknown substance %q", ErrDiscretization, name)
}

func (b *Building) material(name string) (*Material, error) {
	for i := range b.Materials {
		if b.Materials[i].Name == name {
			return &b.Materials[i], nil
		}
	}
	return nil, fmt.Errorf("%w: unknown material %q", ErrDiscretization, name)
}

func (b *Building) construction_index(name string) (int, error) {
	for i := range b.Constructions {
		if b.Constructions[i].Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownConstruction, name)
}

func (b *Building) space_index(name string) (int, error) {
	for i := range b.Spaces {
		if b.Spaces[i].Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownSpace, name)
}
