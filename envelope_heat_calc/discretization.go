package envelope_heat_calc

import (
	"fmt"
	"math"
)

// 区間の種類
type SegmentKind int

const (
	SegmentUndefined SegmentKind = iota
	SegmentSolid
	SegmentCavity
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentSolid:
		return "solid"
	case SegmentCavity:
		return "cavity"
	default:
		return "undefined"
	}
}

/*
熱回路網の区間（隣り合う2節点の間）

Solid は熱抵抗と熱容量を、Cavity は中空層の厚さ・気体・両面の放射率を持つ。
Cavity の熱抵抗は境界温度に依存するため、ここには保持しない。
*/
type Segment struct {
	Kind  SegmentKind
	Layer int // 構成の層番号

	R float64 // 熱抵抗, m2 K/W（Solid）
	C float64 // 熱容量, J/m2 K（Solid, 熱容量なしは 0）

	Thickness float64 // 厚さ, m
	Gas       Gas     // 封入気体（Cavity）
	EpsFront  float64 // 表側の面の放射率（Cavity）, -
	EpsBack   float64 // 裏側の面の放射率（Cavity）, -
}

// 離散化の条件
type DiscretizationOptions struct {
	MaxDx              float64 // 最大要素厚さ, m
	MainDt             float64 // 主時間間隔, s
	SafetyFactor       float64 // 安定条件の安全率, -
	MaxFilmCoefficient float64 // 安定条件の評価に用いる表面熱伝達率, W/m2 K
}

func DefaultDiscretizationOptions(main_dt float64) DiscretizationOptions {
	return DiscretizationOptions{
		MaxDx:              0.04,
		MainDt:             main_dt,
		SafetyFactor:       0.5,
		MaxFilmCoefficient: h_max_default,
	}
}

/*
層構成を離散化した熱回路網

構成ごとに一度だけ作成され、以後は変更しない。同じ構成を参照する面はこれを共有する。
節点は区間の境界に置かれ、節点数は区間数＋1となる。
*/
type Discretization struct {
	Segments  []Segment
	NElements []int // 層ごとの要素数

	// 層ごとの最初の区間番号
	LayerFirstSegment []int

	// 節点ごとの熱容量（隣接区間の熱容量の半分ずつの和）, J/m2 K
	NodeCapacitance []float64

	RValue           float64 // 中空層を除く熱抵抗の合計, m2 K/W
	TstepSubdivision int     // 主時間間隔の分割数

	FrontEmissivity  float64
	BackEmissivity   float64
	FrontAbsorptance float64
	BackAbsorptance  float64

	// ガラス層の日射特性と層番号（表側から順）
	Glazings      []Glazing
	GlazingLayers []int

	HasCavity bool
}

// 節点数
func (d *Discretization) NNodes() int {
	return len(d.Segments) + 1
}

// 熱容量を持つ節点の数
func (d *Discretization) NMassiveNodes() int {
	n := 0
	for _, c := range d.NodeCapacitance {
		if c > 0 {
			n++
		}
	}
	return n
}

// 熱容量を持つ節点があるか否か
func (d *Discretization) IsMassive() bool {
	return d.NMassiveNodes() > 0
}

// 層の最初と最後の節点番号
func (d *Discretization) layer_nodes(layer int) (int, int) {
	first := d.LayerFirstSegment[layer]
	return first, first + d.NElements[layer]
}

/*
層構成を離散化する。

Args:
	b: 建物の定義（物質と材料の参照先）
	c: 層構成
	opts: 離散化の条件
Returns:
	離散化された熱回路網
*/
func Discretize(b *Building, c *Construction, opts DiscretizationOptions) (*Discretization, error) {
	if len(c.Layers) == 0 {
		return nil, fmt.Errorf("%w: construction %q has no layers", ErrDiscretization, c.Name)
	}
	if opts.MaxDx <= 0 {
		return nil, fmt.Errorf("%w: maximum element thickness must be positive", ErrDiscretization)
	}

	d := &Discretization{
		NElements:         make([]int, len(c.Layers)),
		LayerFirstSegment: make([]int, len(c.Layers)),
	}

	// 最も厳しい安定条件から求めた時間間隔の上限, s
	dt_max := math.Inf(1)

	substances := make([]*Substance, len(c.Layers))
	for i, layer := range c.Layers {
		d.LayerFirstSegment[i] = len(d.Segments)

		if layer.Cavity != nil {
			if i == 0 || i == len(c.Layers)-1 {
				return nil, fmt.Errorf("%w: construction %q: cavity cannot be the first or last layer", ErrDiscretization, c.Name)
			}
			if c.Layers[i-1].Cavity != nil {
				return nil, fmt.Errorf("%w: construction %q: two adjacent cavities", ErrDiscretization, c.Name)
			}
			if layer.Cavity.Thickness <= 0 {
				return nil, fmt.Errorf("%w: construction %q: cavity thickness %g", ErrDiscretization, c.Name, layer.Cavity.Thickness)
			}
			gas, err := GasFromString(layer.Cavity.Gas)
			if err != nil {
				return nil, fmt.Errorf("%w: construction %q: %v", ErrDiscretization, c.Name, err)
			}
			d.Segments = append(d.Segments, Segment{
				Kind:      SegmentCavity,
				Layer:     i,
				Thickness: layer.Cavity.Thickness,
				Gas:       gas,
			})
			d.NElements[i] = 1
			d.HasCavity = true
			continue
		}

		m, err := b.material(layer.Material)
		if err != nil {
			return nil, err
		}
		s, err := b.substance(m.Substance)
		if err != nil {
			return nil, err
		}
		substances[i] = s
		if err := s.validate_heat_capacity(); err != nil {
			return nil, err
		}

		if !s.IsMassive() {
			// 熱容量なし: 分割しない1区間
			r, err := nomass_resistance(m, s)
			if err != nil {
				return nil, err
			}
			d.Segments = append(d.Segments, Segment{Kind: SegmentSolid, Layer: i, R: r, Thickness: m.Thickness})
			d.NElements[i] = 1
			d.RValue += r
			continue
		}

		if m.Thickness <= 0 {
			return nil, fmt.Errorf("%w: material %q: thickness %g", ErrDiscretization, m.Name, m.Thickness)
		}
		if s.Conductivity <= 0 {
			return nil, fmt.Errorf("%w: substance %q: conductivity %g", ErrDiscretization, s.Name, s.Conductivity)
		}

		// 要素数と要素厚さ
		n := int(math.Ceil(m.Thickness/opts.MaxDx - 1e-9))
		if n < 1 {
			n = 1
		}
		dx := m.Thickness / float64(n)

		// 要素の熱抵抗（半要素抵抗 dx/2λ の直列）と熱容量
		r := 2.0 * (dx / (2.0 * s.Conductivity))
		c_e := s.volumetric_heat_capacity() * dx
		for e := 0; e < n; e++ {
			d.Segments = append(d.Segments, Segment{Kind: SegmentSolid, Layer: i, R: r, C: c_e, Thickness: dx})
		}
		d.NElements[i] = n
		d.RValue += r * float64(n)

		// 陽解法の安定条件
		dt_layer := c_e * dx / (2.0*s.Conductivity + opts.MaxFilmCoefficient*dx)
		if opts.SafetyFactor > 0 {
			dt_layer *= opts.SafetyFactor
		}
		dt_max = math.Min(dt_max, dt_layer)
	}

	// 中空層の両面の放射率は隣接する層の物性値による
	for k := range d.Segments {
		seg := &d.Segments[k]
		if seg.Kind != SegmentCavity {
			continue
		}
		seg.EpsFront = substances[seg.Layer-1].back_emissivity()
		seg.EpsBack = substances[seg.Layer+1].front_emissivity()
	}

	for k, seg := range d.Segments {
		if seg.Kind == SegmentUndefined {
			return nil, fmt.Errorf("%w: construction %q: segment %d undefined", ErrDiscretization, c.Name, k)
		}
	}

	first := substances[0]
	last := substances[len(substances)-1]
	d.FrontEmissivity = first.front_emissivity()
	d.FrontAbsorptance = first.front_absorptance()
	d.BackEmissivity = last.back_emissivity()
	d.BackAbsorptance = last.back_absorptance()

	for i, s := range substances {
		if s == nil || !s.IsGlazing() {
			continue
		}
		g, err := s.glazing()
		if err != nil {
			return nil, fmt.Errorf("%w: construction %q: %v", ErrDiscretization, c.Name, err)
		}
		d.Glazings = append(d.Glazings, g)
		d.GlazingLayers = append(d.GlazingLayers, i)
	}

	d.NodeCapacitance = make([]float64, d.NNodes())
	for k, seg := range d.Segments {
		d.NodeCapacitance[k] += seg.C / 2.0
		d.NodeCapacitance[k+1] += seg.C / 2.0
	}

	d.TstepSubdivision = subdivisions(opts.MainDt, dt_max)

	return d, nil
}

/*
熱容量なしの材料の熱抵抗を求める。

Notes:
	熱抵抗が直接与えられている場合はそれを用い、そうでなければ 厚さ/熱伝導率 とする。
*/
func nomass_resistance(m *Material, s *Substance) (float64, error) {
	if m.Resistance != nil {
		if *m.Resistance <= 0 || math.IsNaN(*m.Resistance) {
			return 0, fmt.Errorf("%w: material %q: resistance %g", ErrDiscretization, m.Name, *m.Resistance)
		}
		return *m.Resistance, nil
	}
	if m.Thickness <= 0 {
		return 0, fmt.Errorf("%w: material %q: thickness %g", ErrDiscretization, m.Name, m.Thickness)
	}
	if s.Conductivity <= 0 {
		return 0, fmt.Errorf("%w: substance %q: conductivity %g", ErrDiscretization, s.Name, s.Conductivity)
	}
	return m.Thickness / s.Conductivity, nil
}

// 主時間間隔 dt を dt_max 以下に分割する最小の分割数
func subdivisions(dt, dt_max float64) int {
	if math.IsInf(dt_max, 1) || dt <= 0 {
		return 1
	}
	n := int(math.Ceil(dt/dt_max - 1e-9))
	if n < 1 {
		return 1
	}
	return n
}
