package envelope_heat_calc

import (
	"fmt"
	"math"
)

// 中空層
type Cavity struct {
	Tilt      float64 // 傾斜角（0: 水平・下面加熱, 90: 鉛直, 180: 水平・上面加熱）, degree
	Thickness float64 // 中空層の厚さ, m
	Height    float64 // 中空層の高さ, m
	Gas       Gas     // 封入気体
	EpsFront  float64 // 表側の面の放射率, -
	EpsBack   float64 // 裏側の面の放射率, -
}

/*
中空層の熱貫流率（対流＋放射）を計算する。

Args:
	t_front: 表側の面の温度, degree C
	t_back: 裏側の面の温度, degree C
Returns:
	熱貫流率, W/m2 K
*/
func (c *Cavity) U(t_front, t_back float64) float64 {
	t_m_k := (t_front+t_back)/2.0 + kelvin

	h_r := 4.0 * sgm * t_m_k * t_m_k * t_m_k * c.EpsFront * c.EpsBack /
		(1.0 - (1.0-c.EpsFront)*(1.0-c.EpsBack))

	return h_r + c.ConvectionCoefficient(t_front, t_back)
}

/*
中空層の対流熱伝達率を計算する。

Args:
	t_front: 表側の面の温度, degree C
	t_back: 裏側の面の温度, degree C
Returns:
	対流熱伝達率, W/m2 K
*/
func (c *Cavity) ConvectionCoefficient(t_front, t_back float64) float64 {
	t_m_k := (t_front+t_back)/2.0 + kelvin
	ra := c.Gas.Rayleigh(t_m_k, t_front-t_back, c.Thickness)

	// 表側が高温のときは熱流が下向きとなるため傾斜角を反転する
	tilt := c.Tilt
	if t_front > t_back {
		tilt = 180.0 - tilt
	}

	nu := nusselt(ra, tilt, c.Height/c.Thickness)
	return nu * c.Gas.Conductivity(t_m_k) / c.Thickness
}

// 中空層の熱抵抗 1/U, m2 K/W
func (c *Cavity) R(t_front, t_back float64) (float64, error) {
	u := c.U(t_front, t_back)
	if math.IsNaN(u) || u <= 0 {
		return 0, fmt.Errorf("%w: cavity U=%g (t_front=%g, t_back=%g)", ErrNumericDegeneracy, u, t_front, t_back)
	}
	return 1.0 / u, nil
}

// 60° の直前でこの幅だけ nu_60 へ線形に移行させる, degree
const nu_blend_width = 0.5

/*
ISO 15099 5.3.3.4 の傾斜角別相関式によりヌセルト数を求める。

Args:
	ra: レイリー数, -
	tilt: 傾斜角, degree
	a_gi: アスペクト比（高さ/厚さ）, -
Returns:
	ヌセルト数, -
*/
func nusselt(ra, tilt, a_gi float64) float64 {
	switch {
	case tilt < 60.0-nu_blend_width:
		return nu_0_60(ra, tilt)
	case tilt < 60.0:
		w := (tilt - (60.0 - nu_blend_width)) / nu_blend_width
		return (1.0-w)*nu_0_60(ra, tilt) + w*nu_60(ra, a_gi)
	case tilt == 60.0:
		return nu_60(ra, a_gi)
	case tilt < 90.0:
		return nu_60_90(ra, tilt, a_gi)
	case tilt == 90.0:
		return nu_90(ra, a_gi)
	default:
		return nu_90_180(ra, tilt, a_gi)
	}
}

func aux(x float64) float64 {
	return (x + math.Abs(x)) / 2.0
}

func nu_0_60(ra, tilt float64) float64 {
	gamma := tilt * math.Pi / 180.0
	ra_cos := ra * math.Cos(gamma)

	a := aux(1.0 - 1708.0/ra_cos)
	b := 1.0 - 1708.0*math.Pow(math.Sin(1.8*gamma), 1.6)/ra_cos
	c := math.Pow(ra_cos/5830.0, 1.0/3.0) - 1.0

	return 1.0 + 1.44*a*b + aux(c)
}

func nu_60(ra, a_gi float64) float64 {
	g := 0.5 / math.Pow(1.0+math.Pow(ra/3160.0, 20.6), 0.1)
	nu_1 := math.Pow(1.0+math.Pow(0.0936*math.Pow(ra, 0.314)/(1.0+g), 7.0), 1.0/7.0)
	nu_2 := (0.104 + 0.175/a_gi) * math.Pow(ra, 0.283)
	return math.Max(nu_1, nu_2)
}

func nu_60_90(ra, tilt, a_gi float64) float64 {
	n60 := nu_60(ra, a_gi)
	n90 := nu_90(ra, a_gi)
	return n60 + (n90-n60)*(tilt-60.0)/30.0
}

func nu_90(ra, a_gi float64) float64 {
	var nu_1 float64
	if ra <= 1e4 {
		nu_1 = 1.0 + 1.7596678e-10*math.Pow(ra, 2.2984755)
	} else if ra < 5e4 {
		nu_1 = 0.028154 * math.Pow(ra, 0.4134)
	} else {
		nu_1 = 0.0673838 * math.Pow(ra, 1.0/3.0)
	}
	nu_2 := 0.242 * math.Pow(ra/a_gi, 0.272)
	return math.Max(nu_1, nu_2)
}

func nu_90_180(ra, tilt, a_gi float64) float64 {
	return 1.0 + (nu_90(ra, a_gi)-1.0)*math.Sin(tilt*math.Pi/180.0)
}
