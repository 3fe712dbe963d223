package envelope_heat_calc

import "math"

// 自然対流熱伝達率の下限値, W/m2 K
const h_c_min = 0.15

/*
表面の境界条件（外気または室）

外気に面する場合は風速と天空からの長波放射を、室に面する場合は室温と室の放射を与える。
*/
type Environment struct {
	AirTemperature float64 // 空気温度, degree C
	AirSpeed       float64 // 風速, m/s
	IRIrradiance   float64 // 入射長波放射量, W/m2
	Windward       bool    // 風上側か否か
	Adiabatic      bool    // 断熱境界か否か
}

// 温度 t の静穏な空気と、同じ温度の黒体放射に囲まれた境界条件を返す。
func NewEnvironment(t float64) Environment {
	return Environment{
		AirTemperature: t,
		IRIrradiance:   black_body(t),
	}
}

// 黒体放射量, W/m2 (t: degree C)
func black_body(t float64) float64 {
	t_k := t + kelvin
	return sgm * t_k * t_k * t_k * t_k
}

// 長波放射量に相当する放射温度, degree C
func radiant_temperature(ir float64) float64 {
	return math.Pow(ir/sgm, 0.25) - kelvin
}

/*
TARP モデルによる自然対流熱伝達率を計算する。

Args:
	theta_air: 空気温度, degree C
	theta_s: 表面温度, degree C
	cos_tilt: 面の法線と鉛直上向きのなす角の余弦（正: 上向き, 負: 下向き）, -
Returns:
	自然対流熱伝達率, W/m2 K
*/
func tarp_natural_convection(theta_air, theta_s, cos_tilt float64) float64 {
	delta_t := theta_air - theta_s
	abs_delta_t := math.Abs(delta_t)
	cbrt_delta_t := math.Cbrt(abs_delta_t)

	var h float64
	if abs_delta_t < 1e-3 || math.Abs(cos_tilt) < 1e-3 {
		h = 1.31 * cbrt_delta_t
	} else if (delta_t < 0 && cos_tilt < 0) || (delta_t > 0 && cos_tilt > 0) {
		h = 9.482 * cbrt_delta_t / (7.238 - math.Abs(cos_tilt))
	} else {
		h = 1.81 * cbrt_delta_t / (1.382 + math.Abs(cos_tilt))
	}

	return math.Max(h, h_c_min)
}

// 表面粗さ係数（1: 非常に粗い ～ 6: 非常に滑らか）
var roughness_factors = [6]float64{2.17, 1.67, 1.52, 1.13, 1.11, 1.0}

/*
TARP モデルによる外表面の対流熱伝達率（強制対流＋自然対流）を計算する。

Args:
	env: 外気側の境界条件
	theta_s: 表面温度, degree C
	cos_tilt: 面の法線と鉛直上向きのなす角の余弦, -
	roughness: 表面粗さ区分, 1～6
	area: 面積, m2
	perimeter: 周長, m
Returns:
	対流熱伝達率, W/m2 K
*/
func tarp_convection(env Environment, theta_s, cos_tilt float64, roughness int, area, perimeter float64) float64 {
	if roughness < 1 || roughness > 6 {
		panic("invalid roughness index")
	}
	r_f := roughness_factors[roughness-1]

	w_f := 0.5
	if env.Windward {
		w_f = 1.0
	}

	forced := 2.537 * w_f * r_f * math.Sqrt(perimeter*env.AirSpeed/area)
	return forced + tarp_natural_convection(env.AirTemperature, theta_s, cos_tilt)
}

/*
線形化した長波放射熱伝達率を計算する。

Args:
	epsilon: 表面の放射率, -
	theta_s: 表面温度, degree C
	theta_rad: 放射温度, degree C
Returns:
	放射熱伝達率, W/m2 K
*/
func radiative_coefficient(epsilon, theta_s, theta_rad float64) float64 {
	t_m_k := (theta_s+theta_rad)/2.0 + kelvin
	return 4.0 * epsilon * sgm * t_m_k * t_m_k * t_m_k
}
