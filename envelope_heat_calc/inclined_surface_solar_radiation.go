package envelope_heat_calc

import "math"

// 地面の日射反射率
const rho_gnd = 0.1

/*
傾斜面の方位角・傾斜角に応じて傾斜面の日射量を計算する。

Args:
	w: 気象条件
	beta_w: 傾斜面の傾斜角（0: 上向き水平, π: 下向き水平）, rad
	alpha_w: 傾斜面の方位角（南0, 西を正）, rad
Returns:
	(1) 傾斜面に入射する日射量のうち直達成分, W/m2
	(2) 傾斜面に入射する日射量のうち天空成分, W/m2
	(3) 傾斜面に入射する日射量のうち地盤反射成分, W/m2
*/
func get_i_is(w CurrentWeather, beta_w, alpha_w float64) (float64, float64, float64) {
	// 傾斜面の天空に対する形態係数, -
	f_sky := _get_f_sky(beta_w)

	// 傾斜面の地面に対する形態係数, -
	f_gnd := 1.0 - f_sky

	// 水平面全天日射量, W/m2
	i_hrz := _get_i_hrz(w.DirectNormal, w.DiffuseHorizontal, w.SunAltitude)

	i_srf_dn := w.DirectNormal * _get_cos_phi(w.SunAltitude, w.SunAzimuth, beta_w, alpha_w)
	i_srf_sky := f_sky * w.DiffuseHorizontal
	i_srf_ref := f_gnd * rho_gnd * i_hrz

	return i_srf_dn, i_srf_sky, i_srf_ref
}

/*
傾斜面の天空に対する形態係数を計算する。

Notes:
	傾斜角は 0～π の範囲に丸める。
*/
func _get_f_sky(beta_w float64) float64 {
	beta_w = math.Min(math.Max(beta_w, 0), math.Pi)
	return (1.0 + math.Cos(beta_w)) / 2.0
}

// 水平面全天日射量, W/m2
func _get_i_hrz(i_dn, i_sky, h_sun float64) float64 {
	return math.Sin(math.Max(h_sun, 0))*i_dn + i_sky
}

/*
傾斜面に入射する太陽の入射角の余弦を計算する。

Args:
	h_sun: 太陽高度, rad
	a_sun: 太陽方位角, rad
	beta_w: 傾斜面の傾斜角, rad
	alpha_w: 傾斜面の方位角, rad
Returns:
	入射角の余弦（太陽が面の裏側にある場合は 0）, -
Notes:
	上向き水平面・下向き水平面では方位角が定義できないため場合分けを行う。
*/
func _get_cos_phi(h_sun, a_sun, beta_w, alpha_w float64) float64 {
	if h_sun <= 0 {
		return 0
	}

	sin_h_sun := math.Sin(h_sun)
	cos_h_sun := math.Cos(h_sun)
	cos_beta := math.Cos(beta_w)
	sin_beta := math.Sin(beta_w)

	switch {
	case math.Abs(sin_beta) < 1e-9 && cos_beta > 0:
		return math.Max(sin_h_sun, 0)
	case math.Abs(sin_beta) < 1e-9:
		return 0
	case cos_h_sun == 0.0 || math.IsNaN(a_sun):
		// 太陽が天頂にある
		return math.Max(sin_h_sun*cos_beta, 0)
	default:
		return math.Max(sin_h_sun*cos_beta+
			cos_h_sun*math.Sin(a_sun)*sin_beta*math.Sin(alpha_w)+
			cos_h_sun*math.Cos(a_sun)*sin_beta*math.Cos(alpha_w), 0)
	}
}

/*
外気に面する面に日射量を分配する。

面の表側・裏側のうち外気に面する側に傾斜面日射量を、それ以外に 0 を状態量として書き込む。
窓の透過日射は熱計算モデルが面の日射量から求める。
*/
type SolarDistribution struct {
	surfaces []*ThermalSurface
}

func NewSolarDistribution(m *ThermalModel) *SolarDistribution {
	return &SolarDistribution{
		surfaces: append(append([]*ThermalSurface{}, m.Surfaces...), m.Fenestrations...),
	}
}

func (sd *SolarDistribution) Update(w CurrentWeather, state SimulationState) {
	for _, s := range sd.surfaces {
		beta := s.Tilt * math.Pi / 180.0
		alpha := s.Azimuth * math.Pi / 180.0

		if s.Front.isOutdoor() {
			dn, sky, ref := get_i_is(w, beta, alpha)
			s.SetFrontSolarIrradiance(state, dn+sky+ref)
		} else {
			s.SetFrontSolarIrradiance(state, 0)
		}

		// 裏側の面は傾斜角・方位角を反転させる
		if s.Back.isOutdoor() {
			dn, sky, ref := get_i_is(w, math.Pi-beta, alpha+math.Pi)
			s.SetBackSolarIrradiance(state, dn+sky+ref)
		} else {
			s.SetBackSolarIrradiance(state, 0)
		}
	}
}
