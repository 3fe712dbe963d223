package envelope_heat_calc

import "math"

/*
ステップnにおける太陽位置を計算する。
*/

// 観測地点
type Site struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`   // 緯度, degree
	Longitude float64 `json:"longitude" yaml:"longitude"` // 経度, degree
	Meridian  float64 `json:"meridian" yaml:"meridian"`   // 標準子午線の経度, degree
}

// 東京付近の既定値
func DefaultSite() Site {
	return Site{Latitude: 35.7, Longitude: 139.8, Meridian: 135.0}
}

/*
太陽位置を計算する

Args:
	site: 観測地点
	interval: データの時間間隔
	n_step: ステップ数（1/1 0:00 を 0 とする）

Returns:
	(1) 太陽高度, rad [n]
	(2) 太陽方位角（南0, 西を正）, rad [n]
*/
func calc_solar_position(site Site, interval Interval, n_step int) ([]float64, []float64) {
	phi_loc := site.Latitude * math.Pi / 180.0
	lambda_loc := site.Longitude * math.Pi / 180.0
	lambda_loc_mer := site.Meridian * math.Pi / 180.0

	// 1968年との年差
	n := _get_n()

	// 平均軌道上の近日点通過日（暦表時による1968年1月1日正午基準の日差）, d
	d_0 := _get_d_0(n)

	n_hour := interval.get_n_hour()
	h_sun_ns := make([]float64, n_step)
	a_sun_ns := make([]float64, n_step)

	for i := 0; i < n_step; i++ {
		// 年通算日（1/1を1とする）, d と 標準時, h
		d := float64((i/(24*n_hour))%365 + 1)
		t_m := float64(i%(24*n_hour)) * interval.get_time()

		m := _get_m(d, d_0)
		epsilon := _get_epsilon(m, n)
		v := _get_v(m)
		e_t := _get_e_t(m, epsilon, v)
		delta := _get_delta(epsilon, v)
		omega := _get_omega(t_m, lambda_loc, lambda_loc_mer, e_t)

		h_sun_ns[i], a_sun_ns[i] = _get_h_sun_and_a_sun(phi_loc, omega, delta)
	}

	return h_sun_ns, a_sun_ns
}

/*
1968年との年差を計算する。

Notes:
	式(12)
*/
func _get_n() int {
	// 太陽位置の計算においては1989年で行う。
	y := 1989

	return y - 1968
}

/*
平均軌道上の近日点通過日を取得する。

Notes:
	式(11)
*/
func _get_d_0(n int) float64 {
	return 3.71 + 0.2596*float64(n) - float64(int((n+3.0)/4.0))
}

/*
平均近点離角を計算する。

Args:
	d: 年通算日（1/1を1とする）, d
	d_0: 平均軌道上の近日点通過日, d
Returns:
	平均近点離角, rad
Notes:
	式(10)
*/
func _get_m(d, d_0 float64) float64 {
	// 近点年（近日点基準の公転周期日数）
	const d_ay = 365.2596
	return 2 * math.Pi * (d - d_0) / d_ay
}

// 近日点と冬至点の角度, rad (式(9))
func _get_epsilon(m float64, n int) float64 {
	return (12.3901 + 0.0172*(float64(n)+m/(2*math.Pi))) * math.Pi / 180.0
}

// 真近点離角, rad (式(8))
func _get_v(m float64) float64 {
	return m + (1.914*math.Sin(m)+0.02*math.Sin(2*m))*math.Pi/180.0
}

// 均時差, rad (式(7))
func _get_e_t(m, epsilon, v float64) float64 {
	return (m - v) - math.Atan(0.043*math.Sin(2.0*(v+epsilon))/(1.0-0.043*math.Cos(2.0*(v+epsilon))))
}

/*
赤緯を計算する。

Notes:
	赤緯は -π/2 ～ 0 π/2 の値をとる
	式(6)
*/
func _get_delta(epsilon, v float64) float64 {
	// 北半球の冬至の日赤緯, rad
	const delta_0 = -23.4393 * math.Pi / 180.0
	return math.Asin(math.Cos(v+epsilon) * math.Sin(delta_0))
}

/*
時角を計算する。

Args:
	t_m: 標準時, h
	lambda_loc: 経度, rad
	lambda_loc_mer: 標準時の地点の経度, rad
	e_t: 均時差, rad
Notes:
	式(5)
*/
func _get_omega(t_m, lambda_loc, lambda_loc_mer, e_t float64) float64 {
	return ((t_m-12.0)*15.0)*math.Pi/180.0 + (lambda_loc - lambda_loc_mer) + e_t
}

/*
太陽高度と太陽方位角を計算する。

Args:
	phi_loc: 緯度, rad
	omega: 時角, rad
	delta: 赤緯, rad
Returns:
	(1) 太陽高度, rad（太陽が沈んでいる場合は負）
	(2) 太陽方位角, rad（太陽が天頂にある場合は NaN）
Notes:
	式(1)～式(4)
*/
func _get_h_sun_and_a_sun(phi_loc, omega, delta float64) (float64, float64) {
	sin_phi_loc := math.Sin(phi_loc)
	cos_phi_loc := math.Cos(phi_loc)

	h_sun := math.Asin(sin_phi_loc*math.Sin(delta) + cos_phi_loc*math.Cos(delta)*math.Cos(omega))

	// 太陽が天頂にある場合は方位角を定義しない
	if h_sun == math.Pi/2 {
		return h_sun, math.NaN()
	}

	sin_a_sun := math.Cos(delta) * math.Sin(omega) / math.Cos(h_sun)
	cos_a_sun := (math.Sin(h_sun)*sin_phi_loc - math.Sin(delta)) / (math.Cos(h_sun) * cos_phi_loc)

	// arctan2 により -π～π の範囲で求める
	return h_sun, math.Atan2(sin_a_sun, cos_a_sun)
}
