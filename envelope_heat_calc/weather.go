package envelope_heat_calc

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gocarina/gocsv"
)

/*
ある時刻の気象条件

熱計算の本体は外気温度・風・長波放射のみを用いる。
日射量と太陽位置は日射の分配に用いる。
*/
type CurrentWeather struct {
	DryBulbTemperature float64 // 外気温度, degree C
	WindSpeed          float64 // 風速, m/s
	WindDirection      float64 // 風向（北0, 時計回り）, degree
	HorizontalIR       float64 // 水平面の大気放射量, W/m2（0 以下は未指定）
	SkyEmissivity      float64 // 天空の放射率, -（0 以下は未指定）
	DirectNormal       float64 // 法線面直達日射量, W/m2
	DiffuseHorizontal  float64 // 水平面天空日射量, W/m2
	SunAltitude        float64 // 太陽高度, rad
	SunAzimuth         float64 // 太陽方位角（南0, 西を正）, rad
}

// ステップごとの気象条件を与える。
type WeatherSource interface {
	At(n int) CurrentWeather
}

// 一定の気象条件
type ConstantWeather struct {
	CurrentWeather
}

func (c ConstantWeather) At(n int) CurrentWeather {
	return c.CurrentWeather
}

// 気象データファイルの1行（1時間）
type WeatherDataRow struct {
	Temperature       float64 `csv:"temperature"`
	WindSpeed         float64 `csv:"wind_speed"`
	WindDirection     float64 `csv:"wind_direction"`
	HorizontalIR      float64 `csv:"horizontal_ir"`
	DirectNormal      float64 `csv:"normal_direct_solar_radiation"`
	DiffuseHorizontal float64 `csv:"horizontal_sky_solar_radiation"`
}

/*
時系列の気象データ

1時間ごとのデータを指定された時間間隔に補間して保持する。
データの末尾の次は先頭に戻る。
*/
type Weather struct {
	theta_o_ns []float64 // 外気温度, degree C, [n]
	v_w_ns     []float64 // 風速, m/s, [n]
	d_w_ns     []float64 // 風向, degree, [n]
	r_ir_ns    []float64 // 水平面の大気放射量, W/m2, [n]
	i_dn_ns    []float64 // 法線面直達日射量, W/m2, [n]
	i_sky_ns   []float64 // 水平面天空日射量, W/m2, [n]
	h_sun_ns   []float64 // 太陽高度, rad, [n]
	a_sun_ns   []float64 // 太陽方位角, rad, [n]
	itv        Interval
}

/*
1時間ごとの気象データから時系列の気象データを作成する。

Args:
	rows: 1時間ごとの気象データ（1/1 0:00 始まり）
	itv: 時間間隔
	site: 観測地点（太陽位置の計算に用いる）
*/
func NewWeather(rows []*WeatherDataRow, itv Interval, site Site) (*Weather, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: weather data is empty", ErrInvalidInput)
	}

	f := func(getc func(row *WeatherDataRow) float64) []float64 {
		ret := make([]float64, len(rows))
		for i := range rows {
			ret[i] = getc(rows[i])
		}
		return ret
	}

	for i, row := range rows {
		if math.IsNaN(row.Temperature) {
			return nil, fmt.Errorf("%w: weather row %d: temperature is NaN", ErrInvalidInput, i)
		}
	}

	// 風向は補間せず、その時間の値を用いる
	w := &Weather{
		theta_o_ns: _interpolate(f(func(row *WeatherDataRow) float64 { return row.Temperature }), itv),
		v_w_ns:     _interpolate(f(func(row *WeatherDataRow) float64 { return row.WindSpeed }), itv),
		d_w_ns:     _hold(f(func(row *WeatherDataRow) float64 { return row.WindDirection }), itv),
		r_ir_ns:    _interpolate(f(func(row *WeatherDataRow) float64 { return row.HorizontalIR }), itv),
		i_dn_ns:    _interpolate(f(func(row *WeatherDataRow) float64 { return row.DirectNormal }), itv),
		i_sky_ns:   _interpolate(f(func(row *WeatherDataRow) float64 { return row.DiffuseHorizontal }), itv),
		itv:        itv,
	}
	w.h_sun_ns, w.a_sun_ns = calc_solar_position(site, itv, len(w.theta_o_ns))

	return w, nil
}

// CSV の気象データを読み込む。
func ReadWeather(r io.Reader, itv Interval, site Site) (*Weather, error) {
	var rows []*WeatherDataRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("%w: weather csv: %v", ErrInvalidInput, err)
	}
	return NewWeather(rows, itv, site)
}

/*
気象データを読み込む。

Args:
	file_path: 気象データのファイルのパス
	itv: 時間間隔
	site: 観測地点
*/
func LoadWeather(file_path string, itv Interval, site Site) (*Weather, error) {
	file, err := os.Open(file_path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadWeather(file, itv, site)
}

// データの数
func (w *Weather) Len() int {
	return len(w.theta_o_ns)
}

func (w *Weather) Interval() Interval {
	return w.itv
}

// ステップ n の気象条件（データの数を超えた場合は先頭に戻る）
func (w *Weather) At(n int) CurrentWeather {
	i := n % w.Len()
	if i < 0 {
		i += w.Len()
	}
	return CurrentWeather{
		DryBulbTemperature: w.theta_o_ns[i],
		WindSpeed:          w.v_w_ns[i],
		WindDirection:      w.d_w_ns[i],
		HorizontalIR:       w.r_ir_ns[i],
		DirectNormal:       w.i_dn_ns[i],
		DiffuseHorizontal:  w.i_sky_ns[i],
		SunAltitude:        w.h_sun_ns[i],
		SunAzimuth:         w.a_sun_ns[i],
	}
}

/*
外気温度の平均値を取得する。

Returns
	外気温度の平均値, degree C
*/
func (w *Weather) MeanTemperature() float64 {
	var avg float64
	for _, v := range w.theta_o_ns {
		avg += v
	}
	return avg / float64(len(w.theta_o_ns))
}

/*
1時間ごとのデータを指定された間隔のデータに線形補間する。

Args
	weather_data 1時間ごとの気象データ [N]
	interval 生成するデータの時間間隔
Returns
	指定する時間間隔に補間された気象データ [N * n_hour]
Notes
	時刻 i 時 j ステップの値は i 時と i+1 時の値を (1 - j/n_hour) : j/n_hour で按分する。
	最終時刻の次は先頭の値とする。
*/
func _interpolate(weather_data []float64, interval Interval) []float64 {
	n_hour := interval.get_n_hour()
	if n_hour == 1 {
		return weather_data
	}

	data1 := weather_data
	data2 := roll(weather_data, -1)

	ndata := len(data1)
	data_interp_1d := make([]float64, ndata*n_hour)
	off := 0
	for i := 0; i < ndata; i++ {
		for j := 0; j < n_hour; j++ {
			alpha := 1.0 - float64(j)/float64(n_hour)
			data_interp_1d[off] = alpha*data1[i] + (1.0-alpha)*data2[i]
			off++
		}
	}

	return data_interp_1d
}

// 1時間ごとのデータを補間せずに指定された間隔のデータにする。
func _hold(weather_data []float64, interval Interval) []float64 {
	n_hour := interval.get_n_hour()
	ret := make([]float64, len(weather_data)*n_hour)
	for i, v := range weather_data {
		for j := 0; j < n_hour; j++ {
			ret[i*n_hour+j] = v
		}
	}
	return ret
}

func roll(slice []float64, shift int) []float64 {
	length := len(slice)
	shift %= length
	if shift < 0 {
		shift += length
	}
	result := make([]float64, 0, length)
	result = append(result, slice[length-shift:]...)
	return append(result, slice[:length-shift]...)
}
