package envelope_heat_calc

import "fmt"

// インターバル
type Interval string

// インターバル
const (
	IntervalH1  Interval = "1h"
	IntervalM30 Interval = "30m"
	IntervalM15 Interval = "15m"
	IntervalM10 Interval = "10m"
	IntervalM5  Interval = "5m"
)

/*
1時間を分割するステップ数からインターバルを求める。

Args:
	n_step_hourly: 1時間を分割するステップ数
*/
func IntervalFromNStepHourly(n_step_hourly int) (Interval, error) {
	switch n_step_hourly {
	case 1:
		return IntervalH1, nil
	case 2:
		return IntervalM30, nil
	case 4:
		return IntervalM15, nil
	case 6:
		return IntervalM10, nil
	case 12:
		return IntervalM5, nil
	default:
		return "", fmt.Errorf("%w: n_step_hourly %d is not one of 1, 2, 4, 6, 12", ErrInvalidInput, n_step_hourly)
	}
}

/*
1時間を分割するステップ数を求める。

	Returns:
		1時間を分割するステップ数

	Notes:
		1時間: 1
		30分: 2
		15分: 4
		10分: 6
		5分: 12
*/
func (i Interval) get_n_hour() int {
	switch i {
	case IntervalH1:
		return 1
	case IntervalM30:
		return 2
	case IntervalM15:
		return 4
	case IntervalM10:
		return 6
	case IntervalM5:
		return 12
	default:
		panic("invalid interval")
	}
}

// インターバル時間, h
func (i Interval) get_time() float64 {
	return 1.0 / float64(i.get_n_hour())
}

// インターバル時間, s
func (i Interval) get_delta_t() float64 {
	return 3600.0 / float64(i.get_n_hour())
}

// 1時間を分割するステップ数
func (i Interval) NStepHourly() int {
	return i.get_n_hour()
}

/*
日数に対応するステップ数を取得する。

Args:
	days: 日数, d
Returns:
	ステップ数
*/
func (i Interval) get_n_step(days int) int {
	return 24 * i.get_n_hour() * days
}
