package envelope_heat_calc

import (
	"fmt"
	"math"
)

// 面の方位
type Direction string

const (
	DirectionS      Direction = "s"
	DirectionSW     Direction = "sw"
	DirectionW      Direction = "w"
	DirectionNW     Direction = "nw"
	DirectionN      Direction = "n"
	DirectionNE     Direction = "ne"
	DirectionE      Direction = "e"
	DirectionSE     Direction = "se"
	DirectionTop    Direction = "top"
	DirectionBottom Direction = "bottom"
)

func DirectionFromString(str string) (Direction, error) {
	switch d := Direction(str); d {
	case DirectionS, DirectionSW, DirectionW, DirectionNW, DirectionN,
		DirectionNE, DirectionE, DirectionSE, DirectionTop, DirectionBottom:
		return d, nil
	default:
		return "", fmt.Errorf("%w: invalid direction %q", ErrInvalidInput, str)
	}
}

/*
面の方位角を取得する。

Returns:
	方位角（南0, 西を正）, rad
*/
func (d Direction) alpha_w_j() float64 {
	if d == DirectionTop || d == DirectionBottom {
		panic("方位が上面・下面が定義されているにもかかわらず、方位角を取得しようとしました。")
	}

	switch d {
	case DirectionS:
		return math.Pi * 0.0 / 180.0
	case DirectionSW:
		return math.Pi * 45.0 / 180.0
	case DirectionW:
		return math.Pi * 90.0 / 180.0
	case DirectionNW:
		return math.Pi * 135.0 / 180.0
	case DirectionN:
		return math.Pi * 180.0 / 180.0
	case DirectionNE:
		return math.Pi * -135.0 / 180.0
	case DirectionE:
		return math.Pi * -90.0 / 180.0
	case DirectionSE:
		return math.Pi * -45.0 / 180.0
	default:
		panic("invalid direction")
	}
}

/*
面の傾斜角を取得する。

Returns:
	傾斜角（0: 上向き水平, π/2: 鉛直, π: 下向き水平）, rad
*/
func (d Direction) beta_w_j() float64 {
	switch d {
	case DirectionTop:
		return 0.0
	case DirectionBottom:
		return math.Pi
	case DirectionS, DirectionSW, DirectionW, DirectionNW, DirectionN, DirectionNE, DirectionE, DirectionSE:
		return math.Pi / 2.0
	default:
		panic("invalid direction")
	}
}
