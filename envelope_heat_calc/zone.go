package envelope_heat_calc

import "math"

// B がこの値未満の場合は室が周囲と熱的に切り離されているとみなす
const b_threshold = 1e-9

// 室に接する面とその向き
type zoneBound struct {
	surface *ThermalSurface
	front   bool // 面の表側が室に接するか否か
}

/*
室の空気温度

室の熱収支を

	C dT/dt = A - B T

の形で線形化し、解析解で温度を更新する。
*/
type ThermalZone struct {
	Name   string
	Index  int
	Volume float64 // 気積, m3

	bounds []zoneBound

	i_theta int
	i_hvac  int
	i_light int
	i_inf   int
}

func NewThermalZone(header *SimulationStateHeader, index int, space *Space) *ThermalZone {
	el := func(kind ElementKind) SimulationStateElement {
		return SimulationStateElement{Kind: kind, Index: index}
	}
	z := &ThermalZone{
		Name:   space.Name,
		Index:  index,
		Volume: space.Volume,
	}
	z.i_theta = header.Push(el(SpaceDryBulbTemperature), theta_init)
	z.i_hvac = header.Push(el(SpaceHeatingCoolingPower), 0)
	z.i_light = header.Push(el(SpaceLightingPower), 0)
	z.i_inf = header.Push(el(SpaceInfiltrationVolume), value_or(space.InfiltrationRate, 0))
	return z
}

// 空気の熱容量, J/K
func (z *ThermalZone) Mcp() float64 {
	return z.Volume * rho_a * c_a
}

func (z *ThermalZone) Temperature(state SimulationState) float64 {
	return state[z.i_theta]
}

func (z *ThermalZone) SetTemperature(state SimulationState, t float64) {
	state[z.i_theta] = t
}

// 暖冷房の供給熱量（暖房を正）, W
func (z *ThermalZone) HeatingCoolingPower(state SimulationState) float64 {
	return state[z.i_hvac]
}

func (z *ThermalZone) SetHeatingCoolingPower(state SimulationState, v float64) {
	state[z.i_hvac] = v
}

// 照明発熱, W
func (z *ThermalZone) LightingPower(state SimulationState) float64 {
	return state[z.i_light]
}

func (z *ThermalZone) SetLightingPower(state SimulationState, v float64) {
	state[z.i_light] = v
}

// すきま風量, m3/s
func (z *ThermalZone) InfiltrationVolume(state SimulationState) float64 {
	return state[z.i_inf]
}

func (z *ThermalZone) SetInfiltrationVolume(state SimulationState, v float64) {
	state[z.i_inf] = v
}

/*
室の熱収支の係数 A, B を求める。

Args:
	state: 状態量
	theta_o: 外気温度, degree C
	q_sol: 窓から透過した日射熱, W
Returns:
	(1) A, W
	(2) B, W/K
*/
func (z *ThermalZone) abc(state SimulationState, theta_o, q_sol float64) (float64, float64) {
	// 内部発熱・暖冷房
	a := z.HeatingCoolingPower(state) + z.LightingPower(state) + q_sol
	b := 0.0

	// すきま風
	g_inf := z.InfiltrationVolume(state) * rho_a * c_a
	a += g_inf * theta_o
	b += g_inf

	// 面からの対流
	for _, bd := range z.bounds {
		s := bd.surface
		var h, theta_s float64
		if bd.front {
			h, theta_s = s.FrontHeatTransferCoefficient(state), s.FrontTemperature(state)
		} else {
			h, theta_s = s.BackHeatTransferCoefficient(state), s.BackTemperature(state)
		}
		a += h * s.Area * theta_s
		b += h * s.Area
	}

	return a, b
}

/*
dt 秒後の室温を解析解から求める。

Args:
	t0: 現在の室温, degree C
	a: A, W
	b: B, W/K
	c: 熱容量, J/K
	dt: 時間, s
Returns:
	dt 秒後の室温, degree C
*/
func EstimateFutureTemperature(t0, a, b, c, dt float64) float64 {
	if math.Abs(b) < b_threshold {
		return t0 + a*dt/c
	}
	return a/b + (t0-a/b)*math.Exp(-b*dt/c)
}

/*
今後 dt 秒間の平均室温を解析解から求める。

Args:
	t0: 現在の室温, degree C
	a: A, W
	b: B, W/K
	c: 熱容量, J/K
	dt: 時間, s
Returns:
	平均室温, degree C
*/
func EstimateMeanTemperature(t0, a, b, c, dt float64) float64 {
	if dt <= 0 {
		return t0
	}
	if math.Abs(b) < b_threshold {
		return t0 + a*dt/(2.0*c)
	}
	return a/b + c*(t0-a/b)/(b*dt)*(1.0-math.Exp(-b*dt/c))
}
