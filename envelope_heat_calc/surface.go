package envelope_heat_calc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

type surfacePhase int

const (
	phaseIdle surfacePhase = iota
	phaseIntegrating
)

// 窓の日射特性（不透明な面では nil）
type fenestrationOptics struct {
	layers       []int     // ガラス層の層番号
	front_alphas []float64 // 表側入射日射の層別吸収割合, -
	back_alphas  []float64 // 裏側入射日射の層別吸収割合, -
	tau_front    float64   // 表側入射日射の透過率, -
	tau_back     float64   // 裏側入射日射の透過率, -
}

func newFenestrationOptics(d *Discretization) *fenestrationOptics {
	if len(d.Glazings) == 0 {
		return nil
	}
	system := CombineLayers(d.Glazings)
	return &fenestrationOptics{
		layers:       d.GlazingLayers,
		front_alphas: AbsorbedFractions(d.Glazings),
		back_alphas:  BackAbsorbedFractions(d.Glazings),
		tau_front:    system.Tau,
		tau_back:     system.Tau,
	}
}

/*
面（不透明な面・窓）の非定常熱伝導

節点温度は状態量の配列に置かれ、この面だけが更新する。
窓と不透明な面の違いは日射の吸収位置（optics の有無）だけである。
*/
type ThermalSurface struct {
	Name           string
	Index          int
	IsFenestration bool

	Area      float64 // 面積, m2
	Tilt      float64 // 傾斜角, degree
	Azimuth   float64 // 方位角（南0, 西90）, degree
	Perimeter float64 // 周長, m
	Roughness int     // 表面粗さ区分

	Front      Boundary
	Back       Boundary
	FrontSpace int // 表側が接する室の番号（室以外は -1）
	BackSpace  int // 裏側が接する室の番号（室以外は -1）

	FrontHs *float64 // 固定の表面熱伝達率, W/m2 K
	BackHs  *float64

	DiscretizationIndex int
	d                   *Discretization
	net                 *thermalNetwork
	optics              *fenestrationOptics

	// 状態量の位置
	i_nodes    int
	i_front_hs int
	i_back_hs  int
	i_front_q  int
	i_back_q   int
	i_front_is int
	i_back_is  int
	i_front_ir int
	i_back_ir  int

	phase surfacePhase

	// 作業領域
	t                 []float64
	y, k1, k2, k3, k4 []float64
	y_tmp             []float64
}

/*
面を作成し、状態量の位置を登録する。

Args:
	header: 状態量の並び
	index: 面の番号（窓と不透明な面で別々に数える）
	srf: 面の定義
	d: 構成の離散化結果（共有）
	d_index: 離散化結果の番号
	spaces: 室の定義
	fenestration: 窓か否か
*/
func NewThermalSurface(
	header *SimulationStateHeader,
	index int,
	srf *Surface,
	d *Discretization,
	d_index int,
	spaces []Space,
	fenestration bool,
) (*ThermalSurface, error) {
	if srf.Area <= 0 || math.IsNaN(srf.Area) {
		return nil, fmt.Errorf("%w: surface %q: area %g", ErrInvalidInput, srf.Name, srf.Area)
	}
	front_space, err := srf.Front.resolve(spaces)
	if err != nil {
		return nil, fmt.Errorf("surface %q front boundary: %w", srf.Name, err)
	}
	back_space, err := srf.Back.resolve(spaces)
	if err != nil {
		return nil, fmt.Errorf("surface %q back boundary: %w", srf.Name, err)
	}
	if srf.Direction != "" {
		if _, err := DirectionFromString(string(srf.Direction)); err != nil {
			return nil, fmt.Errorf("surface %q: %w", srf.Name, err)
		}
	}
	if tilt := srf.tilt(); !(tilt >= 0 && tilt <= 180) {
		return nil, fmt.Errorf("%w: surface %q: tilt %g", ErrInvalidInput, srf.Name, tilt)
	}

	s := &ThermalSurface{
		Name:                srf.Name,
		Index:               index,
		IsFenestration:      fenestration,
		Area:                srf.Area,
		Tilt:                srf.tilt(),
		Azimuth:             srf.azimuth(),
		Perimeter:           srf.perimeter(),
		Roughness:           srf.roughness(),
		Front:               srf.Front,
		Back:                srf.Back,
		FrontSpace:          front_space,
		BackSpace:           back_space,
		FrontHs:             srf.FrontHs,
		BackHs:              srf.BackHs,
		DiscretizationIndex: d_index,
		d:                   d,
		net:                 newThermalNetwork(d, srf.height(), srf.tilt()),
	}
	if fenestration {
		s.optics = newFenestrationOptics(d)
	}

	el := func(kind ElementKind) SimulationStateElement {
		return SimulationStateElement{Kind: kind, Index: index, Fenestration: fenestration}
	}

	n := d.NNodes()
	for i := 0; i < n; i++ {
		e := el(SurfaceNodeTemperature)
		e.Node = i
		off := header.Push(e, theta_init)
		if i == 0 {
			s.i_nodes = off
		}
	}
	s.i_front_hs = header.Push(el(SurfaceFrontConvectionCoefficient), value_or(srf.FrontHs, h_s_default))
	s.i_back_hs = header.Push(el(SurfaceBackConvectionCoefficient), value_or(srf.BackHs, h_s_default))
	s.i_front_q = header.Push(el(SurfaceFrontConvectiveHeatFlow), 0)
	s.i_back_q = header.Push(el(SurfaceBackConvectiveHeatFlow), 0)
	s.i_front_is = header.Push(el(SurfaceFrontSolarIrradiance), 0)
	s.i_back_is = header.Push(el(SurfaceBackSolarIrradiance), 0)
	s.i_front_ir = header.Push(el(SurfaceFrontIRIrradiance), black_body(theta_init))
	s.i_back_ir = header.Push(el(SurfaceBackIRIrradiance), black_body(theta_init))

	m := len(s.net.massive)
	s.t = make([]float64, n)
	s.y = make([]float64, m)
	s.k1 = make([]float64, m)
	s.k2 = make([]float64, m)
	s.k3 = make([]float64, m)
	s.k4 = make([]float64, m)
	s.y_tmp = make([]float64, m)

	return s, nil
}

func (s *ThermalSurface) Discretization() *Discretization {
	return s.d
}

// 節点温度, degree C
func (s *ThermalSurface) NodeTemperatures(state SimulationState) []float64 {
	return state[s.i_nodes : s.i_nodes+s.d.NNodes()]
}

// 表側の表面温度, degree C
func (s *ThermalSurface) FrontTemperature(state SimulationState) float64 {
	return state[s.i_nodes]
}

// 裏側の表面温度, degree C
func (s *ThermalSurface) BackTemperature(state SimulationState) float64 {
	return state[s.i_nodes+s.d.NNodes()-1]
}

func (s *ThermalSurface) FrontHeatTransferCoefficient(state SimulationState) float64 {
	return state[s.i_front_hs]
}

func (s *ThermalSurface) BackHeatTransferCoefficient(state SimulationState) float64 {
	return state[s.i_back_hs]
}

// 表側から面に流入する熱流, W/m2
func (s *ThermalSurface) FrontHeatFlow(state SimulationState) float64 {
	return state[s.i_front_q]
}

// 裏側から面に流入する熱流, W/m2
func (s *ThermalSurface) BackHeatFlow(state SimulationState) float64 {
	return state[s.i_back_q]
}

func (s *ThermalSurface) SetFrontSolarIrradiance(state SimulationState, v float64) {
	state[s.i_front_is] = v
}

func (s *ThermalSurface) SetBackSolarIrradiance(state SimulationState, v float64) {
	state[s.i_back_is] = v
}

func (s *ThermalSurface) SetFrontIRIrradiance(state SimulationState, v float64) {
	state[s.i_front_ir] = v
}

func (s *ThermalSurface) SetBackIRIrradiance(state SimulationState, v float64) {
	state[s.i_back_ir] = v
}

// 全ての節点温度を t とする。
func (s *ThermalSurface) SetNodeTemperatures(state SimulationState, t float64) {
	for i := range s.NodeTemperatures(state) {
		state[s.i_nodes+i] = t
	}
}

/*
窓を透過して反対側へ入る日射量を求める。

Returns:
	(1) 表側から裏側へ透過する日射熱, W
	(2) 裏側から表側へ透過する日射熱, W
*/
func (s *ThermalSurface) TransmittedSolar(state SimulationState) (float64, float64) {
	if s.optics == nil {
		return 0, 0
	}
	return s.optics.tau_front * state[s.i_front_is] * s.Area,
		s.optics.tau_back * state[s.i_back_is] * s.Area
}

/*
表面の境界条件を線形化する。

Args:
	env: 境界条件
	hs: 固定の表面熱伝達率（nil の場合は対流・放射から計算する）
	theta_s: 表面温度, degree C
	epsilon: 表面の放射率, -
	cos_tilt: 面の法線と鉛直上向きのなす角の余弦, -
	outdoor: 外気に面するか否か
*/
func (s *ThermalSurface) face_condition(env Environment, hs *float64, theta_s, epsilon, cos_tilt float64, outdoor bool) faceCondition {
	if env.Adiabatic {
		return faceCondition{h: 0, theta: theta_s}
	}
	if hs != nil {
		return faceCondition{h: *hs, theta: env.AirTemperature}
	}

	var h_c float64
	if outdoor {
		h_c = tarp_convection(env, theta_s, cos_tilt, s.Roughness, s.Area, s.Perimeter)
	} else {
		h_c = tarp_natural_convection(env.AirTemperature, theta_s, cos_tilt)
	}

	theta_rad := env.AirTemperature
	if env.IRIrradiance > 0 {
		theta_rad = radiant_temperature(env.IRIrradiance)
	}
	h_r := radiative_coefficient(epsilon, theta_s, theta_rad)

	h := h_c + h_r
	return faceCondition{h: h, theta: (h_c*env.AirTemperature + h_r*theta_rad) / h}
}

// 節点ごとの吸収日射量を求める。
func (s *ThermalSurface) absorbed_solar(state SimulationState) {
	q := s.net.q_sol
	for i := range q {
		q[i] = 0
	}
	i_front := state[s.i_front_is]
	i_back := state[s.i_back_is]

	if s.optics == nil {
		q[0] += s.d.FrontAbsorptance * i_front
		q[len(q)-1] += s.d.BackAbsorptance * i_back
		return
	}

	// ガラス層の吸収分は層の両側の節点に半分ずつ与える
	for g, layer := range s.optics.layers {
		a := s.optics.front_alphas[g]*i_front + s.optics.back_alphas[g]*i_back
		first, last := s.d.layer_nodes(layer)
		q[first] += a / 2.0
		q[last] += a / 2.0
	}
}

/*
1ステップ分、節点温度を進める。

Args:
	state: 状態量
	front: 表側の境界条件
	back: 裏側の境界条件
	dt: 時間間隔, s
Returns:
	(1) 表側から面に流入する熱流, W/m2
	(2) 裏側から面に流入する熱流, W/m2
*/
func (s *ThermalSurface) March(state SimulationState, front, back Environment, dt float64) (float64, float64, error) {
	if s.phase != phaseIdle {
		return 0, 0, fmt.Errorf("surface %q: march called while integrating", s.Name)
	}
	s.phase = phaseIntegrating
	defer func() { s.phase = phaseIdle }()

	n := s.d.NNodes()
	copy(s.t, state[s.i_nodes:s.i_nodes+n])

	// 1. 境界条件（長波放射量は状態量から読む）
	front.IRIrradiance = state[s.i_front_ir]
	back.IRIrradiance = state[s.i_back_ir]
	cos_tilt := math.Cos(s.Tilt * math.Pi / 180.0)
	s.net.front = s.face_condition(front, s.FrontHs, s.t[0], s.d.FrontEmissivity, cos_tilt, s.Front.isOutdoor())
	s.net.back = s.face_condition(back, s.BackHs, s.t[n-1], s.d.BackEmissivity, -cos_tilt, s.Back.isOutdoor())
	s.absorbed_solar(state)

	if len(s.net.massive) == 0 {
		// 熱容量がない場合は抵抗のみの回路として解く
		if err := s.net.solve_nomass(s.t); err != nil {
			return 0, 0, fmt.Errorf("surface %q: %w", s.Name, err)
		}
	} else {
		if err := s.rk4(dt); err != nil {
			return 0, 0, fmt.Errorf("surface %q: %w", s.Name, err)
		}
	}

	q_front := s.net.front.h * (s.net.front.theta - s.t[0])
	q_back := s.net.back.h * (s.net.back.theta - s.t[n-1])

	for i, v := range s.t {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, fmt.Errorf("surface %q: %w: node %d temperature %g", s.Name, ErrNumericDegeneracy, i, v)
		}
	}
	if math.IsNaN(q_front) || math.IsNaN(q_back) {
		return 0, 0, fmt.Errorf("surface %q: %w: heat flow", s.Name, ErrNumericDegeneracy)
	}

	copy(state[s.i_nodes:s.i_nodes+n], s.t)
	state[s.i_front_hs] = s.net.front.h
	state[s.i_back_hs] = s.net.back.h
	state[s.i_front_q] = q_front
	state[s.i_back_q] = q_back

	return q_front, q_back, nil
}

// 4次のルンゲクッタ法で熱容量を持つ節点の温度を dt だけ進める。
func (s *ThermalSurface) rk4(dt float64) error {
	massive := s.net.massive

	for a, i := range massive {
		s.y[a] = s.t[i]
	}

	stage := func(y []float64, k []float64) error {
		for a, i := range massive {
			s.t[i] = y[a]
		}
		return s.net.derivative(s.t, k)
	}

	if err := stage(s.y, s.k1); err != nil {
		return err
	}
	floats.AddScaledTo(s.y_tmp, s.y, dt/2.0, s.k1)
	if err := stage(s.y_tmp, s.k2); err != nil {
		return err
	}
	floats.AddScaledTo(s.y_tmp, s.y, dt/2.0, s.k2)
	if err := stage(s.y_tmp, s.k3); err != nil {
		return err
	}
	floats.AddScaledTo(s.y_tmp, s.y, dt, s.k3)
	if err := stage(s.y_tmp, s.k4); err != nil {
		return err
	}

	// y + dt/6 (k1 + 2 k2 + 2 k3 + k4)
	floats.AddScaledTo(s.y_tmp, s.k1, 2.0, s.k2)
	floats.AddScaled(s.y_tmp, 2.0, s.k3)
	floats.Add(s.y_tmp, s.k4)
	floats.AddScaled(s.y, dt/6.0, s.y_tmp)

	for a, i := range massive {
		s.t[i] = s.y[a]
	}
	return s.net.solve_nomass(s.t)
}
