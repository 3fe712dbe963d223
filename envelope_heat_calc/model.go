package envelope_heat_calc

import (
	"fmt"
	"math"
	"runtime"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// 熱計算モデルの設定
type ModelOptions struct {
	NStepHourly        int     // 1時間あたりの主時間ステップ数
	MaxDx              float64 // 最大要素厚さ, m
	SafetyFactor       float64 // 安定条件の安全率, -
	MaxFilmCoefficient float64 // 安定条件の評価に用いる表面熱伝達率, W/m2 K
	Parallel           bool    // 面の計算を並列に行うか否か
}

func DefaultModelOptions() ModelOptions {
	return ModelOptions{
		NStepHourly:        4,
		MaxDx:              0.04,
		SafetyFactor:       0.5,
		MaxFilmCoefficient: h_max_default,
	}
}

/*
建物全体の熱計算モデル

室・面・窓と、構成ごとの離散化結果（構成の番号で引く）を保持する。
状態量の配列は保持せず、March のたびに受け取る。
*/
type ThermalModel struct {
	Zones         []*ThermalZone
	Surfaces      []*ThermalSurface
	Fenestrations []*ThermalSurface

	// 構成の番号に対応する離散化結果（参照されない構成は nil）
	Discretizations []*Discretization

	MainDt         float64 // 主時間間隔, s
	DtSubdivisions int     // 主時間間隔の分割数
	Dt             float64 // 分割後の時間間隔, s
	Parallel       bool

	// 作業領域
	all   []*ThermalSurface
	t0    []float64
	t_est []float64
	q_sol []float64
	env   [][2]Environment
}

/*
建物の定義から熱計算モデルを作成し、状態量の位置を登録する。

Args:
	b: 建物の定義
	header: 状態量の並び
	opts: 設定
Returns:
	熱計算モデル
*/
func NewThermalModel(b *Building, header *SimulationStateHeader, opts ModelOptions) (*ThermalModel, error) {
	if opts.NStepHourly <= 0 {
		return nil, fmt.Errorf("%w: n_step_hourly must be positive", ErrInvalidInput)
	}
	main_dt := 3600.0 / float64(opts.NStepHourly)

	m := &ThermalModel{
		Discretizations: make([]*Discretization, len(b.Constructions)),
		MainDt:          main_dt,
		Parallel:        opts.Parallel,
	}

	for i := range b.Spaces {
		if b.Spaces[i].Volume <= 0 {
			return nil, fmt.Errorf("%w: space %q: volume %g", ErrInvalidInput, b.Spaces[i].Name, b.Spaces[i].Volume)
		}
		m.Zones = append(m.Zones, NewThermalZone(header, i, &b.Spaces[i]))
	}

	d_opts := DiscretizationOptions{
		MaxDx:              opts.MaxDx,
		MainDt:             main_dt,
		SafetyFactor:       opts.SafetyFactor,
		MaxFilmCoefficient: opts.MaxFilmCoefficient,
	}

	build := func(srfs []Surface, fenestration bool) ([]*ThermalSurface, error) {
		ret := make([]*ThermalSurface, 0, len(srfs))
		for i := range srfs {
			srf := &srfs[i]
			ci, err := b.construction_index(srf.Construction)
			if err != nil {
				return nil, fmt.Errorf("surface %q: %w", srf.Name, err)
			}
			if m.Discretizations[ci] == nil {
				d, err := Discretize(b, &b.Constructions[ci], d_opts)
				if err != nil {
					return nil, fmt.Errorf("construction %q: %w", b.Constructions[ci].Name, err)
				}
				m.Discretizations[ci] = d
				log.WithFields(log.Fields{
					"construction": b.Constructions[ci].Name,
					"segments":     len(d.Segments),
					"r_value":      d.RValue,
					"subdivisions": d.TstepSubdivision,
				}).Debug("discretized construction")
			}
			s, err := NewThermalSurface(header, i, srf, m.Discretizations[ci], ci, b.Spaces, fenestration)
			if err != nil {
				return nil, err
			}
			ret = append(ret, s)
		}
		return ret, nil
	}

	var err error
	if m.Surfaces, err = build(b.Surfaces, false); err != nil {
		return nil, err
	}
	if m.Fenestrations, err = build(b.Fenestrations, true); err != nil {
		return nil, err
	}

	// 最も厳しい構成が全体の分割数を決める
	m.DtSubdivisions = 1
	for _, d := range m.Discretizations {
		if d != nil && d.TstepSubdivision > m.DtSubdivisions {
			m.DtSubdivisions = d.TstepSubdivision
		}
	}
	m.Dt = main_dt / float64(m.DtSubdivisions)

	m.all = append(append([]*ThermalSurface{}, m.Surfaces...), m.Fenestrations...)
	for _, s := range m.all {
		if s.FrontSpace >= 0 {
			z := m.Zones[s.FrontSpace]
			z.bounds = append(z.bounds, zoneBound{surface: s, front: true})
		}
		if s.BackSpace >= 0 {
			z := m.Zones[s.BackSpace]
			z.bounds = append(z.bounds, zoneBound{surface: s, front: false})
		}
	}

	m.t0 = make([]float64, len(m.Zones))
	m.t_est = make([]float64, len(m.Zones))
	m.q_sol = make([]float64, len(m.Zones))
	m.env = make([][2]Environment, len(m.all))

	log.WithFields(log.Fields{
		"zones":         len(m.Zones),
		"surfaces":      len(m.Surfaces),
		"fenestrations": len(m.Fenestrations),
		"subdivisions":  m.DtSubdivisions,
	}).Debug("thermal model created")

	return m, nil
}

// 室の番号から室を取得する
func (m *ThermalModel) Zone(i int) (*ThermalZone, error) {
	if i < 0 || i >= len(m.Zones) {
		return nil, fmt.Errorf("%w: zone index %d", ErrUnknownSpace, i)
	}
	return m.Zones[i], nil
}

/*
主時間間隔1ステップ分の計算を行う。

各分割ステップで
	(1) 室温の予測（平均値）
	(2) 予測室温を境界条件とした全ての面の計算
	(3) 面の計算結果を用いた室温の補正
を行う。状態量の配列を直接更新する。
*/
func (m *ThermalModel) March(weather CurrentWeather, state SimulationState) error {
	t_out := weather.DryBulbTemperature
	if math.IsNaN(t_out) {
		return fmt.Errorf("%w: dry bulb temperature not provided", ErrInvalidInput)
	}

	m.update_outdoor_irradiance(weather, state)

	// 窓を透過した日射熱（主時間ステップ内は一定）
	for i := range m.q_sol {
		m.q_sol[i] = m.TransmittedSolar(i, state)
	}

	for sub := 0; sub < m.DtSubdivisions; sub++ {
		// (1) 予測
		for i, z := range m.Zones {
			m.t0[i] = z.Temperature(state)
			a, b := z.abc(state, t_out, m.q_sol[i])
			m.t_est[i] = EstimateMeanTemperature(m.t0[i], a, b, z.Mcp(), m.Dt)
		}

		// (2) 面の計算
		m.prepare_environments(weather, state)
		if err := m.march_surfaces(state); err != nil {
			return err
		}

		// (3) 補正
		for i, z := range m.Zones {
			a, b := z.abc(state, t_out, m.q_sol[i])
			t := EstimateFutureTemperature(m.t0[i], a, b, z.Mcp(), m.Dt)
			if math.IsNaN(t) {
				return fmt.Errorf("zone %q: %w: temperature", z.Name, ErrNumericDegeneracy)
			}
			z.SetTemperature(state, t)
		}
	}

	return nil
}

/*
室 i に窓から透過する日射熱を求める。

Args:
	i: 室の番号
	state: 状態量（面の日射量は更新済みであること）
Returns:
	透過日射熱, W
*/
func (m *ThermalModel) TransmittedSolar(i int, state SimulationState) float64 {
	q := 0.0
	for _, s := range m.Fenestrations {
		to_back, to_front := s.TransmittedSolar(state)
		if s.BackSpace == i {
			q += to_back
		}
		if s.FrontSpace == i {
			q += to_front
		}
	}
	return q
}

// 各面の表側・裏側の境界条件を作成する。室温は予測値のスナップショットを用いる。
func (m *ThermalModel) prepare_environments(weather CurrentWeather, state SimulationState) {
	for k, s := range m.all {
		m.env[k][0] = m.environment(s, s.Front, s.FrontSpace, weather, true)
		m.env[k][1] = m.environment(s, s.Back, s.BackSpace, weather, false)
		if s.FrontSpace >= 0 {
			s.SetFrontIRIrradiance(state, black_body(m.t_est[s.FrontSpace]))
		}
		if s.BackSpace >= 0 {
			s.SetBackIRIrradiance(state, black_body(m.t_est[s.BackSpace]))
		}
	}
}

func (m *ThermalModel) environment(s *ThermalSurface, b Boundary, space int, weather CurrentWeather, front bool) Environment {
	switch {
	case b.Type == BoundaryAdiabatic:
		return Environment{Adiabatic: true}
	case space >= 0:
		return NewEnvironment(m.t_est[space])
	default:
		return Environment{
			AirTemperature: weather.DryBulbTemperature,
			AirSpeed:       weather.WindSpeed,
			Windward:       m.is_windward(s, weather.WindDirection, front),
		}
	}
}

/*
面が風上側か否かを判定する。

Notes:
	風向は北を0とした時計回りの角度（風が吹いてくる方向）, degree
	水平に近い面は常に風上側とする。
*/
func (m *ThermalModel) is_windward(s *ThermalSurface, wind_direction float64, front bool) bool {
	if math.Abs(math.Sin(s.Tilt*math.Pi/180.0)) < 1e-3 {
		return true
	}
	// 面の法線の方位（北を0とした時計回り）
	normal := s.Azimuth + 180.0
	if !front {
		normal += 180.0
	}
	return math.Cos((wind_direction-normal)*math.Pi/180.0) > 0
}

/*
外気に面する面の長波放射量を状態量に書き込む。

Notes:
	天空と地面（外気温度の黒体とみなす）を形態係数で重み付けする。
	水平面の大気放射量が与えられない場合は天空の放射率から求める。
*/
func (m *ThermalModel) update_outdoor_irradiance(weather CurrentWeather, state SimulationState) {
	e_sky := weather.HorizontalIR
	if !(e_sky > 0) {
		eps_sky := weather.SkyEmissivity
		if !(eps_sky > 0) {
			eps_sky = eps
		}
		e_sky = eps_sky * black_body(weather.DryBulbTemperature)
	}
	e_gnd := black_body(weather.DryBulbTemperature)

	for _, s := range m.all {
		beta := s.Tilt * math.Pi / 180.0
		if s.Front.isOutdoor() {
			f_sky := (1.0 + math.Cos(beta)) / 2.0
			s.SetFrontIRIrradiance(state, f_sky*e_sky+(1.0-f_sky)*e_gnd)
		}
		if s.Back.isOutdoor() {
			f_sky := (1.0 - math.Cos(beta)) / 2.0
			s.SetBackIRIrradiance(state, f_sky*e_sky+(1.0-f_sky)*e_gnd)
		}
	}
}

// 全ての面を同じ室温のスナップショットに対して計算する。
func (m *ThermalModel) march_surfaces(state SimulationState) error {
	if !m.Parallel {
		for k, s := range m.all {
			if _, _, err := s.March(state, m.env[k][0], m.env[k][1], m.Dt); err != nil {
				return err
			}
		}
		return nil
	}

	// 各面は状態量の別の位置にのみ書き込むため並列に計算できる
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for k, s := range m.all {
		k, s := k, s
		g.Go(func() error {
			_, _, err := s.March(state, m.env[k][0], m.env[k][1], m.Dt)
			return err
		})
	}
	return g.Wait()
}
