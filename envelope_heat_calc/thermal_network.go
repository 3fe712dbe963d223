package envelope_heat_calc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// 表面の境界条件を線形化したもの
type faceCondition struct {
	h     float64 // 総合熱伝達率, W/m2 K
	theta float64 // 相当外気温度, degree C
}

/*
面ごとの熱回路網

Discretization は共有されるが、中空層の高さ・傾斜角は面ごとに異なるため、
係数行列と作業領域は面ごとに保持する。

	C dT/dt = K T + q
*/
type thermalNetwork struct {
	d       *Discretization
	cavity  []Cavity // 区間ごとの中空層（Cavity 以外は未使用）
	massive []int    // 熱容量を持つ節点番号
	nomass  []int    // 熱容量を持たない節点番号

	k *mat.SymBandDense // 熱コンダクタンス行列（三重対角）, W/m2 K
	q *mat.VecDense     // 境界からの熱流入, W/m2

	// 節点ごとの吸収日射量, W/m2
	q_sol []float64

	front faceCondition
	back  faceCondition

	// 作業領域
	kt    *mat.VecDense
	k_nn  *mat.Dense
	rhs   *mat.VecDense
	t_nn  *mat.VecDense
	n_itr int
}

func newThermalNetwork(d *Discretization, height, tilt float64) *thermalNetwork {
	n := d.NNodes()
	net := &thermalNetwork{
		d:      d,
		cavity: make([]Cavity, len(d.Segments)),
		k:      mat.NewSymBandDense(n, 1, nil),
		q:      mat.NewVecDense(n, nil),
		q_sol:  make([]float64, n),
		kt:     mat.NewVecDense(n, nil),
		n_itr:  1,
	}

	for i, c := range d.NodeCapacitance {
		if c > 0 {
			net.massive = append(net.massive, i)
		} else {
			net.nomass = append(net.nomass, i)
		}
	}

	for k, seg := range d.Segments {
		if seg.Kind != SegmentCavity {
			continue
		}
		net.cavity[k] = Cavity{
			Tilt:      tilt,
			Thickness: seg.Thickness,
			Height:    height,
			Gas:       seg.Gas,
			EpsFront:  seg.EpsFront,
			EpsBack:   seg.EpsBack,
		}
		// 中空層が熱容量なしの節点に接する場合は中空層の熱抵抗と節点温度を反復して求める
		if d.NodeCapacitance[k] == 0 || d.NodeCapacitance[k+1] == 0 {
			net.n_itr = 4
		}
	}

	if m := len(net.nomass); m > 0 {
		net.k_nn = mat.NewDense(m, m, nil)
		net.rhs = mat.NewVecDense(m, nil)
		net.t_nn = mat.NewVecDense(m, nil)
	}

	return net
}

/*
区間のコンダクタンスを求める。

Args:
	k: 区間番号
	t: 節点温度, degree C, [n]
Returns:
	コンダクタンス, W/m2 K
*/
func (net *thermalNetwork) conductance(k int, t []float64) (float64, error) {
	seg := net.d.Segments[k]
	switch seg.Kind {
	case SegmentSolid:
		if !(seg.R > 0) {
			return 0, fmt.Errorf("%w: segment %d resistance %g", ErrNumericDegeneracy, k, seg.R)
		}
		return 1.0 / seg.R, nil
	case SegmentCavity:
		r, err := net.cavity[k].R(t[k], t[k+1])
		if err != nil {
			return 0, err
		}
		return 1.0 / r, nil
	default:
		return 0, fmt.Errorf("%w: segment %d is undefined", ErrNumericDegeneracy, k)
	}
}

// 節点温度 t における K と q を組み立てる。
func (net *thermalNetwork) assemble(t []float64) error {
	n := net.d.NNodes()
	for i := 0; i < n; i++ {
		net.k.SetSymBand(i, i, 0)
		if i+1 < n {
			net.k.SetSymBand(i, i+1, 0)
		}
		net.q.SetVec(i, net.q_sol[i])
	}

	for k := range net.d.Segments {
		g, err := net.conductance(k, t)
		if err != nil {
			return err
		}
		net.k.SetSymBand(k, k, net.k.At(k, k)-g)
		net.k.SetSymBand(k+1, k+1, net.k.At(k+1, k+1)-g)
		net.k.SetSymBand(k, k+1, g)
	}

	net.k.SetSymBand(0, 0, net.k.At(0, 0)-net.front.h)
	net.q.SetVec(0, net.q.AtVec(0)+net.front.h*net.front.theta)
	net.k.SetSymBand(n-1, n-1, net.k.At(n-1, n-1)-net.back.h)
	net.q.SetVec(n-1, net.q.AtVec(n-1)+net.back.h*net.back.theta)

	return nil
}

/*
熱容量を持たない節点の温度を代数的に解く。

	K_nn T_n = -(K_nm T_m + q_n)

Args:
	t: 節点温度, degree C, [n]（熱容量を持たない節点の値を上書きする）
*/
func (net *thermalNetwork) solve_nomass(t []float64) error {
	if len(net.nomass) == 0 {
		return net.assemble(t)
	}

	for itr := 0; itr < net.n_itr; itr++ {
		if err := net.assemble(t); err != nil {
			return err
		}

		for a, i := range net.nomass {
			r := -net.q.AtVec(i)
			for _, j := range net.massive {
				if j+1 >= i && j <= i+1 {
					r -= net.k.At(i, j) * t[j]
				}
			}
			net.rhs.SetVec(a, r)
			for b, j := range net.nomass {
				net.k_nn.Set(a, b, net.k.At(i, j))
			}
		}

		if err := net.t_nn.SolveVec(net.k_nn, net.rhs); err != nil {
			return fmt.Errorf("%w: no-mass nodes: %v", ErrNumericDegeneracy, err)
		}
		for a, i := range net.nomass {
			t[i] = net.t_nn.AtVec(a)
		}
	}

	// 最終的な節点温度で係数を更新する
	if net.n_itr > 1 {
		return net.assemble(t)
	}
	return nil
}

/*
熱容量を持つ節点の温度の時間微分を求める。

Args:
	t: 節点温度, degree C, [n]
	dtdt: 熱容量を持つ節点の温度の時間微分, K/s, [m]
*/
func (net *thermalNetwork) derivative(t []float64, dtdt []float64) error {
	if err := net.solve_nomass(t); err != nil {
		return err
	}

	net.kt.MulVec(net.k, mat.NewVecDense(len(t), t))
	net.kt.AddVec(net.kt, net.q)

	for a, i := range net.massive {
		dtdt[a] = net.kt.AtVec(i) / net.d.NodeCapacitance[i]
		if math.IsNaN(dtdt[a]) || math.IsInf(dtdt[a], 0) {
			return fmt.Errorf("%w: node %d temperature derivative %g", ErrNumericDegeneracy, i, dtdt[a])
		}
	}
	return nil
}
