package envelope_heat_calc

import (
	"fmt"
	"math"
)

// 中空層に封入される気体
type Gas string

const (
	GasAir     Gas = "air"
	GasArgon   Gas = "argon"
	GasKrypton Gas = "krypton"
	GasXenon   Gas = "xenon"
)

// 普遍気体定数, J/kmol K
const r_universal = 8314.46261815324

// 標準大気圧, Pa
const p_atm = 101325.0

/*
ISO 15099 Table B.1 ～ B.3 の物性式の係数
value = c0 + c1 * T (T: K)
*/
type gasCoefficients struct {
	lambda [2]float64 // 熱伝導率, W/m K
	mu     [2]float64 // 粘性係数, Pa s
	cp     [2]float64 // 定圧比熱, J/kg K
	mass   float64    // モル質量, kg/kmol
}

var gasTable = map[Gas]gasCoefficients{
	GasAir: {
		lambda: [2]float64{2.873e-3, 7.760e-5},
		mu:     [2]float64{3.723e-6, 4.94e-8},
		cp:     [2]float64{1002.7370, 1.2324e-2},
		mass:   28.97,
	},
	GasArgon: {
		lambda: [2]float64{2.285e-3, 5.149e-5},
		mu:     [2]float64{3.379e-6, 6.451e-8},
		cp:     [2]float64{521.9285, 0},
		mass:   39.948,
	},
	GasKrypton: {
		lambda: [2]float64{9.443e-4, 2.826e-5},
		mu:     [2]float64{2.213e-6, 7.777e-8},
		cp:     [2]float64{248.0907, 0},
		mass:   83.8,
	},
	GasXenon: {
		lambda: [2]float64{4.538e-4, 1.723e-5},
		mu:     [2]float64{1.069e-6, 7.414e-8},
		cp:     [2]float64{158.3397, 0},
		mass:   131.30,
	},
}

func GasFromString(str string) (Gas, error) {
	g := Gas(str)
	if _, ok := gasTable[g]; !ok {
		return "", fmt.Errorf("%w: unknown gas %q", ErrInvalidInput, str)
	}
	return g, nil
}

func (g Gas) coefficients() gasCoefficients {
	c, ok := gasTable[g]
	if !ok {
		panic("invalid gas")
	}
	return c
}

// 熱伝導率, W/m K (t_k: K)
func (g Gas) Conductivity(t_k float64) float64 {
	c := g.coefficients()
	return c.lambda[0] + c.lambda[1]*t_k
}

// 粘性係数, Pa s (t_k: K)
func (g Gas) Viscosity(t_k float64) float64 {
	c := g.coefficients()
	return c.mu[0] + c.mu[1]*t_k
}

// 定圧比熱, J/kg K (t_k: K)
func (g Gas) SpecificHeat(t_k float64) float64 {
	c := g.coefficients()
	return c.cp[0] + c.cp[1]*t_k
}

// 密度（理想気体）, kg/m3 (t_k: K)
func (g Gas) Density(t_k float64) float64 {
	return p_atm * g.coefficients().mass / (r_universal * t_k)
}

/*
レイリー数を計算する。

Args:
	t_m_k: 中空層の平均温度, K
	delta_t: 中空層両面の温度差, K
	l: 中空層の厚さ, m
Returns:
	レイリー数, -
Notes:
	温度差が極めて小さい場合は対流が生じないものとして 1e-7 を返す。
*/
func (g Gas) Rayleigh(t_m_k, delta_t, l float64) float64 {
	delta_t = math.Abs(delta_t)
	if delta_t < 1e-10 {
		return 1e-7
	}
	rho := g.Density(t_m_k)
	mu := g.Viscosity(t_m_k)
	lambda := g.Conductivity(t_m_k)
	cp := g.SpecificHeat(t_m_k)
	beta := 1.0 / t_m_k

	return rho * rho * l * l * l * g_acc * beta * cp * delta_t / (mu * lambda)
}
