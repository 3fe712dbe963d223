package envelope_heat_calc

import "fmt"

/*
ガラス（または複数枚を合成したガラス系）の垂直入射時の日射特性

ISO 9050 に基づき、層を表側から順に合成する。合成は結合則を満たすが交換則は満たさない。
*/
type Glazing struct {
	Tau      float64 // 日射透過率, -
	RhoFront float64 // 表面側日射反射率, -
	RhoBack  float64 // 裏面側日射反射率, -
}

func NewGlazing(tau, rho_front, rho_back float64) (Glazing, error) {
	for _, v := range []float64{tau, rho_front, rho_back} {
		if v < 0 || v > 1 {
			return Glazing{}, fmt.Errorf("%w: glazing property %g out of [0,1]", ErrInvalidInput, v)
		}
	}
	if tau+rho_front > 1 || tau+rho_back > 1 {
		return Glazing{}, fmt.Errorf("%w: glazing transmittance + reflectance exceeds 1", ErrInvalidInput)
	}
	return Glazing{Tau: tau, RhoFront: rho_front, RhoBack: rho_back}, nil
}

// 表面側日射吸収率, -
func (g Glazing) AlphaFront() float64 {
	return 1.0 - g.Tau - g.RhoFront
}

// 裏面側日射吸収率, -
func (g Glazing) AlphaBack() float64 {
	return 1.0 - g.Tau - g.RhoBack
}

// 表裏を入れ替えたガラス
func (g Glazing) Flip() Glazing {
	return Glazing{Tau: g.Tau, RhoFront: g.RhoBack, RhoBack: g.RhoFront}
}

// 表側の g1 と裏側の g2 を重ねた系の光学特性を求める。
func Combine(g1, g2 Glazing) Glazing {
	denom := 1.0 - g1.RhoBack*g2.RhoFront
	return Glazing{
		Tau:      g1.Tau * g2.Tau / denom,
		RhoFront: g1.RhoFront + g1.Tau*g1.Tau*g2.RhoFront/denom,
		RhoBack:  g2.RhoBack + g2.Tau*g2.Tau*g1.RhoBack/denom,
	}
}

// 表側から順に層を重ねる。層がない場合は完全に透過する。
func CombineLayers(layers []Glazing) Glazing {
	switch len(layers) {
	case 0:
		return Glazing{Tau: 1.0}
	case 1:
		return layers[0]
	default:
		return Combine(layers[0], CombineLayers(layers[1:]))
	}
}

/*
2つの層（合成層でもよい）からなる系の各層の日射吸収率を求める。

Args:
	g1: 表側の層
	g2: 裏側の層
Returns:
	(1) 表側の層に吸収される割合, -
	(2) 裏側の層に吸収される割合, -
*/
func combinedAlphas(g1, g2 Glazing) (float64, float64) {
	denom := 1.0 - g1.RhoBack*g2.RhoFront
	a1 := g1.AlphaFront() + g1.AlphaBack()*g1.Tau*g2.RhoFront/denom
	a2 := g2.AlphaFront() * g1.Tau / denom
	return a1, a2
}

/*
表側から入射した日射のうち各層に吸収される割合を求める。

Args:
	layers: 表側から順に並べた層
Returns:
	各層の日射吸収割合, -, [n]
*/
func AbsorbedFractions(layers []Glazing) []float64 {
	n := len(layers)
	alphas := make([]float64, n)
	if n == 0 {
		return alphas
	}
	if n == 1 {
		alphas[0] = layers[0].AlphaFront()
		return alphas
	}

	// 表側から k 層目までに吸収される割合の累積
	acc := 0.0
	for k := 1; k < n; k++ {
		a_front, a_back := combinedAlphas(CombineLayers(layers[:k]), CombineLayers(layers[k:]))
		alphas[k-1] = a_front - acc
		acc = a_front
		if k == n-1 {
			alphas[n-1] = a_back
		}
	}
	return alphas
}

// 裏側から入射する日射について各層の吸収割合を求める。結果は表側からの層の順とする。
func BackAbsorbedFractions(layers []Glazing) []float64 {
	n := len(layers)
	reversed := make([]Glazing, n)
	for i, g := range layers {
		reversed[n-1-i] = g.Flip()
	}
	r := AbsorbedFractions(reversed)
	alphas := make([]float64, n)
	for i := range r {
		alphas[n-1-i] = r[i]
	}
	return alphas
}
