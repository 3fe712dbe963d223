package envelope_heat_calc

import "errors"

var (
	// 構成を熱回路網に分割できない
	ErrDiscretization = errors.New("invalid discretization")

	// 面が存在しない構成を参照している
	ErrUnknownConstruction = errors.New("unknown construction")

	// 境界・暖冷房設備・照明が存在しない室を参照している
	ErrUnknownSpace = errors.New("unknown space")

	// 熱抵抗が正でない、または計算中に NaN が生じた
	ErrNumericDegeneracy = errors.New("numeric degeneracy")

	ErrInvalidInput = errors.New("invalid input")
)
