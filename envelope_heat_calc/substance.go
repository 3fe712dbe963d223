package envelope_heat_calc

import "fmt"

// 物質の物性値
type Substance struct {
	Name         string   `json:"name" yaml:"name"`
	Conductivity float64  `json:"thermal_conductivity" yaml:"thermal_conductivity"`     // 熱伝導率, W/m K
	Density      *float64 `json:"density,omitempty" yaml:"density,omitempty"`           // 密度, kg/m3
	SpecificHeat *float64 `json:"specific_heat,omitempty" yaml:"specific_heat,omitempty"` // 比熱, J/kg K

	FrontEmissivity  *float64 `json:"front_emissivity,omitempty" yaml:"front_emissivity,omitempty"`
	BackEmissivity   *float64 `json:"back_emissivity,omitempty" yaml:"back_emissivity,omitempty"`
	FrontAbsorptance *float64 `json:"front_solar_absorptance,omitempty" yaml:"front_solar_absorptance,omitempty"`
	BackAbsorptance  *float64 `json:"back_solar_absorptance,omitempty" yaml:"back_solar_absorptance,omitempty"`

	// ガラスの日射特性（ガラス以外は nil）
	SolarTransmittance    *float64 `json:"solar_transmittance,omitempty" yaml:"solar_transmittance,omitempty"`
	FrontSolarReflectance *float64 `json:"front_solar_reflectance,omitempty" yaml:"front_solar_reflectance,omitempty"`
	BackSolarReflectance  *float64 `json:"back_solar_reflectance,omitempty" yaml:"back_solar_reflectance,omitempty"`
}

// 熱容量を持つか否か
func (s *Substance) IsMassive() bool {
	return s.Density != nil && s.SpecificHeat != nil && *s.Density > 0 && *s.SpecificHeat > 0
}

// 与えられた密度・比熱は正でなければならない
func (s *Substance) validate_heat_capacity() error {
	if s.Density != nil && !(*s.Density > 0) {
		return fmt.Errorf("%w: substance %q: density %g", ErrDiscretization, s.Name, *s.Density)
	}
	if s.SpecificHeat != nil && !(*s.SpecificHeat > 0) {
		return fmt.Errorf("%w: substance %q: specific heat %g", ErrDiscretization, s.Name, *s.SpecificHeat)
	}
	return nil
}

// 容積比熱, J/m3 K
func (s *Substance) volumetric_heat_capacity() float64 {
	if !s.IsMassive() {
		return 0
	}
	return *s.Density * *s.SpecificHeat
}

func value_or(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func (s *Substance) front_emissivity() float64 { return value_or(s.FrontEmissivity, eps) }
func (s *Substance) back_emissivity() float64  { return value_or(s.BackEmissivity, eps) }

func (s *Substance) front_absorptance() float64 { return value_or(s.FrontAbsorptance, alpha_sol) }
func (s *Substance) back_absorptance() float64  { return value_or(s.BackAbsorptance, alpha_sol) }

// 日射の光学特性が与えられているか否か
func (s *Substance) IsGlazing() bool {
	return s.SolarTransmittance != nil
}

func (s *Substance) glazing() (Glazing, error) {
	if !s.IsGlazing() {
		return Glazing{}, fmt.Errorf("%w: substance %q has no solar transmittance", ErrInvalidInput, s.Name)
	}
	return NewGlazing(
		*s.SolarTransmittance,
		value_or(s.FrontSolarReflectance, 0),
		value_or(s.BackSolarReflectance, 0),
	)
}

// 層の材料（物質＋厚さ）
type Material struct {
	Name       string   `json:"name" yaml:"name"`
	Substance  string   `json:"substance" yaml:"substance"`
	Thickness  float64  `json:"thickness" yaml:"thickness"`                       // 厚さ, m
	Resistance *float64 `json:"resistance,omitempty" yaml:"resistance,omitempty"` // 熱抵抗（熱容量なしの場合に直接与える）, m2 K/W
}

// 中空層
type CavityLayer struct {
	Thickness float64 `json:"thickness" yaml:"thickness"` // 厚さ, m
	Gas       string  `json:"gas" yaml:"gas"`
}

// 構成の1層（材料または中空層のいずれか）
type Layer struct {
	Material string       `json:"material,omitempty" yaml:"material,omitempty"`
	Cavity   *CavityLayer `json:"cavity,omitempty" yaml:"cavity,omitempty"`
}

// 表側から裏側へ並べた層構成
type Construction struct {
	Name   string  `json:"name" yaml:"name"`
	Layers []Layer `json:"layers" yaml:"layers"`
}
