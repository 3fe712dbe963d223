package envelope_heat_calc

func ptr(v float64) *float64 {
	return &v
}

/*
テスト用の建物定義

物質: コンクリート・断熱材（熱容量なし）・ガラス
構成: concrete, insulated, double_glazing, concrete_insulated
*/
func testBuilding() *Building {
	return &Building{
		Substances: []Substance{
			{
				Name:             "concrete",
				Conductivity:     0.816,
				Density:          ptr(1700),
				SpecificHeat:     ptr(800),
				FrontAbsorptance: ptr(0.7),
				BackAbsorptance:  ptr(0.9),
			},
			{
				Name:         "insulation",
				Conductivity: 0.04,
			},
			{
				Name:                  "glass",
				Conductivity:          1.0,
				Density:               ptr(2500),
				SpecificHeat:          ptr(840),
				FrontEmissivity:       ptr(0.84),
				BackEmissivity:        ptr(0.84),
				SolarTransmittance:    ptr(0.8),
				FrontSolarReflectance: ptr(0.08),
				BackSolarReflectance:  ptr(0.08),
			},
		},
		Materials: []Material{
			{Name: "concrete_200", Substance: "concrete", Thickness: 0.2},
			{Name: "insulation_100", Substance: "insulation", Thickness: 0.1},
			{Name: "glass_6", Substance: "glass", Thickness: 0.006},
		},
		Constructions: []Construction{
			{Name: "concrete", Layers: []Layer{{Material: "concrete_200"}}},
			{Name: "insulated", Layers: []Layer{{Material: "insulation_100"}}},
			{Name: "double_glazing", Layers: []Layer{
				{Material: "glass_6"},
				{Cavity: &CavityLayer{Thickness: 0.012, Gas: "air"}},
				{Material: "glass_6"},
			}},
			{Name: "concrete_insulated", Layers: []Layer{
				{Material: "concrete_200"},
				{Material: "insulation_100"},
			}},
		},
	}
}

// 断熱材の壁1枚だけを持つ1室（閉じた解を持つ）
func singleZoneBuilding(volume, area float64) *Building {
	b := testBuilding()
	b.Spaces = []Space{{Name: "zone", Volume: volume}}
	b.Surfaces = []Surface{{
		Name:         "wall",
		Construction: "insulated",
		Area:         area,
		Tilt:         90,
		Front:        SpaceBoundary("zone"),
		Back:         OutdoorBoundary(),
		FrontHs:      ptr(10),
		BackHs:       ptr(10),
	}}
	return b
}

// 2室・外壁・屋根・間仕切り・窓を持つ建物
func twoZoneBuilding() *Building {
	b := testBuilding()
	b.Spaces = []Space{
		{Name: "living", Volume: 60},
		{Name: "bedroom", Volume: 30, InfiltrationRate: ptr(0.005)},
	}
	b.Surfaces = []Surface{
		{Name: "south_wall", Construction: "concrete_insulated", Area: 12, Direction: DirectionS, Front: OutdoorBoundary(), Back: SpaceBoundary("living")},
		{Name: "roof", Construction: "concrete_insulated", Area: 30, Direction: DirectionTop, Front: OutdoorBoundary(), Back: SpaceBoundary("living")},
		{Name: "partition", Construction: "concrete", Area: 8, Tilt: 90, Azimuth: 90, Front: SpaceBoundary("living"), Back: SpaceBoundary("bedroom")},
		{Name: "west_wall", Construction: "concrete", Area: 10, Direction: DirectionW, Front: OutdoorBoundary(), Back: SpaceBoundary("bedroom")},
		{Name: "floor", Construction: "insulated", Area: 20, Direction: DirectionBottom, Front: Boundary{Type: BoundaryAdiabatic}, Back: SpaceBoundary("bedroom")},
	}
	b.Fenestrations = []Surface{
		{Name: "south_window", Construction: "double_glazing", Area: 3, Direction: DirectionS, Front: OutdoorBoundary(), Back: SpaceBoundary("living")},
	}
	return b
}
