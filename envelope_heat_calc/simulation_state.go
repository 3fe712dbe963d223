package envelope_heat_calc

import "fmt"

// 状態量の種類
type ElementKind int

const (
	SpaceDryBulbTemperature ElementKind = iota
	SpaceHeatingCoolingPower
	SpaceLightingPower
	SpaceInfiltrationVolume
	SurfaceNodeTemperature
	SurfaceFrontConvectionCoefficient
	SurfaceBackConvectionCoefficient
	SurfaceFrontConvectiveHeatFlow
	SurfaceBackConvectiveHeatFlow
	SurfaceFrontSolarIrradiance
	SurfaceBackSolarIrradiance
	SurfaceFrontIRIrradiance
	SurfaceBackIRIrradiance
)

var element_suffix = map[ElementKind]string{
	SpaceDryBulbTemperature:           "t_r",
	SpaceHeatingCoolingPower:          "q_hvac",
	SpaceLightingPower:                "q_light",
	SpaceInfiltrationVolume:           "v_inf",
	SurfaceNodeTemperature:            "t_n",
	SurfaceFrontConvectionCoefficient: "h_s_front",
	SurfaceBackConvectionCoefficient:  "h_s_back",
	SurfaceFrontConvectiveHeatFlow:    "q_front",
	SurfaceBackConvectiveHeatFlow:     "q_back",
	SurfaceFrontSolarIrradiance:       "i_sol_front",
	SurfaceBackSolarIrradiance:        "i_sol_back",
	SurfaceFrontIRIrradiance:          "i_ir_front",
	SurfaceBackIRIrradiance:           "i_ir_back",
}

// 状態量の要素
type SimulationStateElement struct {
	Kind         ElementKind
	Index        int  // 室または面の番号
	Node         int  // 節点番号（SurfaceNodeTemperature のみ）
	Fenestration bool // 窓か否か（面の要素のみ）
}

func (e SimulationStateElement) isSpace() bool {
	return e.Kind <= SpaceInfiltrationVolume
}

// 出力のヘッダーに用いる名前
func (e SimulationStateElement) Name() string {
	suffix := element_suffix[e.Kind]
	switch {
	case e.isSpace():
		return fmt.Sprintf("rm%d_%s", e.Index, suffix)
	case e.Kind == SurfaceNodeTemperature:
		return fmt.Sprintf("%s%d_%s%d", surface_prefix(e.Fenestration), e.Index, suffix, e.Node)
	default:
		return fmt.Sprintf("%s%d_%s", surface_prefix(e.Fenestration), e.Index, suffix)
	}
}

func surface_prefix(fenestration bool) string {
	if fenestration {
		return "f"
	}
	return "b"
}

/*
状態量の並びを管理する。

熱計算の各部品は初期化時に Push によって自身の状態量の位置を受け取り、
以後はその位置だけを保持する。状態量の配列そのものは保持しない。
*/
type SimulationStateHeader struct {
	elements []SimulationStateElement
	values   []float64
}

func NewSimulationStateHeader() *SimulationStateHeader {
	return &SimulationStateHeader{}
}

// 要素を初期値とともに追加し、状態量中の位置を返す。
func (h *SimulationStateHeader) Push(e SimulationStateElement, initial float64) int {
	h.elements = append(h.elements, e)
	h.values = append(h.values, initial)
	return len(h.values) - 1
}

func (h *SimulationStateHeader) Len() int {
	return len(h.elements)
}

func (h *SimulationStateHeader) Elements() []SimulationStateElement {
	return h.elements
}

func (h *SimulationStateHeader) Names() []string {
	names := make([]string, len(h.elements))
	for i, e := range h.elements {
		names[i] = e.Name()
	}
	return names
}

// 要素の位置を返す。見つからない場合は -1
func (h *SimulationStateHeader) Find(e SimulationStateElement) int {
	for i, x := range h.elements {
		if x == e {
			return i
		}
	}
	return -1
}

// 追加した初期値で新しい状態量を作成する。
func (h *SimulationStateHeader) TakeValues() SimulationState {
	s := make(SimulationState, len(h.values))
	copy(s, h.values)
	return s
}

// 状態量の配列
type SimulationState []float64
