package envelope_heat_calc

import "fmt"

// 境界の種類
type BoundaryType string

const (
	BoundaryOutdoor   BoundaryType = "outdoor"
	BoundarySpace     BoundaryType = "space"
	BoundaryAdiabatic BoundaryType = "adiabatic"
)

// 面の表側・裏側が接する境界
type Boundary struct {
	Type  BoundaryType `json:"type" yaml:"type"`
	Space string       `json:"space,omitempty" yaml:"space,omitempty"` // Type が space の場合の室名
}

// 外気に面する境界
func OutdoorBoundary() Boundary {
	return Boundary{Type: BoundaryOutdoor}
}

// 室に面する境界
func SpaceBoundary(name string) Boundary {
	return Boundary{Type: BoundarySpace, Space: name}
}

/*
境界が参照する室の番号を解決する。

Returns:
	室に面する場合は室の番号、それ以外は -1
*/
func (b Boundary) resolve(spaces []Space) (int, error) {
	switch b.Type {
	case "", BoundaryOutdoor, BoundaryAdiabatic:
		return -1, nil
	case BoundarySpace:
		for i := range spaces {
			if spaces[i].Name == b.Space {
				return i, nil
			}
		}
		return -1, fmt.Errorf("%w: %q", ErrUnknownSpace, b.Space)
	default:
		return -1, fmt.Errorf("%w: boundary type %q", ErrInvalidInput, b.Type)
	}
}

func (b Boundary) isOutdoor() bool {
	return b.Type == "" || b.Type == BoundaryOutdoor
}
