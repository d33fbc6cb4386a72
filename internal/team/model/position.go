package model

import "strings"

// Position is a volleyball court position code.
type Position string

// Supported position codes.
const (
	PositionSetter        Position = "S"
	PositionWingSpiker    Position = "WS"
	PositionMiddleBlocker Position = "MB"
	PositionOpposite      Position = "OP"
	PositionLibero        Position = "Li"
)

var positionLabels = map[Position]string{
	PositionSetter:        "setter",
	PositionWingSpiker:    "wing spiker",
	PositionMiddleBlocker: "middle blocker",
	PositionOpposite:      "opposite",
	PositionLibero:        "libero",
}

// Positions returns every supported position in display order.
func Positions() []Position {
	return []Position{
		PositionSetter,
		PositionWingSpiker,
		PositionMiddleBlocker,
		PositionOpposite,
		PositionLibero,
	}
}

// Valid reports whether p is one of the supported codes. Matching is exact,
// so "li" and "LI" are rejected.
func (p Position) Valid() bool {
	_, ok := positionLabels[p]
	return ok
}

// Label returns the long name of the position, or "" for unknown codes.
func (p Position) Label() string {
	return positionLabels[p]
}

func positionCodes() string {
	codes := make([]string, 0, len(positionLabels))
	for _, p := range Positions() {
		codes = append(codes, string(p))
	}
	return strings.Join(codes, ", ")
}
