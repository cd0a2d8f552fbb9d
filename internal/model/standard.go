package model

import (
	"fmt"
	"strings"
)

// Standard selects the financial-reporting rule set applied to financial statements.
type Standard string

const (
	StandardUnselected Standard = ""
	// StandardCircular133 is the simplified regime for small and medium enterprises.
	StandardCircular133 Standard = "tt133"
	// StandardCircular200 is the full enterprise accounting regime.
	StandardCircular200 Standard = "tt200"
)

// ParseStandard accepts "tt133"/"133"/"a", "tt200"/"200"/"b" and "" / "none".
func ParseStandard(s string) (Standard, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "unselected":
		return StandardUnselected, nil
	case "tt133", "133", "a":
		return StandardCircular133, nil
	case "tt200", "200", "b":
		return StandardCircular200, nil
	}
	return StandardUnselected, fmt.Errorf("unknown accounting standard %q", s)
}

// String returns a display name.
func (s Standard) String() string {
	switch s {
	case StandardCircular133:
		return "Circular 133"
	case StandardCircular200:
		return "Circular 200"
	default:
		return "unselected"
	}
}
