package routing

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Side is the boundary of a node a connector attaches to.
type Side int

const (
	Unset Side = iota
	Auto
	Top
	Bottom
	Left
	Right
)

func (s Side) String() string {
	switch s {
	case Auto:
		return "auto"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return ""
	}
}

// Explicit reports whether s names a concrete boundary.
func (s Side) Explicit() bool {
	return s == Top || s == Bottom || s == Left || s == Right
}

func ParseSide(v string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return Unset, nil
	case "auto":
		return Auto, nil
	case "top":
		return Top, nil
	case "bottom":
		return Bottom, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Unset, fmt.Errorf("unknown connection side %q", v)
}

func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Side) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	parsed, err := ParseSide(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// outward is the unit normal pointing away from the node at side s.
func (s Side) outward() Point {
	switch s {
	case Top:
		return Point{0, -1}
	case Bottom:
		return Point{0, 1}
	case Left:
		return Point{-1, 0}
	case Right:
		return Point{1, 0}
	}
	return Point{}
}

// SidePair is a (from, to) combination of explicit sides.
type SidePair struct {
	From, To Side
}

func (p SidePair) String() string {
	if !p.From.Explicit() || !p.To.Explicit() {
		return "auto"
	}
	return p.From.String() + "-" + p.To.String()
}
