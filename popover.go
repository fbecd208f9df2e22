package popover

import (
	"fmt"
	"image/color"
	"math"
)

// CardState is the resting state of the card. Exactly one state is current at
// any instant and it only changes when a transition completes.
type CardState uint8

const (
	Collapsed CardState = iota // only the handle strip is visible
	Expanded                   // the card covers most of the screen
)

// String returns "collapsed" or "expanded".
func (s CardState) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Expanded:
		return "expanded"
	default:
		return fmt.Sprintf("CardState(%d)", uint8(s))
	}
}

// Opposite returns the state a transition from s would land on.
func (s CardState) Opposite() CardState {
	if s == Expanded {
		return Collapsed
	}
	return Expanded
}

// ParseCardState converts "collapsed" or "expanded" to a CardState.
func ParseCardState(s string) (CardState, error) {
	switch s {
	case "collapsed":
		return Collapsed, nil
	case "expanded":
		return Expanded, nil
	default:
		return Collapsed, fmt.Errorf("unknown card state %q", s)
	}
}

// expansion returns the rendered expansion (0 or 1) of a resting state.
func (s CardState) expansion() float64 {
	if s == Expanded {
		return 1
	}
	return 0
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// clamp01 limits v to [0, 1]. NaN maps to 0 so it can never reach a renderer.
func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
