package popover

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultDragDeadZone = 4.0 // pixels

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Gesture recognition ---

type pointerState struct {
	down     bool
	armed    bool // press landed on the handle area
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
}

// GestureRecognizer turns raw samples of a single pointer into tap and pan
// calls on a GestureAdapter. A press must land on the handle area to arm the
// recognizer. Moving beyond the dead zone starts a pan whose deltas are the
// vertical translation since the press; releasing ends it. A release without
// a drag, still over the handle, is a tap.
type GestureRecognizer struct {
	target   GestureAdapter
	area     *Node
	deadZone float64
	ps       pointerState
}

// NewGestureRecognizer creates a recognizer reporting to target. Presses are
// accepted only where area.HitTest succeeds; a nil area accepts everywhere.
func NewGestureRecognizer(target GestureAdapter, area *Node) *GestureRecognizer {
	return &GestureRecognizer{target: target, area: area, deadZone: defaultDragDeadZone}
}

// SetDragDeadZone sets the minimum movement in pixels before a pan starts.
func (g *GestureRecognizer) SetDragDeadZone(pixels float64) {
	g.deadZone = pixels
}

// Dragging reports whether a pan is in progress.
func (g *GestureRecognizer) Dragging() bool {
	return g.ps.dragging
}

func (g *GestureRecognizer) hit(x, y float64) bool {
	return g.area == nil || g.area.HitTest(x, y)
}

// Process feeds one pointer sample. Call it once per frame (or per host
// event) with the pointer's position and whether its primary button or touch
// is down.
func (g *GestureRecognizer) Process(x, y float64, pressed bool) {
	ps := &g.ps
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}

	switch {
	case pressed && !ps.down:
		*ps = pointerState{down: true, startX: x, startY: y, lastX: x, lastY: y}
		ps.armed = g.hit(x, y)

	case !pressed && ps.down:
		switch {
		case ps.dragging:
			if y != ps.lastY {
				g.target.OnPanChanged(y - ps.startY)
			}
			g.target.OnPanEnded()
		case ps.armed && g.hit(x, y):
			g.target.OnTap()
		}
		g.ps = pointerState{lastX: x, lastY: y}

	case pressed && ps.down:
		if x == ps.lastX && y == ps.lastY {
			return
		}
		if !ps.dragging && ps.armed {
			dx := x - ps.startX
			dy := y - ps.startY
			if math.Sqrt(dx*dx+dy*dy) > g.deadZone {
				ps.dragging = true
				g.target.OnPanBegin()
			}
		}
		if ps.dragging {
			g.target.OnPanChanged(y - ps.startY)
		}
		ps.lastX = x
		ps.lastY = y
	}
}

// Cancel aborts the current interaction, as when the pointer is lost. A pan
// in progress is reported as cancelled; an armed tap is dropped.
func (g *GestureRecognizer) Cancel() {
	if g.ps.dragging {
		g.target.OnPanCancelled()
	}
	g.ps = pointerState{lastX: g.ps.lastX, lastY: g.ps.lastY}
}

// --- Live input ---

// pollPointer reads the primary pointer from Ebitengine: the first active
// touch if there is one, otherwise the mouse with its left button. Losing
// window focus mid-pan cancels the pan.
func (s *Scene) pollPointer() {
	if !ebiten.IsFocused() {
		if s.recognizer.Dragging() {
			s.recognizer.Cancel()
		}
		return
	}

	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	if s.touchActive {
		for _, id := range s.touchIDs {
			if id == s.touchID {
				tx, ty := ebiten.TouchPosition(id)
				s.lastTouch = Vec2{float64(tx), float64(ty)}
				s.recognizer.Process(s.lastTouch.X, s.lastTouch.Y, true)
				return
			}
		}
		// Finger lifted: release at the last known position.
		s.touchActive = false
		s.recognizer.Process(s.lastTouch.X, s.lastTouch.Y, false)
		return
	}
	if len(s.touchIDs) > 0 {
		s.touchID = s.touchIDs[0]
		s.touchActive = true
		tx, ty := ebiten.TouchPosition(s.touchID)
		s.lastTouch = Vec2{float64(tx), float64(ty)}
		s.recognizer.Process(s.lastTouch.X, s.lastTouch.Y, true)
		return
	}

	mx, my := ebiten.CursorPosition()
	s.recognizer.Process(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}
