package popover

import (
	"fmt"
	"math"

	"github.com/tanema/gween/ease"
)

// lockstepTolerance bounds how far member fractions may drift apart.
const lockstepTolerance = 1e-9

// Property is one animatable aspect of the card. Apply receives the card's
// expansion: 0 is the collapsed look, 1 the expanded look. Each property gets
// its own AnimationHandle so it can use its own easing while still being
// scrubbed as part of one transition.
type Property struct {
	Name   string
	Timing ease.TweenFunc // nil uses the controller's default curve
	Apply  func(expansion float64)
}

// TransitionGroup is the set of AnimationHandles that together make up one
// state change. Members share target and duration, start together, and are
// paused, scrubbed and resumed together. When the last member completes the
// group fires its hook once and reports Empty.
type TransitionGroup struct {
	target   CardState
	duration float64
	handles  []*AnimationHandle
	pending  int
	position Position
	done     bool
	hook     func(*TransitionGroup, Position)
}

// newTransitionGroup builds one handle per property, animating from the
// resting look of target's opposite toward target, and starts them all.
func newTransitionGroup(target CardState, duration, damping float64, props []Property,
	timing ease.TweenFunc, hook func(*TransitionGroup, Position)) *TransitionGroup {
	if len(props) == 0 {
		panic("popover: transition group needs at least one property")
	}
	g := &TransitionGroup{
		target:   target,
		duration: duration,
		handles:  make([]*AnimationHandle, 0, len(props)),
		pending:  len(props),
		hook:     hook,
	}
	from := target.Opposite().expansion()
	to := target.expansion()
	for _, p := range props {
		fn := p.Timing
		if fn == nil {
			fn = timing
		}
		h := NewAnimationHandle(target, duration, damping, from, to, fn, p.Apply, g.memberDone)
		h.Name = p.Name
		g.handles = append(g.handles, h)
	}
	for _, h := range g.handles {
		h.Start()
	}
	return g
}

func (g *TransitionGroup) memberDone(pos Position) {
	if g.pending == len(g.handles) {
		g.position = pos
	} else if pos != g.position {
		panic(fmt.Sprintf("popover: transition members finished at %s and %s", g.position, pos))
	}
	g.pending--
	if g.pending > 0 {
		return
	}
	g.done = true
	if g.hook != nil {
		g.hook(g, pos)
	}
}

// Target returns the state the group transitions to.
func (g *TransitionGroup) Target() CardState { return g.target }

// Duration returns the nominal duration shared by all members.
func (g *TransitionGroup) Duration() float64 { return g.duration }

// Handles returns the members in creation order. The returned slice MUST NOT
// be mutated.
func (g *TransitionGroup) Handles() []*AnimationHandle { return g.handles }

// Empty reports whether every member has completed. An empty group is never
// reused.
func (g *TransitionGroup) Empty() bool { return g == nil || g.done }

// Phase returns the lifecycle phase shared by the members.
func (g *TransitionGroup) Phase() Phase {
	if g.done {
		return PhaseCompleted
	}
	return g.handles[0].Phase()
}

// Running reports whether the members advance on Update.
func (g *TransitionGroup) Running() bool { return !g.done && g.handles[0].IsRunning() }

// Paused reports whether the members are paused for scrubbing.
func (g *TransitionGroup) Paused() bool { return !g.done && g.handles[0].Phase() == PhasePaused }

// Reversed reports whether running members are heading back to fraction 0.
func (g *TransitionGroup) Reversed() bool { return !g.done && g.handles[0].Reversed() }

// Fraction returns the shared fraction complete. Panics if members diverged.
func (g *TransitionGroup) Fraction() float64 {
	f := g.handles[0].Fraction()
	for _, h := range g.handles[1:] {
		if math.Abs(h.Fraction()-f) > lockstepTolerance || h.Phase() != g.handles[0].Phase() {
			panic(fmt.Sprintf("popover: transition members out of lockstep (%q %s %.6f, %q %s %.6f)",
				g.handles[0].Name, g.handles[0].Phase(), f, h.Name, h.Phase(), h.Fraction()))
		}
	}
	return f
}

// PauseAll pauses every member and returns the fraction they were paused at.
// Members are rebased onto the first member's fraction, so members with their
// own easing may snap to the shared linear look.
func (g *TransitionGroup) PauseAll() float64 {
	g.mustBeLive("PauseAll")
	f := g.handles[0].Pause()
	for _, h := range g.handles[1:] {
		if h.Pause() != f {
			h.scrub(f)
		}
	}
	return g.Fraction()
}

// ScrubAll sets every member to clamp(f, 0, 1). Only reaching 1 completes
// the group: scrubbing to 0 leaves it paused so the gesture can drag forward
// again. Repeating the same fraction has no further effect.
func (g *TransitionGroup) ScrubAll(f float64) {
	g.mustBeLive("ScrubAll")
	for _, h := range g.handles {
		h.SetFraction(f)
	}
}

// ContinueAll resumes every member toward fraction 1.
// See AnimationHandle.ContinueToCompletion for rateMultiplier.
func (g *TransitionGroup) ContinueAll(rateMultiplier float64) {
	g.mustBeLive("ContinueAll")
	for _, h := range g.handles {
		h.ContinueToCompletion(rateMultiplier)
	}
}

// ReverseAll resumes every member back toward fraction 0.
func (g *TransitionGroup) ReverseAll(rateMultiplier float64) {
	g.mustBeLive("ReverseAll")
	for _, h := range g.handles {
		h.Reverse(rateMultiplier)
	}
}

// Update advances running members by dt seconds.
func (g *TransitionGroup) Update(dt float64) {
	if g.done {
		return
	}
	for _, h := range g.handles {
		h.Update(dt)
	}
}

func (g *TransitionGroup) mustBeLive(op string) {
	if g.done {
		panic("popover: " + op + " on a completed transition group")
	}
}
