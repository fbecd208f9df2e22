package popover

import (
	"fmt"
	"log"
	"math"

	"github.com/tanema/gween/ease"
)

// GestureAdapter is the inbound boundary of the card: discrete gesture phases
// with a pre-normalized scalar delta. Controller implements it;
// GestureRecognizer produces calls to it from raw pointer input.
type GestureAdapter interface {
	OnTap()
	OnPanBegin()
	// OnPanChanged receives the cumulative translation along the drag axis
	// since the pan began, positive downward.
	OnPanChanged(deltaAlongAxis float64)
	OnPanEnded()
	OnPanCancelled()
}

// Mode is the controller's position in the transition state machine.
type Mode uint8

const (
	ModeIdle        Mode = iota // no transition in progress
	ModeAnimating               // a transition plays autonomously
	ModeInteractive             // a transition is paused and scrubbed by a pan
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeAnimating:
		return "animating"
	case ModeInteractive:
		return "interactive"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Snapshot is a point-in-time view of a controller, for tests and debug
// output.
type Snapshot struct {
	State               CardState
	Mode                Mode
	Fraction            float64
	InterruptedProgress float64
	Members             int
}

func (s Snapshot) String() string {
	return fmt.Sprintf("state=%s mode=%s fraction=%.3f interrupted=%.3f members=%d",
		s.State, s.Mode, s.Fraction, s.InterruptedProgress, s.Members)
}

// Controller is the interactive card transition state machine. It owns the
// card state, the active TransitionGroup (at most one) and the progress
// captured when a pan interrupts that group.
//
// A Controller is not safe for concurrent use: all calls, including Update,
// must come from the host's update goroutine.
type Controller struct {
	cfg    Config
	props  []Property
	timing ease.TweenFunc
	sink   EventSink

	state       CardState
	active      *TransitionGroup
	interrupted float64
	panning     bool
	from        CardState
}

// NewController validates cfg and creates a controller resting in
// cfg.Initial. When cfg.Properties is nil the default properties of r are
// animated; r may be nil only when cfg.Properties is set. The resting look of
// the initial state is applied immediately.
func NewController(cfg Config, r Renderer) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	props := cfg.Properties
	if props == nil {
		if r == nil {
			return nil, fmt.Errorf("%w: no renderer and no properties", ErrInvalidConfig)
		}
		props = DefaultProperties(r)
	}
	c := &Controller{
		cfg:    cfg,
		props:  props,
		timing: defaultTiming(cfg),
		sink:   cfg.Sink,
		state:  cfg.Initial,
	}
	rest := c.state.expansion()
	for _, p := range props {
		p.Apply(rest)
	}
	return c, nil
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config { return c.cfg }

// State returns the current resting state.
func (c *Controller) State() CardState { return c.state }

// Visible reports whether the card is currently expanded.
func (c *Controller) Visible() bool { return c.state == Expanded }

// NextState returns the state the next transition targets.
func (c *Controller) NextState() CardState { return c.state.Opposite() }

// Group returns the active transition group, or nil when idle.
func (c *Controller) Group() *TransitionGroup { return c.active }

// InterruptedProgress returns the fraction captured when the active group was
// paused by a pan. Only meaningful in ModeInteractive.
func (c *Controller) InterruptedProgress() float64 { return c.interrupted }

// Mode returns the controller's state machine mode.
func (c *Controller) Mode() Mode {
	switch {
	case c.active == nil:
		return ModeIdle
	case c.active.Paused():
		return ModeInteractive
	default:
		return ModeAnimating
	}
}

// Fraction returns the active group's fraction complete, or 0 when idle.
func (c *Controller) Fraction() float64 {
	if c.active == nil {
		return 0
	}
	return c.active.Fraction()
}

// Expansion returns the currently rendered expansion of the first property:
// 0 collapsed, 1 expanded.
func (c *Controller) Expansion() float64 {
	if c.active == nil {
		return c.state.expansion()
	}
	return c.active.handles[0].Value()
}

// Snapshot captures the controller's current state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{State: c.state, Mode: c.Mode(), InterruptedProgress: c.interrupted}
	if c.active != nil {
		s.Fraction = c.active.Fraction()
		s.Members = len(c.active.handles)
	}
	return s
}

// OnTap starts an autonomous transition to NextState over the nominal
// duration. Ignored while a transition is in progress.
func (c *Controller) OnTap() {
	if c.active != nil {
		c.debugf("tap ignored: %s", c.Mode())
		return
	}
	c.begin()
}

// OnPanBegin makes the transition interactive. When idle a new group is
// created and paused immediately; when a group is already animating it is
// paused in place, so a user can grab an in-flight transition. Either way the
// paused fraction is captured as the interrupted progress.
func (c *Controller) OnPanBegin() {
	c.panning = true
	if c.active == nil {
		c.begin()
	}
	c.interrupted = c.active.PauseAll()
	c.emit(EventInterrupted, c.interrupted)
}

// OnPanChanged scrubs the paused group to
// clamp(interrupted + signed delta/travel, 0, 1). Deltas are ignored outside
// a pan or after the group completed mid-pan.
func (c *Controller) OnPanChanged(deltaAlongAxis float64) {
	if !c.panning || c.active == nil || !c.active.Paused() {
		return
	}
	if math.IsNaN(deltaAlongAxis) {
		log.Printf("popover: dropping NaN pan delta")
		return
	}
	c.active.ScrubAll(c.interactiveFraction(deltaAlongAxis))
}

// interactiveFraction converts a cumulative pan translation into an absolute
// group fraction. The sign is derived from the current state on every call:
// when collapsed an upward (negative) drag advances the expansion, when
// expanded a downward drag advances the collapse.
func (c *Controller) interactiveFraction(delta float64) float64 {
	raw := delta / c.cfg.Travel()
	if !c.Visible() {
		raw = -raw
	}
	return clamp01(c.interrupted + raw)
}

// OnPanEnded releases the group: it continues from the scrubbed fraction to
// completion in the time the remaining distance warrants.
func (c *Controller) OnPanEnded() {
	if !c.panning {
		return
	}
	c.panning = false
	if c.active == nil {
		return
	}
	f := c.active.Fraction()
	c.emit(EventReleased, f)
	c.active.ContinueAll(0)
}

// OnPanCancelled settles the group at the nearer endpoint: from fraction 0.5
// onward it continues to its target, below that it reverses to its start and
// the state does not change.
func (c *Controller) OnPanCancelled() {
	if !c.panning {
		return
	}
	c.panning = false
	if c.active == nil {
		return
	}
	f := c.active.Fraction()
	if f >= 0.5 {
		c.emit(EventReleased, f)
		c.active.ContinueAll(0)
		return
	}
	c.emit(EventReversed, f)
	c.active.ReverseAll(0)
}

// Update advances a running transition by dt seconds. Non-positive and NaN
// steps are ignored.
func (c *Controller) Update(dt float64) {
	if c.active == nil || !(dt > 0) || math.IsInf(dt, 1) {
		return
	}
	c.active.Update(dt)
}

func (c *Controller) begin() {
	c.from = c.state
	c.active = newTransitionGroup(c.NextState(), c.cfg.NominalDuration, c.cfg.DampingRatio,
		c.props, c.timing, c.groupDone)
	c.emit(EventStarted, 0)
}

// groupDone is the group's completion hook: it is the only place the card
// state changes.
func (c *Controller) groupDone(g *TransitionGroup, pos Position) {
	if g != c.active {
		return
	}
	if pos == PositionEnd {
		c.state = g.Target()
	}
	c.active = nil
	c.interrupted = 0
	f := 1.0
	if pos == PositionStart {
		f = 0
	}
	c.sendEvent(TransitionEvent{Kind: EventCompleted, From: c.from, To: g.Target(), Fraction: f, Position: pos})
}

func (c *Controller) emit(kind EventKind, fraction float64) {
	c.sendEvent(TransitionEvent{Kind: kind, From: c.from, To: c.NextState(), Fraction: fraction})
}

func (c *Controller) sendEvent(e TransitionEvent) {
	if c.cfg.Debug {
		debugLog("%s %s->%s fraction=%.3f", e.Kind, e.From, e.To, e.Fraction)
	}
	if c.sink != nil {
		c.sink.Emit(e)
	}
}

func (c *Controller) debugf(format string, args ...any) {
	if c.cfg.Debug {
		debugLog(format, args...)
	}
}
