package popover

import (
	"fmt"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Phase is the lifecycle phase of an AnimationHandle.
type Phase uint8

const (
	PhaseIdle      Phase = iota // created, not started
	PhaseRunning                // advancing on Update
	PhasePaused                 // frozen; progress is driven by SetFraction
	PhaseCompleted              // reached an endpoint; the completion callback has fired
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseCompleted:
		return "completed"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Position identifies the end of a transition an animation finished at.
type Position uint8

const (
	PositionEnd   Position = iota // fraction 1: the target state was reached
	PositionStart                 // fraction 0: the animation was reversed back
)

func (p Position) String() string {
	if p == PositionStart {
		return "start"
	}
	return "end"
}

// AnimationHandle is one interruptible property animation. It moves a value
// from a start to an end over Duration seconds, evaluating its curve through a
// gween.Tween, and writes every new value through its apply func.
//
// Progress is tracked as a fraction in [0, 1]. While running the fraction
// advances linearly with time and the value follows the easing curve. While
// paused the fraction only changes through SetFraction, and the value tracks
// it linearly so a dragged card stays under the finger. Resuming plays the
// curve again from the value on screen to the endpoint over the remaining
// time. The completion callback fires exactly once, when the fraction reaches
// 1 (or 0 after Reverse), whether by playback or by a forced SetFraction.
//
// Misuse (setting the fraction of a running handle, resuming a completed one)
// panics: those calls indicate a broken caller state machine.
type AnimationHandle struct {
	Name     string
	Duration float64
	// DampingRatio shapes the spring used when no easing function is given.
	DampingRatio float64
	Target       CardState

	from, to   float64
	fn         ease.TweenFunc
	apply      func(float64)
	onComplete func(Position)

	// The running segment: tween eases the value over segSeconds while the
	// fraction moves linearly from segFrom to segTo.
	tween          *gween.Tween
	segFrom, segTo float64
	segSeconds     float64
	elapsed        float64

	fraction float64
	value    float64
	phase    Phase
}

// NewAnimationHandle creates an idle handle animating from -> to over duration
// seconds with the easing fn. A nil fn uses a spring with dampingRatio, or a
// linear ramp when dampingRatio is not positive. apply receives each
// interpolated value and onComplete is invoked once with the position the
// handle finished at. Either callback may be nil. Panics if duration is not a
// positive finite number.
func NewAnimationHandle(target CardState, duration, dampingRatio, from, to float64,
	fn ease.TweenFunc, apply func(float64), onComplete func(Position)) *AnimationHandle {
	if !finite(duration) || duration <= 0 {
		panic(fmt.Sprintf("popover: animation duration must be > 0, got %v", duration))
	}
	h := &AnimationHandle{
		Duration:     duration,
		DampingRatio: dampingRatio,
		Target:       target,
		from:         from,
		to:           to,
		fn:           fn,
		apply:        apply,
		onComplete:   onComplete,
		value:        from,
	}
	if h.fn == nil {
		h.fn = ease.Linear
		if finite(h.DampingRatio) && h.DampingRatio > 0 {
			h.fn = SpringEase(h.DampingRatio)
		}
	}
	return h
}

// Phase returns the current lifecycle phase.
func (h *AnimationHandle) Phase() Phase { return h.phase }

// Fraction returns the fraction complete in [0, 1].
func (h *AnimationHandle) Fraction() float64 { return h.fraction }

// Value returns the most recently applied interpolated value.
func (h *AnimationHandle) Value() float64 { return h.value }

// IsRunning reports whether the handle advances on Update.
func (h *AnimationHandle) IsRunning() bool { return h.phase == PhaseRunning }

// Reversed reports whether a running handle is heading back to fraction 0.
func (h *AnimationHandle) Reversed() bool {
	return h.phase == PhaseRunning && h.segTo < h.segFrom
}

// Start begins playback from fraction 0 toward 1 over the full duration.
// Panics unless the handle is idle.
func (h *AnimationHandle) Start() {
	if h.phase != PhaseIdle {
		panic(fmt.Sprintf("popover: Start on %s animation %q", h.phase, h.Name))
	}
	h.fraction = 0
	h.play(1, h.to, h.Duration)
	h.setValue(h.from)
}

// Pause freezes playback and returns the fraction at the moment of pausing.
// A handle paused mid-curve has its fraction moved to where its value sits
// between the endpoints, so the first SetFraction does not jump. Pausing a
// paused handle is a no-op. Panics on an idle or completed handle.
func (h *AnimationHandle) Pause() float64 {
	switch h.phase {
	case PhaseRunning:
		h.phase = PhasePaused
		h.fraction = h.progress()
	case PhasePaused:
	default:
		panic(fmt.Sprintf("popover: Pause on %s animation %q", h.phase, h.Name))
	}
	return h.fraction
}

// SetFraction forces the fraction to clamp(f, 0, 1) and applies the value
// linearly between the endpoints. A NaN fraction is ignored. Reaching 1
// completes the handle. Panics unless the handle is paused.
func (h *AnimationHandle) SetFraction(f float64) {
	if h.phase != PhasePaused {
		panic(fmt.Sprintf("popover: SetFraction on %s animation %q", h.phase, h.Name))
	}
	if math.IsNaN(f) {
		return
	}
	h.scrub(f)
	if h.fraction >= 1 {
		h.complete(PositionEnd)
	}
}

func (h *AnimationHandle) scrub(f float64) {
	h.fraction = clamp01(f)
	h.setValue(lerp(h.from, h.to, h.fraction))
}

// ContinueToCompletion resumes playback from the current fraction to 1.
// With rateMultiplier > 0 the remaining distance takes rateMultiplier times
// the original duration; with 0 it takes the share of the duration that the
// remaining fraction represents, so the original average velocity is kept.
// The easing curve restarts from the current value.
// Panics on an idle or completed handle.
func (h *AnimationHandle) ContinueToCompletion(rateMultiplier float64) {
	h.resume(1, rateMultiplier)
}

// Reverse resumes playback from the current fraction back to 0 using the same
// timing rules as ContinueToCompletion. The handle then completes at
// PositionStart. Panics on an idle or completed handle.
func (h *AnimationHandle) Reverse(rateMultiplier float64) {
	h.resume(-1, rateMultiplier)
}

func (h *AnimationHandle) resume(dir, rateMultiplier float64) {
	switch h.phase {
	case PhaseRunning:
		h.fraction = h.progress()
	case PhasePaused:
	default:
		panic(fmt.Sprintf("popover: resume on %s animation %q", h.phase, h.Name))
	}
	end, endValue, pos := 1.0, h.to, PositionEnd
	remaining := 1 - h.fraction
	if dir < 0 {
		end, endValue, pos = 0, h.from, PositionStart
		remaining = h.fraction
	}
	if remaining <= 0 {
		h.fraction = end
		h.setValue(endValue)
		h.complete(pos)
		return
	}
	seconds := remaining * h.Duration
	if finite(rateMultiplier) && rateMultiplier > 0 {
		seconds = rateMultiplier * h.Duration
	}
	h.play(end, endValue, seconds)
}

// play starts a running segment that moves the fraction to end over seconds
// while easing the value from its current position to endValue.
func (h *AnimationHandle) play(end, endValue, seconds float64) {
	h.phase = PhaseRunning
	h.segFrom, h.segTo = h.fraction, end
	h.segSeconds = seconds
	h.elapsed = 0
	h.tween = gween.New(float32(h.value), float32(endValue), float32(seconds), h.fn)
}

// Update advances a running handle by dt seconds. Returns true when this call
// completed the handle.
func (h *AnimationHandle) Update(dt float64) bool {
	if h.phase != PhaseRunning || !(dt > 0) {
		return false
	}
	h.elapsed += dt
	if h.elapsed >= h.segSeconds {
		h.fraction = h.segTo
		if h.segTo >= 1 {
			h.setValue(h.to)
			h.complete(PositionEnd)
		} else {
			h.setValue(h.from)
			h.complete(PositionStart)
		}
		return true
	}
	h.fraction = lerp(h.segFrom, h.segTo, h.elapsed/h.segSeconds)
	v, _ := h.tween.Set(float32(h.elapsed))
	h.setValue(float64(v))
	return false
}

// progress returns where the current value sits between from and to.
func (h *AnimationHandle) progress() float64 {
	if h.to == h.from {
		return h.fraction
	}
	return clamp01((h.value - h.from) / (h.to - h.from))
}

func (h *AnimationHandle) setValue(v float64) {
	h.value = v
	if h.apply != nil {
		h.apply(v)
	}
}

func (h *AnimationHandle) complete(pos Position) {
	if h.phase == PhaseCompleted {
		return
	}
	h.phase = PhaseCompleted
	if h.onComplete != nil {
		h.onComplete(pos)
	}
}
