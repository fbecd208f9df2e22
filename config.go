package popover

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("popover: invalid config")

const (
	defaultNominalDuration = 0.9 // seconds
	defaultDampingRatio    = 1.0 // critically damped
	defaultCollapsedRatio  = 0.1
	defaultExpandedRatio   = 0.85
	defaultScreenHeight    = 480
)

// Config holds the construction parameters of a Controller.
type Config struct {
	// NominalDuration is the length in seconds of a full, uninterrupted
	// transition (tap-triggered).
	NominalDuration float64

	// DampingRatio shapes the default spring curve. 1 is critically damped,
	// values below 1 overshoot (output is clamped to [0, 1]), values above 1
	// approach more slowly.
	DampingRatio float64

	// CollapsedExtent and ExpandedExtent are the visible card heights of the
	// two states. Their difference is the travel distance that pan deltas are
	// normalized by.
	CollapsedExtent float64
	ExpandedExtent  float64

	// Initial is the state the card starts in.
	Initial CardState

	// Easing names the default curve: "" or "spring" for the damped spring,
	// otherwise any name accepted by EasingByName.
	Easing string

	// Properties overrides the animated properties. When nil the controller
	// animates DefaultProperties of its Renderer.
	Properties []Property

	// Sink receives transition lifecycle events. Optional.
	Sink EventSink

	// Debug prints transition traces to stderr.
	Debug bool
}

// DefaultConfig returns the standard configuration: a 0.9 s
// critically damped transition between 10% and 85% of a 480 px screen.
func DefaultConfig() Config {
	return Config{
		NominalDuration: defaultNominalDuration,
		DampingRatio:    defaultDampingRatio,
		CollapsedExtent: defaultScreenHeight * defaultCollapsedRatio,
		ExpandedExtent:  defaultScreenHeight * defaultExpandedRatio,
	}
}

// WithScreenHeight returns a copy of c whose extents are derived from the
// screen height the same way DefaultConfig derives them.
func (c Config) WithScreenHeight(h float64) Config {
	c.CollapsedExtent = h * defaultCollapsedRatio
	c.ExpandedExtent = h * defaultExpandedRatio
	return c
}

// Travel returns the distance the card moves between its two states.
func (c Config) Travel() float64 {
	return c.ExpandedExtent - c.CollapsedExtent
}

// Validate reports the first problem with c, wrapped around ErrInvalidConfig.
func (c Config) Validate() error {
	if !finite(c.NominalDuration) || c.NominalDuration <= 0 {
		return fmt.Errorf("%w: nominal duration must be > 0, got %v", ErrInvalidConfig, c.NominalDuration)
	}
	if !finite(c.DampingRatio) || c.DampingRatio <= 0 {
		return fmt.Errorf("%w: damping ratio must be > 0, got %v", ErrInvalidConfig, c.DampingRatio)
	}
	if !finite(c.CollapsedExtent) || c.CollapsedExtent < 0 {
		return fmt.Errorf("%w: collapsed extent must be >= 0, got %v", ErrInvalidConfig, c.CollapsedExtent)
	}
	if !finite(c.ExpandedExtent) || c.ExpandedExtent <= c.CollapsedExtent {
		return fmt.Errorf("%w: expanded extent %v must exceed collapsed extent %v",
			ErrInvalidConfig, c.ExpandedExtent, c.CollapsedExtent)
	}
	if c.Initial != Collapsed && c.Initial != Expanded {
		return fmt.Errorf("%w: unknown initial state %v", ErrInvalidConfig, c.Initial)
	}
	if c.Easing != "" && c.Easing != easingSpring {
		if _, ok := EasingByName(c.Easing); !ok {
			return fmt.Errorf("%w: unknown easing %q", ErrInvalidConfig, c.Easing)
		}
	}
	for i, p := range c.Properties {
		if p.Apply == nil {
			return fmt.Errorf("%w: property %d (%q) has no Apply func", ErrInvalidConfig, i, p.Name)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
