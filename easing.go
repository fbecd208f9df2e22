package popover

import (
	"github.com/charmbracelet/harmonica"
	"github.com/tanema/gween/ease"
)

const (
	easingSpring = "spring"

	// springSamples is the resolution of a precomputed spring curve.
	springSamples = 120
	// springFrequency is the angular frequency of the spring in units of
	// 1/duration. At damping 1 the curve is within 0.1% of rest at t = 1.
	springFrequency = 10.0
)

var namedEasings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"outExpo":    ease.OutExpo,
	"outBack":    ease.OutBack,
	"outBounce":  ease.OutBounce,
}

// EasingByName returns the gween easing function registered under name.
func EasingByName(name string) (ease.TweenFunc, bool) {
	fn, ok := namedEasings[name]
	return fn, ok
}

// springCurve is a damped spring released from rest at 0 toward 1, sampled
// over the normalized interval [0, 1].
type springCurve [springSamples + 1]float64

func newSpringCurve(dampingRatio float64) *springCurve {
	var c springCurve
	s := harmonica.NewSpring(1.0/springSamples, springFrequency, dampingRatio)
	var pos, vel float64
	for i := 1; i <= springSamples; i++ {
		pos, vel = s.Update(pos, vel, 1)
		c[i] = pos
	}
	// Spread the residual so the curve lands exactly on 1 at t = 1.
	residual := 1 - c[springSamples]
	for i := 1; i <= springSamples; i++ {
		c[i] += residual * float64(i) / springSamples
	}
	c[springSamples] = 1
	return &c
}

func (c *springCurve) at(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	x := p * springSamples
	i := int(x)
	return lerp(c[i], c[i+1], x-float64(i))
}

// SpringEase returns a gween easing function following a damped spring with
// the given damping ratio, normalized to settle exactly at the end of the
// tween's duration.
func SpringEase(dampingRatio float64) ease.TweenFunc {
	curve := newSpringCurve(dampingRatio)
	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		return b + c*float32(curve.at(float64(t/d)))
	}
}

// defaultTiming resolves the curve configured for cfg.
func defaultTiming(cfg Config) ease.TweenFunc {
	if cfg.Easing == "" || cfg.Easing == easingSpring {
		return SpringEase(cfg.DampingRatio)
	}
	if fn, ok := EasingByName(cfg.Easing); ok {
		return fn
	}
	return SpringEase(cfg.DampingRatio)
}
