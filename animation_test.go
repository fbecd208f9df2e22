package popover

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

const frameDT = 1.0 / 60

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

// newLinearHandle returns an idle handle animating 0 -> 100 over 1s and a
// pointer to the last value it applied, plus a completion counter.
func newLinearHandle() (*AnimationHandle, *float64, *[]Position) {
	var applied float64
	var done []Position
	h := NewAnimationHandle(Expanded, 1.0, 1, 0, 100, ease.Linear,
		func(v float64) { applied = v },
		func(p Position) { done = append(done, p) })
	return h, &applied, &done
}

func TestAnimationHandleReachesTarget(t *testing.T) {
	h, applied, done := newLinearHandle()
	h.Start()

	// Exact halves avoid float accumulation drift.
	h.Update(0.5)
	if h.Phase() != PhaseRunning {
		t.Fatalf("phase = %s, want running", h.Phase())
	}
	if math.Abs(*applied-50) > 0.01 {
		t.Errorf("value = %f, want ~50 at halfway", *applied)
	}
	if !h.Update(0.5) {
		t.Fatal("expected Update to report completion")
	}
	if *applied != 100 {
		t.Errorf("value = %f, want exactly 100", *applied)
	}
	if len(*done) != 1 || (*done)[0] != PositionEnd {
		t.Fatalf("completions = %v, want [end]", *done)
	}

	// Updates after completion are no-ops.
	h.Update(0.5)
	if len(*done) != 1 {
		t.Errorf("completion fired %d times, want 1", len(*done))
	}
}

func TestAnimationHandlePauseFreezes(t *testing.T) {
	h, applied, _ := newLinearHandle()
	h.Start()
	h.Update(0.25)

	f := h.Pause()
	if math.Abs(f-0.25) > 1e-9 {
		t.Errorf("Pause() = %f, want 0.25", f)
	}
	before := *applied
	h.Update(0.5)
	if *applied != before || h.Fraction() != f {
		t.Error("paused handle advanced on Update")
	}

	// Pausing again is a no-op.
	if got := h.Pause(); got != f {
		t.Errorf("second Pause() = %f, want %f", got, f)
	}
}

func TestAnimationHandleSetFraction(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"inside", 0.4, 0.4},
		{"below zero", -0.5, 0},
		{"above one is forward completion", 1.7, 1},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, applied, _ := newLinearHandle()
			h.Start()
			h.Pause()
			h.SetFraction(tt.in)
			if h.Fraction() != tt.want {
				t.Errorf("Fraction() = %f, want %f", h.Fraction(), tt.want)
			}
			if math.Abs(*applied-tt.want*100) > 0.01 {
				t.Errorf("applied = %f, want %f", *applied, tt.want*100)
			}
		})
	}
}

func TestAnimationHandleSetFractionIdempotent(t *testing.T) {
	h, applied, done := newLinearHandle()
	h.Start()
	h.Pause()

	h.SetFraction(0.3)
	first := *applied
	for i := 0; i < 1000; i++ {
		h.SetFraction(0.3)
	}
	if *applied != first {
		t.Errorf("value drifted from %f to %f", first, *applied)
	}

	h.SetFraction(1)
	if h.Phase() != PhaseCompleted {
		t.Fatalf("phase = %s, want completed after SetFraction(1)", h.Phase())
	}
	if len(*done) != 1 {
		t.Errorf("completions = %d, want 1", len(*done))
	}
}

func TestAnimationHandleSetFractionIgnoresNaN(t *testing.T) {
	h, applied, _ := newLinearHandle()
	h.Start()
	h.Pause()
	h.SetFraction(0.6)
	h.SetFraction(math.NaN())
	if h.Fraction() != 0.6 || math.IsNaN(*applied) {
		t.Errorf("NaN changed state: fraction=%f value=%f", h.Fraction(), *applied)
	}
}

func TestAnimationHandleContinueUsesRemainingTime(t *testing.T) {
	h, _, done := newLinearHandle()
	h.Start()
	h.Pause()
	h.SetFraction(0.75)

	// Rate 0: remaining quarter of the fraction takes a quarter of 1s.
	h.ContinueToCompletion(0)
	h.Update(0.125)
	if h.Phase() != PhaseRunning {
		t.Fatal("completed too early")
	}
	if math.Abs(h.Fraction()-0.875) > 1e-9 {
		t.Errorf("fraction = %f, want 0.875", h.Fraction())
	}
	h.Update(0.125)
	if len(*done) != 1 {
		t.Fatalf("completions = %d, want 1 after 0.25s", len(*done))
	}
}

func TestAnimationHandleContinueRateMultiplier(t *testing.T) {
	h, _, done := newLinearHandle()
	h.Start()
	h.Pause()
	h.SetFraction(0.5)

	// Multiplier 2: remaining half takes 2 x 1s.
	h.ContinueToCompletion(2)
	h.Update(1)
	if math.Abs(h.Fraction()-0.75) > 1e-9 {
		t.Errorf("fraction = %f, want 0.75 after 1s", h.Fraction())
	}
	h.Update(1)
	if len(*done) != 1 {
		t.Fatal("expected completion after 2s")
	}
}

func TestAnimationHandleReverse(t *testing.T) {
	h, applied, done := newLinearHandle()
	h.Start()
	h.Update(0.5)
	h.Pause()

	h.Reverse(0)
	if !h.Reversed() {
		t.Fatal("expected Reversed() after Reverse")
	}
	h.Update(0.25)
	if math.Abs(*applied-25) > 0.01 {
		t.Errorf("value = %f, want ~25", *applied)
	}
	h.Update(0.25)
	if len(*done) != 1 || (*done)[0] != PositionStart {
		t.Fatalf("completions = %v, want [start]", *done)
	}
	if *applied != 0 {
		t.Errorf("value = %f, want exactly 0", *applied)
	}
}

func TestAnimationHandleContinueAtEndCompletesImmediately(t *testing.T) {
	h, _, done := newLinearHandle()
	h.Start()
	h.Pause()
	h.Reverse(0) // already at 0
	if len(*done) != 1 || (*done)[0] != PositionStart {
		t.Fatalf("completions = %v, want [start]", *done)
	}
}

func TestAnimationHandleMisusePanics(t *testing.T) {
	running, _, _ := newLinearHandle()
	running.Start()
	mustPanic(t, "SetFraction on running", func() { running.SetFraction(0.5) })
	mustPanic(t, "Start twice", func() { running.Start() })

	idle, _, _ := newLinearHandle()
	mustPanic(t, "Pause on idle", func() { idle.Pause() })
	mustPanic(t, "Continue on idle", func() { idle.ContinueToCompletion(0) })

	completed, _, _ := newLinearHandle()
	completed.Start()
	completed.Update(2)
	mustPanic(t, "Pause on completed", func() { completed.Pause() })
	mustPanic(t, "Continue on completed", func() { completed.ContinueToCompletion(0) })
	mustPanic(t, "SetFraction on completed", func() { completed.SetFraction(0.5) })

	mustPanic(t, "zero duration", func() {
		NewAnimationHandle(Expanded, 0, 1, 0, 1, nil, nil, nil)
	})
	mustPanic(t, "NaN duration", func() {
		NewAnimationHandle(Expanded, math.NaN(), 1, 0, 1, nil, nil, nil)
	})
}

func TestAnimationHandleIgnoresBadTimeSteps(t *testing.T) {
	h, _, _ := newLinearHandle()
	h.Start()
	h.Update(-1)
	h.Update(math.NaN())
	h.Update(0)
	if h.Fraction() != 0 {
		t.Errorf("fraction = %f after invalid steps, want 0", h.Fraction())
	}
}

func TestAnimationHandleScrubIsLinear(t *testing.T) {
	var applied float64
	h := NewAnimationHandle(Expanded, 1, 1, 0, 100, SpringEase(1),
		func(v float64) { applied = v }, nil)
	h.Start()
	h.Pause()
	for _, f := range []float64{0.1, 0.25, 0.5, 0.9} {
		h.SetFraction(f)
		if math.Abs(applied-f*100) > 1e-9 {
			t.Errorf("SetFraction(%v): value = %f, want %f", f, applied, f*100)
		}
	}
}

func TestAnimationHandlePauseMidCurveKeepsValue(t *testing.T) {
	var applied float64
	h := NewAnimationHandle(Expanded, 1, 1, 0, 100, SpringEase(1),
		func(v float64) { applied = v }, nil)
	h.Start()
	h.Update(0.25)
	onScreen := applied

	// The spring leads a linear ramp, so the value is past a quarter.
	f := h.Pause()
	if math.Abs(f*100-onScreen) > 1e-9 {
		t.Errorf("Pause() = %f, want the value's position %f", f, onScreen/100)
	}
	h.SetFraction(f)
	if math.Abs(applied-onScreen) > 1e-9 {
		t.Errorf("SetFraction(Pause()) moved the value from %f to %f", onScreen, applied)
	}
}

func TestAnimationHandleResumeEasesFromValue(t *testing.T) {
	var values []float64
	h := NewAnimationHandle(Expanded, 1, 1, 0, 100, SpringEase(1),
		func(v float64) { values = append(values, v) }, nil)
	h.Start()
	h.Pause()
	h.SetFraction(0.4)
	values = values[:0]

	h.ContinueToCompletion(0)
	for i := 0; i < 100 && h.Phase() == PhaseRunning; i++ {
		h.Update(frameDT)
	}
	if h.Phase() != PhaseCompleted {
		t.Fatal("resumed handle did not complete")
	}
	prev := 40.0
	for i, v := range values {
		if v < prev-1e-4 || v > 100 {
			t.Fatalf("value %d = %f after %f, want monotonic from 40 to 100", i, v, prev)
		}
		prev = v
	}
	if last := values[len(values)-1]; last != 100 {
		t.Errorf("final value = %f, want exactly 100", last)
	}
	// Remaining 60% of 1s at 60 fps.
	if n := len(values); n < 36 || n > 37 {
		t.Errorf("resume took %d frames, want 36", n)
	}
}

func TestAnimationHandleDefaultCurveFromDamping(t *testing.T) {
	tests := []struct {
		name    string
		damping float64
		want    ease.TweenFunc
	}{
		{"critical spring", 1, SpringEase(1)},
		{"underdamped spring", 0.4, SpringEase(0.4)},
		{"no damping is linear", 0, ease.Linear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var applied float64
			h := NewAnimationHandle(Expanded, 1, tt.damping, 0, 1, nil,
				func(v float64) { applied = v }, nil)
			h.Start()
			h.Update(0.3)
			want := float64(tt.want(0.3, 0, 1, 1))
			if math.Abs(applied-want) > 1e-6 {
				t.Errorf("value at 0.3s = %f, want %f", applied, want)
			}
		})
	}
}

func TestSpringEaseEndpoints(t *testing.T) {
	for _, damping := range []float64{0.3, 0.7, 1, 2} {
		fn := SpringEase(damping)
		if got := fn(0, 0, 1, 1); got != 0 {
			t.Errorf("damping %v: f(0) = %f, want 0", damping, got)
		}
		if got := fn(1, 0, 1, 1); got != 1 {
			t.Errorf("damping %v: f(1) = %f, want 1", damping, got)
		}
		if got := fn(2, 10, 5, 2); got != 15 {
			t.Errorf("damping %v: scaled end = %f, want 15", damping, got)
		}
	}
}

func TestSpringEaseCriticalIsMonotonic(t *testing.T) {
	fn := SpringEase(1)
	prev := float32(0)
	for i := 1; i <= 100; i++ {
		v := fn(float32(i)/100, 0, 1, 1)
		if v < prev {
			t.Fatalf("critically damped curve decreased at %d%%: %f < %f", i, v, prev)
		}
		if v > 1 {
			t.Fatalf("critically damped curve overshot at %d%%: %f", i, v)
		}
		prev = v
	}
	// Springs lead a linear ramp early on.
	if mid := fn(0.5, 0, 1, 1); mid <= 0.5 {
		t.Errorf("f(0.5) = %f, want > 0.5", mid)
	}
}

func TestSpringEaseUnderdampedOvershoots(t *testing.T) {
	fn := SpringEase(0.3)
	var peak float32
	for i := 0; i <= 100; i++ {
		peak = max(peak, fn(float32(i)/100, 0, 1, 1))
	}
	if peak <= 1 {
		t.Errorf("peak = %f, want overshoot above 1", peak)
	}
}

func TestEasingByName(t *testing.T) {
	if _, ok := EasingByName("outCubic"); !ok {
		t.Error("outCubic not registered")
	}
	if _, ok := EasingByName("wobble"); ok {
		t.Error("unexpected easing wobble")
	}
}

func TestAnimationHandleUpdateZeroAlloc(t *testing.T) {
	var sink float64
	h := NewAnimationHandle(Expanded, 1000, 1, 0, 1, SpringEase(1), func(v float64) { sink = v }, nil)
	h.Start()

	// Warm up.
	h.Update(0.001)

	result := testing.AllocsPerRun(100, func() {
		h.Update(0.001)
	})
	if result > 0 {
		t.Errorf("AnimationHandle.Update allocated %f times per run, want 0", result)
	}
	_ = sink
}
