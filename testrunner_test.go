package popover

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr string
	}{
		{"invalid json", `{"steps": [`, "parse test script"},
		{"unknown action", `{"steps": [{"action": "swipe"}]}`, `unknown action "swipe"`},
		{"bad state", `{"steps": [{"action": "expect", "state": "open"}]}`, "step 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.script))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadTestScriptEmpty(t *testing.T) {
	for _, script := range []string{`{}`, `{"steps": []}`} {
		if _, err := LoadTestScript([]byte(script)); !errors.Is(err, ErrEmptyScript) {
			t.Errorf("LoadTestScript(%s) = %v, want ErrEmptyScript", script, err)
		}
	}
}

// runScript attaches the script to a fresh scene and steps until it is done.
func runScript(t *testing.T, script string) (*Scene, *TestRunner) {
	t.Helper()
	runner, err := LoadTestScript([]byte(script))
	if err != nil {
		t.Fatalf("LoadTestScript: %v", err)
	}
	s := newTestScene(t)
	s.SetTestRunner(runner)
	for i := 0; i < 1000 && !runner.Done(); i++ {
		if err := s.Step(frameDT); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if !runner.Done() {
		t.Fatal("script did not finish within 1000 frames")
	}
	return s, runner
}

func TestTestRunnerRoundTrip(t *testing.T) {
	const script = `{"steps": [
		{"action": "tap", "x": 320, "y": 450},
		{"action": "wait", "frames": 80},
		{"action": "expect", "state": "expanded"},
		{"action": "drag", "fromX": 320, "fromY": 90, "toX": 320, "toY": 306, "frames": 10},
		{"action": "wait", "frames": 80},
		{"action": "expect", "state": "collapsed"}
	]}`
	s, runner := runScript(t, script)
	if err := runner.Err(); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if s.Controller().State() != Collapsed {
		t.Errorf("final state = %s, want collapsed", s.Controller().State())
	}
}

func TestTestRunnerPressMoveRelease(t *testing.T) {
	const script = `{"steps": [
		{"action": "press", "x": 320, "y": 450},
		{"action": "move", "x": 320, "y": 350},
		{"action": "move", "x": 320, "y": 200},
		{"action": "release", "x": 320, "y": 200},
		{"action": "wait", "frames": 80},
		{"action": "expect", "state": "expanded"}
	]}`
	_, runner := runScript(t, script)
	if err := runner.Err(); err != nil {
		t.Fatalf("script failed: %v", err)
	}
}

func TestTestRunnerCancelKeepsState(t *testing.T) {
	const script = `{"steps": [
		{"action": "press", "x": 320, "y": 450},
		{"action": "move", "x": 320, "y": 420},
		{"action": "cancel"},
		{"action": "wait", "frames": 80},
		{"action": "expect", "state": "collapsed"}
	]}`
	_, runner := runScript(t, script)
	if err := runner.Err(); err != nil {
		t.Fatalf("script failed: %v", err)
	}
}

func TestTestRunnerFailedExpectation(t *testing.T) {
	const script = `{"steps": [
		{"action": "expect", "state": "expanded"},
		{"action": "tap", "x": 320, "y": 450}
	]}`
	s, runner := runScript(t, script)
	err := runner.Err()
	if err == nil {
		t.Fatal("expected failed expectation")
	}
	if !strings.Contains(err.Error(), "expected expanded, got collapsed") {
		t.Errorf("err = %q", err)
	}
	if s.PendingInjections() != 0 || s.Controller().Mode() != ModeIdle {
		t.Error("steps after a failed expectation should not run")
	}
}
