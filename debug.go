package popover

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugLog prints a transition trace line to stderr.
func debugLog(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[popover] "+format+"\n", args...)
}

// SetDebugMode enables or disables debug mode. When enabled, transition
// events are traced to stderr and Draw overlays the controller's state.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	s.controller.cfg.Debug = enabled
}

// drawDebugHUD prints the controller snapshot and frame rate in the top-left
// corner.
func (s *Scene) drawDebugHUD(screen *ebiten.Image) {
	snap := s.controller.Snapshot()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f TPS: %.1f\nstate: %s\nmode: %s\nfraction: %.3f\ninterrupted: %.3f",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		snap.State, snap.Mode, snap.Fraction, snap.InterruptedProgress))
}
