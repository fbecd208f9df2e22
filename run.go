package popover

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// gameShell adapts a Scene to ebiten.Game.
type gameShell struct {
	scene *Scene
	cfg   RunConfig
}

func (g *gameShell) Update() error {
	return g.scene.Update()
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.cfg.ShowFPS && !g.scene.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS()))
	}
}

func (g *gameShell) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives scene with live mouse and touch input until
// the window is closed or the scene's update func returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = int(scene.layout.Width)
	}
	if cfg.Height <= 0 {
		cfg.Height = int(scene.layout.Height)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	scene.livePointer = true
	return ebiten.RunGame(&gameShell{scene: scene, cfg: cfg})
}
