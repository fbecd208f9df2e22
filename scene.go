package popover

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the card's node tree, the
// controller, the gesture recognizer and the input state.
type Scene struct {
	// ClearColor fills the screen before the nodes are drawn. A zero alpha
	// leaves the screen untouched.
	ClearColor Color

	// ScreenshotDir is where Screenshot writes PNG files. Defaults to
	// "screenshots" when empty.
	ScreenshotDir string

	root    *Node
	overlay *Node
	card    *Node
	handle  *Node

	layout     Layout
	controller *Controller
	renderer   *NodeRenderer
	recognizer *GestureRecognizer
	debug      bool

	// Input state
	livePointer bool
	touchIDs    []ebiten.TouchID
	touchID     ebiten.TouchID
	touchActive bool
	lastTouch   Vec2
	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner

	screenshotQueue []string

	updateFunc func() error
	frame      uint64

	// Render buffers
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewScene builds the overlay, card and handle nodes described by layout,
// wires a NodeRenderer and a Controller configured by cfg, and attaches a
// GestureRecognizer to the handle. The layout's extents are taken from cfg.
func NewScene(cfg Config, layout Layout) (*Scene, error) {
	layout.CollapsedExtent = cfg.CollapsedExtent
	layout.ExpandedExtent = cfg.ExpandedExtent
	if layout.HandleHeight <= 0 {
		layout.HandleHeight = cfg.CollapsedExtent
	}

	root := NewNode("root", layout.Width, layout.Height)

	overlay := NewNode("overlay", layout.Width, layout.Height)
	overlay.Color = layout.OverlayColor
	root.AddChild(overlay)

	card := NewNode("card", layout.Width, layout.ExpandedExtent)
	card.Color = layout.CardColor
	root.AddChild(card)

	handle := NewNode("handle", layout.Width, layout.HandleHeight)
	handle.Color = Color{}
	handle.Interactable = true
	handle.HitShape = HitRect{Width: layout.Width, Height: layout.HandleHeight}
	card.AddChild(handle)

	grip := NewNode("grip", 40, 5)
	grip.X = (layout.Width - grip.Width) / 2
	grip.Y = 10
	grip.CornerRadius = 2.5
	grip.Color = layout.HandleColor
	handle.AddChild(grip)

	s := &Scene{
		root:    root,
		overlay: overlay,
		card:    card,
		handle:  handle,
		layout:  layout,
		debug:   cfg.Debug,
	}
	s.renderer = &NodeRenderer{Layout: layout, Card: card, Overlay: overlay}

	ctrl, err := NewController(cfg, s.renderer)
	if err != nil {
		return nil, err
	}
	s.controller = ctrl
	s.recognizer = NewGestureRecognizer(ctrl, handle)
	return s, nil
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node { return s.root }

// Card returns the card panel node.
func (s *Scene) Card() *Node { return s.card }

// Handle returns the grab strip node that receives taps and pans.
func (s *Scene) Handle() *Node { return s.handle }

// Overlay returns the full-screen node dimmed behind the expanded card.
func (s *Scene) Overlay() *Node { return s.overlay }

// Layout returns the layout the scene was built with.
func (s *Scene) Layout() Layout { return s.layout }

// Controller returns the scene's transition controller.
func (s *Scene) Controller() *Controller { return s.controller }

// Recognizer returns the gesture recognizer attached to the handle.
func (s *Scene) Recognizer() *GestureRecognizer { return s.recognizer }

// Frame returns the number of steps taken so far.
func (s *Scene) Frame() uint64 { return s.frame }

// SetUpdateFunc registers a callback run at the end of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update advances the scene by one tick of Ebitengine's TPS.
func (s *Scene) Update() error {
	return s.Step(1.0 / float64(ebiten.TPS()))
}

// Step runs one frame of dt seconds: the test runner, then one injected
// pointer event (or live input when running in a window), then animation.
func (s *Scene) Step(dt float64) error {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if !s.processInjectedInput() && s.livePointer {
		s.pollPointer()
	}
	s.controller.Update(dt)
	s.frame++
	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}
