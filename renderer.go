package popover

// Renderer is the outbound boundary of the card. Each method receives a
// fraction in [0, 1] where 0 is the collapsed look and 1 the expanded look;
// the renderer interpolates between its own visual endpoints.
type Renderer interface {
	ApplyFrame(offsetFraction float64)
	ApplyCornerRadius(fraction float64)
	ApplyOverlayIntensity(fraction float64)
}

// DefaultProperties returns the animated properties of a Renderer: the frame,
// the corner radius and the overlay, each as its own handle. Values are
// clamped to [0, 1] so overshooting curves never leave the renderer's range.
func DefaultProperties(r Renderer) []Property {
	return []Property{
		{Name: "frame", Apply: func(f float64) { r.ApplyFrame(clamp01(f)) }},
		{Name: "cornerRadius", Apply: func(f float64) { r.ApplyCornerRadius(clamp01(f)) }},
		{Name: "overlay", Apply: func(f float64) { r.ApplyOverlayIntensity(clamp01(f)) }},
	}
}

// RendererFuncs adapts plain functions to Renderer. Nil funcs are skipped.
type RendererFuncs struct {
	Frame        func(float64)
	CornerRadius func(float64)
	Overlay      func(float64)
}

// ApplyFrame calls Frame.
func (r RendererFuncs) ApplyFrame(f float64) {
	if r.Frame != nil {
		r.Frame(f)
	}
}

// ApplyCornerRadius calls CornerRadius.
func (r RendererFuncs) ApplyCornerRadius(f float64) {
	if r.CornerRadius != nil {
		r.CornerRadius(f)
	}
}

// ApplyOverlayIntensity calls Overlay.
func (r RendererFuncs) ApplyOverlayIntensity(f float64) {
	if r.Overlay != nil {
		r.Overlay(f)
	}
}

// Layout describes the visual endpoints a NodeRenderer interpolates between.
type Layout struct {
	Width, Height float64 // screen size

	CollapsedExtent float64 // visible card height when collapsed
	ExpandedExtent  float64 // visible card height when expanded
	HandleHeight    float64 // height of the grab strip at the top of the card

	CornerRadius float64 // corner radius when expanded; 0 when collapsed
	OverlayAlpha float64 // overlay opacity when expanded; 0 when collapsed

	CardColor    Color
	HandleColor  Color
	OverlayColor Color
}

// DefaultLayout returns the standard card layout for a screen of
// the given size, with extents matching cfg.
func DefaultLayout(cfg Config, width, height float64) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		CollapsedExtent: cfg.CollapsedExtent,
		ExpandedExtent:  cfg.ExpandedExtent,
		HandleHeight:    cfg.CollapsedExtent,
		CornerRadius:    30,
		OverlayAlpha:    0.6,
		CardColor:       Color{R: 0.93, G: 0.93, B: 0.95, A: 1},
		HandleColor:     Color{R: 0.55, G: 0.55, B: 0.6, A: 1},
		OverlayColor:    Color{R: 0, G: 0, B: 0, A: 1},
	}
}

// CardY returns the card's top edge for an expansion in [0, 1].
func (l Layout) CardY(expansion float64) float64 {
	return l.Height - lerp(l.CollapsedExtent, l.ExpandedExtent, expansion)
}

// NodeRenderer applies fractions to the card and overlay nodes of a Scene.
type NodeRenderer struct {
	Layout  Layout
	Card    *Node
	Overlay *Node
}

// ApplyFrame moves the card between its collapsed and expanded offsets.
func (r *NodeRenderer) ApplyFrame(f float64) {
	r.Card.Y = r.Layout.CardY(f)
	r.Card.MarkDirty()
}

// ApplyCornerRadius rounds the card's top corners.
func (r *NodeRenderer) ApplyCornerRadius(f float64) {
	r.Card.CornerRadius = f * r.Layout.CornerRadius
	r.Card.MarkDirty()
}

// ApplyOverlayIntensity fades the overlay behind the card.
func (r *NodeRenderer) ApplyOverlayIntensity(f float64) {
	r.Overlay.Alpha = f * r.Layout.OverlayAlpha
	r.Overlay.Visible = f > 0
	r.Overlay.MarkDirty()
}
