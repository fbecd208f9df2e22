package popover

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// nodeIDCounter is a plain counter ; popover is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is an element of the card's scene: the overlay, the card panel and its
// grab handle. Positions are relative to the parent; children move with it.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Geometry (local)
	X, Y          float64
	Width, Height float64
	CornerRadius  float64

	// Appearance
	Alpha   float64
	Color   Color
	Visible bool

	// Interaction
	Interactable bool
	HitShape     HitShape

	dirty bool
}

// NewNode creates a visible, opaque node of the given size.
func NewNode(name string, width, height float64) *Node {
	return &Node{
		ID:      nextNodeID(),
		Name:    name,
		Width:   width,
		Height:  height,
		Alpha:   1,
		Color:   ColorWhite,
		Visible: true,
		dirty:   true,
	}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("popover: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("popover: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	child.MarkDirty()
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// MarkDirty flags the node for redraw.
func (n *Node) MarkDirty() {
	n.dirty = true
}

// Dirty reports whether the node or any descendant changed since the last
// ClearDirty.
func (n *Node) Dirty() bool {
	if n.dirty {
		return true
	}
	for _, c := range n.children {
		if c.Dirty() {
			return true
		}
	}
	return false
}

// ClearDirty resets the dirty flag on the node and its descendants.
func (n *Node) ClearDirty() {
	n.dirty = false
	for _, c := range n.children {
		c.ClearDirty()
	}
}

// --- Coordinates ---

// WorldPosition returns the node's origin in scene coordinates.
func (n *Node) WorldPosition() Vec2 {
	var p Vec2
	for c := n; c != nil; c = c.Parent {
		p.X += c.X
		p.Y += c.Y
	}
	return p
}

// WorldToLocal converts scene coordinates to this node's local space.
func (n *Node) WorldToLocal(wx, wy float64) (float64, float64) {
	p := n.WorldPosition()
	return wx - p.X, wy - p.Y
}

// HitTest reports whether the scene point (wx, wy) lies inside the node.
// Uses HitShape if set; otherwise the node's Width x Height bounds.
// Hidden and non-interactable nodes are never hit.
func (n *Node) HitTest(wx, wy float64) bool {
	if !n.Interactable {
		return false
	}
	for c := n; c != nil; c = c.Parent {
		if !c.Visible {
			return false
		}
	}
	lx, ly := n.WorldToLocal(wx, wy)
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
