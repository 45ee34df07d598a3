// Package spatial provides the quadtree used as the broad phase of the
// indexed collision strategy.
//
// The tree stores indices into an externally owned collection rather than
// pointers, so the collection may be reallocated between ticks. A tree is
// only valid for the collection state it was built from; it is meant to be
// rebuilt every tick and then discarded.
package spatial

import (
	"iter"

	"github.com/opd-ai/go-particles/pkg/physics"
)

// notConfined is the classification of a circle that crosses a midline
const notConfined = -1

// Collection is the indexed set of circles a QuadTree refers to
type Collection interface {
	Len() int
	Circle(i int) physics.Circle
}

// Config controls the subdivision policy
type Config struct {
	// Capacity is the local list length above which a node tries to split.
	Capacity int `json:"capacity"`
	// MaxDepth is the deepest level a node may split at; nodes at this level
	// keep every particle they receive.
	MaxDepth int `json:"maxDepth"`
}

// DefaultConfig returns capacity 4 and maximum depth 8
func DefaultConfig() Config {
	return Config{
		Capacity: 4,
		MaxDepth: 8,
	}
}

// QuadTree is a region quadtree over circular items
type QuadTree struct {
	items  Collection
	config Config
	root   *node
}

// node is a single quadrant. It has either no children or exactly four,
// ordered NE, NW, SW, SE.
type node struct {
	level    int
	bounds   physics.Rect
	items    []int
	children *[4]node
}

// New creates an empty tree spanning bounds
func New(bounds physics.Rect, items Collection, config Config) *QuadTree {
	if config.Capacity < 1 {
		config.Capacity = 1
	}
	if config.MaxDepth < 0 {
		config.MaxDepth = 0
	}

	return &QuadTree{
		items:  items,
		config: config,
		root:   &node{bounds: bounds},
	}
}

// Build creates a tree spanning bounds and inserts every item of the collection
func Build(bounds physics.Rect, items Collection, config Config) *QuadTree {
	qt := New(bounds, items, config)
	for i := 0; i < items.Len(); i++ {
		qt.Insert(i)
	}
	return qt
}

// Config returns the subdivision policy in effect
func (qt *QuadTree) Config() Config {
	return qt.config
}

// Insert adds the item at index i
func (qt *QuadTree) Insert(i int) {
	qt.root.insert(qt, i)
}

// Retrieve returns the indices of every item whose circle could overlap the
// circle of item i. The result contains i itself, never contains an index
// twice and may contain items that do not actually overlap.
func (qt *QuadTree) Retrieve(i int) []int {
	return qt.root.retrieve(qt.items.Circle(i), nil)
}

// RetrieveInto is Retrieve appending into dst, for callers that reuse a buffer
func (qt *QuadTree) RetrieveInto(dst []int, i int) []int {
	return qt.root.retrieve(qt.items.Circle(i), dst)
}

// Query returns candidate indices for an arbitrary circle
func (qt *QuadTree) Query(c physics.Circle) []int {
	return qt.root.retrieve(c, nil)
}

// Clear removes every item and child node, keeping the root bounds
func (qt *QuadTree) Clear() {
	qt.root = &node{bounds: qt.root.bounds}
}

// Bounds yields the rectangle of every node in pre-order. The sequence is
// lazy and may be iterated any number of times.
func (qt *QuadTree) Bounds() iter.Seq[physics.Rect] {
	return func(yield func(physics.Rect) bool) {
		qt.root.walk(func(n *node) bool {
			return yield(n.bounds)
		})
	}
}

// Len returns the number of items stored in the tree
func (qt *QuadTree) Len() int {
	return qt.Stats().Items
}

// Stats describes the shape of a tree
type Stats struct {
	Nodes    int // total node count including the root
	Depth    int // deepest level reached
	Items    int // stored item count
	MaxLocal int // longest local list of any node
	Pending  int // items held by split nodes because they straddle a midline
}

// Stats walks the tree and summarizes it
func (qt *QuadTree) Stats() Stats {
	var s Stats
	qt.root.walk(func(n *node) bool {
		s.Nodes++
		s.Items += len(n.items)
		s.Depth = max(s.Depth, n.level)
		s.MaxLocal = max(s.MaxLocal, len(n.items))
		if n.split() {
			s.Pending += len(n.items)
		}
		return true
	})
	return s
}

func (n *node) split() bool {
	return n.children != nil
}

// subdivide creates the four child quadrants
func (n *node) subdivide() {
	quadrants := n.bounds.Quadrants()
	n.children = &[4]node{}
	for q := range quadrants {
		n.children[q] = node{
			level:  n.level + 1,
			bounds: quadrants[q],
		}
	}
}

// classify returns the quadrant that fully contains the circle's bounding
// square, or notConfined when the square touches or crosses a midline.
func (n *node) classify(c physics.Circle) int {
	mid := n.bounds.Center()

	west := c.Center.X+c.Radius < mid.X
	east := c.Center.X-c.Radius > mid.X
	north := c.Center.Y+c.Radius < mid.Y
	south := c.Center.Y-c.Radius > mid.Y

	switch {
	case north && east:
		return physics.NorthEast
	case north && west:
		return physics.NorthWest
	case south && west:
		return physics.SouthWest
	case south && east:
		return physics.SouthEast
	default:
		return notConfined
	}
}

func (n *node) insert(qt *QuadTree, i int) {
	if n.split() {
		if q := n.classify(qt.items.Circle(i)); q != notConfined {
			n.children[q].insert(qt, i)
			return
		}
	}

	n.items = append(n.items, i)

	if len(n.items) <= qt.config.Capacity || n.level >= qt.config.MaxDepth {
		return
	}

	if !n.split() {
		n.subdivide()
	}

	// Push down whatever fits a single quadrant; straddlers stay here.
	kept := n.items[:0]
	for _, j := range n.items {
		if q := n.classify(qt.items.Circle(j)); q != notConfined {
			n.children[q].insert(qt, j)
		} else {
			kept = append(kept, j)
		}
	}
	n.items = kept
}

func (n *node) retrieve(c physics.Circle, dst []int) []int {
	dst = append(dst, n.items...)

	if !n.split() {
		return dst
	}

	if q := n.classify(c); q != notConfined {
		return n.children[q].retrieve(c, dst)
	}

	for q := range n.children {
		dst = n.children[q].retrieve(c, dst)
	}
	return dst
}

// walk visits nodes in pre-order until visit returns false
func (n *node) walk(visit func(*node) bool) bool {
	if !visit(n) {
		return false
	}
	if n.split() {
		for q := range n.children {
			if !n.children[q].walk(visit) {
				return false
			}
		}
	}
	return true
}
