package interval

import (
	"golang.org/x/exp/constraints" //nolint:exptostd // cmp.Ordered admits floats and strings.
)

// Endpoint is a type that may be used as an interval endpoint in a Tree.
type Endpoint = constraints.Integer

// Entry is a half-open range [Start, End) stored in a Tree with its Value.
type Entry[K Endpoint, V comparable] struct {
	Start K
	End   K
	Value V
}

// Tree is an augmented interval tree supporting overlap queries.
//
// The tree is backed by a red-black tree ordered by (Start, End) where each
// node also stores the maximum End in its subtree (maxEnd), enabling subtree
// pruning during overlap queries. Insert and Delete are O(log N); queries
// are O(log N + k) for k results.
type Tree[K Endpoint, V comparable] struct {
	root *node[K, V]
	size int
}

// node is an internal red-black tree node augmented with maxEnd.
type node[K Endpoint, V comparable] struct {
	entry       Entry[K, V]
	maxEnd      K
	left, right *node[K, V]
	parent      *node[K, V]
	color       color
}

// color represents the red-black tree node color.
type color bool

// Red-black tree color constants.
const (
	red   color = false
	black color = true
)

// NewTree creates an empty interval tree.
func NewTree[K Endpoint, V comparable]() *Tree[K, V] {
	return &Tree[K, V]{}
}

// Len returns the number of entries in the tree.
func (t *Tree[K, V]) Len() int {
	return t.size
}

// Clear removes all entries from the tree.
func (t *Tree[K, V]) Clear() {
	t.root = nil
	t.size = 0
}

// Insert adds [start, end) with the given value to the tree.
// Empty ranges (start >= end) can never overlap anything and are ignored;
// Insert reports whether the entry was stored.
func (t *Tree[K, V]) Insert(start, end K, value V) bool {
	if start >= end {
		return false
	}

	n := &node[K, V]{
		entry:  Entry[K, V]{Start: start, End: end, Value: value},
		maxEnd: end,
		color:  red,
	}

	t.bstInsert(n)
	t.insertFixup(n)
	t.size++

	return true
}

// Delete removes one entry matching [start, end) and value.
// Returns true if the entry was found and removed.
func (t *Tree[K, V]) Delete(start, end K, value V) bool {
	n := t.findExact(t.root, Entry[K, V]{Start: start, End: end, Value: value})
	if n == nil {
		return false
	}

	t.deleteNode(n)
	t.size--

	return true
}

// QueryOverlap returns every entry sharing at least one point with [start, end).
func (t *Tree[K, V]) QueryOverlap(start, end K) []Entry[K, V] {
	if t.root == nil || start >= end {
		return nil
	}

	var results []Entry[K, V]

	t.collectOverlap(t.root, start, end, &results)

	return results
}

// QueryPoint returns every entry containing point.
func (t *Tree[K, V]) QueryPoint(point K) []Entry[K, V] {
	if t.root == nil {
		return nil
	}

	var results []Entry[K, V]

	t.collectPoint(t.root, point, &results)

	return results
}

// Entries returns all entries in (Start, End) order.
func (t *Tree[K, V]) Entries() []Entry[K, V] {
	results := make([]Entry[K, V], 0, t.size)

	var walk func(n *node[K, V])

	walk = func(n *node[K, V]) {
		if n == nil {
			return
		}

		walk(n.left)
		results = append(results, n.entry)
		walk(n.right)
	}

	walk(t.root)

	return results
}

// bstInsert performs standard BST insertion by Start (then End for ties).
func (t *Tree[K, V]) bstInsert(n *node[K, V]) {
	if t.root == nil {
		t.root = n

		return
	}

	current := t.root

	for {
		current.maxEnd = max(current.maxEnd, n.entry.End)

		if compareEntries(n.entry, current.entry) < 0 {
			if current.left == nil {
				current.left = n
				n.parent = current

				return
			}

			current = current.left
		} else {
			if current.right == nil {
				current.right = n
				n.parent = current

				return
			}

			current = current.right
		}
	}
}

// findExact searches for an exact entry match in the subtree.
func (t *Tree[K, V]) findExact(n *node[K, V], target Entry[K, V]) *node[K, V] {
	if n == nil {
		return nil
	}

	c := compareEntries(target, n.entry)

	switch {
	case c < 0:
		return t.findExact(n.left, target)
	case c > 0:
		return t.findExact(n.right, target)
	case n.entry.Value == target.Value:
		return n
	}

	// Equal ranges with a different value may sit on either side after rotations.
	if found := t.findExact(n.left, target); found != nil {
		return found
	}

	return t.findExact(n.right, target)
}

// deleteNode unlinks z and restores the red-black invariants.
func (t *Tree[K, V]) deleteNode(z *node[K, V]) {
	removedColor := z.color

	var child, childParent *node[K, V]

	switch {
	case z.left == nil:
		child, childParent = z.right, z.parent
		t.transplant(z, z.right)
	case z.right == nil:
		child, childParent = z.left, z.parent
		t.transplant(z, z.left)
	default:
		succ := minimum(z.right)
		removedColor = succ.color
		child = succ.right

		if succ.parent == z {
			childParent = succ
		} else {
			childParent = succ.parent
			t.transplant(succ, succ.right)
			succ.right = z.right
			succ.right.parent = succ
		}

		t.transplant(z, succ)
		succ.left = z.left
		succ.left.parent = succ
		succ.color = z.color
	}

	t.propagateMaxEnd(childParent)

	if removedColor == black {
		t.deleteFixup(child, childParent)
	}
}

// transplant replaces node u with node v in the tree.
func (t *Tree[K, V]) transplant(u, v *node[K, V]) {
	switch {
	case u.parent == nil:
		t.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}

	if v != nil {
		v.parent = u.parent
	}
}

// insertFixup restores red-black properties after insertion.
func (t *Tree[K, V]) insertFixup(n *node[K, V]) {
	for n != t.root && nodeColor(n.parent) == red {
		parent := n.parent

		grandparent := parent.parent
		if grandparent == nil {
			break
		}

		n = t.insertFixupCase(n, parent, grandparent, parent == grandparent.left)
	}

	t.root.color = black
}

// insertFixupCase handles one side of the insert fixup.
// When leftCase is true, parent is grandparent.left; otherwise parent is grandparent.right.
func (t *Tree[K, V]) insertFixupCase(n, parent, grandparent *node[K, V], leftCase bool) *node[K, V] {
	uncle := childOf(grandparent, !leftCase)

	if nodeColor(uncle) == red {
		parent.color = black
		uncle.color = black
		grandparent.color = red

		return grandparent
	}

	// Inner child: rotate it to the outside first.
	if n == childOf(parent, !leftCase) {
		t.rotate(parent, leftCase)
		n, parent = parent, n
	}

	parent.color = black
	grandparent.color = red
	t.rotate(grandparent, !leftCase)

	return n
}

// deleteFixup restores red-black properties after removing a black node.
// x may be nil, so its parent is tracked explicitly.
func (t *Tree[K, V]) deleteFixup(x, parent *node[K, V]) {
	for x != t.root && nodeColor(x) == black && parent != nil {
		isLeft := x == parent.left
		sibling := childOf(parent, !isLeft)

		if nodeColor(sibling) == red {
			sibling.color = black
			parent.color = red
			t.rotate(parent, isLeft)

			sibling = childOf(parent, !isLeft)
		}

		if sibling == nil {
			x, parent = parent, parent.parent

			continue
		}

		if nodeColor(sibling.left) == black && nodeColor(sibling.right) == black {
			sibling.color = red
			x, parent = parent, parent.parent

			continue
		}

		if nodeColor(childOf(sibling, !isLeft)) == black {
			setBlack(childOf(sibling, isLeft))
			sibling.color = red
			t.rotate(sibling, !isLeft)

			sibling = childOf(parent, !isLeft)
		}

		sibling.color = parent.color
		parent.color = black

		setBlack(childOf(sibling, !isLeft))
		t.rotate(parent, isLeft)

		x, parent = t.root, nil
	}

	setBlack(x)
}

// rotate performs a rotation at node n. When left is true, rotates left;
// otherwise rotates right. Maintains the maxEnd augmentation.
func (t *Tree[K, V]) rotate(n *node[K, V], left bool) {
	var pivot *node[K, V]

	if left {
		pivot = n.right
		n.right = pivot.left

		if pivot.left != nil {
			pivot.left.parent = n
		}

		pivot.left = n
	} else {
		pivot = n.left
		n.left = pivot.right

		if pivot.right != nil {
			pivot.right.parent = n
		}

		pivot.right = n
	}

	pivot.parent = n.parent

	switch {
	case n.parent == nil:
		t.root = pivot
	case n == n.parent.left:
		n.parent.left = pivot
	default:
		n.parent.right = pivot
	}

	n.parent = pivot

	// n is now below pivot, so it is recalculated first.
	recalcMaxEnd(n)
	recalcMaxEnd(pivot)
}

// collectOverlap recursively collects entries overlapping [start, end).
func (t *Tree[K, V]) collectOverlap(n *node[K, V], start, end K, results *[]Entry[K, V]) {
	if n == nil || n.maxEnd <= start {
		return
	}

	t.collectOverlap(n.left, start, end, results)

	if n.entry.Start < end && n.entry.End > start {
		*results = append(*results, n.entry)
	}

	// Every entry on the right starts at or after n.entry.Start.
	if n.entry.Start >= end {
		return
	}

	t.collectOverlap(n.right, start, end, results)
}

// collectPoint recursively collects entries containing point.
func (t *Tree[K, V]) collectPoint(n *node[K, V], point K, results *[]Entry[K, V]) {
	if n == nil || n.maxEnd <= point {
		return
	}

	t.collectPoint(n.left, point, results)

	if n.entry.Start <= point && point < n.entry.End {
		*results = append(*results, n.entry)
	}

	if n.entry.Start > point {
		return
	}

	t.collectPoint(n.right, point, results)
}

// compareEntries orders entries by Start, then End.
func compareEntries[K Endpoint, V comparable](a, b Entry[K, V]) int {
	switch {
	case a.Start < b.Start:
		return -1
	case a.Start > b.Start:
		return 1
	case a.End < b.End:
		return -1
	case a.End > b.End:
		return 1
	}

	return 0
}

// nodeColor returns the color of a node, treating nil as black.
func nodeColor[K Endpoint, V comparable](n *node[K, V]) color {
	if n == nil {
		return black
	}

	return n.color
}

// setBlack sets a node's color to black if it is non-nil.
func setBlack[K Endpoint, V comparable](n *node[K, V]) {
	if n != nil {
		n.color = black
	}
}

// childOf returns n.left when left is true, otherwise n.right.
func childOf[K Endpoint, V comparable](n *node[K, V], left bool) *node[K, V] {
	if n == nil {
		return nil
	}

	if left {
		return n.left
	}

	return n.right
}

// recalcMaxEnd recalculates a node's maxEnd from its entry and children.
func recalcMaxEnd[K Endpoint, V comparable](n *node[K, V]) {
	if n == nil {
		return
	}

	m := n.entry.End

	if n.left != nil {
		m = max(m, n.left.maxEnd)
	}

	if n.right != nil {
		m = max(m, n.right.maxEnd)
	}

	n.maxEnd = m
}

// propagateMaxEnd recalculates maxEnd from the given node up to the root.
func (t *Tree[K, V]) propagateMaxEnd(n *node[K, V]) {
	for n != nil {
		recalcMaxEnd(n)
		n = n.parent
	}
}

// minimum returns the leftmost node in the subtree rooted at n.
func minimum[K Endpoint, V comparable](n *node[K, V]) *node[K, V] {
	for n.left != nil {
		n = n.left
	}

	return n
}
