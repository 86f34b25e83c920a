// Package rtree implements a bounding-box spatial index over fixed-
// dimensional points with bulk (sort-tile-recursive) and incremental
// construction and k-nearest-neighbor queries.
//
// Nodes live in an arena and reference each other by integer index rather
// than pointer, so a fully built tree can serve concurrent read-only
// queries. Writes must be serialized by the caller.
package rtree

import (
	"math"
	"sort"
)

const (
	defaultMaxEntries = 16
	nilRef            = int32(-1)
)

// Options contains configuration options for the index.
type Options struct {
	// Dimension is the fixed point dimensionality for this index.
	// It must be > 0 and is enforced for all inserts and queries.
	Dimension int

	// MaxEntries is the node fanout. Nodes exceeding it are split.
	MaxEntries int

	// MinEntries is the minimum fill of a node after a split.
	// Defaults to MaxEntries * 2 / 5.
	MinEntries int
}

// DefaultOptions contains the default configuration options for the index.
var DefaultOptions = Options{
	Dimension:  2,
	MaxEntries: defaultMaxEntries,
}

// node is one arena slot. Leaf nodes hold point IDs; internal nodes hold
// arena refs of their children. min/max describe the bounding box.
type node struct {
	min, max []float64
	leaf     bool
	children []int32
	entries  []uint32
}

// RTree is a balanced bounding-box tree over points of one dimensionality.
// Point IDs are insertion indices, starting at zero.
type RTree struct {
	opts   Options
	points [][]float64
	nodes  []node
	root   int32
}

// New creates an empty index.
func New(optFns ...func(o *Options)) (*RTree, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Dimension < 1 {
		return nil, &ErrInvalidDimension{Dimension: opts.Dimension}
	}
	if opts.MaxEntries < 4 {
		opts.MaxEntries = defaultMaxEntries
	}
	if opts.MinEntries < 1 || opts.MinEntries > opts.MaxEntries/2 {
		opts.MinEntries = opts.MaxEntries * 2 / 5
		if opts.MinEntries < 1 {
			opts.MinEntries = 1
		}
	}
	return &RTree{opts: opts, root: nilRef}, nil
}

// Construct bulk-builds an index over the given points. An empty list is
// allowed; queries against the resulting index fail with ErrEmptyIndex.
func Construct(points [][]float64, optFns ...func(o *Options)) (*RTree, error) {
	t, err := New(optFns...)
	if err != nil {
		return nil, err
	}
	if err := t.Bulk(points); err != nil {
		return nil, err
	}
	return t, nil
}

// Len returns the number of indexed points.
func (t *RTree) Len() int { return len(t.points) }

// Dimension returns the index's point dimensionality.
func (t *RTree) Dimension() int { return t.opts.Dimension }

// Point returns the stored coordinates for an ID. Callers must not mutate
// the returned slice.
func (t *RTree) Point(id uint32) []float64 { return t.points[id] }

func (t *RTree) checkDimension(p []float64) error {
	if len(p) != t.opts.Dimension {
		return &ErrDimensionMismatch{Expected: t.opts.Dimension, Actual: len(p)}
	}
	return nil
}

// Bulk adds the given points and rebuilds the whole tree with
// sort-tile-recursive packing. It may be called on a non-empty index, in
// which case previously inserted points are repacked together with the new
// ones; query results are identical either way.
func (t *RTree) Bulk(points [][]float64) error {
	// Validate before mutating so a failed call leaves the index intact.
	for _, p := range points {
		if err := t.checkDimension(p); err != nil {
			return err
		}
	}
	for _, p := range points {
		c := make([]float64, len(p))
		copy(c, p)
		t.points = append(t.points, c)
	}

	t.nodes = t.nodes[:0]
	t.root = nilRef
	if len(t.points) == 0 {
		return nil
	}

	ids := make([]uint32, len(t.points))
	for i := range ids {
		ids[i] = uint32(i)
	}
	t.tile(ids, 0)

	// Chunk the tiled ordering into leaves, then pack consecutive nodes
	// into parents until a single root remains.
	var level []int32
	for start := 0; start < len(ids); start += t.opts.MaxEntries {
		end := start + t.opts.MaxEntries
		if end > len(ids) {
			end = len(ids)
		}
		ref := t.newLeaf(ids[start:end])
		level = append(level, ref)
	}
	for len(level) > 1 {
		var next []int32
		for start := 0; start < len(level); start += t.opts.MaxEntries {
			end := start + t.opts.MaxEntries
			if end > len(level) {
				end = len(level)
			}
			next = append(next, t.newInternal(level[start:end]))
		}
		level = next
	}
	t.root = level[0]
	return nil
}

// tile orders ids with the sort-tile-recursive heuristic: sort by the
// current dimension, cut into roughly equal slabs, recurse on the next
// dimension within each slab.
func (t *RTree) tile(ids []uint32, dim int) {
	sort.Slice(ids, func(i, j int) bool {
		return t.points[ids[i]][dim] < t.points[ids[j]][dim]
	})
	if dim == t.opts.Dimension-1 || len(ids) <= t.opts.MaxEntries {
		return
	}

	leaves := (len(ids) + t.opts.MaxEntries - 1) / t.opts.MaxEntries
	slabs := int(math.Ceil(math.Pow(float64(leaves), 1/float64(t.opts.Dimension-dim))))
	if slabs < 1 {
		slabs = 1
	}
	slabSize := (len(ids) + slabs - 1) / slabs
	for start := 0; start < len(ids); start += slabSize {
		end := start + slabSize
		if end > len(ids) {
			end = len(ids)
		}
		t.tile(ids[start:end], dim+1)
	}
}

func (t *RTree) alloc(n node) int32 {
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes) - 1)
}

func (t *RTree) newLeaf(ids []uint32) int32 {
	entries := make([]uint32, len(ids))
	copy(entries, ids)
	n := node{leaf: true, entries: entries}
	t.recomputeBox(&n)
	return t.alloc(n)
}

func (t *RTree) newInternal(children []int32) int32 {
	kids := make([]int32, len(children))
	copy(kids, children)
	n := node{leaf: false, children: kids}
	t.recomputeBox(&n)
	return t.alloc(n)
}

// recomputeBox rebuilds a node's bounding box from its contents.
func (t *RTree) recomputeBox(n *node) {
	dim := t.opts.Dimension
	n.min = make([]float64, dim)
	n.max = make([]float64, dim)
	for d := 0; d < dim; d++ {
		n.min[d] = math.Inf(1)
		n.max[d] = math.Inf(-1)
	}
	if n.leaf {
		for _, id := range n.entries {
			extendBox(n.min, n.max, t.points[id], t.points[id])
		}
		return
	}
	for _, ref := range n.children {
		c := &t.nodes[ref]
		extendBox(n.min, n.max, c.min, c.max)
	}
}

func extendBox(min, max, lo, hi []float64) {
	for d := range min {
		if lo[d] < min[d] {
			min[d] = lo[d]
		}
		if hi[d] > max[d] {
			max[d] = hi[d]
		}
	}
}

// Insert adds one point incrementally and returns its ID. Query results
// after any sequence of inserts are identical to a bulk Construct over the
// same final point set.
func (t *RTree) Insert(p []float64) (uint32, error) {
	if err := t.checkDimension(p); err != nil {
		return 0, err
	}
	c := make([]float64, len(p))
	copy(c, p)
	id := uint32(len(t.points))
	t.points = append(t.points, c)
	t.insertEntry(id)
	return id, nil
}

// InsertMany adds points incrementally and returns their IDs.
func (t *RTree) InsertMany(points [][]float64) ([]uint32, error) {
	ids := make([]uint32, 0, len(points))
	for _, p := range points {
		id, err := t.Insert(p)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (t *RTree) insertEntry(id uint32) {
	if t.root == nilRef {
		t.root = t.newLeaf([]uint32{id})
		return
	}

	p := t.points[id]
	path := t.chooseLeaf(p)
	leafRef := path[len(path)-1]
	leaf := &t.nodes[leafRef]
	leaf.entries = append(leaf.entries, id)
	extendBox(leaf.min, leaf.max, p, p)

	// Split overfull nodes bottom-up; a root split grows the tree.
	for i := len(path) - 1; i >= 0; i-- {
		ref := path[i]
		if t.size(ref) <= t.opts.MaxEntries {
			continue
		}
		newRef := t.split(ref)
		if i == 0 {
			t.root = t.newInternal([]int32{ref, newRef})
			return
		}
		parentRef := path[i-1]
		parent := &t.nodes[parentRef]
		parent.children = append(parent.children, newRef)
		t.recomputeBox(parent)
	}
}

func (t *RTree) size(ref int32) int {
	n := &t.nodes[ref]
	if n.leaf {
		return len(n.entries)
	}
	return len(n.children)
}

// chooseLeaf descends to the leaf needing the least bounding-box
// enlargement to absorb p, enlarging boxes along the way. It returns the
// root-to-leaf path of arena refs.
func (t *RTree) chooseLeaf(p []float64) []int32 {
	path := []int32{t.root}
	ref := t.root
	for {
		n := &t.nodes[ref]
		extendBox(n.min, n.max, p, p)
		if n.leaf {
			return path
		}

		best := n.children[0]
		bestEnl, bestArea := t.enlargement(best, p)
		for _, c := range n.children[1:] {
			enl, area := t.enlargement(c, p)
			if enl < bestEnl || (enl == bestEnl && area < bestArea) {
				best, bestEnl, bestArea = c, enl, area
			}
		}
		ref = best
		path = append(path, ref)
	}
}

// enlargement returns the area increase needed for a child to cover p,
// plus the child's current area as a tie-breaker.
func (t *RTree) enlargement(ref int32, p []float64) (enl, area float64) {
	n := &t.nodes[ref]
	area = 1
	enlarged := 1.0
	for d := range n.min {
		area *= n.max[d] - n.min[d]
		lo, hi := n.min[d], n.max[d]
		if p[d] < lo {
			lo = p[d]
		}
		if p[d] > hi {
			hi = p[d]
		}
		enlarged *= hi - lo
	}
	return enlarged - area, area
}

// split performs a quadratic split of an overfull node. The original ref
// keeps one group; the other group moves to a freshly allocated node whose
// ref is returned.
func (t *RTree) split(ref int32) int32 {
	lo, hi := t.itemBoxes(ref)
	count := len(lo)

	seedA, seedB := pickSeeds(lo, hi)
	groupA := []int{seedA}
	groupB := []int{seedB}
	boxA := cloneBox(lo[seedA], hi[seedA])
	boxB := cloneBox(lo[seedB], hi[seedB])

	assigned := make([]bool, count)
	assigned[seedA], assigned[seedB] = true, true

	for remaining := count - 2; remaining > 0; remaining-- {
		// Force assignment when one group must take all the rest to
		// reach minimum fill.
		if len(groupA)+remaining == t.opts.MinEntries {
			for i := 0; i < count; i++ {
				if !assigned[i] {
					assigned[i] = true
					groupA = append(groupA, i)
					boxA.extend(lo[i], hi[i])
				}
			}
			break
		}
		if len(groupB)+remaining == t.opts.MinEntries {
			for i := 0; i < count; i++ {
				if !assigned[i] {
					assigned[i] = true
					groupB = append(groupB, i)
					boxB.extend(lo[i], hi[i])
				}
			}
			break
		}

		// Pick the unassigned item with the strongest preference.
		next, toA := -1, false
		var bestDiff float64 = -1
		for i := 0; i < count; i++ {
			if assigned[i] {
				continue
			}
			dA := boxA.enlargementFor(lo[i], hi[i])
			dB := boxB.enlargementFor(lo[i], hi[i])
			diff := math.Abs(dA - dB)
			if diff > bestDiff {
				bestDiff = diff
				next = i
				toA = dA < dB
			}
		}
		assigned[next] = true
		if toA {
			groupA = append(groupA, next)
			boxA.extend(lo[next], hi[next])
		} else {
			groupB = append(groupB, next)
			boxB.extend(lo[next], hi[next])
		}
	}

	n := &t.nodes[ref]
	if n.leaf {
		oldEntries := n.entries
		n.entries = pickUint32(oldEntries, groupA)
		newRef := t.newLeaf(pickUint32(oldEntries, groupB))
		t.recomputeBox(&t.nodes[ref])
		return newRef
	}
	oldChildren := n.children
	n.children = pickInt32(oldChildren, groupA)
	newRef := t.newInternal(pickInt32(oldChildren, groupB))
	t.recomputeBox(&t.nodes[ref])
	return newRef
}

// itemBoxes returns the bounding box of every item in a node, in item
// order: degenerate point boxes for leaf entries, child boxes otherwise.
func (t *RTree) itemBoxes(ref int32) (lo, hi [][]float64) {
	n := &t.nodes[ref]
	if n.leaf {
		for _, id := range n.entries {
			lo = append(lo, t.points[id])
			hi = append(hi, t.points[id])
		}
		return lo, hi
	}
	for _, c := range n.children {
		lo = append(lo, t.nodes[c].min)
		hi = append(hi, t.nodes[c].max)
	}
	return lo, hi
}

type box struct {
	min, max []float64
}

func cloneBox(lo, hi []float64) *box {
	b := &box{min: make([]float64, len(lo)), max: make([]float64, len(hi))}
	copy(b.min, lo)
	copy(b.max, hi)
	return b
}

func (b *box) extend(lo, hi []float64) { extendBox(b.min, b.max, lo, hi) }

func (b *box) enlargementFor(lo, hi []float64) float64 {
	area, enlarged := 1.0, 1.0
	for d := range b.min {
		area *= b.max[d] - b.min[d]
		l, h := b.min[d], b.max[d]
		if lo[d] < l {
			l = lo[d]
		}
		if hi[d] > h {
			h = hi[d]
		}
		enlarged *= h - l
	}
	return enlarged - area
}

// pickSeeds selects the pair of items wasting the most area when paired,
// per Guttman's quadratic heuristic.
func pickSeeds(lo, hi [][]float64) (int, int) {
	seedA, seedB := 0, 1
	worst := math.Inf(-1)
	for i := 0; i < len(lo); i++ {
		for j := i + 1; j < len(lo); j++ {
			pair := cloneBox(lo[i], hi[i])
			pair.extend(lo[j], hi[j])
			areaPair, areaI, areaJ := 1.0, 1.0, 1.0
			for d := range pair.min {
				areaPair *= pair.max[d] - pair.min[d]
				areaI *= hi[i][d] - lo[i][d]
				areaJ *= hi[j][d] - lo[j][d]
			}
			waste := areaPair - areaI - areaJ
			if waste > worst {
				worst = waste
				seedA, seedB = i, j
			}
		}
	}
	return seedA, seedB
}

func pickUint32(src []uint32, idx []int) []uint32 {
	out := make([]uint32, 0, len(idx))
	for _, i := range idx {
		out = append(out, src[i])
	}
	return out
}

func pickInt32(src []int32, idx []int) []int32 {
	out := make([]int32, 0, len(idx))
	for _, i := range idx {
		out = append(out, src[i])
	}
	return out
}
