// Package octree implements ChunkedOctree, a sparse index over chunk
// positions: chunks are grouped into fixed-depth regions addressed by their
// Morton-coded coordinate, and each region holds a complete 8-ary tree
// (flat array, heap-style indexing) down to its leaves, with interior
// nodes aggregated bottom-up by a caller-supplied bubble function.
package octree

import (
	"github.com/go-mclib/voxelcore/pkg/voxel"
	"github.com/go-mclib/voxelcore/pkg/zorder"
)

// BubbleFunc folds a node's eight children into its own aggregated value,
// writing through parent and reporting whether the value changed. When it
// reports false, Update stops bubbling further up the tree: an unchanged
// aggregate can't change any ancestor either.
type BubbleFunc[T any] func(level int, children [8]T, parent *T) bool

// UpdateFunc mutates a leaf cell in place, given a pointer to its current
// value. Use this (rather than a plain overwrite) to merge into a value
// another collaborator may already have written flags into, e.g. setting
// just the GENERATED bit of a ChunkState without clobbering EXISTS.
type UpdateFunc[T any] func(cell *T)

// SetValue returns an UpdateFunc that unconditionally overwrites a cell
// with value, for callers that don't need to read-modify-write.
func SetValue[T any](value T) UpdateFunc[T] {
	return func(cell *T) { *cell = value }
}

type region[T any] struct {
	nodes []T
}

// ChunkedOctree maps voxel.ChunkPos positions to a value of type T. Update
// mutates a leaf via a caller-supplied UpdateFunc and folds the change
// upward via a caller-supplied BubbleFunc, both passed per call so
// different collaborators can use different merge semantics against the
// same tree.
type ChunkedOctree[T any] struct {
	depth   int
	lookup  []int
	regions map[zorder.ZOrder[int32]]*region[T]
}

// New builds an empty ChunkedOctree with regions of the given depth (a
// region holds 8^depth leaves). depth must be in [1, 9].
func New[T any](depth int) *ChunkedOctree[T] {
	if depth < 1 || depth > 9 {
		panic("octree: depth must be in [1, 9]")
	}
	return &ChunkedOctree[T]{
		depth:   depth,
		lookup:  startIndexLookup(depth),
		regions: make(map[zorder.ZOrder[int32]]*region[T]),
	}
}

// Depth returns the configured region depth.
func (o *ChunkedOctree[T]) Depth() int { return o.depth }

// startIndexLookup[d] is the flat-array offset where level d's nodes begin
// within a region: startIndexLookup[d] = sum_{i=0}^{d-1} 8^i. A region of
// the configured depth therefore holds startIndexLookup[depth+1] nodes in
// total, root through leaves.
func startIndexLookup(depth int) []int {
	lookup := make([]int, depth+2)
	sum, pow := 0, 1
	for d := 0; d <= depth+1; d++ {
		lookup[d] = sum
		sum += pow
		pow *= 8
	}
	return lookup
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int32) int32 {
	m := a % b
	if m != 0 && (a < 0) != (b < 0) {
		m += b
	}
	return m
}

// localMorton interleaves the low `bits` bits of x, y, z (one bit per axis
// per level) into a single value in [0, 8^bits), the same index scheme a
// region's flat node array uses within each level.
func localMorton(x, y, z uint32, bits int) uint32 {
	var out uint32
	for i := 0; i < bits; i++ {
		out |= ((x >> uint(i)) & 1) << uint(3*i)
		out |= ((y >> uint(i)) & 1) << uint(3*i+1)
		out |= ((z >> uint(i)) & 1) << uint(3*i+2)
	}
	return out
}

// deMorton is localMorton's inverse.
func deMorton(code uint32, bits int) (x, y, z uint32) {
	for i := 0; i < bits; i++ {
		x |= ((code >> uint(3*i)) & 1) << uint(i)
		y |= ((code >> uint(3*i+1)) & 1) << uint(i)
		z |= ((code >> uint(3*i+2)) & 1) << uint(i)
	}
	return
}

// split resolves a chunk position into its region coordinate and the
// Morton-coded local leaf index within that region.
func (o *ChunkedOctree[T]) split(pos voxel.ChunkPos) (coord zorder.ZOrder[int32], localIdx uint32, ok bool) {
	side := int32(1) << uint(o.depth)
	rx, ry, rz := floorDiv(pos.X, side), floorDiv(pos.Y, side), floorDiv(pos.Z, side)
	coord, ok = zorder.New[int32](int64(rx), int64(ry), int64(rz))
	if !ok {
		return
	}
	lx, ly, lz := floorMod(pos.X, side), floorMod(pos.Y, side), floorMod(pos.Z, side)
	localIdx = localMorton(uint32(lx), uint32(ly), uint32(lz), o.depth)
	return
}

// cellOrigin returns the minimum-corner chunk position of the cell a node
// at (level, localIdx) within region coord covers: exact when level is the
// tree's leaf depth, the corner of a coarser covering cell otherwise.
func (o *ChunkedOctree[T]) cellOrigin(coord zorder.ZOrder[int32], level int, localIdx uint32) voxel.ChunkPos {
	rx, ry, rz := coord.XYZ()
	lx, ly, lz := deMorton(localIdx, level)
	regionSide := int32(1) << uint(o.depth)
	cellSide := int32(1) << uint(o.depth-level)
	return voxel.ChunkPos{
		X: int32(rx)*regionSide + int32(lx)*cellSide,
		Y: int32(ry)*regionSide + int32(ly)*cellSide,
		Z: int32(rz)*regionSide + int32(lz)*cellSide,
	}
}

func (o *ChunkedOctree[T]) ensureRegion(coord zorder.ZOrder[int32]) *region[T] {
	r, ok := o.regions[coord]
	if !ok {
		r = &region[T]{nodes: make([]T, o.lookup[o.depth+1])}
		o.regions[coord] = r
	}
	return r
}

// Get returns the leaf value stored at pos, or T's zero value if pos falls
// in a region that has never been touched by Update. It is equivalent to
// GetLevel(tree.Depth(), pos).
func (o *ChunkedOctree[T]) Get(pos voxel.ChunkPos) T {
	return o.GetLevel(o.depth, pos)
}

// GetLevel returns the aggregate stored at the node of the given level
// whose cell covers pos (level 0 is a region's root, level == tree.Depth()
// is the leaf itself), or T's zero value if pos falls in a region that has
// never been touched by Update. It panics if level is outside [0, depth].
func (o *ChunkedOctree[T]) GetLevel(level int, pos voxel.ChunkPos) T {
	var zero T
	if level < 0 || level > o.depth {
		panic("octree: level out of range")
	}
	coord, localIdx, ok := o.split(pos)
	if !ok {
		return zero
	}
	r, exists := o.regions[coord]
	if !exists {
		return zero
	}
	levelLocal := localIdx >> uint(3*(o.depth-level))
	return r.nodes[o.lookup[level]+int(levelLocal)]
}

// Update mutates the leaf at pos in place via updateFn, then bubbles the
// change up through every ancestor node in pos's region using bubbleFn,
// stopping as soon as bubbleFn reports no change. bubbleFn may be nil to
// skip aggregation for this call. It panics if pos falls outside the
// 32-bit region coordinate space ChunkedOctree can represent.
//
// Both functions run under a single call, so a caller holding a
// Locked[T]'s write lock for the duration (Locked.Update does this
// automatically) can merge into a leaf — e.g. set one ChunkState flag bit
// without clobbering others — without a separate, racy Get-then-Set.
func (o *ChunkedOctree[T]) Update(pos voxel.ChunkPos, updateFn UpdateFunc[T], bubbleFn BubbleFunc[T]) {
	coord, localIdx, ok := o.split(pos)
	if !ok {
		panic("octree: chunk position out of representable range")
	}
	r := o.ensureRegion(coord)
	leafIdx := o.lookup[o.depth] + int(localIdx)
	updateFn(&r.nodes[leafIdx])

	if bubbleFn == nil {
		return
	}

	child := localIdx
	for level := o.depth; level > 0; level-- {
		parent := child >> 3
		childBase := o.lookup[level] + int(parent<<3)

		var children [8]T
		for i := 0; i < 8; i++ {
			children[i] = r.nodes[childBase+i]
		}

		parentIdx := o.lookup[level-1] + int(parent)
		if !bubbleFn(level, children, &r.nodes[parentIdx]) {
			return
		}
		child = parent
	}
}

// RegionCount returns the number of distinct regions ever touched by
// Update. Mainly useful for tests and the voxelinspect demo's stats view.
func (o *ChunkedOctree[T]) RegionCount() int { return len(o.regions) }
