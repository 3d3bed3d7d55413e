package octree

import (
	"container/heap"

	"github.com/go-mclib/voxelcore/pkg/voxel"
	"github.com/go-mclib/voxelcore/pkg/zorder"
)

// WeightFunc scores a node for nearest-first ordering during Search; lower
// scores are visited first. level 0 is a region's root; level ==
// tree.Depth() is a leaf (an actual chunk position). pos is the node's
// minimum-corner chunk position: exact for a leaf, the corner of its
// covering cell for an interior node — enough for a caller to compute an
// admissible distance heuristic without waiting for the leaves themselves.
type WeightFunc[T any] func(level int, pos voxel.ChunkPos, node T) float64

// FilterFunc decides whether a node is worth visiting at all. Returning
// false prunes the entire subtree rooted at that node, including the node
// itself if it's a leaf.
type FilterFunc[T any] func(level int, node T) bool

// Finder holds the weight/filter pair for a single nearest-first search,
// built by ChunkedOctree.Find and consumed by Search.
type Finder[T any] struct {
	tree   *ChunkedOctree[T]
	weight WeightFunc[T]
	filter FilterFunc[T]
}

// Find prepares a nearest-first traversal of tree ordered by weight, with
// filter pruning whole subtrees. filter may be nil to visit everything.
func (o *ChunkedOctree[T]) Find(weight WeightFunc[T], filter FilterFunc[T]) *Finder[T] {
	return &Finder[T]{tree: o, weight: weight, filter: filter}
}

type pqItem[T any] struct {
	coord    zorder.ZOrder[int32]
	level    int
	local    uint32
	priority float64
}

type nodeHeap[T any] []pqItem[T]

func (h nodeHeap[T]) Len() int            { return len(h) }
func (h nodeHeap[T]) Less(i, j int) bool  { return h[i].priority < h[j].priority }
func (h nodeHeap[T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap[T]) Push(x interface{}) { *h = append(*h, x.(pqItem[T])) }
func (h *nodeHeap[T]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Search returns a range-over-func iterator over (position, value) pairs,
// seeded from the 27 regions (a -1..=1 cube of region offsets) around
// origin's own region (origin >> depth) and expanding nearest-first by
// weight from there, pruning any subtree filter rejects. Breaking out of
// the range loop stops the traversal immediately — no further nodes are
// visited or weighed. Regions outside that 27-region neighborhood are
// never examined, so a camera far from a region will not discover it even
// if it's otherwise the globally nearest match; callers that need a wider
// net should issue a new Search from a closer origin.
func (f *Finder[T]) Search(origin voxel.ChunkPos) func(yield func(voxel.ChunkPos, T) bool) {
	return func(yield func(voxel.ChunkPos, T) bool) {
		h := &nodeHeap[T]{}
		side := int32(1) << uint(f.tree.depth)
		originRegion := [3]int32{
			floorDiv(origin.X, side),
			floorDiv(origin.Y, side),
			floorDiv(origin.Z, side),
		}
		for dx := int32(-1); dx <= 1; dx++ {
			for dy := int32(-1); dy <= 1; dy++ {
				for dz := int32(-1); dz <= 1; dz++ {
					coord, ok := zorder.New[int32](
						int64(originRegion[0]+dx),
						int64(originRegion[1]+dy),
						int64(originRegion[2]+dz),
					)
					if !ok {
						continue
					}
					r, exists := f.tree.regions[coord]
					if !exists {
						continue
					}
					root := r.nodes[0]
					if f.filter != nil && !f.filter(0, root) {
						continue
					}
					rootPos := f.tree.cellOrigin(coord, 0, 0)
					heap.Push(h, pqItem[T]{coord: coord, level: 0, local: 0, priority: f.weight(0, rootPos, root)})
				}
			}
		}

		f.drain(h, yield)
	}
}

// drain pops the heap in priority order, expanding interior nodes into
// their children and yielding leaves, until the heap is empty or yield
// asks to stop.
func (f *Finder[T]) drain(h *nodeHeap[T], yield func(voxel.ChunkPos, T) bool) {
	for h.Len() > 0 {
		item := heap.Pop(h).(pqItem[T])
		r := f.tree.regions[item.coord]
		node := r.nodes[f.tree.lookup[item.level]+int(item.local)]

		if item.level == f.tree.depth {
			pos := f.tree.cellOrigin(item.coord, item.level, item.local)
			if !yield(pos, node) {
				return
			}
			continue
		}

		childLevel := item.level + 1
		base := item.local << 3
		for i := uint32(0); i < 8; i++ {
			childLocal := base + i
			child := r.nodes[f.tree.lookup[childLevel]+int(childLocal)]
			if f.filter != nil && !f.filter(childLevel, child) {
				continue
			}
			childPos := f.tree.cellOrigin(item.coord, childLevel, childLocal)
			heap.Push(h, pqItem[T]{coord: item.coord, level: childLevel, local: childLocal, priority: f.weight(childLevel, childPos, child)})
		}
	}
}
