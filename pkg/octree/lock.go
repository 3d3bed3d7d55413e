package octree

import (
	"sync"

	"github.com/go-mclib/voxelcore/pkg/voxel"
)

// Locked guards a ChunkedOctree behind a reader/writer lock, the same
// one-lock-per-resource discipline voxel.LockedChunk uses. Find/Search does
// not snapshot state, so a caller iterating Search results that must see a
// consistent view across the whole traversal should hold the read lock for
// the duration via WithReadLock rather than relying on Get/Update alone.
type Locked[T any] struct {
	mu   sync.RWMutex
	tree *ChunkedOctree[T]
}

// NewLocked wraps an existing ChunkedOctree for concurrent access.
func NewLocked[T any](tree *ChunkedOctree[T]) *Locked[T] {
	return &Locked[T]{tree: tree}
}

func (l *Locked[T]) Get(pos voxel.ChunkPos) T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tree.Get(pos)
}

// GetLevel is the Locked equivalent of ChunkedOctree.GetLevel.
func (l *Locked[T]) GetLevel(level int, pos voxel.ChunkPos) T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tree.GetLevel(level, pos)
}

// Update takes the write lock for the whole call, so updateFn can safely
// read-modify-write the existing leaf value (e.g. OR in one ChunkState
// flag) without racing a concurrent Update on the same leaf.
func (l *Locked[T]) Update(pos voxel.ChunkPos, updateFn UpdateFunc[T], bubbleFn BubbleFunc[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tree.Update(pos, updateFn, bubbleFn)
}

// WithReadLock runs fn with a read lock held over the wrapped tree.
func (l *Locked[T]) WithReadLock(fn func(*ChunkedOctree[T])) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn(l.tree)
}

// WithWriteLock runs fn with a write lock held over the wrapped tree.
func (l *Locked[T]) WithWriteLock(fn func(*ChunkedOctree[T])) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.tree)
}
