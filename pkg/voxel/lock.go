package voxel

import "sync"

// LockedChunk guards a single Chunk behind a reader/writer lock, the same
// one-lock-per-resource discipline go-mclib-client's world module and
// dantero-ps-mini-mc-go's ChunkStore use for their chunk maps.
type LockedChunk struct {
	mu    sync.RWMutex
	chunk *Chunk
}

// NewLockedChunk wraps an existing chunk for concurrent access.
func NewLockedChunk(c *Chunk) *LockedChunk {
	return &LockedChunk{chunk: c}
}

// Get takes a read lock and returns the block at (x, y, z).
func (l *LockedChunk) Get(x, y, z int32) (Block, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.chunk.Get(x, y, z)
}

// Set takes a write lock and writes the block at (x, y, z).
func (l *LockedChunk) Set(x, y, z int32, b Block) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.chunk.Set(x, y, z, b)
}

// WithReadLock runs fn with a read lock held over the wrapped chunk, for
// callers that need more than one operation to see a consistent view.
func (l *LockedChunk) WithReadLock(fn func(*Chunk)) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn(l.chunk)
}

// WithWriteLock runs fn with a write lock held over the wrapped chunk.
func (l *LockedChunk) WithWriteLock(fn func(*Chunk)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.chunk)
}
