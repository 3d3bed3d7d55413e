// Package voxel provides the fixed-size cubic storage region (Chunk) that
// sits between a single block and the sparse chunked octree that indexes
// many chunks in world space.
package voxel

import (
	"fmt"

	"github.com/go-mclib/voxelcore/pkg/palette"
	"github.com/go-mclib/voxelcore/pkg/zorder"
)

// Block is the canonical per-voxel value this repo's Chunk stores.
type Block uint8

// BlockAir is the zero value every new Chunk slot starts at.
const BlockAir Block = 0

// DefaultLengthBits is the canonical chunk side length exponent (side =
// 1<<DefaultLengthBits = 16) used unless a caller requests otherwise.
const DefaultLengthBits = 4

// BoundsError reports a local coordinate or packed index outside a chunk's
// extent.
type BoundsError struct {
	X, Y, Z   int32
	LengthBits int
}

func (e *BoundsError) Error() string {
	side := int32(1) << uint(e.LengthBits)
	return fmt.Sprintf("voxel: (%d,%d,%d) out of bounds for %dx%dx%d chunk", e.X, e.Y, e.Z, side, side, side)
}

// ChunkIndex is a packed local coordinate within a chunk: bits [0,B) hold x,
// bits [B,2B) hold y, bits [2B,3B) hold z, where B is the chunk's
// LengthBits. It fits a uint16 for any LengthBits up to 5 (32-wide chunks).
type ChunkIndex uint16

// NewChunkIndex packs local coordinates (x, y, z), each expected in
// [0, 1<<lengthBits), returning an error if any axis is out of range.
func NewChunkIndex(x, y, z int32, lengthBits int) (ChunkIndex, error) {
	side := int32(1) << uint(lengthBits)
	if x < 0 || x >= side || y < 0 || y >= side || z < 0 || z >= side {
		return 0, &BoundsError{X: x, Y: y, Z: z, LengthBits: lengthBits}
	}
	return NewChunkIndexUnchecked(x, y, z, lengthBits), nil
}

// NewChunkIndexUnchecked packs local coordinates without range validation.
func NewChunkIndexUnchecked(x, y, z int32, lengthBits int) ChunkIndex {
	b := uint(lengthBits)
	return ChunkIndex(uint16(x) | uint16(y)<<b | uint16(z)<<(2*b))
}

// XYZ unpacks the index back into local coordinates.
func (i ChunkIndex) XYZ(lengthBits int) (x, y, z int32) {
	b := uint(lengthBits)
	mask := uint16(1)<<b - 1
	raw := uint16(i)
	x = int32(raw & mask)
	y = int32((raw >> b) & mask)
	z = int32((raw >> (2 * b)) & mask)
	return
}

// ChunkPos identifies a chunk's position in chunk-space (one unit per
// chunk, not per block).
type ChunkPos struct {
	X, Y, Z int32
}

// ZOrder converts this chunk position into the Morton-coded key
// ChunkedOctree uses to index chunks.
func (p ChunkPos) ZOrder() (zorder.ZOrder[int32], bool) {
	return zorder.New[int32](int64(p.X), int64(p.Y), int64(p.Z))
}

// ChunkPosFromZOrder recovers a chunk position from its Morton-coded key.
func ChunkPosFromZOrder(z zorder.ZOrder[int32]) ChunkPos {
	x, y, zz := z.XYZ()
	return ChunkPos{X: int32(x), Y: int32(y), Z: int32(zz)}
}

func (p ChunkPos) Neighbor(f Facing) ChunkPos {
	dx, dy, dz := f.Offset()
	return ChunkPos{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}

// Chunk is a cubic region of side 1<<LengthBits voxels, stored
// palette-compressed.
type Chunk struct {
	lengthBits int
	store      *palette.Store[Block]
}

// NewChunk builds a chunk of side 1<<lengthBits, every voxel initialized to
// BlockAir. lengthBits must be in [1, 5] so ChunkIndex still fits a uint16.
func NewChunk(lengthBits int) *Chunk {
	if lengthBits < 1 || lengthBits > 5 {
		panic("voxel: lengthBits must be in [1, 5]")
	}
	side := 1 << uint(lengthBits)
	return &Chunk{
		lengthBits: lengthBits,
		store:      palette.New[Block](side * side * side),
	}
}

// LengthBits returns this chunk's side length exponent.
func (c *Chunk) LengthBits() int { return c.lengthBits }

// Side returns this chunk's side length in voxels.
func (c *Chunk) Side() int { return 1 << uint(c.lengthBits) }

// Get returns the block at local coordinates (x, y, z).
func (c *Chunk) Get(x, y, z int32) (Block, error) {
	idx, err := NewChunkIndex(x, y, z, c.lengthBits)
	if err != nil {
		return BlockAir, err
	}
	v, err := c.store.Get(int(idx))
	return v, err
}

// Set writes the block at local coordinates (x, y, z).
func (c *Chunk) Set(x, y, z int32, b Block) error {
	idx, err := NewChunkIndex(x, y, z, c.lengthBits)
	if err != nil {
		return err
	}
	return c.store.Set(int(idx), b)
}

// GetIndex returns the block at a pre-packed ChunkIndex.
func (c *Chunk) GetIndex(idx ChunkIndex) (Block, error) {
	return c.store.Get(int(idx))
}

// SetIndex writes the block at a pre-packed ChunkIndex.
func (c *Chunk) SetIndex(idx ChunkIndex, b Block) error {
	return c.store.Set(int(idx), b)
}

// UsedPaletteEntries exposes the backing PaletteStore's compression stats,
// mainly for the voxelinspect demo.
func (c *Chunk) UsedPaletteEntries() int { return c.store.UsedEntries() }
