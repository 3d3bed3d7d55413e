package voxel

// FaceMask is a bitset over the six Facing values, one bit per face that a
// naive face-culling pass decided is worth emitting geometry for.
type FaceMask uint8

// Has reports whether f's bit is set in the mask.
func (m FaceMask) Has(f Facing) bool {
	return m&(1<<uint(f)) != 0
}

func (m *FaceMask) set(f Facing) {
	*m |= 1 << uint(f)
}

// NeighborLookup resolves the block immediately across a chunk boundary in
// direction f from local coordinates (x, y, z). ok is false when the
// neighboring chunk isn't loaded, in which case VisibleFaces treats the
// face as visible (an unloaded neighbor can't be known to be solid).
type NeighborLookup func(f Facing, x, y, z int32) (block Block, ok bool)

// VisibleFaces runs a naive face-culling pass over the voxel at local
// coordinates (x, y, z): a face is visible when the voxel immediately
// across it is not solid. This decides which faces a mesh builder would
// bother emitting; it does not build any vertex or index data itself
// (mesh generation beyond this point is out of scope here).
func (c *Chunk) VisibleFaces(x, y, z int32, isSolid func(Block) bool, neighbor NeighborLookup) (FaceMask, error) {
	self, err := c.Get(x, y, z)
	if err != nil {
		return 0, err
	}
	if !isSolid(self) {
		return 0, nil
	}

	var mask FaceMask
	side := int32(c.Side())
	for f := range IterAll {
		dx, dy, dz := f.Offset()
		nx, ny, nz := x+dx, y+dy, z+dz

		var neighborBlock Block
		if nx < 0 || nx >= side || ny < 0 || ny >= side || nz < 0 || nz >= side {
			if neighbor == nil {
				mask.set(f)
				continue
			}
			b, ok := neighbor(f, x, y, z)
			if !ok {
				mask.set(f)
				continue
			}
			neighborBlock = b
		} else {
			neighborBlock, _ = c.Get(nx, ny, nz)
		}

		if !isSolid(neighborBlock) {
			mask.set(f)
		}
	}
	return mask, nil
}
