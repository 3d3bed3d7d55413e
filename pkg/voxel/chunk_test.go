package voxel

import "testing"

func TestChunkIndexRoundTrip(t *testing.T) {
	const bits = 4
	side := int32(1 << bits)
	for x := int32(0); x < side; x++ {
		for y := int32(0); y < side; y += 3 {
			for z := int32(0); z < side; z += 5 {
				idx, err := NewChunkIndex(x, y, z, bits)
				if err != nil {
					t.Fatalf("NewChunkIndex(%d,%d,%d): %v", x, y, z, err)
				}
				gx, gy, gz := idx.XYZ(bits)
				if gx != x || gy != y || gz != z {
					t.Errorf("round trip (%d,%d,%d) -> (%d,%d,%d)", x, y, z, gx, gy, gz)
				}
			}
		}
	}
}

func TestChunkIndexOutOfBounds(t *testing.T) {
	if _, err := NewChunkIndex(16, 0, 0, 4); err == nil {
		t.Error("NewChunkIndex(16,0,0,4) should error: 16 is out of range for a 16-wide chunk")
	}
	if _, err := NewChunkIndex(-1, 0, 0, 4); err == nil {
		t.Error("NewChunkIndex(-1,0,0,4) should error")
	}
}

func TestChunkGetSetDefaultsToAir(t *testing.T) {
	c := NewChunk(DefaultLengthBits)
	v, err := c.Get(0, 0, 0)
	if err != nil {
		t.Fatalf("Get(0,0,0): %v", err)
	}
	if v != BlockAir {
		t.Errorf("Get(0,0,0) = %v, want BlockAir", v)
	}
}

func TestChunkSetAndGet(t *testing.T) {
	c := NewChunk(DefaultLengthBits)
	if err := c.Set(1, 2, 3, Block(7)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := c.Get(1, 2, 3)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != 7 {
		t.Errorf("Get(1,2,3) = %v, want 7", v)
	}
	// Unrelated slots are untouched.
	v2, _ := c.Get(0, 0, 0)
	if v2 != BlockAir {
		t.Errorf("Get(0,0,0) = %v, want BlockAir after unrelated Set", v2)
	}
}

func TestChunkOutOfBoundsErrors(t *testing.T) {
	c := NewChunk(DefaultLengthBits)
	side := int32(c.Side())
	if _, err := c.Get(side, 0, 0); err == nil {
		t.Error("Get at side boundary should error")
	}
	if err := c.Set(0, 0, side, Block(1)); err == nil {
		t.Error("Set at side boundary should error")
	}
}

func TestChunkPosZOrderRoundTrip(t *testing.T) {
	p := ChunkPos{X: 3, Y: -4, Z: 5}
	z, ok := p.ZOrder()
	if !ok {
		t.Fatal("ZOrder() rejected in-range chunk position")
	}
	back := ChunkPosFromZOrder(z)
	if back != p {
		t.Errorf("round trip %+v -> %+v", p, back)
	}
}

func TestFacingOppositeIsInvolution(t *testing.T) {
	for f := range IterAll {
		if f.Opposite().Opposite() != f {
			t.Errorf("%v.Opposite().Opposite() != %v", f, f)
		}
	}
}

func TestChunkNeighborUsesFacingOffset(t *testing.T) {
	p := ChunkPos{X: 0, Y: 0, Z: 0}
	east := p.Neighbor(East)
	if east != (ChunkPos{X: 1, Y: 0, Z: 0}) {
		t.Errorf("Neighbor(East) = %+v, want {1,0,0}", east)
	}
	back := east.Neighbor(West)
	if back != p {
		t.Errorf("Neighbor(East).Neighbor(West) = %+v, want %+v", back, p)
	}
}

// S6: a fully solid chunk interior reports no visible faces for blocks
// entirely surrounded by other solid blocks, but the boundary layer is
// visible when no neighbor lookup is supplied.
func TestVisibleFacesScenarioS6(t *testing.T) {
	c := NewChunk(2) // 4x4x4
	isSolid := func(b Block) bool { return b != BlockAir }
	for x := int32(0); x < 4; x++ {
		for y := int32(0); y < 4; y++ {
			for z := int32(0); z < 4; z++ {
				c.Set(x, y, z, Block(1))
			}
		}
	}

	mask, err := c.VisibleFaces(1, 1, 1, isSolid, nil)
	if err != nil {
		t.Fatalf("VisibleFaces: %v", err)
	}
	if mask != 0 {
		t.Errorf("interior voxel mask = %06b, want 0", mask)
	}

	mask, err = c.VisibleFaces(0, 0, 0, isSolid, nil)
	if err != nil {
		t.Fatalf("VisibleFaces: %v", err)
	}
	if !mask.Has(West) || !mask.Has(Down) || !mask.Has(North) {
		t.Errorf("corner voxel mask = %06b, want West/Down/North set", mask)
	}
	if mask.Has(East) || mask.Has(Up) || mask.Has(South) {
		t.Errorf("corner voxel mask = %06b, want interior-facing faces clear", mask)
	}
}

func TestVisibleFacesAirIsAlwaysEmptyMask(t *testing.T) {
	c := NewChunk(DefaultLengthBits)
	isSolid := func(b Block) bool { return b != BlockAir }
	mask, err := c.VisibleFaces(5, 5, 5, isSolid, nil)
	if err != nil {
		t.Fatalf("VisibleFaces: %v", err)
	}
	if mask != 0 {
		t.Errorf("air voxel mask = %06b, want 0", mask)
	}
}

func TestVisibleFacesNeighborLookupSuppressesFace(t *testing.T) {
	c := NewChunk(2)
	isSolid := func(b Block) bool { return b != BlockAir }
	c.Set(0, 0, 0, Block(1))
	neighbor := func(f Facing, x, y, z int32) (Block, bool) {
		return Block(1), true // every cross-boundary neighbor is solid
	}
	mask, err := c.VisibleFaces(0, 0, 0, isSolid, neighbor)
	if err != nil {
		t.Fatalf("VisibleFaces: %v", err)
	}
	// The lookup suppresses the three cross-boundary faces (West, Down,
	// North); the in-chunk neighbors at +x, +y, +z are air, so those faces
	// stay visible.
	want := FaceMask(1<<East | 1<<Up | 1<<South)
	if mask != want {
		t.Errorf("mask = %06b, want %06b when every cross-boundary neighbor reports solid", mask, want)
	}
}
