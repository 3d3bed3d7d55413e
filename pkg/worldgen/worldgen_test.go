package worldgen

import (
	"testing"

	"github.com/go-mclib/voxelcore/pkg/octree"
	"github.com/go-mclib/voxelcore/pkg/voxel"
)

func TestHeightAtIsDeterministic(t *testing.T) {
	g := New(42, 8)
	a := g.heightAt(10, -3)
	b := g.heightAt(10, -3)
	if a != b {
		t.Errorf("heightAt not deterministic: %d vs %d", a, b)
	}
}

func TestHeightAtVariesAcrossSeeds(t *testing.T) {
	a := New(1, 8).heightAt(0, 0)
	b := New(2, 8).heightAt(0, 0)
	if a == b {
		t.Skip("seeds happened to collide at this sample point; not a correctness failure")
	}
}

func TestFillChunkProducesGroundAndAir(t *testing.T) {
	g := New(7, 8)
	c := voxel.NewChunk(voxel.DefaultLengthBits)
	g.FillChunk(c, voxel.ChunkPos{X: 0, Y: 0, Z: 0})

	sawSolid, sawAir := false, false
	side := int32(c.Side())
	for x := int32(0); x < side; x++ {
		for y := int32(0); y < side; y++ {
			for z := int32(0); z < side; z++ {
				v, err := c.Get(x, y, z)
				if err != nil {
					t.Fatalf("Get(%d,%d,%d): %v", x, y, z, err)
				}
				if v == voxel.BlockAir {
					sawAir = true
				} else {
					sawSolid = true
				}
			}
		}
	}
	if !sawSolid || !sawAir {
		t.Errorf("FillChunk produced sawSolid=%v sawAir=%v, want both", sawSolid, sawAir)
	}
}

func TestFillChunkIsColumnMonotonic(t *testing.T) {
	g := New(3, 8)
	c := voxel.NewChunk(voxel.DefaultLengthBits)
	g.FillChunk(c, voxel.ChunkPos{X: 0, Y: 0, Z: 0})

	side := int32(c.Side())
	for x := int32(0); x < side; x++ {
		for z := int32(0); z < side; z++ {
			seenAir := false
			for y := int32(0); y < side; y++ {
				v, _ := c.Get(x, y, z)
				if v == voxel.BlockAir {
					seenAir = true
				} else if seenAir {
					t.Fatalf("column (%d,_,%d) has solid block above air: not a simple height field", x, z)
				}
			}
		}
	}
}

func TestGenerateRegionPopulatesTreeAndChunks(t *testing.T) {
	g := New(9, 8)
	tree := octree.New[octree.ChunkState](2)
	origin := voxel.ChunkPos{X: 0, Y: 0, Z: 0}
	chunks := g.GenerateRegion(tree, origin, 1, voxel.DefaultLengthBits)

	if len(chunks) != 27 {
		t.Fatalf("GenerateRegion with radius 1 produced %d chunks, want 27", len(chunks))
	}
	for pos := range chunks {
		state := tree.Get(pos)
		if !state.Has(octree.StateExists) || !state.Has(octree.StateGenerated) {
			t.Errorf("tree.Get(%+v) = %v, want EXISTS|GENERATED", pos, state)
		}
	}
}
