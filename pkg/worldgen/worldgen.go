// Package worldgen provides a deterministic, dependency-free height-field
// generator used to populate voxel.Chunk values and drive an
// octree.ChunkedOctree[octree.ChunkState] end to end, standing in for the
// "world generator" external collaborator.
package worldgen

import (
	"math"

	"github.com/go-mclib/voxelcore/pkg/octree"
	"github.com/go-mclib/voxelcore/pkg/voxel"
)

// Generator produces a height field from a fixed seed using a small
// value-noise function: no procgen library appears anywhere in the example
// pack this repo was built against, so this stays standard-library only.
type Generator struct {
	seed    int64
	surface int32 // voxels below this many blocks of headroom are solid
}

// New builds a Generator. surface is the nominal ground height in blocks
// above y=0 that heightAt oscillates around.
func New(seed int64, surface int32) *Generator {
	return &Generator{seed: seed, surface: surface}
}

// heightAt returns the solid/air boundary height at a column (x, z): blocks
// with y < heightAt(x, z) are solid ground.
func (g *Generator) heightAt(x, z int32) int32 {
	fx, fz := float64(x), float64(z)
	n := valueNoise2D(fx*0.08, fz*0.08, g.seed)
	return g.surface + int32(n*6)
}

// valueNoise2D is a minimal smoothed lattice-noise function: interpolate
// pseudo-random corner values with a smoothstep curve. It has none of the
// gradient-noise guarantees a real Perlin/Simplex implementation would, but
// it's deterministic and cheap, which is all a toy world generator needs.
func valueNoise2D(x, z float64, seed int64) float64 {
	x0, z0 := math.Floor(x), math.Floor(z)
	tx, tz := x-x0, z-z0
	sx := smoothstep(tx)
	sz := smoothstep(tz)

	v00 := latticeValue(int64(x0), int64(z0), seed)
	v10 := latticeValue(int64(x0)+1, int64(z0), seed)
	v01 := latticeValue(int64(x0), int64(z0)+1, seed)
	v11 := latticeValue(int64(x0)+1, int64(z0)+1, seed)

	top := lerp(v00, v10, sx)
	bottom := lerp(v01, v11, sx)
	return lerp(top, bottom, sz)
}

func smoothstep(t float64) float64 { return t * t * (3 - 2*t) }
func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// latticeValue hashes an integer lattice point plus the seed into a
// deterministic value in [-1, 1].
func latticeValue(x, z int64, seed int64) float64 {
	h := uint64(x)*374761393 + uint64(z)*668265263 + uint64(seed)*2246822519
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return (float64(h%10000)/10000)*2 - 1
}

// FillChunk populates a chunk covering local columns [0, side) with Block
// values derived from heightAt, given the chunk's chunk-space position
// (its world-space origin is that position times the side length).
func (g *Generator) FillChunk(c *voxel.Chunk, origin voxel.ChunkPos) {
	side := int32(c.Side())
	baseX, baseY, baseZ := origin.X*side, origin.Y*side, origin.Z*side
	for lx := int32(0); lx < side; lx++ {
		for lz := int32(0); lz < side; lz++ {
			height := g.heightAt(baseX+lx, baseZ+lz)
			for ly := int32(0); ly < side; ly++ {
				worldY := baseY + ly
				if worldY < height {
					c.Set(lx, ly, lz, voxel.Block(1))
				}
			}
		}
	}
}

// GenerateRegion fills every chunk in a cubic range of chunk positions
// around origin (inclusive radius), recording EXISTS|GENERATED into tree
// for each one. It returns the generated chunks keyed by position so a
// caller can hand them to a mesh builder or the voxelinspect demo.
func (g *Generator) GenerateRegion(tree *octree.ChunkedOctree[octree.ChunkState], origin voxel.ChunkPos, radius int32, lengthBits int) map[voxel.ChunkPos]*voxel.Chunk {
	chunks := make(map[voxel.ChunkPos]*voxel.Chunk)
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			for dz := -radius; dz <= radius; dz++ {
				pos := voxel.ChunkPos{X: origin.X + dx, Y: origin.Y + dy, Z: origin.Z + dz}
				c := voxel.NewChunk(lengthBits)
				g.FillChunk(c, pos)
				chunks[pos] = c
				tree.Update(pos, octree.SetValue(octree.StateExists|octree.StateGenerated), octree.BubbleOr)
			}
		}
	}
	return chunks
}
