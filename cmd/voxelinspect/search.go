package main

import (
	"math"

	"github.com/go-mclib/voxelcore/pkg/octree"
	"github.com/go-mclib/voxelcore/pkg/voxel"
)

type nearestResult struct {
	pos      voxel.ChunkPos
	state    octree.ChunkState
	distance float64
}

// nearestChunks drives ChunkedOctree.Find(...).Search(...) with a
// Euclidean-distance-to-camera weight and a GENERATED-only filter, taking
// the first resultLimit leaves it yields. Search already visits nodes in
// nondecreasing weight order, so this is a plain early-exit rather than a
// sort-then-truncate over the whole tree.
func (m model) nearestChunks() []nearestResult {
	weight := func(level int, pos voxel.ChunkPos, node octree.ChunkState) float64 {
		// Distance to the covered chunk nearest the camera: a lower bound on
		// every leaf beneath this node.
		side := int32(1) << uint(m.tree.Depth()-level)
		return m.distanceToCamera(voxel.ChunkPos{
			X: min(max(m.camera.X, pos.X), pos.X+side-1),
			Y: min(max(m.camera.Y, pos.Y), pos.Y+side-1),
			Z: min(max(m.camera.Z, pos.Z), pos.Z+side-1),
		})
	}
	filter := func(level int, node octree.ChunkState) bool {
		return node.Has(octree.StateGenerated)
	}

	finder := m.tree.Find(weight, filter)

	results := make([]nearestResult, 0, m.resultLimit)
	for pos, state := range finder.Search(m.camera) {
		results = append(results, nearestResult{pos: pos, state: state, distance: m.distanceToCamera(pos)})
		if len(results) >= m.resultLimit {
			break
		}
	}
	return results
}

func (m model) distanceToCamera(pos voxel.ChunkPos) float64 {
	dx := float64(pos.X - m.camera.X)
	dy := float64(pos.Y - m.camera.Y)
	dz := float64(pos.Z - m.camera.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
