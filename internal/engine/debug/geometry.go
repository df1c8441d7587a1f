// Package debug provides debug visualization utilities.
package debug

import "github.com/go-gl/mathgl/mgl32"

// CubeCorners are the 8 corners of the unit box drawn by Box, spanning
// [-0.5, 0.5] on every axis. Bottom face (z = -0.5) first, counter-clockwise
// from (-x, -y), then the top face in the same order.
var CubeCorners = [8]mgl32.Vec3{
	{-0.5, -0.5, -0.5},
	{0.5, -0.5, -0.5},
	{0.5, 0.5, -0.5},
	{-0.5, 0.5, -0.5},
	{-0.5, -0.5, 0.5},
	{0.5, -0.5, 0.5},
	{0.5, 0.5, 0.5},
	{-0.5, 0.5, 0.5},
}

// CubeEdges are the 12 edges of the unit box as corner index pairs.
var CubeEdges = [12][2]uint32{
	// Bottom face (4 edges)
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	// Top face (4 edges)
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	// Vertical edges (4 edges)
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// CubeEdgeIndexCount is the number of indices drawn for the wireframe (12 edges × 2).
const CubeEdgeIndexCount = len(CubeEdges) * 2

// cornerStride is the byte distance between consecutive positions.
const cornerStride = 3 * 4

// cubeVertexData returns the corners as tightly packed xyz floats.
func cubeVertexData() []float32 {
	data := make([]float32, 0, len(CubeCorners)*3)
	for _, c := range CubeCorners {
		data = append(data, c.X(), c.Y(), c.Z())
	}
	return data
}

// cubeIndexData returns the edge list flattened for a line-list draw.
func cubeIndexData() []uint32 {
	data := make([]uint32, 0, CubeEdgeIndexCount)
	for _, e := range CubeEdges {
		data = append(data, e[0], e[1])
	}
	return data
}
