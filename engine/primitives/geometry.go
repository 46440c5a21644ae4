package primitives

import (
	"github.com/Carmen-Shannon/termcad/engine/scene"
	"github.com/chewxy/math32"
)

// Geometry is a vertex list and the index pairs of its edges.
type Geometry struct {
	Vertices [][3]float32
	Edges    [][2]int
}

// GenerateGeometry builds the unit-sized wireframe for g. Unknown types produce an empty Geometry.
//
// Parameters:
//   - g: the solid to generate
//
// Returns:
//   - Geometry: the vertices and edges
func GenerateGeometry(g scene.GeometryType) Geometry {
	switch g {
	case scene.GeometryCube:
		return cube()
	case scene.GeometrySphere:
		return sphere(16, 12)
	case scene.GeometryTorus:
		return torus(24, 12, 1.0, 0.3)
	case scene.GeometryIco:
		return icosahedron()
	case scene.GeometryCylinder:
		return cylinder(16, 1.0, 2.0)
	default:
		return Geometry{}
	}
}

func cube() Geometry {
	const s = 0.5
	return Geometry{
		Vertices: [][3]float32{
			{-s, -s, -s}, {s, -s, -s}, {s, s, -s}, {-s, s, -s},
			{-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s},
		},
		Edges: [][2]int{
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			{4, 5}, {5, 6}, {6, 7}, {7, 4},
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		},
	}
}

// sphere has rings+1 latitude rings (poles included) of segments vertices each.
func sphere(segments, rings int) Geometry {
	g := Geometry{
		Vertices: make([][3]float32, 0, (rings+1)*segments),
		Edges:    make([][2]int, 0, (rings+1)*segments+rings*segments),
	}
	for ring := 0; ring <= rings; ring++ {
		phi := math32.Pi * float32(ring) / float32(rings)
		sinPhi, cosPhi := math32.Sincos(phi)
		for seg := 0; seg < segments; seg++ {
			theta := 2 * math32.Pi * float32(seg) / float32(segments)
			sinTheta, cosTheta := math32.Sincos(theta)
			g.Vertices = append(g.Vertices, [3]float32{
				sinPhi * cosTheta * 0.5,
				cosPhi * 0.5,
				sinPhi * sinTheta * 0.5,
			})
		}
	}
	for ring := 0; ring <= rings; ring++ {
		base := ring * segments
		for seg := 0; seg < segments; seg++ {
			g.Edges = append(g.Edges, [2]int{base + seg, base + (seg+1)%segments})
		}
	}
	for seg := 0; seg < segments; seg++ {
		for ring := 0; ring < rings; ring++ {
			g.Edges = append(g.Edges, [2]int{ring*segments + seg, (ring+1)*segments + seg})
		}
	}
	return g
}

func torus(tubeSegments, radialSegments int, major, minor float32) Geometry {
	g := Geometry{
		Vertices: make([][3]float32, 0, tubeSegments*radialSegments),
		Edges:    make([][2]int, 0, 2*tubeSegments*radialSegments),
	}
	for radial := 0; radial < radialSegments; radial++ {
		phi := 2 * math32.Pi * float32(radial) / float32(radialSegments)
		sinPhi, cosPhi := math32.Sincos(phi)
		for tube := 0; tube < tubeSegments; tube++ {
			theta := 2 * math32.Pi * float32(tube) / float32(tubeSegments)
			sinTheta, cosTheta := math32.Sincos(theta)
			r := major + minor*cosTheta
			g.Vertices = append(g.Vertices, [3]float32{
				r * cosPhi * 0.5,
				minor * sinTheta * 0.5,
				r * sinPhi * 0.5,
			})
		}
	}
	for radial := 0; radial < radialSegments; radial++ {
		nextRadial := (radial + 1) % radialSegments
		for tube := 0; tube < tubeSegments; tube++ {
			current := radial*tubeSegments + tube
			g.Edges = append(g.Edges,
				[2]int{current, radial*tubeSegments + (tube+1)%tubeSegments},
				[2]int{current, nextRadial*tubeSegments + tube},
			)
		}
	}
	return g
}

func icosahedron() Geometry {
	phi := (1 + math32.Sqrt(5)) / 2
	var a float32 = 0.3
	b := phi * a
	return Geometry{
		Vertices: [][3]float32{
			{-a, b, 0}, {a, b, 0}, {-a, -b, 0}, {a, -b, 0},
			{0, -a, b}, {0, a, b}, {0, -a, -b}, {0, a, -b},
			{b, 0, -a}, {b, 0, a}, {-b, 0, -a}, {-b, 0, a},
		},
		Edges: [][2]int{
			{0, 1}, {0, 5}, {0, 7}, {0, 10}, {0, 11},
			{1, 5}, {1, 7}, {1, 8}, {1, 9},
			{2, 3}, {2, 4}, {2, 6}, {2, 10}, {2, 11},
			{3, 4}, {3, 6}, {3, 8}, {3, 9},
			{4, 5}, {4, 9}, {4, 11},
			{5, 9}, {5, 11},
			{6, 7}, {6, 8}, {6, 10},
			{7, 8}, {7, 10},
			{8, 9},
			{10, 11},
		},
	}
}

// cylinder halves radius and height so the default solid fits a unit cube like the others.
func cylinder(segments int, radius, height float32) Geometry {
	halfHeight := height * 0.25
	r := radius * 0.5
	g := Geometry{
		Vertices: make([][3]float32, 2*segments),
		Edges:    make([][2]int, 0, 3*segments),
	}
	for seg := 0; seg < segments; seg++ {
		theta := 2 * math32.Pi * float32(seg) / float32(segments)
		sin, cos := math32.Sincos(theta)
		g.Vertices[seg] = [3]float32{r * cos, -halfHeight, r * sin}
		g.Vertices[segments+seg] = [3]float32{r * cos, halfHeight, r * sin}
	}
	for seg := 0; seg < segments; seg++ {
		g.Edges = append(g.Edges, [2]int{seg, (seg + 1) % segments})
	}
	for seg := 0; seg < segments; seg++ {
		g.Edges = append(g.Edges, [2]int{segments + seg, segments + (seg+1)%segments})
	}
	for seg := 0; seg < segments; seg++ {
		g.Edges = append(g.Edges, [2]int{seg, segments + seg})
	}
	return g
}
