// Package interpolation provides piecewise-linear interpolation of
// scattered planar data: the input points are Delaunay-triangulated and
// queries are answered by barycentric interpolation within the
// containing triangle. Points outside the convex hull evaluate to NaN.
package interpolation

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrTooFewPoints is returned when fewer than three non-degenerate
// points are available, so no triangulation exists.
var ErrTooFewPoints = errors.New("interpolation: need at least three non-collinear points")

// LinearND interpolates values over a triangulation of scattered 2D
// points.
type LinearND struct {
	pts  []r2.Vec
	vals []float64
	tris [][3]int
}

// NewLinearND triangulates the given points. pts and vals must have
// equal length.
func NewLinearND(pts []r2.Vec, vals []float64) (*LinearND, error) {
	if len(pts) != len(vals) {
		return nil, errors.New("interpolation: points and values length mismatch")
	}
	if len(pts) < 3 {
		return nil, ErrTooFewPoints
	}
	tris := triangulate(pts)
	if len(tris) == 0 {
		return nil, ErrTooFewPoints
	}
	return &LinearND{
		pts:  append([]r2.Vec(nil), pts...),
		vals: append([]float64(nil), vals...),
		tris: tris,
	}, nil
}

// At evaluates the interpolant at p. Queries outside the convex hull of
// the input points return NaN.
func (l *LinearND) At(p r2.Vec) float64 {
	const tol = 1e-9
	for _, t := range l.tris {
		a, b, c := l.pts[t[0]], l.pts[t[1]], l.pts[t[2]]
		den := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
		if math.Abs(den) < 1e-300 {
			continue
		}
		wa := ((b.Y-c.Y)*(p.X-c.X) + (c.X-b.X)*(p.Y-c.Y)) / den
		wb := ((c.Y-a.Y)*(p.X-c.X) + (a.X-c.X)*(p.Y-c.Y)) / den
		wc := 1 - wa - wb
		if wa >= -tol && wb >= -tol && wc >= -tol {
			return wa*l.vals[t[0]] + wb*l.vals[t[1]] + wc*l.vals[t[2]]
		}
	}
	return math.NaN()
}

// triangulate builds a Delaunay triangulation by Bowyer-Watson
// insertion under a super triangle enclosing every input point.
func triangulate(pts []r2.Vec) [][3]int {
	n := len(pts)
	work := append([]r2.Vec(nil), pts...)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	work = append(work,
		r2.Vec{X: cx - 20*span, Y: cy - span},
		r2.Vec{X: cx + 20*span, Y: cy - span},
		r2.Vec{X: cx, Y: cy + 20*span},
	)
	tris := [][3]int{{n, n + 1, n + 2}}

	for i := 0; i < n; i++ {
		p := work[i]

		// Triangles whose circumcircle contains p form the insertion
		// cavity; its boundary edges are those not shared by two cavity
		// triangles.
		var cavity [][3]int
		var kept [][3]int
		for _, t := range tris {
			if inCircumcircle(work[t[0]], work[t[1]], work[t[2]], p) {
				cavity = append(cavity, t)
			} else {
				kept = append(kept, t)
			}
		}

		edgeCount := make(map[[2]int]int)
		for _, t := range cavity {
			for _, e := range [][2]int{{t[0], t[1]}, {t[1], t[2]}, {t[2], t[0]}} {
				key := e
				if key[0] > key[1] {
					key[0], key[1] = key[1], key[0]
				}
				edgeCount[key]++
			}
		}
		for edge, count := range edgeCount {
			if count == 1 {
				kept = append(kept, [3]int{edge[0], edge[1], i})
			}
		}
		tris = kept
	}

	// Drop triangles touching the super vertices and degenerate slivers
	// from near-collinear inputs.
	var out [][3]int
	for _, t := range tris {
		if t[0] >= n || t[1] >= n || t[2] >= n {
			continue
		}
		a, b, c := work[t[0]], work[t[1]], work[t[2]]
		area := math.Abs((b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y))
		if area < 1e-12*span*span {
			continue
		}
		out = append(out, t)
	}
	return out
}

// inCircumcircle reports whether d lies strictly inside the circle
// through a, b, c, with the determinant sign corrected for triangle
// handedness.
func inCircumcircle(a, b, c, d r2.Vec) bool {
	clockwise := math.Signbit((b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y))
	ax, ay := a.X-d.X, a.Y-d.Y
	bx, by := b.X-d.X, b.Y-d.Y
	cx, cy := c.X-d.X, c.Y-d.Y
	det := (ax*ax+ay*ay)*(bx*cy-cx*by) -
		(bx*bx+by*by)*(ax*cy-cx*ay) +
		(cx*cx+cy*cy)*(ax*by-bx*ay)
	if clockwise {
		return det < 0
	}
	return det > 0
}
