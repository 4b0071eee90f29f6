package distribution

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// Simplify reduces cdf to at most keep control points with the
// Visvalingam-Whyatt algorithm. The end points always survive and the
// result is a subset of the input, so a valid CDF stays valid.
// Both axes are normalized to [0,1] first; otherwise the byte axis, which
// spans several orders of magnitude, would dominate the triangle areas.
func Simplify(cdf CDF, keep int) CDF {
	if keep < 2 {
		keep = 2
	}
	if len(cdf) <= keep {
		return cdf.Clone()
	}

	minX, maxX := cdf[0].X, cdf[len(cdf)-1].X
	spanX := maxX - minX
	if spanX <= 0 {
		spanX = 1
	}

	ls := make(orb.LineString, 0, len(cdf))
	byPoint := make(map[orb.Point]Point, len(cdf))
	for _, p := range cdf {
		np := orb.Point{(p.X - minX) / spanX, p.Y / MaxPercentile}
		ls = append(ls, np)
		byPoint[np] = p
	}

	simplified := simplify.VisvalingamKeep(keep).Simplify(ls).(orb.LineString)

	out := make(CDF, 0, len(simplified))
	for _, np := range simplified {
		out = append(out, byPoint[np])
	}
	return out
}
