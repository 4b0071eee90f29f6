package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplify_KeepsEndpointsAndValidity(t *testing.T) {
	// 101-point CDF of a uniform distribution over [0, 1000] with a kink.
	cdf := make(CDF, 0, 101)
	for i := 0; i <= 100; i++ {
		x := float64(i) * 10
		if i > 50 {
			x = 500 + float64(i-50)*100
		}
		cdf = append(cdf, Point{X: x, Y: float64(i)})
	}
	require.True(t, Validate(cdf))

	out := Simplify(cdf, 5)
	assert.Len(t, out, 5)
	assert.Equal(t, cdf[0], out[0])
	assert.Equal(t, cdf[len(cdf)-1], out[len(out)-1])
	assert.True(t, Validate(out), "simplified CDF must stay valid: %v", out)

	// The kink at percentile 50 carries the most area and must survive.
	assert.Contains(t, out, Point{X: 500, Y: 50})
}

func TestSimplify_ShortInputUnchanged(t *testing.T) {
	cdf := CDF{{0, 0}, {10, 50}, {20, 100}}
	out := Simplify(cdf, 10)
	assert.Equal(t, cdf, out)

	out[0].X = 99
	assert.Equal(t, 0.0, cdf[0].X, "result must not alias the input")
}

func TestSimplify_KeepBelowTwoKeepsEndpoints(t *testing.T) {
	out := Simplify(webSearch, 0)
	assert.Equal(t, CDF{webSearch[0], webSearch[len(webSearch)-1]}, out)
}
