// Package testutil provides shared test infrastructure for the traffic
// generator. It consolidates distribution fixtures and assertion helpers
// used across the sim/ sub-package tests.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// WebSearchDistribution is the DCTCP web search flow size CDF in the
// "<bytes> <percentile>" distribution file format.
const WebSearchDistribution = `0 0
10000 15
20000 20
30000 30
50000 40
80000 53
200000 60
1000000 70
2000000 80
5000000 90
10000000 97
30000000 100
`

// TinyDistribution is a three-point CDF with mean 10 bytes.
const TinyDistribution = `0 0
10 50
20 100
`

// WriteDistribution writes content to dir/name and returns the full path.
func WriteDistribution(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write distribution %s: %v", path, err)
	}
	return path
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
