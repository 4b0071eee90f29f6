package distribution

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcn-sim/trafficgen/sim"
	"github.com/dcn-sim/trafficgen/sim/internal/testutil"
)

func TestParse_ValidFile(t *testing.T) {
	cdf, err := Parse(strings.NewReader(testutil.TinyDistribution))
	require.NoError(t, err)
	assert.Equal(t, CDF{{0, 0}, {10, 50}, {20, 100}}, cdf)
}

func TestParse_SkipsBlankAndCommentLines(t *testing.T) {
	in := "# web search\n\n0 0\n  10   50  \n\n20 100\n"
	cdf, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Len(t, cdf, 3)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantMsg string
	}{
		{"one field", "0 0\n10\n", "line 2"},
		{"three fields", "0 0 0\n", "line 1"},
		{"bad size", "0 0\nabc 100\n", "line 2"},
		{"bad percentile", "0 0\n10 x\n", "line 2"},
		{"negative size", "-5 0\n10 100\n", "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, sim.ErrInvalidDistribution))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_ResolvesAgainstDirectory(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDistribution(t, dir, "tiny.txt", testutil.TinyDistribution)

	s, err := Load(dir, "tiny.txt")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, s.Mean(), 1e-12)
}

func TestLoad_PathWithSeparatorUsedAsGiven(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteDistribution(t, dir, "tiny.txt", testutil.TinyDistribution)

	s, err := Load("does-not-exist", path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
}

func TestLoad_InvalidCDFRejected(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDistribution(t, dir, "bad.txt", "0 0\n10 60\n5 100\n")

	_, err := Load(dir, "bad.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sim.ErrInvalidDistribution))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir(), "missing.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestList_SortedWithStatistics(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDistribution(t, dir, "WebSearch.txt", testutil.WebSearchDistribution)
	testutil.WriteDistribution(t, dir, "A_tiny.txt", testutil.TinyDistribution)
	testutil.WriteDistribution(t, dir, "broken.txt", "0 5\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	infos, err := List(dir)
	require.NoError(t, err)
	require.Len(t, infos, 3)

	assert.Equal(t, "A_tiny.txt", infos[0].Name)
	assert.NoError(t, infos[0].Err)
	assert.Equal(t, 3, infos[0].Points)
	assert.InDelta(t, 10.0, infos[0].Mean, 1e-12)
	assert.Equal(t, 20.0, infos[0].Max)

	assert.Equal(t, "WebSearch.txt", infos[1].Name)
	assert.InDelta(t, 1711250.0, infos[1].Mean, 1e-6)

	assert.Equal(t, "broken.txt", infos[2].Name)
	assert.True(t, errors.Is(infos[2].Err, sim.ErrInvalidDistribution))
}

func TestList_MissingDirectory(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
