package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInspect_ValidTrace(t *testing.T) {
	// GIVEN a freshly generated trace
	opts := testOptions(t)
	res, err := runGenerate(opts)
	require.NoError(t, err)

	// WHEN it is inspected with the run parameters
	inspectHosts, inspectBandwidth, inspectDuration = opts.Hosts, opts.Bandwidth, opts.Duration
	defer func() { inspectHosts, inspectBandwidth, inspectDuration = 0, "", 0 }()
	var out bytes.Buffer
	err = runInspect(&out, res.Output)

	// THEN it passes and the table shows the offered load
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Offered load")
	assert.Contains(t, out.String(), "Header matches")
}

func TestRunInspect_ViolationsFail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("3\n0 0 10 1.000000000\n1 0 5 1.000000001\n"), 0o644))

	var out bytes.Buffer
	err := runInspect(&out, path)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errInvalidTrace))
	assert.Contains(t, out.String(), "Self flows")
}

func TestRunInspect_UnreadableTrace(t *testing.T) {
	var out bytes.Buffer
	err := runInspect(&out, filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, errInvalidTrace))
	assert.Empty(t, out.String())
}

func TestPrintDistributions_ListsFilesWithStatistics(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_tiny.txt"), []byte("0 0\n10 50\n20 100\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_broken.txt"), []byte("0 0\n10 40\n"), 0o644))

	var out bytes.Buffer
	require.NoError(t, printDistributions(&out, dir))

	text := out.String()
	assert.Contains(t, text, "b_tiny.txt")
	assert.Contains(t, text, "10.0", "mean of the tiny distribution")
	assert.Contains(t, text, "a_broken.txt")
	assert.Contains(t, text, "invalid")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("a_broken.txt")), bytes.Index(out.Bytes(), []byte("b_tiny.txt")))
}

func TestPrintDistributions_MissingDirectory(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, printDistributions(&out, filepath.Join(t.TempDir(), "nope")))
}
