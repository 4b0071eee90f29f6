// Package trace reads and writes flow trace files.
//
// A trace is plain text: the first line holds the number of flows, every
// following line one flow as "<src> <dst> <size bytes> <start seconds>"
// with the start time printed to nine decimals. Files ending in ".gz" are
// gzip compressed.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/dcn-sim/trafficgen/sim/traffic"
)

// Trace is a flow trace read back into memory.
type Trace struct {
	Header int64 // flow count announced on the first line
	Flows  []traffic.Flow
}

// ReadFile reads the trace at path, decompressing ".gz" files.
func ReadFile(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if IsCompressed(path) {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}
	t, err := ReadTrace(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadTrace parses a trace. It does not check the header against the
// number of flows; Summarize reports that.
func ReadTrace(r io.Reader) (*Trace, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read trace header: %w", err)
		}
		return nil, fmt.Errorf("empty trace: missing flow count header")
	}
	header, err := strconv.ParseInt(strings.TrimSpace(scanner.Text()), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("line 1: flow count header: %w", err)
	}

	t := &Trace{Header: header}
	if header > 0 && header < 1<<24 {
		t.Flows = make([]traffic.Flow, 0, header)
	}
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		f, err := parseFlow(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		t.Flows = append(t.Flows, f)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return t, nil
}
