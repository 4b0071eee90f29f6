package distribution

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dcn-sim/trafficgen/sim"
)

// Parse reads a distribution file: one "<size> <percentile>" pair per line.
// Blank lines and lines starting with '#' are skipped. The result is not
// validated; use NewSampler for that.
func Parse(r io.Reader) (CDF, error) {
	var cdf CDF
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: want 2 fields, got %d", sim.ErrInvalidDistribution, lineNo, len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: size %q: %v", sim.ErrInvalidDistribution, lineNo, fields[0], err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: percentile %q: %v", sim.ErrInvalidDistribution, lineNo, fields[1], err)
		}
		if x < 0 {
			return nil, fmt.Errorf("%w: line %d: negative size %v", sim.ErrInvalidDistribution, lineNo, x)
		}
		cdf = append(cdf, Point{X: x, Y: y})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading distribution: %w", err)
	}
	return cdf, nil
}

// LoadFile parses and validates the distribution at path.
func LoadFile(path string) (*Sampler, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open distribution: %w", err)
	}
	defer f.Close()

	cdf, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s, err := NewSampler(cdf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logrus.Debugf("Loaded distribution %s: %d points, sizes [%v, %v], mean %.1f bytes",
		path, s.Len(), s.Min(), s.Max(), s.Mean())
	return s, nil
}

// Load resolves name against the distributions directory dir and loads it.
// An absolute name or one containing a path separator is used as given.
func Load(dir, name string) (*Sampler, error) {
	return LoadFile(Resolve(dir, name))
}

// Resolve returns the path Load would open for name.
func Resolve(dir, name string) string {
	if filepath.IsAbs(name) || strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	return filepath.Join(dir, name)
}

// FileInfo describes one file of the distributions directory.
// Err is set when the file does not hold a valid CDF; the other
// statistics are then zero.
type FileInfo struct {
	Name   string
	Points int
	Min    float64
	Max    float64
	Mean   float64
	Err    error
}

// List enumerates the regular files of dir, sorted by name.
func List(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list distributions: %w", err)
	}
	infos := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info := FileInfo{Name: e.Name()}
		s, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			info.Err = err
		} else {
			info.Points = s.Len()
			info.Min = s.Min()
			info.Max = s.Max()
			info.Mean = s.Mean()
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}
