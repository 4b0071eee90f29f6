package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/dcn-sim/trafficgen/sim/traffic"
)

// Writer produces a flow trace file: a flow count header line followed by
// one line per flow.
//
// The count is only known once generation ends, so flow lines are spooled
// to a temporary file next to the destination. Close writes the header and
// the spooled lines into a second temporary file in one pass and renames it
// over the destination. The destination therefore either does not exist or
// holds a complete trace whose header equals its line count.
type Writer struct {
	path   string
	spool  *os.File
	buffer *bufio.Writer
	count  int64
	closed bool
}

// NewWriter starts a trace destined for path. A ".gz" suffix selects gzip
// compression of the final file.
func NewWriter(path string) (*Writer, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create trace directory: %w", err)
	}
	spool, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.spool")
	if err != nil {
		return nil, fmt.Errorf("create trace spool: %w", err)
	}
	return &Writer{
		path:   path,
		spool:  spool,
		buffer: bufio.NewWriterSize(spool, 1<<20),
	}, nil
}

// Write appends one flow line.
func (w *Writer) Write(f traffic.Flow) error {
	if _, err := w.buffer.WriteString(f.String()); err != nil {
		return fmt.Errorf("error writing flow to spool: %w", err)
	}
	if err := w.buffer.WriteByte('\n'); err != nil {
		return fmt.Errorf("error writing flow to spool: %w", err)
	}
	w.count++
	return nil
}

// Count returns the number of flows written so far.
func (w *Writer) Count() int64 {
	return w.count
}

// Path returns the destination path.
func (w *Writer) Path() string {
	return w.path
}

// Close writes the final trace and removes the spool.
func (w *Writer) Close() (err error) {
	if w.closed {
		return nil
	}
	w.closed = true
	defer func() {
		err = errors.Join(err, w.removeSpool())
	}()

	if err := w.buffer.Flush(); err != nil {
		return fmt.Errorf("flush trace spool: %w", err)
	}
	if _, err := w.spool.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind trace spool: %w", err)
	}

	out, err := os.CreateTemp(filepath.Dir(w.path), "."+filepath.Base(w.path)+".*.partial")
	if err != nil {
		return fmt.Errorf("create trace output: %w", err)
	}
	if err := w.writeFinal(out); err != nil {
		out.Close()
		os.Remove(out.Name())
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return fmt.Errorf("close trace output: %w", err)
	}
	if err := os.Rename(out.Name(), w.path); err != nil {
		os.Remove(out.Name())
		return fmt.Errorf("publish trace: %w", err)
	}
	return nil
}

// writeFinal emits the header and copies the spooled flow lines to out.
func (w *Writer) writeFinal(out io.Writer) error {
	var gz *gzip.Writer
	if IsCompressed(w.path) {
		gz = gzip.NewWriter(out)
		out = gz
	}
	bw := bufio.NewWriterSize(out, 1<<20)
	if _, err := bw.WriteString(strconv.FormatInt(w.count, 10) + "\n"); err != nil {
		return fmt.Errorf("write trace header: %w", err)
	}
	if _, err := io.Copy(bw, w.spool); err != nil {
		return fmt.Errorf("copy flows into trace: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush trace: %w", err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("finish gzip stream: %w", err)
		}
	}
	return nil
}

// Abort discards everything written; the destination is left untouched.
func (w *Writer) Abort() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.removeSpool()
}

func (w *Writer) removeSpool() error {
	return errors.Join(w.spool.Close(), os.Remove(w.spool.Name()))
}

// IsCompressed reports whether path names a gzip trace.
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, ".gz")
}
