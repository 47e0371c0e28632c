package history

import (
	"io"
	"strings"
)

const defaultBlockSize = 4096

// ReverseScanner yields the lines of a reader from the end towards the
// start, reading fixed-size blocks instead of the whole content at once.
type ReverseScanner struct {
	r         io.ReaderAt
	offset    int64
	blockSize int

	carry    string
	hasCarry bool
	pending  []string

	line string
	err  error
}

// NewReverseScanner scans r backwards starting at size, the total number
// of readable bytes.
func NewReverseScanner(r io.ReaderAt, size int64) *ReverseScanner {
	return &ReverseScanner{r: r, offset: size, blockSize: defaultBlockSize}
}

// Scan advances to the previous line. It returns false at the start of the
// input or on read error; check Err afterwards.
func (s *ReverseScanner) Scan() bool {
	for {
		if n := len(s.pending); n > 0 {
			s.line = s.pending[n-1]
			s.pending = s.pending[:n-1]
			return true
		}
		if s.offset == 0 {
			if s.hasCarry {
				s.line = s.carry
				s.hasCarry = false
				return true
			}
			return false
		}

		n := int64(s.blockSize)
		if n > s.offset {
			n = s.offset
		}
		start := s.offset - n
		buf := make([]byte, n)
		if _, err := s.r.ReadAt(buf, start); err != nil {
			s.err = err
			return false
		}
		s.offset = start

		data := string(buf)
		if s.hasCarry {
			data += s.carry
		}
		parts := strings.Split(data, "\n")
		// The first part may continue a line from an earlier block; keep
		// it as carry until the block before it is read.
		s.carry = parts[0]
		s.hasCarry = true
		s.pending = parts[1:]
	}
}

// Text returns the line produced by the last successful Scan.
func (s *ReverseScanner) Text() string {
	return s.line
}

// Err returns the first read error encountered, if any.
func (s *ReverseScanner) Err() error {
	return s.err
}
