// Package source defines the abstract byte source the stream reader pulls
// from (§6): open/read/eof/close plus an optional byte-range, and a
// filesystem-backed implementation. File/URL I/O plumbing beyond this
// contract is an external collaborator per §1's scope.
package source

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mseedgo/miniseed/errs"
)

// Source is the byte source contract consumed by the stream reader.
// Implementations need not be safe for concurrent use; the reader owns one
// Source per StreamState (§5).
type Source interface {
	// Read reads up to len(p) bytes into p, returning the count read. It
	// returns (0, nil) rather than io.EOF is also accepted; the reader
	// treats either spelling of "no more data right now" identically when
	// combined with EOF().
	Read(p []byte) (int, error)
	// EOF reports whether the source is known to be exhausted.
	EOF() bool
	// Close releases the underlying handle.
	Close() error
}

// RangeSource is implemented by sources that can honor the pathname
// byte-range suffix (§6): seeking to an explicit start offset at open time.
type RangeSource interface {
	Source
	// Pos returns the source's current absolute byte offset.
	Pos() int64
}

// fileSource adapts an *os.File to Source, tracking EOF and position
// explicitly since os.File does not expose either directly.
type fileSource struct {
	f      *os.File
	pos    int64
	end    int64 // 0 means unbounded
	atEOF  bool
}

// Open opens path for reading. When end > 0, reads are capped so that the
// source reports EOF once pos reaches end, implementing the closed side of
// a "@start-end" byte-range suffix (§6); start is honored via an initial
// Seek.
func Open(path string, start, end int64) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.GenError, err)
	}

	if start > 0 {
		if _, err := f.Seek(start, io.SeekStart); err != nil {
			_ = f.Close()
			return nil, errs.Wrap(errs.GenError, err)
		}
	}

	return &fileSource{f: f, pos: start, end: end}, nil
}

func (s *fileSource) Read(p []byte) (int, error) {
	if s.atEOF {
		return 0, nil
	}

	if s.end > 0 {
		remaining := s.end - s.pos
		if remaining <= 0 {
			s.atEOF = true
			return 0, nil
		}
		if int64(len(p)) > remaining {
			p = p[:remaining]
		}
	}

	n, err := s.f.Read(p)
	s.pos += int64(n)
	if err == io.EOF {
		s.atEOF = true
		return n, nil
	}
	if err != nil {
		return n, errs.Wrap(errs.GenError, err)
	}
	if s.end > 0 && s.pos >= s.end {
		s.atEOF = true
	}

	return n, nil
}

func (s *fileSource) EOF() bool   { return s.atEOF }
func (s *fileSource) Pos() int64  { return s.pos }
func (s *fileSource) Close() error {
	if s.f == nil {
		return nil
	}
	return s.f.Close()
}

// ParsePathRange splits a trailing "@START-END" byte-range suffix off path
// (§6), where either bound may be omitted ("@-END", "@START-", "@-").
// Digits only, at most 20 per bound. Returns the bare path and the bounds
// (0 means unset/open) when a suffix is present; ok is false when path
// carries no "@" at all, letting the caller fall back to the whole path.
func ParsePathRange(path string) (bare string, start, end int64, ok bool) {
	idx := strings.LastIndexByte(path, '@')
	if idx < 0 {
		return path, 0, 0, false
	}

	bare = path[:idx]
	rangeStr := path[idx+1:]

	dash := strings.IndexByte(rangeStr, '-')
	if dash < 0 {
		return path, 0, 0, false
	}

	startStr := rangeStr[:dash]
	endStr := rangeStr[dash+1:]

	if len(startStr) > 20 || len(endStr) > 20 {
		return path, 0, 0, false
	}

	if startStr != "" {
		v, err := strconv.ParseInt(startStr, 10, 64)
		if err != nil || v < 0 {
			return path, 0, 0, false
		}
		start = v
	}
	if endStr != "" {
		v, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil || v < 0 {
			return path, 0, 0, false
		}
		end = v
	}

	return bare, start, end, true
}
