package archive

import (
	"github.com/mseedgo/miniseed/errs"
	"github.com/mseedgo/miniseed/record"
	"github.com/mseedgo/miniseed/reader"
	"github.com/mseedgo/miniseed/selection"
)

// memSource adapts an in-memory byte slice to source.Source so a
// decompressed block's concatenated records can be fed through the same
// reader.StreamState state machine a file-backed stream uses.
type memSource struct {
	buf []byte
	pos int
}

func (s *memSource) Read(p []byte) (int, error) {
	if s.pos >= len(s.buf) {
		return 0, nil
	}

	n := copy(p, s.buf[s.pos:])
	s.pos += n

	return n, nil
}

func (s *memSource) EOF() bool    { return s.pos >= len(s.buf) }
func (s *memSource) Close() error { return nil }

// DecodeBlock parses every record out of a decompressed block (as returned
// by Reader.NextBlock), applying flags the same way reader.StreamState
// would for a file-backed stream.
func DecodeBlock(block []byte, flags record.ControlFlags) ([]*record.Record, error) {
	st := reader.New(&memSource{buf: block}, flags)
	defer st.Close()

	var records []*record.Record
	for {
		rec, err := st.ReadNext(selection.List(nil))
		if err != nil {
			if errs.CodeOf(err) == errs.EndOfFile {
				return records, nil
			}

			return records, err
		}
		records = append(records, rec)
	}
}
