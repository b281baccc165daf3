// Package reader implements the stream reader (§4.F): it pulls bytes from a
// source.Source, finds record boundaries, and hands back decoded Records one
// at a time through ReadNext, following the state machine described in §4.F
// ("State machine (Stream reader)").
package reader

import (
	"github.com/mseedgo/miniseed/encoding"
	"github.com/mseedgo/miniseed/errs"
	"github.com/mseedgo/miniseed/header"
	"github.com/mseedgo/miniseed/internal/logging"
	"github.com/mseedgo/miniseed/internal/options"
	"github.com/mseedgo/miniseed/internal/pool"
	"github.com/mseedgo/miniseed/record"
	"github.com/mseedgo/miniseed/selection"
	"github.com/mseedgo/miniseed/source"
)

// StreamState is the reader's per-stream state (§4.F): the input source, its
// byte-range bounds, the growable read buffer, and the bookkeeping the main
// loop needs across calls to ReadNext.
type StreamState struct {
	src      source.Source
	pathname string

	hasRange    bool
	startOffset int64
	endOffset   int64
	pos         int64 // bytes consumed from the stream, relative to startOffset

	buf        *pool.ByteBuffer
	readOffset int

	recordsEmitted int
	srcEOF         bool
	closed         bool
	pendingNeed    int // positive "need more bytes" hint from the last parse attempt

	flags  record.ControlFlags
	logger logging.Printer
}

// Option configures a StreamState at construction.
type Option = options.Option[*StreamState]

// WithLogger overrides the default process-wide logging.Printer.
func WithLogger(p logging.Printer) Option {
	return options.NoError[*StreamState](func(s *StreamState) { s.logger = p })
}

// Open opens path for reading. When flags carries FlagPNameRange, a trailing
// "@start-end" byte-range suffix (§6) is parsed off path first.
func Open(path string, flags record.ControlFlags, opts ...Option) (*StreamState, error) {
	bare := path
	var start, end int64
	hasRange := false

	if flags.Has(record.FlagPNameRange) {
		if b, s, e, ok := source.ParsePathRange(path); ok {
			bare, start, end = b, s, e
			hasRange = true
		}
	}

	src, err := source.Open(bare, start, end)
	if err != nil {
		return nil, err
	}

	state := New(src, flags, opts...)
	state.pathname = bare
	state.hasRange = hasRange
	state.startOffset = start
	state.endOffset = end

	return state, nil
}

// New wraps an already-opened source.Source in a StreamState, for callers
// that construct their own Source (e.g. non-file inputs) rather than going
// through Open.
func New(src source.Source, flags record.ControlFlags, opts ...Option) *StreamState {
	state := &StreamState{
		src:    src,
		buf:    pool.GetReadBuffer(),
		flags:  flags,
		logger: logging.Default,
	}
	_ = options.Apply(state, opts...)

	return state
}

// ReadNext implements §4.F's read_next: it returns the next Record matching
// selections (nil selections match everything), errs.ErrEndOfFile when the
// stream is cleanly exhausted, or any other error on malformed input.
func (s *StreamState) ReadNext(selections selection.List) (*record.Record, error) {
	if s.closed {
		return nil, errs.ErrClosed
	}

	for {
		unconsumed := s.buf.Len() - s.readOffset

		// Step 1: stop short of a dangling partial record at a known end.
		if s.hasRange && s.endOffset > 0 {
			total := s.endOffset - s.startOffset
			remaining := total - s.pos - int64(unconsumed)
			if remaining < record.MinRecLen {
				return nil, errs.ErrEndOfFile
			}
		}

		needMore := unconsumed < record.MinRecLen || s.pendingNeed > 0
		if needMore && !s.srcEOF {
			if err := s.fill(); err != nil {
				return nil, err
			}

			unconsumed = s.buf.Len() - s.readOffset
		} else if s.readOffset > 0 {
			s.buf.DiscardFront(s.readOffset)
			s.readOffset = 0
		}

		// Step 5: at EOF with too little buffered to ever form a record.
		if s.srcEOF && unconsumed < record.MinRecLen {
			if s.recordsEmitted > 0 {
				return nil, errs.ErrEndOfFile
			}

			return nil, errs.ErrNotSeed
		}

		effectiveFlags := s.flags
		if s.srcEOF {
			effectiveFlags |= record.FlagAtEndOfFile
		}

		window := s.buf.Bytes()[s.readOffset:]
		rec, need, skip, err := header.Parse(window, effectiveFlags)
		if err != nil {
			return nil, err
		}

		if skip {
			s.logger.Printf(logging.LevelDiag, "reader.ReadNext", "skipping non-data byte at stream position %d", s.pos)
			s.readOffset++
			s.pos++

			continue
		}

		if need > 0 {
			if unconsumed+need > record.MaxRecordLen {
				s.pendingNeed = 0
				if s.flags.Has(record.FlagSkipNotData) {
					s.readOffset++
					s.pos++

					continue
				}

				return nil, errs.ErrOutOfRange
			}

			if s.srcEOF {
				// No more bytes will ever arrive to satisfy need.
				return nil, errs.ErrTruncatedInput
			}

			s.pendingNeed = need

			continue
		}
		s.pendingNeed = 0

		// A record was produced: advance past it regardless of whether it
		// is ultimately returned to the caller.
		s.readOffset += rec.RecordLength
		s.pos += int64(rec.RecordLength)

		if len(selections) > 0 {
			if _, _, ok := selection.Match(selections, rec.SourceID, rec.StartTime, rec.EndTime(), rec.PublicationVersion); !ok {
				continue
			}
		}

		if s.flags.Has(record.FlagUnpackData) && rec.Decoded == nil {
			decoded, err := encoding.Decode(rec.Encoding, rec.DataPayload, rec.SampleCount, rec.SwapFlags&record.SwapPayload != 0)
			if err != nil {
				return nil, err
			}
			rec.Decoded = decoded
		}

		rec.Raw = &record.RawRecord{Bytes: append([]byte(nil), window[:rec.RecordLength]...)}
		s.recordsEmitted++

		return rec, nil
	}
}

// fill reads more bytes from the source into buf, shifting out already
// consumed bytes first (§4.F step 3) and capping growth at MAX_RECORD_LEN
// (§4.F step 2).
func (s *StreamState) fill() error {
	if s.readOffset > 0 {
		s.buf.DiscardFront(s.readOffset)
		s.readOffset = 0
	}

	room := record.MaxRecordLen - s.buf.Len()
	if room <= 0 {
		return nil
	}

	start := s.buf.Len()
	s.buf.ExtendOrGrow(room)
	n, err := s.src.Read(s.buf.B[start : start+room])
	s.buf.SetLength(start + n)
	if err != nil {
		return err
	}

	if n == 0 {
		s.srcEOF = true
	}
	if s.src.EOF() {
		s.srcEOF = true
	}

	return nil
}

// RecordsEmitted returns the number of records returned so far by ReadNext.
func (s *StreamState) RecordsEmitted() int { return s.recordsEmitted }

// Pathname returns the bare pathname the state was opened with (byte-range
// suffix already stripped, if PNAMERANGE applied).
func (s *StreamState) Pathname() string { return s.pathname }

// Close implements §4.F's teardown: releases the input handle and the read
// buffer. Idempotent.
func (s *StreamState) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	pool.PutReadBuffer(s.buf)
	s.buf = nil

	return s.src.Close()
}
