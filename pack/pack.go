// Package pack implements the record and trace-list packers (§4.I): turning
// a header template plus a buffer of decoded samples into one or more wire
// records, each sized to a caller-chosen record length and encoding.
package pack

import (
	"github.com/mseedgo/miniseed/encoding"
	"github.com/mseedgo/miniseed/errs"
	"github.com/mseedgo/miniseed/header"
	"github.com/mseedgo/miniseed/nstime"
	"github.com/mseedgo/miniseed/record"
)

// DefaultRecordLength is substituted when a caller passes -1 for
// recordLength.
const DefaultRecordLength = 4096

// DefaultEncoding is substituted when a caller passes -1 for enc.
const DefaultEncoding = record.EncodingSteim2

// Handler receives one packed record's bytes. Returning a non-nil error
// aborts packing and is propagated from Pack/PackList.
type Handler func(buf []byte) error

// Template is the per-trace packing input (§4.I's record_template plus its
// decoded_samples). Samples is consumed from the front as records are
// packed; callers that want the remainder left in place (rather than the
// default single call) should retain a pointer to the same Template across
// calls.
type Template struct {
	Header  record.Record
	Samples *record.DecodedSamples
}

func resolveRecordLength(n int) int {
	if n == -1 {
		return DefaultRecordLength
	}

	return n
}

func resolveEncoding(enc int) record.Encoding {
	if enc == -1 {
		return DefaultEncoding
	}

	return record.Encoding(enc)
}

func dataOffset(tpl *Template, flags record.ControlFlags) int {
	if flags.Has(record.FlagPackVer2) {
		needB1001 := tpl.Header.RecordFlags&record.RecordFlagTimeTag != 0
		return header.DataOffsetV2(needB1001)
	}

	offset, _ := header.DataBoundsV3(len(tpl.Header.SourceID), len(tpl.Header.ExtraHeaders), 0)

	return offset
}

func dropSamples(samples *record.DecodedSamples, n int) {
	switch samples.Type {
	case record.SampleTypeInt32:
		samples.Int32 = samples.Int32[n:]
	case record.SampleTypeFloat32:
		samples.Float32 = samples.Float32[n:]
	case record.SampleTypeFloat64:
		samples.Float64 = samples.Float64[n:]
	case record.SampleTypeText:
		samples.Text = samples.Text[n:]
	}
}

// Pack implements §4.I's per-record packing loop. It produces records from
// tpl until fewer samples remain than fit a full record's capacity (or,
// when flags carries FlagFlushData, one additional final record holding the
// remainder). recordLength of -1 selects DefaultRecordLength; enc of -1
// selects DefaultEncoding. Returns the number of records emitted; tpl is
// mutated in place so a later call continues from where this one left off.
func Pack(tpl *Template, recordLength, enc int, flags record.ControlFlags, handler Handler) (int, error) {
	if tpl == nil || tpl.Samples == nil {
		return 0, errs.ErrInvalidArgument
	}

	recLen := resolveRecordLength(recordLength)
	encType := resolveEncoding(enc)
	tpl.Header.Encoding = encType

	offset := dataOffset(tpl, flags)
	maxPayload := recLen - offset
	if maxPayload <= 0 {
		return 0, errs.ErrInvalidArgument
	}

	emitted := 0
	for {
		remaining := sampleLen(tpl.Samples)
		if remaining == 0 {
			break
		}

		payload, consumed, err := encoding.Encode(encType, tpl.Samples, maxPayload)
		if err != nil {
			return emitted, err
		}
		if consumed == 0 {
			return emitted, errs.ErrEncodeExhausted
		}

		// consumed == remaining means everything left fit under one
		// record's capacity: this is the trailing remainder, not a full
		// record. Only emit it when the caller asked to flush; otherwise
		// leave it in tpl for a later call.
		isRemainder := consumed == remaining
		if isRemainder && !flags.Has(record.FlagFlushData) {
			break
		}

		rec := tpl.Header.Clone()
		rec.StartTime = tpl.Header.StartTime
		rec.Encoding = encType
		rec.SampleCount = int64(consumed)
		rec.DataPayload = payload
		rec.RecordLength = recLen

		buf, err := header.PackHeader(rec, flags)
		if err != nil {
			return emitted, err
		}

		if err := handler(buf); err != nil {
			return emitted, err
		}
		emitted++

		dropSamples(tpl.Samples, consumed)
		if tpl.Header.SampleRate > 0 {
			tpl.Header.StartTime = nstime.SampleTime(tpl.Header.StartTime, int64(consumed), tpl.Header.SampleRate)
		}

		if isRemainder {
			break
		}
	}

	return emitted, nil
}

func sampleLen(s *record.DecodedSamples) int {
	switch s.Type {
	case record.SampleTypeInt32:
		return len(s.Int32)
	case record.SampleTypeFloat32:
		return len(s.Float32)
	case record.SampleTypeFloat64:
		return len(s.Float64)
	case record.SampleTypeText:
		return len(s.Text)
	default:
		return 0
	}
}
