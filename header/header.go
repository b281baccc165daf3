package header

import (
	"github.com/mseedgo/miniseed/errs"
	"github.com/mseedgo/miniseed/record"
)

// Parse dispatches to ParseV3 or ParseV2 depending on buf's signature byte,
// implementing the top-level parse(buf, flags) operation of §4.C.
//
// Returns (rec, 0, false, nil) on success, (nil, needBytes, false, nil) when
// buf does not yet hold a complete record, and (nil, 0, true, nil) when flags
// carries FlagSkipNotData and buf's leading byte should be skipped and
// retried. Any other outcome returns a non-nil error.
func Parse(buf []byte, flags record.ControlFlags) (rec *record.Record, needBytes int, skip bool, err error) {
	if len(buf) < MinProbeBytes {
		return nil, MinProbeBytes - len(buf), false, nil
	}

	if string(buf[0:3]) == V3Magic {
		rec, needBytes, err = ParseV3(buf, flags)
		return rec, needBytes, false, err
	}

	rec, needBytes, err = ParseV2(buf, flags)
	if err != nil {
		if flags.Has(record.FlagSkipNotData) && errs.CodeOf(err) == errs.NotSeed {
			return nil, 0, true, nil
		}
		return nil, 0, false, err
	}
	if rec == nil && needBytes == 0 {
		// ParseV2 signaled skip-one-byte directly (quality byte invalid,
		// FlagSkipNotData set).
		return nil, 0, true, nil
	}

	return rec, needBytes, false, nil
}

// PackHeader serializes rec as a v3 record, or as a v2 record when
// flags carries FlagPackVer2.
func PackHeader(rec *record.Record, flags record.ControlFlags) ([]byte, error) {
	if flags.Has(record.FlagPackVer2) {
		return PackHeaderV2(rec)
	}

	return PackHeaderV3(rec)
}

// DataBounds returns the offset and size of rec's data payload within its
// serialized form, per §4.C's data_bounds operation.
func DataBounds(rec *record.Record) (offset, size int) {
	if rec.FormatVersion == 2 {
		offset = rec.RecordLength - len(rec.DataPayload)
		return offset, len(rec.DataPayload)
	}

	return DataBoundsV3(len(rec.SourceID), len(rec.ExtraHeaders), len(rec.DataPayload))
}
