// Package miniseed provides a high-performance, space-efficient binary
// format library for time-series seismic waveform data: parsing and
// packing miniSEED records, extracting and editing extra headers, indexing
// records into merged trace segments, and selecting records by source
// identifier, time range and publication version.
//
// # Core features
//
//   - v2 (legacy) and v3 header parse/pack, with v3 CRC32C validation
//   - TEXT, integer/float, and Steim-1/Steim-2 payload codecs
//   - JSON-Pointer access to v3 extra headers
//   - A stream reader that finds record boundaries in an arbitrary byte
//     source and applies selection-list filtering
//   - A trace list that merges same-source records into contiguous segments
//   - A packer that serializes decoded samples back into records
//
// # Basic usage
//
// Reading every record in a file:
//
//	records, err := miniseed.ReadFile("data.mseed", 0, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, rec := range records {
//	    fmt.Printf("%s %s %d samples\n", rec.SourceID, rec.StartTime, rec.SampleCount)
//	}
//
// This package provides a convenience wrapper around reader. For
// fine-grained control — byte-range reads, custom byte sources, trace
// assembly, packing — use the reader, header, encoding, tracelist and pack
// packages directly.
package miniseed

import (
	"github.com/mseedgo/miniseed/errs"
	"github.com/mseedgo/miniseed/reader"
	"github.com/mseedgo/miniseed/record"
	"github.com/mseedgo/miniseed/selection"
)

// ReadFile reads every record from path with its sample payload decoded
// (FlagUnpackData is always added; pass flags to add FlagValidateCRC,
// FlagSkipNotData, etc.).
// selections may be nil to match every record.
func ReadFile(path string, flags record.ControlFlags, selections selection.List) ([]*record.Record, error) {
	st, err := reader.Open(path, flags|record.FlagUnpackData)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	var records []*record.Record
	for {
		rec, err := st.ReadNext(selections)
		if err != nil {
			if errs.CodeOf(err) == errs.EndOfFile {
				return records, nil
			}

			return records, err
		}

		records = append(records, rec)
	}
}
