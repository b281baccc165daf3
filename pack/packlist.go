package pack

import (
	"github.com/mseedgo/miniseed/errs"
	"github.com/mseedgo/miniseed/record"
	"github.com/mseedgo/miniseed/tracelist"
)

// PackList implements §4.I's pack_list: it walks list's TraceIDs and their
// segments in order, packing each segment's materialized Samples buffer.
// Unless flags carries FlagMaintainMstl, a segment's consumed samples are
// removed as they are packed (start time advanced, sample count decreased),
// and a segment left with zero samples is unlinked from its TraceID.
// Returns the total number of records emitted across every segment.
func PackList(list *tracelist.TraceList, recordLength, enc int, flags record.ControlFlags, handler Handler) (int, error) {
	if list == nil {
		return 0, errs.ErrInvalidArgument
	}

	total := 0
	for _, id := range list.TraceIDs() {
		for _, seg := range id.Segments() {
			if seg.Samples == nil {
				continue
			}

			samples := seg.Samples
			if flags.Has(record.FlagMaintainMstl) {
				// Pack from a shallow copy so seg.Samples keeps every sample.
				cp := *seg.Samples
				samples = &cp
			}

			tpl := &Template{
				Header: record.Record{
					SourceID:   id.SID,
					SampleRate: seg.SampleRate,
					StartTime:  seg.StartTime,
				},
				Samples: samples,
			}
			if list.Split() == tracelist.SplitByVersion {
				tpl.Header.PublicationVersion = id.PubVersion
			} else {
				tpl.Header.PublicationVersion = id.PubVersionSummary
			}

			emitted, err := Pack(tpl, recordLength, enc, flags, handler)
			total += emitted
			if err != nil {
				return total, err
			}

			if !flags.Has(record.FlagMaintainMstl) {
				seg.StartTime = tpl.Header.StartTime
				seg.SampleCount = int64(sampleLen(tpl.Samples))
				if seg.SampleCount == 0 {
					id.Unlink(seg)
				}
			}
		}
	}

	return total, nil
}
