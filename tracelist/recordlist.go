package tracelist

import (
	"os"

	"github.com/mseedgo/miniseed/encoding"
	"github.com/mseedgo/miniseed/errs"
	"github.com/mseedgo/miniseed/record"
)

// RecordLocator identifies where a RecordPtr's encoded bytes live, per
// §4.H's "(buffer_ptr | file_ptr | filename, offset)". Exactly one of
// Buffer or FileName is set; an open file handle is not retained across
// calls, only its name, since Go's GC-managed ownership model makes a
// held *os.File a poor match for a structure that is expected to outlive
// many reader calls.
type RecordLocator struct {
	Buffer   []byte
	FileName string
	Offset   int64
}

// RecordPtr is one record's header copy plus enough information to reopen
// its encoded payload later, as appended to a Segment when AddRecord is
// called with recordList true (§4.H step 5).
type RecordPtr struct {
	Header     *record.Record
	Locator    RecordLocator
	DataOffset int
	DataSize   int
}

// payload reopens rp's encoded bytes (§4.H's unpack_record_list).
func (rp *RecordPtr) payload() ([]byte, error) {
	if rp.Locator.Buffer != nil {
		end := rp.DataOffset + rp.DataSize
		if end > len(rp.Locator.Buffer) {
			return nil, errs.ErrBufferTooShort
		}

		return rp.Locator.Buffer[rp.DataOffset:end], nil
	}

	if rp.Locator.FileName != "" {
		f, err := os.Open(rp.Locator.FileName)
		if err != nil {
			return nil, errs.Wrap(errs.GenError, err)
		}
		defer f.Close()

		buf := make([]byte, rp.DataSize)
		if _, err := f.ReadAt(buf, rp.Locator.Offset+int64(rp.DataOffset)); err != nil {
			return nil, errs.Wrap(errs.GenError, err)
		}

		return buf, nil
	}

	return nil, errs.ErrRecordListClosed
}

// UnpackRecordList implements §4.H's deferred-decode operation: it walks
// seg.Records in temporal order, decodes each record's payload, and
// concatenates the results into one DecodedSamples sized by
// seg.SampleCount. Fails with ErrSegmentMismatch if the decoded sample
// count does not match.
func UnpackRecordList(seg *Segment) (*record.DecodedSamples, error) {
	if len(seg.Records) == 0 {
		return nil, errs.ErrSegmentMismatch
	}

	sampleType := record.SampleTypeOf(seg.Records[0].Header.Encoding)
	out := &record.DecodedSamples{Type: sampleType}

	switch sampleType {
	case record.SampleTypeInt32:
		out.Int32 = make([]int32, 0, seg.SampleCount)
	case record.SampleTypeFloat32:
		out.Float32 = make([]float32, 0, seg.SampleCount)
	case record.SampleTypeFloat64:
		out.Float64 = make([]float64, 0, seg.SampleCount)
	}

	var total int64
	for i := range seg.Records {
		rp := &seg.Records[i]

		payload, err := rp.payload()
		if err != nil {
			return nil, err
		}

		swap := rp.Header.SwapFlags&record.SwapPayload != 0
		decoded, err := encoding.Decode(rp.Header.Encoding, payload, rp.Header.SampleCount, swap)
		if err != nil {
			return nil, err
		}

		switch sampleType {
		case record.SampleTypeText:
			out.Text += decoded.Text
		case record.SampleTypeFloat32:
			out.Float32 = append(out.Float32, decoded.Float32...)
		case record.SampleTypeFloat64:
			out.Float64 = append(out.Float64, decoded.Float64...)
		default:
			out.Int32 = append(out.Int32, decoded.Int32...)
		}

		total += rp.Header.SampleCount
	}

	if total != seg.SampleCount {
		return nil, errs.ErrSegmentMismatch
	}

	return out, nil
}
