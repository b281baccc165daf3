// Package record defines Record (§3), the canonical in-memory form of one
// miniSEED record, and the enumerations shared across header, encoding,
// reader, tracelist and pack.
package record

import "github.com/mseedgo/miniseed/nstime"

// Encoding identifies the payload codec used by a record (§4.D).
type Encoding uint8

const (
	EncodingText       Encoding = 0
	EncodingInt16      Encoding = 1
	EncodingInt32      Encoding = 3
	EncodingFloat32    Encoding = 4
	EncodingFloat64    Encoding = 5
	EncodingSteim1     Encoding = 10
	EncodingSteim2     Encoding = 11
	EncodingGeoscope24 Encoding = 12
	EncodingGeoscope16_3 Encoding = 13
	EncodingGeoscope16_4 Encoding = 14
	EncodingCDSN       Encoding = 16
	EncodingSRO        Encoding = 30
	EncodingDWWSSN     Encoding = 32
)

func (e Encoding) String() string {
	switch e {
	case EncodingText:
		return "TEXT"
	case EncodingInt16:
		return "INT16"
	case EncodingInt32:
		return "INT32"
	case EncodingFloat32:
		return "FLOAT32"
	case EncodingFloat64:
		return "FLOAT64"
	case EncodingSteim1:
		return "STEIM1"
	case EncodingSteim2:
		return "STEIM2"
	case EncodingGeoscope24:
		return "GEOSCOPE24"
	case EncodingGeoscope16_3:
		return "GEOSCOPE16_3"
	case EncodingGeoscope16_4:
		return "GEOSCOPE16_4"
	case EncodingCDSN:
		return "CDSN"
	case EncodingSRO:
		return "SRO"
	case EncodingDWWSSN:
		return "DWWSSN"
	default:
		return "UNKNOWN"
	}
}

// IsLegacyDecodeOnly reports whether e is one of the gain-ranged legacy
// encodings that this library only decodes, never encodes (§9 open question).
func (e Encoding) IsLegacyDecodeOnly() bool {
	switch e {
	case EncodingGeoscope24, EncodingGeoscope16_3, EncodingGeoscope16_4, EncodingCDSN, EncodingSRO, EncodingDWWSSN:
		return true
	default:
		return false
	}
}

// SampleType is the single-character tag identifying the Go type backing a
// record's decoded samples.
type SampleType byte

const (
	SampleTypeText    SampleType = 't'
	SampleTypeInt32   SampleType = 'i'
	SampleTypeFloat32 SampleType = 'f'
	SampleTypeFloat64 SampleType = 'd'
)

// SampleTypeOf returns the sample type produced by decoding e.
func SampleTypeOf(e Encoding) SampleType {
	switch e {
	case EncodingText:
		return SampleTypeText
	case EncodingFloat32, EncodingGeoscope16_3, EncodingGeoscope16_4:
		return SampleTypeFloat32
	case EncodingFloat64:
		return SampleTypeFloat64
	default:
		return SampleTypeInt32
	}
}

// SampleSize returns the in-memory decoded size, in bytes, of one sample of
// encoding e (not the on-wire size).
func SampleSize(e Encoding) int {
	switch SampleTypeOf(e) {
	case SampleTypeText:
		return 1
	case SampleTypeFloat32:
		return 4
	case SampleTypeFloat64:
		return 8
	default:
		return 4
	}
}

// SwapFlag is a bitmask recording which parts of a record were found in
// non-native byte order and have been (or must be) swapped.
type SwapFlag uint8

const (
	SwapHeader  SwapFlag = 0x01
	SwapPayload SwapFlag = 0x02
)

// ControlFlags packs the caller-facing behavior switches shared by the
// reader, the extra-header facet and the packer (§6).
type ControlFlags uint32

const (
	FlagUnpackData   ControlFlags = 0x0001
	FlagSkipNotData  ControlFlags = 0x0002
	FlagValidateCRC  ControlFlags = 0x0004
	FlagPNameRange   ControlFlags = 0x0008
	FlagAtEndOfFile  ControlFlags = 0x0010
	FlagSequence     ControlFlags = 0x0020
	FlagFlushData    ControlFlags = 0x0040
	FlagPackVer2     ControlFlags = 0x0080
	FlagRecordList   ControlFlags = 0x0100
	FlagMaintainMstl ControlFlags = 0x0200
	FlagPPUpdateTime ControlFlags = 0x0400
)

// Has reports whether all bits of mask are set in f.
func (f ControlFlags) Has(mask ControlFlags) bool { return f&mask == mask }

// RecordFlag is the single uint8 record_flags bitmask carried by the v3
// header (§3). Bit layout mirrors the historical activity/IO/quality byte.
type RecordFlag uint8

const (
	RecordFlagCalibrationSignal RecordFlag = 1 << 0
	RecordFlagTimeTag           RecordFlag = 1 << 1
	RecordFlagClockLocked       RecordFlag = 1 << 2
)

// MinRecLen and MaxRecordLen bound a valid record_length (§3, invariant v).
const (
	MinRecLen    = 40
	MaxRecordLen = 10 * 1024 * 1024
)

// DecodedSamples holds the lazily-decoded sample buffer of a Record. Exactly
// one of the typed slices is populated, selected by Type.
type DecodedSamples struct {
	Type    SampleType
	Int32   []int32
	Float32 []float32
	Float64 []float64
	Text    string
}

// Len returns the number of decoded samples.
func (d *DecodedSamples) Len() int {
	if d == nil {
		return 0
	}
	switch d.Type {
	case SampleTypeText:
		return len(d.Text)
	case SampleTypeFloat32:
		return len(d.Float32)
	case SampleTypeFloat64:
		return len(d.Float64)
	default:
		return len(d.Int32)
	}
}

// RawRecord references the original encoded bytes a Record was parsed from,
// so that packing-through-untouched (repack) and RecordList deferred decode
// do not require re-serializing the header. Per §9's design note on cyclic
// ownership, this is an owned copy, not a back-pointer into a reader buffer:
// the reader copies bytes out before handing a Record to its caller.
type RawRecord struct {
	Bytes []byte
}

// Record is the canonical in-memory form of one miniSEED record (§3).
type Record struct {
	SourceID           string
	FormatVersion      uint8
	SwapFlags          SwapFlag
	StartTime          nstime.NsTime
	SampleRate         float64
	Encoding           Encoding
	PublicationVersion uint8
	SampleCount        int64
	CRC32C             uint32
	RecordFlags        RecordFlag
	ExtraHeaders       string
	DataPayload        []byte
	Decoded            *DecodedSamples
	Raw                *RawRecord
	RecordLength       int
}

// EndTime returns the time of the last sample, per SampleTime(StartTime,
// SampleCount-1, SampleRate), adjusted by any leap seconds the installed
// leap-second table (nstime.SetLeapSecondTable) reports within
// [StartTime, naive end]. Returns StartTime unchanged for zero-sample
// records.
func (r *Record) EndTime() nstime.NsTime {
	if r.SampleCount <= 0 {
		return r.StartTime
	}

	end := nstime.SampleTime(r.StartTime, r.SampleCount-1, r.SampleRate)

	return nstime.AdjustForLeapSeconds(r.StartTime, end)
}

// Clone returns a deep-enough copy of r suitable for use as a packer
// template: header fields and ExtraHeaders/DataPayload are copied, Decoded
// and Raw are shared by reference (callers that mutate samples in place
// should replace Decoded rather than mutate its slices after Clone).
func (r *Record) Clone() *Record {
	clone := *r
	if r.DataPayload != nil {
		clone.DataPayload = append([]byte(nil), r.DataPayload...)
	}

	return &clone
}
