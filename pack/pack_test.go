package pack

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mseedgo/miniseed/encoding"
	"github.com/mseedgo/miniseed/header"
	"github.com/mseedgo/miniseed/record"
	"github.com/mseedgo/miniseed/tracelist"
)

func int32Samples(n int) *record.DecodedSamples {
	s := &record.DecodedSamples{Type: record.SampleTypeInt32, Int32: make([]int32, n)}
	for i := range s.Int32 {
		s.Int32[i] = int32(i)
	}

	return s
}

func TestPack_DefaultsRecordLengthAndEncoding(t *testing.T) {
	tpl := &Template{
		Header:  record.Record{SourceID: "FDSN:XX_AA___B_H_Z", SampleRate: 100},
		Samples: int32Samples(4000),
	}

	var bufs [][]byte
	emitted, err := Pack(tpl, -1, -1, record.FlagFlushData, func(b []byte) error {
		bufs = append(bufs, append([]byte(nil), b...))
		return nil
	})
	require.NoError(t, err)
	require.Greater(t, emitted, 0)
	require.Equal(t, emitted, len(bufs))

	for _, b := range bufs {
		require.LessOrEqual(t, len(b), DefaultRecordLength)
		rec, _, _, err := header.Parse(b, record.FlagValidateCRC)
		require.NoError(t, err)
		require.Equal(t, record.EncodingSteim2, rec.Encoding)
	}
}

func TestPack_WithoutFlushLeavesRemainder(t *testing.T) {
	tpl := &Template{
		Header:  record.Record{SourceID: "FDSN:XX_AA___B_H_Z", SampleRate: 100},
		Samples: int32Samples(10),
	}

	emitted, err := Pack(tpl, 4096, int(record.EncodingInt32), 0, func([]byte) error {
		t.Fatal("handler should not be called; entire buffer is a remainder")
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 0, emitted)
	require.Equal(t, 10, len(tpl.Samples.Int32))
}

func TestPack_FlushEmitsRemainder(t *testing.T) {
	tpl := &Template{
		Header:  record.Record{SourceID: "FDSN:XX_AA___B_H_Z", SampleRate: 100},
		Samples: int32Samples(10),
	}

	var emittedBuf []byte
	emitted, err := Pack(tpl, 4096, int(record.EncodingInt32), record.FlagFlushData, func(b []byte) error {
		emittedBuf = append([]byte(nil), b...)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, emitted)
	require.Empty(t, tpl.Samples.Int32)

	rec, _, _, err := header.Parse(emittedBuf, record.FlagValidateCRC|record.FlagUnpackData)
	require.NoError(t, err)
	require.Equal(t, int64(10), rec.SampleCount)
}

func TestPack_V2RoundTrip(t *testing.T) {
	tpl := &Template{
		Header:  record.Record{SourceID: "FDSN:XX_AA__BHZ", SampleRate: 100},
		Samples: int32Samples(5),
	}

	var buf []byte
	_, err := Pack(tpl, 512, int(record.EncodingInt32), record.FlagFlushData|record.FlagPackVer2, func(b []byte) error {
		buf = append([]byte(nil), b...)
		return nil
	})
	require.NoError(t, err)

	rec, _, _, err := header.Parse(buf, 0)
	require.NoError(t, err)
	require.EqualValues(t, 2, rec.FormatVersion)
	require.Equal(t, int64(5), rec.SampleCount)

	offset, size := header.DataBounds(rec)
	decoded, err := encoding.Decode(rec.Encoding, buf[offset:offset+size], rec.SampleCount, rec.SwapFlags&record.SwapPayload != 0)
	require.NoError(t, err)
	require.Equal(t, []int32{0, 1, 2, 3, 4}, decoded.Int32)
}

func TestPackList_PacksEachSegment(t *testing.T) {
	list := tracelist.New()

	rec := &record.Record{
		SourceID:    "FDSN:XX_AA___B_H_Z",
		SampleRate:  100,
		Encoding:    record.EncodingInt32,
		SampleCount: 5,
	}
	id, err := list.AddRecord(rec, tracelist.RecordLocator{}, false)
	require.NoError(t, err)

	seg := id.Segments()[0]
	seg.Samples = int32Samples(5)

	var count int
	total, err := PackList(list, 512, int(record.EncodingInt32), record.FlagFlushData, func([]byte) error {
		count++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, 1, count)
	require.Equal(t, 0, len(id.Segments()), "drained segment should be unlinked")
}

func TestPackList_MaintainMstlKeepsSegment(t *testing.T) {
	list := tracelist.New()

	rec := &record.Record{
		SourceID:    "FDSN:XX_AA___B_H_Z",
		SampleRate:  100,
		Encoding:    record.EncodingInt32,
		SampleCount: 5,
	}
	id, err := list.AddRecord(rec, tracelist.RecordLocator{}, false)
	require.NoError(t, err)
	id.Segments()[0].Samples = int32Samples(5)

	_, err = PackList(list, 512, int(record.EncodingInt32), record.FlagFlushData|record.FlagMaintainMstl, func([]byte) error {
		return nil
	})
	require.NoError(t, err)
	require.Len(t, id.Segments(), 1)
}
