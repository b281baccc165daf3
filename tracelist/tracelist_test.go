package tracelist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mseedgo/miniseed/encoding"
	"github.com/mseedgo/miniseed/nstime"
	"github.com/mseedgo/miniseed/record"
)

func sampleRec(sid string, start nstime.NsTime, rate float64, n int64) *record.Record {
	samples := &record.DecodedSamples{Type: record.SampleTypeInt32, Int32: make([]int32, n)}
	payload, consumed, err := encoding.Encode(record.EncodingInt32, samples, 4096)
	if err != nil {
		panic(err)
	}
	if int64(consumed) != n {
		panic("sampleRec: encoder did not consume all samples")
	}

	return &record.Record{
		SourceID:           sid,
		StartTime:          start,
		SampleRate:         rate,
		Encoding:           record.EncodingInt32,
		SampleCount:        n,
		PublicationVersion: 1,
		DataPayload:        payload,
	}
}

func TestAddRecord_NewSegment(t *testing.T) {
	tl := New()

	rec := sampleRec("FDSN:XX_AA___B_H_Z", 0, 100, 10)
	id, err := tl.AddRecord(rec, RecordLocator{}, false)
	require.NoError(t, err)
	require.Equal(t, "FDSN:XX_AA___B_H_Z", id.SID)
	require.Len(t, id.Segments(), 1)
	require.Equal(t, int64(10), id.Segments()[0].SampleCount)
}

func TestAddRecord_AppendsWithinTolerance(t *testing.T) {
	tl := New()

	first := sampleRec("FDSN:XX_AA___B_H_Z", 0, 100, 10)
	id, err := tl.AddRecord(first, RecordLocator{}, false)
	require.NoError(t, err)

	next := sampleRec("FDSN:XX_AA___B_H_Z", first.EndTime()+nstime.NsTime(1e9/100), 100, 10)
	id2, err := tl.AddRecord(next, RecordLocator{}, false)
	require.NoError(t, err)
	require.Same(t, id, id2)
	require.Len(t, id.Segments(), 1)
	require.Equal(t, int64(20), id.Segments()[0].SampleCount)
}

func TestAddRecord_PrependsWithinTolerance(t *testing.T) {
	tl := New()

	second := sampleRec("FDSN:XX_AA___B_H_Z", 1_000_000_000, 100, 10)
	_, err := tl.AddRecord(second, RecordLocator{}, false)
	require.NoError(t, err)

	first := sampleRec("FDSN:XX_AA___B_H_Z", 0, 100, 10)
	_, err = tl.AddRecord(first, RecordLocator{}, false)
	require.NoError(t, err)

	id := tl.TraceIDs()[0]
	require.Len(t, id.Segments(), 1)
	require.Equal(t, int64(20), id.Segments()[0].SampleCount)
	require.Equal(t, first.StartTime, id.Segments()[0].StartTime)
}

func TestAddRecord_GapCreatesNewSegment(t *testing.T) {
	tl := New()

	first := sampleRec("FDSN:XX_AA___B_H_Z", 0, 100, 10)
	_, err := tl.AddRecord(first, RecordLocator{}, false)
	require.NoError(t, err)

	// Far beyond any tolerance window.
	gapStart := first.EndTime() + nstime.NsTime(10*1e9)
	second := sampleRec("FDSN:XX_AA___B_H_Z", gapStart, 100, 10)
	_, err = tl.AddRecord(second, RecordLocator{}, false)
	require.NoError(t, err)

	id := tl.TraceIDs()[0]
	require.Len(t, id.Segments(), 2)
}

func TestAddRecord_AutoHealMergesBridgedSegments(t *testing.T) {
	tl := New(WithAutoHeal(true))

	interval := nstime.NsTime(1e9 / 100)

	first := sampleRec("FDSN:XX_AA___B_H_Z", 0, 100, 10)
	_, err := tl.AddRecord(first, RecordLocator{}, false)
	require.NoError(t, err)

	gapStart := first.EndTime() + nstime.NsTime(10*1e9)
	third := sampleRec("FDSN:XX_AA___B_H_Z", gapStart, 100, 10)
	_, err = tl.AddRecord(third, RecordLocator{}, false)
	require.NoError(t, err)

	id := tl.TraceIDs()[0]
	require.Len(t, id.Segments(), 2)

	// The bridging record abuts both the tail of segment one and the head
	// of segment two.
	bridgeStart := first.EndTime() + interval
	bridge := sampleRec("FDSN:XX_AA___B_H_Z", bridgeStart, 100, 10)
	bridge.SampleCount = int64((gapStart - bridgeStart) / interval)
	_, err = tl.AddRecord(bridge, RecordLocator{}, false)
	require.NoError(t, err)

	id = tl.TraceIDs()[0]
	require.Len(t, id.Segments(), 1)
}

func TestAddRecord_SplitByVersion(t *testing.T) {
	tl := New(WithSplitVersion(SplitByVersion, nil))

	v1 := sampleRec("FDSN:XX_AA___B_H_Z", 0, 100, 10)
	v1.PublicationVersion = 1
	v2 := sampleRec("FDSN:XX_AA___B_H_Z", 0, 100, 10)
	v2.PublicationVersion = 2

	_, err := tl.AddRecord(v1, RecordLocator{}, false)
	require.NoError(t, err)
	_, err = tl.AddRecord(v2, RecordLocator{}, false)
	require.NoError(t, err)

	require.Len(t, tl.TraceIDs(), 2)
}

func TestAddRecord_AscendingOrder(t *testing.T) {
	tl := New()

	_, err := tl.AddRecord(sampleRec("FDSN:XX_BB___B_H_Z", 0, 100, 10), RecordLocator{}, false)
	require.NoError(t, err)
	_, err = tl.AddRecord(sampleRec("FDSN:XX_AA___B_H_Z", 0, 100, 10), RecordLocator{}, false)
	require.NoError(t, err)

	ids := tl.TraceIDs()
	require.Len(t, ids, 2)
	require.Equal(t, "FDSN:XX_AA___B_H_Z", ids[0].SID)
	require.Equal(t, "FDSN:XX_BB___B_H_Z", ids[1].SID)
}

func TestAddRecord_RecordListAndUnpack(t *testing.T) {
	tl := New()

	first := sampleRec("FDSN:XX_AA___B_H_Z", 0, 100, 4)
	id, err := tl.AddRecord(first, RecordLocator{Buffer: first.DataPayload}, true)
	require.NoError(t, err)

	seg := id.Segments()[0]
	require.Len(t, seg.Records, 1)
	seg.Records[0].DataOffset = 0
	seg.Records[0].DataSize = len(first.DataPayload)

	decoded, err := UnpackRecordList(seg)
	require.NoError(t, err)
	require.Equal(t, record.SampleTypeInt32, decoded.Type)
	require.Len(t, decoded.Int32, 4)
}

func TestFind_HitsHashIndexUnderSplitNone(t *testing.T) {
	tl := New()

	want, err := tl.AddRecord(sampleRec("FDSN:XX_AA___B_H_Z", 0, 100, 10), RecordLocator{}, false)
	require.NoError(t, err)

	got, ok := tl.Find("FDSN:XX_AA___B_H_Z", 1)
	require.True(t, ok)
	require.Same(t, want, got)

	_, ok = tl.Find("FDSN:XX_ZZ___B_H_Z", 1)
	require.False(t, ok)
}

func TestFind_FallsBackToSkipListUnderSplitByVersion(t *testing.T) {
	tl := New(WithSplitVersion(SplitByVersion, nil))

	v1 := sampleRec("FDSN:XX_AA___B_H_Z", 0, 100, 10)
	v1.PublicationVersion = 1
	v2 := sampleRec("FDSN:XX_AA___B_H_Z", 0, 100, 10)
	v2.PublicationVersion = 2

	wantV1, err := tl.AddRecord(v1, RecordLocator{}, false)
	require.NoError(t, err)
	wantV2, err := tl.AddRecord(v2, RecordLocator{}, false)
	require.NoError(t, err)

	gotV1, ok := tl.Find("FDSN:XX_AA___B_H_Z", 1)
	require.True(t, ok)
	require.Same(t, wantV1, gotV1)

	gotV2, ok := tl.Find("FDSN:XX_AA___B_H_Z", 2)
	require.True(t, ok)
	require.Same(t, wantV2, gotV2)
}
