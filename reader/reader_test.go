package reader

import (
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mseedgo/miniseed/errs"
	"github.com/mseedgo/miniseed/header"
	"github.com/mseedgo/miniseed/nstime"
	"github.com/mseedgo/miniseed/record"
	"github.com/mseedgo/miniseed/selection"
)

func sampleRecord(sid string) *record.Record {
	return &record.Record{
		SourceID:           sid,
		StartTime:          nstime.Parse("2010-02-27T06:52:14.069539Z"),
		SampleRate:         40.0,
		Encoding:           record.EncodingInt32,
		PublicationVersion: 1,
		SampleCount:        3,
		DataPayload:        []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
	}
}

func writeRecords(t *testing.T, sids ...string) string {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "reader-*.mseed")
	require.NoError(t, err)
	defer f.Close()

	for _, sid := range sids {
		buf, err := header.PackHeaderV3(sampleRecord(sid))
		require.NoError(t, err)
		_, err = f.Write(buf)
		require.NoError(t, err)
	}

	return f.Name()
}

func TestReadNext_TwoRecordsThenEOF(t *testing.T) {
	path := writeRecords(t, "FDSN:XX_AA___B_H_Z", "FDSN:XX_BB___B_H_Z")

	st, err := Open(path, 0)
	require.NoError(t, err)
	defer st.Close()

	rec1, err := st.ReadNext(nil)
	require.NoError(t, err)
	require.Equal(t, "FDSN:XX_AA___B_H_Z", rec1.SourceID)

	rec2, err := st.ReadNext(nil)
	require.NoError(t, err)
	require.Equal(t, "FDSN:XX_BB___B_H_Z", rec2.SourceID)

	_, err = st.ReadNext(nil)
	require.ErrorIs(t, err, errs.ErrEndOfFile)
	require.Equal(t, 2, st.RecordsEmitted())
}

func TestReadNext_UnpackData(t *testing.T) {
	path := writeRecords(t, "FDSN:XX_AA___B_H_Z")

	st, err := Open(path, record.FlagUnpackData)
	require.NoError(t, err)
	defer st.Close()

	rec, err := st.ReadNext(nil)
	require.NoError(t, err)
	require.NotNil(t, rec.Decoded)
	require.Equal(t, 3, rec.Decoded.Len())
}

func TestReadNext_SelectionFiltersNonMatching(t *testing.T) {
	path := writeRecords(t, "FDSN:XX_AA___B_H_Z", "FDSN:XX_BB___B_H_Z")

	st, err := Open(path, 0)
	require.NoError(t, err)
	defer st.Close()

	sels := selection.List{
		{SIDGlob: "FDSN:XX_BB*", Windows: []selection.Window{{Start: nstime.Unset, End: nstime.Unset}}},
	}

	rec, err := st.ReadNext(sels)
	require.NoError(t, err)
	require.Equal(t, "FDSN:XX_BB___B_H_Z", rec.SourceID)

	_, err = st.ReadNext(sels)
	require.ErrorIs(t, err, errs.ErrEndOfFile)
}

func TestReadNext_EmptyFileIsNotSeed(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "reader-empty-*.mseed")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	st, err := Open(f.Name(), 0)
	require.NoError(t, err)
	defer st.Close()

	_, err = st.ReadNext(nil)
	require.ErrorIs(t, err, errs.ErrNotSeed)
}

func TestOpen_PNameRange(t *testing.T) {
	path := writeRecords(t, "FDSN:XX_AA___B_H_Z", "FDSN:XX_BB___B_H_Z")

	buf, err := header.PackHeaderV3(sampleRecord("FDSN:XX_AA___B_H_Z"))
	require.NoError(t, err)
	recLen := int64(len(buf))

	st, err := Open(path+"@0-"+strconv.FormatInt(recLen, 10), record.FlagPNameRange)
	require.NoError(t, err)
	defer st.Close()

	rec, err := st.ReadNext(nil)
	require.NoError(t, err)
	require.Equal(t, "FDSN:XX_AA___B_H_Z", rec.SourceID)

	_, err = st.ReadNext(nil)
	require.ErrorIs(t, err, errs.ErrEndOfFile)
}
