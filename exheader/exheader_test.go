package exheader

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mseedgo/miniseed/errs"
)

func TestParse_Empty(t *testing.T) {
	d, err := Parse("")
	require.NoError(t, err)
	require.True(t, d.IsEmpty())

	s, err := d.Serialize()
	require.NoError(t, err)
	require.Equal(t, "", s)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("not json")
	require.Error(t, err)
}

func TestGet_Pointer(t *testing.T) {
	d, err := Parse(`{"FDSN":{"Time":{"Quality":100},"Tags":["a","b"]}}`)
	require.NoError(t, err)

	v, ok := d.Get("/FDSN/Time/Quality")
	require.True(t, ok)
	require.Equal(t, float64(100), v)

	v, ok = d.Get("/FDSN/Tags/1")
	require.True(t, ok)
	require.Equal(t, "b", v)

	_, ok = d.Get("/FDSN/Missing")
	require.False(t, ok)

	_, ok = d.Get("/FDSN/Tags/5")
	require.False(t, ok)
}

func TestGet_EscapedTokens(t *testing.T) {
	d, err := Parse(`{"a/b":{"c~d":1}}`)
	require.NoError(t, err)

	v, ok := d.Get("/a~1b/c~0d")
	require.True(t, ok)
	require.Equal(t, float64(1), v)
}

func TestGetDot(t *testing.T) {
	d, err := Parse(`{"FDSN":{"Time":{"Quality":100}}}`)
	require.NoError(t, err)

	v, ok := d.GetDot("FDSN.Time.Quality")
	require.True(t, ok)
	require.Equal(t, float64(100), v)
}

func TestTypedGetters(t *testing.T) {
	d, err := Parse(`{"n":42,"s":"hi","b":true}`)
	require.NoError(t, err)

	n, err := d.GetNumber("/n")
	require.NoError(t, err)
	require.Equal(t, float64(42), n)

	i, err := d.GetInt("/n")
	require.NoError(t, err)
	require.Equal(t, int64(42), i)

	s, err := d.GetString("/s")
	require.NoError(t, err)
	require.Equal(t, "hi", s)

	b, err := d.GetBool("/b")
	require.NoError(t, err)
	require.True(t, b)

	_, err = d.GetString("/n")
	require.ErrorIs(t, err, errs.ErrWrongType)

	_, err = d.GetNumber("/missing")
	require.ErrorIs(t, err, errs.ErrPointerNotFound)
}

func TestSet_CreatesIntermediateObjects(t *testing.T) {
	d, err := Parse("")
	require.NoError(t, err)

	require.NoError(t, d.Set("/FDSN/Time/Quality", 95.0))

	v, ok := d.Get("/FDSN/Time/Quality")
	require.True(t, ok)
	require.Equal(t, 95.0, v)

	out, err := d.Serialize()
	require.NoError(t, err)
	require.Contains(t, out, "Quality")
}

func TestSet_ReplacesNonObjectIntermediate(t *testing.T) {
	d, err := Parse(`{"FDSN":"not an object"}`)
	require.NoError(t, err)

	require.NoError(t, d.Set("/FDSN/Time/Quality", 1.0))

	v, ok := d.Get("/FDSN/Time/Quality")
	require.True(t, ok)
	require.Equal(t, 1.0, v)
}

func TestSet_EmptyPointer(t *testing.T) {
	d, _ := Parse("")
	err := d.Set("", 1)
	require.ErrorIs(t, err, errs.ErrInvalidPointer)
}

func TestAddEventDetection(t *testing.T) {
	d, err := Parse("")
	require.NoError(t, err)

	err = d.AddEventDetection("/FDSN/Event/Detection", EventDetection{
		Type:            "STALTA",
		SignalAmplitude: 123.4,
		Wave:            "P",
	})
	require.NoError(t, err)

	v, ok := d.Get("/FDSN/Event/Detection/0/Type")
	require.True(t, ok)
	require.Equal(t, "STALTA", v)

	_, ok = d.Get("/FDSN/Event/Detection/0/SignalPeriod")
	require.False(t, ok, "zero-valued field should be omitted")

	err = d.AddEventDetection("/FDSN/Event/Detection", EventDetection{Type: "THRESHOLD"})
	require.NoError(t, err)

	v, ok = d.Get("/FDSN/Event/Detection/1/Type")
	require.True(t, ok)
	require.Equal(t, "THRESHOLD", v)
}

func TestAddCalibration(t *testing.T) {
	d, err := Parse("")
	require.NoError(t, err)

	require.NoError(t, d.AddCalibration("/FDSN/Calibration/Sequence", Calibration{
		Type:      "step",
		BeginTime: "2020-01-01T00:00:00Z",
		Amplitude: 2.5,
	}))

	v, ok := d.Get("/FDSN/Calibration/Sequence/0/Amplitude")
	require.True(t, ok)
	require.Equal(t, 2.5, v)
}

func TestAddTimingException(t *testing.T) {
	d, err := Parse("")
	require.NoError(t, err)

	require.NoError(t, d.AddTimingException("/FDSN/Time/Exception", TimingException{
		Type:  "clock",
		Count: 3,
	}))

	v, ok := d.Get("/FDSN/Time/Exception/0/Count")
	require.True(t, ok)
	require.Equal(t, int64(3), v)
}

func TestAddRecenter(t *testing.T) {
	d, err := Parse("")
	require.NoError(t, err)

	require.NoError(t, d.AddRecenter("/FDSN/Recenter", Recenter{Type: "mass", BeginTime: "t0"}))

	v, ok := d.Get("/FDSN/Recenter/0/BeginTime")
	require.True(t, ok)
	require.Equal(t, "t0", v)
}

func TestAppendToArray_EmptyPath(t *testing.T) {
	d, _ := Parse("")
	err := d.AddRecenter("", Recenter{})
	require.ErrorIs(t, err, errs.ErrInvalidPointer)
}

func TestSerializeRoundTrip(t *testing.T) {
	d, err := Parse("")
	require.NoError(t, err)
	require.NoError(t, d.Set("/FDSN/Time/Quality", 100.0))

	text, err := d.Serialize()
	require.NoError(t, err)

	d2, err := Parse(text)
	require.NoError(t, err)
	v, ok := d2.Get("/FDSN/Time/Quality")
	require.True(t, ok)
	require.Equal(t, 100.0, v)
}
