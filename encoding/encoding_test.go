package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mseedgo/miniseed/record"
)

func TestInt32_RoundTrip(t *testing.T) {
	samples := &record.DecodedSamples{Type: record.SampleTypeInt32, Int32: []int32{1, -2, 300, -400, 0}}

	out, consumed, err := Encode(record.EncodingInt32, samples, 1024)
	require.NoError(t, err)
	require.Equal(t, len(samples.Int32), consumed)

	decoded, err := Decode(record.EncodingInt32, out, int64(len(samples.Int32)), false)
	require.NoError(t, err)
	require.Equal(t, samples.Int32, decoded.Int32)
}

func TestFloat32_RoundTrip(t *testing.T) {
	samples := &record.DecodedSamples{Type: record.SampleTypeFloat32, Float32: []float32{1.5, -2.25, 0, 100.125}}

	out, consumed, err := Encode(record.EncodingFloat32, samples, 1024)
	require.NoError(t, err)
	require.Equal(t, 4, consumed)

	decoded, err := Decode(record.EncodingFloat32, out, 4, false)
	require.NoError(t, err)
	require.Equal(t, samples.Float32, decoded.Float32)
}

func TestFloat64_RoundTrip(t *testing.T) {
	samples := &record.DecodedSamples{Type: record.SampleTypeFloat64, Float64: []float64{1.5, -2.25, 0}}

	out, consumed, err := Encode(record.EncodingFloat64, samples, 1024)
	require.NoError(t, err)
	require.Equal(t, 3, consumed)

	decoded, err := Decode(record.EncodingFloat64, out, 3, false)
	require.NoError(t, err)
	require.Equal(t, samples.Float64, decoded.Float64)
}

func TestText_RoundTrip(t *testing.T) {
	samples := &record.DecodedSamples{Type: record.SampleTypeText, Text: "hello miniseed"}

	out, consumed, err := Encode(record.EncodingText, samples, 1024)
	require.NoError(t, err)
	require.Equal(t, len(samples.Text), consumed)

	decoded, err := Decode(record.EncodingText, out, int64(len(samples.Text)), false)
	require.NoError(t, err)
	require.Equal(t, samples.Text, decoded.Text)
}

func TestInt16_Decode(t *testing.T) {
	in := []byte{0x01, 0x00, 0xFE, 0xFF} // 1, -2 little-endian
	decoded, err := Decode(record.EncodingInt16, in, 2, false)
	require.NoError(t, err)
	require.Equal(t, []int32{1, -2}, decoded.Int32)
}

func TestSteim1_RoundTrip(t *testing.T) {
	samples := &record.DecodedSamples{Type: record.SampleTypeInt32, Int32: []int32{100, 101, 103, 106, 110, 109, 108}}

	out, consumed, err := Encode(record.EncodingSteim1, samples, 4096)
	require.NoError(t, err)
	require.Equal(t, len(samples.Int32), consumed)
	require.Equal(t, 64, len(out))

	decoded, err := Decode(record.EncodingSteim1, out, int64(len(samples.Int32)), false)
	require.NoError(t, err)
	require.Equal(t, samples.Int32, decoded.Int32)
}

func TestSteim2_RoundTrip(t *testing.T) {
	samples := &record.DecodedSamples{Type: record.SampleTypeInt32, Int32: []int32{0, 1, 2, 3, 4, 5, 6, 7, 6, 5, 4}}

	out, consumed, err := Encode(record.EncodingSteim2, samples, 4096)
	require.NoError(t, err)
	require.Equal(t, len(samples.Int32), consumed)

	decoded, err := Decode(record.EncodingSteim2, out, int64(len(samples.Int32)), false)
	require.NoError(t, err)
	require.Equal(t, samples.Int32, decoded.Int32)
}

func TestSteim1_SingleSample(t *testing.T) {
	samples := &record.DecodedSamples{Type: record.SampleTypeInt32, Int32: []int32{42}}

	out, consumed, err := Encode(record.EncodingSteim1, samples, 4096)
	require.NoError(t, err)
	require.Equal(t, 1, consumed)

	decoded, err := Decode(record.EncodingSteim1, out, 1, false)
	require.NoError(t, err)
	require.Equal(t, []int32{42}, decoded.Int32)
}

func TestSteim_BadCompFlagOnCorruption(t *testing.T) {
	samples := &record.DecodedSamples{Type: record.SampleTypeInt32, Int32: []int32{1, 2, 3, 4, 5}}

	out, _, err := Encode(record.EncodingSteim1, samples, 4096)
	require.NoError(t, err)

	out[8] ^= 0xFF // corrupt Xn

	_, err = Decode(record.EncodingSteim1, out, int64(len(samples.Int32)), false)
	require.Error(t, err)
}

func TestLegacyEncoding_IsDecodeOnly(t *testing.T) {
	samples := &record.DecodedSamples{Type: record.SampleTypeInt32, Int32: []int32{1, 2}}
	_, _, err := Encode(record.EncodingGeoscope24, samples, 1024)
	require.Error(t, err)
}

func TestDWWSSN_Decode(t *testing.T) {
	in := []byte{0x00, 0x64, 0xFF, 0x9C} // 100, -100 big-endian
	decoded, err := Decode(record.EncodingDWWSSN, in, 2, false)
	require.NoError(t, err)
	require.Equal(t, []int32{100, -100}, decoded.Int32)
}
