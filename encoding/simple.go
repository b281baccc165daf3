package encoding

import (
	"encoding/binary"
	"math"

	"github.com/mseedgo/miniseed/errs"
	"github.com/mseedgo/miniseed/record"
)

func decodeText(in []byte, sampleCount int64) (*record.DecodedSamples, error) {
	if int64(len(in)) < sampleCount {
		return nil, errs.New(errs.GenError, "encoding: text payload truncated")
	}

	return &record.DecodedSamples{Type: record.SampleTypeText, Text: string(in[:sampleCount])}, nil
}

func encodeText(samples *record.DecodedSamples, maxPayloadBytes int) ([]byte, int, error) {
	n := len(samples.Text)
	if n > maxPayloadBytes {
		n = maxPayloadBytes
	}

	return []byte(samples.Text[:n]), n, nil
}

func decodeInt16(in []byte, sampleCount int64, swap bool) (*record.DecodedSamples, error) {
	need := int(sampleCount) * 2
	if len(in) < need {
		return nil, errs.New(errs.GenError, "encoding: int16 payload truncated")
	}

	out := make([]int32, sampleCount)
	for i := range out {
		b0, b1 := in[i*2], in[i*2+1]
		if swap {
			b0, b1 = b1, b0
		}
		out[i] = int32(int16(binary.LittleEndian.Uint16([]byte{b0, b1})))
	}

	return &record.DecodedSamples{Type: record.SampleTypeInt32, Int32: out}, nil
}

func encodeInt16(samples *record.DecodedSamples, maxPayloadBytes int) ([]byte, int, error) {
	maxSamples := maxPayloadBytes / 2
	n := len(samples.Int32)
	if n > maxSamples {
		n = maxSamples
	}

	out := make([]byte, n*2)
	for i := 0; i < n; i++ {
		v := samples.Int32[i]
		if v > math.MaxInt16 || v < math.MinInt16 {
			break
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(v)))
	}

	return out, n, nil
}

func decodeInt32(in []byte, sampleCount int64, swap bool) (*record.DecodedSamples, error) {
	need := int(sampleCount) * 4
	if len(in) < need {
		return nil, errs.New(errs.GenError, "encoding: int32 payload truncated")
	}

	out := make([]int32, sampleCount)
	for i := range out {
		w := in[i*4 : i*4+4]
		if swap {
			w = []byte{w[3], w[2], w[1], w[0]}
		}
		out[i] = int32(binary.LittleEndian.Uint32(w))
	}

	return &record.DecodedSamples{Type: record.SampleTypeInt32, Int32: out}, nil
}

func encodeInt32(samples *record.DecodedSamples, maxPayloadBytes int) ([]byte, int, error) {
	maxSamples := maxPayloadBytes / 4
	n := len(samples.Int32)
	if n > maxSamples {
		n = maxSamples
	}

	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(out[i*4:], uint32(samples.Int32[i]))
	}

	return out, n, nil
}

func decodeFloat32(in []byte, sampleCount int64, swap bool) (*record.DecodedSamples, error) {
	need := int(sampleCount) * 4
	if len(in) < need {
		return nil, errs.New(errs.GenError, "encoding: float32 payload truncated")
	}

	out := make([]float32, sampleCount)
	for i := range out {
		w := in[i*4 : i*4+4]
		if swap {
			w = []byte{w[3], w[2], w[1], w[0]}
		}
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(w))
	}

	return &record.DecodedSamples{Type: record.SampleTypeFloat32, Float32: out}, nil
}

func encodeFloat32(samples *record.DecodedSamples, maxPayloadBytes int) ([]byte, int, error) {
	maxSamples := maxPayloadBytes / 4
	n := len(samples.Float32)
	if n > maxSamples {
		n = maxSamples
	}

	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(samples.Float32[i]))
	}

	return out, n, nil
}

func decodeFloat64(in []byte, sampleCount int64, swap bool) (*record.DecodedSamples, error) {
	need := int(sampleCount) * 8
	if len(in) < need {
		return nil, errs.New(errs.GenError, "encoding: float64 payload truncated")
	}

	out := make([]float64, sampleCount)
	for i := range out {
		w := in[i*8 : i*8+8]
		if swap {
			sw := make([]byte, 8)
			for j := 0; j < 8; j++ {
				sw[j] = w[7-j]
			}
			w = sw
		}
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(w))
	}

	return &record.DecodedSamples{Type: record.SampleTypeFloat64, Float64: out}, nil
}

func encodeFloat64(samples *record.DecodedSamples, maxPayloadBytes int) ([]byte, int, error) {
	maxSamples := maxPayloadBytes / 8
	n := len(samples.Float64)
	if n > maxSamples {
		n = maxSamples
	}

	out := make([]byte, n*8)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint64(out[i*8:], math.Float64bits(samples.Float64[i]))
	}

	return out, n, nil
}
