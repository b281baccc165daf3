package encoding

import (
	"encoding/binary"

	"github.com/mseedgo/miniseed/errs"
	"github.com/mseedgo/miniseed/record"
)

// decodeGeoscope24 decodes 24-bit linear integer samples (3 bytes each,
// big-endian, two's complement), the GEOSCOPE24 legacy format.
func decodeGeoscope24(in []byte, sampleCount int64) (*record.DecodedSamples, error) {
	need := int(sampleCount) * 3
	if len(in) < need {
		return nil, errs.New(errs.GenError, "encoding: geoscope24 payload truncated")
	}

	out := make([]int32, sampleCount)
	for i := range out {
		b := in[i*3 : i*3+3]
		v := uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
		out[i] = signExtend(v, 24)
	}

	return &record.DecodedSamples{Type: record.SampleTypeInt32, Int32: out}, nil
}

// decodeGeoscope16 decodes gain-ranged 16-bit samples into floats, the
// GEOSCOPE16_3 (3-bit exponent, 12-bit mantissa) and GEOSCOPE16_4 (4-bit
// exponent, 11-bit mantissa) legacy formats. Each 16-bit word is big-endian,
// sign bit in bit 15, exponent in the next exponentBits, mantissa in the
// remaining low bits; the decoded value is mantissa / 2^exponent.
func decodeGeoscope16(in []byte, sampleCount int64, enc record.Encoding) (*record.DecodedSamples, error) {
	need := int(sampleCount) * 2
	if len(in) < need {
		return nil, errs.New(errs.GenError, "encoding: geoscope16 payload truncated")
	}

	exponentBits := 3
	if enc == record.EncodingGeoscope16_4 {
		exponentBits = 4
	}
	mantissaBits := 15 - exponentBits

	out := make([]float32, sampleCount)
	for i := range out {
		raw := binary.BigEndian.Uint16(in[i*2 : i*2+2])
		sign := int32(1)
		if raw&0x8000 != 0 {
			sign = -1
		}
		exponent := int((raw >> uint(mantissaBits)) & ((1 << uint(exponentBits)) - 1))
		mantissa := int32(raw & ((1 << uint(mantissaBits)) - 1))

		out[i] = float32(sign*mantissa) / float32(int32(1)<<uint(exponent))
	}

	return &record.DecodedSamples{Type: record.SampleTypeFloat32, Float32: out}, nil
}

// decodeCDSN decodes CDSN gain-ranged 16-bit samples: top 2 bits select a
// gain code {1,2,4,8}, remaining 14 bits are a two's complement mantissa.
func decodeCDSN(in []byte, sampleCount int64) (*record.DecodedSamples, error) {
	gainTable := [4]int32{1, 2, 4, 8}

	return decodeGainRanged16(in, sampleCount, 2, gainTable[:])
}

// decodeSRO decodes SRO gain-ranged 16-bit samples: top 4 bits select a
// power-of-two gain exponent, remaining 12 bits are a two's complement
// mantissa.
func decodeSRO(in []byte, sampleCount int64) (*record.DecodedSamples, error) {
	gainTable := make([]int32, 16)
	for i := range gainTable {
		gainTable[i] = int32(1) << uint(i)
	}

	return decodeGainRanged16(in, sampleCount, 4, gainTable)
}

func decodeGainRanged16(in []byte, sampleCount int64, gainBits int, gainTable []int32) (*record.DecodedSamples, error) {
	need := int(sampleCount) * 2
	if len(in) < need {
		return nil, errs.New(errs.GenError, "encoding: gain-ranged payload truncated")
	}

	mantissaBits := 16 - gainBits
	out := make([]int32, sampleCount)
	for i := range out {
		raw := binary.BigEndian.Uint16(in[i*2 : i*2+2])
		gain := int(raw >> uint(mantissaBits))
		mantissa := signExtend(uint32(raw)&((1<<uint(mantissaBits))-1), mantissaBits)

		out[i] = mantissa * gainTable[gain]
	}

	return &record.DecodedSamples{Type: record.SampleTypeInt32, Int32: out}, nil
}

// decodeDWWSSN decodes plain 16-bit linear samples (no gain ranging).
func decodeDWWSSN(in []byte, sampleCount int64) (*record.DecodedSamples, error) {
	need := int(sampleCount) * 2
	if len(in) < need {
		return nil, errs.New(errs.GenError, "encoding: dwwssn payload truncated")
	}

	out := make([]int32, sampleCount)
	for i := range out {
		out[i] = int32(int16(binary.BigEndian.Uint16(in[i*2 : i*2+2])))
	}

	return &record.DecodedSamples{Type: record.SampleTypeInt32, Int32: out}, nil
}
