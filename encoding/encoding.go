// Package encoding implements the miniSEED payload codecs (§4.D): TEXT,
// the raw integer/float formats, Steim-1/Steim-2 differential compression,
// and the legacy gain-ranged formats (decode-only).
package encoding

import (
	"github.com/mseedgo/miniseed/errs"
	"github.com/mseedgo/miniseed/record"
)

// SampleSize returns the decoded in-memory sample size, in bytes, for enc.
func SampleSize(enc record.Encoding) int { return record.SampleSize(enc) }

// SampleType returns the decoded sample type tag for enc.
func SampleType(enc record.Encoding) record.SampleType { return record.SampleTypeOf(enc) }

// Decode decodes sampleCount samples of encoding enc from in, returning the
// populated DecodedSamples. swap requests a byte swap of the payload prior
// to interpretation (for v2 records whose data word order differs from this
// library's native little-endian assumption).
func Decode(enc record.Encoding, in []byte, sampleCount int64, swap bool) (*record.DecodedSamples, error) {
	switch enc {
	case record.EncodingText:
		return decodeText(in, sampleCount)
	case record.EncodingInt16:
		return decodeInt16(in, sampleCount, swap)
	case record.EncodingInt32:
		return decodeInt32(in, sampleCount, swap)
	case record.EncodingFloat32:
		return decodeFloat32(in, sampleCount, swap)
	case record.EncodingFloat64:
		return decodeFloat64(in, sampleCount, swap)
	case record.EncodingSteim1:
		return decodeSteim(1, in, sampleCount)
	case record.EncodingSteim2:
		return decodeSteim(2, in, sampleCount)
	case record.EncodingGeoscope24:
		return decodeGeoscope24(in, sampleCount)
	case record.EncodingGeoscope16_3, record.EncodingGeoscope16_4:
		return decodeGeoscope16(in, sampleCount, enc)
	case record.EncodingCDSN:
		return decodeCDSN(in, sampleCount)
	case record.EncodingSRO:
		return decodeSRO(in, sampleCount)
	case record.EncodingDWWSSN:
		return decodeDWWSSN(in, sampleCount)
	default:
		return nil, errs.New(errs.UnknownFormat, "encoding: unknown encoding")
	}
}

// Encode encodes as many of samples as fit within maxPayloadBytes using enc,
// returning the bytes written and the number of samples actually consumed.
// Legacy gain-ranged encodings are decode-only and return ErrUnknownFormat.
func Encode(enc record.Encoding, samples *record.DecodedSamples, maxPayloadBytes int) (out []byte, consumed int, err error) {
	if enc.IsLegacyDecodeOnly() {
		return nil, 0, errs.New(errs.UnknownFormat, "encoding: legacy encoding is decode-only")
	}

	switch enc {
	case record.EncodingText:
		return encodeText(samples, maxPayloadBytes)
	case record.EncodingInt16:
		return encodeInt16(samples, maxPayloadBytes)
	case record.EncodingInt32:
		return encodeInt32(samples, maxPayloadBytes)
	case record.EncodingFloat32:
		return encodeFloat32(samples, maxPayloadBytes)
	case record.EncodingFloat64:
		return encodeFloat64(samples, maxPayloadBytes)
	case record.EncodingSteim1:
		return encodeSteim(1, samples, maxPayloadBytes)
	case record.EncodingSteim2:
		return encodeSteim(2, samples, maxPayloadBytes)
	default:
		return nil, 0, errs.New(errs.UnknownFormat, "encoding: unknown encoding")
	}
}
