package header

import (
	"encoding/binary"
	"math"

	"github.com/mseedgo/miniseed/errs"
	"github.com/mseedgo/miniseed/internal/crc32c"
	"github.com/mseedgo/miniseed/record"
)

// v3 fixed header byte offsets (§4.C).
const (
	offMagic        = 0
	offVersion      = 3
	offFlags        = 4
	offStartTime    = 5
	offEncoding     = 15
	offSampleRate   = 16
	offSampleCount  = 24
	offCRC32C       = 28
	offPubVersion   = 32
	offSIDLen       = 33
	offExtraLen     = 34
	offDataLen      = 36
)

// ParseV3 parses a v3 fixed header plus SID/extra-header/data-payload
// sections out of buf. It returns (nil, needBytes, nil) when buf is too
// short to determine or satisfy the record length, and a non-nil error only
// for a structurally invalid or CRC-mismatched record.
func ParseV3(buf []byte, flags record.ControlFlags) (*record.Record, int, error) {
	if len(buf) < V3FixedHeaderSize {
		return nil, V3FixedHeaderSize - len(buf), nil
	}

	sidLen := int(buf[offSIDLen])
	exLen := int(binary.LittleEndian.Uint16(buf[offExtraLen : offExtraLen+2]))
	dataLen := int(binary.LittleEndian.Uint32(buf[offDataLen : offDataLen+4]))
	recLen := V3FixedHeaderSize + sidLen + exLen + dataLen

	if len(buf) < recLen {
		return nil, recLen - len(buf), nil
	}

	if flags.Has(record.FlagValidateCRC) {
		stored := binary.LittleEndian.Uint32(buf[offCRC32C : offCRC32C+4])
		if stored != 0 {
			scratch := append([]byte(nil), buf[:recLen]...)
			binary.LittleEndian.PutUint32(scratch[offCRC32C:offCRC32C+4], 0)
			if crc32c.Checksum(scratch) != stored {
				return nil, 0, errs.New(errs.InvalidCRC, "header: v3 CRC32C mismatch")
			}
		}
	}

	sidOff := V3FixedHeaderSize
	exOff := sidOff + sidLen
	dataOff := exOff + exLen

	rec := &record.Record{
		FormatVersion:      3,
		RecordFlags:        record.RecordFlag(buf[offFlags]),
		StartTime:          decodeV3StartTime(buf[offStartTime : offStartTime+10]),
		Encoding:           record.Encoding(buf[offEncoding]),
		SampleRate:         math.Float64frombits(binary.LittleEndian.Uint64(buf[offSampleRate : offSampleRate+8])),
		SampleCount:        int64(binary.LittleEndian.Uint32(buf[offSampleCount : offSampleCount+4])),
		CRC32C:             binary.LittleEndian.Uint32(buf[offCRC32C : offCRC32C+4]),
		PublicationVersion: buf[offPubVersion],
		SourceID:           string(buf[sidOff:exOff]),
		RecordLength:       recLen,
	}
	if exLen > 0 {
		rec.ExtraHeaders = string(buf[exOff:dataOff])
	}
	rec.DataPayload = append([]byte(nil), buf[dataOff:recLen]...)

	return rec, 0, nil
}

// PackHeaderV3 serializes rec into a v3 record: 40-byte fixed header
// followed by SID, extra-header and data-payload bytes. The CRC32C field is
// computed over the complete record with the CRC bytes zeroed.
func PackHeaderV3(rec *record.Record) ([]byte, error) {
	if len(rec.SourceID) > 255 {
		return nil, errs.Wrap(errs.GenError, errs.ErrInvalidArgument)
	}
	if len(rec.ExtraHeaders) > math.MaxUint16 {
		return nil, errs.Wrap(errs.GenError, errs.ErrInvalidArgument)
	}

	sidLen := len(rec.SourceID)
	exLen := len(rec.ExtraHeaders)
	dataLen := len(rec.DataPayload)
	recLen := V3FixedHeaderSize + sidLen + exLen + dataLen

	buf := make([]byte, recLen)
	copy(buf[offMagic:offMagic+3], V3Magic)
	buf[offVersion] = 3
	buf[offFlags] = byte(rec.RecordFlags)
	encodeV3StartTime(buf[offStartTime:offStartTime+10], rec.StartTime)
	buf[offEncoding] = byte(rec.Encoding)
	binary.LittleEndian.PutUint64(buf[offSampleRate:offSampleRate+8], math.Float64bits(rec.SampleRate))
	binary.LittleEndian.PutUint32(buf[offSampleCount:offSampleCount+4], uint32(rec.SampleCount))
	// buf[offCRC32C:offCRC32C+4] left zero until computed below.
	buf[offPubVersion] = rec.PublicationVersion
	buf[offSIDLen] = byte(sidLen)
	binary.LittleEndian.PutUint16(buf[offExtraLen:offExtraLen+2], uint16(exLen))
	binary.LittleEndian.PutUint32(buf[offDataLen:offDataLen+4], uint32(dataLen))

	sidOff := V3FixedHeaderSize
	exOff := sidOff + sidLen
	dataOff := exOff + exLen
	copy(buf[sidOff:exOff], rec.SourceID)
	copy(buf[exOff:dataOff], rec.ExtraHeaders)
	copy(buf[dataOff:recLen], rec.DataPayload)

	crc := crc32c.Checksum(buf)
	binary.LittleEndian.PutUint32(buf[offCRC32C:offCRC32C+4], crc)
	rec.CRC32C = crc
	rec.RecordLength = recLen

	return buf, nil
}

// RepackV3 rebuilds a v3 record from a copy of rec.Raw, which is assumed to
// already hold the complete header+payload bytes; only the CRC32C field is
// recomputed, in the returned buffer and in rec.CRC32C. rec.Raw itself is
// left unchanged.
func RepackV3(rec *record.Record) ([]byte, error) {
	if rec.Raw == nil || len(rec.Raw.Bytes) < V3FixedHeaderSize {
		return nil, errs.Wrap(errs.GenError, errs.ErrInvalidArgument)
	}

	buf := append([]byte(nil), rec.Raw.Bytes...)
	binary.LittleEndian.PutUint32(buf[offCRC32C:offCRC32C+4], 0)
	crc := crc32c.Checksum(buf)
	binary.LittleEndian.PutUint32(buf[offCRC32C:offCRC32C+4], crc)
	rec.CRC32C = crc

	return buf, nil
}

// DataBoundsV3 returns the offset and size of the data payload within a
// serialized v3 record of the given SID and extra-header lengths.
func DataBoundsV3(sidLen, exLen, dataLen int) (offset, size int) {
	offset = V3FixedHeaderSize + sidLen + exLen
	return offset, dataLen
}
