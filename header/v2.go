package header

import (
	"encoding/binary"

	"github.com/mseedgo/miniseed/errs"
	"github.com/mseedgo/miniseed/record"
	"github.com/mseedgo/miniseed/sid"
)

// v2 fixed header byte offsets (§4.C).
const (
	v2offSequence    = 0
	v2offQuality     = 6
	v2offBTIME       = 20
	v2offNumSamples  = 30
	v2offRateFactor  = 32
	v2offRateMult    = 34
	v2offActivity    = 36
	v2offQualityFlag = 38
	v2offNumBlk      = 39
	v2offDataOffset  = 44
	v2offFirstBlk    = 46
)

// ParseV2 parses a v2 fixed header, its blockette chain and data payload out
// of buf. Byte order is auto-detected per §4.C; data is returned undecoded.
func ParseV2(buf []byte, flags record.ControlFlags) (*record.Record, int, error) {
	if len(buf) < V2FixedHeaderSize {
		return nil, V2FixedHeaderSize - len(buf), nil
	}

	quality := buf[v2offQuality]
	switch quality {
	case QualityD, QualityR, QualityQ, QualityM:
	default:
		if flags.Has(record.FlagSkipNotData) {
			return nil, 0, nil
		}
		return nil, 0, errs.New(errs.NotSeed, "header: v2 invalid data quality indicator")
	}

	order, swapped := detectV2ByteOrder(buf[v2offBTIME : v2offBTIME+10])

	firstBlkOffset := int(order.Uint16(buf[v2offFirstBlk : v2offFirstBlk+2]))
	dataOffset := int(order.Uint16(buf[v2offDataOffset : v2offDataOffset+2]))
	numBlockettes := int(buf[v2offNumBlk])

	scanEnd := dataOffset
	if scanEnd == 0 || scanEnd < V2FixedHeaderSize {
		scanEnd = len(buf)
	}
	if len(buf) < scanEnd {
		return nil, scanEnd - len(buf), nil
	}

	var encoding record.Encoding
	haveEncoding := false
	recLenExp := 0
	swapPayload := false

	off := firstBlkOffset
	for i := 0; i < numBlockettes && off > 0; i++ {
		if off+4 > len(buf) {
			return nil, off + 4 - len(buf), nil
		}
		blkType := order.Uint16(buf[off : off+2])
		next := order.Uint16(buf[off+2 : off+4])

		switch blkType {
		case Blockette1000:
			if off+8 > len(buf) {
				return nil, off + 8 - len(buf), nil
			}
			encoding = record.Encoding(buf[off+4])
			wordOrder := buf[off+5]
			recLenExp = int(buf[off+6])
			haveEncoding = true
			swapPayload = (wordOrder == 1) // 0 = little-endian/VAX, 1 = big-endian/SPARC
		case Blockette1001:
			// timing quality, microsecond remainder, reserved, frame count;
			// not surfaced on Record (§9: not required by any reader caller).
		}

		if next == 0 || next == uint16(off) {
			break
		}
		off = int(next)
	}

	recLen := dataOffset
	if haveEncoding && recLenExp > 0 {
		recLen = 1 << uint(recLenExp)
	}
	if recLen <= 0 {
		recLen = len(buf)
	}
	if len(buf) < recLen {
		return nil, recLen - len(buf), nil
	}

	// SEED v2 NSLC field order is station, location, channel, network.
	stationField := trimFixed(buf[8:13])
	locationField := trimFixed(buf[13:15])
	channelField := trimFixed(buf[15:18])
	networkField := trimFixed(buf[18:20])

	numSamples := order.Uint16(buf[v2offNumSamples : v2offNumSamples+2])
	rateFactor := int16(order.Uint16(buf[v2offRateFactor : v2offRateFactor+2]))
	rateMult := int16(order.Uint16(buf[v2offRateMult : v2offRateMult+2]))

	rec := &record.Record{
		FormatVersion: 2,
		StartTime:     decodeBTIME(buf[v2offBTIME:v2offBTIME+10], order),
		SampleRate:    rateFactorToHz(rateFactor, rateMult),
		Encoding:      encoding,
		SampleCount:   int64(numSamples),
		RecordLength:  recLen,
		RecordFlags:   record.RecordFlag(buf[v2offActivity]),
	}
	if swapped {
		rec.SwapFlags |= record.SwapHeader
	}
	if swapPayload {
		rec.SwapFlags |= record.SwapPayload
	}

	rec.SourceID = sid.FromNSLC(networkField, stationField, locationField, channelField)

	if dataOffset > 0 && dataOffset < recLen {
		rec.DataPayload = append([]byte(nil), buf[dataOffset:recLen]...)
	}

	return rec, 0, nil
}

// rateFactorToHz converts the SEED packed sample-rate-factor/multiplier pair
// to a sample rate in Hz, per the SEED manual's encoding: a positive factor
// is Hz directly; negative is a period of |factor| seconds/sample, i.e.
// 1/|factor| Hz. A positive multiplier then multiplies the rate and a
// negative one divides it by |mult|.
func rateFactorToHz(factor, mult int16) float64 {
	var rate float64
	switch {
	case factor > 0:
		rate = float64(factor)
	case factor < 0:
		rate = -1.0 / float64(factor)
	default:
		rate = 0
	}

	switch {
	case mult > 0:
		rate *= float64(mult)
	case mult < 0:
		rate /= -float64(mult)
	}

	return rate
}

func hzToRateFactor(rate float64) (factor, mult int16) {
	if rate <= 0 {
		return 0, 0
	}
	if rate == float64(int16(rate)) {
		return int16(rate), 1
	}
	// Represent as 1/period when the rate doesn't fit an integer Hz value.
	period := 1.0 / rate
	if period == float64(int16(period)) {
		return -int16(period), 1
	}

	return int16(rate), 1
}

func trimFixed(b []byte) string {
	end := len(b)
	for end > 0 && (b[end-1] == ' ' || b[end-1] == 0) {
		end--
	}

	return string(b[:end])
}

const (
	blk1000Size = 8
	blk1001Size = 8
)

// DataOffsetV2 returns the offset of the data payload within a v2 record
// carrying a B1000 blockette (and a B1001 blockette when needB1001 is
// true), for callers that need to budget payload capacity before encoding.
func DataOffsetV2(needB1001 bool) int {
	blkTotal := blk1000Size
	if needB1001 {
		blkTotal += blk1001Size
	}

	return V2FixedHeaderSize + blkTotal
}

// PackHeaderV2 serializes rec as a v2 record, generating a B1000 blockette
// (and a B1001 blockette when rec.RecordFlags carries RecordFlagTimeTag)
// and placing the data payload at the resulting
// data-offset.
func PackHeaderV2(rec *record.Record) ([]byte, error) {
	nslc, err := sid.ToNSLC(rec.SourceID)
	if err != nil {
		return nil, err
	}

	needB1001 := rec.RecordFlags&record.RecordFlagTimeTag != 0
	dataOffset := DataOffsetV2(needB1001)
	dataLen := len(rec.DataPayload)

	// A physical v2 record is a fixed-size block of 1 << recLenExp bytes,
	// unlike v3's exact-fit framing: the buffer is padded to the smallest
	// power of two that holds both the header+payload and any RecordLength
	// the caller pre-set (the packer always sets it).
	recLen := dataOffset + dataLen
	if rec.RecordLength > recLen {
		recLen = rec.RecordLength
	}
	recLen = 1 << uint(recordLengthExponent(recLen))

	buf := make([]byte, recLen)

	copy(buf[v2offSequence:v2offSequence+6], "000001")
	buf[v2offQuality] = QualityD
	buf[7] = ' '

	copyFixed(buf[8:13], nslc.Station)
	copyFixed(buf[13:15], nslc.Location)
	copyFixed(buf[15:18], compactChannel(nslc.Channel))
	copyFixed(buf[18:20], nslc.Network)

	encodeBTIME(buf[v2offBTIME:v2offBTIME+10], rec.StartTime)

	if rec.SampleCount > 0xFFFF {
		return nil, errs.Wrap(errs.GenError, errs.ErrInvalidArgument)
	}
	binary.LittleEndian.PutUint16(buf[v2offNumSamples:v2offNumSamples+2], uint16(rec.SampleCount))

	factor, mult := hzToRateFactor(rec.SampleRate)
	binary.LittleEndian.PutUint16(buf[v2offRateFactor:v2offRateFactor+2], uint16(factor))
	binary.LittleEndian.PutUint16(buf[v2offRateMult:v2offRateMult+2], uint16(mult))

	buf[v2offActivity] = byte(rec.RecordFlags)
	buf[v2offNumBlk] = 1
	if needB1001 {
		buf[v2offNumBlk] = 2
	}
	binary.LittleEndian.PutUint16(buf[v2offDataOffset:v2offDataOffset+2], uint16(dataOffset))
	binary.LittleEndian.PutUint16(buf[v2offFirstBlk:v2offFirstBlk+2], V2FixedHeaderSize)

	blk1000Off := V2FixedHeaderSize
	next := uint16(0)
	if needB1001 {
		next = uint16(blk1000Off + blk1000Size)
	}
	binary.LittleEndian.PutUint16(buf[blk1000Off:blk1000Off+2], Blockette1000)
	binary.LittleEndian.PutUint16(buf[blk1000Off+2:blk1000Off+4], next)
	buf[blk1000Off+4] = byte(rec.Encoding)
	buf[blk1000Off+5] = 0 // word order: little-endian/VAX, matching encoding.Encode's output
	buf[blk1000Off+6] = byte(recordLengthExponent(recLen))
	buf[blk1000Off+7] = 0

	if needB1001 {
		blk1001Off := blk1000Off + blk1000Size
		binary.LittleEndian.PutUint16(buf[blk1001Off:blk1001Off+2], Blockette1001)
		binary.LittleEndian.PutUint16(buf[blk1001Off+2:blk1001Off+4], 0)
		buf[blk1001Off+4] = 0 // timing quality, unknown
		buf[blk1001Off+5] = 0
		buf[blk1001Off+6] = 0
		buf[blk1001Off+7] = 0
	}

	copy(buf[dataOffset:recLen], rec.DataPayload)
	rec.RecordLength = recLen

	return buf, nil
}

// compactChannel collapses an extended "B_H_Z"-style channel code into the
// 3-character compact form a v2 fixed header field can hold.
func compactChannel(chn string) string {
	if len(chn) != 5 || chn[1] != '_' || chn[3] != '_' {
		return chn
	}

	return string([]byte{chn[0], chn[2], chn[4]})
}

func copyFixed(dst []byte, s string) {
	for i := range dst {
		dst[i] = ' '
	}
	copy(dst, s)
}

// recordLengthExponent returns the smallest n such that 1<<n >= size.
func recordLengthExponent(size int) int {
	n := 0
	for (1 << uint(n)) < size {
		n++
	}

	return n
}
