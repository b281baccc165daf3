package header

import (
	"encoding/binary"
	"time"

	"github.com/mseedgo/miniseed/nstime"
)

// decodeV3StartTime reads the 10-byte v3 start-time field: year u16,
// day-of-year u16, hour u8, min u8, sec u8, nsec u32, all little-endian.
func decodeV3StartTime(b []byte) nstime.NsTime {
	year := int(binary.LittleEndian.Uint16(b[0:2]))
	doy := int(binary.LittleEndian.Uint16(b[2:4]))
	hour := int(b[4])
	minute := int(b[5])
	sec := int(b[6])
	nsec := int(binary.LittleEndian.Uint32(b[7:11]))

	return dateToNsTime(year, doy, hour, minute, sec, nsec)
}

// encodeV3StartTime writes t into the 10-byte v3 start-time field.
func encodeV3StartTime(b []byte, t nstime.NsTime) {
	year, doy, hour, minute, sec, nsec := nsTimeToDate(t)

	binary.LittleEndian.PutUint16(b[0:2], uint16(year))
	binary.LittleEndian.PutUint16(b[2:4], uint16(doy))
	b[4] = byte(hour)
	b[5] = byte(minute)
	b[6] = byte(sec)
	binary.LittleEndian.PutUint32(b[7:11], uint32(nsec))
}

// decodeBTIME reads a 10-byte SEED BTIME field (year, day, hour, min, sec,
// unused, fractional seconds in 0.0001s ticks) using order.
func decodeBTIME(b []byte, order binary.ByteOrder) nstime.NsTime {
	year := int(order.Uint16(b[0:2]))
	doy := int(order.Uint16(b[2:4]))
	hour := int(b[4])
	minute := int(b[5])
	sec := int(b[6])
	// b[7] is unused.
	tenths := int(order.Uint16(b[8:10]))
	nsec := tenths * 100000

	return dateToNsTime(year, doy, hour, minute, sec, nsec)
}

// encodeBTIME writes t into a 10-byte SEED BTIME field in little-endian (the
// order this library always writes in, per §4.C).
func encodeBTIME(b []byte, t nstime.NsTime) {
	year, doy, hour, minute, sec, nsec := nsTimeToDate(t)

	binary.LittleEndian.PutUint16(b[0:2], uint16(year))
	binary.LittleEndian.PutUint16(b[2:4], uint16(doy))
	b[4] = byte(hour)
	b[5] = byte(minute)
	b[6] = byte(sec)
	b[7] = 0
	binary.LittleEndian.PutUint16(b[8:10], uint16(nsec/100000))
}

func dateToNsTime(year, doy, hour, minute, sec, nsec int) nstime.NsTime {
	t := time.Date(year, time.January, doy, hour, minute, sec, nsec, time.UTC)
	return nstime.FromTime(t)
}

func nsTimeToDate(t nstime.NsTime) (year, doy, hour, minute, sec, nsec int) {
	tm := t.ToTime()
	y, _, _ := tm.Date()
	return y, tm.YearDay(), tm.Hour(), tm.Minute(), tm.Second(), tm.Nanosecond()
}

