package header

import "encoding/binary"

// detectV2ByteOrder implements the year/day plausibility test from §4.C: try
// the native (big-endian, per SEED convention) interpretation of the BTIME
// year and day-of-year fields first; if year falls outside [1900, 2100] or
// day outside [1, 366], retry with the bytes swapped.
func detectV2ByteOrder(btime []byte) (binary.ByteOrder, bool) {
	tryOrder := func(order binary.ByteOrder) bool {
		year := order.Uint16(btime[0:2])
		day := order.Uint16(btime[2:4])
		return year >= 1900 && year <= 2100 && day >= 1 && day <= 366
	}

	if tryOrder(binary.BigEndian) {
		return binary.BigEndian, false
	}
	if tryOrder(binary.LittleEndian) {
		return binary.LittleEndian, true
	}

	return binary.BigEndian, false
}
