package nstime

import (
	"strconv"
	"strings"
)

// TimeFormat selects one of the nine textual renderings of an NsTime.
type TimeFormat uint8

const (
	SeedOrdinal TimeFormat = iota
	ISOMonthDay
	ISOMonthDayZ
	ISOMonthDayDOY
	ISOMonthDayDOYZ
	ISOMonthDaySpace
	ISOMonthDaySpaceZ
	UnixEpoch
	NanosecondEpoch
)

// SubsecondMode selects how the fractional-second portion is rendered.
type SubsecondMode uint8

const (
	// SubsecondNone never prints a fractional part.
	SubsecondNone SubsecondMode = iota
	// SubsecondMicro always prints 6 fractional digits.
	SubsecondMicro
	// SubsecondNano always prints 9 fractional digits.
	SubsecondNano
	// SubsecondMicroNone prints 6 fractional digits, omitted entirely if zero.
	SubsecondMicroNone
	// SubsecondNanoNone prints 9 fractional digits, omitted entirely if zero.
	SubsecondNanoNone
	// SubsecondNanoMicroNone prints 9 digits if the sub-microsecond remainder
	// is nonzero, else 6 digits if the microsecond remainder is nonzero,
	// else omits the fractional part entirely.
	SubsecondNanoMicroNone
)

// Format renders t according to format, with fractional seconds handled per
// subsec.
func Format(t NsTime, format TimeFormat, subsec SubsecondMode) string {
	if t == Error {
		return "0000-00-00T00:00:00Z"
	}

	tm := t.ToTime()
	year, month, day := tm.Date()
	hour, minute, sec := tm.Clock()
	nsec := tm.Nanosecond()
	doy := tm.YearDay()

	frac := formatFraction(nsec, subsec)

	switch format {
	case UnixEpoch:
		whole := int64(t) / nsPerSecond
		rem := int64(t) % nsPerSecond
		if rem < 0 {
			whole--
			rem += nsPerSecond
		}
		if rem == 0 {
			return strconv.FormatInt(whole, 10)
		}
		s := strconv.FormatInt(whole, 10) + "." + fmt9(int(rem))
		return strings.TrimRight(strings.TrimRight(s, "0"), ".")
	case NanosecondEpoch:
		return strconv.FormatInt(int64(t), 10)
	case SeedOrdinal:
		return fmt4(year) + "," + fmt3(doy) + "," + fmt2(hour) + ":" + fmt2(minute) + ":" + fmt2(sec) + frac
	}

	var b strings.Builder
	b.WriteString(fmt4(year))
	b.WriteByte('-')
	b.WriteString(fmt2(int(month)))
	b.WriteByte('-')
	b.WriteString(fmt2(day))

	switch format {
	case ISOMonthDayDOY, ISOMonthDayDOYZ:
		b.WriteString("(" + fmt3(doy) + ")")
	}

	switch format {
	case ISOMonthDaySpace, ISOMonthDaySpaceZ:
		b.WriteByte(' ')
	default:
		b.WriteByte('T')
	}

	b.WriteString(fmt2(hour))
	b.WriteByte(':')
	b.WriteString(fmt2(minute))
	b.WriteByte(':')
	b.WriteString(fmt2(sec))
	b.WriteString(frac)

	switch format {
	case ISOMonthDayZ, ISOMonthDayDOYZ, ISOMonthDaySpaceZ:
		b.WriteByte('Z')
	}

	return b.String()
}

func formatFraction(nsec int, mode SubsecondMode) string {
	switch mode {
	case SubsecondNone:
		return ""
	case SubsecondMicro:
		return "." + fmt6(nsec / 1000)
	case SubsecondNano:
		return "." + fmt9(nsec)
	case SubsecondMicroNone:
		if nsec == 0 {
			return ""
		}
		return "." + fmt6(nsec / 1000)
	case SubsecondNanoNone:
		if nsec == 0 {
			return ""
		}
		return "." + fmt9(nsec)
	case SubsecondNanoMicroNone:
		if nsec == 0 {
			return ""
		}
		if nsec%1000 != 0 {
			return "." + fmt9(nsec)
		}
		return "." + fmt6(nsec / 1000)
	}

	return ""
}

func fmt2(v int) string { return pad(v, 2) }
func fmt3(v int) string { return pad(v, 3) }
func fmt4(v int) string { return pad(v, 4) }
func fmt6(v int) string { return pad(v, 6) }
func fmt9(v int) string { return pad(v, 9) }

func pad(v, width int) string {
	s := strconv.Itoa(v)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
