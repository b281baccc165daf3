package nstime

import (
	"strconv"
	"strings"
	"time"
)

// Parse interprets s using whichever of the recognized textual forms
// matches (§4.B): ISO month-day (ordinal or calendar date), SEED comma
// ordinal, decimal Unix epoch seconds, or plain integer nanosecond epoch.
// Returns Error if s cannot be interpreted or falls outside the valid
// 1000-4999 year range.
func Parse(s string) NsTime {
	s = strings.TrimSpace(s)
	if s == "" {
		return Error
	}

	if strings.ContainsRune(s, ',') {
		if t, ok := parseSeedOrdinal(s); ok {
			return t
		}
		return Error
	}

	hasDash := strings.Contains(s[1:], "-") // ignore a leading sign
	hasDot := strings.Contains(s, ".")
	hasAlpha := strings.ContainsAny(s, "TtZz")

	if hasDash {
		if t, ok := parseISO(s); ok {
			return t
		}
		return Error
	}

	if hasDot || hasAlpha || strings.HasPrefix(s, "-") {
		// Plain decimal Unix epoch seconds, possibly negative, possibly
		// fractional. A leading '-' without interior dashes falls here too.
		if t, ok := parseEpochSeconds(s); ok {
			return t
		}
		return Error
	}

	// No '.', '-', 'T'/'Z', purely digits: nanosecond epoch.
	if t, ok := parseEpochNanos(s); ok {
		return t
	}

	return Error
}

func parseEpochNanos(s string) (NsTime, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return Error, false
		}
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Error, false
	}

	return NsTime(v), true
}

func parseEpochSeconds(s string) (NsTime, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Error, false
	}

	whole, frac := splitFloat(f)

	return NsTime(whole*nsPerSecond + frac), true
}

// splitFloat splits a float seconds value into whole seconds and a
// nanosecond remainder, correct for negative values.
func splitFloat(f float64) (whole int64, nsec int64) {
	w := int64(f)
	rem := f - float64(w)
	nsec = int64(rem*1e9 + signOf(rem)*0.5)

	return w, nsec
}

func signOf(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}

// parseSeedOrdinal parses "YYYY,JJJ[,hh[,mm[,ss[.fff]]]]".
func parseSeedOrdinal(s string) (NsTime, bool) {
	fields := strings.Split(s, ",")
	if len(fields) < 2 || len(fields) > 6 {
		return Error, false
	}

	year, err := strconv.Atoi(fields[0])
	if err != nil || year < 1000 || year > 4999 {
		return Error, false
	}

	doy, err := strconv.Atoi(fields[1])
	if err != nil || doy < 1 || doy > 366 {
		return Error, false
	}

	hour, minute, sec, nsec := 0, 0, 0, 0
	if len(fields) > 2 {
		if hour, err = strconv.Atoi(fields[2]); err != nil {
			return Error, false
		}
	}
	if len(fields) > 3 {
		if minute, err = strconv.Atoi(fields[3]); err != nil {
			return Error, false
		}
	}
	if len(fields) > 4 {
		secF, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return Error, false
		}
		sec = int(secF)
		nsec = int((secF - float64(sec)) * 1e9 + 0.5)
	}

	return fromDate(year, 1, 1, hour, minute, sec, nsec, doy-1), true
}

// parseISO parses "YYYY-MM-DD[Thh[:mm[:ss[.fff]]]][Z]" and
// "YYYY-JJJ[Thh[:mm[:ss[.fff]]]][Z]" (ordinal day), distinguished by
// whether the date portion splits into two dash-separated fields (month,
// day) or one (day-of-year).
func parseISO(s string) (NsTime, bool) {
	s = strings.TrimSuffix(s, "Z")
	s = strings.TrimSuffix(s, "z")

	datePart := s
	timePart := ""
	sep := byte('T')
	if idx := strings.IndexAny(s, "Tt"); idx >= 0 {
		datePart, timePart = s[:idx], s[idx+1:]
	} else if idx := strings.IndexByte(s, ' '); idx >= 0 {
		datePart, timePart = s[:idx], s[idx+1:]
		sep = ' '
	}
	_ = sep

	dateFields := strings.Split(datePart, "-")

	year, err := strconv.Atoi(dateFields[0])
	if err != nil || year < 1000 || year > 4999 {
		return Error, false
	}

	month, day, doy := 1, 1, 0
	switch len(dateFields) {
	case 1:
		// year only
	case 2:
		// ordinal day
		d, err := strconv.Atoi(dateFields[1])
		if err != nil || d < 1 || d > 366 {
			return Error, false
		}
		doy = d - 1
	case 3:
		m, err := strconv.Atoi(dateFields[1])
		if err != nil || m < 1 || m > 12 {
			return Error, false
		}
		d, err := strconv.Atoi(dateFields[2])
		if err != nil || d < 1 || d > 31 {
			return Error, false
		}
		month, day = m, d
	default:
		return Error, false
	}

	hour, minute, sec, nsec := 0, 0, 0, 0
	if timePart != "" {
		timeFields := strings.Split(timePart, ":")
		if len(timeFields) > 0 {
			if hour, err = strconv.Atoi(timeFields[0]); err != nil {
				return Error, false
			}
		}
		if len(timeFields) > 1 {
			if minute, err = strconv.Atoi(timeFields[1]); err != nil {
				return Error, false
			}
		}
		if len(timeFields) > 2 {
			secF, err := strconv.ParseFloat(timeFields[2], 64)
			if err != nil {
				return Error, false
			}
			sec = int(secF)
			nsec = int((secF - float64(sec)) * 1e9 + 0.5)
		}
	}

	return fromDate(year, month, day, hour, minute, sec, nsec, doy), true
}

// fromDate builds an NsTime from calendar fields; extraDays is added as a
// day offset (used for ordinal-day forms, where month/day are left at 1/1
// and the ordinal is passed as a zero-based day offset).
func fromDate(year, month, day, hour, minute, sec, nsec, extraDays int) NsTime {
	t := time.Date(year, time.Month(month), day+extraDays, hour, minute, sec, nsec, time.UTC)
	return NsTime(t.UnixNano())
}
