// Package sid implements the Source Identifier <-> Network-Station-Location-Channel
// mapping described in §3 and §4.A of the specification.
//
// A Source Identifier (SID) is a short URN, capped at 64 bytes, of the form
// "FDSN:NET_STA_LOC_B_S_S" where B, S, S are the three characters of a SEED
// channel code split by underscores. This package implements the round-trip
// mapping between that URN form and the four legacy codes.
package sid

import (
	"strings"

	"github.com/mseedgo/miniseed/errs"
)

// MaxLength is the maximum encoded length of a Source Identifier, in bytes.
const MaxLength = 64

// Prefix is the URN scheme every well-formed Source Identifier carries.
const Prefix = "FDSN:"

// NSLC holds the four legacy SEED identification codes extracted from (or
// destined for) a Source Identifier.
type NSLC struct {
	Network   string
	Station   string
	Location  string
	Channel   string // joined three-character band+source+subsource, or the full extended channel
}

// ToNSLC parses sidStr, a "FDSN:NET_STA_LOC_CHAN" URN, into its four legacy
// components. CHAN may be a single field (a compact channel such as "BHZ",
// returned unchanged) or three underscore-separated band/source/subsource
// fields ("B_H_Z"), which are concatenated without the underscores.
//
// Returns errs.ErrMalformedSid when sidStr is longer than MaxLength, the
// "FDSN:" prefix is absent, or the remainder does not split into four or
// six underscore-separated fields.
func ToNSLC(sidStr string) (NSLC, error) {
	if len(sidStr) > MaxLength {
		return NSLC{}, errs.ErrMalformedSid
	}

	rest, ok := strings.CutPrefix(sidStr, Prefix)
	if !ok {
		return NSLC{}, errs.ErrMalformedSid
	}

	// rest = NET_STA_LOC_B_S_S (six underscore separated fields) or
	// NET_STA_LOC_CHAN (four fields, already-joined 3-char channel).
	parts := strings.Split(rest, "_")

	var nslc NSLC
	switch len(parts) {
	case 4:
		nslc = NSLC{
			Network:  parts[0],
			Station:  parts[1],
			Location: parts[2],
			Channel:  parts[3],
		}
	case 6:
		nslc = NSLC{
			Network:  parts[0],
			Station:  parts[1],
			Location: parts[2],
			Channel:  parts[3] + parts[4] + parts[5],
		}
	default:
		return NSLC{}, errs.ErrMalformedSid
	}

	return nslc, nil
}

// FromNSLC builds a Source Identifier URN from the four legacy codes. A
// three-character chan is joined with underscores into the extended form
// (B_S_S); a channel already containing underscores is passed through
// unchanged. ASCII spaces in every field are trimmed to empty.
func FromNSLC(net, sta, loc, chan_ string) string {
	net = trimSpaces(net)
	sta = trimSpaces(sta)
	loc = trimSpaces(loc)
	chan_ = trimSpaces(chan_)

	var channelField string
	if len(chan_) == 3 && !strings.Contains(chan_, "_") {
		channelField = string(chan_[0]) + "_" + string(chan_[1]) + "_" + string(chan_[2])
	} else {
		channelField = chan_
	}

	return Prefix + net + "_" + sta + "_" + loc + "_" + channelField
}

// trimSpaces strips ASCII spaces (not general whitespace) from both ends,
// matching the specification's "spaces collapse to empty positions" rule
// for legacy fixed-width SEED fields.
func trimSpaces(s string) string {
	return strings.Trim(s, " ")
}

// Valid reports whether sidStr is a well-formed Source Identifier: ASCII,
// at most MaxLength bytes, carrying the "FDSN:" prefix and exactly four
// legacy fields.
func Valid(sidStr string) bool {
	if len(sidStr) == 0 || len(sidStr) > MaxLength {
		return false
	}

	for i := 0; i < len(sidStr); i++ {
		if sidStr[i] > 0x7F {
			return false
		}
	}

	_, err := ToNSLC(sidStr)
	return err == nil
}
