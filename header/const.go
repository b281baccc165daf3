// Package header implements the v2 and v3 miniSEED header codec (§4.C):
// parsing, serialization, byte-order detection and v2/v3 translation.
package header

const (
	// V3FixedHeaderSize is the size, in bytes, of the version 3 fixed header
	// that precedes the SID/extra-header/data-payload sections.
	V3FixedHeaderSize = 40

	// V2FixedHeaderSize is the size, in bytes, of the version 2 fixed header
	// that precedes the blockette chain and data payload.
	V2FixedHeaderSize = 64

	// V3Magic is the three-byte signature at the start of every v3 record.
	V3Magic = "MS\x03"

	// MinProbeBytes is the minimum number of bytes needed to discriminate a
	// v3 signature and sanity-check its embedded time fields.
	MinProbeBytes = 15
)

// Blockette type codes.
const (
	Blockette1000 = 1000
	Blockette1001 = 1001
)

// Data quality indicator bytes valid in a v2 fixed header, byte 6.
const (
	QualityD = 'D'
	QualityR = 'R'
	QualityQ = 'Q'
	QualityM = 'M'
)
