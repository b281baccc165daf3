// Package errs defines the sentinel errors and return-code taxonomy shared by
// every package in this module, following the same import path
// ("github.com/mseedgo/miniseed/errs") and call pattern the rest of the
// codebase uses: errors are compared with errors.Is against a sentinel, and
// carry a Code for callers that need the historical libmseed-style numeric
// return code.
package errs

import "errors"

// Code mirrors the MS_* return codes of the wire specification. It is carried
// alongside (not instead of) an idiomatic Go error so callers that need the
// numeric code for logging or interop can get it via CodeOf.
type Code int

const (
	NoError         Code = 0
	EndOfFile       Code = 1
	GenError        Code = -1
	NotSeed         Code = -2
	WrongLength     Code = -3
	OutOfRange      Code = -4
	UnknownFormat   Code = -5
	STBadCompFlag   Code = -6
	InvalidCRC      Code = -7
)

// codedError pairs a sentinel error with its wire-level return code.
type codedError struct {
	code Code
	err  error
}

func (c *codedError) Error() string { return c.err.Error() }
func (c *codedError) Unwrap() error { return c.err }

func coded(code Code, err error) *codedError {
	return &codedError{code: code, err: err}
}

// CodeOf extracts the Code carried by err, defaulting to GenError when err
// does not originate from this package.
func CodeOf(err error) Code {
	if err == nil {
		return NoError
	}

	var ce *codedError
	if errors.As(err, &ce) {
		return ce.code
	}

	return GenError
}

// Sentinel errors. Each is wrapped with its wire-level Code via coded() so
// CodeOf(err) and errors.Is(err, ErrXxx) both work on the returned error.
var (
	ErrNotSeed            = coded(NotSeed, errors.New("mseed: not a recognizable miniSEED record"))
	ErrWrongLength        = coded(WrongLength, errors.New("mseed: record length out of bounds"))
	ErrOutOfRange         = coded(OutOfRange, errors.New("mseed: value out of representable range"))
	ErrUnknownFormat      = coded(UnknownFormat, errors.New("mseed: unknown or unsupported encoding"))
	ErrBadCompressionFlag = coded(STBadCompFlag, errors.New("mseed: Steim decode failed integrity check"))
	ErrInvalidCRC         = coded(InvalidCRC, errors.New("mseed: CRC32C validation failed"))

	ErrMalformedSid     = coded(GenError, errors.New("mseed: malformed source identifier"))
	ErrInvalidHeader    = coded(GenError, errors.New("mseed: invalid record header"))
	ErrInvalidArgument  = coded(GenError, errors.New("mseed: invalid argument"))
	ErrBufferTooShort   = coded(GenError, errors.New("mseed: destination buffer too short"))
	ErrTruncatedInput   = coded(GenError, errors.New("mseed: truncated input"))
	ErrEncodeExhausted  = coded(GenError, errors.New("mseed: encoder could not place a single sample in budget"))
	ErrHashCollision    = coded(GenError, errors.New("mseed: hash collision on identifier lookup"))
	ErrSidAlreadyTracked = coded(GenError, errors.New("mseed: source identifier already tracked"))
	ErrNilSource        = coded(GenError, errors.New("mseed: nil byte source"))
	ErrClosed           = coded(GenError, errors.New("mseed: stream already closed"))
	ErrPointerNotFound  = errors.New("mseed: JSON pointer not found")
	ErrWrongType        = errors.New("mseed: JSON pointer value has unexpected type")
	ErrInvalidPointer   = errors.New("mseed: malformed JSON pointer")
	ErrSegmentMismatch  = errors.New("mseed: record does not merge into segment within tolerance")
	ErrRecordListClosed = errors.New("mseed: record pointer source is no longer available")
)

// ErrEndOfFile is the sentinel the stream reader returns to signal a clean
// end of input with nothing further to emit. It is deliberately distinct
// from the MS_NOTSEED family since it is not a malformed-input condition.
var ErrEndOfFile = coded(EndOfFile, errors.New("mseed: end of file"))

// New wraps msg with code as a plain sentinel-compatible error, for callers
// that need an ad hoc coded error (e.g. propagating a byte-source failure).
func New(code Code, msg string) error {
	return coded(code, errors.New(msg))
}

// Wrap attaches code to an existing error from a collaborator (e.g. the byte
// source), preserving it as the Unwrap() target.
func Wrap(code Code, err error) error {
	if err == nil {
		return nil
	}

	return coded(code, err)
}
