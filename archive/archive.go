// Package archive implements a bulk container format for storing many
// packed miniSEED records as one compressed unit ([EXPANSION]): a small
// framing header identifying the whole-container codec, followed by a
// sequence of independently compressed blocks, each holding a run of
// concatenated record bytes. It is a pure convenience wrapper around
// otherwise-untouched records — the wire format itself is unaffected by
// whether a record was ever stored inside an archive.
package archive

import (
	"encoding/binary"
	"io"

	"github.com/mseedgo/miniseed/compress"
	"github.com/mseedgo/miniseed/errs"
)

const (
	magic         = "MSAR"
	formatVersion = 1
	headerSize    = 6
	blockHeaderSize = 8

	// DefaultBlockSize is the buffered-bytes threshold at which Writer
	// flushes a compressed block.
	DefaultBlockSize = 1 << 20
)

// Writer accumulates packed record bytes and flushes them as independently
// compressed blocks.
type Writer struct {
	w               io.Writer
	codec           compress.Codec
	compressionType compress.CompressionType
	blockSize       int
	buf             []byte
	headerWritten   bool
}

// NewWriter creates a Writer over w using compressionType for every block
// it emits. blockSize of 0 selects DefaultBlockSize.
func NewWriter(w io.Writer, compressionType compress.CompressionType, blockSize int) (*Writer, error) {
	codec, err := compress.GetCodec(compressionType)
	if err != nil {
		return nil, err
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	return &Writer{w: w, codec: codec, compressionType: compressionType, blockSize: blockSize}, nil
}

func (wr *Writer) writeHeader() error {
	if wr.headerWritten {
		return nil
	}

	hdr := make([]byte, headerSize)
	copy(hdr[:4], magic)
	hdr[4] = formatVersion
	hdr[5] = byte(wr.compressionType)
	if _, err := wr.w.Write(hdr); err != nil {
		return errs.Wrap(errs.GenError, err)
	}
	wr.headerWritten = true

	return nil
}

// WriteRecord appends one packed record's bytes (as produced by
// header.PackHeader or pack.Pack's handler) to the current block, flushing
// a compressed block once buffered bytes reach the configured block size.
func (wr *Writer) WriteRecord(buf []byte) error {
	if err := wr.writeHeader(); err != nil {
		return err
	}

	wr.buf = append(wr.buf, buf...)
	if len(wr.buf) >= wr.blockSize {
		return wr.flush()
	}

	return nil
}

func (wr *Writer) flush() error {
	if len(wr.buf) == 0 {
		return nil
	}

	compressed, err := wr.codec.Compress(wr.buf)
	if err != nil {
		return err
	}

	var blockHdr [blockHeaderSize]byte
	binary.LittleEndian.PutUint32(blockHdr[0:4], uint32(len(compressed)))
	binary.LittleEndian.PutUint32(blockHdr[4:8], uint32(len(wr.buf)))
	if _, err := wr.w.Write(blockHdr[:]); err != nil {
		return errs.Wrap(errs.GenError, err)
	}
	if _, err := wr.w.Write(compressed); err != nil {
		return errs.Wrap(errs.GenError, err)
	}

	wr.buf = wr.buf[:0]

	return nil
}

// Close flushes any buffered record bytes as a final block. It does not
// close the underlying io.Writer.
func (wr *Writer) Close() error {
	if err := wr.writeHeader(); err != nil {
		return err
	}

	return wr.flush()
}

// Reader reads a container written by Writer back out block by block.
type Reader struct {
	r               io.Reader
	codec           compress.Codec
	compressionType compress.CompressionType
}

// NewReader reads r's container header and returns a Reader ready to yield
// blocks via NextBlock.
func NewReader(r io.Reader) (*Reader, error) {
	hdr := make([]byte, headerSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, errs.Wrap(errs.GenError, err)
	}
	if string(hdr[:4]) != magic {
		return nil, errs.New(errs.NotSeed, "archive: bad container magic")
	}
	if hdr[4] != formatVersion {
		return nil, errs.New(errs.UnknownFormat, "archive: unsupported container version")
	}

	ct := compress.CompressionType(hdr[5])
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}

	return &Reader{r: r, codec: codec, compressionType: ct}, nil
}

// CompressionType reports the codec this container's blocks are encoded
// with.
func (rd *Reader) CompressionType() compress.CompressionType { return rd.compressionType }

// NextBlock reads, decompresses and returns the next block's raw
// concatenated record bytes. Returns io.EOF once every block has been
// consumed.
func (rd *Reader) NextBlock() ([]byte, error) {
	var blockHdr [blockHeaderSize]byte
	if _, err := io.ReadFull(rd.r, blockHdr[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}

		return nil, errs.Wrap(errs.GenError, err)
	}

	compressedLen := binary.LittleEndian.Uint32(blockHdr[0:4])
	originalLen := binary.LittleEndian.Uint32(blockHdr[4:8])

	compressed := make([]byte, compressedLen)
	if _, err := io.ReadFull(rd.r, compressed); err != nil {
		return nil, errs.Wrap(errs.GenError, err)
	}

	raw, err := rd.codec.Decompress(compressed)
	if err != nil {
		return nil, err
	}
	if uint32(len(raw)) != originalLen {
		return nil, errs.New(errs.WrongLength, "archive: decompressed block size mismatch")
	}

	return raw, nil
}
