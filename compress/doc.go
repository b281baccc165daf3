// Package compress provides whole-block compression codecs for the archive
// container's stored segments ([EXPANSION] archive): None, Zstd, S2 and LZ4.
//
// Unlike encoding (§4.D), which exploits structure specific to the sample
// type being packed, compress operates on an opaque run of already-encoded
// record bytes and is chosen independently per archive entry.
//
// # Algorithm selection
//
//   - None: fastest, no size reduction; use for already-incompressible data.
//   - Zstd (github.com/klauspost/compress/zstd, or github.com/valyala/gozstd
//     under cgo): best ratio, moderate speed; good for cold storage.
//   - S2 (github.com/klauspost/compress/s2): balanced ratio and speed.
//   - LZ4 (github.com/pierrec/lz4/v4): fastest decompression.
//
// CreateCodec and GetCodec resolve a CompressionType to a concrete Codec.
package compress
