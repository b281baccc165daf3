package encoding

import (
	"encoding/binary"

	"github.com/mseedgo/miniseed/errs"
	"github.com/mseedgo/miniseed/record"
)

const steimFrameSize = 64
const steimWordsPerFrame = 16

// Steim frames are historically big-endian 32-bit words, independent of the
// byte order the rest of a v3 record is written in.
var steimOrder = binary.BigEndian

// decodeSteim decodes a Steim-1 (version 1) or Steim-2 (version 2) payload.
// Frame 0's word[1] holds X0 (the first sample, stored directly, not as a
// diff) and word[2] holds Xn (the expected last sample, used only to
// validate the reconstruction); differencing begins at word[3] in frame 0
// and word[1] in every subsequent frame.
func decodeSteim(version int, in []byte, sampleCount int64) (*record.DecodedSamples, error) {
	if sampleCount == 0 {
		return &record.DecodedSamples{Type: record.SampleTypeInt32}, nil
	}
	if len(in) < steimFrameSize {
		return nil, errs.New(errs.GenError, "encoding: steim payload truncated")
	}

	frameCount := len(in) / steimFrameSize
	out := make([]int32, 0, sampleCount)

	x0 := int32(steimOrder.Uint32(in[4:8]))
	xn := int32(steimOrder.Uint32(in[8:12]))

	out = append(out, x0)
	prev := x0

	for f := 0; f < frameCount && int64(len(out)) < sampleCount; f++ {
		frame := in[f*steimFrameSize : (f+1)*steimFrameSize]
		ctrl := steimOrder.Uint32(frame[0:4])

		start := 1
		if f == 0 {
			start = 3
		}

		for wi := start; wi < steimWordsPerFrame && int64(len(out)) < sampleCount; wi++ {
			nib := (ctrl >> uint(30-2*wi)) & 0x3
			if nib == 0 {
				continue
			}

			word := steimOrder.Uint32(frame[wi*4 : wi*4+4])
			diffs := decodeSteimWord(version, nib, word)

			for _, d := range diffs {
				if int64(len(out)) >= sampleCount {
					break
				}
				prev += d
				out = append(out, prev)
			}
		}
	}

	if int64(len(out)) != sampleCount {
		return nil, errs.New(errs.GenError, "encoding: steim payload yielded wrong sample count")
	}
	if sampleCount > 1 && prev != xn {
		return nil, errs.New(errs.STBadCompFlag, "encoding: steim reconstructed last sample does not match Xn")
	}

	return &record.DecodedSamples{Type: record.SampleTypeInt32, Int32: out}, nil
}

// decodeSteimWord decodes the differences packed into one 32-bit data word
// given its 2-bit nibble code.
func decodeSteimWord(version int, nib uint32, word uint32) []int32 {
	switch nib {
	case 1:
		return []int32{
			signExtend(word>>24, 8),
			signExtend((word>>16)&0xFF, 8),
			signExtend((word>>8)&0xFF, 8),
			signExtend(word&0xFF, 8),
		}
	case 2:
		if version == 1 {
			return []int32{
				signExtend(word>>16, 16),
				signExtend(word&0xFFFF, 16),
			}
		}
		return decodeSteim2Group(word, steim2Group10)
	case 3:
		if version == 1 {
			return []int32{int32(word)}
		}
		return decodeSteim2Group(word, steim2Group11)
	}

	return nil
}

type steim2Width struct {
	dnib  uint32
	count int
	width int
}

var steim2Group10 = []steim2Width{
	{dnib: 1, count: 1, width: 30},
	{dnib: 2, count: 2, width: 15},
	{dnib: 3, count: 3, width: 10},
}

var steim2Group11 = []steim2Width{
	{dnib: 0, count: 5, width: 6},
	{dnib: 1, count: 6, width: 5},
	{dnib: 2, count: 7, width: 4},
}

func decodeSteim2Group(word uint32, group []steim2Width) []int32 {
	dnib := word >> 30
	raw := word & 0x3FFFFFFF

	for _, g := range group {
		if g.dnib != dnib {
			continue
		}

		out := make([]int32, g.count)
		for i := 0; i < g.count; i++ {
			shift := 30 - g.width*(i+1)
			v := (raw >> uint(shift)) & ((1 << uint(g.width)) - 1)
			out[i] = signExtend(v, g.width)
		}

		return out
	}

	return nil
}

func signExtend(v uint32, width int) int32 {
	signBit := uint32(1) << uint(width-1)
	if v&signBit != 0 {
		v -= uint32(1) << uint(width)
	}

	return int32(v)
}

// encodeSteim encodes samples as a sequence of complete 64-byte Steim
// frames, stopping once either all samples are consumed or the next frame
// would exceed maxPayloadBytes. Unused trailing words in the final frame
// are marked no-data (nibble 00).
func encodeSteim(version int, samples *record.DecodedSamples, maxPayloadBytes int) ([]byte, int, error) {
	n := len(samples.Int32)
	if n == 0 {
		return nil, 0, nil
	}
	if maxPayloadBytes < steimFrameSize {
		return nil, 0, errs.New(errs.GenError, "encoding: steim requires at least one frame of budget")
	}

	diffs := make([]int32, n-1)
	for i := 1; i < n; i++ {
		diffs[i-1] = samples.Int32[i] - samples.Int32[i-1]
	}

	var out []byte
	consumed := 1 // X0 always consumed
	diffIdx := 0
	frameNum := 0

	for (diffIdx < len(diffs) || frameNum == 0) && (frameNum+1)*steimFrameSize <= maxPayloadBytes {
		frame := make([]byte, steimFrameSize)
		var ctrl uint32

		start := 1
		if frameNum == 0 {
			steimOrder.PutUint32(frame[4:8], uint32(samples.Int32[0]))
			// Xn is filled once the true last consumed sample is known; a
			// placeholder is written now and patched below if this is also
			// the final frame.
			start = 3
		}

		for wi := start; wi < steimWordsPerFrame; wi++ {
			if diffIdx >= len(diffs) {
				break
			}

			group, width, nib, dnib, count := chooseSteimGroup(version, diffs[diffIdx:])
			word := encodeSteimGroup(group, width, dnib)
			steimOrder.PutUint32(frame[wi*4:wi*4+4], word)
			ctrl |= nib << uint(30-2*wi)

			diffIdx += count
			consumed += count
		}

		steimOrder.PutUint32(frame[0:4], ctrl)
		out = append(out, frame...)
		frameNum++

		if diffIdx >= len(diffs) {
			break
		}
	}

	steimOrder.PutUint32(out[8:12], uint32(samples.Int32[consumed-1]))

	return out, consumed, nil
}

// chooseSteimGroup picks the most compact packing for the head of diffs,
// returning the consumed diffs (padded with zero to a full group when diffs
// runs short), the bit width used, the 2-bit nibble, the dnib discriminator
// (0 for Steim-1 and the 4x8 group), and how many diffs were actually
// consumed from the input.
func chooseSteimGroup(version int, diffs []int32) (group []int32, width int, nib uint32, dnib uint32, consumed int) {
	fitsWidth := func(v int32, w int) bool {
		lo, hi := -(int64(1) << uint(w-1)), (int64(1)<<uint(w-1))-1
		return int64(v) >= lo && int64(v) <= hi
	}
	allFit := func(vals []int32, w int) bool {
		for _, v := range vals {
			if !fitsWidth(v, w) {
				return false
			}
		}

		return true
	}
	take := func(count int) []int32 {
		n := count
		if n > len(diffs) {
			n = len(diffs)
		}
		g := make([]int32, count)
		copy(g, diffs[:n])

		return g
	}

	if version == 2 {
		candidates := []struct {
			count int
			width int
			nib   uint32
			dnib  uint32
		}{
			{7, 4, 3, 2},
			{6, 5, 3, 1},
			{5, 6, 3, 0},
			{3, 10, 2, 3},
			{2, 15, 2, 2},
		}
		for _, c := range candidates {
			n := c.count
			if n > len(diffs) {
				n = len(diffs)
			}
			if n == 0 {
				continue
			}
			if allFit(diffs[:n], c.width) {
				return take(c.count), c.width, c.nib, c.dnib, n
			}
		}
		if allFit(diffs[:min(len(diffs), 4)], 8) && len(diffs) > 0 {
			n := min(len(diffs), 4)
			return take(4), 8, 1, 0, n
		}
		n := min(len(diffs), 1)
		return take(1), 30, 2, 1, n
	}

	// Steim-1
	if n := min(len(diffs), 4); n > 0 && allFit(diffs[:n], 8) {
		return take(4), 8, 1, 0, n
	}
	if n := min(len(diffs), 2); n > 0 && allFit(diffs[:n], 16) {
		return take(2), 16, 2, 0, n
	}
	n := min(len(diffs), 1)
	return take(1), 32, 3, 0, n
}

func encodeSteimGroup(diffs []int32, width int, dnib uint32) uint32 {
	if width == 32 {
		return uint32(diffs[0])
	}
	if width == 8 && dnib == 0 && len(diffs) == 4 {
		return uint32(uint8(diffs[0]))<<24 | uint32(uint8(diffs[1]))<<16 | uint32(uint8(diffs[2]))<<8 | uint32(uint8(diffs[3]))
	}
	if width == 16 {
		return uint32(uint16(diffs[0]))<<16 | uint32(uint16(diffs[1]))
	}

	var raw uint32
	for i, d := range diffs {
		shift := 30 - width*(i+1)
		mask := uint32(1)<<uint(width) - 1
		raw |= (uint32(d) & mask) << uint(shift)
	}

	return (dnib << 30) | raw
}
