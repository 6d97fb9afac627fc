// Package bitutil provides bit-level access to fixed-size byte buffers.
// All operations work byte by byte with shift amounts bounded to [0,8), so
// they stay well-defined for buffers of any length, including the 256-bit
// public keys used by the address codec.
package bitutil

import (
	"fmt"
	"math/bits"
)

// RangeError is returned by Extract when the requested bit range does not
// fit inside the buffer. It indicates a logic error in the caller, not a
// condition that arises from untrusted input.
type RangeError struct {
	Offset int // first requested bit
	Count  int // number of requested bits
	BitLen int // length of the buffer in bits
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("bitutil: %d bits at offset %d out of range for %d bit buffer", e.Count, e.Offset, e.BitLen)
}

// LeadingOnes returns the number of consecutive 1 bits at the start of buf,
// reading each byte most significant bit first. An all-ones buffer returns
// 8*len(buf); there is no terminating 0 bit in that case, which callers must
// handle themselves.
func LeadingOnes(buf []byte) int {
	ones := 0
	for _, b := range buf {
		n := bits.LeadingZeros8(^b)
		ones += n
		if n != 8 {
			break
		}
	}
	return ones
}

// Extract returns count bits of buf starting at bit offset, packed most
// significant bit first into a freshly allocated slice. The final byte is
// zero padded when count is not a multiple of 8. Extract fails with a
// *RangeError when offset or count is negative or the range runs past the
// end of the buffer.
func Extract(buf []byte, offset, count int) ([]byte, error) {
	bitLen := 8 * len(buf)
	if offset < 0 || count < 0 || offset+count > bitLen {
		return nil, &RangeError{Offset: offset, Count: count, BitLen: bitLen}
	}
	out := make([]byte, (count+7)/8)
	for idx := 0; idx < count; idx++ {
		src := offset + idx
		bit := (buf[src/8] >> byte(7-src%8)) & 1
		out[idx/8] |= bit << byte(7-idx%8)
	}
	return out, nil
}
