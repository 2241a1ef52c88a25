package mask

import (
	"encoding/binary"
)

// EncodedSize is the length of an encoded mask.
const EncodedSize = 8

// Encode returns the mask's integer as 8 big-endian bytes. The kind is not
// part of the encoding; the reader supplies it to [Decode].
func Encode(m Mask) []byte {
	b := make([]byte, EncodedSize)
	binary.BigEndian.PutUint64(b, m.bits)
	return b
}

// Decode reads an 8-byte big-endian integer as a mask of kind k.
//
// Decode does not check that the set bits correspond to defined names.
func Decode(k *Kind, data []byte) (Mask, error) {
	if len(data) != EncodedSize {
		return Mask{}, ErrInvalidMaskSize
	}
	return k.New(binary.BigEndian.Uint64(data)), nil
}
