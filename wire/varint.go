package wire

import "github.com/pbj-go/pbj/pberrors"

// maxVarintBytes is the maximum number of bytes a 64-bit varint can take;
// a 10th byte still carrying the continuation bit is malformed.
const maxVarintBytes = 10

// byteReader is the minimal surface read_varint needs from a cursor. It
// is satisfied by buffer.Reader without importing the buffer package
// here, avoiding an import cycle (buffer depends on wire for framing).
type byteReader interface {
	ReadByte() (byte, error)
}

// ReadVarint decodes a base-128 varint, consuming up to 10 bytes.
func ReadVarint(r byteReader) (uint64, error) {
	var result uint64
	for i := 0; i < maxVarintBytes; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, pberrors.IOErrorf(err, "varint: short read at byte %d", i)
		}
		if i == maxVarintBytes-1 && b&0x80 != 0 {
			return 0, pberrors.New(pberrors.Malformed, "varint: 10th byte still has continuation bit set")
		}
		result |= uint64(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			return result, nil
		}
	}
	return 0, pberrors.New(pberrors.Malformed, "varint: overran 10 bytes")
}

// byteWriter is the minimal surface write_varint needs from a cursor.
type byteWriter interface {
	WriteByte(byte) error
}

// WriteVarint writes the minimum number of bytes representing value's
// magnitude. Negative 32-bit field values must be sign-extended to
// int64 by the caller before reaching here (as protoc-gen-go does),
// which naturally yields the 10-byte encoding proto3 mandates for them.
func WriteVarint(w byteWriter, value uint64) error {
	for {
		b := byte(value & 0x7f)
		value >>= 7
		if value != 0 {
			b |= 0x80
		}
		if err := w.WriteByte(b); err != nil {
			return pberrors.IOErrorf(err, "varint: short write")
		}
		if value == 0 {
			return nil
		}
	}
}

// SizeVarint returns the number of bytes WriteVarint would emit for value.
func SizeVarint(value uint64) int {
	n := 1
	for value >>= 7; value != 0; value >>= 7 {
		n++
	}
	return n
}
