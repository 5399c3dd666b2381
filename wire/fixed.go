package wire

import (
	"encoding/binary"
	"math"

	"github.com/pbj-go/pbj/pberrors"
)

// fixedReader is the minimal surface the fixed-width codecs need.
type fixedReader interface {
	ReadBytes(n int) ([]byte, error)
}

// fixedWriter is the minimal surface the fixed-width codecs need.
type fixedWriter interface {
	WriteBytes([]byte) error
}

// ReadFixed32 reads a little-endian 32-bit value.
func ReadFixed32(r fixedReader) (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, pberrors.IOErrorf(err, "fixed32: short read")
	}
	return binary.LittleEndian.Uint32(b), nil
}

// WriteFixed32 writes a little-endian 32-bit value.
func WriteFixed32(w fixedWriter, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	if err := w.WriteBytes(b[:]); err != nil {
		return pberrors.IOErrorf(err, "fixed32: short write")
	}
	return nil
}

// ReadFixed64 reads a little-endian 64-bit value.
func ReadFixed64(r fixedReader) (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, pberrors.IOErrorf(err, "fixed64: short read")
	}
	return binary.LittleEndian.Uint64(b), nil
}

// WriteFixed64 writes a little-endian 64-bit value.
func WriteFixed64(w fixedWriter, v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	if err := w.WriteBytes(b[:]); err != nil {
		return pberrors.IOErrorf(err, "fixed64: short write")
	}
	return nil
}

// EncodeFloat32 reinterprets a float32's IEEE-754 bits as a fixed32 payload.
func EncodeFloat32(f float32) uint32 { return math.Float32bits(f) }

// DecodeFloat32 is the inverse of EncodeFloat32.
func DecodeFloat32(v uint32) float32 { return math.Float32frombits(v) }

// EncodeFloat64 reinterprets a float64's IEEE-754 bits as a fixed64 payload.
func EncodeFloat64(f float64) uint64 { return math.Float64bits(f) }

// DecodeFloat64 is the inverse of EncodeFloat64.
func DecodeFloat64(v uint64) float64 { return math.Float64frombits(v) }
