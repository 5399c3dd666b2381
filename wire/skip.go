package wire

import "github.com/pbj-go/pbj/pberrors"

// SkipCursor is the minimal surface SkipField needs: enough to consume
// every wire type without materializing the value.
type SkipCursor interface {
	byteReader
	fixedReader
	Skip(n int) error
}

// SkipField advances cursor past one field's value, given the wire type
// already read from its tag. Groups (wire types 3 and 4) are always
// rejected, matching the proto3-only scope of this implementation.
func SkipField(c SkipCursor, t Type) error {
	switch t {
	case Varint:
		_, err := ReadVarint(c)
		return err
	case Fixed64:
		_, err := c.ReadBytes(8)
		if err != nil {
			return pberrors.IOErrorf(err, "skip: short read for fixed64")
		}
		return nil
	case Fixed32:
		_, err := c.ReadBytes(4)
		if err != nil {
			return pberrors.IOErrorf(err, "skip: short read for fixed32")
		}
		return nil
	case LengthDelimited:
		length, err := ReadVarint(c)
		if err != nil {
			return err
		}
		if err := c.Skip(int(length)); err != nil {
			return pberrors.IOErrorf(err, "skip: short read for length-delimited payload")
		}
		return nil
	case startGroup, endGroup:
		return pberrors.Newf(pberrors.Malformed, "skip: group wire type %s is rejected (proto3)", t)
	default:
		return pberrors.Newf(pberrors.Malformed, "skip: unknown wire type %d", t)
	}
}
