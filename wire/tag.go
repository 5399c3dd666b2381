package wire

import "github.com/pbj-go/pbj/pberrors"

// EncodeTag packs a field number and wire type into the varint tag value
// written before every field on the wire.
func EncodeTag(fieldNumber uint32, t Type) uint64 {
	return uint64(fieldNumber)<<3 | uint64(t&0x7)
}

// DecodeTag splits a raw tag varint back into field number and wire type.
func DecodeTag(raw uint64) (fieldNumber uint32, wireType Type) {
	return uint32(raw >> 3), Type(raw & 0x7)
}

// ReadTag reads and decodes one tag, rejecting field number 0 and any
// number beyond MaxFieldNumber (the reserved range 19000-19999 is
// rejected later, as Malformed, by the generated parser's default
// branch, which every number outside the message's schema reaches).
func ReadTag(r byteReader) (fieldNumber uint32, wireType Type, err error) {
	raw, err := ReadVarint(r)
	if err != nil {
		return 0, 0, err
	}
	fieldNumber, wireType = DecodeTag(raw)
	if fieldNumber == 0 {
		return 0, 0, pberrors.New(pberrors.Malformed, "tag: field number 0 is not allowed")
	}
	if fieldNumber > MaxFieldNumber {
		return 0, 0, pberrors.Newf(pberrors.Malformed, "tag: field number %d exceeds maximum %d", fieldNumber, MaxFieldNumber)
	}
	return fieldNumber, wireType, nil
}

// WriteTag encodes and writes one tag.
func WriteTag(w byteWriter, fieldNumber uint32, t Type) error {
	return WriteVarint(w, EncodeTag(fieldNumber, t))
}
