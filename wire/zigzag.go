package wire

// ZigZagEncode maps a signed integer to an unsigned one so that numbers
// with a small absolute value (regardless of sign) also have a small
// varint encoding: 0, -1, 1, -2, 2 ... map to 0, 1, 2, 3, 4 ...
func ZigZagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// ZigZagDecode is the inverse of ZigZagEncode.
func ZigZagDecode(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// ZigZagEncode32 is the 32-bit form used for sint32 fields.
func ZigZagEncode32(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

// ZigZagDecode32 is the inverse of ZigZagEncode32.
func ZigZagDecode32(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}
