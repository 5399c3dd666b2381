package codec

// OwnedBytes returns a copy of b that shares no backing array with it.
// Every codec that reads a length-delimited bytes/string field off a
// zero-copy cursor (buffer.Bytes) must pass the result through this
// helper before storing it on a generated message, so that mutating the
// cursor's backing array after Parse returns can never change an
// already-parsed message -- the no-wrap invariant.
func OwnedBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// OwnedString is OwnedBytes for the string case: Go string conversion
// from a []byte already copies, so this just documents the call site as
// satisfying the no-wrap invariant rather than doing extra work.
func OwnedString(b []byte) string {
	return string(b)
}
