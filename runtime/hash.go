package runtime

import "math"

// HashSeed is the starting accumulator generated Hash() methods fold each
// field's hash into: non-oneof fields in declaration order, then one
// entry per oneof group:
//
//	h := runtime.HashSeed
//	h = runtime.HashCombine(h, runtime.HashInt64(m.Seconds))
//	h = runtime.HashCombine(h, runtime.HashInt32(m.Nanos))
//	return h
const HashSeed uint64 = 1

// HashCombine folds a field's hash into the running accumulator.
func HashCombine(h uint64, fieldHash uint64) uint64 {
	return h*31 + fieldHash
}

func HashInt32(v int32) uint64   { return uint64(uint32(v)) }
func HashInt64(v int64) uint64   { return uint64(v) }
func HashUint32(v uint32) uint64 { return uint64(v) }
func HashUint64(v uint64) uint64 { return v }

func HashBool(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

// HashFloat32 hashes the IEEE-754 bit pattern, matching Float32Equal so
// that equal messages always hash equal.
func HashFloat32(v float32) uint64 { return uint64(math.Float32bits(v)) }

// HashFloat64 is HashFloat32 for float64.
func HashFloat64(v float64) uint64 { return math.Float64bits(v) }

// HashString hashes via FNV-1a, matching the teacher corpus's preferred
// general-purpose string hash.
func HashString(s string) uint64 { return fnv1a([]byte(s)) }

// HashBytes is HashString for raw byte slices.
func HashBytes(b []byte) uint64 { return fnv1a(b) }

func fnv1a(data []byte) uint64 {
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	h := uint64(offset64)
	for _, b := range data {
		h ^= uint64(b)
		h *= prime64
	}
	return h
}

// HashSlice hashes a repeated field: the element count combined with each
// element's hash via elemHash, folded in order (repeated field equality
// and hashing are both order-sensitive in proto3).
func HashSlice[T any](s []T, elemHash func(T) uint64) uint64 {
	h := HashSeed
	h = HashCombine(h, uint64(len(s)))
	for _, v := range s {
		h = HashCombine(h, elemHash(v))
	}
	return h
}

// HashOptional hashes an Optional[T] field: unset always hashes to 0,
// distinct from any possible set value's combination with the presence
// bit folded in.
func HashOptional[T any](o Optional[T], valueHash func(T) uint64) uint64 {
	v, ok := o.Get()
	if !ok {
		return 0
	}
	return HashCombine(1, valueHash(v))
}

// HashOneOf hashes a oneof field as (31+discriminator)*31+value, so that
// an unset oneof (discriminator zero value, no value hash contribution)
// never collides with a set variant whose value happens to hash to the
// same number as the discriminator.
func HashOneOf(discriminatorOrdinal uint64, set bool, valueHash uint64) uint64 {
	if !set {
		return 0
	}
	return (31+discriminatorOrdinal)*31 + valueHash
}
