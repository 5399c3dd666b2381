package oneof

// ComparableOneOf is a OneOf whose payload type is itself comparable with
// ==, so EqualComparable can compare two of them without a per-variant
// equality callback. Generated code does not use it: every generated
// oneof group is a OneOf[E, any], compared member by member in the
// generated Equal method.
type ComparableOneOf[E comparable, V comparable] = OneOf[E, V]

// Equal reports whether two OneOf values hold the same discriminator and,
// if set, equal payloads under eq. Unset OneOf values of the same type are
// always equal to each other regardless of eq.
func Equal[E comparable, V any](a, b OneOf[E, V], eq func(V, V) bool) bool {
	if a.set != b.set {
		return false
	}
	if !a.set {
		return true
	}
	if a.kind != b.kind {
		return false
	}
	return eq(a.val, b.val)
}

// EqualComparable is Equal specialized to a payload type comparable with
// ==.
func EqualComparable[E comparable, V comparable](a, b OneOf[E, V]) bool {
	return Equal(a, b, func(x, y V) bool { return x == y })
}
