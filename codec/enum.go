package codec

import (
	"strconv"

	"github.com/pbj-go/pbj/pberrors"
)

// EnumJSON decodes an enum's JSON representation, which the canonical
// mapping allows to be either the enum value's name or its numeric
// ordinal (as a bare JSON number, received here already as its decoded
// string form). byName is the generated enum's name table.
func EnumJSON[E ~int32](raw string, byName map[string]E, fromOrdinal func(int32) (E, bool)) (E, error) {
	if e, ok := byName[raw]; ok {
		return e, nil
	}
	if n, err := strconv.ParseInt(raw, 10, 32); err == nil {
		if e, ok := fromOrdinal(int32(n)); ok {
			return e, nil
		}
	}
	var zero E
	return zero, pberrors.Newf(pberrors.Malformed, "unrecognized enum value %q", raw)
}
