package codec

import (
	"encoding/base64"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pbj-go/pbj/pberrors"
)

// ToLowerCamelCase converts a proto field's snake_case name to the
// lowerCamelCase form the canonical JSON mapping requires for object
// keys. Generated JSON codecs call this once per field at generation
// time (the field name is a compile-time constant), not per message at
// runtime; it is exported so tests and the generator can share it.
func ToLowerCamelCase(snake string) string {
	var b strings.Builder
	upperNext := false
	for i, r := range snake {
		switch {
		case r == '_':
			upperNext = true
		case upperNext:
			b.WriteRune(toUpper(r))
			upperNext = false
		case i == 0:
			b.WriteRune(toLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// EncodeJSONBytes renders a bytes field as the standard (padded) base64
// encoding the canonical mapping requires.
func EncodeJSONBytes(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeJSONBytes accepts both standard and URL-safe base64, and both
// padded and unpadded forms, matching protojson's documented leniency on
// the decode side.
func DecodeJSONBytes(s string) ([]byte, error) {
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding, base64.RawStdEncoding,
		base64.URLEncoding, base64.RawURLEncoding,
	} {
		if out, err := enc.DecodeString(s); err == nil {
			return out, nil
		}
	}
	return nil, pberrors.Newf(pberrors.Malformed, "invalid base64 bytes field: %q", s)
}

// EncodeJSONInt64 renders a 64-bit integer as its unquoted decimal
// digits. The generated WriteJSON passes the result through json.Marshal,
// which turns it into the quoted JSON string the canonical mapping uses
// for 64-bit integer fields (since JSON numbers aren't guaranteed 64-bit
// precise across parsers).
func EncodeJSONInt64(v int64) string {
	return strconv.FormatInt(v, 10)
}

// EncodeJSONUint64 is EncodeJSONInt64 for the unsigned 64-bit kinds.
func EncodeJSONUint64(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// DecodeJSONInt64 accepts either a quoted string or a bare JSON number
// (protojson accepts both on decode; only encode is string-only).
func DecodeJSONInt64(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.Trim(s, `"`), 10, 64)
	if err != nil {
		return 0, pberrors.Newf(pberrors.Malformed, "invalid int64 JSON value: %q", s)
	}
	return v, nil
}

// DecodeJSONUint64 is DecodeJSONInt64 for the unsigned 64-bit kinds.
func DecodeJSONUint64(s string) (uint64, error) {
	v, err := strconv.ParseUint(strings.Trim(s, `"`), 10, 64)
	if err != nil {
		return 0, pberrors.Newf(pberrors.Malformed, "invalid uint64 JSON value: %q", s)
	}
	return v, nil
}

// EncodeJSONFloat64/EncodeJSONFloat32 render NaN and the two infinities as
// the quoted string literals the canonical mapping requires ("NaN",
// "Infinity", "-Infinity"); every other value marshals as a plain JSON
// number via encoding/json, matching protojson's behavior.
func EncodeJSONFloat64(v float64) json.RawMessage {
	switch {
	case math.IsNaN(v):
		return json.RawMessage(`"NaN"`)
	case math.IsInf(v, 1):
		return json.RawMessage(`"Infinity"`)
	case math.IsInf(v, -1):
		return json.RawMessage(`"-Infinity"`)
	default:
		raw, _ := json.Marshal(v)
		return raw
	}
}

func EncodeJSONFloat32(v float32) json.RawMessage {
	return EncodeJSONFloat64(float64(v))
}

// DecodeJSONFloat64 accepts a bare JSON number or one of the three special
// quoted string literals.
func DecodeJSONFloat64(raw []byte) (float64, error) {
	s := strings.Trim(string(raw), `"`)
	switch s {
	case "NaN":
		return math.NaN(), nil
	case "Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, pberrors.Newf(pberrors.Malformed, "invalid float JSON value: %q", raw)
	}
	return v, nil
}

func DecodeJSONFloat32(raw []byte) (float32, error) {
	v, err := DecodeJSONFloat64(raw)
	return float32(v), err
}
