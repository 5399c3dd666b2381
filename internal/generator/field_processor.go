package generator

import "strings"

// FieldProcessor turns a proto field's declared name into the exported
// Go identifier its generated struct field and accessor use. Unlike the
// teacher's ProcessFieldNames, Go field names never collide within a
// single message (protobuf already guarantees field names are unique per
// message) so there is no uniquify-with-a-counter pass here -- only the
// snake_case -> UpperCamelCase conversion every generated struct field
// needs.
type FieldProcessor struct{}

// NewFieldProcessor creates a new field processor.
func NewFieldProcessor() *FieldProcessor {
	return &FieldProcessor{}
}

// ExportName converts a proto snake_case field name to the exported
// UpperCamelCase form used for the generated struct field and its
// Builder setter, e.g. "account_id" -> "AccountId".
func ExportName(snake string) string {
	parts := strings.Split(snake, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		if len(p) > 1 {
			b.WriteString(p[1:])
		}
	}
	if b.Len() == 0 {
		return "Field"
	}
	return b.String()
}

// unexportName lowercases the first rune of an exported name, used for
// local variables derived from a field's exported name (e.g. a builder
// parameter).
func unexportName(exported string) string {
	if exported == "" {
		return exported
	}
	return strings.ToLower(exported[:1]) + exported[1:]
}
