package schema

// Schema is the single source of truth for one message's field metadata:
// an insertion-ordered field list plus a fast number lookup. Generated
// code builds exactly one Schema value per message as a package-level
// var; it is never mutated after construction.
type Schema struct {
	MessageName string
	Fields      []FieldDefinition
	byNumber    map[uint32]*FieldDefinition
}

// New builds a Schema from an ordered field list, indexing it by number.
// It panics on a duplicate field number, since that can only happen if
// the generator itself is broken -- a live invariant violation, not a
// runtime input-dependent error.
func New(messageName string, fields []FieldDefinition) *Schema {
	s := &Schema{
		MessageName: messageName,
		Fields:      fields,
		byNumber:    make(map[uint32]*FieldDefinition, len(fields)),
	}
	for i := range fields {
		f := &s.Fields[i]
		if _, dup := s.byNumber[f.Number]; dup {
			panic("schema: duplicate field number " + messageName + "#" + itoa(f.Number))
		}
		s.byNumber[f.Number] = f
	}
	return s
}

// Valid reports whether number names a field of this message.
func (s *Schema) Valid(number uint32) bool {
	_, ok := s.byNumber[number]
	return ok
}

// Lookup returns the FieldDefinition for number, or nil if it is not
// part of this schema.
func (s *Schema) Lookup(number uint32) *FieldDefinition {
	return s.byNumber[number]
}

// ByName returns the FieldDefinition named name, or nil.
func (s *Schema) ByName(name string) *FieldDefinition {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

func itoa(n uint32) string {
	if n == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
