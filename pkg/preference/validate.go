package preference

import "fmt"

// Validate checks a document against the field table. Unknown categories
// and fields are accepted (the schema is open for forward compatibility)
// but declared fields must carry the declared kind, and categorical
// fields must use an allowed value.
func Validate(doc Document, table FieldTable) error {
	if table == nil {
		table = DefaultFieldTable
	}
	for cat, fields := range doc {
		if fields == nil {
			return fmt.Errorf("%w: category %q is nil", ErrInvalidDocument, cat)
		}
		for name, val := range fields {
			spec, ok := table.Lookup(cat, name)
			if !ok {
				continue
			}
			switch spec.Kind {
			case FieldNumeric:
				if val.Kind != KindNumber {
					return fmt.Errorf("%w: %s.%s must be numeric, got %s", ErrInvalidDocument, cat, name, val.Kind)
				}
			case FieldBoolean:
				if val.Kind != KindBool {
					return fmt.Errorf("%w: %s.%s must be boolean, got %s", ErrInvalidDocument, cat, name, val.Kind)
				}
			case FieldCategorical:
				if val.Kind != KindString {
					return fmt.Errorf("%w: %s.%s must be categorical, got %s", ErrInvalidDocument, cat, name, val.Kind)
				}
				if !spec.allows(val.Str) {
					return fmt.Errorf("%w: %s.%s value %q not in allowed set", ErrInvalidDocument, cat, name, val.Str)
				}
			}
		}
	}
	return nil
}
