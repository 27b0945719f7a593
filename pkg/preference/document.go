package preference

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ValueKind discriminates the three field value types a preference
// document can hold.
type ValueKind int

const (
	KindNumber ValueKind = iota
	KindBool
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a single preference field value. Exactly one of the payload
// fields is meaningful depending on Kind.
type Value struct {
	Kind ValueKind
	Num  float64
	Bool bool
	Str  string
}

func Number(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

func Boolean(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

func Categorical(s string) Value {
	return Value{Kind: KindString, Str: s}
}

func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNumber:
		return v.Num == other.Num
	case KindBool:
		return v.Bool == other.Bool
	default:
		return v.Str == other.Str
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindString:
		return json.Marshal(v.Str)
	default:
		return nil, fmt.Errorf("preference: cannot marshal value of kind %d", v.Kind)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case float64:
		*v = Number(t)
	case bool:
		*v = Boolean(t)
	case string:
		*v = Categorical(t)
	default:
		return fmt.Errorf("%w: field value must be number, bool or string, got %T", ErrInvalidDocument, raw)
	}
	return nil
}

// Category maps field name to value, e.g. {"volume": 50, "mute": false}.
type Category map[string]Value

// Document is the full per-user preference document: category name to
// category map. The zero value (nil) behaves as an empty document.
type Document map[string]Category

// NewDocument returns an empty, non-nil document.
func NewDocument() Document {
	return Document{}
}

// Clone returns a deep copy. Mutating the copy never affects the original.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for cat, fields := range d {
		cp := make(Category, len(fields))
		for name, val := range fields {
			cp[name] = val
		}
		out[cat] = cp
	}
	return out
}

// Equal reports field-for-field equality.
func (d Document) Equal(other Document) bool {
	if len(d) != len(other) {
		return false
	}
	for cat, fields := range d {
		otherFields, ok := other[cat]
		if !ok || len(fields) != len(otherFields) {
			return false
		}
		for name, val := range fields {
			otherVal, ok := otherFields[name]
			if !ok || !val.Equal(otherVal) {
				return false
			}
		}
	}
	return true
}

func (d Document) IsEmpty() bool {
	for _, fields := range d {
		if len(fields) > 0 {
			return false
		}
	}
	return true
}

// Categories returns category names in sorted order for deterministic
// iteration in logs and tests.
func (d Document) Categories() []string {
	names := make([]string, 0, len(d))
	for cat := range d {
		names = append(names, cat)
	}
	sort.Strings(names)
	return names
}
