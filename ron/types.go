package ron

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind represents RON value kinds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
	KindTagged // Identifier-prefixed variant: Point(1, 2) or Point{x: 1}
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindTagged:
		return "tagged"
	default:
		return "unknown"
	}
}

// Value represents a RON value. Values are immutable once constructed:
// the parser builds a tree per input, the encoder consumes it, nothing
// mutates it in between.
type Value struct {
	kind Kind

	boolVal bool
	numVal  number
	strVal  string

	seqVal []*Value
	mapVal []Pair
	tagVal *TaggedValue

	// Source byte offset, for error reporting and tooling.
	pos int
}

// number keeps both the source lexeme and the decoded form so that
// re-encoding never loses magnitude. The lexeme is empty for values
// constructed programmatically.
type number struct {
	lexeme   string
	isInt    bool
	intVal   int64
	floatVal float64
}

// Pair represents a key-value pair in a mapping. Keys may be any
// value, and pair order is significant.
type Pair struct {
	Key   *Value
	Value *Value
}

// TaggedValue represents an identifier-prefixed variant. Value wraps
// either a sequence (tuple-style) or a mapping (struct-style).
type TaggedValue struct {
	Name  string
	Value *Value
}

// ============================================================
// Constructors
// ============================================================

// Null creates a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Int creates an integer number value.
func Int(v int64) *Value {
	return &Value{kind: KindNumber, numVal: number{isInt: true, intVal: v}}
}

// Float creates a floating-point number value.
func Float(v float64) *Value {
	return &Value{kind: KindNumber, numVal: number{floatVal: v}}
}

// Number creates a number value from a source lexeme, retaining it for
// round-trip fidelity. The lexeme must match the numeric grammar.
func Number(lexeme string) (*Value, error) {
	n, err := decodeNumber(lexeme)
	if err != nil {
		return nil, err
	}
	return &Value{kind: KindNumber, numVal: n}, nil
}

// String creates a string value holding decoded Unicode text.
func String(v string) *Value {
	return &Value{kind: KindString, strVal: v}
}

// Sequence creates an ordered sequence value.
func Sequence(elems ...*Value) *Value {
	return &Value{kind: KindSequence, seqVal: elems}
}

// Mapping creates a mapping from ordered pairs. Duplicate keys are
// kept; insertion order is preserved through encoding.
func Mapping(pairs ...Pair) *Value {
	return &Value{kind: KindMapping, mapVal: pairs}
}

// Tagged creates an identifier-prefixed variant. The name must be a
// valid identifier per the lexer grammar. A payload that is neither a
// sequence nor a mapping is wrapped in a one-element sequence, so the
// rendered form Name(payload) re-parses to the same shape.
func Tagged(name string, v *Value) *Value {
	if v.Kind() != KindSequence && v.Kind() != KindMapping {
		v = Sequence(v)
	}
	return &Value{kind: KindTagged, tagVal: &TaggedValue{Name: name, Value: v}}
}

// KV builds a Pair with a string key, the common case.
func KV(key string, value *Value) Pair {
	return Pair{Key: String(key), Value: value}
}

// decodeNumber parses a numeric lexeme into its decoded form.
// Integers without fraction or exponent decode to int64 when they fit;
// everything else decodes to float64.
func decodeNumber(lexeme string) (number, error) {
	if !strings.ContainsAny(lexeme, ".eE") {
		if i, err := strconv.ParseInt(lexeme, 10, 64); err == nil {
			return number{lexeme: lexeme, isInt: true, intVal: i}, nil
		}
	}
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return number{}, fmt.Errorf("ron: invalid number %q", lexeme)
	}
	return number{lexeme: lexeme, floatVal: f}, nil
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value kind.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull returns true if this is a null value.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// AsBool returns the boolean value.
func (v *Value) AsBool() (bool, error) {
	if v == nil || v.kind != KindBool {
		return false, fmt.Errorf("ron: expected bool, got %s", v.Kind())
	}
	return v.boolVal, nil
}

// AsInt returns the number as int64. It fails for float numbers.
func (v *Value) AsInt() (int64, error) {
	if v == nil || v.kind != KindNumber || !v.numVal.isInt {
		return 0, fmt.Errorf("ron: expected integer, got %s", v.Kind())
	}
	return v.numVal.intVal, nil
}

// AsFloat returns the number as float64, coercing integers.
func (v *Value) AsFloat() (float64, error) {
	if v == nil || v.kind != KindNumber {
		return 0, fmt.Errorf("ron: expected number, got %s", v.Kind())
	}
	if v.numVal.isInt {
		return float64(v.numVal.intVal), nil
	}
	return v.numVal.floatVal, nil
}

// IsInt reports whether a number value holds an integer.
func (v *Value) IsInt() bool {
	return v != nil && v.kind == KindNumber && v.numVal.isInt
}

// Lexeme returns the source lexeme of a number, if it came from parsed
// input; programmatically constructed numbers have none.
func (v *Value) Lexeme() string {
	if v == nil || v.kind != KindNumber {
		return ""
	}
	return v.numVal.lexeme
}

// AsString returns the string value.
func (v *Value) AsString() (string, error) {
	if v == nil || v.kind != KindString {
		return "", fmt.Errorf("ron: expected string, got %s", v.Kind())
	}
	return v.strVal, nil
}

// AsSequence returns the sequence elements.
func (v *Value) AsSequence() ([]*Value, error) {
	if v == nil || v.kind != KindSequence {
		return nil, fmt.Errorf("ron: expected sequence, got %s", v.Kind())
	}
	return v.seqVal, nil
}

// AsMapping returns the mapping pairs in insertion order.
func (v *Value) AsMapping() ([]Pair, error) {
	if v == nil || v.kind != KindMapping {
		return nil, fmt.Errorf("ron: expected mapping, got %s", v.Kind())
	}
	return v.mapVal, nil
}

// AsTagged returns the tagged variant.
func (v *Value) AsTagged() (*TaggedValue, error) {
	if v == nil || v.kind != KindTagged {
		return nil, fmt.Errorf("ron: expected tagged, got %s", v.Kind())
	}
	return v.tagVal, nil
}

// Len returns the element count of a sequence or mapping, descending
// into a tagged variant's contents.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindSequence:
		return len(v.seqVal)
	case KindMapping:
		return len(v.mapVal)
	case KindTagged:
		return v.tagVal.Value.Len()
	default:
		return 0
	}
}

// Index returns the i-th element of a sequence.
func (v *Value) Index(i int) (*Value, error) {
	if v == nil || v.kind != KindSequence {
		return nil, fmt.Errorf("ron: not a sequence")
	}
	if i < 0 || i >= len(v.seqVal) {
		return nil, fmt.Errorf("ron: index %d out of bounds (len=%d)", i, len(v.seqVal))
	}
	return v.seqVal[i], nil
}

// Get returns the value for the first pair whose key is the given
// string, or nil. Non-string keys never match.
func (v *Value) Get(key string) *Value {
	if v == nil || v.kind != KindMapping {
		return nil
	}
	for _, p := range v.mapVal {
		if p.Key.kind == KindString && p.Key.strVal == key {
			return p.Value
		}
	}
	return nil
}

// Pos returns the source byte offset of this value.
func (v *Value) Pos() int {
	if v == nil {
		return 0
	}
	return v.pos
}

// ============================================================
// Structural Equality
// ============================================================

// Equal reports structural equality. Numbers compare by decoded form,
// not lexeme: parsing "1.50" and "1.5" yields equal values.
func Equal(a, b *Value) bool {
	if a.IsNull() || b.IsNull() {
		return a.IsNull() && b.IsNull()
	}
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindBool:
		return a.boolVal == b.boolVal
	case KindNumber:
		if a.numVal.isInt != b.numVal.isInt {
			return false
		}
		if a.numVal.isInt {
			return a.numVal.intVal == b.numVal.intVal
		}
		return a.numVal.floatVal == b.numVal.floatVal
	case KindString:
		return a.strVal == b.strVal
	case KindSequence:
		if len(a.seqVal) != len(b.seqVal) {
			return false
		}
		for i := range a.seqVal {
			if !Equal(a.seqVal[i], b.seqVal[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(a.mapVal) != len(b.mapVal) {
			return false
		}
		for i := range a.mapVal {
			if !Equal(a.mapVal[i].Key, b.mapVal[i].Key) {
				return false
			}
			if !Equal(a.mapVal[i].Value, b.mapVal[i].Value) {
				return false
			}
		}
		return true
	case KindTagged:
		return a.tagVal.Name == b.tagVal.Name && Equal(a.tagVal.Value, b.tagVal.Value)
	default:
		return false
	}
}
