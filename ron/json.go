package ron

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// ============================================================
// JSON Bridge
// ============================================================
//
// Converts between JSON and RON values. Mapping order is preserved in
// both directions by walking json.Decoder tokens instead of
// unmarshalling into Go maps. Tagged variants have no JSON native
// form; they round-trip through {"_tag": ..., "_value": ...} objects.

// FromJSON converts JSON bytes to a Value. Object member order and
// duplicate keys are preserved; numbers keep their source lexeme.
func FromJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("ron: JSON parse error: %w", err)
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("ron: trailing data after JSON value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil

	case bool:
		return Bool(t), nil

	case json.Number:
		return Number(t.String())

	case string:
		return String(t), nil

	case json.Delim:
		switch t {
		case '[':
			var elems []*Value
			for dec.More() {
				elem, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				elems = append(elems, elem)
			}
			if _, err := dec.Token(); err != nil { // closing ]
				return nil, err
			}
			return Sequence(elems...), nil

		case '{':
			var pairs []Pair
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string")
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				pairs = append(pairs, KV(key, val))
			}
			if _, err := dec.Token(); err != nil { // closing }
				return nil, err
			}
			return Mapping(pairs...), nil
		}
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}

// ToJSON converts a Value to JSON bytes. Mapping pair order is kept
// and duplicate keys are written as-is. Non-string mapping keys are
// rendered as their canonical RON text.
func ToJSON(v *Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeJSONValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeJSONValue(buf *bytes.Buffer, v *Value) error {
	if v.IsNull() {
		buf.WriteString("null")
		return nil
	}

	switch v.kind {
	case KindBool:
		if v.boolVal {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil

	case KindNumber:
		if v.numVal.isInt {
			fmt.Fprintf(buf, "%d", v.numVal.intVal)
			return nil
		}
		f := v.numVal.floatVal
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("ron: %v has no JSON representation", f)
		}
		buf.WriteString(formatFloat(f))
		return nil

	case KindString:
		return encodeJSONString(buf, v.strVal)

	case KindSequence:
		buf.WriteByte('[')
		for i, elem := range v.seqVal {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeJSONValue(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case KindMapping:
		buf.WriteByte('{')
		for i, p := range v.mapVal {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeJSONString(buf, jsonKey(p.Key)); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeJSONValue(buf, p.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case KindTagged:
		buf.WriteString(`{"_tag":`)
		if err := encodeJSONString(buf, v.tagVal.Name); err != nil {
			return err
		}
		buf.WriteString(`,"_value":`)
		if err := encodeJSONValue(buf, v.tagVal.Value); err != nil {
			return err
		}
		buf.WriteByte('}')
		return nil
	}
	return fmt.Errorf("ron: cannot encode %s as JSON", v.kind)
}

// jsonKey flattens a mapping key to a JSON object key.
func jsonKey(key *Value) string {
	if key.Kind() == KindString {
		return key.strVal
	}
	return EmitWithOptions(key, CompactEmitOptions())
}

func encodeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
