package ron

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EmitOptions configures the canonical encoder.
type EmitOptions struct {
	// Indent string for multi-line layout.
	Indent string

	// WrapThreshold is the element count above which a sequence or
	// mapping switches from single-line to multi-line layout.
	// Zero or negative disables wrapping.
	WrapThreshold int
}

// DefaultEmitOptions returns sensible defaults.
func DefaultEmitOptions() EmitOptions {
	return EmitOptions{
		Indent:        "  ",
		WrapThreshold: 4,
	}
}

// CompactEmitOptions returns options that never wrap.
func CompactEmitOptions() EmitOptions {
	return EmitOptions{WrapThreshold: 0}
}

// Emit renders a Value tree as canonical RON text. Encoding is pure,
// deterministic and total: identical trees produce byte-identical
// output, and no well-formed tree fails to encode.
func Emit(v *Value) string {
	return EmitWithOptions(v, DefaultEmitOptions())
}

// EmitWithOptions renders a Value with custom options.
func EmitWithOptions(v *Value, opts EmitOptions) string {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	e := &emitter{opts: opts}
	e.emit(v, 0)
	return e.sb.String()
}

type emitter struct {
	sb   strings.Builder
	opts EmitOptions
}

func (e *emitter) emit(v *Value, depth int) {
	if v.IsNull() {
		e.sb.WriteString("null")
		return
	}

	switch v.kind {
	case KindBool:
		if v.boolVal {
			e.sb.WriteString("true")
		} else {
			e.sb.WriteString("false")
		}

	case KindNumber:
		e.emitNumber(v.numVal)

	case KindString:
		e.emitString(v.strVal)

	case KindSequence:
		e.emitSequence(v.seqVal, "[", "]", depth)

	case KindMapping:
		e.emitMapping(v.mapVal, depth)

	case KindTagged:
		e.emitTagged(v.tagVal, depth)
	}
}

// emitNumber renders from the decoded form: integers in base 10,
// floats in the shortest representation that round-trips, with a
// trailing .0 to keep them recognizably non-integer. A literal whose
// magnitude overflows float64 keeps its source lexeme, so the output
// still re-parses as a number.
func (e *emitter) emitNumber(n number) {
	if n.isInt {
		e.sb.WriteString(strconv.FormatInt(n.intVal, 10))
		return
	}
	if n.lexeme != "" && (math.IsInf(n.floatVal, 0) || math.IsNaN(n.floatVal)) {
		e.sb.WriteString(n.lexeme)
		return
	}
	e.sb.WriteString(formatFloat(n.floatVal))
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Inf"
	}
	if math.IsInf(f, -1) {
		return "-Inf"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// emitString renders a canonically escaped quoted string; strings are
// never copied verbatim from source.
func (e *emitter) emitString(s string) {
	e.sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			e.sb.WriteString(`\"`)
		case '\\':
			e.sb.WriteString(`\\`)
		case '\n':
			e.sb.WriteString(`\n`)
		case '\r':
			e.sb.WriteString(`\r`)
		case '\t':
			e.sb.WriteString(`\t`)
		case '\b':
			e.sb.WriteString(`\b`)
		case '\f':
			e.sb.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&e.sb, `\u%04x`, r)
			} else {
				e.sb.WriteRune(r)
			}
		}
	}
	e.sb.WriteByte('"')
}

func (e *emitter) emitSequence(elems []*Value, open, close string, depth int) {
	e.sb.WriteString(open)

	if e.wrap(len(elems)) {
		for i, elem := range elems {
			e.sb.WriteByte('\n')
			e.writeIndent(depth + 1)
			e.emit(elem, depth+1)
			if i < len(elems)-1 {
				e.sb.WriteByte(',')
			}
		}
		e.sb.WriteByte('\n')
		e.writeIndent(depth)
	} else {
		for i, elem := range elems {
			if i > 0 {
				e.sb.WriteString(", ")
			}
			e.emit(elem, depth)
		}
	}

	e.sb.WriteString(close)
}

func (e *emitter) emitMapping(pairs []Pair, depth int) {
	e.sb.WriteByte('{')

	if e.wrap(len(pairs)) {
		for i, p := range pairs {
			e.sb.WriteByte('\n')
			e.writeIndent(depth + 1)
			e.emit(p.Key, depth+1)
			e.sb.WriteString(": ")
			e.emit(p.Value, depth+1)
			if i < len(pairs)-1 {
				e.sb.WriteByte(',')
			}
		}
		e.sb.WriteByte('\n')
		e.writeIndent(depth)
	} else {
		for i, p := range pairs {
			if i > 0 {
				e.sb.WriteString(", ")
			}
			e.emit(p.Key, depth)
			e.sb.WriteString(": ")
			e.emit(p.Value, depth)
		}
	}

	e.sb.WriteByte('}')
}

// emitTagged renders Ident(contents) for wrapped sequences and
// Ident{contents} for wrapped mappings.
func (e *emitter) emitTagged(tv *TaggedValue, depth int) {
	e.sb.WriteString(tv.Name)

	switch tv.Value.Kind() {
	case KindMapping:
		e.emitMapping(tv.Value.mapVal, depth)
	case KindSequence:
		e.emitSequence(tv.Value.seqVal, "(", ")", depth)
	default:
		// Tolerate a scalar payload: render as a 1-tuple.
		e.sb.WriteByte('(')
		e.emit(tv.Value, depth)
		e.sb.WriteByte(')')
	}
}

func (e *emitter) wrap(n int) bool {
	return e.opts.WrapThreshold > 0 && n > e.opts.WrapThreshold
}

func (e *emitter) writeIndent(depth int) {
	for i := 0; i < depth; i++ {
		e.sb.WriteString(e.opts.Indent)
	}
}
