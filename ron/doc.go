// Package ron implements a RON-style object notation: parsing
// human-writable text into a value tree and encoding the tree back
// into canonical text.
//
// The engine is deliberately small:
//   - Lexer: byte-level scanner producing tokens on demand
//   - Parser: recursive descent, first error only, byte offsets
//   - Encoder: deterministic canonical rendering with pretty-printing
//   - Run: the single parse-then-re-encode entry point
//
// # Data Model
//
// Scalars: null, bool, number (lexeme-preserving), string
// Containers: sequence (ordered), mapping (ordered pairs, any key type)
// Special: tagged variant wrapping a sequence or mapping
//
// # Syntax
//
//	Null:      null
//	Bool:      true / false
//	Number:    42, -1.5, 6.02e23
//	String:    "quoted \"text\" with éscapes"
//	Sequence:  [1, 2, 3]
//	Mapping:   {name: "x", [1, 2]: "keys may be any value"}
//	Tagged:    Point(1, 2) or Point{x: 1, y: 2}
//	Comment:   // to end of line
//
// # Example
//
//	out, err := ron.Run(`Match{
//	    home: Team("ARS"),  // tagged tuple
//	    odds: [2.10, 3.40, 3.25],
//	}`)
//
// # Determinism
//
// Encoding identical value trees always produces byte-identical text:
// strings are re-escaped canonically, numbers render from their
// decoded form with minimal digits, and containers switch to an
// indented multi-line layout above a configurable element count.
//
// Comments are skipped during parsing and do not survive a
// parse-encode round-trip; the lexer can surface them as tokens
// (Lexer.EmitComments) for tooling that needs them.
//
// Values are immutable once constructed and no state is shared
// between Run calls. The foreign-call surface for sandboxed use of
// this engine lives in the sibling bridge package.
package ron
