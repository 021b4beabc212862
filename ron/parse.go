package ron

import "fmt"

// ParseErrorKind classifies parser errors.
type ParseErrorKind uint8

const (
	ParseUnexpectedToken ParseErrorKind = iota
	ParseUnexpectedEOF
	ParseTrailingInput
)

// String returns the error kind name.
func (k ParseErrorKind) String() string {
	switch k {
	case ParseUnexpectedToken:
		return "unexpected token"
	case ParseUnexpectedEOF:
		return "unexpected end of input"
	case ParseTrailingInput:
		return "trailing input"
	default:
		return "unknown"
	}
}

// ParseError is a structural error at a byte offset in the source.
// Parsing stops at the first error; there is no recovery.
type ParseError struct {
	Kind   ParseErrorKind
	Offset int
	Got    string // text of the offending token, if any
}

func (e *ParseError) Error() string {
	if e.Got != "" {
		return fmt.Sprintf("ron: %s %q at offset %d", e.Kind, e.Got, e.Offset)
	}
	return fmt.Sprintf("ron: %s at offset %d", e.Kind, e.Offset)
}

type parser struct {
	ts *tokenStream
}

// Parse parses RON text into a Value tree. The input must contain
// exactly one value; anything after it is a ParseTrailingInput error.
func Parse(input string) (*Value, error) {
	p := &parser{ts: newTokenStream(NewLexer(input))}

	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	if err := p.ts.Err(); err != nil {
		return nil, err
	}
	if tok := p.ts.Peek(); tok.Type != TokenEOF {
		return nil, &ParseError{Kind: ParseTrailingInput, Offset: tok.Pos, Got: tok.Text}
	}

	return v, nil
}

// parseValue parses any value, one branch per variant.
func (p *parser) parseValue() (*Value, error) {
	if err := p.ts.Err(); err != nil {
		return nil, err
	}
	tok := p.ts.Peek()

	switch tok.Type {
	case TokenNull:
		p.ts.Advance()
		return at(Null(), tok), nil

	case TokenTrue:
		p.ts.Advance()
		return at(Bool(true), tok), nil

	case TokenFalse:
		p.ts.Advance()
		return at(Bool(false), tok), nil

	case TokenNumber:
		p.ts.Advance()
		v, err := Number(tok.Text)
		if err != nil {
			return nil, err
		}
		return at(v, tok), nil

	case TokenString:
		p.ts.Advance()
		return at(String(tok.Value), tok), nil

	case TokenLBracket:
		return p.parseSequence(TokenRBracket)

	case TokenLBrace:
		return p.parseMapping()

	case TokenIdent:
		return p.parseIdentValue()

	case TokenEOF:
		return nil, &ParseError{Kind: ParseUnexpectedEOF, Offset: tok.Pos}

	default:
		return nil, &ParseError{Kind: ParseUnexpectedToken, Offset: tok.Pos, Got: tok.Text}
	}
}

// parseIdentValue disambiguates a leading identifier. It commits to a
// tagged variant only when the identifier is directly followed by an
// opening delimiter; otherwise the identifier is a bare string value.
func (p *parser) parseIdentValue() (*Value, error) {
	ident := p.ts.Advance()
	if err := p.ts.Err(); err != nil {
		return nil, err
	}

	switch p.ts.Peek().Type {
	case TokenLParen:
		inner, err := p.parseSequence(TokenRParen)
		if err != nil {
			return nil, err
		}
		return at(Tagged(ident.Text, inner), ident), nil

	case TokenLBrace:
		inner, err := p.parseMapping()
		if err != nil {
			return nil, err
		}
		return at(Tagged(ident.Text, inner), ident), nil

	default:
		return at(String(ident.Text), ident), nil
	}
}

// parseSequence parses a bracketed or parenthesized element list.
// Elements are comma-separated; a trailing comma is accepted.
func (p *parser) parseSequence(close TokenType) (*Value, error) {
	open := p.ts.Advance() // consume [ or (

	var elems []*Value
	for {
		if err := p.ts.Err(); err != nil {
			return nil, err
		}
		tok := p.ts.Peek()

		if tok.Type == close {
			p.ts.Advance()
			return at(Sequence(elems...), open), nil
		}
		if tok.Type == TokenEOF {
			return nil, &ParseError{Kind: ParseUnexpectedEOF, Offset: tok.Pos}
		}

		elem, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)

		if err := p.separator(close); err != nil {
			return nil, err
		}
	}
}

// parseMapping parses {key: value, ...}. Keys may be any value, and
// pair order (including duplicate keys) is preserved verbatim.
func (p *parser) parseMapping() (*Value, error) {
	open := p.ts.Advance() // consume {

	var pairs []Pair
	for {
		if err := p.ts.Err(); err != nil {
			return nil, err
		}
		tok := p.ts.Peek()

		if tok.Type == TokenRBrace {
			p.ts.Advance()
			return at(Mapping(pairs...), open), nil
		}
		if tok.Type == TokenEOF {
			return nil, &ParseError{Kind: ParseUnexpectedEOF, Offset: tok.Pos}
		}

		key, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		if err := p.expect(TokenColon); err != nil {
			return nil, err
		}

		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Key: key, Value: val})

		if err := p.separator(TokenRBrace); err != nil {
			return nil, err
		}
	}
}

// separator consumes the comma after an element, or allows the
// closing delimiter to follow directly.
func (p *parser) separator(close TokenType) error {
	if err := p.ts.Err(); err != nil {
		return err
	}
	tok := p.ts.Peek()
	switch tok.Type {
	case TokenComma:
		p.ts.Advance()
		return nil
	case close:
		return nil
	case TokenEOF:
		return &ParseError{Kind: ParseUnexpectedEOF, Offset: tok.Pos}
	default:
		return &ParseError{Kind: ParseUnexpectedToken, Offset: tok.Pos, Got: tok.Text}
	}
}

func (p *parser) expect(typ TokenType) error {
	if err := p.ts.Err(); err != nil {
		return err
	}
	tok := p.ts.Peek()
	if tok.Type != typ {
		if tok.Type == TokenEOF {
			return &ParseError{Kind: ParseUnexpectedEOF, Offset: tok.Pos}
		}
		return &ParseError{Kind: ParseUnexpectedToken, Offset: tok.Pos, Got: tok.Text}
	}
	p.ts.Advance()
	return nil
}

// at stamps a value with its source offset.
func at(v *Value, tok Token) *Value {
	v.pos = tok.Pos
	return v
}
