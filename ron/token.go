package ron

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// TokenType represents the type of a lexer token.
type TokenType uint8

const (
	TokenEOF TokenType = iota

	// Literals
	TokenNull    // null
	TokenTrue    // true
	TokenFalse   // false
	TokenNumber  // 123, -4.5, 6e7
	TokenString  // "quoted string"
	TokenIdent   // Point, bare_word
	TokenComment // // line comment (only with EmitComments)

	// Structural
	TokenLBrace   // {
	TokenRBrace   // }
	TokenLBracket // [
	TokenRBracket // ]
	TokenLParen   // (
	TokenRParen   // )
	TokenColon    // :
	TokenComma    // ,
)

// String returns the token type name.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenNull:
		return "NULL"
	case TokenTrue:
		return "TRUE"
	case TokenFalse:
		return "FALSE"
	case TokenNumber:
		return "NUMBER"
	case TokenString:
		return "STRING"
	case TokenIdent:
		return "IDENT"
	case TokenComment:
		return "COMMENT"
	case TokenLBrace:
		return "{"
	case TokenRBrace:
		return "}"
	case TokenLBracket:
		return "["
	case TokenRBracket:
		return "]"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenColon:
		return ":"
	case TokenComma:
		return ","
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexer token. Text is the raw source lexeme; for
// string tokens Value holds the decoded contents with escapes resolved.
// Pos and End are byte offsets into the source ([Pos, End)).
type Token struct {
	Type  TokenType
	Text  string
	Value string
	Pos   int
	End   int
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Text == "" {
		return t.Type.String()
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Text)
}

// LexErrorKind classifies lexer errors.
type LexErrorKind uint8

const (
	LexUnterminatedString LexErrorKind = iota
	LexUnexpectedByte
	LexInvalidEscape
)

// String returns the error kind name.
func (k LexErrorKind) String() string {
	switch k {
	case LexUnterminatedString:
		return "unterminated string"
	case LexUnexpectedByte:
		return "unexpected byte"
	case LexInvalidEscape:
		return "invalid escape"
	default:
		return "unknown"
	}
}

// LexError is a lexical error at a byte offset in the source.
type LexError struct {
	Kind   LexErrorKind
	Offset int
	Byte   byte // the offending byte, for UnexpectedByte
}

func (e *LexError) Error() string {
	if e.Kind == LexUnexpectedByte {
		return fmt.Sprintf("ron: unexpected byte %q at offset %d", e.Byte, e.Offset)
	}
	return fmt.Sprintf("ron: %s at offset %d", e.Kind, e.Offset)
}

// Lexer scans RON text left to right, producing tokens on demand.
// The token sequence is finite and not restartable: once Next has
// returned an EOF token or an error, the lexer is exhausted.
type Lexer struct {
	input string
	pos   int

	// EmitComments surfaces // comments as tokens instead of
	// skipping them. Off by default; the parser never sees them.
	EmitComments bool
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Next returns the next token. At end of input it returns a TokenEOF
// token whose Pos is len(input); after that it keeps returning EOF.
func (l *Lexer) Next() (Token, error) {
	for {
		l.skipWhitespace()

		if l.pos >= len(l.input) {
			return Token{Type: TokenEOF, Pos: l.pos, End: l.pos}, nil
		}

		start := l.pos
		ch := l.input[l.pos]

		switch ch {
		case '{':
			l.pos++
			return Token{Type: TokenLBrace, Text: "{", Pos: start, End: l.pos}, nil
		case '}':
			l.pos++
			return Token{Type: TokenRBrace, Text: "}", Pos: start, End: l.pos}, nil
		case '[':
			l.pos++
			return Token{Type: TokenLBracket, Text: "[", Pos: start, End: l.pos}, nil
		case ']':
			l.pos++
			return Token{Type: TokenRBracket, Text: "]", Pos: start, End: l.pos}, nil
		case '(':
			l.pos++
			return Token{Type: TokenLParen, Text: "(", Pos: start, End: l.pos}, nil
		case ')':
			l.pos++
			return Token{Type: TokenRParen, Text: ")", Pos: start, End: l.pos}, nil
		case ':':
			l.pos++
			return Token{Type: TokenColon, Text: ":", Pos: start, End: l.pos}, nil
		case ',':
			l.pos++
			return Token{Type: TokenComma, Text: ",", Pos: start, End: l.pos}, nil
		case '"':
			return l.scanString()
		case '/':
			if l.pos+1 < len(l.input) && l.input[l.pos+1] == '/' {
				tok := l.scanComment()
				if l.EmitComments {
					return tok, nil
				}
				continue
			}
			l.pos++
			return Token{}, &LexError{Kind: LexUnexpectedByte, Offset: start, Byte: ch}
		}

		if ch == '-' || isDigit(ch) {
			return l.scanNumber()
		}

		if isIdentStart(ch) {
			return l.scanIdent(), nil
		}

		l.pos++
		return Token{}, &LexError{Kind: LexUnexpectedByte, Offset: start, Byte: ch}
	}
}

// scanString scans a double-quoted string, decoding escapes.
// The error offset for an unterminated string is the opening quote.
func (l *Lexer) scanString() (Token, error) {
	start := l.pos
	l.pos++ // consume opening "

	var sb strings.Builder
	for {
		if l.pos >= len(l.input) {
			return Token{}, &LexError{Kind: LexUnterminatedString, Offset: start}
		}

		ch := l.input[l.pos]
		if ch == '"' {
			l.pos++
			return Token{
				Type:  TokenString,
				Text:  l.input[start:l.pos],
				Value: sb.String(),
				Pos:   start,
				End:   l.pos,
			}, nil
		}

		if ch == '\\' {
			escStart := l.pos
			l.pos++
			if l.pos >= len(l.input) {
				return Token{}, &LexError{Kind: LexUnterminatedString, Offset: start}
			}
			esc := l.input[l.pos]
			l.pos++
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b':
				sb.WriteByte('\b')
			case 'f':
				sb.WriteByte('\f')
			case '\\':
				sb.WriteByte('\\')
			case '/':
				sb.WriteByte('/')
			case '"':
				sb.WriteByte('"')
			case 'u':
				r, err := l.scanUnicodeEscape(escStart)
				if err != nil {
					return Token{}, err
				}
				sb.WriteRune(r)
			default:
				return Token{}, &LexError{Kind: LexInvalidEscape, Offset: escStart}
			}
		} else {
			sb.WriteByte(ch)
			l.pos++
		}
	}
}

// scanUnicodeEscape reads the 4 hex digits after \u, already consumed.
// Surrogate pairs are combined; a lone surrogate decodes to U+FFFD.
func (l *Lexer) scanUnicodeEscape(escStart int) (rune, error) {
	hi, ok := l.scanHex4()
	if !ok {
		return 0, &LexError{Kind: LexInvalidEscape, Offset: escStart}
	}
	r := rune(hi)
	if utf16.IsSurrogate(r) {
		if l.pos+1 < len(l.input) && l.input[l.pos] == '\\' && l.input[l.pos+1] == 'u' {
			save := l.pos
			l.pos += 2
			lo, ok := l.scanHex4()
			if !ok {
				return 0, &LexError{Kind: LexInvalidEscape, Offset: save}
			}
			if dec := utf16.DecodeRune(r, rune(lo)); dec != utf8.RuneError {
				return dec, nil
			}
			// Second escape was not a low surrogate; leave it
			// for the next iteration as its own escape.
			l.pos = save
		}
		return utf8.RuneError, nil
	}
	return r, nil
}

func (l *Lexer) scanHex4() (uint32, bool) {
	if l.pos+4 > len(l.input) {
		return 0, false
	}
	var v uint32
	for i := 0; i < 4; i++ {
		d, ok := hexDigit(l.input[l.pos+i])
		if !ok {
			return 0, false
		}
		v = v<<4 | uint32(d)
	}
	l.pos += 4
	return v, true
}

// scanNumber scans an optionally signed number with integer, fraction
// and exponent parts, maximal munch. A '.' or exponent marker is only
// consumed when a digit actually follows, so "1." lexes as "1".
func (l *Lexer) scanNumber() (Token, error) {
	start := l.pos

	if l.input[l.pos] == '-' {
		l.pos++
	}
	if l.pos >= len(l.input) || !isDigit(l.input[l.pos]) {
		return Token{}, &LexError{Kind: LexUnexpectedByte, Offset: start, Byte: '-'}
	}
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}

	// Fraction
	if l.pos+1 < len(l.input) && l.input[l.pos] == '.' && isDigit(l.input[l.pos+1]) {
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}

	// Exponent
	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		p := l.pos + 1
		if p < len(l.input) && (l.input[p] == '+' || l.input[p] == '-') {
			p++
		}
		if p < len(l.input) && isDigit(l.input[p]) {
			l.pos = p
			for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
				l.pos++
			}
		}
	}

	return Token{
		Type: TokenNumber,
		Text: l.input[start:l.pos],
		Pos:  start,
		End:  l.pos,
	}, nil
}

// scanIdent scans an identifier or keyword.
func (l *Lexer) scanIdent() Token {
	start := l.pos
	for l.pos < len(l.input) && isIdentContinue(l.input[l.pos]) {
		l.pos++
	}
	text := l.input[start:l.pos]

	typ := TokenIdent
	switch text {
	case "null":
		typ = TokenNull
	case "true":
		typ = TokenTrue
	case "false":
		typ = TokenFalse
	}

	return Token{Type: typ, Text: text, Pos: start, End: l.pos}
}

// scanComment scans a // comment up to (not including) the newline.
func (l *Lexer) scanComment() Token {
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.pos++
	}
	return Token{
		Type: TokenComment,
		Text: l.input[start:l.pos],
		Pos:  start,
		End:  l.pos,
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		default:
			return
		}
	}
}

// Character classification

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func hexDigit(ch byte) (byte, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', true
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, true
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10, true
	default:
		return 0, false
	}
}

// tokenStream gives the parser one-token lookahead over a Lexer
// without materializing the whole token slice.
type tokenStream struct {
	lex *Lexer
	cur Token
	err error
}

func newTokenStream(lex *Lexer) *tokenStream {
	ts := &tokenStream{lex: lex}
	ts.cur, ts.err = lex.Next()
	return ts
}

// Peek returns the current token without advancing.
func (ts *tokenStream) Peek() Token {
	return ts.cur
}

// Advance moves to the next token and returns the current one.
func (ts *tokenStream) Advance() Token {
	tok := ts.cur
	if ts.err == nil && tok.Type != TokenEOF {
		ts.cur, ts.err = ts.lex.Next()
	}
	return tok
}

// Err returns the first lexer error encountered, if any.
func (ts *tokenStream) Err() error {
	return ts.err
}
