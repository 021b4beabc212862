package ron

import "errors"

// Options configures a Run invocation.
type Options struct {
	Emit EmitOptions
}

// DefaultOptions returns the default engine configuration.
func DefaultOptions() Options {
	return Options{Emit: DefaultEmitOptions()}
}

// Run parses the input text and re-encodes it canonically. It is a
// pure function of its input: no state survives between calls. On a
// lexer or parser failure it returns the structured error (kind plus
// byte offset) and no partial output.
func Run(input string) (string, error) {
	return RunWithOptions(input, DefaultOptions())
}

// RunWithOptions is Run with explicit engine configuration.
func RunWithOptions(input string, opts Options) (string, error) {
	v, err := Parse(input)
	if err != nil {
		return "", err
	}
	return EmitWithOptions(v, opts.Emit), nil
}

// ErrorOffset extracts the byte offset from a lexer or parser error.
// It reports false for any other error.
func ErrorOffset(err error) (int, bool) {
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return lexErr.Offset, true
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Offset, true
	}
	return 0, false
}
