package ron

import (
	"errors"
	"math"
	"testing"
)

func TestRun_Reformats(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"scalar", "  42  ", "42"},
		{"minimal digits", "1.50", "1.5"},
		{"string re-escaped", `"aAb"`, `"aAb"`},
		{"bare string quoted", "hello", `"hello"`},
		{"sequence normalized", "[ 1 ,2,  3 ]", "[1, 2, 3]"},
		{"mapping normalized", "{a:1,b:2}", `{"a": 1, "b": 2}`},
		{"tagged tuple", "Point(1, 2)", "Point(1, 2)"},
		{"tagged struct", "Point{x:1,y:2}", `Point{"x": 1, "y": 2}`},
		{"comments dropped", "[1, // one\n 2]", "[1, 2]"},
		{"trailing comma dropped", "[1, 2,]", "[1, 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run(tt.input)
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Run = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRun_OverflowingExponent(t *testing.T) {
	// Literals beyond float64 range decode to an infinity but keep
	// their lexeme, so the canonical form is still a number literal.
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"positive overflow", "1e999", "1e999"},
		{"negative overflow", "-1e999", "-1e999"},
		{"nested", "[1e309, 2]", "[1e309, 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run(tt.input)
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Run = %q, want %q", got, tt.expected)
			}

			again, err := Run(got)
			if err != nil {
				t.Fatalf("Run on own output failed: %v", err)
			}
			if again != got {
				t.Errorf("not idempotent: %q then %q", got, again)
			}
		})
	}

	v := mustParse(t, "1e999")
	if v.Kind() != KindNumber || v.IsInt() {
		t.Fatalf("parsed kind = %s, IsInt = %v", v.Kind(), v.IsInt())
	}
	if f, err := v.AsFloat(); err != nil || !math.IsInf(f, 1) {
		t.Errorf("decoded form = %v, %v; want +Inf", f, err)
	}
	if back := mustParse(t, Emit(v)); !Equal(v, back) {
		t.Error("canonical form changed value")
	}
}

// Inputs covering every variant and edge worth round-tripping.
var roundTripCorpus = []string{
	"null",
	"true",
	"false",
	"0",
	"-42",
	"1.50",
	"6.02e23",
	"-1e-9",
	`""`,
	`"hello"`,
	`"esc \" \\ \n \t é"`,
	"bare",
	"[]",
	"[1]",
	"[null, true, false, 1, \"s\"]",
	"[[1, [2, [3]]], []]",
	"{}",
	`{a: 1, b: 2}`,
	`{b: 2, a: 1, b: 3}`,
	`{[1]: "seq", 2: "num", null: "null"}`,
	"1e999",
	"-1e999",
	"Point(1, 2)",
	"None()",
	"Point{x: 1.5, y: -2}",
	"Line(Point(0, 0), Point(3, 4))",
	`{outer: Shape{kind: "circle", r: 2.0}, list: [1, 2, 3, 4, 5, 6]}`,
}

func TestRun_RoundTrip(t *testing.T) {
	// encode(parse(s)) must parse back to a structurally equal tree.
	for _, input := range roundTripCorpus {
		t.Run(input, func(t *testing.T) {
			v1 := mustParse(t, input)
			out := Emit(v1)

			v2, err := Parse(out)
			if err != nil {
				t.Fatalf("re-parse of %q failed: %v", out, err)
			}
			if !Equal(v1, v2) {
				t.Errorf("round trip changed value: %q -> %q", input, out)
			}
		})
	}
}

func TestRun_Idempotent(t *testing.T) {
	// encode(parse(encode(v))) == encode(v)
	for _, input := range roundTripCorpus {
		t.Run(input, func(t *testing.T) {
			once, err := Run(input)
			if err != nil {
				t.Fatalf("first Run failed: %v", err)
			}
			twice, err := Run(once)
			if err != nil {
				t.Fatalf("second Run failed on %q: %v", once, err)
			}
			if once != twice {
				t.Errorf("not idempotent: %q -> %q", once, twice)
			}
		})
	}
}

func TestRun_PreservesMappingOrder(t *testing.T) {
	out, err := Run(`{a: 1, b: 2}`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out != `{"a": 1, "b": 2}` {
		t.Errorf("order not preserved: %q", out)
	}

	out, err = Run(`{b: 2, a: 1}`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out != `{"b": 2, "a": 1}` {
		t.Errorf("order not preserved: %q", out)
	}
}

func TestRun_ErrorPositioning(t *testing.T) {
	// The unterminated string opens at byte offset 10 exactly.
	input := `[1, 22, 3,"x`

	out, err := Run(input)
	if err == nil {
		t.Fatal("expected error")
	}
	if out != "" {
		t.Errorf("partial output on failure: %q", out)
	}

	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *LexError, got %T", err)
	}
	if lexErr.Kind != LexUnterminatedString || lexErr.Offset != 10 {
		t.Errorf("got %s at %d, want %s at 10", lexErr.Kind, lexErr.Offset, LexUnterminatedString)
	}

	off, ok := ErrorOffset(err)
	if !ok || off != 10 {
		t.Errorf("ErrorOffset = %d, %v", off, ok)
	}
}

func TestRun_NoStateBetweenCalls(t *testing.T) {
	if _, err := Run("[broken"); err == nil {
		t.Fatal("expected error")
	}

	out, err := Run("[1, 2]")
	if err != nil {
		t.Fatalf("Run after failure: %v", err)
	}
	if out != "[1, 2]" {
		t.Errorf("Run = %q", out)
	}
}

func TestRunWithOptions_Wrapping(t *testing.T) {
	opts := Options{Emit: EmitOptions{Indent: "  ", WrapThreshold: 2}}

	out, err := RunWithOptions("[1, 2, 3]", opts)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out != "[\n  1,\n  2,\n  3\n]" {
		t.Errorf("Run = %q", out)
	}
}

func TestErrorOffset_OtherErrors(t *testing.T) {
	if _, ok := ErrorOffset(errors.New("unrelated")); ok {
		t.Error("ErrorOffset matched an unrelated error")
	}
}

func BenchmarkRun(b *testing.B) {
	input := `{
        match: Match{home: Team("ARS"), away: Team("LIV")},
        odds: [2.10, 3.40, 3.25, 1.95, 2.80],
        meta: {round: 17, neutral: false, note: "derby édition"},
    }`

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Run(input); err != nil {
			b.Fatal(err)
		}
	}
}
