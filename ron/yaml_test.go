package ron

import (
	"strings"
	"testing"
)

func TestFromYAML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string // canonical RON
	}{
		{"scalars", "[null, true, 1.5, hi]", `[null, true, 1.5, "hi"]`},
		{"mapping order kept", "z: 1\na: 2\n", `{"z": 1, "a": 2}`},
		{"nested", "o:\n  xs:\n    - 1\n    - 2\n", `{"o": {"xs": [1, 2]}}`},
		{"quoted string number", `x: "42"`, `{"x": "42"}`},
		{"empty document", "", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := FromYAML([]byte(tt.input))
			if err != nil {
				t.Fatalf("FromYAML failed: %v", err)
			}
			if got := Emit(v); got != tt.expected {
				t.Errorf("Emit = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFromYAML_Anchors(t *testing.T) {
	v, err := FromYAML([]byte("base: &b [1, 2]\ncopy: *b\n"))
	if err != nil {
		t.Fatalf("FromYAML failed: %v", err)
	}
	if !Equal(v.Get("base"), v.Get("copy")) {
		t.Error("alias not resolved to anchored value")
	}
}

func TestToYAML(t *testing.T) {
	v := mustParse(t, `{b: 2, a: [1, true, null], s: "x"}`)

	out, err := ToYAML(v)
	if err != nil {
		t.Fatalf("ToYAML failed: %v", err)
	}

	text := string(out)
	// Mapping order must survive.
	if strings.Index(text, "b:") > strings.Index(text, "a:") {
		t.Errorf("order not preserved:\n%s", text)
	}

	back, err := FromYAML(out)
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	if !Equal(v, back) {
		t.Errorf("round trip changed value:\n%s", text)
	}
}

func TestToYAML_Tagged(t *testing.T) {
	out, err := ToYAML(mustParse(t, "Point(1, 2)"))
	if err != nil {
		t.Fatalf("ToYAML failed: %v", err)
	}

	back, err := FromYAML(out)
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}

	// Tagged flattens to the {_tag, _value} convention.
	if tag := back.Get("_tag"); tag == nil {
		t.Fatalf("no _tag in:\n%s", out)
	} else if s, _ := tag.AsString(); s != "Point" {
		t.Errorf("_tag = %q", s)
	}
	if !Equal(back.Get("_value"), Sequence(Int(1), Int(2))) {
		t.Errorf("_value mismatch in:\n%s", out)
	}
}
