package ron

import "testing"

func TestFromJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string // canonical RON
	}{
		{"null", `null`, "null"},
		{"bool", `true`, "true"},
		{"int", `42`, "42"},
		{"float", `1.50`, "1.5"},
		{"string", `"hi"`, `"hi"`},
		{"array", `[1,2,3]`, "[1, 2, 3]"},
		{"object", `{"a":1,"b":[true,null]}`, `{"a": 1, "b": [true, null]}`},
		{"order kept", `{"z":1,"a":2}`, `{"z": 1, "a": 2}`},
		{"nested", `{"o":{"i":[{"x":0}]}}`, `{"o": {"i": [{"x": 0}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := FromJSON([]byte(tt.input))
			if err != nil {
				t.Fatalf("FromJSON failed: %v", err)
			}
			if got := Emit(v); got != tt.expected {
				t.Errorf("Emit = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFromJSON_Errors(t *testing.T) {
	for _, input := range []string{``, `{`, `[1,]`, `1 2`, `nope`} {
		if _, err := FromJSON([]byte(input)); err == nil {
			t.Errorf("FromJSON(%q) succeeded", input)
		}
	}
}

func TestToJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string // RON
		expected string // JSON
	}{
		{"scalars", `[null, true, 1.50, "x"]`, `[null,true,1.5,"x"]`},
		{"mapping order", `{b: 2, a: 1}`, `{"b":2,"a":1}`},
		{"duplicate keys kept", `{a: 1, a: 2}`, `{"a":1,"a":2}`},
		{"non-string key flattened", `{[1, 2]: "v"}`, `{"[1, 2]":"v"}`},
		{"tagged tuple", `Point(1, 2)`, `{"_tag":"Point","_value":[1,2]}`},
		{
			"tagged struct",
			`Point{x: 1}`,
			`{"_tag":"Point","_value":{"x":1}}`,
		},
		{"string escaping", `"a\nb"`, `"a\nb"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ToJSON(mustParse(t, tt.input))
			if err != nil {
				t.Fatalf("ToJSON failed: %v", err)
			}
			if string(out) != tt.expected {
				t.Errorf("ToJSON = %s, want %s", out, tt.expected)
			}
		})
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	inputs := []string{
		`{"a":1,"b":[true,null],"c":"s"}`,
		`[[],{},[{"x":1.5}]]`,
		`"lonely"`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			v1, err := FromJSON([]byte(input))
			if err != nil {
				t.Fatalf("FromJSON failed: %v", err)
			}
			out, err := ToJSON(v1)
			if err != nil {
				t.Fatalf("ToJSON failed: %v", err)
			}
			v2, err := FromJSON(out)
			if err != nil {
				t.Fatalf("re-import failed: %v", err)
			}
			if !Equal(v1, v2) {
				t.Errorf("round trip changed value: %s -> %s", input, out)
			}
		})
	}
}
