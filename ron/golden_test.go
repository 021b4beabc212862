package ron

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestGolden ensures Run produces identical output to the golden fixtures.
// The fixtures double as a cross-implementation corpus: any port of the
// engine must reproduce these bytes exactly.
func TestGolden(t *testing.T) {
	casesDir := filepath.Join("testdata", "cases")
	goldenDir := filepath.Join("testdata", "golden")

	entries, err := os.ReadDir(goldenDir)
	if err != nil {
		t.Fatalf("failed to read golden dir: %v", err)
	}

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".want") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".want")
		t.Run(name, func(t *testing.T) {
			input, err := os.ReadFile(filepath.Join(casesDir, name+".ron"))
			if err != nil {
				t.Fatalf("failed to read case: %v", err)
			}
			wantBytes, err := os.ReadFile(filepath.Join(goldenDir, name+".want"))
			if err != nil {
				t.Fatalf("failed to read golden: %v", err)
			}
			expected := strings.TrimSuffix(string(wantBytes), "\n")

			got, err := Run(string(input))
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if got != expected {
				t.Errorf("output mismatch\n  got:      %q\n  expected: %q", got, expected)
			}

			// Canonical output must be a fixed point.
			again, err := Run(got)
			if err != nil {
				t.Fatalf("Run on own output failed: %v", err)
			}
			if again != got {
				t.Errorf("non-deterministic output\n  first:  %q\n  second: %q", got, again)
			}
		})
	}
}

// TestGoldenValuePreservation verifies parsing golden output yields a value
// structurally equal to the one parsed from the original case.
func TestGoldenValuePreservation(t *testing.T) {
	casesDir := filepath.Join("testdata", "cases")

	entries, err := os.ReadDir(casesDir)
	if err != nil {
		t.Fatalf("failed to read cases dir: %v", err)
	}

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".ron") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".ron")
		t.Run(name, func(t *testing.T) {
			input, err := os.ReadFile(filepath.Join(casesDir, name+".ron"))
			if err != nil {
				t.Fatalf("failed to read case: %v", err)
			}

			original, err := Parse(string(input))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			canonical := Emit(original)
			reparsed, err := Parse(canonical)
			if err != nil {
				t.Fatalf("Parse of canonical form failed: %v", err)
			}

			if !Equal(original, reparsed) {
				t.Errorf("canonical form changed value\n  input:     %q\n  canonical: %q", input, canonical)
			}
		})
	}
}
