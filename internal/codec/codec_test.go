package codec

import (
	"errors"
	"reflect"
	"testing"
)

func TestResolve_KnownFormats(t *testing.T) {
	for _, name := range Formats() {
		c, err := Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q) returned error: %v", name, err)
		}
		if c.Name() != name {
			t.Errorf("Resolve(%q).Name() = %q", name, c.Name())
		}
	}
}

func TestResolve_UnknownFormat(t *testing.T) {
	for _, name := range []string{"", "ron", "xml", "JSON"} {
		_, err := Resolve(name)
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("Resolve(%q) = %v, want ErrUnknownFormat", name, err)
		}
	}
}

// TestRoundTrip verifies the marshal/unmarshal round-trip law for every
// supported format on a JSON-shaped value.
func TestRoundTrip(t *testing.T) {
	value := map[string]any{
		"ping":   float64(1),
		"name":   "wire-cli",
		"nested": map[string]any{"ok": true},
	}

	for _, name := range Formats() {
		t.Run(name, func(t *testing.T) {
			c, err := Resolve(name)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}

			data, err := c.Marshal(value)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}

			var decoded map[string]any
			if err := c.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}

			// YAML decodes whole numbers as int rather than float64, so
			// only the numeric value is compared for that format.
			if name == "yaml" {
				if got, want := decoded["ping"], any(1); !reflect.DeepEqual(got, want) {
					t.Errorf("ping = %#v, want %#v", got, want)
				}
				return
			}

			if !reflect.DeepEqual(decoded, value) {
				t.Errorf("round-trip mismatch: got %#v, want %#v", decoded, value)
			}
		})
	}
}

func TestJSONC_AcceptsComments(t *testing.T) {
	c, err := Resolve("jsonc")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	input := []byte(`{
		// operator note
		"ping": 1,
	}`)

	var decoded map[string]any
	if err := c.Unmarshal(input, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["ping"] != float64(1) {
		t.Errorf("ping = %#v, want 1", decoded["ping"])
	}
}

func TestJSON_RejectsMalformed(t *testing.T) {
	c, _ := Resolve("json")
	var decoded any
	if err := c.Unmarshal([]byte("not-json"), &decoded); err == nil {
		t.Error("expected error for malformed input")
	}
}
