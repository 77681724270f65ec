package serializer

import (
	"github.com/ValentinKolb/dFarm/lib/doc"
	"testing"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() IDocSerializer{
	"YAML": NewYAMLSerializer,
	"JSON": NewJSONSerializer,
	"CBOR": NewCBORSerializer,
}

// testDocuments creates a set of test documents with different shapes
func testDocuments() []*doc.Document {
	catalog := doc.NewWithRoot("catalog")
	for _, id := range []string{"1", "2", "3"} {
		comb := catalog.Root.AddChild("comb")
		comb.SetAttr("id", id)
		comb.SetAttr("owner", "user-"+id)
	}

	nested := doc.NewWithRoot("root")
	level := nested.Root
	for i := 0; i < 10; i++ {
		level = level.AddChild("level")
		level.Text = "text with 'quotes' and \"double quotes\""
	}

	return []*doc.Document{
		// Root only
		doc.NewWithRoot("empty-root"),

		// Catalog like document
		catalog,

		// Deeply nested document with text
		nested,
	}
}

// TestSerializerRoundTrip tests that documents can be serialized and deserialized correctly
func TestSerializerRoundTrip(t *testing.T) {
	documents := testDocuments()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for i, d := range documents {
				// Serialize
				data, err := serializer.Serialize(d)
				if err != nil {
					t.Errorf("Failed to serialize document %d: %v", i, err)
					continue
				}

				// Deserialize
				result, err := serializer.Deserialize(data)
				if err != nil {
					t.Errorf("Failed to deserialize document %d: %v", i, err)
					continue
				}

				// Compare
				if !d.Equal(result) {
					t.Errorf("Document %d doesn't match after round trip:\nOriginal: %s\nResult: %s",
						i, d, result)
				}
			}
		})
	}
}

// TestEmptyDocument tests that empty documents and empty input are handled symmetrically
func TestEmptyDocument(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			data, err := serializer.Serialize(doc.New())
			if err != nil {
				t.Fatalf("Failed to serialize empty document: %v", err)
			}
			if len(data) != 0 {
				t.Errorf("Expected empty output for empty document, got %d bytes", len(data))
			}

			result, err := serializer.Deserialize(nil)
			if err != nil {
				t.Fatalf("Failed to deserialize empty input: %v", err)
			}
			if !result.IsEmpty() {
				t.Errorf("Expected empty document, got %s", result)
			}
		})
	}
}

// TestInvalidInput tests that garbage input results in an error
func TestInvalidInput(t *testing.T) {
	garbage := map[string][]byte{
		"YAML": []byte("root: [unclosed"),
		"JSON": []byte("{\"root\":"),
		"CBOR": {0xff, 0x00, 0x13},
	}

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			if _, err := factory().Deserialize(garbage[name]); err == nil {
				t.Errorf("Expected an error for invalid %s input", name)
			}
		})
	}
}

// TestByName tests the serializer lookup
func TestByName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		wantErr  bool
	}{
		{name: "", expected: "yaml"},
		{name: "YAML", expected: "yaml"},
		{name: "json", expected: "json"},
		{name: "cbor", expected: "cbor"},
		{name: "gob", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ByName(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ByName(%q) expected error", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("ByName(%q) unexpected error: %v", tt.name, err)
			}
			if s.Name() != tt.expected {
				t.Errorf("ByName(%q) = %s, want %s", tt.name, s.Name(), tt.expected)
			}
		})
	}
}
