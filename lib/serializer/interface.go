package serializer

import (
	"fmt"
	"github.com/ValentinKolb/dFarm/lib/doc"
	"strings"
)

// IDocSerializer is the interface for all document serializers.
// Serializers turn a doc.Document into the bytes a storage backend persists and back.
type IDocSerializer interface {
	// Serialize serializes a Document into a byte array.
	// An empty document serializes to an empty byte array.
	Serialize(d *doc.Document) ([]byte, error)
	// Deserialize deserializes a byte array into a Document.
	// An empty byte array deserializes to an empty document.
	Deserialize(b []byte) (*doc.Document, error)
	// Name returns the configuration name of the serializer (yaml, json, cbor).
	Name() string
}

// ByName returns the serializer registered under the given name.
// The empty name selects the default (yaml).
func ByName(name string) (IDocSerializer, error) {
	switch strings.ToLower(name) {
	case "", "yaml", "yml":
		return NewYAMLSerializer(), nil
	case "json":
		return NewJSONSerializer(), nil
	case "cbor":
		return NewCBORSerializer(), nil
	default:
		return nil, fmt.Errorf("invalid serializer %s (expected one of: yaml, json, cbor)", name)
	}
}
