// Package serializer provides document serialization for the storage backends.
// It defines a common interface and multiple implementations for turning a
// doc.Document into bytes (and back) before it is written to a file or a SQLite row.
//
// Key Components:
//
//   - IDocSerializer: Core interface that all serializer implementations must satisfy.
//
//   - yamlSerializerImpl: The default. Human-readable, which keeps catalog files
//     reviewable with any text editor.
//
//   - jsonSerializerImpl: JSON encoding, useful for interoperability with other tools.
//
//   - cborSerializerImpl: CBOR with Core Deterministic Encoding. The most compact
//     format and the fastest to decode; identical documents produce identical bytes.
//
// Empty documents serialize to an empty byte array and an empty byte array
// deserializes to an empty document, so a missing file and an empty document
// are indistinguishable to callers.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	s, err := serializer.ByName("cbor")
//	data, err := s.Serialize(document)
//	// ... write data ...
//	restored, err := s.Deserialize(data)
package serializer
