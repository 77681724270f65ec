package fstore

import (
	"fmt"
	"github.com/ValentinKolb/dFarm/lib/serializer"
	"os"
	"strings"
)

// Compression selects how cell files are compressed on disk
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// ParseCompression converts a configuration value into a Compression ("" means none).
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(strings.ToLower(s)); c {
	case "", CompressionNone:
		return CompressionNone, nil
	case CompressionZstd, CompressionLZ4:
		return c, nil
	default:
		return "", fmt.Errorf("invalid compression %q. must be one of none, zstd, lz4", s)
	}
}

// Options configures the file store
type Options struct {
	Serializer  serializer.IDocSerializer // Encoding of document cells (nil = yaml)
	Compression Compression               // Compression of all cell files ("" = none)
	DirMode     os.FileMode               // Permissions of created directories (0 = 0755)
}

// DefaultOptions returns the default file store options
func DefaultOptions() *Options {
	return &Options{
		Serializer:  serializer.NewYAMLSerializer(),
		Compression: CompressionNone,
		DirMode:     0o755,
	}
}

// withDefaults fills unset fields with their defaults
func (o *Options) withDefaults() *Options {
	def := DefaultOptions()
	if o == nil {
		return def
	}
	out := *o
	if out.Serializer == nil {
		out.Serializer = def.Serializer
	}
	if out.Compression == "" {
		out.Compression = def.Compression
	}
	if out.DirMode == 0 {
		out.DirMode = def.DirMode
	}
	return &out
}
