package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Farm configuration struct
// --------------------------------------------------------------------------

type BackendType string

const (
	BackendFile   BackendType = "file"
	BackendRam    BackendType = "ram"
	BackendSQLite BackendType = "sqlite"
)

type CachePolicy string

const (
	CacheNone   CachePolicy = "none"
	CacheSimple CachePolicy = "simple"
)

// FarmConfig holds all parameters needed to build a farm.
type FarmConfig struct {
	// Storage backend and its location (directory for file, database file for sqlite)
	Backend BackendType
	Root    string

	// Encoding of document cells (yaml, json, cbor) and compression of files (none, zstd, lz4)
	Codec       string
	Compression string

	// Cache chain: a simple cache, optionally limited to CacheLimit bytes per content
	// and bypassed for keys matching Blacklist
	Cache      CachePolicy
	CacheLimit int64
	Blacklist  []string

	// Whether to synchronize operations per resource key
	Synchronized bool

	// Logging configuration
	LogLevel string
}

// DefaultFarmConfig returns a config for an unsynchronized, uncached file farm in ./farm
func DefaultFarmConfig() FarmConfig {
	return FarmConfig{
		Backend:     BackendFile,
		Root:        "./farm",
		Codec:       "yaml",
		Compression: "none",
		Cache:       CacheNone,
		LogLevel:    "info",
	}
}

// Cached reports whether the config asks for a cache chain
func (c *FarmConfig) Cached() bool {
	return c.Cache != "" && c.Cache != CacheNone
}

// String returns a formatted string representation of the configuration
func (c *FarmConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// Storage
	addSection("Storage")
	addField("Backend", string(c.Backend))
	if c.Backend != BackendRam {
		addField("Root", c.Root)
	}
	addField("Document Codec", c.Codec)
	if c.Backend == BackendFile {
		addField("Compression", c.Compression)
	}

	// Cache chain
	addSection("Cache")
	addField("Policy", string(c.Cache))
	if c.Cached() {
		limit := "unlimited"
		if c.CacheLimit > 0 {
			limit = strconv.FormatInt(c.CacheLimit, 10) + " bytes"
		}
		addField("Limit", limit)
		if len(c.Blacklist) > 0 {
			addField("Blacklist", strings.Join(c.Blacklist, ", "))
		}
	}

	// Concurrency
	addSection("Concurrency")
	addField("Synchronized", fmt.Sprintf("%t", c.Synchronized))

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}
