// Package fstore provides a file based implementation of the store.IStore interface.
//
// Disk Layout:
//
//	{root}/{hive}/{comb}/{cell}   one file per cell
//	{root}/{hive}/_catalog        the catalog document of a hive
//
// Binary cells are stored as is, document cells are encoded with the configured
// serializer (yaml by default). Optionally every file is compressed with zstd or lz4.
//
// Root Directory:
//
//	The root is created lazily on first use, exactly once. An atomic flag answers the common
//	case, a mutex serializes the creation itself. If the creation fails (permissions, I/O) the
//	error is kept as a ConfigError and returned by every later call; the store is unusable
//	until the problem is fixed and a new store is created.
//
// Writes:
//
//	Every update writes a temporary file in the target directory and renames it over the cell
//	file, so readers never observe partially written content. Updating with empty content
//	removes the file. Temporary files are hidden from Keys.
//
// File System:
//
//	All access goes through an afero.Fs. NewFileStore uses the OS file system, tests use
//	afero.NewMemMapFs (or a read only wrapper to provoke root creation failures).
//
// Thread-safety:
//
//	All methods are safe for concurrent use. Concurrent writers of different cells never contend,
//	concurrent writers of the same cell are ordered by the file system (last rename wins).
package fstore
