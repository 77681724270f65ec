// Package cmd implements the command-line interface of dFarm. The farm operated on is
// described by persistent flags (or DFARM_* environment variables, .env files are loaded)
// shared by all commands, e.g.
//
//	farm --backend sqlite --root ./farm.db --cache simple comb create 42
//	farm cell edit 42 profile add:user attr:name=alice
//
// The package is organized into several subpackages:
//
//   - comb: Commands for the catalog of a hive (create, add, delete, list, attr, show)
//   - cell: Commands for cell content and documents (get, put, doc, edit, ls, ...) and the perf tool
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See farm -help for a list of all commands.
package cmd
