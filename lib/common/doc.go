// Package common holds the parts shared by the library packages and the command line
// tool: the farm configuration and the logger factory.
//
// Configuration:
//
//	FarmConfig describes a complete farm: backend, document codec, compression, cache chain,
//	synchronization and log level. It is filled from flags, environment variables (prefix
//	DFARM_) and .env files by the cmd package and turned into a farm with farm.Build.
//	String renders it as a table for the startup log.
//
// Logging:
//
//	All packages log through dragonboat's logger facade (logger.GetLogger("farm"), ...).
//	InitLoggers installs a factory rendering through log/slog with a tint handler (colored when
//	stderr is a terminal) and sets the level of all dFarm loggers.
package common
