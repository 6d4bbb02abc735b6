// Package logger provides structured logging for partsearch using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped child loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.WithComponent("store")
//	log.Info("part created", logger.Fields("id", id))
package logger
