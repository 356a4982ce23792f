// Package logger provides structured logging for the resolver packages
// using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields. The di package logs its
// recoverable conditions (argument-count mismatches, duplicate identifiers,
// replaced singletons) as warnings through the "di" component logger.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("di")
//	log.Warn("duplicated identifier", logger.Fields("key", "log"))
package logger
