// Package errors provides the structured error type shared by the resolver
// packages. Every failure carries a machine-readable code so callers can
// branch with errors.Is against the sentinels exported by package di.
package errors
