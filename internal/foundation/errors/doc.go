// Package errors provides foundational, type-safe error primitives used across designpreview.
//
// Core packages return sentinel-wrapped errors; the CLI and the preview server
// classify them into ClassifiedError values and present them through the CLI
// and HTTP adapters.
//
// Example usage:
//
//	err := errors.WrapError(walkErr, errors.CategoryFileSystem, "design tree walk failed").
//		WithContext("root", root).
//		Build()
package errors
