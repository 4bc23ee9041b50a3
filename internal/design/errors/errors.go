package errors

// Package errors provides sentinel errors for design document discovery and
// manifest construction. Callers match them with errors.Is.

import "errors"

var (
	// ErrPathResolution indicates a discovered file could not be expressed relative to the scan root,
	// even after resolving it against the working directory.
	ErrPathResolution = errors.New("path resolution failed")

	// ErrTreeWalkFailed indicates filesystem traversal of the scan root failed.
	ErrTreeWalkFailed = errors.New("design tree walk failed")

	// ErrRootNotFound indicates the scan root does not exist or is not a directory.
	ErrRootNotFound = errors.New("scan root not found")

	// ErrInvalidManifest indicates a manifest value failed construction-time validation.
	ErrInvalidManifest = errors.New("invalid manifest")
)
