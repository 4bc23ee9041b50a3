package design

import (
	"errors"

	derrors "git.home.luguber.info/inful/designpreview/internal/design/errors"
	ferrors "git.home.luguber.info/inful/designpreview/internal/foundation/errors"
)

// Classify maps discovery and manifest errors onto classified errors for the
// CLI and HTTP adapters. Errors that are already classified, or unknown, are
// returned as-is.
func Classify(err error, root string) error {
	if err == nil {
		return nil
	}
	if _, ok := ferrors.AsClassified(err); ok {
		return err
	}
	var b *ferrors.ErrorBuilder
	switch {
	case errors.Is(err, derrors.ErrRootNotFound):
		b = ferrors.WrapError(err, ferrors.CategoryNotFound, "scan root not found").UserAction()
	case errors.Is(err, derrors.ErrPathResolution):
		b = ferrors.WrapError(err, ferrors.CategoryDiscovery, "cannot resolve design document path").Fatal()
	case errors.Is(err, derrors.ErrTreeWalkFailed):
		b = ferrors.WrapError(err, ferrors.CategoryFileSystem, "design tree walk failed").WithRetry(ferrors.RetryBackoff)
	case errors.Is(err, derrors.ErrInvalidManifest):
		b = ferrors.WrapError(err, ferrors.CategoryValidation, "invalid manifest").Fatal()
	default:
		return err
	}
	return b.WithContext("root", root).Build()
}
