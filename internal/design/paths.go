package design

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/designpreview/internal/design/errors"
)

// RelPath renders target relative to base as a "./"-prefixed POSIX path.
//
// When target is not lexically under base it is resolved against the working
// directory and tried once more. The fallback is purely lexical; only the
// working directory name is consulted.
func RelPath(base, target string) (string, error) {
	rel, ok := lexicalRel(base, target)
	if !ok {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", derrors.ErrPathResolution, target, err)
		}
		resolved := target
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(wd, resolved)
		}
		rel, ok = lexicalRel(base, filepath.Clean(resolved))
		if !ok {
			return "", fmt.Errorf("%w: %s is not under %s", derrors.ErrPathResolution, target, base)
		}
	}
	return "./" + filepath.ToSlash(rel), nil
}

// lexicalRel is filepath.Rel restricted to targets at or below base.
func lexicalRel(base, target string) (string, bool) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// relDir returns the POSIX parent directory of a RelPath result, "." for the root.
func relDir(relPath string) string {
	return path.Dir(strings.TrimPrefix(relPath, "./"))
}
