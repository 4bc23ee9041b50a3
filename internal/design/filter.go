package design

import (
	"path/filepath"
	"strings"
)

// ReservedAssetsDir holds the previewer's own assets. It is only excluded as
// the first segment below the scan root; nested directories of the same name are kept.
const ReservedAssetsDir = "design_previewer"

// Exclusion reasons reported to the metrics recorder.
const (
	ExcludedIndex       = "index"
	ExcludedHidden      = "hidden"
	ExcludedReserved    = "reserved"
	ExcludedOutsideRoot = "outside_root"
)

// ShouldIncludeHTML reports whether the HTML file at path belongs in the manifest.
func ShouldIncludeHTML(root, path string) bool {
	return exclusionReason(root, path) == ""
}

// exclusionReason returns why path is excluded, or "" when it is included.
func exclusionReason(root, path string) string {
	if strings.EqualFold(filepath.Base(path), "index.html") {
		return ExcludedIndex
	}
	rel, ok := lexicalRel(root, path)
	if !ok {
		return ExcludedOutsideRoot
	}
	segments := strings.Split(filepath.ToSlash(rel), "/")
	for _, seg := range segments {
		if strings.HasPrefix(seg, ".") {
			return ExcludedHidden
		}
	}
	if strings.EqualFold(segments[0], ReservedAssetsDir) {
		return ExcludedReserved
	}
	return ""
}
