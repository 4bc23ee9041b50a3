package design

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	derrors "git.home.luguber.info/inful/designpreview/internal/design/errors"
)

// GeneratedAtLayout is ISO-8601 with a numeric UTC offset and second precision.
// UTC renders as +00:00, never Z.
const GeneratedAtLayout = "2006-01-02T15:04:05-07:00"

const (
	// RootGroupKey is the group key used for files directly under the scan root.
	RootGroupKey = "root"
	// AllVersionKey is the key of the single version bucket.
	AllVersionKey = "all"
	// AllVersionLabel is the label of the single version bucket.
	AllVersionLabel = "All"
)

// Item is one discoverable HTML document.
type Item struct {
	Title string `json:"title"`
	Path  string `json:"path"` // root-relative, POSIX, prefixed "./"
}

// Group collects the items of one source directory.
type Group struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Items []Item `json:"items"`
}

// Version is a top-level grouping axis. Discovery always produces exactly one.
type Version struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Groups []Group `json:"groups"`
}

// Manifest describes every design document found under RootPath.
type Manifest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	GeneratedAt string    `json:"generatedAt"`
	RootPath    string    `json:"rootPath"`
	Versions    []Version `json:"versions"`
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", derrors.ErrInvalidManifest, fmt.Sprintf(format, args...))
}

// NewItem validates and constructs an Item.
func NewItem(title, path string) (Item, error) {
	if title == "" {
		return Item{}, invalid("item %q has an empty title", path)
	}
	if !strings.HasPrefix(path, "./") {
		return Item{}, invalid("item path %q must start with ./", path)
	}
	return Item{Title: title, Path: path}, nil
}

// NewGroup validates and constructs a Group. A nil items slice becomes empty.
func NewGroup(key, label string, items []Item) (Group, error) {
	if key == "" {
		return Group{}, invalid("group key is empty")
	}
	if label == "" {
		return Group{}, invalid("group %q has an empty label", key)
	}
	if items == nil {
		items = []Item{}
	}
	return Group{Key: key, Label: label, Items: items}, nil
}

// NewVersion validates and constructs a Version. A nil groups slice becomes empty.
func NewVersion(key, label string, groups []Group) (Version, error) {
	if key == "" {
		return Version{}, invalid("version key is empty")
	}
	if label == "" {
		return Version{}, invalid("version %q has an empty label", key)
	}
	if groups == nil {
		groups = []Group{}
	}
	return Version{Key: key, Label: label, Groups: groups}, nil
}

// NewManifest validates and constructs a Manifest.
func NewManifest(title, description, generatedAt, rootPath string, versions []Version) (*Manifest, error) {
	if _, err := time.Parse(GeneratedAtLayout, generatedAt); err != nil {
		return nil, invalid("generatedAt %q is not an ISO-8601 timestamp with offset: %v", generatedAt, err)
	}
	if rootPath == "" {
		return nil, invalid("rootPath is empty")
	}
	if versions == nil {
		versions = []Version{}
	}
	return &Manifest{
		Title:       title,
		Description: description,
		GeneratedAt: generatedAt,
		RootPath:    rootPath,
		Versions:    versions,
	}, nil
}

// Validate re-checks every nested value and the path uniqueness invariant.
// It is used on manifests that did not come from the constructors, e.g. parsed JSON.
func (m *Manifest) Validate() error {
	if _, err := NewManifest(m.Title, m.Description, m.GeneratedAt, m.RootPath, m.Versions); err != nil {
		return err
	}
	seen := make(map[string]struct{})
	for _, v := range m.Versions {
		if _, err := NewVersion(v.Key, v.Label, v.Groups); err != nil {
			return err
		}
		for _, g := range v.Groups {
			if _, err := NewGroup(g.Key, g.Label, g.Items); err != nil {
				return err
			}
			for _, it := range g.Items {
				if _, err := NewItem(it.Title, it.Path); err != nil {
					return err
				}
				if _, dup := seen[it.Path]; dup {
					return invalid("duplicate item path %q", it.Path)
				}
				seen[it.Path] = struct{}{}
			}
		}
	}
	return nil
}

// ItemCount returns the number of items across all versions and groups.
func (m *Manifest) ItemCount() int {
	n := 0
	for _, v := range m.Versions {
		for _, g := range v.Groups {
			n += len(g.Items)
		}
	}
	return n
}

// ToJSON serializes the manifest to indented JSON.
func (m *Manifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes and validates a manifest.
func FromJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.Versions == nil {
		m.Versions = []Version{}
	}
	return &m, nil
}
