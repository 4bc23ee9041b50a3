package design

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	derrors "git.home.luguber.info/inful/designpreview/internal/design/errors"
	"git.home.luguber.info/inful/designpreview/internal/logfields"
	"git.home.luguber.info/inful/designpreview/internal/metrics"
)

const htmlSuffix = ".html"

// Option configures a Discovery or Builder.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	recorder metrics.Recorder
	now      func() time.Time
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRecorder sets the metrics recorder. Defaults to metrics.NoopRecorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithClock overrides the clock used for GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func applyOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.recorder == nil {
		o.recorder = metrics.NoopRecorder{}
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

// Discovery scans a directory tree for HTML design documents.
// It holds no per-scan state and is safe for concurrent use.
type Discovery struct {
	logger   *slog.Logger
	recorder metrics.Recorder
}

// NewDiscovery creates a discovery instance.
func NewDiscovery(opts ...Option) *Discovery {
	o := applyOptions(opts)
	return &Discovery{logger: o.logger, recorder: o.recorder}
}

// DiscoverVersions scans root with default settings.
func DiscoverVersions(root string) ([]Version, error) {
	return NewDiscovery().DiscoverVersions(root)
}

type discovered struct {
	rel  string // "./"-prefixed POSIX path
	name string
}

// DiscoverVersions walks root, filters and groups the HTML files found, and
// returns a single "all" version. The result is empty when nothing qualifies.
func (d *Discovery) DiscoverVersions(root string) ([]Version, error) {
	paths, err := d.collect(root)
	if err != nil {
		return nil, err
	}

	files := make([]discovered, 0, len(paths))
	for _, p := range paths {
		rel, err := RelPath(root, p)
		if err != nil {
			return nil, err
		}
		files = append(files, discovered{rel: rel, name: filepath.Base(p)})
	}
	slices.SortStableFunc(files, func(a, b discovered) int {
		return strings.Compare(strings.ToLower(a.rel), strings.ToLower(b.rel))
	})

	if len(files) == 0 {
		d.logger.Info("No design documents found", logfields.Root(root))
		return []Version{}, nil
	}

	var dirs []string
	itemsByDir := make(map[string][]Item)
	for _, f := range files {
		dir := relDir(f.rel)
		if _, ok := itemsByDir[dir]; !ok {
			dirs = append(dirs, dir)
		}
		item, err := NewItem(FileTitle(f.name), f.rel)
		if err != nil {
			return nil, err
		}
		itemsByDir[dir] = append(itemsByDir[dir], item)
		d.logger.Debug("Discovered design document", logfields.Path(f.rel), logfields.Group(dir))
	}
	slices.SortStableFunc(dirs, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})

	groups := make([]Group, 0, len(dirs))
	for _, dir := range dirs {
		key := dir
		if dir == "." {
			key = RootGroupKey
		}
		g, err := NewGroup(key, GroupLabel(dir), itemsByDir[dir])
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	v, err := NewVersion(AllVersionKey, AllVersionLabel, groups)
	if err != nil {
		return nil, err
	}
	d.logger.Info("Design documents discovered",
		logfields.Root(root),
		logfields.Count(len(files)),
		slog.Int("groups", len(groups)))
	return []Version{v}, nil
}

// collect returns every qualifying *.html file under root in walk order.
// Hidden directories and the root-level assets directory are pruned.
func (d *Discovery) collect(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", derrors.ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrTreeWalkFailed, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", derrors.ErrRootNotFound, root)
	}

	// WalkDir does not descend into a symlinked root; a trailing separator
	// makes it resolve the link while children still join back to root/...
	walkRoot := root
	if linfo, err := os.Lstat(root); err == nil && linfo.Mode()&fs.ModeSymlink != 0 {
		walkRoot = root + string(filepath.Separator)
	}

	var files []string
	err = filepath.WalkDir(walkRoot, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if p != walkRoot && d.prune(root, p, entry.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(entry.Name(), htmlSuffix) {
			return nil
		}
		if reason := exclusionReason(root, p); reason != "" {
			d.logger.Debug("Skipping design document", logfields.File(p), logfields.Reason(reason))
			d.recorder.IncExcluded(reason)
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrTreeWalkFailed, root, err)
	}
	return files, nil
}

func (d *Discovery) prune(root, dir, name string) bool {
	if strings.HasPrefix(name, ".") {
		d.logger.Debug("Pruning hidden directory", logfields.Path(dir))
		return true
	}
	if !strings.EqualFold(name, ReservedAssetsDir) {
		return false
	}
	rel, ok := lexicalRel(root, dir)
	if ok && !strings.ContainsRune(rel, filepath.Separator) {
		d.logger.Debug("Pruning previewer assets directory", logfields.Path(dir))
		return true
	}
	return false
}
