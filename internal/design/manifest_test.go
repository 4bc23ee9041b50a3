package design

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/designpreview/internal/design/errors"
	ferrors "git.home.luguber.info/inful/designpreview/internal/foundation/errors"
	"git.home.luguber.info/inful/designpreview/internal/metrics"
)

func fixedClock(t *testing.T, offsetHours int) func() time.Time {
	t.Helper()
	zone := time.FixedZone("test", offsetHours*3600)
	at := time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, zone)
	return func() time.Time { return at }
}

func TestBuildManifest(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "report-final.html", "docs/notes.html")

	m, err := NewBuilder(WithClock(fixedClock(t, 2))).Build(root, "Designs", "All mockups")
	require.NoError(t, err)

	assert.Equal(t, "Designs", m.Title)
	assert.Equal(t, "All mockups", m.Description)
	assert.Equal(t, "2026-03-14T09:26:53+02:00", m.GeneratedAt)
	assert.Equal(t, root, m.RootPath)
	require.Len(t, m.Versions, 1)
	assert.Equal(t, 2, m.ItemCount())
}

func TestBuildManifest_UTCOffsetIsNumeric(t *testing.T) {
	m, err := NewBuilder(WithClock(fixedClock(t, 0))).Build(t.TempDir(), "t", "d")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14T09:26:53+00:00", m.GeneratedAt)
}

func TestBuildManifest_DefaultClock(t *testing.T) {
	m, err := BuildManifest(t.TempDir(), "t", "d")
	require.NoError(t, err)
	_, err = time.Parse(GeneratedAtLayout, m.GeneratedAt)
	require.NoError(t, err)
	assert.NotNil(t, m.Versions)
	assert.Empty(t, m.Versions)
}

func TestManifestJSONShape(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "report-final.html")

	m, err := NewBuilder(WithClock(fixedClock(t, -5))).Build(root, "T", "D")
	require.NoError(t, err)
	data, err := m.ToJSON()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "T", raw["title"])
	assert.Equal(t, "D", raw["description"])
	assert.Equal(t, "2026-03-14T09:26:53-05:00", raw["generatedAt"])
	assert.Equal(t, root, raw["rootPath"])

	version := raw["versions"].([]any)[0].(map[string]any)
	assert.Equal(t, "all", version["key"])
	assert.Equal(t, "All", version["label"])
	group := version["groups"].([]any)[0].(map[string]any)
	assert.Equal(t, "root", group["key"])
	item := group["items"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"title": "Report Final", "path": "./report-final.html"}, item)

	parsed, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, m, parsed)
}

func TestManifestJSON_EmptyVersionsIsArray(t *testing.T) {
	m, err := NewBuilder(WithClock(fixedClock(t, 0))).Build(t.TempDir(), "T", "D")
	require.NoError(t, err)
	data, err := m.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"versions": []`)
}

func TestConstructorsValidate(t *testing.T) {
	_, err := NewItem("", "./a.html")
	assert.ErrorIs(t, err, derrors.ErrInvalidManifest)
	_, err = NewItem("A", "a.html")
	assert.ErrorIs(t, err, derrors.ErrInvalidManifest)

	_, err = NewGroup("", "Label", nil)
	assert.ErrorIs(t, err, derrors.ErrInvalidManifest)
	g, err := NewGroup("docs", "Docs", nil)
	require.NoError(t, err)
	assert.NotNil(t, g.Items)

	_, err = NewVersion("all", "", nil)
	assert.ErrorIs(t, err, derrors.ErrInvalidManifest)

	_, err = NewManifest("T", "D", "2026-03-14 09:26:53", "/srv", nil)
	assert.ErrorIs(t, err, derrors.ErrInvalidManifest)
	_, err = NewManifest("T", "D", "2026-03-14T09:26:53Z", "/srv", nil)
	assert.ErrorIs(t, err, derrors.ErrInvalidManifest)
	_, err = NewManifest("T", "D", "2026-03-14T09:26:53+01:00", "", nil)
	assert.ErrorIs(t, err, derrors.ErrInvalidManifest)
}

func TestFromJSON_RejectsDuplicatePaths(t *testing.T) {
	data := []byte(`{
		"title": "T", "description": "D",
		"generatedAt": "2026-03-14T09:26:53+01:00", "rootPath": "/srv",
		"versions": [{"key": "all", "label": "All", "groups": [
			{"key": "root", "label": "Root", "items": [
				{"title": "A", "path": "./a.html"},
				{"title": "A again", "path": "./a.html"}
			]}
		]}]
	}`)
	_, err := FromJSON(data)
	assert.ErrorIs(t, err, derrors.ErrInvalidManifest)
}

func TestBuilderRecordsMetrics(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.html", "index.html", "design_previewer/x.html")

	reg := prom.NewRegistry()
	b := NewBuilder(WithRecorder(metrics.NewPrometheusRecorder(reg)), WithClock(fixedClock(t, 0)))
	_, err := b.Build(root, "T", "D")
	require.NoError(t, err)
	_, err = b.Build(filepath.Join(root, "missing"), "T", "D")
	require.Error(t, err)

	values := map[string]float64{}
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				key += "/" + lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				values[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[key] = m.GetGauge().GetValue()
			}
		}
	}
	assert.Equal(t, 1.0, values["designpreview_manifest_builds_total/success"])
	assert.Equal(t, 1.0, values["designpreview_manifest_builds_total/failed"])
	assert.Equal(t, 1.0, values["designpreview_discovered_items"])
	assert.Equal(t, 1.0, values["designpreview_excluded_files_total/index"])
}

func TestClassify(t *testing.T) {
	assert.NoError(t, Classify(nil, "/srv"))

	_, err := DiscoverVersions(filepath.Join(t.TempDir(), "missing"))
	classified := Classify(err, "/srv")
	assert.True(t, ferrors.HasCategory(classified, ferrors.CategoryNotFound))
	assert.ErrorIs(t, classified, derrors.ErrRootNotFound)

	c, ok := ferrors.AsClassified(Classify(derrors.ErrPathResolution, "/srv"))
	require.True(t, ok)
	assert.Equal(t, ferrors.CategoryDiscovery, c.Category())
	assert.True(t, c.IsFatal())
	root, _ := c.Context().GetString("root")
	assert.Equal(t, "/srv", root)

	walk, ok := ferrors.AsClassified(Classify(fmt.Errorf("%w: /srv: denied", derrors.ErrTreeWalkFailed), "/srv"))
	require.True(t, ok)
	assert.Equal(t, ferrors.CategoryFileSystem, walk.Category())
	assert.True(t, walk.CanRetry())

	plain := errors.New("plain")
	assert.Same(t, plain, Classify(plain, "/srv"))
}
