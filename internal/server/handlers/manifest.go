package handlers

import (
	"net/http"

	"git.home.luguber.info/inful/designpreview/internal/design"
	ferrors "git.home.luguber.info/inful/designpreview/internal/foundation/errors"
)

// ManifestSource describes the manifest served by ManifestHandlers.
type ManifestSource struct {
	Root        string
	Title       string
	Description string
}

// ManifestHandlers serves a manifest built fresh for every request.
type ManifestHandlers struct {
	builder *design.Builder
	source  ManifestSource
	adapter *ferrors.HTTPErrorAdapter
}

// NewManifestHandlers creates manifest handlers. A nil builder uses design defaults.
func NewManifestHandlers(builder *design.Builder, source ManifestSource, adapter *ferrors.HTTPErrorAdapter) *ManifestHandlers {
	if builder == nil {
		builder = design.NewBuilder()
	}
	if adapter == nil {
		adapter = ferrors.NewHTTPErrorAdapter(nil)
	}
	return &ManifestHandlers{builder: builder, source: source, adapter: adapter}
}

// HandleManifest handles GET /manifest.json.
func (h *ManifestHandlers) HandleManifest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	m, err := h.builder.Build(h.source.Root, h.source.Title, h.source.Description)
	if err != nil {
		h.adapter.WriteErrorResponse(w, r, design.Classify(err, h.source.Root))
		return
	}
	data, err := m.ToJSON()
	if err != nil {
		h.adapter.WriteErrorResponse(w, r, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode manifest").Build())
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(append(data, '\n'))
}
