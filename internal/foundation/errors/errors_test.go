package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "designpreview.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())
		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		assert.Equal(t, "designpreview.yaml", file)
		assert.Equal(t, "[config:fatal] invalid configuration", err.Error())
	})

	t.Run("Wrapped cause stays matchable", func(t *testing.T) {
		sentinel := stderrors.New("sentinel")
		err := WrapError(fmt.Errorf("outer: %w", sentinel), CategoryFileSystem, "walk failed").Build()

		assert.ErrorIs(t, err, sentinel)
		assert.Contains(t, err.Error(), "walk failed: outer: sentinel")
	})

	t.Run("AsClassified searches the chain", func(t *testing.T) {
		inner := NewError(CategoryValidation, "bad manifest").Build()
		wrapped := fmt.Errorf("generate: %w", inner)

		c, ok := AsClassified(wrapped)
		require.True(t, ok)
		assert.Same(t, inner, c)
		assert.True(t, HasCategory(wrapped, CategoryValidation))
		assert.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
	})

	t.Run("Retry semantics", func(t *testing.T) {
		assert.False(t, ConfigError("x").Build().CanRetry())
		assert.True(t, NewError(CategoryFileSystem, "x").WithRetry(RetryBackoff).Build().CanRetry())
		assert.True(t, RuntimeError("x").Build().IsFatal())
	})
}

func TestErrorContextMerge(t *testing.T) {
	a := ErrorContext{"a": 1, "b": 1}
	b := ErrorContext{"b": 2}
	merged := a.Merge(b)
	assert.Equal(t, 1, merged["a"])
	assert.Equal(t, 2, merged["b"])

	var empty ErrorContext
	assert.Equal(t, b, empty.Merge(b))
}

func TestCLIErrorAdapter(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"nil", nil, 0},
		{"plain", stderrors.New("boom"), 1},
		{"validation", NewError(CategoryValidation, "v").Build(), 2},
		{"not found", NewError(CategoryNotFound, "missing").Build(), 3},
		{"config", ConfigError("c").Build(), 7},
		{"filesystem", NewError(CategoryFileSystem, "f").Build(), 11},
		{"discovery", NewError(CategoryDiscovery, "d").Build(), 11},
		{"internal", InternalError("i").Build(), 10},
		{"runtime", RuntimeError("r").Build(), 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, adapter.ExitCodeFor(tc.err))
		})
	}
}

func TestCLIErrorAdapter_FormatAndHandle(t *testing.T) {
	var logs, out bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out
	var exitCode int
	adapter.exit = func(code int) { exitCode = code }

	err := NewError(CategoryNotFound, "scan root not found").WithContext("root", "/nope").Build()
	assert.Equal(t, "Error: scan root not found", adapter.FormatError(err))
	assert.Equal(t, "Internal error occurred (use -v for details)", adapter.FormatError(InternalError("x").Build()))
	assert.Equal(t, "Error: boom", adapter.FormatError(stderrors.New("boom")))

	adapter.HandleError(err)
	assert.Equal(t, 3, exitCode)
	assert.Contains(t, out.String(), "scan root not found")
	// Non-fatal classified errors are not logged outside verbose mode.
	assert.Empty(t, logs.String())

	verbose := NewCLIErrorAdapter(true, nil)
	assert.Equal(t, err.Error(), verbose.FormatError(err))
}

func TestHTTPErrorAdapter(t *testing.T) {
	adapter := NewHTTPErrorAdapter(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	assert.Equal(t, http.StatusOK, adapter.StatusCodeFor(nil))
	assert.Equal(t, http.StatusInternalServerError, adapter.StatusCodeFor(stderrors.New("x")))
	assert.Equal(t, http.StatusBadRequest, adapter.StatusCodeFor(NewError(CategoryValidation, "x").Build()))
	assert.Equal(t, http.StatusNotFound, adapter.StatusCodeFor(NewError(CategoryNotFound, "x").Build()))
	assert.Equal(t, http.StatusUnprocessableEntity, adapter.StatusCodeFor(NewError(CategoryDiscovery, "x").Build()))
	assert.Equal(t, http.StatusServiceUnavailable, adapter.StatusCodeFor(RuntimeError("x").Build()))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/manifest.json", nil)
	adapter.WriteErrorResponse(rec, req, NewError(CategoryFileSystem, "walk failed").
		WithRetry(RetryBackoff).
		WithContext("root", "/srv").
		Build())

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var payload HTTPErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "walk failed", payload.Error)
	assert.Equal(t, "filesystem", payload.Code)
	assert.Equal(t, "/srv", payload.Details["root"])
	assert.True(t, payload.Retryable)
}
