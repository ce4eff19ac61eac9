package webserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/productcards/config"
	"github.com/talkincode/productcards/internal/app"
	"github.com/talkincode/productcards/internal/kvstore"
)

func newTestApp(t *testing.T) *app.Application {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.Storage.Type = "memory"
	a := app.NewApplication(&cfg, nil)
	a.OverrideStorage(kvstore.NewMemory())
	require.NoError(t, a.Init(&cfg))
	t.Cleanup(a.Release)
	return a
}

func serve(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestRouteHelpersTargetLatestServer(t *testing.T) {
	a := newTestApp(t)
	first := NewWebServer(a)
	second := NewWebServer(a)

	ApiGET("/ping", func(c echo.Context) error {
		assert.Same(t, a.Store(), GetStore(c))
		return c.String(http.StatusOK, "pong")
	})
	GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "home") })

	rec := serve(second.Echo(), http.MethodGet, "/api/ping")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
	assert.Equal(t, http.StatusOK, serve(second.Echo(), http.MethodGet, "/").Code)

	assert.Equal(t, http.StatusNotFound, serve(first.Echo(), http.MethodGet, "/api/ping").Code)
}

func TestApiHelpersUseMethod(t *testing.T) {
	srv := NewWebServer(newTestApp(t))
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	ApiPOST("/items", ok)
	ApiPUT("/items/:id", ok)
	ApiDELETE("/items/:id", ok)

	assert.Equal(t, http.StatusNoContent, serve(srv.Echo(), http.MethodPost, "/api/items").Code)
	assert.Equal(t, http.StatusNoContent, serve(srv.Echo(), http.MethodPut, "/api/items/1").Code)
	assert.Equal(t, http.StatusNoContent, serve(srv.Echo(), http.MethodDelete, "/api/items/1").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(srv.Echo(), http.MethodGet, "/api/items/1").Code)
}
