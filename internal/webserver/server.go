package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
	"github.com/talkincode/productcards/internal/app"
	"github.com/talkincode/productcards/internal/catalog"
	"go.uber.org/zap"
)

const (
	storeContextKey = "store"
	appContextKey   = "appctx"
	sessionName     = "productcards"
	apiPrefix       = "/api"
)

// server is the instance the package-level route helpers register on
var server *WebServer

// WebServer wires the echo instance to the application context
type WebServer struct {
	root *echo.Echo
	api  *echo.Group
	app  app.AppContext
}

// NewWebServer builds the echo instance with the shared middleware stack and
// makes it the target of the package-level route helpers
func NewWebServer(appCtx app.AppContext) *WebServer {
	cfg := appCtx.Config()
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	if cfg.System.Debug {
		e.Debug = true
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.INFO)
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Debug("request",
				zap.String("namespace", "web"),
				zap.String("id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency))
			return nil
		},
	}))
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(cfg.Web.Secret))))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(storeContextKey, appCtx.Store())
			c.Set(appContextKey, appCtx)
			return next(c)
		}
	})

	server = &WebServer{
		root: e,
		api:  e.Group(apiPrefix),
		app:  appCtx,
	}
	return server
}

// GET registers a page route on the current server
func GET(path string, h echo.HandlerFunc) {
	server.GET(path, h)
}

func POST(path string, h echo.HandlerFunc) {
	server.POST(path, h)
}

// ApiGET registers a route under /api on the current server
func ApiGET(path string, h echo.HandlerFunc) {
	server.ApiGET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.ApiPOST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.ApiPUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.ApiDELETE(path, h)
}

// Echo exposes the underlying instance (handlers in tests, custom routes)
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

func (s *WebServer) GET(path string, h echo.HandlerFunc) {
	s.root.GET(path, h)
}

func (s *WebServer) POST(path string, h echo.HandlerFunc) {
	s.root.POST(path, h)
}

func (s *WebServer) ApiGET(path string, h echo.HandlerFunc) {
	s.api.GET(path, h)
}

func (s *WebServer) ApiPOST(path string, h echo.HandlerFunc) {
	s.api.POST(path, h)
}

func (s *WebServer) ApiPUT(path string, h echo.HandlerFunc) {
	s.api.PUT(path, h)
}

func (s *WebServer) ApiDELETE(path string, h echo.HandlerFunc) {
	s.api.DELETE(path, h)
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *WebServer) Start(ctx context.Context) error {
	cfg := s.app.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("Prepare to start web server at %s", addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.root.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "web server")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		zap.S().Info("web server shutting down")
		return errors.Wrap(s.root.Shutdown(shutdownCtx), "web server shutdown")
	}
}

// GetStore returns the product store attached to the request
func GetStore(c echo.Context) *catalog.Store {
	return c.Get(storeContextKey).(*catalog.Store)
}

// GetApp returns the application context attached to the request
func GetApp(c echo.Context) app.AppContext {
	return c.Get(appContextKey).(app.AppContext)
}

// AddFlash queues a one-shot message for the next rendered page
func AddFlash(c echo.Context, message string) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		zap.L().Warn("session unavailable", zap.String("namespace", "web"), zap.Error(err))
		return
	}
	sess.AddFlash(message)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		zap.L().Warn("session save failed", zap.String("namespace", "web"), zap.Error(err))
	}
}

// Flashes drains the queued messages
func Flashes(c echo.Context) []string {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if m, ok := f.(string); ok {
			messages = append(messages, m)
		}
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		zap.L().Warn("session save failed", zap.String("namespace", "web"), zap.Error(err))
	}
	return messages
}
