package mockapi

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Config controls the stub backend.
type Config struct {
	JWTSecret string
	// Seed preloads demo accounts and products.
	Seed bool
}

// NewServer builds the Echo instance with all storefront routes registered.
// The returned value is an http.Handler, so tests can mount it directly on
// an httptest.Server.
func NewServer(cfg Config, log zerolog.Logger) *echo.Echo {
	st := newState()
	if cfg.Seed {
		st.seed()
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = newValidator()
	e.HTTPErrorHandler = newHTTPErrorHandler(log)

	// Per-server registry so multiple instances (tests) never collide on
	// the global one.
	registry := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "mockapi",
		Registerer: registry,
	}))

	// --- Handlers ---
	auth := &authHandler{state: st, jwtSecret: cfg.JWTSecret}
	products := &productHandler{state: st}
	orders := &orderHandler{state: st}

	// --- Public routes ---
	e.POST("/auth/signup", auth.Signup)
	e.POST("/auth/signin", auth.Signin)
	e.GET("/products/:currency", products.List)
	e.GET("/products/:id/:currency", products.Get)

	// --- Authenticated routes ---
	ws := e.Group("/ws", bearerAuth(cfg.JWTSecret))
	ws.POST("/orders", orders.Create)
	ws.GET("/orders/:currency", orders.List)

	admin := ws.Group("/products", adminOnly())
	admin.POST("", products.Create)
	admin.PUT("/:id", products.Update)
	admin.DELETE("/:id", products.Delete)

	// --- Probes and metrics ---
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: registry,
	}))

	return e
}
