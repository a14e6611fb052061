// Package api wires the proxy operations into an Echo HTTP server.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sellerbridge/marketplace-proxy/internal/api/middleware"
	"github.com/sellerbridge/marketplace-proxy/internal/config"
	"github.com/sellerbridge/marketplace-proxy/internal/marketplace"
	"github.com/sellerbridge/marketplace-proxy/internal/proxy"
)

// Server is the long-running deployment variant. Every operation from the
// dispatch table is exposed under /api/<name>.
type Server struct {
	echo       *echo.Echo
	cfg        *config.Config
	dispatcher *proxy.Dispatcher
}

// New creates a Server with the full middleware chain and all routes
// registered.
func New(cfg *config.Config, forwarder marketplace.Forwarder, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(
		middleware.Recovery(logger),
		middleware.RequestLog(logger),
		middleware.Metrics(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		echomw.BodyLimit(cfg.Server.BodyLimit),
	)

	s := &Server{
		echo:       e,
		cfg:        cfg,
		dispatcher: proxy.NewDispatcher(forwarder),
	}
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	for i := range proxy.Operations {
		op := &proxy.Operations[i]
		s.echo.Add(op.Method, "/api/"+op.Name, s.operationHandler(op))
	}

	s.echo.GET("/api/health", handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// SPA fallback: non-API GETs get the bootstrap file when configured.
	if s.cfg.Static.Dir != "" {
		index := filepath.Join(s.cfg.Static.Dir, s.cfg.Static.Index)
		s.echo.GET("/*", func(c echo.Context) error {
			return c.File(index)
		})
		s.echo.Static("/assets", filepath.Join(s.cfg.Static.Dir, "assets"))
	}
}

// operationHandler adapts one table entry into an echo handler. All error
// paths produce the error envelope; nothing surfaces as a bare transport
// failure.
func (s *Server) operationHandler(op *proxy.Operation) echo.HandlerFunc {
	return func(c echo.Context) error {
		params, err := requestParams(c, op)
		if err != nil {
			return c.JSON(
				http.StatusBadRequest,
				proxy.NewErrorEnvelope("Geçersiz istek gövdesi", ""),
			)
		}

		result, err := s.dispatcher.Execute(c.Request().Context(), op, params)
		if err != nil {
			return s.errorResponse(c, err)
		}

		return c.JSON(http.StatusOK, result)
	}
}

// requestParams extracts operation parameters: query string for GET,
// JSON body for POST/PUT. An empty body is treated as no parameters.
func requestParams(c echo.Context, op *proxy.Operation) (proxy.Params, error) {
	if op.Method == http.MethodGet {
		params := proxy.Params{}
		for key, values := range c.QueryParams() {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}
		return params, nil
	}

	params := proxy.Params{}
	if err := c.Bind(&params); err != nil {
		return nil, fmt.Errorf("decoding request body: %w", err)
	}
	return params, nil
}

func (s *Server) errorResponse(c echo.Context, err error) error {
	details := ""
	if proxy.Unexpected(err) && s.cfg.Environment == config.EnvDevelopment {
		details = fmt.Sprintf("%+v", err)
	}

	return c.JSON(proxy.StatusFor(err), proxy.NewErrorEnvelope(err.Error(), details))
}

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, proxy.HealthPayload())
}

// Start begins serving on the configured address. It blocks until the
// server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying echo instance for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
