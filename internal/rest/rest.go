package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"pokerbots.com/skeleton/runner"
)

var restLogger = log.With().Str("logger_name", "internal::rest").Logger()

// StatusProvider is implemented by the session runner.
type StatusProvider interface {
	Status() runner.Status
}

// NewRouter returns the handler serving /status, /healthz and /metrics.
func NewRouter(provider StatusProvider) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, provider.Status())
	})
	r.GET("/healthz", func(c *gin.Context) {
		status := provider.Status()
		if status.State == runner.RunnerState__SESSION_CLOSED {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "closed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// StatusServer exposes the session status while the bot plays.
type StatusServer struct {
	srv *http.Server
}

func NewStatusServer(addr string, provider StatusProvider) *StatusServer {
	return &StatusServer{
		srv: &http.Server{
			Addr:    addr,
			Handler: NewRouter(provider),
		},
	}
}

// Start serves in the background. Listen errors are logged.
func (s *StatusServer) Start() {
	go func() {
		restLogger.Info().Msgf("Status server listening on %s", s.srv.Addr)
		err := s.srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			restLogger.Error().Msgf("Status server stopped: %s", err)
		}
	}()
}

func (s *StatusServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
