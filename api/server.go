package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	dextypes "github.com/algoswap/algoswap/x/dex/types"
)

// Backend is the engine surface the gateway serves.
type Backend interface {
	NewContext() sdk.Context
	Queries() dextypes.QueryServer
	ExecuteBundle(ctx context.Context, bundle dextypes.Bundle) (*dextypes.BundleResult, error)
	AssetBalance(ctx context.Context, account sdk.AccAddress, asset uint64) (math.Int, bool)
}

// Server is the HTTP gateway in front of the pool engine.
type Server struct {
	router  *gin.Engine
	handler http.Handler
	backend Backend
	config  *Config
	logger  log.Logger
}

// Config holds server configuration
type Config struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	CORSOrigins     []string      `mapstructure:"cors-origins"`
	RateLimitRPS    int           `mapstructure:"rate-limit-rps"`
	EnableSubmit    bool          `mapstructure:"enable-submit"`
	ReadTimeout     time.Duration `mapstructure:"read-timeout"`
	WriteTimeout    time.Duration `mapstructure:"write-timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            "127.0.0.1",
		Port:            "1317",
		CORSOrigins:     []string{"http://localhost:3000"},
		RateLimitRPS:    100,
		EnableSubmit:    false,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("api port is required")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("api rate limit must be positive, got %d", c.RateLimitRPS)
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return errors.New("api read and write timeouts must be positive")
	}
	return nil
}

// Address returns host:port.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// NewServer creates a new API server instance
func NewServer(backend Backend, config *Config, logger log.Logger) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		backend: backend,
		config:  config,
		logger:  logger.With("module", "api"),
	}
	s.setupRouter()
	return s, nil
}

// setupRouter configures the Gin router with all routes and middleware
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)
	s.router = gin.New()

	// Global middleware - ORDER MATTERS!
	// 1. Recovery (must be first to catch panics)
	s.router.Use(RecoveryMiddleware(s.logger))

	// 2. Security headers and request size limiting
	s.router.Use(SecurityHeadersMiddleware())
	s.router.Use(RequestSizeLimitMiddleware(MaxRequestSize))

	// 3. Request ID and logging
	s.router.Use(RequestIDMiddleware())
	s.router.Use(LoggerMiddleware(s.logger))

	// 4. Rate limiting (before expensive operations)
	s.router.Use(RateLimitMiddleware(s.config.RateLimitRPS))

	s.registerRoutes()

	// CORS wraps the whole router so preflight requests never reach gin.
	s.handler = cors.New(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         86400,
	}).Handler(s.router)
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address(),
		Handler:           s.handler,
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.config.WriteTimeout,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "address", srv.Addr, "submit", s.config.EnableSubmit)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("api server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
