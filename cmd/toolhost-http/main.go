// Command toolhost-http starts the tool-invocation HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joeshaw/envdecode"

	"github.com/toolhost/toolhost-go/cache"
	cachememory "github.com/toolhost/toolhost-go/cache/memory"
	cacheredis "github.com/toolhost/toolhost-go/cache/redis"
	"github.com/toolhost/toolhost-go/countries"
	"github.com/toolhost/toolhost-go/httpserver"
	"github.com/toolhost/toolhost-go/internal/engine"
	"github.com/toolhost/toolhost-go/internal/logctx"
	"github.com/toolhost/toolhost-go/mcp"
	"github.com/toolhost/toolhost-go/tools"
	"github.com/toolhost/toolhost-go/toolset"
)

const (
	serverName    = "toolhost"
	serverVersion = "0.1.0"
)

type config struct {
	Addr             string        `env:"TOOLHOST_ADDR,default=:8080"`
	RequestTimeout   time.Duration `env:"TOOLHOST_REQUEST_TIMEOUT,default=60s"`
	CountriesBaseURL string        `env:"TOOLHOST_COUNTRIES_URL,default=https://restcountries.com"`
	LookupTimeout    time.Duration `env:"TOOLHOST_LOOKUP_TIMEOUT,default=10s"`
	CacheTTL         time.Duration `env:"TOOLHOST_CACHE_TTL,default=24h"`
	RedisURL         string        `env:"TOOLHOST_REDIS_URL,default="`
	LogLevel         string        `env:"TOOLHOST_LOG_LEVEL,default=info"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "toolhost-http:", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("parse log level %q: %w", cfg.LogLevel, err)
	}
	log := slog.New(logctx.Handler{
		Handler: slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	})

	kv, err := newCache(cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	provider := countries.New(cfg.CountriesBaseURL, &http.Client{Timeout: cfg.LookupTimeout})

	reg, err := toolset.NewRegistry(
		tools.Echo(),
		tools.SHA1Hash(),
		tools.SHA256Hash(),
		tools.LetterCount(),
		tools.MortgagePayment(),
		tools.PopulationLookup(provider, kv, cfg.CacheTTL),
	)
	if err != nil {
		return fmt.Errorf("register tools: %w", err)
	}

	eng := engine.New(
		mcp.ImplementationInfo{Name: serverName, Version: serverVersion},
		reg,
		engine.WithLogger(log),
	)

	srv := httpserver.New(eng,
		httpserver.WithLogger(log),
		httpserver.WithRequestTimeout(cfg.RequestTimeout),
	)

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server.listen", slog.String("addr", cfg.Addr), slog.Int("tool_count", reg.Len()))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-stop:
		log.Info("server.shutdown", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newCache picks the cache backend: Redis when configured, otherwise the
// in-process memory cache.
func newCache(cfg config) (cache.KV, error) {
	if cfg.RedisURL == "" {
		return cachememory.New(), nil
	}
	kv, err := cacheredis.NewFromURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return kv, nil
}
