package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nocap-placify/placify"
	"github.com/nocap-placify/placify/internal/config"
	"github.com/nocap-placify/placify/internal/metrics"
	"github.com/nocap-placify/placify/pkg/adapters/file"
	placifyhttp "github.com/nocap-placify/placify/pkg/adapters/http"
	"github.com/nocap-placify/placify/pkg/adapters/memory"
	placifynats "github.com/nocap-placify/placify/pkg/adapters/nats"
	"github.com/nocap-placify/placify/pkg/adapters/postgres"
	"github.com/nocap-placify/placify/pkg/adapters/redis"
	"github.com/nocap-placify/placify/pkg/observability"
	"github.com/nocap-placify/placify/pkg/persistence/middleware"
	"github.com/nocap-placify/placify/pkg/ports"
)

// app is the engine plus the infrastructure it was assembled from.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	engine  *placify.Engine
	metrics *metrics.Metrics
	checks  map[string]placifyhttp.HealthCheck
	closers []func() error
}

// newApp wires the engine from configuration. Metrics are only collected
// when withMetrics is set, i.e. for long-running servers.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, withMetrics bool) (*app, error) {
	a := &app{
		cfg:    cfg,
		logger: logger,
		checks: make(map[string]placifyhttp.HealthCheck),
	}
	ok := false
	defer func() {
		if !ok {
			_ = a.Close()
		}
	}()

	opts := []placify.Option{
		placify.WithLogger(logger),
		placify.WithSubmitTimeout(cfg.Wizard.SubmitTimeout),
		placify.WithResetDelay(cfg.Wizard.ResetDelay),
		placify.WithLifecycleHooks(observability.LoggingHooks(logger)),
	}
	if withMetrics {
		a.metrics = metrics.New()
		opts = append(opts, placify.WithLifecycleHooks(a.metrics.Hooks()))
	}
	if cfg.Definitions != "" {
		opts = append(opts, placify.WithLoader(file.NewLoader(cfg.Definitions)))
	}

	gw, err := a.gateway(ctx)
	if err != nil {
		return nil, err
	}
	opts = append(opts, placify.WithGateway(gw))

	storeOpts, err := a.store()
	if err != nil {
		return nil, err
	}
	opts = append(opts, storeOpts...)

	if cfg.NATS.URL != "" {
		pub, err := placifynats.Connect(cfg.NATS.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to nats: %w", err)
		}
		a.closers = append(a.closers, pub.Close)
		a.checks["nats"] = pub.Ping
		opts = append(opts, placify.WithPublisher(pub))
	}

	eng, err := placify.New(opts...)
	if err != nil {
		return nil, err
	}
	a.engine = eng
	ok = true
	return a, nil
}

func (a *app) gateway(ctx context.Context) (ports.Gateway, error) {
	switch a.cfg.Gateway.Kind {
	case config.GatewayHTTP:
		opts := []placifyhttp.GatewayOption{
			placifyhttp.WithGatewayLogger(a.logger),
			placifyhttp.WithTimeout(a.cfg.Wizard.SubmitTimeout),
		}
		for target, path := range a.cfg.Gateway.Paths {
			opts = append(opts, placifyhttp.WithPath(target, path))
		}
		return placifyhttp.NewGateway(a.cfg.Gateway.BaseURL, opts...)
	case config.GatewayPostgres:
		gw, err := postgres.Open(ctx, a.cfg.Gateway.PostgresDSN, postgres.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, gw.Close)
		a.checks["postgres"] = gw.Ping
		return gw, nil
	default:
		a.logger.Warn("using the in-memory gateway, submissions are not persisted")
		return memory.NewGateway(), nil
	}
}

func (a *app) store() ([]placify.Option, error) {
	var (
		store ports.StateStore
		opts  []placify.Option
	)
	switch a.cfg.Store.Kind {
	case config.StoreFile:
		store = file.NewStore(a.cfg.Store.Dir)
	case config.StoreRedis:
		rc := a.cfg.Store.Redis
		rs := redis.New(rc.Addr, rc.Password, rc.DB, redis.WithPrefix(rc.Prefix), redis.WithTTL(rc.TTL))
		a.closers = append(a.closers, rs.Close)
		a.checks["redis"] = rs.Ping
		store = rs
		opts = append(opts, placify.WithLocker(redis.NewLocker(rs.Client(), rc.Prefix)))
	default:
		store = memory.NewStore()
	}

	var mws []middleware.Middleware
	if len(a.cfg.Store.PIIPatterns) > 0 {
		pii, err := middleware.NewPIIMiddleware(a.cfg.Store.PIIPatterns)
		if err != nil {
			return nil, err
		}
		mws = append(mws, pii)
	}
	if a.cfg.Store.EncryptionKey != "" {
		key, err := middleware.ParseKey(a.cfg.Store.EncryptionKey)
		if err != nil {
			return nil, err
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}
	store = middleware.Chain(store, mws...)

	return append(opts, placify.WithStore(store)), nil
}

// Close releases the engine and every connection it was given.
func (a *app) Close() error {
	var errs []error
	if a.engine != nil {
		errs = append(errs, a.engine.Close())
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}
