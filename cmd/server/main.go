package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"standsdir/internal/directory/handler"
	dirmetrics "standsdir/internal/directory/metrics"
	"standsdir/internal/directory/models"
	"standsdir/internal/directory/notify"
	"standsdir/internal/directory/service"
	builderstore "standsdir/internal/directory/store/builder"
	leadstore "standsdir/internal/directory/store/lead"
	loadstore "standsdir/internal/directory/store/load"
	"standsdir/internal/location"
	"standsdir/internal/platform/config"
	"standsdir/internal/platform/httpserver"
	"standsdir/internal/platform/kafka"
	"standsdir/internal/platform/logger"
	"standsdir/internal/platform/metrics"
	"standsdir/internal/platform/postgres"
	"standsdir/internal/platform/redis"
	"standsdir/internal/platform/tracing"
	rlmiddleware "standsdir/internal/ratelimit/middleware"
	rlmodels "standsdir/internal/ratelimit/models"
	"standsdir/internal/ratelimit/store/bucket"
	"standsdir/pkg/platform/circuit"
	"standsdir/pkg/platform/httputil"
	"standsdir/pkg/platform/middleware/request"
	"standsdir/pkg/platform/middleware/requesttime"
	"standsdir/pkg/platform/tx"
)

// main wires dependencies, serves HTTP and runs the stale-lead rerouter
// until SIGINT or SIGTERM.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "standsdir:", err)
		os.Exit(1)
	}
}

type infra struct {
	db       *sql.DB
	redis    *redis.Client
	producer *kgo.Client
}

func (i *infra) close() {
	if i.producer != nil {
		i.producer.Close()
	}
	if i.redis != nil {
		_ = i.redis.Close()
	}
	if i.db != nil {
		_ = i.db.Close()
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, os.Stdout, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(flushCtx)
	}()

	// A broken alias table must stop the process before any request is served.
	aliases, err := location.LoadAliasFile(cfg.Directory.AliasFile)
	if err != nil {
		return fmt.Errorf("load alias table: %w", err)
	}
	policy, _ := location.ParseEmptyCountryPolicy(cfg.Directory.EmptyCountryPolicy)
	matcher := location.NewMatcher(aliases, location.WithEmptyCountryPolicy(policy))
	log.InfoContext(ctx, "alias table loaded",
		"groups", aliases.Len(),
		"file", cfg.Directory.AliasFile,
		"empty_country_policy", string(policy),
	)

	// Package-level collectors (store latency, Go runtime) live on the default
	// registry; per-instance ones on registry. /metrics serves both.
	registry := prometheus.NewRegistry()
	httpMetrics := metrics.New(registry)
	dirMetrics := dirmetrics.New(registry)

	deps := &infra{}
	defer deps.close()

	builders, leads, load, err := openStores(ctx, cfg, deps, log)
	if err != nil {
		return err
	}

	if cfg.Directory.BuildersFile != "" {
		seed, err := builderstore.LoadSeedFile(cfg.Directory.BuildersFile)
		if err != nil {
			return err
		}
		if err := seedBuilders(ctx, deps, builders, seed); err != nil {
			return err
		}
		log.InfoContext(ctx, "builders seeded", "count", len(seed), "file", cfg.Directory.BuildersFile)
	}

	publisher, err := newPublisher(ctx, cfg, deps, log, dirMetrics)
	if err != nil {
		return err
	}

	svc, err := service.New(builders, leads, load, matcher,
		service.WithLogger(log),
		service.WithMetrics(dirMetrics),
		service.WithPublisher(publisher),
		service.WithMaxAssignments(cfg.Directory.MaxAssignments),
	)
	if err != nil {
		return err
	}
	if err := svc.SyncLoad(ctx); err != nil {
		return fmt.Errorf("sync builder load: %w", err)
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(log))
	r.Use(chimw.RealIP)
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(log))
	r.Use(httpMetrics.LatencyMiddleware)
	r.Handle("/metrics", metrics.Handler(prometheus.Gatherers{registry, prometheus.DefaultGatherer}))
	r.Get("/healthz", healthz(deps))
	limiter := newRateLimiter(cfg.RateLimit, deps, log, registry)
	handler.New(svc, log, cfg.Server.AdminToken,
		handler.WithReadMiddleware(limiter.RateLimit(rlmodels.ClassRead)),
		handler.WithLeadMiddleware(limiter.RateLimit(rlmodels.ClassLeadSubmit)),
	).Register(r)
	if cfg.Server.AdminToken == "" {
		log.WarnContext(ctx, "ADMIN_TOKEN not set, admin routes are locked")
	}

	srv := httpserver.New(cfg.Server.Addr, otelhttp.NewHandler(r, "standsdir"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.InfoContext(gctx, "starting standsdir", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		err := svc.RunRerouter(gctx, cfg.Directory.RerouteInterval, cfg.Directory.RerouteAfter)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// openStores selects PostgreSQL and Redis when configured, in-memory stores
// otherwise.
func openStores(ctx context.Context, cfg config.Config, deps *infra, log *slog.Logger) (builderStore, service.LeadStore, service.LoadStore, error) {
	var (
		builders builderStore      = builderstore.NewInMemory()
		leads    service.LeadStore = leadstore.NewInMemory()
		load     service.LoadStore = loadstore.NewInMemory()
	)

	db, err := postgres.Open(ctx, postgres.Config{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	if db != nil {
		deps.db = db
		if err := postgres.Migrate(ctx, db); err != nil {
			return nil, nil, nil, err
		}
		builders = builderstore.NewPostgres(db)
		leads = leadstore.NewPostgres(db)
		log.InfoContext(ctx, "using postgres stores")
	} else {
		log.InfoContext(ctx, "DATABASE_URL not set, using in-memory builder and lead stores")
	}

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, nil, err
	}
	if rc != nil {
		deps.redis = rc
		load = loadstore.NewRedis(rc.Client)
		log.InfoContext(ctx, "using redis load store")
	}

	return builders, leads, load, nil
}

// seedBuilders saves the seed in one transaction when PostgreSQL backs the
// builder store, so a bad record leaves no partial directory behind.
func seedBuilders(ctx context.Context, deps *infra, store builderstore.Saver, seed []*models.Builder) error {
	now := time.Now().UTC()
	if deps.db == nil {
		return builderstore.Seed(ctx, store, seed, now)
	}
	return tx.Run(ctx, deps.db, func(ctx context.Context) error {
		return builderstore.Seed(ctx, store, seed, now)
	})
}

// builderStore is what main needs from a builder store: the service port
// plus seeding.
type builderStore interface {
	service.BuilderStore
	builderstore.Saver
}

// newPublisher sends notifications to Kafka behind a circuit breaker with the
// log as fallback, or only to the log when no brokers are configured.
func newPublisher(ctx context.Context, cfg config.Config, deps *infra, log *slog.Logger, m *dirmetrics.Metrics) (service.Publisher, error) {
	logPublisher := notify.NewLogPublisher(log)

	kcfg := kafka.Config{
		Brokers:     cfg.Kafka.Brokers,
		ClientID:    cfg.Kafka.ClientID,
		Topic:       cfg.Kafka.LeadTopic,
		Partitions:  cfg.Kafka.Partitions,
		Replication: cfg.Kafka.Replication,
		Linger:      cfg.Kafka.Linger,
	}
	producer, err := kafka.NewProducer(ctx, kcfg)
	if err != nil {
		return nil, err
	}
	if producer == nil {
		log.InfoContext(ctx, "KAFKA_BROKERS not set, lead notifications go to the log")
		return logPublisher, nil
	}
	deps.producer = producer
	if err := kafka.EnsureTopic(ctx, producer, kcfg); err != nil {
		return nil, err
	}

	return notify.NewResilientPublisher("kafka",
		notify.NewKafkaPublisher(producer, kcfg.Topic),
		logPublisher,
		notify.WithLogger(log),
		notify.WithMetrics(m),
		notify.WithBreaker(circuit.New("kafka",
			circuit.WithFailureThreshold(5),
			circuit.WithCooldown(30*time.Second),
		)),
	), nil
}

// newRateLimiter shares windows through Redis when it is configured.
func newRateLimiter(cfg config.RateLimitConfig, deps *infra, log *slog.Logger, reg prometheus.Registerer) *rlmiddleware.Middleware {
	var store rlmiddleware.BucketStore = bucket.NewInMemoryBucketStore()
	if deps.redis != nil {
		store = bucket.NewRedisStore(deps.redis.Client)
	}
	return rlmiddleware.New(store, log,
		rlmiddleware.WithDisabled(!cfg.Enabled),
		rlmiddleware.WithRegisterer(reg),
		rlmiddleware.WithLimit(rlmodels.ClassLeadSubmit, rlmodels.Limit{Requests: cfg.LeadRequests, Window: cfg.LeadWindow}),
		rlmiddleware.WithLimit(rlmodels.ClassRead, rlmodels.Limit{Requests: cfg.ReadRequests, Window: cfg.ReadWindow}),
	)
}

func healthz(deps *infra) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"status": "ok"}
		code := http.StatusOK
		if deps.db != nil {
			if err := deps.db.PingContext(ctx); err != nil {
				status["postgres"] = "unavailable"
				code = http.StatusServiceUnavailable
			}
		}
		if deps.redis != nil {
			if err := deps.redis.Health(ctx); err != nil {
				status["redis"] = "unavailable"
				code = http.StatusServiceUnavailable
			}
		}
		if code != http.StatusOK {
			status["status"] = "degraded"
		}
		httputil.WriteJSON(w, code, status)
	}
}
