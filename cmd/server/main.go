// main wires the services, stores, and HTTP surface, and owns the process
// lifecycle. Business logic lives in the internal packages.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"pomen/internal/admin"
	"pomen/internal/events"
	"pomen/internal/person/cache"
	personhandler "pomen/internal/person/handler"
	"pomen/internal/person/matcher"
	personmetrics "pomen/internal/person/metrics"
	personservice "pomen/internal/person/service"
	personstore "pomen/internal/person/store/person"
	"pomen/internal/platform/config"
	"pomen/internal/platform/database"
	"pomen/internal/platform/httpserver"
	"pomen/internal/platform/logger"
	platformmetrics "pomen/internal/platform/metrics"
	"pomen/internal/platform/middleware"
	platformredis "pomen/internal/platform/redis"
	"pomen/internal/submission"
	submissionhandler "pomen/internal/submission/handler"
	submissionmetrics "pomen/internal/submission/metrics"
	tributehandler "pomen/internal/tribute/handler"
	tributeservice "pomen/internal/tribute/service"
	tributestore "pomen/internal/tribute/store/tribute"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database.URL)
	if err != nil {
		log.Error("database connection failed", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		log.Error("database migration failed", "error", err.Error())
		os.Exit(1)
	}

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err.Error())
		os.Exit(1)
	}
	defer redisClient.Close()

	publisher, err := events.New(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
	if err != nil {
		log.Error("event publisher setup failed", "error", err.Error())
		os.Exit(1)
	}
	defer publisher.Close()

	persons := personstore.NewPostgres(db)
	tributes := tributestore.NewPostgres(db)

	personSvc := personservice.New(persons,
		personservice.WithLogger(log),
		personservice.WithMetrics(personmetrics.New()),
	)
	tributeSvc := tributeservice.New(tributes, log)

	var recentCache *cache.RecentCache
	if redisClient != nil {
		recentCache = cache.New(redisClient.Client, cfg.Redis.CacheTTL, log)
	}

	workflowOpts := []submission.Option{
		submission.WithLogger(log),
		submission.WithMetrics(submissionmetrics.New()),
	}
	if publisher != nil {
		workflowOpts = append(workflowOpts, submission.WithEvents(publisher))
	}
	if recentCache != nil {
		workflowOpts = append(workflowOpts, submission.WithCacheInvalidator(recentCache))
	}
	workflow := submission.New(matcher.New(persons), personSvc, tributeSvc, workflowOpts...)

	moderators := admin.NewInMemoryStore()
	if cfg.Admin.SeedUsername != "" {
		if err := moderators.Seed(cfg.Admin.SeedUsername, cfg.Admin.SeedPassword); err != nil {
			log.Error("moderator seed failed", "error", err.Error())
			os.Exit(1)
		}
	}
	adminSvc := admin.New(moderators, cfg.Admin.JWTSigningKey, cfg.Admin.JWTIssuer, cfg.Admin.TokenTTL, log)

	httpMetrics := platformmetrics.New()
	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.ClientMetadata)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Latency(httpMetrics))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)

	personhandler.New(personSvc, recentCache, log).Register(router)
	submissionhandler.New(workflow, log).Register(router)
	tributehandler.New(tributeSvc, adminSvc, log).Register(router)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		if err := redisClient.Health(r.Context()); err != nil {
			http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("server starting", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("server draining", "timeout", cfg.Server.ShutdownTimeout.String())
		return httpserver.Shutdown(srv, cfg.Server.ShutdownTimeout)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited with error", "error", err.Error())
		os.Exit(1)
	}
	log.Info("server stopped")
}
