package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/ClementJar/IDV-sub000/internal/auth"
	authhandler "github.com/ClementJar/IDV-sub000/internal/auth/handler"
	"github.com/ClementJar/IDV-sub000/internal/clients"
	clientshandler "github.com/ClementJar/IDV-sub000/internal/clients/handler"
	jwttoken "github.com/ClementJar/IDV-sub000/internal/jwt_token"
	"github.com/ClementJar/IDV-sub000/internal/platform/config"
	"github.com/ClementJar/IDV-sub000/internal/platform/database"
	"github.com/ClementJar/IDV-sub000/internal/platform/httpserver"
	"github.com/ClementJar/IDV-sub000/internal/platform/logger"
	"github.com/ClementJar/IDV-sub000/internal/platform/middleware"
	platformredis "github.com/ClementJar/IDV-sub000/internal/platform/redis"
	"github.com/ClementJar/IDV-sub000/internal/products"
	productshandler "github.com/ClementJar/IDV-sub000/internal/products/handler"
	"github.com/ClementJar/IDV-sub000/internal/reports"
	reportshandler "github.com/ClementJar/IDV-sub000/internal/reports/handler"
	"github.com/ClementJar/IDV-sub000/internal/verification"
	verificationhandler "github.com/ClementJar/IDV-sub000/internal/verification/handler"
	"github.com/ClementJar/IDV-sub000/internal/verification/metrics"
	"github.com/ClementJar/IDV-sub000/pkg/platform/audit"
	auditkafka "github.com/ClementJar/IDV-sub000/pkg/platform/audit/kafka"
)

// tokenValidator adapts the JWT service to the auth middleware's claims type.
type tokenValidator struct {
	tokens *jwttoken.JWTService
}

func (v tokenValidator) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	claims, err := v.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.JWTClaims{UserID: claims.UserID, Username: claims.Username}, nil
}

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores default to seeded in-memory implementations; DATABASE_URL
	// switches the record, attempt, and client stores to PostgreSQL.
	var (
		recordStore  verification.SourceRecordStore
		attemptStore verification.AttemptStore
		clientStore  clients.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		records := verification.NewPostgresSourceStore(db)
		attempts := verification.NewPostgresAttemptStore(db)
		clientsPG := clients.NewPostgresStore(db)
		for _, ensure := range []func(context.Context) error{
			records.EnsureSchema, attempts.EnsureSchema, clientsPG.EnsureSchema,
		} {
			if err := ensure(ctx); err != nil {
				log.Error("schema migration failed", "error", err)
				os.Exit(1)
			}
		}
		if err := records.Load(ctx, verification.SeedRecords()...); err != nil {
			log.Error("seed records failed", "error", err)
			os.Exit(1)
		}
		recordStore, attemptStore, clientStore = records, attempts, clientsPG
	} else {
		records := verification.NewInMemorySourceStore()
		records.Load(verification.SeedRecords()...)
		recordStore = records
		attemptStore = verification.NewInMemoryAttemptStore()
		clientStore = clients.NewInMemoryStore()
	}

	userStore := auth.NewInMemoryUserStore()
	userStore.Add(auth.SeedUsers()...)

	cache, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if cache != nil {
		defer cache.Close()
	}

	// Audit publishing is optional; without Kafka seeds the verification
	// service simply skips the publisher.
	var (
		publisher *audit.Publisher
		worker    *audit.Worker
	)
	if len(cfg.Kafka.Seeds) > 0 {
		sink, err := auditkafka.NewSink(ctx, cfg.Kafka.Seeds, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka sink setup failed", "error", err)
			os.Exit(1)
		}
		defer sink.Close()
		publisher = audit.NewPublisher(256, log)
		worker = audit.NewWorker(sink, publisher.Inbox(), log)
	}

	tokens := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	authService := auth.NewService(userStore, tokens, cfg.TokenTTL, log)
	clientService := clients.NewService(clientStore, log)
	productService := products.NewService(products.NewInMemoryEnrollmentStore(), clientStore, log)
	reportService := reports.NewService(attemptStore, clientStore, cache, config.DashboardCacheTTL, log)

	verifyConfig := verification.Config{
		Records:    recordStore,
		Attempts:   attemptStore,
		Registered: clientStore,
		Latency:    verification.RandomLatency{Min: cfg.MockLatencyMin, Max: cfg.MockLatencyMax},
		Logger:     log,
		Metrics:    metrics.New(),
	}
	if publisher != nil {
		verifyConfig.Publisher = publisher
	}
	verifyService := verification.NewService(verifyConfig)

	authHandler := authhandler.New(authService, log)
	verifyHandler := verificationhandler.New(verifyService, log)
	clientHandler := clientshandler.New(clientService, log)
	productHandler := productshandler.New(productService, log)
	reportHandler := reportshandler.New(reportService, log)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.ClientMetadata)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	router.Handle("/metrics", promhttp.Handler())
	authHandler.RegisterPublic(router)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokenValidator{tokens: tokens}, log))
		authHandler.Register(r)
		verifyHandler.Register(r)
		clientHandler.Register(r)
		productHandler.Register(r)
		reportHandler.Register(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("server starting", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if worker != nil {
		group.Go(func() error {
			return worker.Run(groupCtx)
		})
	}
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
