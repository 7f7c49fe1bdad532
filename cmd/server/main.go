package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"surveyor/internal/platform/config"
	"surveyor/internal/platform/httpserver"
	platformkafka "surveyor/internal/platform/kafka"
	"surveyor/internal/platform/logger"
	platformpostgres "surveyor/internal/platform/postgres"
	platformredis "surveyor/internal/platform/redis"
	"surveyor/internal/survey/handler"
	surveymetrics "surveyor/internal/survey/metrics"
	"surveyor/internal/survey/service"
	"surveyor/internal/survey/store/definition"
	"surveyor/internal/survey/store/mailqueue"
	"surveyor/internal/survey/store/response"
	"surveyor/pkg/platform/audit"
	auditkafka "surveyor/pkg/platform/audit/kafka"
	auditmemory "surveyor/pkg/platform/audit/store/memory"
	auditpostgres "surveyor/pkg/platform/audit/store/postgres"
	"surveyor/pkg/platform/middleware/auth"
)

const auditInboxSize = 256

// main wires backends by capability: each missing backend URL downgrades one
// concern to its in-memory stand-in, never the whole process.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Durable stores, present only when DATABASE_URL is set.
	var (
		responseOpts []service.Option
		auditStores  audit.Multi
	)
	if cfg.DatabaseURL != "" {
		db, err := platformpostgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres unavailable", "error", err)
			return
		}
		defer db.Close()
		if err := platformpostgres.EnsureSchema(ctx, db); err != nil {
			log.Error("schema setup failed", "error", err)
			return
		}
		pool, err := platformpostgres.OpenPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("pgx pool unavailable", "error", err)
			return
		}
		defer pool.Close()

		responseOpts = append(responseOpts,
			service.WithDurableStore(response.NewPostgres(pool)),
			service.WithDefinitions(definition.NewPostgres(db)),
		)
		auditStores = append(auditStores, auditpostgres.New(db))
		log.Info("durable store enabled")
	} else {
		log.Warn("DATABASE_URL not set, responses are held in memory only")
	}
	if len(auditStores) == 0 {
		auditStores = append(auditStores, auditmemory.NewInMemoryStore())
	}

	// Kafka audit sink, present only when brokers are configured.
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := platformkafka.NewProducer(cfg.KafkaBrokers, log)
		if err != nil {
			log.Error("kafka unavailable", "error", err)
			return
		}
		defer producer.Close()
		if err := producer.EnsureTopic(ctx, cfg.AuditTopic); err != nil {
			log.Error("audit topic setup failed", "error", err)
			return
		}
		auditStores = append(auditStores, auditkafka.NewSink(producer, cfg.AuditTopic))
		log.Info("kafka audit sink enabled", "topic", cfg.AuditTopic)
	}

	inbox := make(chan audit.Event, auditInboxSize)
	publisher := audit.NewPublisher(inbox, log)
	worker := audit.NewWorker(auditStores, inbox, log)

	// Mail queue: Redis when configured, otherwise in-memory only.
	mailFallback := mailqueue.NewInMemory()
	var mailPrimary mailqueue.Store = mailFallback
	var mailOpts []service.MailOption
	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		return
	}
	if redisClient != nil {
		defer redisClient.Close()
		mailPrimary = mailqueue.NewRedis(redisClient.Client, config.MailQueueKey)
		mailOpts = append(mailOpts, service.WithMailFallback(mailFallback))
		log.Info("redis mail queue enabled")
	} else {
		log.Warn("REDIS_URL not set, queued emails are held in memory only")
	}

	metrics := surveymetrics.New()

	responses := service.NewResponseService(response.NewInMemory(),
		append(responseOpts,
			service.WithAudit(publisher),
			service.WithMetrics(metrics),
			service.WithLogger(log),
		)...,
	)
	mail := service.NewMailService(mailPrimary, cfg.PublicBaseURL,
		append(mailOpts,
			service.WithMailAudit(publisher),
			service.WithMailMetrics(metrics),
			service.WithMailLogger(log),
		)...,
	)

	var validator auth.Validator
	if cfg.JWTSigningKey != "" {
		validator = auth.NewHS256Validator(cfg.JWTSigningKey)
	}

	router := chi.NewRouter()
	handler.New(responses, mail, log, validator).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				http.Error(w, "redis unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		err := worker.Run(groupCtx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	group.Go(func() error {
		log.Info("starting surveyor", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited", "error", err)
	}
}
