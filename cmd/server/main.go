// Command server runs the SkillsHub HTTP API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/salone-skillshub/skillshub/docs"
	"github.com/salone-skillshub/skillshub/internal/api"
	"github.com/salone-skillshub/skillshub/internal/core/service"
	"github.com/salone-skillshub/skillshub/internal/infrastructure/config"
	mongodb "github.com/salone-skillshub/skillshub/internal/infrastructure/db/mongo"
	"github.com/salone-skillshub/skillshub/internal/infrastructure/db/postgres"
	redisdb "github.com/salone-skillshub/skillshub/internal/infrastructure/db/redis"
	httpserver "github.com/salone-skillshub/skillshub/internal/infrastructure/http"
	"github.com/salone-skillshub/skillshub/internal/infrastructure/http/handlers"
	"github.com/salone-skillshub/skillshub/internal/infrastructure/mail"
	"github.com/salone-skillshub/skillshub/internal/infrastructure/queue"
	"github.com/salone-skillshub/skillshub/internal/infrastructure/storage"
	"github.com/salone-skillshub/skillshub/pkg/logger"
)

// @title       Salone SkillsHub API
// @version     1.0
// @BasePath    /
// @securityDefinitions.apikey SessionCookie
// @in          cookie
// @name        session_token
func main() {
	if err := godotenv.Load(); err != nil {
		// Not fatal: the environment may already be populated.
		bootLog := zerolog.New(os.Stderr)
		bootLog.Warn().Msg("no .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "skillshub",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped cleanly")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Postgres ---
	if cfg.AutoMigrate {
		if err := postgres.Migrate(cfg.Postgres.URL, "up", log); err != nil {
			return err
		}
	}
	pool, err := postgres.Connect(ctx, postgres.Config{
		URL:      cfg.Postgres.URL,
		MaxConns: cfg.Postgres.MaxConns,
		Timeout:  cfg.Postgres.Timeout,
	})
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// --- MongoDB ---
	mongoClient, mongoDB, err := mongodb.Connect(ctx, mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		Timeout:     cfg.Mongo.Timeout,
		MaxPoolSize: cfg.Mongo.MaxPool,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, mongoDB); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Timeout:  cfg.Redis.Timeout,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	// --- Object storage ---
	store, err := storage.Connect(ctx, storage.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Bucket:    cfg.S3.Bucket,
		Region:    cfg.S3.Region,
		UseSSL:    cfg.S3.UseSSL,
	})
	if err != nil {
		return err
	}

	// --- Notifications ---
	sender, err := mail.NewSender(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, log.With().Str("component", "mail").Logger())
	if err != nil {
		return err
	}
	dispatcher := queue.NewDispatcher(queue.Config{
		Workers: cfg.Notifications.Workers,
		Buffer:  cfg.Notifications.Buffer,
		Timeout: cfg.Notifications.Timeout,
		Drain:   cfg.Notifications.Drain,
	}, sender, log.With().Str("component", "dispatcher").Logger())
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	// --- Repositories ---
	db := postgres.WithTimeout(pool, cfg.Postgres.Timeout)
	users := postgres.NewUserRepository(db)
	skills := postgres.NewSkillRepository(db)
	profiles := postgres.NewProfileRepository(db)
	jobs := postgres.NewJobRepository(db)
	applications := postgres.NewApplicationRepository(db)
	events := mongodb.NewEventRepository(mongoDB)
	messages := mongodb.NewMessageRepository(mongoDB)
	sessions := redisdb.NewSessionRepository(rdb)
	dedup := redisdb.NewDedupChecker(rdb, cfg.Redis.DedupTTL)

	// --- Services ---
	sessionService := service.NewSessionService(sessions, users, cfg.SessionTTL, log)
	svc := api.Services{
		Sessions:     sessionService,
		Auth:         service.NewAuthService(users, sessionService, dispatcher, cfg.JWTSecret, cfg.BaseURL, log),
		Profiles:     service.NewProfileService(users, profiles, skills, log),
		Jobs:         service.NewJobService(jobs, profiles, skills, log),
		Matches:      service.NewMatchService(jobs, profiles, skills, log),
		Applications: service.NewApplicationService(applications, events, jobs, profiles, users, dedup, dispatcher, log),
		Messages:     service.NewMessageService(messages, users, applications, dedup, dispatcher, log),
		Uploads:      service.NewUploadService(store, profiles, cfg.S3.MaxUploadBytes, log),
	}

	// --- HTTP ---
	readiness := handlers.NewHealthDependenciesHandler(
		handlers.Dependency{Name: "postgres", Ping: pool.Ping},
		handlers.Dependency{Name: "mongodb", Ping: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }},
		handlers.Dependency{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		handlers.Dependency{Name: "object_store", Ping: store.Ping},
	)
	router := api.NewRouter(svc, api.Options{
		Production:     cfg.Production(),
		SecureCookie:   cfg.CookieSecure,
		MaxUploadBytes: cfg.S3.MaxUploadBytes,
		AuthRate:       cfg.RateLimit.AuthPerSecond,
		AuthBurst:      cfg.RateLimit.AuthBurst,
		Liveness:       handlers.NewHealthHandler().Liveness,
		Readiness:      readiness.Readiness,
		Metrics:        true,
		Swagger:        cfg.Swagger,
	}, log)

	return httpserver.NewServer(router, ":"+cfg.Port, log).Run(ctx)
}
