package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/workhive/job-portal-api/internal/auth"
	"github.com/workhive/job-portal-api/internal/config"
	"github.com/workhive/job-portal-api/internal/handler"
	"github.com/workhive/job-portal-api/internal/mailer"
	"github.com/workhive/job-portal-api/internal/middleware"
	"github.com/workhive/job-portal-api/internal/repository"
	"github.com/workhive/job-portal-api/internal/usecase"
	"github.com/workhive/job-portal-api/internal/validation"
)

const connectTimeout = 10 * time.Second

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create mongo client")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect mongo client")
		}
	}()

	startupCtx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(startupCtx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping mongo")
	}

	db := client.Database(cfg.MongoDatabase)

	userRepo := repository.NewUserMongoRepository(startupCtx, &logger, db)
	companyRepo := repository.NewCompanyMongoRepository(startupCtx, &logger, db)
	jobRepo := repository.NewJobMongoRepository(startupCtx, &logger, db)
	applicationRepo := repository.NewApplicationMongoRepository(startupCtx, &logger, db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenExpiresIn)
	mail := mailer.NewMailer(cfg.Mailer)
	if mail == nil {
		logger.Warn().Msg("SMTP not configured, status notifications disabled")
	}

	validate, err := validation.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build validator")
	}

	authUsecase := usecase.NewAuthUsecase(userRepo, companyRepo, jwtAuth)
	jobUsecase := usecase.NewJobUsecase(jobRepo, companyRepo, applicationRepo)
	applicationUsecase := usecase.NewApplicationUsecase(
		applicationRepo, jobRepo, userRepo, companyRepo, mail, &logger,
	)

	authMiddleware := middleware.NewAuth(jwtAuth, userRepo, companyRepo, &logger)

	router := handler.NewRouter(
		handler.NewUserHandler(authUsecase, applicationUsecase, validate, &logger),
		handler.NewCompanyHandler(authUsecase, jobUsecase, applicationUsecase, validate, &logger),
		handler.NewJobHandler(jobUsecase, &logger),
		authMiddleware,
		&logger,
		cfg.RequestTimeout,
	)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-shutdownCtx.Done()
	logger.Info().Msg("shutting down")

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
