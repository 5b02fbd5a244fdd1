package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/seyio/signup"
)

// logEvents reports account creations to the service log.
type logEvents struct {
	logger zerolog.Logger
}

func (e *logEvents) AccountCreated(id string, name string, email string) {
	e.logger.Info().Str("id", id).Str("name", name).Str("email", email).Msg("account created")
}

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "signup").Logger()

	cfg, err := signup.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("loading config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	accounts, err := newRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("initializing account store")
	}

	hasher, err := signup.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		logger.Fatal().Err(err).Msg("initializing hasher")
	}

	tokens, err := signup.NewTokenIssuer([]byte(cfg.SigningSecret), cfg.TokenTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("initializing token issuer")
	}

	avatars := signup.NewAvatarResolver(cfg.AvatarSize, cfg.AvatarRating, cfg.AvatarDefault)

	svc := signup.NewService(accounts, hasher, avatars, tokens, &logEvents{logger: logger})

	router := httprouter.New()
	router.Handler(http.MethodPost, "/v1/accounts", signup.RegisterAccountHandler(svc, logger))

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: router}

	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", cfg.ListenAddr).Str("storage", cfg.Storage).Msg("server started")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func newRepository(ctx context.Context, cfg *signup.Config, logger zerolog.Logger) (signup.Repository, error) {
	switch cfg.Storage {
	case signup.StorageMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, err
		}
		if err := client.Ping(connectCtx, nil); err != nil {
			return nil, err
		}
		c := client.Database("signup").Collection("accounts")
		return signup.NewMongoAccountRepository(connectCtx, c)
	case signup.StoragePostgres:
		return signup.NewPostgresAccountRepository(ctx, cfg.DatabaseDSN)
	default:
		logger.Warn().Msg("using in-memory account store; accounts will not survive a restart")
		return signup.NewAccountRepository(), nil
	}
}
