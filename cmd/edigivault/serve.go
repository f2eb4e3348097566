package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edigivault/internal/db"
	"edigivault/internal/draft"
	"edigivault/internal/gateway"
	"edigivault/internal/server"
	"edigivault/internal/session"
	"edigivault/internal/storage"
	"edigivault/internal/store"
	"edigivault/pkg/types"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	projectRepo := store.NewProjectRepository(pool)
	propertyRepo := store.NewPropertyRepository(pool)
	requestRepo := store.NewServiceRequestRepository(pool)
	documentRepo := store.NewDocumentRepository(pool)
	activityRepo := store.NewActivityRepository(pool)
	transactionRepo := store.NewTransactionRepository(pool)
	profileRepo := store.NewProfileRepository(pool)

	objectStorage, err := buildStorage(ctx, config)
	if err != nil {
		return err
	}

	drafts := buildDraftStore(config, logger)

	gw := gateway.New(
		logger,
		projectRepo,
		propertyRepo,
		requestRepo,
		documentRepo,
		activityRepo,
		transactionRepo,
		profileRepo,
		objectStorage,
	)

	jwkCache, err := jwk.NewCache(context.Background(), httprc.NewClient())
	if err != nil {
		return fmt.Errorf("failed to initialize jwk cache: %w", err)
	}

	jwksURL := fmt.Sprintf("%s/.well-known/jwks.json", config.AuthIssuerURL)

	err = jwkCache.Register(context.Background(), jwksURL)
	if err != nil {
		return fmt.Errorf("failed to register jwks url with cache: %w", err)
	}

	sessions := session.NewManager(logger, jwkCache, jwksURL)
	auth := session.NewAuthClient(config.AuthBaseURL, config.AuthAPIKey)

	srv, err := server.New(config, logger, gw, drafts, sessions, auth)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}

func buildStorage(ctx context.Context, config *types.Config) (storage.ObjectStorage, error) {
	switch config.StorageProvider {
	case "supabase":
		if config.SupabaseProjectID == "" || config.SupabaseAPIKey == "" {
			return nil, fmt.Errorf("set SUPABASE_PROJECT_ID and SUPABASE_API_KEY for supabase storage")
		}
		return storage.NewSupabaseStorage(config.SupabaseProjectID, config.SupabaseAPIKey, config.StorageBucketName), nil

	case "s3":
		awsConfig, err := loadAWSConfig(ctx)
		if err != nil {
			return nil, err
		}
		s3Client := s3.NewFromConfig(awsConfig)
		return storage.NewS3Storage(s3Client, config.StorageBucketName, config.StoragePublicBase), nil

	default:
		return nil, fmt.Errorf("unknown storage provider %q", config.StorageProvider)
	}
}

func buildDraftStore(config *types.Config, logger *logrus.Logger) draft.Store {
	if config.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, draft state will not survive restarts")
		return draft.NewMemory()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	})

	return draft.NewRedis(client, logger, time.Duration(config.DraftTTLSec)*time.Second)
}
