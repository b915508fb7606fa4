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

	"ember-scriptorium/infrastructure/cache"
	openaiclient "ember-scriptorium/infrastructure/clients/openai"
	"ember-scriptorium/infrastructure/configuration"
	"ember-scriptorium/infrastructure/logger"
	"ember-scriptorium/infrastructure/persistence"
	"ember-scriptorium/infrastructure/secrets"
	httpHandler "ember-scriptorium/interfaces/http"
	"ember-scriptorium/server"
	"ember-scriptorium/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	mongoDb, err := persistence.NewMongoDb(
		configuration.C.Database.Mongo.Host,
		configuration.C.Database.Mongo.Port,
		configuration.C.Database.Mongo.User,
		configuration.C.Database.Mongo.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("MongoDB initialization failed")
		os.Exit(1)
	}
	if err := mongoDb.Ping(ctx, nil); err != nil {
		logger.GetLogger().WithField("error", err).Error("MongoDB ping failed")
		os.Exit(1)
	}
	logger.GetLogger().Info("MongoDB connected successfully")

	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - continuing without draw guard")
		redisClient = nil
	}

	var cipher *secrets.Cipher
	if app.EncryptionKey != "" {
		cipher, err = secrets.NewCipher(app.EncryptionKey)
		if err != nil {
			logger.GetLogger().WithField("error", err).Error("Settings cipher initialization failed")
			os.Exit(1)
		}
	} else {
		logger.GetLogger().Warn("No encryption key configured - settings endpoints will reject writes")
	}

	dbName := configuration.C.Database.Mongo.Name
	quoteRepository := persistence.NewQuoteRepository(mongoDb, dbName)
	postRepository := persistence.NewPostRepository(mongoDb, dbName)
	settingsRepository := persistence.NewSettingsRepository(mongoDb, dbName)

	generatorFactory := openaiclient.NewFactory(
		configuration.C.OpenAI.BaseURL,
		configuration.C.OpenAI.ImageModel,
		configuration.C.OpenAI.ChatModel,
	)

	drawGuard := cache.NewDrawGuard(redisClient)
	quoteUsecase := usecase.NewQuoteUsecase(quoteRepository, drawGuard)
	settingsUsecase := usecase.NewSettingsUsecase(settingsRepository, cipher)
	synthesizer := usecase.NewSynthesizer(settingsUsecase, generatorFactory.Client)
	postUsecase := usecase.NewPostUsecase(postRepository, quoteUsecase, synthesizer)

	quoteHandler := httpHandler.NewQuoteHandler(quoteUsecase)
	postHandler := httpHandler.NewPostHandler(postUsecase)
	settingsHandler := httpHandler.NewSettingsHandler(settingsUsecase)

	router := server.InitiateRouter(quoteHandler, postHandler, settingsHandler, app.SecretKey)

	port := app.Port
	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}
	if err := mongoDb.Disconnect(shutdownCtx); err != nil {
		logger.GetLogger().WithField("error", err).Warn("MongoDB disconnect failed")
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
