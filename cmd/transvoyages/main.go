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

	"golang.org/x/sync/errgroup"

	"github.com/mbella/transvoyages/internal/auth"
	"github.com/mbella/transvoyages/internal/config"
	"github.com/mbella/transvoyages/internal/db"
	"github.com/mbella/transvoyages/internal/excel"
	httphandler "github.com/mbella/transvoyages/internal/http"
	"github.com/mbella/transvoyages/internal/http/middleware"
	"github.com/mbella/transvoyages/internal/logger"
	"github.com/mbella/transvoyages/internal/pdf"
	"github.com/mbella/transvoyages/internal/realtime"
	"github.com/mbella/transvoyages/internal/repository"
	"github.com/mbella/transvoyages/internal/service"
	"github.com/mbella/transvoyages/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	voyageRepo := repository.NewVoyageRepository(database)
	userRepo := repository.NewUserRepository(database)
	agencyRepo := repository.NewAgencyRepository(database)
	messageRepo := repository.NewMessageRepository(database)

	tokens := auth.NewManager(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)
	hub := realtime.NewHub(tokens, log)

	files, err := storage.NewStore(cfg.Storage.UploadDir, cfg.Storage.URLSecret, cfg.Storage.URLTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init file storage")
	}

	authService := service.NewAuthService(userRepo, tokens)
	voyageService := service.NewVoyageService(voyageRepo, hub)
	statsService := service.NewStatsService(voyageRepo, pdf.NewGenerator(), excel.NewGenerator(), nil)
	personnelService := service.NewPersonnelService(userRepo, hub)
	agencyService := service.NewAgencyService(agencyRepo, hub)
	chatService := service.NewChatService(messageRepo, hub)

	handler := httphandler.NewHandler(
		authService,
		voyageService,
		statsService,
		personnelService,
		agencyService,
		chatService,
		files,
		hub,
		log,
	)
	router := httphandler.NewRouter(handler, middleware.Auth(tokens), log, cfg.Environment, cfg.HTTP.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info().Str("addr", addr).Msg("starting transvoyages service")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
