package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/stockforge/stockforge/internal/app"
	"github.com/stockforge/stockforge/internal/common"
	"github.com/stockforge/stockforge/internal/server"
)

func main() {
	// Best-effort .env loading for local development.
	_ = godotenv.Load()

	// Bootstrap logger for failures before the configured one exists.
	bootLog := common.NewDefaultLogger()

	a, err := app.NewApp(os.Getenv("STOCKFORGE_CONFIG"))
	if err != nil {
		bootLog.Fatal().Err(err).Msg("Failed to initialize app")
	}

	common.PrintBanner(a.Config, a.Logger)

	srv := server.NewServer(a)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			a.Logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	a.Logger.Info().
		Str("url", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)).
		Msg("Server ready")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	a.Logger.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		a.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	if err := a.Close(); err != nil {
		a.Logger.Error().Err(err).Msg("App shutdown failed")
	}

	common.PrintShutdownBanner(a.Logger)
}
