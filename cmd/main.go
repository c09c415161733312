package main

import (
	"Cook-App-Backend/cmd/config"
	"Cook-App-Backend/internal/utils"
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	utils.LoadConfig()

	log, err := utils.NewLogger(utils.GetConfig("LOG_LEVEL"))
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, shutdown, err := config.NewApp(ctx, log)
	if err != nil {
		log.Fatal("failed to build app", zap.Error(err))
	}
	defer shutdown()

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + utils.GetConfig("APP_PORT")
	log.Info("listening", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Error("server stopped", zap.Error(err))
	}
}
