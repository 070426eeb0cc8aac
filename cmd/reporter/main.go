package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"wallet-balances-reporter/internal/bootstrap"
	"wallet-balances-reporter/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "optional YAML config file")
	flag.Parse()
	log := logx.L()
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := bootstrap.InitReporterApp(ctx, bootstrap.ConfigPath(*configPath))
	if err != nil {
		log.Fatal("init reporter", zap.Error(err))
	}
	err = app.Run(ctx)
	cleanup()
	if err != nil {
		log.Fatal("reporter run failed", zap.Error(err))
	}
}
