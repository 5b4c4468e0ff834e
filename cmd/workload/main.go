package main

import (
	"context"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/dtroode/sesn-compliance/internal/api/grpc/rpc"
	"github.com/dtroode/sesn-compliance/internal/config"
	"github.com/dtroode/sesn-compliance/internal/logger"
	"github.com/dtroode/sesn-compliance/internal/token"
	"github.com/dtroode/sesn-compliance/internal/workload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	cfg, err := config.NewWorkloadConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	accessToken, err := token.NewJWT(cfg.JWT.Secret, 24*time.Hour).GenerateAccessToken(cfg.Caller)
	if err != nil {
		logger.Fatal("failed to issue access token", "error", err)
	}

	conn, err := grpc.NewClient(cfg.Target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		logger.Fatal("failed to create grpc client", "error", err, "target", cfg.Target)
	}
	defer conn.Close()

	if err := os.MkdirAll(filepath.Dir(cfg.Output), 0o755); err != nil {
		logger.Fatal("failed to create output directory", "error", err)
	}
	out, err := os.Create(cfg.Output)
	if err != nil {
		logger.Fatal("failed to create output file", "error", err, "path", cfg.Output)
	}
	defer out.Close()

	rec, err := workload.NewCSVRecorder(out)
	if err != nil {
		logger.Fatal("failed to start recorder", "error", err)
	}

	seed := uint64(time.Now().UnixNano())
	driver := workload.NewDriver(
		rpc.NewClient(conn, accessToken),
		cfg.Concurrency,
		cfg.Timeout,
		rand.New(rand.NewPCG(seed, seed>>1)),
		logger,
	)

	users, err := driver.Seed(ctx, workload.GenerateUsers(rand.New(rand.NewPCG(seed, 7)), cfg.Users))
	if err != nil {
		logger.Fatal("failed to seed users", "error", err)
	}

	if _, err := driver.Run(ctx, users, cfg.Levels, rec); err != nil {
		_ = rec.Flush()
		logger.Fatal("workload aborted", "error", err)
	}

	logger.Info("workload complete", "output", cfg.Output)
}
