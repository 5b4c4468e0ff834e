package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	grpcctx "github.com/dtroode/sesn-compliance/internal/api/grpc/context"
	"github.com/dtroode/sesn-compliance/internal/api/grpc/router"
	grpcServer "github.com/dtroode/sesn-compliance/internal/api/grpc/server"
	"github.com/dtroode/sesn-compliance/internal/api/httpapi"
	"github.com/dtroode/sesn-compliance/internal/config"
	"github.com/dtroode/sesn-compliance/internal/keymaterial"
	"github.com/dtroode/sesn-compliance/internal/logger"
	"github.com/dtroode/sesn-compliance/internal/model"
	"github.com/dtroode/sesn-compliance/internal/repository/postgres"
	"github.com/dtroode/sesn-compliance/internal/server"
	"github.com/dtroode/sesn-compliance/internal/service"
	vault "github.com/dtroode/sesn-compliance/internal/storage/minio"
	"github.com/dtroode/sesn-compliance/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	minioClient, err := minio.New(cfg.Vault.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Vault.AccessKey, cfg.Vault.SecretKey, ""),
		Secure: cfg.Vault.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	keyVault, err := vault.NewVault(ctx, minioClient, cfg.Vault.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize key vault", "error", err)
	}

	signer, err := keymaterial.NewSigner(cfg.Ledger.SigningSeed)
	if err != nil {
		logger.Fatal("failed to initialize ledger signer", "error", err)
	}
	if cfg.Ledger.SigningSeed == "" {
		logger.Warn("LEDGER_SIGNING_SEED is empty, ledger events are signed with an ephemeral key")
	}
	trustedKeys, err := keymaterial.ParseTrustedKeys(cfg.Ledger.TrustedKeys)
	if err != nil {
		logger.Fatal("failed to parse trusted ledger keys", "error", err)
	}

	compliance := service.NewCompliance(
		keyVault,
		postgres.NewUserRepository(db),
		postgres.NewLedgerRepository(db, signer),
		keymaterial.NewTrustedKeys(append(trustedKeys, signer.PublicKey())...),
		logger.Component("compliance"),
	)

	tokenManager := token.NewJWT(cfg.JWT.Secret, token.DefaultTTL)
	grpcSrv := registerGRPCServer(logger, compliance, tokenManager, grpcctx.NewManager(), fmt.Sprintf(":%s", cfg.GRPC.Port))
	httpSrv := httpapi.NewServer(httpapi.NewRouter(db, buildVersion, logger), fmt.Sprintf(":%s", cfg.HTTP.Port))

	grpcSecurity := server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	servers := map[model.Server]model.SecurityLayer{
		grpcSrv: grpcSecurity,
		httpSrv: server.NewPlainListener(),
	}

	var wg sync.WaitGroup
	for s, sl := range servers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}()
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerGRPCServer(
	logger *logger.Logger,
	compliance *service.Compliance,
	tokenManager model.TokenManager,
	ctxMgr model.ContextManager,
	addr string,
) *grpcServer.GRPCServer {
	r := router.New(compliance, tokenManager, ctxMgr, logger)
	return grpcServer.NewGRPCServer(r.Register(), addr)
}
