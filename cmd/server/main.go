package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/bootstrap"
	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/router"
	"github.com/skku-gallery/gallery/go-web-server/internal/scheduler"
	"github.com/skku-gallery/gallery/go-web-server/internal/seed"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/container"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/database"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/event"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/imagestore"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/mail"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/tokenstore"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/validator"
	"github.com/skku-gallery/gallery/go-web-server/internal/user"
	"github.com/skku-gallery/gallery/go-web-server/web"
)

func main() {
	// Parse command line flags
	env := parseFlags()

	// Initialize logger
	logger.Setup(env)
	slog.Info("서버 초기화 시작", "env", env)

	// Run application
	if err := run(env); err != nil {
		slog.Error("서버 초기화 실패", "error", err)
		os.Exit(1)
	}

	slog.Info("서버 종료 완료", "env", env)
}

// parseFlags parses command line arguments
func parseFlags() string {
	env := flag.String("env", "local", "Environment (local|dev|production)")
	flag.Parse()
	return *env
}

// run contains the main application logic
func run(env string) error {
	// Create root context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	slog.Info("환경 변수 로드 성공")

	// Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("데이터베이스 종료 실패", "error", err)
		}
	}()

	if cfg.Seed.Enabled {
		if _, err := seed.Run(ctx, db.DB, cfg); err != nil {
			return fmt.Errorf("시드 데이터 적재 실패: %w", err)
		}
	}

	storage, err := imagestore.New(cfg)
	if err != nil {
		return fmt.Errorf("이미지 스토리지 초기화 실패: %w", err)
	}

	tokens, closeTokens, err := tokenstore.New(cfg, db.DB)
	if err != nil {
		return fmt.Errorf("토큰 저장소 초기화 실패: %w", err)
	}
	defer func() {
		if err := closeTokens(); err != nil {
			slog.Error("토큰 저장소 종료 실패", "error", err)
		}
	}()

	publisher := event.NewPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Error("이벤트 발행기 종료 실패", "error", err)
		}
	}()

	// Setup server
	srv, c, err := setupServer(cfg, router.Dependencies{
		Config:    cfg,
		DB:        db,
		Storage:   storage,
		Tokens:    tokens,
		Mailer:    mail.New(cfg),
		Publisher: publisher,
		Static:    web.Static(),
	})
	if err != nil {
		return err
	}

	if cfg.Scheduler.Enabled {
		jobs := scheduler.New(cfg, container.MustResolve[*user.UserService](c, router.UserService), tokens)
		if err := jobs.Start(); err != nil {
			return fmt.Errorf("스케줄러 시작 실패: %w", err)
		}
		defer jobs.Stop()
	}

	// Start server with graceful shutdown
	return startWithGracefulShutdown(ctx, srv, cfg.Server.GracefulTimeout)
}

// setupServer initializes and configures the HTTP server
func setupServer(cfg *config.Config, deps router.Dependencies) (*bootstrap.Server, *container.Container, error) {
	// Register common validators
	if err := validator.RegisterAll(); err != nil {
		return nil, nil, fmt.Errorf("공통 Validator 등록 실패: %w", err)
	}

	views, err := web.NewResolver()
	if err != nil {
		return nil, nil, fmt.Errorf("템플릿 로드 실패: %w", err)
	}

	// Bootstrap server with common setup
	boot := bootstrap.NewBootstrap(cfg)
	ginEngine := boot.SetupEngine(views, router.StaticPrefixes(cfg)...)

	// Setup application-specific routes
	c := router.Setup(ginEngine, deps)

	slog.Info("서버 설정 완료",
		"env", cfg.App.Env,
		"db_driver", cfg.Database.Driver,
		"storage", cfg.Storage.Driver,
	)

	return bootstrap.New(cfg, ginEngine), c, nil
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func startWithGracefulShutdown(ctx context.Context, srv *bootstrap.Server, gracefulTimeout time.Duration) error {
	// Channel to receive server errors
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		serverErrors <- srv.Start()
	}()

	// Channel to receive OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for either server error or interrupt signal
	select {
	case err := <-serverErrors:
		// Server failed to start or stopped unexpectedly
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("서버 오류: %w", err)
		}
		return nil

	case sig := <-quit:
		// Received shutdown signal
		slog.Info("종료 신호 수신됨", "signal", sig.String())

		// Create shutdown context with timeout
		shutdownCtx, cancel := context.WithTimeout(ctx, gracefulTimeout)
		defer cancel()

		// Attempt graceful shutdown
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("서버 강제 종료: %w", err)
		}
		return nil
	}
}
