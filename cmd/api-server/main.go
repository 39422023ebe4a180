// Package main API 服务入口
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

	"autoslidex-api/internal/application/outline"
	"autoslidex-api/internal/application/pptx"
	"autoslidex-api/internal/application/presentation"
	"autoslidex-api/internal/config"
	"autoslidex-api/internal/domain/repository"
	"autoslidex-api/internal/infrastructure/imagesearch"
	"autoslidex-api/internal/infrastructure/llm"
	"autoslidex-api/internal/infrastructure/persistence/memory"
	redisstore "autoslidex-api/internal/infrastructure/persistence/redis"
	"autoslidex-api/internal/infrastructure/storage"
	"autoslidex-api/internal/interfaces/http/handler"
	"autoslidex-api/internal/interfaces/http/router"
	"autoslidex-api/pkg/logger"
	"autoslidex-api/pkg/tracer"
)

// Version 版本信息，构建时注入
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件（如果存在）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(
		cfg.Observability.Logging.Level,
		cfg.Observability.Logging.Format,
	)

	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Info("starting api-server",
		"version", Version,
		"build_time", BuildTime,
		"env", cfg.App.Env,
	)

	shutdownTracer, err := tracer.Init(ctx, tracer.Config{
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		log.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracer(ctx); err != nil {
			log.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// 存储层：配置了 Redis 则使用，否则回退进程内存储
	var (
		repo        repository.PresentationRepository
		healthStore handler.HealthChecker
	)
	if cfg.Cache.Redis.Host != "" {
		client, err := redisstore.NewClient(&cfg.Cache.Redis)
		if err != nil {
			logger.Fatal(ctx, "failed to connect redis", err)
		}
		defer client.Close()
		repo = redisstore.NewPresentationRepo(client)
		healthStore = client
		log.Info("using redis store", "host", cfg.Cache.Redis.Host, "port", cfg.Cache.Redis.Port)
	} else {
		repo = memory.NewPresentationRepo()
		log.Warn("redis not configured, using in-memory store")
	}

	// 生成管线
	factory := llm.NewFactory(cfg)
	generator := llm.NewGenerator(factory, cfg)
	classifier := outline.NewClassifier(cfg.Pipeline.SimilarityDetect, cfg.Pipeline.SimilarityRegen)
	builder := outline.NewBuilder(generator, classifier, cfg.Pipeline.MaxAttempts, cfg.Pipeline.MaxSlides)

	// 渲染管线
	images := imagesearch.NewChain(&cfg.ImageSearch)
	renderer := pptx.NewRenderer(images)
	store := storage.NewLocalStorage(cfg.Storage.Local.Dir)

	svc := presentation.NewService(repo, builder, renderer, store)

	ph := handler.NewPresentationHandler(svc)
	sh := handler.NewSystemHandler(cfg.App.Name, cfg.App.Version, svc, healthStore)
	r := router.New(cfg, ph, sh)

	addr := fmt.Sprintf("%s:%d", cfg.Server.HTTP.Host, cfg.Server.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
		IdleTimeout:  cfg.Server.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("http server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
