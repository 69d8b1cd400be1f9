// Package main API Server 入口
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nassnews/internal/config"
	"nassnews/internal/credential"
	"nassnews/internal/events"
	"nassnews/internal/favorites"
	"nassnews/internal/geo"
	"nassnews/internal/news"
	"nassnews/internal/profile"
	"nassnews/internal/seed"
	"nassnews/internal/shared/infra"
	"nassnews/pkg/logging"
)

func main() {
	// 加载配置（自动加载 .env，根据 APP_ENV 切换 YAML 配置）
	cfg := config.Load()

	log.Printf("Starting API Server... [env=%s]", cfg.Env)
	log.Printf("Config: %s", cfg.String())

	// 初始化 MongoDB + Redis（Redis 未启用时降级为 NoOp 缓存）
	redisURL := ""
	if cfg.RedisEnabled {
		redisURL = cfg.RedisURL
	}
	infraLayer, err := infra.New(cfg.MongoURI, cfg.MongoDatabase, redisURL)
	if err != nil {
		log.Fatalf("Failed to initialize infrastructure: %v", err)
	}
	defer infraLayer.Close()
	log.Println("Connected to MongoDB")

	// 组装服务
	resolver := geo.NewResolver(
		infraLayer.Storage,
		geo.NewNominatimClient(cfg.Geo.NominatimBaseURL, cfg.Geo.UserAgent, cfg.Geo.ProviderTimeout),
		geo.NewIpstackClient(cfg.Geo.IpstackBaseURL, cfg.IpstackAPIKey, cfg.Geo.ProviderTimeout),
		infraLayer.GeoCache,
		cfg.Geo.CacheTTL,
		logging.Default("geo"),
	)

	creds := credential.NewManager(
		infraLayer.Storage,
		credential.NewBcryptHasher(cfg.Auth.BcryptCost),
		credential.Config{ObscureNotFound: cfg.Auth.ObscureNotFound},
		logging.Default("credential"),
	)

	ledger := favorites.NewLedger(infraLayer.Storage, logging.Default("favorites"))

	tokenCfg := credential.TokenConfig{
		JWTSecret:       cfg.JWTSecret,
		AccessTokenTTL:  cfg.Auth.AccessTokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
	}

	profileSvc := profile.NewService(infraLayer.Storage, creds, ledger, resolver, tokenCfg, logging.Default("profile"))
	newsSvc := news.NewService(infraLayer.Storage, resolver, logging.Default("news"))
	eventsSvc := events.NewService(infraLayer.Storage, resolver, logging.Default("events"))

	// 首次启动填充演示数据
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	seeded, err := seed.NewSeeder(infraLayer.Storage, resolver, logging.Default("seed")).Run(startupCtx)
	if err != nil {
		log.Printf("Seeding failed: %v", err)
	} else if seeded > 0 {
		log.Printf("Seeded %d demo articles", seeded)
	}

	// 启动摘要
	users, _ := profileSvc.ListUsers(startupCtx)
	articles, _ := newsSvc.List(startupCtx)
	upcoming, _ := eventsSvc.List(startupCtx)
	log.Printf("Ready: %d users, %d articles, %d events", len(users), len(articles), len(upcoming))
	startupCancel()

	// 运维端点：健康检查 + Prometheus 指标
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 优雅关闭
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("API Server listening on :%s", cfg.APIPort)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server stopped")
}
