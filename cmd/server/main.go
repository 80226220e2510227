package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"smilescript/backend/internal/config"
	"smilescript/backend/internal/db"
	"smilescript/backend/internal/handler"
	transport "smilescript/backend/internal/http"
	"smilescript/backend/internal/logger"
	"smilescript/backend/internal/repository"
	"smilescript/backend/internal/service"
	"smilescript/backend/internal/service/ai"
	"smilescript/backend/internal/snowflake"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if err := snowflake.Init(1); err != nil {
		log.Fatalf("init snowflake: %v", err)
	}

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer dbConn.Close()

	commLogRepo := repository.NewCommLogRepository(dbConn)

	rateLimiter := ai.NewRateLimiter(cfg.AI.RateLimit)
	summarizer := service.NewSummarizer(cfg.AI, rateLimiter)
	commLogService := service.NewCommLogService(commLogRepo, summarizer)

	commLogHandler := handler.NewCommLogHandler(commLogService)

	router := transport.NewRouter(commLogHandler, cfg.StaticDir)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("shutting down...")
		os.Exit(0)
	}()

	logger.Info("server starting",
		"module", "main", "action", "start", "resource", "http", "result", "ok",
		"addr", cfg.Addr, "ai_enabled", cfg.AI.Enabled)
	if err := router.Start(cfg.Addr); err != nil {
		log.Fatalf("start server: %v", err)
	}
}
