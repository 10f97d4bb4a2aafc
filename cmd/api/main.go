package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mindtone-labs/mindtone/backend/internal/config"
	"github.com/mindtone-labs/mindtone/backend/internal/handler"
	"github.com/mindtone-labs/mindtone/backend/internal/model/topic"
	"github.com/mindtone-labs/mindtone/backend/internal/service/ai"
	"github.com/mindtone-labs/mindtone/backend/internal/service/conversation"
	"github.com/mindtone-labs/mindtone/backend/internal/service/journal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Topic catalogue: built-in seed, optionally overridden from YAML.
	topics := topic.Seed()
	if cfg.Storage.TopicsFile != "" {
		loaded, err := topic.LoadFile(cfg.Storage.TopicsFile)
		if err != nil {
			log.Printf("warning: failed to load topics file, using built-in catalogue: %v", err)
		} else {
			topics = loaded
			log.Printf("loaded %d topics from %s", len(loaded), cfg.Storage.TopicsFile)
		}
	}
	topicStore := topic.NewMemoryStore(topics)

	conversations := conversation.NewService()

	journalStore := journal.NewStore(cfg.Storage.DataDir)
	if !journalStore.EnsureInitialized() {
		log.Fatalf("journal storage location %s is not writable", cfg.Storage.DataDir)
	}

	// AI is optional: without a credential the service runs degraded and
	// every model-backed operation returns placeholder text.
	var aiService *ai.Service
	if cfg.AI.Enabled() {
		aiService, err = ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without AI functionality - 请检查 Ark 模型相关环境变量")
		} else {
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("Ark 凭证未配置，跳过 AI 功能初始化")
	}

	router := handler.NewRouter(topicStore, conversations, journalStore, aiService)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Mindtone backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
