package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/iprilbot/ipril/config"
	"github.com/iprilbot/ipril/internal/adapter/detector"
	"github.com/iprilbot/ipril/internal/adapter/llm"
	tgadapter "github.com/iprilbot/ipril/internal/adapter/telegram"
	"github.com/iprilbot/ipril/internal/service"
	"github.com/iprilbot/ipril/internal/session"
	"github.com/iprilbot/ipril/internal/store"
	opshttp "github.com/iprilbot/ipril/internal/transport/http"
	tgtransport "github.com/iprilbot/ipril/internal/transport/telegram"
)

func main() {
	// Load configuration
	godotenv.Load(".env")
	cfg := config.Load()

	if cfg.BotToken == "" {
		log.Fatalf("BOT_TOKEN is required")
	}
	if cfg.DeepSeekAPIKey == "" && os.Getenv(llm.EnvIprilMode) != llm.ModeMock {
		log.Fatalf("DEEPSEEK_API_KEY is required")
	}

	log.Printf("Starting ipril...")
	log.Printf("Completion endpoint: %s (model %s)", cfg.DeepSeekBaseURL, cfg.Model)
	log.Printf("Language snapshot: %s", cfg.DataFile)
	log.Printf("Conversation archive: %s", cfg.ArchiveDatabase)

	// Initialize persistence
	snapshot := store.NewFileSnapshot(cfg.DataFile)
	if err := snapshot.Backup(cfg.BackupDir); err != nil {
		log.Printf("WARN: failed to back up language snapshot: %v", err)
	}

	archive, err := store.NewSQLiteArchive(cfg.ArchiveDatabase)
	if err != nil {
		log.Fatalf("Failed to open conversation archive: %v", err)
	}
	defer archive.Close()

	// Initialize Telegram client
	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("Failed to authorize bot: %v", err)
	}
	log.Printf("Authorized as @%s", botAPI.Self.UserName)

	// Initialize collaborators
	llmClient := llm.NewCompletionClient(cfg.DeepSeekBaseURL, cfg.DeepSeekAPIKey, cfg.LLMTimeout)
	det := detector.NewLinguaDetector()
	messenger := tgadapter.NewBotMessenger(botAPI)

	// Initialize service
	svc := service.New(session.NewStore(), llmClient, det, messenger, snapshot, archive, cfg)
	if err := svc.RestoreLanguages(); err != nil {
		log.Printf("WARN: failed to load language snapshot: %v", err)
	}

	// Create ops server
	h := opshttp.NewHandler(svc)
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	h.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.AdminPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start ops server: %v", err)
		}
	}()
	log.Printf("Ops server started on port %d", cfg.AdminPort)

	// Start the update poller
	poller := tgtransport.NewPoller(botAPI, svc)
	pollCtx, cancel := context.WithCancel(context.Background())
	go poller.Run(pollCtx)
	log.Printf("Polling for updates")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down ipril...")
	cancel()

	if !poller.Wait(cfg.ShutdownGrace) {
		log.Printf("WARN: abandoning in-flight handlers after %s", cfg.ShutdownGrace)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown ops server gracefully: %v", err)
	}

	log.Println("Ipril stopped")
}
