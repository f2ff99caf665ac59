package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"asuka-bot/internal/ai"
	"asuka-bot/internal/config"
	"asuka-bot/internal/engine"
	"asuka-bot/internal/logging"
	"asuka-bot/internal/mind"
	"asuka-bot/internal/storage"
	"asuka-bot/internal/telegram"
	"asuka-bot/pkg/jobmgr"
	"asuka-bot/pkg/retrylimit"
)

const snapshotInterval = 5 * time.Minute

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogFile)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run(cfg *config.Config) error {
	registry, err := ai.BuildRegistry(cfg.PrimaryModels, cfg.FallbackModels, ai.BuildOptions{
		SiteURL:    cfg.SiteURL,
		SiteName:   cfg.SiteName,
		GoogleKey:  cfg.GoogleAIKey,
		OllamaHost: cfg.OllamaHost,
	})
	if err != nil {
		return fmt.Errorf("build model registry: %w", err)
	}

	limiter := retrylimit.NewAdaptiveLimiter(5, 1, 20, 1, 0.5)
	failover := ai.NewFailover(registry, cfg.OpenRouterKeys, limiter, cfg.HealthCacheTTL)

	messages, err := storage.New(cfg.StorageBackend, storage.Options{
		DatabasePath: cfg.DatabasePath,
		RedisAddr:    cfg.RedisAddr,
	})
	if err != nil {
		return fmt.Errorf("open message store: %w", err)
	}
	defer messages.Close()

	minds, err := mind.NewStore(cfg.SnapshotPath, mind.NewRand())
	if err != nil {
		return fmt.Errorf("open persona store: %w", err)
	}
	defer minds.Close()

	eng := engine.New(minds, messages, failover, limiter, cfg.GenerateTimeout)
	tg := telegram.NewClient(cfg.BotToken)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobs := jobmgr.NewManager()
	defer jobs.StopAll()
	if err := jobs.StartPeriodic(ctx, "persona-snapshots", snapshotInterval, func(context.Context) error {
		minds.SnapshotAll()
		return nil
	}); err != nil {
		return fmt.Errorf("start snapshot job: %w", err)
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "pong handled=%d fallbacks=%d hooks=%d interruptions=%d\n",
			eng.Stats.MessagesHandled.Load(),
			eng.Stats.FallbacksServed.Load(),
			eng.Stats.HookHits.Load(),
			eng.Stats.Interruptions.Load())
	})

	router.Post("/"+cfg.BotToken, func(w http.ResponseWriter, r *http.Request) {
		update, err := telegram.ParseUpdate(r.Body)
		if err != nil {
			log.Warn().Err(err).Msg("bad webhook payload")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		// Ack immediately so Telegram does not redeliver while we generate.
		w.WriteHeader(http.StatusOK)
		go handleUpdate(ctx, eng, tg, update)
	})

	server := &http.Server{Addr: cfg.ListenAddr, Handler: router}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("webhook server up")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func handleUpdate(ctx context.Context, eng *engine.Engine, tg *telegram.Client, update telegram.Update) {
	msg := update.Message
	if msg == nil || msg.Chat.Type != "private" {
		return
	}
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	if strings.HasPrefix(text, "/start") {
		if err := tg.Send(ctx, chatID, eng.Greet(ctx, chatID)); err != nil {
			log.Error().Int64("chat_id", chatID).Err(err).Msg("greeting delivery failed")
		}
		return
	}

	tg.Typing(ctx, chatID)
	reply := eng.GenerateReply(ctx, chatID, text)
	if err := tg.Send(ctx, chatID, reply); err != nil {
		log.Error().Int64("chat_id", chatID).Err(err).Msg("reply delivery failed")
	}
}
