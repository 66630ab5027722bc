// README: Entry point; loads config, wires services, starts the HTTP server.
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

	"go.uber.org/zap"

	"roam/internal/ai"
	"roam/internal/amadeus"
	"roam/internal/config"
	httptransport "roam/internal/http"
	"roam/internal/infra"
	"roam/internal/maps"
	"roam/internal/modules/community"
	"roam/internal/modules/session"
	"roam/internal/modules/usage"
	"roam/internal/modules/user"
	"roam/internal/service"
	"roam/internal/travel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}
	defer dbPool.Close()

	// Redis is optional; without it sessions and reset tokens live in process
	// memory, which is fine for a single instance.
	var sessionStore session.Store
	var resetTokens user.ResetTokens
	if cfg.Redis.Addr != "" {
		redisClient := infra.NewRedis(cfg.Redis.Addr)
		sessionStore = session.NewRedisStore(redisClient)
		resetTokens = user.NewRedisResetTokens(redisClient)
	} else {
		lruStore, err := session.NewLRUStore()
		if err != nil {
			logger.Fatal("session store init", zap.Error(err))
		}
		sessionStore = lruStore
		resetTokens = user.NewMemoryResetTokens()
		logger.Info("redis not configured, using in-memory sessions")
	}
	sessions := session.NewManager(sessionStore)

	userStore := user.NewStore(dbPool)
	users := user.NewService(userStore, resetTokens, cfg.Auth.JWTSecret, cfg.Auth.TokenHours)

	communityStore := community.NewStore(dbPool)
	communitySvc := community.NewService(communityStore)

	usageStore := usage.NewStore(dbPool)
	quota := usage.NewService(usageStore)

	placesSvc, err := maps.NewPlacesService(cfg.Maps.GoogleKey)
	if err != nil {
		logger.Fatal("places service init", zap.Error(err))
	}
	geocodeSvc, err := maps.NewGeocodeService(cfg.Maps.GoogleKey)
	if err != nil {
		logger.Fatal("geocode service init", zap.Error(err))
	}

	directionsSvc, err := maps.NewDirectionsService(cfg.Maps.GoogleKey)
	if err != nil {
		logger.Fatal("directions service init", zap.Error(err))
	}

	amadeusClient := amadeus.NewClient(cfg.Amadeus.Key, cfg.Amadeus.Secret, cfg.Amadeus.Env, logger)
	builder := travel.NewBuilder(amadeusClient, placesSvc, logger).WithDirections(directionsSvc)

	provider := newProvider(ctx, cfg, logger)

	chat := service.NewChatService(service.ChatConfig{
		Provider:        provider,
		Builder:         builder,
		Places:          placesSvc,
		Sessions:        sessions,
		Users:           users,
		Quota:           quota,
		DefaultLanguage: cfg.Chat.DefaultLanguage,
		Log:             logger,
	})

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Chat:              chat,
		Users:             users,
		Community:         communitySvc,
		Sessions:          sessions,
		Builder:           builder,
		Places:            placesSvc,
		Geocode:           geocodeSvc,
		ChatRatePerMinute: cfg.Chat.RatePerMinute,
		Log:               logger,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serve", zap.Error(err))
	}
}

// newProvider picks the configured LLM backend. A nil return means the chat
// service runs on its deterministic fallback templates only.
func newProvider(ctx context.Context, cfg config.Config, logger *zap.Logger) ai.Provider {
	switch cfg.AI.Provider {
	case "openai":
		if cfg.AI.OpenAIKey == "" {
			logger.Warn("OPENAI_API_KEY not set, chat falls back to templates")
			return nil
		}
		return ai.NewOpenAIProvider(cfg.AI.OpenAIKey, cfg.AI.OpenAIModel)
	case "gemini":
		if cfg.AI.GeminiKey == "" {
			logger.Warn("GEMINI_API_KEY not set, chat falls back to templates")
			return nil
		}
		provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
		if err != nil {
			logger.Warn("gemini init failed, chat falls back to templates", zap.Error(err))
			return nil
		}
		return provider
	case "off":
		return nil
	default:
		logger.Warn("unknown AI provider, chat falls back to templates",
			zap.String("provider", cfg.AI.Provider))
		return nil
	}
}
