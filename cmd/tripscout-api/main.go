// README: Entry point; loads config, wires the dialogue services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripscout/internal/ai"
	"tripscout/internal/config"
	httptransport "tripscout/internal/http"
	"tripscout/internal/infra"
	"tripscout/internal/maps"
	"tripscout/internal/modules/calendar"
	"tripscout/internal/modules/conversation"
	"tripscout/internal/modules/querylog"
	"tripscout/internal/modules/queryplan"
	"tripscout/internal/modules/search"
	"tripscout/internal/modules/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, closeLog := config.SetupLogger(cfg.Log.File, config.ParseLogLevel(cfg.Log.Level))
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatalf("postgres init: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		log.Fatalf("redis init: %v", err)
	}
	defer redisClient.Close()

	oracle, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer oracle.Close()

	var resolver conversation.DestinationResolver
	if cfg.Maps.APIKey != "" {
		places, err := maps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		resolver = places
	}

	var sessionStore session.Store
	switch cfg.Session.Backend {
	case "redis":
		sessionStore = session.NewRedisStore(redisClient)
	case "memory":
		sessionStore = session.NewMemoryStore()
	default:
		log.Fatalf("unknown session backend %q", cfg.Session.Backend)
	}

	generator := queryplan.NewGenerator(calendar.NewService(), cfg.Generator)

	chatSvc := conversation.NewService(conversation.Deps{
		Store:      sessionStore,
		Oracle:     oracle,
		Generator:  generator,
		Dispatcher: search.NewRedisDispatcher(redisClient),
		QueryLog:   querylog.NewStore(dbPool),
		Resolver:   resolver,
		Logger:     logger,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: httptransport.NewRouter(chatSvc, logger)}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info("server starting", "addr", cfg.HTTP.Addr, "session_backend", cfg.Session.Backend)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
