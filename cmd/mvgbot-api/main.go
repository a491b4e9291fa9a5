// README: Entry point; loads config, wires the NLU, providers, engine, and HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mvgbot/internal/bot"
	"mvgbot/internal/config"
	httptransport "mvgbot/internal/http"
	"mvgbot/internal/infra"
	mapsprovider "mvgbot/internal/maps"
	"mvgbot/internal/modules/usage"
	"mvgbot/internal/mvg"
	"mvgbot/internal/nlu"
	"mvgbot/internal/transit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recognizer, err := nlu.NewGeminiRecognizer(ctx, cfg.NLU.GeminiKey)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer recognizer.Close()

	var provider transit.Provider
	switch cfg.Transit.Provider {
	case "google":
		if cfg.Transit.MapsKey == "" {
			log.Fatal("MAPS_API_KEY is required for the google provider")
		}
		provider, err = mapsprovider.NewProvider(cfg.Transit.MapsKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
	case "mvg":
		provider = mvg.NewClient(cfg.Transit.BaseURL)
	default:
		log.Fatalf("unknown transit provider %q", cfg.Transit.Provider)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	searcher := transit.NewCachedSearcher(provider, redisClient,
		time.Duration(cfg.Transit.CacheTTLMinutes)*time.Minute)

	var usageSvc *usage.Service
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
		usageSvc = usage.NewService(usage.NewStore(dbPool))
	}

	tz, err := time.LoadLocation(cfg.Transit.Timezone)
	if err != nil {
		log.Fatalf("load timezone %q: %v", cfg.Transit.Timezone, err)
	}

	deps := bot.Deps{
		Recognizer: recognizer,
		Searcher:   searcher,
		Querier:    provider,
		Timezone:   tz,
	}
	if usageSvc != nil {
		deps.Usage = usageSvc
	}
	engine := bot.New(deps)
	bot.RegisterBuiltins(engine)

	serverDeps := httptransport.ServerDeps{Bot: engine}
	if usageSvc != nil {
		serverDeps.Usage = usageSvc
	}
	handler := httptransport.NewServer(serverDeps)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("mvgbot listening on %s (provider=%s)", cfg.HTTP.Addr, cfg.Transit.Provider)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
