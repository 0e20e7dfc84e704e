package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/avolkov/go-tether-sync/internal/adapter"
	"github.com/avolkov/go-tether-sync/internal/client"
	"github.com/avolkov/go-tether-sync/internal/config"
	"github.com/avolkov/go-tether-sync/internal/discovery"
	"github.com/avolkov/go-tether-sync/internal/gallery"
	"github.com/avolkov/go-tether-sync/internal/imagecache"
	"github.com/avolkov/go-tether-sync/internal/logger"
	"github.com/avolkov/go-tether-sync/internal/poller"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("tether-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	api := adapter.NewSessionClient(cfg.Adapter, log.GetChildLogger("adapter"))

	cache, err := imagecache.New(cfg.Cache, api, log.GetChildLogger("imagecache"))
	if err != nil {
		log.Fatal().Err(err).Msg("create image cache")
	}

	notifier := client.NewPrefetchNotifier(cache, log.GetChildLogger("prefetch"))
	engine := gallery.New(log.GetChildLogger("gallery"), notifier, cache)
	loop := poller.New(api, log.GetChildLogger("poller"))

	provider, err := discovery.NewStaticProvider(cfg.Discovery)
	if err != nil {
		log.Fatal().Err(err).Msg("create discovery provider")
	}

	app := client.NewApp(api, loop, engine, cache, provider, log.GetChildLogger("client"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx, cfg.Server); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
