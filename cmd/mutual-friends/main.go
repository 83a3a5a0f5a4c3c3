package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-mutual-friends/internal/adapter"
	"github.com/MKhiriev/go-mutual-friends/internal/bundle"
	"github.com/MKhiriev/go-mutual-friends/internal/client"
	"github.com/MKhiriev/go-mutual-friends/internal/compress"
	"github.com/MKhiriev/go-mutual-friends/internal/config"
	"github.com/MKhiriev/go-mutual-friends/internal/crypto"
	"github.com/MKhiriev/go-mutual-friends/internal/logger"
	"github.com/MKhiriev/go-mutual-friends/internal/service"
	"github.com/MKhiriev/go-mutual-friends/internal/store"
	"github.com/MKhiriev/go-mutual-friends/internal/tui"
	"github.com/MKhiriev/go-mutual-friends/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	printBuildInfo()

	log := logger.NewClientLogger("mutual-friends", "")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Error().Err(err).Msg("error getting configs")
		return 1
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Error().Err(err).Msg("invalid log level")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Error().Err(err).Msg("create storages")
		return 1
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Warn().Err(err).Msg("close storages")
		}
	}()

	z, err := compress.NewCodec(cfg.Storage.CompressionLevel, cfg.Storage.MaxDecodedSize)
	if err != nil {
		log.Error().Err(err).Msg("create compression codec")
		return 1
	}
	defer z.Close()

	var opts []bundle.Option
	if cfg.App.Passphrase != "" {
		opts = append(opts, bundle.WithPassphrase(crypto.NewKeyChain(), cfg.App.Passphrase))
	}
	codec := bundle.NewCodec(z, opts...)

	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	provider, err := adapter.NewVRChatAdapter(cfg.Adapter, info, log)
	if err != nil {
		log.Error().Err(err).Msg("create identity provider adapter")
		return 1
	}

	relay := tui.NewProgressRelay()
	services, err := service.NewServices(storages, codec, provider, cfg, info, log, service.WithProgressSink(relay.Sink))
	if err != nil {
		log.Error().Err(err).Msg("create services")
		return 1
	}

	ui, err := tui.New(services, relay, cfg.App, log)
	if err != nil {
		log.Error().Err(err).Msg("error creating ui")
		return 1
	}

	app, err := client.NewApp(services, ui, cfg.App, log)
	if err != nil {
		log.Error().Err(err).Msg("init client app error")
		return 1
	}

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		return 1
	}
	return 0
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
