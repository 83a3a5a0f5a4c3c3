package service

import (
	"fmt"

	"github.com/MKhiriev/go-mutual-friends/internal/adapter"
	"github.com/MKhiriev/go-mutual-friends/internal/bundle"
	"github.com/MKhiriev/go-mutual-friends/internal/config"
	"github.com/MKhiriev/go-mutual-friends/internal/logger"
	"github.com/MKhiriev/go-mutual-friends/internal/store"
	"github.com/MKhiriev/go-mutual-friends/internal/workers"
	"github.com/MKhiriev/go-mutual-friends/models"
)

type Services struct {
	EnrollService  EnrollService
	ComputeService ComputeService
	RevealService  RevealService
	HistoryService HistoryService
	AppInfoService AppInfoService
	LoginFlow      *LoginFlow
}

func NewServices(
	storages *store.Storages,
	codec *bundle.Codec,
	provider adapter.IdentityProvider,
	cfg *config.StructuredConfig,
	info models.AppBuildInfo,
	log *logger.Logger,
	opts ...Option,
) (*Services, error) {
	strategy, err := workers.NewStrategy(cfg.Workers.Strategy, cfg.Workers.Count)
	if err != nil {
		return nil, fmt.Errorf("execution strategy: %w", err)
	}

	appInfo, err := NewAppInfoService(info, log)
	if err != nil {
		return nil, err
	}

	return &Services{
		EnrollService:  NewEnrollService(storages.Bundles, storages.Journal, codec, strategy, cfg, log, opts...),
		ComputeService: NewComputeService(storages.Bundles, storages.Journal, codec, strategy, cfg, log, opts...),
		RevealService:  NewRevealService(storages.Bundles, storages.Journal, codec, strategy, cfg, log, opts...),
		HistoryService: NewHistoryService(storages.Journal, log),
		AppInfoService: appInfo,
		LoginFlow:      NewLoginFlow(provider, log),
	}, nil
}
