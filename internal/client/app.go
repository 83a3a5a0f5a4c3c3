package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-mutual-friends/internal/bundle"
	"github.com/MKhiriev/go-mutual-friends/internal/config"
	"github.com/MKhiriev/go-mutual-friends/internal/logger"
	"github.com/MKhiriev/go-mutual-friends/internal/service"
	"github.com/MKhiriev/go-mutual-friends/internal/tui"
	"github.com/MKhiriev/go-mutual-friends/models"
)

var ErrUnknownMode = errors.New("unknown mode")

const sealedHint = "Секретный файл защищён паролем: задайте его в APP_PASSPHRASE или в поле passphrase файла настроек"

type App struct {
	services *service.Services
	ui       UI
	mode     string

	logger *logger.Logger
}

func NewApp(services *service.Services, ui UI, cfg config.App, log *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client: services and ui are required")
	}

	return &App{
		services: services,
		ui:       ui,
		mode:     cfg.Mode,
		logger:   log,
	}, nil
}

// Run executes one phase. Without a configured mode the user picks it from
// the menu. Leaving a prompt with ctrl+c is not an error.
func (a *App) Run(ctx context.Context) error {
	mode := a.mode
	if mode == "" {
		chosen, err := a.ui.SelectMode(ctx)
		if err != nil {
			return a.finish(ctx, err)
		}
		mode = chosen
	}

	a.logger.Info().Str("mode", mode).Msg("starting phase")

	var err error
	switch mode {
	case config.ModeInit:
		err = a.runInit(ctx)
	case config.ModeCalc:
		err = a.runCalc(ctx)
	case config.ModeCheck:
		err = a.runCheck(ctx)
	case config.ModeHistory:
		err = a.runHistory(ctx)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	return a.finish(ctx, err)
}

func (a *App) runInit(ctx context.Context) error {
	friends, err := a.ui.Login(ctx)
	if err != nil {
		return err
	}

	var enrollment models.Enrollment
	err = a.ui.RunPhase(ctx, "ШИФРОВАНИЕ СПИСКА ДРУЗЕЙ", func(ctx context.Context) error {
		var err error
		enrollment, err = a.services.EnrollService.Enroll(ctx, friends)
		return err
	})
	if err != nil {
		return err
	}

	return a.ui.ShowEnrollment(ctx, enrollment)
}

func (a *App) runCalc(ctx context.Context) error {
	var computation models.Computation
	err := a.ui.RunPhase(ctx, "ПОИСК ОБЩИХ ДРУЗЕЙ", func(ctx context.Context) error {
		var err error
		computation, err = a.services.ComputeService.Compute(ctx)
		return err
	})
	if err != nil {
		return err
	}

	return a.ui.ShowComputation(ctx, computation)
}

func (a *App) runCheck(ctx context.Context) error {
	var report models.RevealReport
	err := a.ui.RunPhase(ctx, "РАСШИФРОВКА РЕЗУЛЬТАТА", func(ctx context.Context) error {
		var err error
		report, err = a.services.RevealService.Reveal(ctx)
		return err
	})
	if err != nil {
		return err
	}

	return a.ui.ShowReport(ctx, report)
}

func (a *App) runHistory(ctx context.Context) error {
	items, err := a.services.HistoryService.Enrollments(ctx)
	if err != nil {
		return err
	}
	return a.ui.ShowHistory(ctx, items)
}

// finish logs err with its kind and shows it to the user.
func (a *App) finish(ctx context.Context, err error) error {
	if err == nil {
		a.logger.Info().Msg("phase finished")
		return nil
	}
	if errors.Is(err, tui.ErrUserQuit) {
		a.logger.Info().Msg("user quit")
		return nil
	}

	kind, cause := service.Describe(err)
	a.logger.Error().Err(err).Str("kind", kind).Msg("phase failed")
	if bundle.IsSealed(err) {
		cause += "\n\n" + sealedHint
	}

	if uiErr := a.ui.ShowError(ctx, kind, cause); uiErr != nil {
		a.logger.Warn().Err(uiErr).Msg("error screen failed")
	}
	return fmt.Errorf("%s: %w", kind, err)
}
