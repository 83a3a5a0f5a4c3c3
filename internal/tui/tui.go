package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-mutual-friends/internal/config"
	"github.com/MKhiriev/go-mutual-friends/internal/logger"
	"github.com/MKhiriev/go-mutual-friends/internal/service"
	"github.com/MKhiriev/go-mutual-friends/models"
	tea "github.com/charmbracelet/bubbletea"
)

// TUI runs the interactive screens of the client, one Bubble Tea program per
// screen.
type TUI struct {
	services  *service.Services
	relay     *ProgressRelay
	clipboard bool

	logger *logger.Logger
}

// New creates the terminal UI. relay must be the one whose Sink was passed
// to the phase services with [service.WithProgressSink].
func New(services *service.Services, relay *ProgressRelay, cfg config.App, log *logger.Logger) (*TUI, error) {
	if services == nil {
		return nil, errors.New("tui: services are required")
	}
	if relay == nil {
		relay = NewProgressRelay()
	}
	return &TUI{services: services, relay: relay, clipboard: cfg.Clipboard, logger: log}, nil
}

// SelectMode shows the mode menu.
func (t *TUI) SelectMode(ctx context.Context) (string, error) {
	info := t.services.AppInfoService.GetBuildInfo(ctx)
	root := NewRootModel(map[string]tea.Model{pageMenu: NewMenuModel()}, pageMenu, info)

	result, err := runRoot(root)
	if err != nil {
		return "", err
	}
	return result.mode, nil
}

// Login asks for credentials (and a second factor when required) and
// returns the friend list of the logged-in user.
func (t *TUI) Login(ctx context.Context) ([]string, error) {
	flow := t.services.LoginFlow
	pages := map[string]tea.Model{
		pageLogin:        NewLoginModel(ctx, flow),
		pageSecondFactor: NewSecondFactorModel(ctx, flow),
	}

	root := NewRootModel(pages, pageLogin, t.services.AppInfoService.GetBuildInfo(ctx))
	result, err := runRoot(root)
	if err != nil {
		return nil, err
	}
	if result.err != nil {
		return nil, result.err
	}

	t.logger.Info().Int("friends", len(result.friends)).Msg("friend list loaded")
	return result.friends, nil
}

// RunPhase runs phase in the background behind a progress screen.
func (t *TUI) RunPhase(ctx context.Context, title string, phase func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	run := func() tea.Msg {
		return phaseDoneMsg{err: phase(ctx)}
	}

	p := tea.NewProgram(newPhaseModel(title, run, cancel))
	t.relay.attach(p)
	defer t.relay.attach(nil)

	final, err := p.Run()
	if err != nil {
		return err
	}
	m, ok := final.(phaseModel)
	if !ok || !m.finished {
		return tea.ErrProgramKilled
	}
	return m.err
}

// ShowEnrollment prints the outcome of the init phase.
func (t *TUI) ShowEnrollment(_ context.Context, e models.Enrollment) error {
	return runScreen(summaryModel{
		title: "ДАННЫЕ СОЗДАНЫ",
		rows: [][2]string{
			{"Пакет", e.BundleID},
			{"Профиль", e.Profile},
			{"Друзей", fmt.Sprint(e.Identifiers)},
			{"Секретный файл", e.PrivatePath},
			{"Публичный файл", e.PublicPath + " (передайте собеседнику)"},
		},
	})
}

// ShowComputation prints the outcome of the calc phase.
func (t *TUI) ShowComputation(_ context.Context, c models.Computation) error {
	return runScreen(summaryModel{
		title: "СРАВНЕНИЕ ЗАВЕРШЕНО",
		rows: [][2]string{
			{"Результат", c.ResultID},
			{"Для пакета", c.SourceID},
			{"Записей собеседника", fmt.Sprint(c.Remote)},
			{"Своих записей", fmt.Sprint(c.Local)},
			{"Исполнение", fmt.Sprintf("%s × %d", c.Strategy, c.Workers)},
			{"Время", c.Duration.Round(time.Millisecond).String()},
			{"Файл результата", c.ResultPath + " (передайте собеседнику)"},
		},
	})
}

// ShowReport lists the revealed mutual friends.
func (t *TUI) ShowReport(_ context.Context, r models.RevealReport) error {
	return runScreen(newReportModel(r, t.clipboard))
}

// ShowHistory lists journaled enrollments, newest first.
func (t *TUI) ShowHistory(_ context.Context, items []models.Enrollment) error {
	return runScreen(newHistoryModel(items))
}

// ShowError shows a failed phase.
func (t *TUI) ShowError(_ context.Context, kind, cause string) error {
	return runScreen(errorOverlayModel{kind: kind, message: cause})
}

func runRoot(root RootModel) (RootModel, error) {
	final, err := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if err != nil {
		return RootModel{}, err
	}

	result, ok := final.(RootModel)
	if !ok {
		return RootModel{}, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return RootModel{}, ErrUserQuit
	}
	return result, nil
}

func runScreen(m tea.Model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}
