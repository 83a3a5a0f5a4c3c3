package client

import (
	"context"
	"fmt"
	"testing"

	"github.com/MKhiriev/go-mutual-friends/internal/adapter"
	"github.com/MKhiriev/go-mutual-friends/internal/bundle"
	"github.com/MKhiriev/go-mutual-friends/internal/config"
	"github.com/MKhiriev/go-mutual-friends/internal/logger"
	"github.com/MKhiriev/go-mutual-friends/internal/mock"
	"github.com/MKhiriev/go-mutual-friends/internal/service"
	"github.com/MKhiriev/go-mutual-friends/internal/store"
	"github.com/MKhiriev/go-mutual-friends/internal/tui"
	"github.com/MKhiriev/go-mutual-friends/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeEnroll struct {
	got []string
	out models.Enrollment
	err error
}

func (f *fakeEnroll) Enroll(_ context.Context, friends []string) (models.Enrollment, error) {
	f.got = friends
	return f.out, f.err
}

type fakeCompute struct {
	out models.Computation
	err error
}

func (f *fakeCompute) Compute(context.Context) (models.Computation, error) {
	return f.out, f.err
}

type fakeReveal struct {
	out models.RevealReport
	err error
}

func (f *fakeReveal) Reveal(context.Context) (models.RevealReport, error) {
	return f.out, f.err
}

type fakeHistory struct {
	out []models.Enrollment
	err error
}

func (f *fakeHistory) Enrollments(context.Context) ([]models.Enrollment, error) {
	return f.out, f.err
}

type fixture struct {
	ui      *mock.MockUI
	enroll  *fakeEnroll
	compute *fakeCompute
	reveal  *fakeReveal
	history *fakeHistory
}

func newApp(t *testing.T, mode string) (*App, fixture) {
	t.Helper()
	f := fixture{
		ui:      mock.NewMockUI(gomock.NewController(t)),
		enroll:  &fakeEnroll{},
		compute: &fakeCompute{},
		reveal:  &fakeReveal{},
		history: &fakeHistory{},
	}
	services := &service.Services{
		EnrollService:  f.enroll,
		ComputeService: f.compute,
		RevealService:  f.reveal,
		HistoryService: f.history,
	}

	app, err := NewApp(services, f.ui, config.App{Mode: mode}, logger.Nop())
	require.NoError(t, err)
	return app, f
}

// runPhaseInline makes RunPhase call the phase synchronously.
func runPhaseInline(ctx context.Context, _ string, phase func(context.Context) error) error {
	return phase(ctx)
}

// ── phases ────────────────────────────────────────────────────────────────────

func TestApp_Init(t *testing.T) {
	app, f := newApp(t, config.ModeInit)
	f.enroll.out = models.Enrollment{BundleID: "b-1", Identifiers: 2}

	gomock.InOrder(
		f.ui.EXPECT().Login(gomock.Any()).Return([]string{"usr_1", "usr_2"}, nil),
		f.ui.EXPECT().RunPhase(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(runPhaseInline),
		f.ui.EXPECT().ShowEnrollment(gomock.Any(), f.enroll.out).Return(nil),
	)

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, []string{"usr_1", "usr_2"}, f.enroll.got)
}

func TestApp_Calc(t *testing.T) {
	app, f := newApp(t, config.ModeCalc)
	f.compute.out = models.Computation{ResultID: "r-1"}

	f.ui.EXPECT().RunPhase(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(runPhaseInline)
	f.ui.EXPECT().ShowComputation(gomock.Any(), f.compute.out).Return(nil)

	require.NoError(t, app.Run(context.Background()))
}

func TestApp_CheckFromMenu(t *testing.T) {
	app, f := newApp(t, "")
	f.reveal.out = models.RevealReport{ResultID: "r-1", Entries: []models.RevealEntry{{Identifier: "usr_1", Mutual: true}}}

	gomock.InOrder(
		f.ui.EXPECT().SelectMode(gomock.Any()).Return(config.ModeCheck, nil),
		f.ui.EXPECT().RunPhase(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(runPhaseInline),
		f.ui.EXPECT().ShowReport(gomock.Any(), f.reveal.out).Return(nil),
	)

	require.NoError(t, app.Run(context.Background()))
}

func TestApp_History(t *testing.T) {
	app, f := newApp(t, config.ModeHistory)
	f.history.out = []models.Enrollment{{BundleID: "b-2"}, {BundleID: "b-1"}}

	// история открывается без входа и без экрана прогресса
	f.ui.EXPECT().ShowHistory(gomock.Any(), f.history.out).Return(nil)

	require.NoError(t, app.Run(context.Background()))
}

func TestApp_HistoryJournalError(t *testing.T) {
	app, f := newApp(t, "")
	f.history.err = store.ErrExecutingQuery

	gomock.InOrder(
		f.ui.EXPECT().SelectMode(gomock.Any()).Return(config.ModeHistory, nil),
		f.ui.EXPECT().ShowError(gomock.Any(), "InternalError", gomock.Any()).Return(nil),
	)

	err := app.Run(context.Background())
	require.ErrorIs(t, err, store.ErrExecutingQuery)
}

// ── failures ──────────────────────────────────────────────────────────────────

func TestApp_SealedBundleHint(t *testing.T) {
	app, f := newApp(t, config.ModeCheck)
	f.reveal.err = fmt.Errorf("reveal: private bundle: %w", bundle.ErrPassphraseRequired)

	f.ui.EXPECT().RunPhase(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(runPhaseInline)
	f.ui.EXPECT().ShowError(gomock.Any(), "PassphraseRequired", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, cause string) error {
			assert.Contains(t, cause, "APP_PASSPHRASE")
			return nil
		})

	err := app.Run(context.Background())
	require.ErrorIs(t, err, bundle.ErrPassphraseRequired)
}

func TestApp_UserQuit(t *testing.T) {
	app, f := newApp(t, "")
	f.ui.EXPECT().SelectMode(gomock.Any()).Return("", tui.ErrUserQuit)

	assert.NoError(t, app.Run(context.Background()))
}

func TestApp_UnknownMode(t *testing.T) {
	app, f := newApp(t, "merge")
	f.ui.EXPECT().ShowError(gomock.Any(), "InternalError", gomock.Any()).Return(nil)

	err := app.Run(context.Background())
	require.ErrorIs(t, err, ErrUnknownMode)
}

func TestApp_PhaseErrorIsDescribed(t *testing.T) {
	app, f := newApp(t, config.ModeInit)
	f.enroll.err = service.ErrEmptyInput

	f.ui.EXPECT().Login(gomock.Any()).Return(nil, nil)
	f.ui.EXPECT().RunPhase(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(runPhaseInline)
	f.ui.EXPECT().ShowError(gomock.Any(), "EmptyInputError", service.ErrEmptyInput.Error()).Return(nil)

	err := app.Run(context.Background())
	require.ErrorIs(t, err, service.ErrEmptyInput)
	assert.Contains(t, err.Error(), "EmptyInputError")
}

func TestApp_LoginFailure(t *testing.T) {
	app, f := newApp(t, config.ModeInit)

	f.ui.EXPECT().Login(gomock.Any()).Return(nil, adapter.ErrAuthenticationFailed)
	f.ui.EXPECT().ShowError(gomock.Any(), "AuthenticationFailed", gomock.Any()).Return(assert.AnError)

	// сбой экрана ошибки не подменяет исходную ошибку
	err := app.Run(context.Background())
	require.ErrorIs(t, err, adapter.ErrAuthenticationFailed)
}

func TestNewApp_RequiresDependencies(t *testing.T) {
	_, err := NewApp(nil, nil, config.App{}, logger.Nop())
	assert.Error(t, err)
}
