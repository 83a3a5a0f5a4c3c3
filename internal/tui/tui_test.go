package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-mutual-friends/internal/adapter"
	"github.com/MKhiriev/go-mutual-friends/internal/config"
	"github.com/MKhiriev/go-mutual-friends/internal/logger"
	"github.com/MKhiriev/go-mutual-friends/internal/mock"
	"github.com/MKhiriev/go-mutual-friends/internal/service"
	"github.com/MKhiriev/go-mutual-friends/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// exec runs cmd and returns its message, or nil for a nil cmd.
func exec(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// ── menu ──────────────────────────────────────────────────────────────────────

func TestMenuModel_ChoosesMode(t *testing.T) {
	tests := []struct {
		keys []string
		want string
	}{
		{[]string{"enter"}, config.ModeInit},
		{[]string{"down", "enter"}, config.ModeCalc},
		{[]string{"down", "down", "enter"}, config.ModeCheck},
		{[]string{"down", "down", "down", "down", "enter"}, config.ModeHistory},
		{[]string{"down", "up", "up", "enter"}, config.ModeInit},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.keys, ","), func(t *testing.T) {
			var m tea.Model = NewMenuModel()
			var cmd tea.Cmd
			for _, k := range tt.keys {
				m, cmd = m.Update(keyPress(k))
			}
			assert.Equal(t, modeChosenMsg{mode: tt.want}, exec(cmd))
		})
	}
}

func TestMenuModel_View(t *testing.T) {
	view := NewMenuModel().View()
	assert.Contains(t, view, "> init")
	assert.Contains(t, view, "calc")
	assert.Contains(t, view, "check")
	assert.Contains(t, view, "history")
}

// ── root ──────────────────────────────────────────────────────────────────────

func TestRootModel_QuitsOnMode(t *testing.T) {
	root := NewRootModel(map[string]tea.Model{pageMenu: NewMenuModel()}, pageMenu, models.NewAppBuildInfo("1.0.0", "", ""))

	updated, cmd := root.Update(modeChosenMsg{mode: config.ModeCalc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, config.ModeCalc, updated.(RootModel).mode)
}

func TestRootModel_CtrlC(t *testing.T) {
	root := NewRootModel(map[string]tea.Model{pageMenu: NewMenuModel()}, pageMenu, models.AppBuildInfo{})

	updated, cmd := root.Update(keyPress("ctrl+c"))
	require.NotNil(t, cmd)
	assert.True(t, updated.(RootModel).quitByUser)
}

func TestRootModel_BuildInfoToggle(t *testing.T) {
	root := NewRootModel(map[string]tea.Model{pageMenu: NewMenuModel()}, pageMenu, models.NewAppBuildInfo("1.2.3", "2026-03-01", "abc"))

	var m tea.Model = root
	m, _ = m.Update(keyPress("v"))
	view := m.View()
	assert.Contains(t, view, "1.2.3")
	assert.Contains(t, view, "abc")

	// пока открыто окно версии, меню не получает клавиши
	m, cmd := m.Update(keyPress("enter"))
	assert.Nil(t, cmd)

	m, _ = m.Update(keyPress("esc"))
	assert.NotContains(t, m.View(), "ИНФОРМАЦИЯ О ПРОГРАММЕ")
}

func TestRootModel_Navigate(t *testing.T) {
	pages := map[string]tea.Model{
		pageMenu:  NewMenuModel(),
		pageLogin: NewLoginModel(context.Background(), nil),
	}
	root := NewRootModel(pages, pageMenu, models.AppBuildInfo{})

	updated, _ := root.Update(NavigateTo{Page: pageLogin})
	assert.Contains(t, updated.View(), "ВХОД В АККАУНТ")

	// unknown pages are ignored
	updated, _ = updated.Update(NavigateTo{Page: "settings"})
	assert.Contains(t, updated.View(), "ВХОД В АККАУНТ")
}

func TestRootModel_FriendsLoaded(t *testing.T) {
	root := NewRootModel(map[string]tea.Model{}, pageLogin, models.AppBuildInfo{})

	updated, cmd := root.Update(friendsLoadedMsg{friends: []string{"usr_1"}})
	require.NotNil(t, cmd)
	assert.Equal(t, []string{"usr_1"}, updated.(RootModel).friends)
	assert.NoError(t, updated.(RootModel).err)
}

// ── login ─────────────────────────────────────────────────────────────────────

func newTestFlow(t *testing.T) (*service.LoginFlow, *mock.MockIdentityProvider) {
	provider := mock.NewMockIdentityProvider(gomock.NewController(t))
	return service.NewLoginFlow(provider, logger.Nop()), provider
}

func TestLoginModel_RequiresBothFields(t *testing.T) {
	flow, _ := newTestFlow(t)
	var m tea.Model = NewLoginModel(context.Background(), flow)

	m = typeText(m, "alice")
	m, cmd := m.Update(keyPress("enter"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Логин и пароль обязательны")
}

func TestLoginModel_DirectLogin(t *testing.T) {
	ctx := context.Background()
	flow, provider := newTestFlow(t)
	creds := models.Credentials{Username: "alice", Password: "secret"}

	provider.EXPECT().Authenticate(gomock.Any(), creds).Return(models.Session{UserID: "usr_a"}, nil)
	provider.EXPECT().ListFriends(gomock.Any()).Return([]string{"usr_1", "usr_2"}, nil)

	var m tea.Model = NewLoginModel(ctx, flow)
	m = typeText(m, "alice")
	m, _ = m.Update(keyPress("tab"))
	m = typeText(m, "secret")

	m, cmd := m.Update(keyPress("enter"))
	msg := exec(cmd)
	require.Equal(t, credentialsResultMsg{state: service.Authenticated}, msg)

	_, cmd = m.Update(msg)
	assert.Equal(t, friendsLoadedMsg{friends: []string{"usr_1", "usr_2"}}, exec(cmd))
}

func TestLoginModel_SecondFactorRoute(t *testing.T) {
	ctx := context.Background()
	flow, provider := newTestFlow(t)

	methods := []models.SecondFactorMethod{models.SecondFactorTOTP, models.SecondFactorEmailOTP}
	provider.EXPECT().Authenticate(gomock.Any(), gomock.Any()).
		Return(models.Session{}, &adapter.SecondFactorError{Methods: methods})
	provider.EXPECT().SubmitSecondFactor(gomock.Any(), models.SecondFactorEmailOTP, "123456").
		Return(models.Session{UserID: "usr_a"}, nil)
	provider.EXPECT().ListFriends(gomock.Any()).Return([]string{"usr_1"}, nil)

	var login tea.Model = NewLoginModel(ctx, flow)
	login = typeText(login, "alice")
	login, _ = login.Update(keyPress("tab"))
	login = typeText(login, "secret")
	login, cmd := login.Update(keyPress("enter"))

	_, cmd = login.Update(exec(cmd))
	assert.Equal(t, NavigateTo{Page: pageSecondFactor}, exec(cmd))

	var sf tea.Model = NewSecondFactorModel(ctx, flow)
	sf.Init()
	assert.Contains(t, sf.View(), "[приложение]")

	sf, _ = sf.Update(keyPress("right"))
	assert.Contains(t, sf.View(), "[email]")

	sf = typeText(sf, "123456")
	sf, cmd = sf.Update(keyPress("enter"))
	msg := exec(cmd)
	require.Equal(t, secondFactorResultMsg{state: service.Authenticated}, msg)

	_, cmd = sf.Update(msg)
	assert.Equal(t, friendsLoadedMsg{friends: []string{"usr_1"}}, exec(cmd))
}

func TestSecondFactorModel_WrongCode(t *testing.T) {
	flow, _ := newTestFlow(t)
	var m tea.Model = NewSecondFactorModel(context.Background(), flow)

	m, cmd := m.Update(secondFactorResultMsg{state: service.AwaitingSecondFactor, err: adapter.ErrAuthenticationFailed})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Неверный логин, пароль или код")
}

// ── phase ─────────────────────────────────────────────────────────────────────

func TestPhaseModel_ProgressAndDone(t *testing.T) {
	canceled := false
	m := newPhaseModel("ТЕСТ", nil, func() { canceled = true })

	updated, _ := m.Update(progressMsg{stage: "compare", done: 3, total: 12})
	pm := updated.(phaseModel)
	assert.InDelta(t, 0.25, pm.percent(), 1e-9)
	assert.Contains(t, pm.View(), "Сравнение списков: 3/12")

	updated, _ = pm.Update(keyPress("ctrl+c"))
	pm = updated.(phaseModel)
	assert.True(t, canceled)
	assert.True(t, pm.stopping)

	updated, cmd := pm.Update(phaseDoneMsg{err: context.Canceled})
	pm = updated.(phaseModel)
	require.NotNil(t, cmd)
	assert.True(t, pm.finished)
	assert.ErrorIs(t, pm.err, context.Canceled)
}

func TestPhaseModel_ZeroTotal(t *testing.T) {
	m := newPhaseModel("ТЕСТ", nil, func() {})
	assert.Zero(t, m.percent())
	assert.Contains(t, m.View(), "Подготовка...")
}

func TestProgressRelay_DetachedDrops(t *testing.T) {
	// без подключённой программы Sink не блокируется
	NewProgressRelay().Sink("compare", 1, 2)
}

// ── report ────────────────────────────────────────────────────────────────────

func stubClipboard(t *testing.T, fn func(string) error) {
	t.Helper()
	old := writeClipboard
	writeClipboard = fn
	t.Cleanup(func() { writeClipboard = old })
}

func testReport() models.RevealReport {
	return models.RevealReport{
		ResultID: "result",
		Entries: []models.RevealEntry{
			{Index: 0, Identifier: "usr_a", Mutual: true},
			{Index: 1, Identifier: "usr_b", Mutual: false},
			{Index: 2, Identifier: "usr_c", Mutual: true},
		},
	}
}

func TestReportModel_Copy(t *testing.T) {
	var copied string
	stubClipboard(t, func(s string) error { copied = s; return nil })

	var m tea.Model = newReportModel(testReport(), false)
	assert.Nil(t, m.Init())
	assert.Contains(t, m.View(), "Общих друзей: 2 из 3")

	m, cmd := m.Update(keyPress("c"))
	msg := exec(cmd)
	assert.Equal(t, copiedMsg{count: 2}, msg)
	assert.Equal(t, "usr_a\nusr_c", copied)

	m, cmd = m.Update(msg)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Скопировано в буфер обмена: 2")

	m, _ = m.Update(clearStatusMsg{})
	assert.NotContains(t, m.View(), "Скопировано")
}

func TestReportModel_AutoCopyFailure(t *testing.T) {
	stubClipboard(t, func(string) error { return errors.New("no display") })

	m := newReportModel(testReport(), true)
	msg := exec(m.Init())

	updated, _ := m.Update(msg)
	assert.Contains(t, updated.View(), "Не удалось скопировать")
}

func TestReportModel_ShowsEnrollment(t *testing.T) {
	r := testReport()
	assert.NotContains(t, newReportModel(r, false).View(), "Данные созданы")

	r.Enrollment = &models.Enrollment{
		BundleID:    "b-1",
		PrivatePath: "secret_data",
		CreatedAt:   time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
	}
	view := newReportModel(r, false).View()
	assert.Contains(t, view, "Данные созданы: 2026-03-01 12:30 UTC")
	assert.Contains(t, view, "secret_data")
}

// ── history ───────────────────────────────────────────────────────────────────

func TestHistoryModel_View(t *testing.T) {
	items := []models.Enrollment{
		{BundleID: "b-2", Profile: "bgv-n13-t65537-dev1", Identifiers: 4, PrivatePath: "s2", PublicPath: "p2", CreatedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
		{BundleID: "b-1", Profile: "bgv-n13-t65537-dev1", Identifiers: 2, PrivatePath: "s1", PublicPath: "p1", CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
	}
	var m tea.Model = newHistoryModel(items)
	assert.Nil(t, m.Init())

	view := m.View()
	assert.Contains(t, view, "ИСТОРИЯ")
	assert.Contains(t, view, "b-2")
	assert.Contains(t, view, "2026-03-01 09:00 UTC")
	assert.Less(t, strings.Index(view, "b-2"), strings.Index(view, "b-1"))

	_, cmd := m.Update(keyPress("q"))
	assert.NotNil(t, cmd)
}

func TestHistoryModel_Empty(t *testing.T) {
	assert.Contains(t, newHistoryModel(nil).View(), "Журнал пуст")
}

func TestSummaryModel_View(t *testing.T) {
	m := summaryModel{title: "ДАННЫЕ СОЗДАНЫ", rows: [][2]string{{"Друзей", "3"}}}
	view := m.View()
	assert.Contains(t, view, "ДАННЫЕ СОЗДАНЫ")
	assert.Contains(t, view, "Друзей │ 3")

	_, cmd := m.Update(keyPress("q"))
	assert.NotNil(t, cmd)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func TestHumanizeError(t *testing.T) {
	assert.Empty(t, humanizeError(nil))
	assert.Equal(t, "Неверный логин, пароль или код", humanizeError(adapter.ErrAuthenticationFailed))
	assert.Equal(t, "Слишком много попыток, повторите позже", humanizeError(adapter.ErrRateLimited))
	assert.Equal(t, "Отсутствует сеть или сервер недоступен", humanizeError(errors.New("dial tcp: connection refused")))
	assert.Equal(t, "boom", humanizeError(errors.New("boom")))
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "abc", fitText("abc", 5))
	assert.Equal(t, "ab...", fitText("abcdefgh", 5))
	assert.Equal(t, "ab", fitText("abcdefgh", 2))
}
