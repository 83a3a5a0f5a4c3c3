// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-mutual-friends/internal/service"
	"github.com/MKhiriev/go-mutual-friends/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModel is the Bubble Tea model for the identity-provider credentials.
// It renders two text inputs (username and password) and submits them to the
// [service.LoginFlow]. When the provider asks for a second factor it
// navigates to the second-factor page; otherwise it fetches the friend list
// and finishes with a [friendsLoadedMsg].
type LoginModel struct {
	ctx  context.Context
	flow *service.LoginFlow

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

// NewLoginModel creates a [LoginModel] with the username field focused and a
// masked password field.
func NewLoginModel(ctx context.Context, flow *service.LoginFlow) *LoginModel {
	loginInput := textinput.New()
	loginInput.Placeholder = "username / email"
	loginInput.CharLimit = 128
	loginInput.Width = 40
	loginInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return &LoginModel{
		ctx:    ctx,
		flow:   flow,
		inputs: []textinput.Model{loginInput, passwordInput},
	}
}

// Init implements [tea.Model]. Starts the cursor-blink animation for the active input.
func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - [credentialsResultMsg]: routes to the second-factor page or fetches friends.
//   - tab / shift+tab: moves focus between the inputs.
//   - enter: validates the inputs and submits them.
//
// All other key events are forwarded to the focused input widget.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(credentialsResultMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = humanizeError(result.err)
			return m, nil
		}
		if result.state == service.AwaitingSecondFactor {
			return m, func() tea.Msg { return NavigateTo{Page: pageSecondFactor} }
		}
		m.submitting = true
		return m, cmdFetchFriends(m.ctx, m.flow)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.tab):
			m.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}

			login := strings.TrimSpace(m.inputs[0].Value())
			pass := m.inputs[1].Value()
			if login == "" || pass == "" {
				m.errMsg = "Логин и пароль обязательны"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdSubmit(models.Credentials{Username: login, Password: pass})
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString("Поле    │ Значение\n")
	b.WriteString("────────┼────────────────────────────────────────────\n")
	b.WriteString("Логин   │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Пароль  │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Войти...]\n")
	} else {
		b.WriteString("\n[Войти]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Ошибка: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("ВХОД В АККАУНТ", strings.TrimRight(b.String(), "\n"), "tab: след. поле │ enter: подтвердить")
}

func (m *LoginModel) cmdSubmit(creds models.Credentials) tea.Cmd {
	ctx := m.ctx
	flow := m.flow

	return func() tea.Msg {
		state, err := flow.SubmitCredentials(ctx, creds)
		return credentialsResultMsg{state: state, err: err}
	}
}

func (m *LoginModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *LoginModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func cmdFetchFriends(ctx context.Context, flow *service.LoginFlow) tea.Cmd {
	return func() tea.Msg {
		friends, err := flow.Friends(ctx)
		return friendsLoadedMsg{friends: friends, err: err}
	}
}
