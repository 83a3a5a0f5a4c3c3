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

var methodTitles = map[models.SecondFactorMethod]string{
	models.SecondFactorTOTP:     "приложение",
	models.SecondFactorEmailOTP: "email",
	models.SecondFactorOTP:      "резервный код",
}

// SecondFactorModel asks for the second-factor code. left/right switch
// between the methods the provider offered.
type SecondFactorModel struct {
	ctx  context.Context
	flow *service.LoginFlow

	methods    []models.SecondFactorMethod
	idx        int
	input      textinput.Model
	submitting bool
	errMsg     string
}

func NewSecondFactorModel(ctx context.Context, flow *service.LoginFlow) *SecondFactorModel {
	input := textinput.New()
	input.Placeholder = "000000"
	input.CharLimit = 16
	input.Width = 16
	input.Focus()

	return &SecondFactorModel{ctx: ctx, flow: flow, input: input}
}

func (m *SecondFactorModel) Init() tea.Cmd {
	m.methods = m.flow.Methods()
	m.idx = 0
	return textinput.Blink
}

func (m *SecondFactorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(secondFactorResultMsg); ok {
		if result.err != nil {
			m.submitting = false
			m.errMsg = humanizeError(result.err)
			m.input.SetValue("")
			return m, nil
		}
		return m, cmdFetchFriends(m.ctx, m.flow)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.left):
			if keyMsg.String() == "left" && m.idx > 0 {
				m.idx--
				return m, nil
			}
		case key.Matches(keyMsg, keys.right):
			if keyMsg.String() == "right" && m.idx < len(m.methods)-1 {
				m.idx++
				return m, nil
			}
		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}
			code := strings.TrimSpace(m.input.Value())
			if code == "" {
				m.errMsg = "Введите код подтверждения"
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdSubmit(m.method(), code)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *SecondFactorModel) View() string {
	var b strings.Builder

	b.WriteString("Способ  │ ")
	for i, method := range m.methods {
		title := methodTitles[method]
		if title == "" {
			title = string(method)
		}
		if i == m.idx {
			b.WriteString("[" + title + "] ")
		} else {
			b.WriteString(" " + title + "  ")
		}
	}
	b.WriteString("\n")
	b.WriteString("Код     │ [")
	b.WriteString(m.input.View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Подтвердить...]\n")
	} else {
		b.WriteString("\n[Подтвердить]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Ошибка: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("ДВУХФАКТОРНАЯ АУТЕНТИФИКАЦИЯ", strings.TrimRight(b.String(), "\n"), "←/→: способ │ enter: подтвердить")
}

func (m *SecondFactorModel) method() models.SecondFactorMethod {
	if m.idx < len(m.methods) {
		return m.methods[m.idx]
	}
	return ""
}

func (m *SecondFactorModel) cmdSubmit(method models.SecondFactorMethod, code string) tea.Cmd {
	ctx := m.ctx
	flow := m.flow

	return func() tea.Msg {
		state, err := flow.SubmitSecondFactor(ctx, method, code)
		return secondFactorResultMsg{state: state, err: err}
	}
}
