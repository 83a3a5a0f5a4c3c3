package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// errorOverlayModel shows a failed phase until the user dismisses it.
type errorOverlayModel struct {
	kind    string
	message string
}

func (m errorOverlayModel) Init() tea.Cmd {
	return nil
}

func (m errorOverlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, keys.quit) || key.Matches(keyMsg, keys.cancel) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m errorOverlayModel) View() string {
	content := errorStyle.Render("Ошибка: "+m.kind) + "\n\n" + m.message + "\n\n" + helpStyle.Render("enter / esc закрыть")
	return appStyle.Render(overlayBoxStyle.Render(content))
}
