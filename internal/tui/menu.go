package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-mutual-friends/internal/config"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuItem struct {
	mode  string
	title string
}

// MenuModel asks which phase to run.
type MenuModel struct {
	items []menuItem
	idx   int
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		items: []menuItem{
			{mode: config.ModeInit, title: "Зашифровать свой список друзей"},
			{mode: config.ModeCalc, title: "Сравнить с публичными данными собеседника"},
			{mode: config.ModeCheck, title: "Расшифровать результат сравнения"},
			{mode: config.ModeHistory, title: "История созданных данных"},
		},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		mode := m.items[m.idx].mode
		return m, func() tea.Msg { return modeChosenMsg{mode: mode} }
	}

	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder

	modeColWidth := lipgloss.Width("Режим") + 2 // "<marker> <mode>"
	for _, item := range m.items {
		if w := lipgloss.Width(item.mode) + 2; w > modeColWidth {
			modeColWidth = w
		}
	}

	b.WriteString(fmt.Sprintf("%-*s │ %s\n", modeColWidth, "Режим", "Действие"))
	b.WriteString(strings.Repeat("─", modeColWidth))
	b.WriteString("─┼─")
	b.WriteString(strings.Repeat("─", 44))
	b.WriteString("\n")

	for i, item := range m.items {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%-*s │ %s\n", modeColWidth, cursor+" "+item.mode, item.title))
	}

	return renderPage("ПОИСК ОБЩИХ ДРУЗЕЙ", strings.TrimRight(b.String(), "\n"), "enter: выбрать │ ↑/↓: навигация │ v: версия")
}
