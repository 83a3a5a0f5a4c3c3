package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-mutual-friends/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// timeLayout formats journal timestamps.
const timeLayout = "2006-01-02 15:04 MST"

// historyModel lists journaled enrollments.
type historyModel struct {
	items []models.Enrollment
}

func newHistoryModel(items []models.Enrollment) historyModel {
	return historyModel{items: items}
}

func (m historyModel) Init() tea.Cmd {
	return nil
}

func (m historyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, keys.quit) || key.Matches(keyMsg, keys.cancel) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m historyModel) View() string {
	if len(m.items) == 0 {
		return renderPage("ИСТОРИЯ", helpStyle.Render("Журнал пуст или отключён"), "enter/q: выход")
	}

	var b strings.Builder
	for _, e := range m.items {
		rows := [][2]string{
			{"Создан", e.CreatedAt.Format(timeLayout)},
			{"Профиль", e.Profile},
			{"Друзей", fmt.Sprint(e.Identifiers)},
			{"Секретный файл", fitText(e.PrivatePath, 40)},
			{"Публичный файл", fitText(e.PublicPath, 40)},
		}
		b.WriteString(titleStyle.Render(e.BundleID))
		b.WriteString("\n")
		b.WriteString(renderTable("Поле", "Значение", rows))
		b.WriteString("\n\n")
	}

	return renderPage("ИСТОРИЯ", strings.TrimRight(b.String(), "\n"), "enter/q: выход")
}
