package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-mutual-friends/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// reportModel lists every enrolled identifier with its membership bit.
type reportModel struct {
	report   models.RevealReport
	autoCopy bool

	offset int
	height int
	status string
}

func newReportModel(report models.RevealReport, autoCopy bool) reportModel {
	return reportModel{report: report, autoCopy: autoCopy, height: 20}
}

func (m reportModel) Init() tea.Cmd {
	if m.autoCopy {
		return cmdCopy(m.report.Mutual())
	}
	return nil
}

func (m reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-12, 5)
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "Не удалось скопировать: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("Скопировано в буфер обмена: %d", msg.count)
		}
		return m, clearStatusAfter(2 * time.Second)

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.up):
			if m.offset > 0 {
				m.offset--
			}
		case key.Matches(msg, keys.down):
			if m.offset < len(m.report.Entries)-m.height {
				m.offset++
			}
		case key.Matches(msg, keys.copy):
			return m, cmdCopy(m.report.Mutual())
		case key.Matches(msg, keys.quit), key.Matches(msg, keys.cancel):
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m reportModel) View() string {
	mutual := m.report.Mutual()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Общих друзей: %d из %d\n", len(mutual), len(m.report.Entries)))
	b.WriteString(fmt.Sprintf("Результат: %s\n", fitText(m.report.ResultID, 36)))
	if e := m.report.Enrollment; e != nil {
		b.WriteString(fmt.Sprintf("Данные созданы: %s, %s\n", e.CreatedAt.Format(timeLayout), fitText(e.PrivatePath, 40)))
	}
	b.WriteString("\n")

	end := min(m.offset+m.height, len(m.report.Entries))
	for _, e := range m.report.Entries[m.offset:end] {
		line := fmt.Sprintf("%4d  %s", e.Index+1, e.Identifier)
		if e.Mutual {
			b.WriteString(mutualStyle.Render(line + "  ✓ общий"))
		} else {
			b.WriteString(helpStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	return renderPage("ОБЩИЕ ДРУЗЬЯ", strings.TrimRight(b.String(), "\n"), "↑/↓: прокрутка │ c: копировать общих │ enter/q: выход")
}

func cmdCopy(ids []string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(strings.Join(ids, "\n")); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{count: len(ids)}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// summaryModel shows the outcome of a phase as a two-column table.
type summaryModel struct {
	title string
	rows  [][2]string
}

func (m summaryModel) Init() tea.Cmd {
	return nil
}

func (m summaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, keys.quit) || key.Matches(keyMsg, keys.cancel) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m summaryModel) View() string {
	return renderPage(m.title, renderTable("Поле", "Значение", m.rows), "enter/q: выход")
}
