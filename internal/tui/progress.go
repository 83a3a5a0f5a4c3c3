// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

var stageTitles = map[string]string{
	"check-remote":  "Проверка данных собеседника",
	"encrypt":       "Шифрование списка друзей",
	"encrypt-local": "Шифрование своего списка",
	"compare":       "Сравнение списков",
	"reveal":        "Расшифровка результата",
}

// ProgressRelay forwards progress snapshots of the phase services to the
// running phase screen. Snapshots sent while no screen is attached are
// dropped.
type ProgressRelay struct {
	mu      sync.Mutex
	program *tea.Program
}

func NewProgressRelay() *ProgressRelay {
	return &ProgressRelay{}
}

// Sink matches service.ProgressSink.
func (r *ProgressRelay) Sink(stage string, done, total int64) {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()

	if p != nil {
		p.Send(progressMsg{stage: stage, done: done, total: total})
	}
}

func (r *ProgressRelay) attach(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// phaseModel shows a spinner and a progress bar while a phase runs in the
// background. ctrl+c cancels the phase context; the screen stays until the
// phase returns.
type phaseModel struct {
	title  string
	run    tea.Cmd
	cancel func()

	spinner  spinner.Model
	bar      progress.Model
	stage    string
	done     int64
	total    int64
	stopping bool

	finished bool
	err      error
}

func newPhaseModel(title string, run tea.Cmd, cancel func()) phaseModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return phaseModel{
		title:   title,
		run:     run,
		cancel:  cancel,
		spinner: s,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(48)),
	}
}

func (m phaseModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m phaseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.cancel) && !m.stopping {
			m.stopping = true
			m.cancel()
		}
		return m, nil

	case progressMsg:
		m.stage, m.done, m.total = msg.stage, msg.done, msg.total
		return m, nil

	case phaseDoneMsg:
		m.finished = true
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m phaseModel) View() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	if m.stage == "" {
		b.WriteString("Подготовка...")
	} else {
		title := stageTitles[m.stage]
		if title == "" {
			title = m.stage
		}
		b.WriteString(fmt.Sprintf("%s: %d/%d", title, m.done, m.total))
	}
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(m.percent()))

	if m.stopping {
		b.WriteString("\n\n")
		b.WriteString(statusStyle.Render("Остановка..."))
	}

	return renderPage(m.title, b.String(), "ctrl+c: прервать")
}

func (m phaseModel) percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}
