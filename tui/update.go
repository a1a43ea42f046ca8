package tui

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/logger"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.progressBar.Width = msg.Width - 10

	case progressMsg:
		m.state = StateProcessing
		m.totalFiles = msg.Total
		m.stats.Total = msg.Total
		m.stats.Record(msg.Outcome)
		m.currentFile = msg.Outcome.Source

		if msg.Outcome.Kind == internal.OutcomeFailed {
			m.failures = append(m.failures, filepath.Base(msg.Outcome.Source)+": "+errString(msg.Outcome.Reason))
			if len(m.failures) > maxRecentFailures {
				m.failures = m.failures[len(m.failures)-maxRecentFailures:]
			}
		}

		cmds := []tea.Cmd{waitForUpdate(m.updates)}
		if m.totalFiles > 0 {
			cmds = append(cmds, m.progressBar.SetPercent(float64(msg.Processed)/float64(m.totalFiles)))
		}
		return m, tea.Batch(cmds...)

	case processCompleteMsg:
		m.state = StateComplete
		m.stats.EndTime = time.Now()
		m.stats.Interrupted = m.interrupted
		logger.Get().Info().Msgf("TUI 收到完成通知，共处理 %d 个文件", m.stats.Processed)
		return m, nil

	case spinner.TickMsg:
		if m.state == StateCollecting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		model, cmd := m.progressBar.Update(msg)
		m.progressBar = model.(progress.Model)
		return m, cmd
	}

	return m, nil
}

// handleKey 处理中按 Ctrl+C 只请求停止，等待当前文件完成；完成后任意退出键结束界面
func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.state == StateComplete || m.interrupted {
			return m, tea.Quit
		}
		m.interrupted = true
		if m.cancel != nil {
			m.cancel()
		}
		return m, nil
	case "q", "esc", "enter":
		if m.state == StateComplete {
			return m, tea.Quit
		}
	}
	return m, nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
