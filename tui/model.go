package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/moyu-x/file-organizer/internal"
)

type State int

const (
	StateCollecting State = iota
	StateProcessing
	StateComplete
)

// maxRecentFailures 界面上保留的最近失败条数
const maxRecentFailures = 5

type model struct {
	state       State
	sourceDir   string
	dryRun      bool
	updates     <-chan internal.ProgressUpdate
	cancel      func()
	interrupted bool
	totalFiles  int
	stats       internal.RunStats
	currentFile string
	failures    []string
	progressBar progress.Model
	spinner     spinner.Model
}

func initialModel(updates <-chan internal.ProgressUpdate, config *Config) model {
	progressBar := progress.New(progress.WithDefaultGradient())
	progressBar.PercentageStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Width(4)

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    time.Second / 10,
	}
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := model{
		state:       StateCollecting,
		updates:     updates,
		progressBar: progressBar,
		spinner:     s,
	}
	m.stats.StartTime = time.Now()
	if config != nil {
		m.sourceDir = config.SourceDir
		m.dryRun = config.DryRun
		m.cancel = config.Cancel
		m.stats.DryRun = config.DryRun
	}
	return m
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForUpdate(m.updates))
}

// waitForUpdate 读取下一条进度，通道关闭时返回完成消息
func waitForUpdate(updates <-chan internal.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return processCompleteMsg{}
		}
		return progressMsg(u)
	}
}
