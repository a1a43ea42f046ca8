package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/logger"
)

type Config struct {
	SourceDir string
	DryRun    bool
	// Cancel 用户按 Ctrl+C 时调用，用于停止整理
	Cancel func()
}

type teaModel struct {
	m *model
}

func (tm teaModel) Init() tea.Cmd {
	return tm.m.Init()
}

func (tm teaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := tm.m.Update(msg)
	return tm, cmd
}

func (tm teaModel) View() string {
	return tm.m.View()
}

// Run 显示整理进度，直到 updates 关闭且用户退出界面。返回界面统计到的结果
func Run(updates <-chan internal.ProgressUpdate, config *Config) (internal.RunStats, error) {
	logger.Get().Info().Msg("启动 TUI 界面")

	m := initialModel(updates, config)
	p := tea.NewProgram(teaModel{m: &m}, tea.WithAltScreen())

	_, err := p.Run()
	if err != nil {
		logger.Get().Error().Err(err).Msg("TUI 运行错误")
	} else {
		logger.Get().Info().Msg("TUI 正常退出")
	}

	return m.stats, err
}
