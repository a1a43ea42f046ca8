package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func (m *model) View() string {
	switch m.state {
	case StateCollecting:
		return m.collectingView()
	case StateProcessing:
		return m.processingView()
	case StateComplete:
		return m.completeView()
	default:
		return "未知状态"
	}
}

func (m *model) title() string {
	if m.dryRun {
		return "📦 文件整理工具 [Dry-Run]"
	}
	return "📦 文件整理工具"
}

func (m *model) collectingView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title()) + "\n\n")
	b.WriteString(m.spinner.View() + " 正在收集文件...\n")
	b.WriteString("  源目录: " + filePathStyle.Render(m.sourceDir))

	return lipgloss.NewStyle().
		Padding(2).
		Render(b.String())
}

func (m *model) processingView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title()) + "\n\n")

	b.WriteString(labelStyle.Render("处理进度：") + "\n")
	b.WriteString(m.progressBar.View() + "\n\n")

	b.WriteString(statsBoxStyle.Render(m.renderStats()) + "\n\n")

	b.WriteString(labelStyle.Render("当前文件：") + "\n")
	b.WriteString(filePathStyle.Render(m.currentFile) + "\n\n")

	if len(m.failures) > 0 {
		b.WriteString(m.renderFailures() + "\n")
	}

	if m.interrupted {
		b.WriteString(warnStyle.Render("正在停止，等待当前文件完成...") + "\n")
	} else {
		b.WriteString(hintStyle.Render("Ctrl+C 停止整理") + "\n")
	}

	return lipgloss.NewStyle().
		Padding(2).
		Render(b.String())
}

func (m *model) completeView() string {
	var b strings.Builder

	if m.stats.Interrupted {
		b.WriteString(warnStyle.Render("⚠ 整理已中断，剩余文件保持原样") + "\n\n")
	} else {
		b.WriteString(successTitleStyle.Render("✅ 整理完成！") + "\n\n")
	}

	b.WriteString(statsBoxStyle.Render(m.renderFinalStats()) + "\n\n")

	if len(m.failures) > 0 {
		b.WriteString(m.renderFailures() + "\n")
	}

	b.WriteString(separatorStyle.Render(strings.Repeat("─", 60)) + "\n")
	b.WriteString(hintStyle.Render("按 Enter 或 q 退出") + "\n")

	return lipgloss.NewStyle().
		Padding(2).
		Render(b.String())
}

func (m *model) renderStats() string {
	var b strings.Builder
	b.WriteString("📊 实时统计：\n\n")
	b.WriteString(fmt.Sprintf("  已处理：      %d / %d\n", m.stats.Processed, m.totalFiles))
	b.WriteString(fmt.Sprintf("  已移动：      %d 个文件\n", m.stats.Moved))
	b.WriteString(fmt.Sprintf("  重命名移动：  %d 个文件\n", m.stats.Renamed))
	b.WriteString(fmt.Sprintf("  已跳过：      %d 个文件\n", m.stats.Skipped()))
	b.WriteString(fmt.Sprintf("  失败：        %d 个文件\n", m.stats.Failed))
	return b.String()
}

func (m *model) renderFinalStats() string {
	var b strings.Builder
	b.WriteString("📊 最终统计：\n\n")
	b.WriteString(fmt.Sprintf("  • 总文件数：     %d 个\n", m.totalFiles))
	b.WriteString(fmt.Sprintf("  • 已处理：       %d 个\n", m.stats.Processed))
	b.WriteString(fmt.Sprintf("  • 移动：         %d 个\n", m.stats.Moved+m.stats.Renamed))
	b.WriteString(fmt.Sprintf("    └─ 重命名：    %d 个\n", m.stats.Renamed))
	b.WriteString(fmt.Sprintf("  • 跳过：         %d 个\n", m.stats.Skipped()))
	b.WriteString(fmt.Sprintf("    ├─ 内容相同：  %d 个\n", m.stats.SkippedIdentical))
	b.WriteString(fmt.Sprintf("    ├─ 已在原位：  %d 个\n", m.stats.SkippedSamePath))
	b.WriteString(fmt.Sprintf("    └─ 已消失：    %d 个\n", m.stats.Vanished))
	b.WriteString(fmt.Sprintf("  • 失败：         %d 个\n", m.stats.Failed))
	b.WriteString(fmt.Sprintf("  • 总耗时：       %s\n", m.stats.Duration().Round(time.Millisecond).String()))
	return b.String()
}

func (m *model) renderFailures() string {
	var b strings.Builder
	b.WriteString(warnStyle.Render("最近的失败：") + "\n")
	for _, f := range m.failures {
		b.WriteString("  " + f + "\n")
	}
	return b.String()
}
