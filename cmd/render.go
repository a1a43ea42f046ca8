package cmd

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/moyu-x/file-organizer/internal"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func renderSummary(stats internal.RunStats) string {
	title := "整理结果"
	if stats.DryRun {
		title = "整理结果 [Dry-Run]"
	}
	if stats.Interrupted {
		title += " (已中断)"
	}

	rows := [][]string{
		{"总文件数", strconv.Itoa(stats.Total)},
		{"已处理", strconv.Itoa(stats.Processed)},
		{"移动", strconv.Itoa(stats.Moved)},
		{"重命名移动", strconv.Itoa(stats.Renamed)},
		{"跳过 (内容相同)", strconv.Itoa(stats.SkippedIdentical)},
		{"跳过 (已在原位)", strconv.Itoa(stats.SkippedSamePath)},
		{"跳过 (已消失)", strconv.Itoa(stats.Vanished)},
		{"失败", strconv.Itoa(stats.Failed)},
		{"诊断", strconv.Itoa(stats.Diagnostics)},
		{"耗时", stats.Duration().Round(time.Millisecond).String()},
	}
	return renderTable([]string{title, ""}, rows, []columnAlignment{alignLeft, alignRight})
}

// renderPlan 列出每个文件的计划操作，路径相对于 root
func renderPlan(root string, outcomes []internal.MoveOutcome, sizes map[string]int64) string {
	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		dest := ""
		if o.Destination != "" && o.Kind != internal.OutcomeSkippedSamePath {
			dest = relPath(root, o.Destination)
		}
		size := ""
		if n, ok := sizes[o.Source]; ok {
			size = humanize.IBytes(uint64(n))
		}
		rows = append(rows, []string{relPath(root, o.Source), size, o.Kind.String(), dest})
	}
	return renderTable(
		[]string{"文件", "大小", "操作", "目标"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
	)
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
