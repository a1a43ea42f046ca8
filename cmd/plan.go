package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/moyu-x/file-organizer/app"
	"github.com/moyu-x/file-organizer/config"
	"github.com/moyu-x/file-organizer/pkg/logger"
)

var planCmd = &cobra.Command{
	Use:   "plan <source_directory>",
	Short: "以表格列出整理计划，不修改任何文件",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	opts, err := buildOrganizeOptions(cmd, cfg, args[0])
	if err != nil {
		return err
	}
	opts.Organizer.DryRun = true
	if !opts.Verbose {
		// 表格就是输出，只保留警告和错误
		opts.LogLevel = "warn"
	}

	defer logger.Close()

	report, err := app.RunOrganize(context.Background(), opts)
	if err != nil {
		return err
	}

	sizes := make(map[string]int64, len(report.Outcomes))
	for _, o := range report.Outcomes {
		if info, err := os.Stat(o.Source); err == nil {
			sizes[o.Source] = info.Size()
		}
	}

	root := opts.Organizer.SourceDir
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderPlan(root, report.Outcomes, sizes))
	fmt.Fprintln(out, renderSummary(report.Stats))

	return nil
}

func init() {
	addOrganizeFlags(planCmd)

	rootCmd.AddCommand(planCmd)
}
