package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/moyu-x/file-organizer/app"
	"github.com/moyu-x/file-organizer/config"
	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/internal/organizer"
	"github.com/moyu-x/file-organizer/pkg/logger"
)

var organizeCmd = &cobra.Command{
	Use:   "organize <source_directory>",
	Short: "原地整理目录中的文件",
	Long: `遍历源目录中的所有文件，按 <扩展名>/<YYYY>/<MM>/<DD>/<大小分类>/<文件名> 移动到源目录下。
目标已存在时：内容相同则跳过，内容不同则添加 _1、_2 ... 后缀。
单个文件的失败不会中断整理。`,
	Args: cobra.ExactArgs(1),
	RunE: runOrganize,
}

func runOrganize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	opts, err := buildOrganizeOptions(cmd, cfg, args[0])
	if err != nil {
		return err
	}

	useTUI, _ := cmd.Flags().GetBool("tui")
	if useTUI && !isTerminal(os.Stdout) {
		fmt.Fprintln(os.Stderr, "标准输出不是终端，忽略 --tui")
		useTUI = false
	}
	opts.TUI = useTUI

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer logger.Close()

	report, err := app.RunOrganize(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(report.Stats))

	return nil
}

// buildOrganizeOptions 合并配置文件和命令行参数，命令行参数优先
func buildOrganizeOptions(cmd *cobra.Command, cfg *config.Config, dir string) (*app.OrganizeOptions, error) {
	flags := cmd.Flags()

	timeValue := cfg.Organize.Time
	if flags.Changed("time") {
		timeValue, _ = flags.GetString("time")
	}
	attr, err := internal.ParseTimeAttribute(timeValue)
	if err != nil {
		return nil, err
	}

	smallValue := cfg.Organize.Small
	if flags.Changed("small") {
		smallValue, _ = flags.GetString("small")
	}
	small, err := parseSize(smallValue)
	if err != nil {
		return nil, fmt.Errorf("small 阈值无效: %w", err)
	}

	mediumValue := cfg.Organize.Medium
	if flags.Changed("medium") {
		mediumValue, _ = flags.GetString("medium")
	}
	medium, err := parseSize(mediumValue)
	if err != nil {
		return nil, fmt.Errorf("medium 阈值无效: %w", err)
	}

	thresholds := internal.SizeThresholds{SmallMax: small, MediumMax: medium}
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}

	sniff := cfg.Organize.Sniff
	if flags.Changed("sniff") {
		sniff, _ = flags.GetBool("sniff")
	}

	workers := cfg.Organize.Workers
	if flags.Changed("workers") {
		workers, _ = flags.GetInt("workers")
	}
	if workers < 1 {
		workers = internal.DefaultWorkers
	}

	locValue := cfg.Organize.Location
	if flags.Changed("location") {
		locValue, _ = flags.GetString("location")
	}
	loc, err := loadLocation(locValue)
	if err != nil {
		return nil, err
	}

	dryRun, _ := flags.GetBool("dry-run")
	verbose, _ := flags.GetBool("verbose")

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("无法访问源目录: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s 不是目录", dir)
	}

	return &app.OrganizeOptions{
		Organizer: organizer.Options{
			SourceDir:     dir,
			TimeAttribute: attr,
			Thresholds:    thresholds,
			DryRun:        dryRun,
			Sniff:         sniff,
			Workers:       workers,
			Location:      loc,
			IncludeHidden: true,
		},
		Verbose:  verbose,
		LogLevel: cfg.Logging.Level,
		LogFile:  cfg.Logging.File,
	}, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("无效的时区 %q: %w", name, err)
	}
	return loc, nil
}

// addOrganizeFlags organize 和 plan 共用的参数
func addOrganizeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("time", "t", string(internal.TimeCreation), "日期目录使用的时间属性: creation, modification, access")
	cmd.Flags().String("small", "1", "small 阈值，纯数字按 MB 计，也可写作 512KiB")
	cmd.Flags().String("medium", "10", "medium 阈值，纯数字按 MB 计，也可写作 20MiB")
	cmd.Flags().Bool("sniff", false, "按文件内容识别无扩展名文件的类型")
	cmd.Flags().IntP("workers", "w", internal.DefaultWorkers, "并发读取文件信息的 worker 数")
	cmd.Flags().String("location", "Local", "日期目录使用的时区，例如 Asia/Shanghai")
	cmd.Flags().BoolP("verbose", "v", false, "显示详细日志")
}

func init() {
	addOrganizeFlags(organizeCmd)
	organizeCmd.Flags().BoolP("dry-run", "d", false, "只显示将要执行的操作，不修改文件")
	organizeCmd.Flags().Bool("tui", false, "使用全屏进度界面（仅在终端中有效）")

	rootCmd.AddCommand(organizeCmd)
}
