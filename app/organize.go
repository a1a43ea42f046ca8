package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/internal/organizer"
	"github.com/moyu-x/file-organizer/pkg/logger"
	"github.com/moyu-x/file-organizer/pkg/progress"
	"github.com/moyu-x/file-organizer/tui"
)

type OrganizeOptions struct {
	Organizer organizer.Options
	Verbose   bool
	LogLevel  string
	LogFile   string
	// TUI 使用全屏进度界面，此时控制台日志关闭，只写日志文件
	TUI bool
}

func RunOrganize(ctx context.Context, opts *OrganizeOptions) (*organizer.Report, error) {
	logLevel := opts.LogLevel
	if opts.Verbose {
		logLevel = "debug"
	}

	var err error
	if opts.TUI {
		err = logger.InitWithWriters(logLevel, opts.LogFile, io.Discard, io.Discard)
	} else {
		err = logger.Init(logLevel, opts.LogFile)
	}
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	o := opts.Organizer
	logger.Get().Info().Msgf("源目录: %s", o.SourceDir)
	logger.Get().Debug().Msgf("时间属性: %s", o.TimeAttribute)
	logger.Get().Debug().Msgf("大小阈值: small < %d, medium < %d", o.Thresholds.SmallMax, o.Thresholds.MediumMax)
	if o.DryRun {
		logger.Get().Info().Msg("预览模式，不会修改任何文件")
	}

	proc, err := organizer.New(o, afero.NewOsFs())
	if err != nil {
		return nil, fmt.Errorf("创建整理器失败: %w", err)
	}

	tracker := progress.NewTracker(opts.Verbose)
	proc.Progress = tracker

	if !opts.TUI {
		report, err := proc.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("文件整理失败: %w", err)
		}
		return report, nil
	}

	return runWithTUI(ctx, proc, tracker, opts, logLevel)
}

type runResult struct {
	report *organizer.Report
	err    error
}

// runWithTUI 整理在后台执行，前台显示进度界面；界面退出后再把诊断输出到 stderr
func runWithTUI(ctx context.Context, proc *organizer.Processor, tracker *progress.Tracker, opts *OrganizeOptions, logLevel string) (*organizer.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates := tracker.WithUpdates(internal.DefaultBufferSize)
	done := make(chan runResult, 1)
	go func() {
		report, err := proc.Run(ctx)
		tracker.Close()
		done <- runResult{report: report, err: err}
	}()

	_, tuiErr := tui.Run(updates, &tui.Config{
		SourceDir: proc.Root,
		DryRun:    opts.Organizer.DryRun,
		Cancel:    cancel,
	})
	if tuiErr != nil {
		cancel()
	}
	// 界面可能提前退出，继续消费剩余进度，避免整理协程阻塞
	go func() {
		for range updates {
		}
	}()

	res := <-done

	if err := logger.Init(logLevel, opts.LogFile); err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	if res.err != nil {
		return nil, fmt.Errorf("文件整理失败: %w", res.err)
	}
	for _, d := range res.report.Diagnostics {
		logger.Get().Warn().Err(d.Err).Str("kind", string(d.Kind)).Msg(d.Path)
	}
	for _, o := range res.report.Outcomes {
		if o.Kind == internal.OutcomeFailed {
			logger.Get().Error().Err(o.Reason).Msgf("处理文件失败: %s", o.Source)
		}
	}
	if tuiErr != nil {
		fmt.Fprintf(os.Stderr, "TUI 运行错误: %v\n", tuiErr)
	}

	return res.report, nil
}
