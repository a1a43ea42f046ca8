package organizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/classifier"
	"github.com/moyu-x/file-organizer/pkg/logger"
	"github.com/moyu-x/file-organizer/pkg/mover"
	"github.com/moyu-x/file-organizer/pkg/planner"
	"github.com/moyu-x/file-organizer/pkg/scanner"
	"github.com/moyu-x/file-organizer/pkg/timestamp"
)

// New 创建新的整理器
func New(opts Options, fs afero.Fs) (*Processor, error) {
	if opts.SourceDir == "" {
		return nil, fmt.Errorf("源目录不能为空")
	}
	if err := opts.Thresholds.Validate(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("解析源目录失败: %w", err)
	}

	walker := scanner.NewFileWalkerFs(fs)
	walker.IncludeHidden = opts.IncludeHidden

	return &Processor{
		Options:  opts,
		Root:     root,
		Fs:       fs,
		Walker:   walker,
		Resolver: timestamp.NewResolver(fs),
		Planner:  planner.New(root, opts.Location, classifier.NewBucketer(fs, opts.Sniff)),
		Mover:    mover.New(fs),
	}, nil
}

// Run 收集源目录下的全部文件并逐个整理。只有无法遍历源目录时返回错误；
// 单个文件的失败记录在 Report 中，不会中断运行。
func (p *Processor) Run(ctx context.Context) (*Report, error) {
	report := &Report{}
	report.Stats.StartTime = time.Now()
	report.Stats.DryRun = p.Options.DryRun

	diag := func(d internal.Diagnostic) {
		report.Diagnostics = append(report.Diagnostics, d)
		report.Stats.Diagnostics++
		if p.Progress != nil {
			p.Progress.Diagnostic(d)
		}
	}
	p.Mover.OnDiagnostic = diag

	// 先收集完整的文件列表，再修改文件系统
	files, skipped, err := p.Walker.Collect(p.Root)
	for _, d := range skipped {
		diag(d)
	}
	if err != nil {
		return nil, err
	}

	report.Stats.Total = len(files)
	if p.Progress != nil {
		p.Progress.Start(len(files))
	}

	logger.Get().Debug().
		Str("root", p.Root).
		Str("time", string(p.Options.TimeAttribute)).
		Int64("small", p.Options.Thresholds.SmallMax).
		Int64("medium", p.Options.Thresholds.MediumMax).
		Bool("dry_run", p.Options.DryRun).
		Int("files", len(files)).
		Msg("开始整理")

	var plans []plan
	if p.Options.Workers > 1 {
		plans = p.planAll(files)
	}

	for i, path := range files {
		if ctx.Err() != nil {
			report.Stats.Interrupted = true
			logger.Get().Warn().Msgf("运行被中断，剩余 %d 个文件保持原样", len(files)-i)
			break
		}

		var pl plan
		if plans != nil {
			pl = plans[i]
		} else {
			pl = p.planFile(path)
		}

		for _, d := range pl.diagnostics {
			diag(d)
		}

		outcome := p.execute(pl)
		report.Outcomes = append(report.Outcomes, outcome)
		report.Stats.Record(outcome)
		if p.Progress != nil {
			p.Progress.Update(outcome)
		}
	}

	report.Stats.EndTime = time.Now()
	if p.Progress != nil {
		p.Progress.Finish(report.Stats)
	}
	return report, nil
}

// planAll 使用 goroutine 池并发规划，只读取元数据，不修改文件系统。
// 结果按输入顺序返回，移动仍然串行执行。
func (p *Processor) planAll(files []string) []plan {
	plans := make([]plan, len(files))

	pool, err := ants.NewPool(p.Options.Workers)
	if err != nil {
		logger.Get().Warn().Err(err).Msg("创建 goroutine 池失败，改为串行规划")
		for i, path := range files {
			plans[i] = p.planFile(path)
		}
		return plans
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, path := range files {
		i, path := i, path
		wg.Add(1)
		task := func() {
			defer wg.Done()
			plans[i] = p.planFile(path)
		}
		if err := pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	return plans
}

// planFile 解析时间、分类大小并计算目标路径
func (p *Processor) planFile(path string) plan {
	info, err := p.Fs.Stat(path)
	if err != nil {
		var o internal.MoveOutcome
		if os.IsNotExist(err) {
			o = internal.Vanished(path)
		} else {
			o = internal.Failed(path, fmt.Errorf("读取文件信息失败: %w", err))
		}
		return plan{record: internal.FileRecord{SourcePath: path}, outcome: &o}
	}

	res := p.Resolver.Resolve(path, p.Options.TimeAttribute)
	category := classifier.Classify(info.Size(), p.Options.Thresholds)

	return plan{
		record: internal.FileRecord{
			SourcePath:  path,
			Time:        res.Time,
			TimeSource:  res.Source,
			Size:        info.Size(),
			Category:    category,
			Destination: p.Planner.Destination(path, res.Time, category),
		},
		diagnostics: res.Diagnostics,
	}
}

// execute 在移动前再次确认文件存在，防止外部修改
func (p *Processor) execute(pl plan) internal.MoveOutcome {
	if pl.outcome != nil {
		return *pl.outcome
	}

	rec := pl.record
	if exists, err := afero.Exists(p.Fs, rec.SourcePath); err == nil && !exists {
		return internal.Vanished(rec.SourcePath)
	}

	outcome := p.Mover.Move(rec.SourcePath, rec.Destination, p.Options.DryRun)

	logger.Get().Debug().
		Str("source", rec.SourcePath).
		Str("destination", outcome.Destination).
		Str("time_source", string(rec.TimeSource)).
		Time("time", rec.Time).
		Int64("size", rec.Size).
		Str("category", string(rec.Category)).
		Str("outcome", outcome.Kind.String()).
		Msg("文件处理完成")

	return outcome
}
