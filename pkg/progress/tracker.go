package progress

import (
	"sync"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/logger"
)

// DefaultLogInterval 每处理多少个文件输出一次进度
const DefaultLogInterval = 100

// Tracker 记录整理进度并输出到日志，可选地把进度转发到通道（供 TUI 使用）
type Tracker struct {
	Verbose     bool
	LogInterval int

	mu           sync.Mutex
	total        int
	processed    int
	lastLogged   int
	updates      chan internal.ProgressUpdate
	closeUpdates sync.Once
}

func NewTracker(verbose bool) *Tracker {
	return &Tracker{
		Verbose:     verbose,
		LogInterval: DefaultLogInterval,
	}
}

// WithUpdates 开启进度转发，返回只读通道；Finish 时关闭
func (t *Tracker) WithUpdates(buffer int) <-chan internal.ProgressUpdate {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.updates = make(chan internal.ProgressUpdate, buffer)
	return t.updates
}

func (t *Tracker) Start(total int) {
	t.mu.Lock()
	t.total = total
	t.mu.Unlock()

	logger.Get().Info().Msgf("收集到 %d 个待处理文件", total)
}

func (t *Tracker) Update(o internal.MoveOutcome) {
	t.mu.Lock()
	t.processed++
	update := internal.ProgressUpdate{Processed: t.processed, Total: t.total, Outcome: o}
	shouldLog := t.LogInterval > 0 &&
		(t.processed-t.lastLogged >= t.LogInterval || t.processed == t.total)
	if shouldLog {
		t.lastLogged = t.processed
	}
	updates := t.updates
	t.mu.Unlock()

	switch {
	case o.Kind == internal.OutcomeFailed:
		logger.Get().Error().Err(o.Reason).Msgf("[%d/%d] 处理文件失败: %s", update.Processed, update.Total, o.Source)
	case o.DryRun:
		// 预览模式下总是输出将要执行的操作
		logger.Get().Info().Msgf("[%d/%d] %s", update.Processed, update.Total, o)
	case t.Verbose:
		logger.Get().Info().Msgf("[%d/%d] %s", update.Processed, update.Total, o)
	}

	if shouldLog && !t.Verbose {
		logger.Get().Info().
			Int("current", update.Processed).
			Int("total", update.Total).
			Float64("percentage", percentage(update.Processed, update.Total)).
			Msg("处理进度")
	}

	if updates != nil {
		updates <- update
	}
}

func (t *Tracker) Diagnostic(d internal.Diagnostic) {
	logger.Get().Warn().Err(d.Err).Str("kind", string(d.Kind)).Msg(d.Path)
}

func (t *Tracker) Finish(stats internal.RunStats) {
	t.Close()

	logger.Get().Info().Msgf("整理完成: %s", stats)
}

// Close 关闭进度通道，可重复调用。运行在 Start 之前失败时由调用方关闭
func (t *Tracker) Close() {
	t.closeUpdates.Do(func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.updates != nil {
			close(t.updates)
		}
	})
}

func percentage(current, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(current) / float64(total) * 100
}
