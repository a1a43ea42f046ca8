package organizer

import (
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/mover"
	"github.com/moyu-x/file-organizer/pkg/planner"
	"github.com/moyu-x/file-organizer/pkg/scanner"
	"github.com/moyu-x/file-organizer/pkg/timestamp"
)

// Options 一次整理运行的配置，运行期间不变
type Options struct {
	SourceDir     string                  // 源目录，也是整理后的根目录
	TimeAttribute internal.TimeAttribute  // 用于日期目录的时间属性
	Thresholds    internal.SizeThresholds // 大小分类阈值
	DryRun        bool                    // 预览模式
	Sniff         bool                    // 按内容检测无扩展名文件的类型
	Workers       int                     // 并发规划的 worker 数，<= 1 表示完全串行
	Location      *time.Location          // 日期目录使用的时区
	IncludeHidden bool                    // 是否处理隐藏文件
}

// Progress 接收处理进度，由展示层实现
type Progress interface {
	Start(total int)
	Update(outcome internal.MoveOutcome)
	Diagnostic(d internal.Diagnostic)
	Finish(stats internal.RunStats)
}

// Processor 整理器，依次对每个文件执行 解析时间 -> 大小分类 -> 规划路径 -> 移动
type Processor struct {
	Options  Options
	Root     string             // 源目录的绝对路径
	Fs       afero.Fs           // 文件系统接口，便于测试和抽象
	Walker   *scanner.FileWalker
	Resolver *timestamp.Resolver
	Planner  *planner.Planner
	Mover    *mover.Mover
	Progress Progress
}

// Report 一次运行的全部结果
type Report struct {
	Outcomes    []internal.MoveOutcome
	Diagnostics []internal.Diagnostic
	Stats       internal.RunStats
}

// plan 单个文件的规划结果
type plan struct {
	record      internal.FileRecord
	diagnostics []internal.Diagnostic
	// outcome 非空表示规划阶段就已得出结果（文件消失或无法读取）
	outcome *internal.MoveOutcome
}
