package internal

import (
	"fmt"
	"strings"
	"time"
)

// TimeAttribute 选择用于生成日期目录的时间属性
type TimeAttribute string

const (
	TimeCreation     TimeAttribute = "creation"
	TimeModification TimeAttribute = "modification"
	TimeAccess       TimeAttribute = "access"
)

// ParseTimeAttribute 解析命令行或配置文件中的时间属性
func ParseTimeAttribute(s string) (TimeAttribute, error) {
	switch attr := TimeAttribute(strings.ToLower(strings.TrimSpace(s))); attr {
	case TimeCreation, TimeModification, TimeAccess:
		return attr, nil
	}
	return "", fmt.Errorf("无效的时间属性 %q，可选: creation, modification, access", s)
}

// SizeThresholds 大小分类的两个边界（字节）
type SizeThresholds struct {
	SmallMax  int64
	MediumMax int64
}

// DefaultSizeThresholds 返回默认阈值：小于 1 MiB 为 small，小于 10 MiB 为 medium
func DefaultSizeThresholds() SizeThresholds {
	return SizeThresholds{
		SmallMax:  DefaultSmallMax,
		MediumMax: DefaultMediumMax,
	}
}

func (t SizeThresholds) Validate() error {
	if t.SmallMax < 0 || t.MediumMax < 0 {
		return fmt.Errorf("大小阈值不能为负数: small=%d, medium=%d", t.SmallMax, t.MediumMax)
	}
	if t.SmallMax >= t.MediumMax {
		return fmt.Errorf("small 阈值 (%d) 必须小于 medium 阈值 (%d)", t.SmallMax, t.MediumMax)
	}
	return nil
}

// SizeCategory 文件大小分类
type SizeCategory string

const (
	SizeSmall  SizeCategory = "small"
	SizeMedium SizeCategory = "medium"
	SizeLarge  SizeCategory = "large"
)

// FileRecord 单个文件在一次处理中的临时记录，处理结束后即丢弃
type FileRecord struct {
	SourcePath  string
	Time        time.Time
	TimeSource  TimeAttribute
	Size        int64
	Category    SizeCategory
	Destination string
}

// OutcomeKind 移动结果的类型
type OutcomeKind int

const (
	OutcomeMoved OutcomeKind = iota
	OutcomeRenamed
	OutcomeSkippedIdentical
	OutcomeSkippedSamePath
	OutcomeFailed
	OutcomeVanished
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeMoved:
		return "moved"
	case OutcomeRenamed:
		return "renamed"
	case OutcomeSkippedIdentical:
		return "skipped-identical"
	case OutcomeSkippedSamePath:
		return "skipped-same-path"
	case OutcomeFailed:
		return "failed"
	case OutcomeVanished:
		return "vanished"
	default:
		return "unknown"
	}
}

// MoveOutcome 每个输入文件恰好对应一个结果
type MoveOutcome struct {
	Kind        OutcomeKind
	Source      string
	Destination string
	Reason      error
	DryRun      bool
}

func Moved(from, to string, dryRun bool) MoveOutcome {
	return MoveOutcome{Kind: OutcomeMoved, Source: from, Destination: to, DryRun: dryRun}
}

func Renamed(from, to string, dryRun bool) MoveOutcome {
	return MoveOutcome{Kind: OutcomeRenamed, Source: from, Destination: to, DryRun: dryRun}
}

func SkippedIdentical(path, existing string) MoveOutcome {
	return MoveOutcome{Kind: OutcomeSkippedIdentical, Source: path, Destination: existing}
}

func SkippedSamePath(path string) MoveOutcome {
	return MoveOutcome{Kind: OutcomeSkippedSamePath, Source: path, Destination: path}
}

func Failed(path string, reason error) MoveOutcome {
	return MoveOutcome{Kind: OutcomeFailed, Source: path, Reason: reason}
}

func Vanished(path string) MoveOutcome {
	return MoveOutcome{Kind: OutcomeVanished, Source: path}
}

// String 渲染为一行可读文本
func (o MoveOutcome) String() string {
	prefix := ""
	if o.DryRun {
		prefix = "[Dry-Run] "
	}
	switch o.Kind {
	case OutcomeMoved:
		return fmt.Sprintf("%s移动: %q -> %q", prefix, o.Source, o.Destination)
	case OutcomeRenamed:
		return fmt.Sprintf("%s重命名移动: %q -> %q", prefix, o.Source, o.Destination)
	case OutcomeSkippedIdentical:
		return fmt.Sprintf("跳过: %q 与已有文件 %q 内容相同", o.Source, o.Destination)
	case OutcomeSkippedSamePath:
		return fmt.Sprintf("跳过: %q 已在正确位置", o.Source)
	case OutcomeVanished:
		return fmt.Sprintf("跳过: %q 已不存在", o.Source)
	case OutcomeFailed:
		return fmt.Sprintf("失败: %q: %v", o.Source, o.Reason)
	default:
		return fmt.Sprintf("未知结果: %q", o.Source)
	}
}

// DiagnosticKind 非致命问题的分类
type DiagnosticKind string

const (
	DiagMetadataUnavailable DiagnosticKind = "metadata-unavailable"
	DiagComparisonIO        DiagnosticKind = "comparison-io"
	DiagEnumerationSkipped  DiagnosticKind = "enumeration-skipped"
)

// Diagnostic 由核心逻辑返回、由展示层输出
type Diagnostic struct {
	Path string
	Kind DiagnosticKind
	Err  error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %q: %v", d.Kind, d.Path, d.Err)
}

// RunStats 一次整理的统计
type RunStats struct {
	Total            int
	Processed        int
	Moved            int
	Renamed          int
	SkippedIdentical int
	SkippedSamePath  int
	Failed           int
	Vanished         int
	Diagnostics      int
	DryRun           bool
	Interrupted      bool
	StartTime        time.Time
	EndTime          time.Time
}

// Record 按结果类型累计计数
func (s *RunStats) Record(o MoveOutcome) {
	s.Processed++
	switch o.Kind {
	case OutcomeMoved:
		s.Moved++
	case OutcomeRenamed:
		s.Renamed++
	case OutcomeSkippedIdentical:
		s.SkippedIdentical++
	case OutcomeSkippedSamePath:
		s.SkippedSamePath++
	case OutcomeFailed:
		s.Failed++
	case OutcomeVanished:
		s.Vanished++
	}
}

// Skipped 返回所有跳过的文件数
func (s RunStats) Skipped() int {
	return s.SkippedIdentical + s.SkippedSamePath + s.Vanished
}

// String 渲染为一行摘要
func (s RunStats) String() string {
	var b strings.Builder
	if s.DryRun {
		b.WriteString("[Dry-Run] ")
	}
	fmt.Fprintf(&b, "处理 %d/%d, 移动 %d (重命名 %d), 跳过 %d, 失败 %d, 诊断 %d, 耗时 %v",
		s.Processed, s.Total, s.Moved+s.Renamed, s.Renamed, s.Skipped(), s.Failed, s.Diagnostics,
		s.Duration().Round(time.Millisecond))
	if s.Interrupted {
		b.WriteString(" (已中断)")
	}
	return b.String()
}

func (s RunStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// ProgressUpdate 进度更新
type ProgressUpdate struct {
	Processed int
	Total     int
	Outcome   MoveOutcome
}
