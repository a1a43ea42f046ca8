package logger

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var Logger *zerolog.Logger

// logFile 当前打开的日志文件，重新初始化时关闭
var logFile *os.File

const timeFormat = "2006-01-02 15:04:05"

// Init 初始化 zerolog 日志
// level: 日志级别 ("debug", "info", "warn", "error")
// file: 日志文件路径，为空时仅输出到控制台
// 普通进度输出到 stdout，警告和错误输出到 stderr
func Init(level string, file string) error {
	return InitWithWriters(level, file, os.Stdout, os.Stderr)
}

// InitWithWriters 与 Init 相同，但可指定输出目标，便于测试
func InitWithWriters(level string, file string, out, errOut io.Writer) error {
	w := &splitWriter{
		out:    consoleWriter(out),
		errOut: consoleWriter(errOut),
	}

	if err := Close(); err != nil {
		return err
	}

	if file != "" {
		// 如果指定了文件，同时输出到文件
		fileWriter, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		logFile = fileWriter
		w.file = zerolog.ConsoleWriter{Out: fileWriter, TimeFormat: timeFormat, NoColor: true}
	}

	logger := zerolog.New(w).With().Timestamp().Logger().Level(ParseLevel(level))
	log.Logger = logger

	Logger = &logger
	return nil
}

// ParseLevel 解析日志级别，未知值按 info 处理
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get 返回全局 logger 实例
// 如果 logger 未初始化，返回一个默认的 logger（输出到 /dev/null）
func Get() *zerolog.Logger {
	if Logger == nil {
		logger := zerolog.New(io.Discard)
		Logger = &logger
	}
	return Logger
}

// Close 关闭日志文件，可重复调用
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// consoleWriter 只有输出到终端时才使用颜色
func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: timeFormat, NoColor: !isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// splitWriter 按级别分流：warn 及以上写 errOut，其余写 out
type splitWriter struct {
	out    io.Writer
	errOut io.Writer
	file   io.Writer
}

func (w *splitWriter) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.NoLevel, p)
}

func (w *splitWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	target := w.out
	if level >= zerolog.WarnLevel && level != zerolog.NoLevel {
		target = w.errOut
	}
	n, err := target.Write(p)
	if err != nil {
		return n, err
	}
	if w.file != nil {
		if _, err := w.file.Write(p); err != nil {
			return n, err
		}
	}
	return len(p), nil
}
