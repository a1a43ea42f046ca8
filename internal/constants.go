package internal

const (
	// 默认 small 阈值 1 MiB
	DefaultSmallMax int64 = 1 << 20

	// 默认 medium 阈值 10 MiB
	DefaultMediumMax int64 = 10 << 20

	// 没有扩展名的文件使用的目录名
	NoExtensionBucket = "no_extension"

	// 日期目录格式 YYYY/MM/DD
	DateLayout = "2006/01/02"

	// 配置文件默认路径
	DefaultConfigPath = "~/.file-organizer/config.yaml"

	// 默认规划 worker 数，1 表示完全串行
	DefaultWorkers = 1

	// 进度通道缓冲区大小
	DefaultBufferSize = 1000
)
