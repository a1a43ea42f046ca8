package internal

import "errors"

var (
	// ErrMetadataUnavailable 时间戳无法读取，已降级
	ErrMetadataUnavailable = errors.New("元数据不可用")

	// ErrComparisonIO 比较文件内容时读取失败，按"不相同"处理
	ErrComparisonIO = errors.New("比较文件内容失败")

	// ErrDirectoryCreation 创建目标目录失败，跳过该文件
	ErrDirectoryCreation = errors.New("创建目标目录失败")

	// ErrRename 重命名失败，跳过该文件
	ErrRename = errors.New("移动文件失败")

	// ErrEnumeration 无法遍历源目录，整次运行失败
	ErrEnumeration = errors.New("遍历源目录失败")
)
