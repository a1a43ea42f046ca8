package classifier

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/internal"
)

// HeaderSize 文件类型检测需要的头部字节数
const HeaderSize = 261

// Classify 根据阈值返回大小分类
func Classify(size int64, t internal.SizeThresholds) internal.SizeCategory {
	switch {
	case size < t.SmallMax:
		return internal.SizeSmall
	case size < t.MediumMax:
		return internal.SizeMedium
	default:
		return internal.SizeLarge
	}
}

// Extension 返回去掉前导点并转为小写的扩展名；隐藏文件名开头的点不算扩展名
func Extension(path string) string {
	name := strings.TrimPrefix(filepath.Base(path), ".")
	ext := filepath.Ext(name)
	if len(ext) <= 1 {
		return ""
	}
	return strings.ToLower(ext[1:])
}

// Bucketer 决定文件归入哪个扩展名目录
type Bucketer struct {
	Fs afero.Fs
	// Sniff 为 true 时，没有扩展名的文件按内容检测类型
	Sniff bool
}

func NewBucketer(fs afero.Fs, sniff bool) *Bucketer {
	return &Bucketer{Fs: fs, Sniff: sniff}
}

// Bucket 返回扩展名目录名，无法确定时返回 no_extension
func (b *Bucketer) Bucket(path string) string {
	if ext := Extension(path); ext != "" {
		return ext
	}
	if b == nil || !b.Sniff {
		return internal.NoExtensionBucket
	}

	kind, err := b.detect(path)
	if err != nil || kind == types.Unknown {
		return internal.NoExtensionBucket
	}
	return kind.Extension
}

func (b *Bucketer) detect(path string) (types.Type, error) {
	file, err := b.Fs.Open(path)
	if err != nil {
		return types.Unknown, fmt.Errorf("打开文件失败: %w", err)
	}
	defer file.Close()

	head := make([]byte, HeaderSize)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return types.Unknown, fmt.Errorf("读取文件头部失败: %w", err)
	}

	return filetype.Match(head[:n])
}
