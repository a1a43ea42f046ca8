package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/logger"
)

// ErrSymlinkSkipped 符号链接不跟随也不移动，移动相对链接会使其失效
var ErrSymlinkSkipped = errors.New("跳过符号链接")

type FileWalker struct {
	Fs            afero.Fs
	IncludeHidden bool
}

func NewFileWalkerFs(fs afero.Fs) *FileWalker {
	return &FileWalker{
		Fs:            fs,
		IncludeHidden: true,
	}
}

// Walk 遍历 root 下的所有普通文件。符号链接不跟随，也不回调。
// 无法读取的子目录会被跳过并通过 onSkip 报告；root 本身不可用时返回 ErrEnumeration。
func (w *FileWalker) Walk(root string, callback func(path string, info os.FileInfo) error, onSkip func(internal.Diagnostic)) error {
	info, err := w.Fs.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", internal.ErrEnumeration, root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s 不是目录", internal.ErrEnumeration, root)
	}

	return afero.Walk(w.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("%w: %s: %v", internal.ErrEnumeration, root, err)
			}
			if onSkip != nil {
				onSkip(internal.Diagnostic{Path: path, Kind: internal.DiagEnumerationSkipped, Err: err})
			}
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !w.IncludeHidden && path != root && strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 {
			if onSkip != nil {
				onSkip(internal.Diagnostic{Path: path, Kind: internal.DiagEnumerationSkipped, Err: ErrSymlinkSkipped})
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		return callback(path, info)
	})
}

// Collect 在修改任何文件之前，先把全部文件路径收集到列表中
func (w *FileWalker) Collect(root string) ([]string, []internal.Diagnostic, error) {
	var files []string
	var diags []internal.Diagnostic

	err := w.Walk(root, func(path string, info os.FileInfo) error {
		files = append(files, path)
		return nil
	}, func(d internal.Diagnostic) {
		logger.Get().Debug().Err(d.Err).Msgf("跳过无法访问的路径: %s", d.Path)
		diags = append(diags, d)
	})
	if err != nil {
		if !errors.Is(err, internal.ErrEnumeration) {
			err = fmt.Errorf("%w: %v", internal.ErrEnumeration, err)
		}
		return nil, diags, err
	}

	logger.Get().Debug().Msgf("文件收集完成，共找到 %d 个文件: %s", len(files), root)
	return files, diags, nil
}
