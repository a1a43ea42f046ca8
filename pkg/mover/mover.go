package mover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/comparator"
)

// Mover 负责把文件移动到规划好的位置，并处理重名冲突
type Mover struct {
	Fs         afero.Fs
	Comparator *comparator.Comparator
	// OnDiagnostic 接收比较文件时出现的非致命错误，可为空
	OnDiagnostic func(internal.Diagnostic)

	mu    sync.Mutex
	locks map[string]*pathLock
}

// pathLock 引用计数归零时从 locks 中删除
type pathLock struct {
	sync.Mutex
	refs int
}

func New(fs afero.Fs) *Mover {
	return &Mover{
		Fs:         fs,
		Comparator: comparator.New(fs),
		locks:      make(map[string]*pathLock),
	}
}

// Move 将 source 移动到 planned。目标已存在时：内容相同则跳过，不同则追加 _N 后缀。
// dryRun 为 true 时只返回将要执行的操作，不修改文件系统。
func (m *Mover) Move(source, planned string, dryRun bool) internal.MoveOutcome {
	if samePath(source, planned) {
		return internal.SkippedSamePath(source)
	}

	// 同一目标路径的"检查-重命名"必须串行
	unlock := m.lock(planned)
	defer unlock()

	target := planned
	renamed := false

	occupied, err := m.exists(planned)
	if err != nil {
		return internal.Failed(source, fmt.Errorf("检查目标文件是否存在失败: %w", err))
	}

	if occupied {
		same, err := m.Comparator.Identical(source, planned)
		if err != nil && m.OnDiagnostic != nil {
			m.OnDiagnostic(internal.Diagnostic{Path: source, Kind: internal.DiagComparisonIO, Err: err})
		}
		if same {
			return internal.SkippedIdentical(source, planned)
		}

		var self bool
		target, self, err = m.freeName(source, planned)
		if err != nil {
			return internal.Failed(source, fmt.Errorf("检查目标文件是否存在失败: %w", err))
		}
		if self {
			// 之前的运行已经把它放在了带后缀的位置
			return internal.SkippedSamePath(source)
		}
		renamed = true
	}

	if dryRun {
		return outcome(source, target, renamed, true)
	}

	if err := m.Fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return internal.Failed(source, fmt.Errorf("%w: %s: %v", internal.ErrDirectoryCreation, filepath.Dir(target), err))
	}

	if err := m.Fs.Rename(source, target); err != nil {
		return internal.Failed(source, fmt.Errorf("%w: %s -> %s: %v", internal.ErrRename, source, target, err))
	}

	return outcome(source, target, renamed, false)
}

// CollisionName 返回 <stem>_<n><ext>
func CollisionName(path string, n int) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		// .bashrc 之类的隐藏文件没有扩展名
		stem, ext = base, ""
	}

	return filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
}

// freeName 依次尝试 _1, _2, ... 直到找到未被占用的名字。
// 如果某个候选名就是 source 自己，self 返回 true。
func (m *Mover) freeName(source, planned string) (candidate string, self bool, err error) {
	for i := 1; ; i++ {
		candidate = CollisionName(planned, i)
		if samePath(candidate, source) {
			return candidate, true, nil
		}
		occupied, err := m.exists(candidate)
		if err != nil {
			return "", false, err
		}
		if !occupied {
			return candidate, false, nil
		}
	}
}

// exists 不跟随符号链接，悬空链接也视为已占用
func (m *Mover) exists(path string) (bool, error) {
	var err error
	if lstater, ok := m.Fs.(afero.Lstater); ok {
		_, _, err = lstater.LstatIfPossible(path)
	} else {
		_, err = m.Fs.Stat(path)
	}
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
		return false, nil
	}
	return false, err
}

func (m *Mover) lock(path string) func() {
	m.mu.Lock()
	if m.locks == nil {
		m.locks = make(map[string]*pathLock)
	}
	l, ok := m.locks[path]
	if !ok {
		l = &pathLock{}
		m.locks[path] = l
	}
	l.refs++
	m.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()

		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, path)
		}
		m.mu.Unlock()
	}
}

func outcome(source, target string, renamed, dryRun bool) internal.MoveOutcome {
	if renamed {
		return internal.Renamed(source, target, dryRun)
	}
	return internal.Moved(source, target, dryRun)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
