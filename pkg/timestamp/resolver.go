// Package timestamp 解析文件的时间属性。
//
// 创建时间在很多平台或文件系统上无法获取，因此解析按优先级依次尝试多个来源，
// 任何一个成功即返回；全部失败时使用当前时间，并通过 Diagnostics 报告降级。
package timestamp

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/internal"
)

// errUnsupported 当前平台不支持该时间属性
var errUnsupported = errors.New("当前平台不支持")

// Resolution 一次解析的结果
type Resolution struct {
	Time time.Time
	// Source 实际采用的时间来源；使用当前时间兜底时为空
	Source      internal.TimeAttribute
	Fallback    bool
	Diagnostics []internal.Diagnostic
}

type attempt struct {
	source internal.TimeAttribute
	fetch  func(path string) (time.Time, error)
	// notice 失败时的降级说明
	notice string
}

type Resolver struct {
	Fs  afero.Fs
	Now func() time.Time

	birthTime  func(path string) (time.Time, error)
	accessTime func(path string) (time.Time, error)
}

// NewResolver 创建时间和访问时间直接读取操作系统，只有 fs 是 *afero.OsFs 时可用；
// 其他文件系统上这两项视为不支持，修改时间始终通过 fs 读取。
func NewResolver(fs afero.Fs) *Resolver {
	r := &Resolver{
		Fs:         fs,
		Now:        time.Now,
		birthTime:  unsupported,
		accessTime: unsupported,
	}
	if _, ok := fs.(*afero.OsFs); ok {
		r.birthTime = birthTime
		r.accessTime = accessTime
	}
	return r
}

func unsupported(string) (time.Time, error) {
	return time.Time{}, errUnsupported
}

// Resolve 返回 path 的 kind 时间，不会失败
func (r *Resolver) Resolve(path string, kind internal.TimeAttribute) Resolution {
	var res Resolution

	for _, a := range r.chain(kind) {
		t, err := a.fetch(path)
		if err == nil {
			res.Time = t
			res.Source = a.source
			return res
		}
		res.Diagnostics = append(res.Diagnostics, internal.Diagnostic{
			Path: path,
			Kind: internal.DiagMetadataUnavailable,
			Err:  fmt.Errorf("%w: %s: %v", internal.ErrMetadataUnavailable, a.notice, err),
		})
	}

	res.Time = r.Now()
	res.Fallback = true
	return res
}

// chain 按优先级返回尝试列表。创建时间失败后回退到修改时间；
// 修改时间和访问时间各自独立，失败后只剩当前时间兜底。
func (r *Resolver) chain(kind internal.TimeAttribute) []attempt {
	modification := attempt{
		source: internal.TimeModification,
		fetch:  r.modTime,
		notice: "无法获取修改时间，使用当前时间",
	}

	switch kind {
	case internal.TimeCreation:
		return []attempt{
			{
				source: internal.TimeCreation,
				fetch:  r.birthTime,
				notice: "创建时间不可用，回退到修改时间",
			},
			modification,
		}
	case internal.TimeAccess:
		return []attempt{{
			source: internal.TimeAccess,
			fetch:  r.accessTime,
			notice: "无法获取访问时间，使用当前时间",
		}}
	default:
		return []attempt{modification}
	}
}

func (r *Resolver) modTime(path string) (time.Time, error) {
	info, err := r.Fs.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
