package planner

import (
	"path/filepath"
	"time"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/classifier"
)

// Planner 计算文件的目标路径：<扩展名>/<YYYY>/<MM>/<DD>/<大小分类>/<文件名>
type Planner struct {
	Root     string
	Location *time.Location
	Bucketer *classifier.Bucketer
}

func New(root string, loc *time.Location, bucketer *classifier.Bucketer) *Planner {
	if loc == nil {
		loc = time.Local
	}
	return &Planner{
		Root:     root,
		Location: loc,
		Bucketer: bucketer,
	}
}

// Plan 返回相对于 Root 的目标路径
func (p *Planner) Plan(path string, t time.Time, category internal.SizeCategory) string {
	return filepath.Join(
		p.Bucketer.Bucket(path),
		filepath.FromSlash(p.DateDir(t)),
		string(category),
		filepath.Base(path),
	)
}

// Destination 返回 Root 下的完整目标路径
func (p *Planner) Destination(path string, t time.Time, category internal.SizeCategory) string {
	return filepath.Join(p.Root, p.Plan(path, t, category))
}

// DateDir 按本地日历日期返回 YYYY/MM/DD
func (p *Planner) DateDir(t time.Time) string {
	loc := p.Location
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(internal.DateLayout)
}
