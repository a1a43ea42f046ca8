package organizer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/internal"
)

var june15 = time.Date(2023, 6, 15, 12, 0, 0, 0, time.Local)

func testOptions(root string) Options {
	return Options{
		SourceDir:     root,
		TimeAttribute: internal.TimeModification,
		Thresholds:    internal.DefaultSizeThresholds(),
		Location:      time.Local,
		IncludeHidden: true,
	}
}

func createFile(t *testing.T, root, rel string, content []byte, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("设置文件时间失败: %v", err)
	}
	return path
}

func createSizedFile(t *testing.T, root, rel string, size int64, mtime time.Time) string {
	t.Helper()
	path := createFile(t, root, rel, nil, mtime)
	if err := os.Truncate(path, size); err != nil {
		t.Fatalf("设置文件大小失败: %v", err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("设置文件时间失败: %v", err)
	}
	return path
}

func run(t *testing.T, opts Options) *Report {
	t.Helper()
	p, err := New(opts, afero.NewOsFs())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	report, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return report
}

// listFiles 返回 root 下所有文件的相对路径及内容
func listFiles(t *testing.T, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			rel, _ := filepath.Rel(root, path)
			files[filepath.ToSlash(rel)] = string(data)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("遍历目录失败: %v", err)
	}
	return files
}

func TestProcessor_ConcreteScenario(t *testing.T) {
	root := t.TempDir()
	createSizedFile(t, root, "report.pdf", 2<<20, june15)
	createSizedFile(t, root, "notes.txt", 500<<10, june15)

	report := run(t, testOptions(root))

	for _, rel := range []string{"pdf/2023/06/15/medium/report.pdf", "txt/2023/06/15/small/notes.txt"} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			t.Errorf("Expected %s to exist: %v", rel, err)
		}
	}
	if report.Stats.Moved != 2 || report.Stats.Processed != 2 {
		t.Errorf("Unexpected stats: %+v", report.Stats)
	}
	if len(report.Outcomes) != 2 {
		t.Errorf("Expected exactly one outcome per file, got %d", len(report.Outcomes))
	}
}

func TestProcessor_Idempotent(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "a/data.txt", []byte("one"), june15)
	createFile(t, root, "b/data.txt", []byte("two"), june15)
	createFile(t, root, "c/data.txt", []byte("three"), june15)
	createFile(t, root, "photo.JPG", []byte("jpeg"), june15)
	createFile(t, root, "Makefile", []byte("all:"), june15)

	first := run(t, testOptions(root))
	if first.Stats.Failed != 0 {
		t.Fatalf("First run failures: %+v", first.Outcomes)
	}
	before := listFiles(t, root)

	second := run(t, testOptions(root))

	for _, o := range second.Outcomes {
		if o.Kind != internal.OutcomeSkippedSamePath {
			t.Errorf("Second run should skip everything, got %s", o)
		}
	}
	after := listFiles(t, root)
	if len(before) != len(after) {
		t.Fatalf("File set changed: %v -> %v", before, after)
	}
	for rel, content := range before {
		if after[rel] != content {
			t.Errorf("File %s changed on second run", rel)
		}
	}
}

func TestProcessor_CollisionNamingAndNoDataLoss(t *testing.T) {
	root := t.TempDir()
	contents := map[string]string{
		"a/data.txt": "first",
		"b/data.txt": "second",
		"c/data.txt": "third",
	}
	for rel, content := range contents {
		createFile(t, root, rel, []byte(content), june15)
	}

	report := run(t, testOptions(root))

	got := listFiles(t, root)
	want := map[string]string{
		"txt/2023/06/15/small/data.txt":   "first",
		"txt/2023/06/15/small/data_1.txt": "second",
		"txt/2023/06/15/small/data_2.txt": "third",
	}
	for rel, content := range want {
		if got[rel] != content {
			t.Errorf("Expected %s = %q, got %q", rel, content, got[rel])
		}
	}
	if len(got) != len(contents) {
		t.Errorf("Expected %d files after run, got %v", len(contents), got)
	}
	if report.Stats.Moved != 1 || report.Stats.Renamed != 2 {
		t.Errorf("Unexpected stats: %+v", report.Stats)
	}
}

func TestProcessor_IdenticalContentSkipped(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "a/dup.txt", []byte("same bytes"), june15)
	createFile(t, root, "b/dup.txt", []byte("same bytes"), june15)

	report := run(t, testOptions(root))

	if report.Stats.Moved != 1 || report.Stats.SkippedIdentical != 1 {
		t.Fatalf("Unexpected stats: %+v", report.Stats)
	}
	got := listFiles(t, root)
	if _, ok := got["b/dup.txt"]; !ok {
		t.Error("Identical file processed second must stay at its original location")
	}
	if _, ok := got["txt/2023/06/15/small/dup_1.txt"]; ok {
		t.Error("No extra copy should be created for identical content")
	}
}

func TestProcessor_DryRunIsPure(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "a/data.txt", []byte("first"), june15)
	createFile(t, root, "b/data.txt", []byte("second"), june15)
	createSizedFile(t, root, "big.iso", 11<<20, june15)
	before := listFiles(t, root)

	opts := testOptions(root)
	opts.DryRun = true
	report := run(t, opts)

	after := listFiles(t, root)
	if len(before) != len(after) {
		t.Fatalf("Dry run changed files: %v -> %v", before, after)
	}
	for rel := range before {
		if _, ok := after[rel]; !ok {
			t.Errorf("Dry run moved %s", rel)
		}
	}
	for _, dir := range []string{"txt", "iso"} {
		if _, err := os.Stat(filepath.Join(root, dir)); !os.IsNotExist(err) {
			t.Errorf("Dry run created directory %s", dir)
		}
	}

	if report.Stats.Moved+report.Stats.Renamed != 3 {
		t.Errorf("Dry run should still report intended moves, got %+v", report.Stats)
	}
	for _, o := range report.Outcomes {
		if !o.DryRun {
			t.Errorf("Expected dry-run outcome, got %s", o)
		}
	}
}

func TestProcessor_SizeBuckets(t *testing.T) {
	root := t.TempDir()
	opts := testOptions(root)
	opts.Thresholds = internal.SizeThresholds{SmallMax: 100, MediumMax: 200}

	createSizedFile(t, root, "in/s.bin", 99, june15)
	createSizedFile(t, root, "in/m.dat", 100, june15)
	createSizedFile(t, root, "in/l.raw", 200, june15)

	run(t, opts)

	for _, rel := range []string{
		"bin/2023/06/15/small/s.bin",
		"dat/2023/06/15/medium/m.dat",
		"raw/2023/06/15/large/l.raw",
	} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			t.Errorf("Expected %s: %v", rel, err)
		}
	}
}

func TestProcessor_ConcurrentPlanningMatchesSequential(t *testing.T) {
	build := func(root string) {
		for i, name := range []string{"a", "b", "c", "d", "e", "f"} {
			createFile(t, root, name+"/same.txt", []byte(name), june15.Add(time.Duration(i)*time.Minute))
		}
		createFile(t, root, "x.md", []byte("x"), june15.AddDate(0, 0, 1))
	}

	seqRoot := t.TempDir()
	build(seqRoot)
	seq := run(t, testOptions(seqRoot))

	parRoot := t.TempDir()
	build(parRoot)
	opts := testOptions(parRoot)
	opts.Workers = 4
	par := run(t, opts)

	if len(seq.Outcomes) != len(par.Outcomes) {
		t.Fatalf("Outcome count differs: %d vs %d", len(seq.Outcomes), len(par.Outcomes))
	}
	for i := range seq.Outcomes {
		relSeq, _ := filepath.Rel(seqRoot, seq.Outcomes[i].Destination)
		relPar, _ := filepath.Rel(parRoot, par.Outcomes[i].Destination)
		if relSeq != relPar || seq.Outcomes[i].Kind != par.Outcomes[i].Kind {
			t.Errorf("Outcome %d differs: %s vs %s", i, seq.Outcomes[i], par.Outcomes[i])
		}
	}
}

func TestProcessor_EnumerationFailure(t *testing.T) {
	p, err := New(testOptions(filepath.Join(t.TempDir(), "missing")), afero.NewOsFs())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = p.Run(context.Background())
	if !errors.Is(err, internal.ErrEnumeration) {
		t.Errorf("Expected ErrEnumeration, got %v", err)
	}
}

func TestProcessor_InvalidThresholds(t *testing.T) {
	opts := testOptions(t.TempDir())
	opts.Thresholds = internal.SizeThresholds{SmallMax: 10, MediumMax: 10}

	if _, err := New(opts, afero.NewOsFs()); err == nil {
		t.Error("Expected error for small_max >= medium_max")
	}
}

func TestProcessor_Cancelled(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "a.txt", []byte("a"), june15)
	createFile(t, root, "b.txt", []byte("b"), june15)

	p, err := New(testOptions(root), afero.NewOsFs())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := p.Run(ctx)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.Stats.Interrupted || len(report.Outcomes) != 0 {
		t.Errorf("Expected interrupted run with no outcomes, got %+v", report.Stats)
	}
	got := listFiles(t, root)
	if _, ok := got["a.txt"]; !ok {
		t.Error("Unprocessed files must stay untouched")
	}
}

type vanishingProgress struct {
	fs     afero.Fs
	victim string
	events []internal.MoveOutcome
	total  int
	done   bool
}

func (v *vanishingProgress) Start(total int) {
	v.total = total
	_ = v.fs.Remove(v.victim)
}
func (v *vanishingProgress) Update(o internal.MoveOutcome)     { v.events = append(v.events, o) }
func (v *vanishingProgress) Diagnostic(d internal.Diagnostic) {}
func (v *vanishingProgress) Finish(stats internal.RunStats)   { v.done = true }

func TestProcessor_VanishedFileAndProgress(t *testing.T) {
	fs := afero.NewMemMapFs()
	mtime := time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)
	for _, name := range []string{"/src/keep.txt", "/src/gone.txt"} {
		if err := afero.WriteFile(fs, name, []byte(name), 0644); err != nil {
			t.Fatalf("写入文件失败: %v", err)
		}
		if err := fs.Chtimes(name, mtime, mtime); err != nil {
			t.Fatalf("设置时间失败: %v", err)
		}
	}

	opts := testOptions("/src")
	opts.Location = time.UTC
	p, err := New(opts, fs)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	progress := &vanishingProgress{fs: fs, victim: "/src/gone.txt"}
	p.Progress = progress

	report, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	kinds := make(map[string]internal.OutcomeKind)
	for _, o := range report.Outcomes {
		kinds[o.Source] = o.Kind
	}
	if kinds["/src/gone.txt"] != internal.OutcomeVanished {
		t.Errorf("Expected vanished outcome, got %v", kinds)
	}
	if kinds["/src/keep.txt"] != internal.OutcomeMoved {
		t.Errorf("Expected moved outcome, got %v", kinds)
	}
	if ok, _ := afero.Exists(fs, "/src/txt/2023/06/15/small/keep.txt"); !ok {
		t.Error("Expected keep.txt at its planned destination")
	}
	if progress.total != 2 || len(progress.events) != 2 || !progress.done {
		t.Errorf("Unexpected progress events: total=%d events=%d done=%v", progress.total, len(progress.events), progress.done)
	}
}

func TestProcessor_CreationFallbackReported(t *testing.T) {
	fs := afero.NewMemMapFs()
	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := afero.WriteFile(fs, "/src/a.log", []byte("log"), 0644); err != nil {
		t.Fatalf("写入文件失败: %v", err)
	}
	if err := fs.Chtimes("/src/a.log", mtime, mtime); err != nil {
		t.Fatalf("设置时间失败: %v", err)
	}

	opts := testOptions("/src")
	opts.TimeAttribute = internal.TimeCreation
	opts.Location = time.UTC
	p, err := New(opts, fs)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	report, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// 内存文件系统不提供创建时间
	if len(report.Diagnostics) == 0 || report.Diagnostics[0].Kind != internal.DiagMetadataUnavailable {
		t.Errorf("Expected metadata diagnostic, got %v", report.Diagnostics)
	}
	if ok, _ := afero.Exists(fs, "/src/log/2020/01/02/small/a.log"); !ok {
		t.Error("Expected modification-time based destination")
	}
}

func TestProcessor_OutcomeOrderFollowsEnumeration(t *testing.T) {
	root := t.TempDir()
	names := []string{"c.txt", "a.txt", "b.txt"}
	for _, n := range names {
		createFile(t, root, n, []byte(n), june15)
	}

	report := run(t, testOptions(root))

	var sources []string
	for _, o := range report.Outcomes {
		sources = append(sources, filepath.Base(o.Source))
	}
	if !sort.StringsAreSorted(sources) {
		t.Errorf("Expected lexical processing order, got %v", sources)
	}
}
