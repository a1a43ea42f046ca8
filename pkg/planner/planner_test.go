package planner

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/classifier"
)

func TestPlanner_Plan(t *testing.T) {
	p := New("/src", time.UTC, nil)
	ts := time.Date(2023, 6, 15, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		path     string
		category internal.SizeCategory
		want     string
	}{
		{"/src/report.pdf", internal.SizeMedium, "pdf/2023/06/15/medium/report.pdf"},
		{"/src/deep/notes.TXT", internal.SizeSmall, "txt/2023/06/15/small/notes.TXT"},
		{"/src/Makefile", internal.SizeLarge, "no_extension/2023/06/15/large/Makefile"},
		{"/src/.env", internal.SizeSmall, "no_extension/2023/06/15/small/.env"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			got := p.Plan(tc.path, ts, tc.category)
			if got != filepath.FromSlash(tc.want) {
				t.Errorf("Plan(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}

func TestPlanner_Destination(t *testing.T) {
	p := New("/src", time.UTC, classifier.NewBucketer(nil, false))
	ts := time.Date(2023, 6, 15, 10, 0, 0, 0, time.UTC)

	got := p.Destination("/src/a/report.pdf", ts, internal.SizeMedium)
	want := filepath.FromSlash("/src/pdf/2023/06/15/medium/report.pdf")
	if got != want {
		t.Errorf("Destination() = %q, want %q", got, want)
	}
}

func TestPlanner_DateDir_UsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	ts := time.Date(2023, 6, 15, 20, 0, 0, 0, time.UTC)

	if got := New("/", time.UTC, nil).DateDir(ts); got != "2023/06/15" {
		t.Errorf("UTC DateDir = %q", got)
	}
	if got := New("/", tokyo, nil).DateDir(ts); got != "2023/06/16" {
		t.Errorf("JST DateDir = %q, want next calendar day", got)
	}
}

func TestPlanner_SameInputsSamePath(t *testing.T) {
	p := New("/src", time.UTC, nil)
	ts := time.Date(2023, 6, 15, 1, 0, 0, 0, time.UTC)

	a := p.Plan("/src/x/data.csv", ts, internal.SizeSmall)
	b := p.Plan("/src/y/data.csv", ts.Add(time.Hour), internal.SizeSmall)
	if a != b {
		t.Errorf("Expected colliding plans, got %q and %q", a, b)
	}
}
