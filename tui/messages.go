package tui

import (
	"github.com/moyu-x/file-organizer/internal"
)

type progressMsg internal.ProgressUpdate

type processCompleteMsg struct{}
