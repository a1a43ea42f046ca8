//go:build !linux && !darwin && !windows

package timestamp

import "time"

func birthTime(path string) (time.Time, error) {
	return time.Time{}, errUnsupported
}

func accessTime(path string) (time.Time, error) {
	return time.Time{}, errUnsupported
}
