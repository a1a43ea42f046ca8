//go:build windows

package timestamp

import (
	"os"
	"syscall"
	"time"
)

func attributeData(path string) (*syscall.Win32FileAttributeData, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	data, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return nil, errUnsupported
	}
	return data, nil
}

func birthTime(path string) (time.Time, error) {
	data, err := attributeData(path)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, data.CreationTime.Nanoseconds()), nil
}

func accessTime(path string) (time.Time, error) {
	data, err := attributeData(path)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, data.LastAccessTime.Nanoseconds()), nil
}
