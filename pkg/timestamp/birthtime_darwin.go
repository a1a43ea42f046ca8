//go:build darwin

package timestamp

import (
	"time"

	"golang.org/x/sys/unix"
)

func birthTime(path string) (time.Time, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}, err
	}
	if st.Btim.Sec == 0 && st.Btim.Nsec == 0 {
		return time.Time{}, errUnsupported
	}
	return time.Unix(st.Btim.Unix()), nil
}

func accessTime(path string) (time.Time, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}, err
	}
	return time.Unix(st.Atim.Unix()), nil
}
