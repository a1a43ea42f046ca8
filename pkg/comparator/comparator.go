package comparator

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/internal"
)

const BufferSize = 32 * 1024

type Comparator struct {
	Fs afero.Fs
}

func New(fs afero.Fs) *Comparator {
	return &Comparator{Fs: fs}
}

// Identical 逐块比较两个文件的全部字节。返回的错误包装了 ErrComparisonIO，
// 此时结果总是 false。
func (c *Comparator) Identical(a, b string) (bool, error) {
	fa, err := c.Fs.Open(a)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", internal.ErrComparisonIO, a, err)
	}
	defer fa.Close()

	fb, err := c.Fs.Open(b)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", internal.ErrComparisonIO, b, err)
	}
	defer fb.Close()

	// 大小不同则无需读取内容
	if ia, err := fa.Stat(); err == nil {
		if ib, err := fb.Stat(); err == nil && ia.Size() != ib.Size() {
			return false, nil
		}
	}

	bufA := make([]byte, BufferSize)
	bufB := make([]byte, BufferSize)
	for {
		na, errA := io.ReadFull(fa, bufA)
		nb, errB := io.ReadFull(fb, bufB)

		if errA != nil && errA != io.EOF && errA != io.ErrUnexpectedEOF {
			return false, fmt.Errorf("%w: %s: %v", internal.ErrComparisonIO, a, errA)
		}
		if errB != nil && errB != io.EOF && errB != io.ErrUnexpectedEOF {
			return false, fmt.Errorf("%w: %s: %v", internal.ErrComparisonIO, b, errB)
		}

		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}

		doneA := errA != nil
		doneB := errB != nil
		if doneA || doneB {
			return doneA == doneB, nil
		}
	}
}
