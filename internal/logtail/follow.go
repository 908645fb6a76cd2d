package logtail

import (
	"context"
	"fmt"
	"io"

	"github.com/hpcloud/tail"
)

// Follow calls emit for every line appended to path until ctx is done. It
// starts at the current end of the file and survives rotation. A missing
// file is waited for.
func Follow(ctx context.Context, path string, emit func(string)) error {
	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: false,
		Location:  &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("follow log: %w", err)
	}
	defer t.Cleanup()
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				return fmt.Errorf("follow log: %w", line.Err)
			}
			emit(line.Text)
		}
	}
}
