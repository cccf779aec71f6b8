package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/vscroll/internal/log"
	"github.com/google/uuid"
	"github.com/nxadm/tail"
)

// followBuffer is how many lines may be read ahead of the consumer.
const followBuffer = 1024

// Follow streams the lines of path as items, starting with the lines already
// in the file and continuing with everything appended to it. The channel is
// closed when ctx is done.
func Follow(ctx context.Context, path string) (<-chan Item, error) {
	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to follow %s: %w", path, err)
	}

	out := make(chan Item, followBuffer)
	go func() {
		defer log.RecoverPanic("follow", nil)
		defer close(out)
		defer t.Cleanup()
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case line, ok := <-t.Lines:
				if !ok {
					return
				}
				if line.Err != nil {
					slog.Warn("Failed to read followed line", "path", path, "error", line.Err)
					continue
				}
				item := Item{
					ID:     uuid.NewString(),
					Title:  line.Text,
					Detail: fmt.Sprintf("line %d", line.Num),
				}
				select {
				case out <- item:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
