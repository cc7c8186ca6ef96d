package network

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/leighmacdonald/board-tui/internal/bus"
	"github.com/nxadm/tail"
)

var ErrOpen = errors.New("failed to open replay file")

// Replay plays back a file of recorded envelopes, one JSON object per line, as if they had been
// received from a server. The file is followed so lines appended later are also delivered.
type Replay struct {
	filePath  string
	publisher bus.Publisher
	activeMu  *sync.Mutex
	active    bool
}

func NewReplay(filePath string, publisher bus.Publisher) *Replay {
	return &Replay{
		filePath:  filePath,
		publisher: publisher,
		activeMu:  &sync.Mutex{},
	}
}

func (r *Replay) IsSupported() bool {
	return true
}

func (r *Replay) Connect(ctx context.Context) {
	r.activeMu.Lock()
	defer r.activeMu.Unlock()

	if r.active {
		return
	}

	r.active = true

	go r.run(ctx)
}

func (r *Replay) SendMessage(command string, _ any) {
	slog.Info("Replay ignoring command", slog.String("command", command))
}

func (r *Replay) run(ctx context.Context) {
	errPlay := r.play(ctx)

	r.activeMu.Lock()
	r.active = false
	r.activeMu.Unlock()

	if ctx.Err() != nil {
		return
	}

	r.publisher.Publish(bus.Disconnected{Err: errPlay})
}

func (r *Replay) play(ctx context.Context) error {
	tailFile, errTail := tail.TailFile(r.filePath, tail.Config{
		Follow:    true,
		ReOpen:    false,
		MustExist: true,
		// Ensure we don't see the tail log messages in stdout and mangle the ui
		Logger: tail.DiscardingLogger,
	})
	if errTail != nil {
		return errors.Join(errTail, ErrOpen)
	}

	defer func() {
		if err := tailFile.Stop(); err != nil {
			slog.Error("Failed to stop replay cleanly", slog.String("error", err.Error()))
		}

		tailFile.Cleanup()
	}()

	r.publisher.Publish(bus.Connected{})

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-tailFile.Lines:
			if !ok {
				return tailFile.Err()
			}

			if line == nil {
				continue
			}

			if line.Err != nil {
				slog.Warn("Failed to read replay line", slog.String("error", line.Err.Error()))

				continue
			}

			text := strings.TrimSpace(line.Text)
			if text == "" || strings.HasPrefix(text, "#") {
				continue
			}

			msg, errDecode := DecodeMessage([]byte(text))
			if errDecode != nil {
				slog.Warn("Ignoring replay line", slog.String("error", errDecode.Error()))

				continue
			}

			r.publisher.Publish(msg)
		}
	}
}
