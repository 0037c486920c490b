package cli

import (
	"context"
	"log/slog"
	"time"
)

// Reloader is implemented by *automata.Engine.
type Reloader interface {
	Watch(ctx context.Context) (<-chan string, error)
	Reload() error
}

// DefaultDebounce groups bursts of file events into one reload.
const DefaultDebounce = 100 * time.Millisecond

// WatchAndReload reloads r whenever its definitions change, until ctx is done
// or the watch channel closes. A failed reload keeps the previous registry.
func WatchAndReload(ctx context.Context, r Reloader, logger *slog.Logger, debounce time.Duration) error {
	events, err := r.Watch(ctx)
	if err != nil {
		return err
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			logger.Debug("change detected", "event", event)
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := r.Reload(); err != nil {
				logger.Error("reload failed, keeping previous definitions", "err", err)
				continue
			}
			logger.Info("definitions reloaded")
		}
	}
}
