package employee

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Subscribe listens on the org_employees channel (a trigger NOTIFYs on
// every employees write) and re-reads the full collection for each
// notification. The callback always receives an independent snapshot, so
// consumers may recompute aggregates concurrently without coordination.
// Callers must invoke the returned unsubscribe func on teardown.
func (s *Store) Subscribe(ctx context.Context, fn func([]Employee)) (func(), error) {
	if !s.configured() {
		return func() {}, nil
	}

	subCtx, cancel := context.WithCancel(ctx)

	conn, err := s.DB.Acquire(subCtx)
	if err != nil {
		cancel()
		return nil, err
	}
	if _, err := conn.Exec(subCtx, "LISTEN org_employees"); err != nil {
		conn.Release()
		cancel()
		return nil, err
	}

	go func() {
		defer conn.Release()
		for {
			_, err := conn.Conn().WaitForNotification(subCtx)
			if err != nil {
				if errors.Is(err, context.Canceled) || subCtx.Err() != nil {
					return
				}
				slog.Warn("employee subscription wait failed", "err", err)
				return
			}

			readCtx, readCancel := context.WithTimeout(subCtx, 10*time.Second)
			emps, err := s.List(readCtx)
			readCancel()
			if err != nil {
				slog.Warn("employee subscription reload failed", "err", err)
				continue
			}
			fn(emps)
		}
	}()

	return cancel, nil
}
