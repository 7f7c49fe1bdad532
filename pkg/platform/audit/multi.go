package audit

import (
	"context"
	"errors"
)

// Multi fans a single append out to several sinks, e.g. postgres plus Kafka.
// Every sink sees every event; errors are joined so the worker can log them
// together.
type Multi []Store

func (m Multi) Append(ctx context.Context, event Event) error {
	var errs []error
	for _, store := range m {
		if err := store.Append(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
