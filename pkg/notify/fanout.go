package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Fanout dispatches events to all configured sinks.
type Fanout struct {
	sinks []Sink
}

// NewFanout builds a dispatcher that fans out events across sinks.
func NewFanout(sinks []Sink) *Fanout {
	cp := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s == nil {
			continue
		}
		cp = append(cp, s)
	}
	return &Fanout{sinks: cp}
}

// Send forwards the event to every registered sink.
// It returns the number of sinks that successfully handled the event.
func (f *Fanout) Send(ctx context.Context, evt Event) (int, error) {
	if f == nil || len(f.sinks) == 0 {
		return 0, nil
	}

	var errs []error
	successful := 0
	for _, s := range f.sinks {
		if err := s.Send(ctx, evt); err != nil {
			errs = append(errs, fmt.Errorf("%s notifier[%s]: %w", s.Type(), s.ID(), err))
		} else {
			successful++
		}
	}
	return successful, errors.Join(errs...)
}

// Size returns the number of active sinks.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.sinks)
}

// Close releases sinks that hold connections.
func (f *Fanout) Close() error {
	if f == nil {
		return nil
	}
	return closeSinks(f.sinks)
}

func closeSinks(sinks []Sink) error {
	var errs []error
	for _, s := range sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s notifier[%s]: %w", s.Type(), s.ID(), err))
			}
		}
	}
	return errors.Join(errs...)
}
