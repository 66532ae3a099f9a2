package messaging

import (
	"context"
	"errors"

	"attendance-tasks/domain/ports"
)

// Fanout delivers every event to all sinks. One failing sink does not stop
// the others.
type Fanout []ports.TaskEventPort

// NewFanout drops nil sinks and returns nil when none remain.
func NewFanout(sinks ...ports.TaskEventPort) ports.TaskEventPort {
	var f Fanout
	for _, s := range sinks {
		if s != nil {
			f = append(f, s)
		}
	}
	switch len(f) {
	case 0:
		return nil
	case 1:
		return f[0]
	}
	return f
}

func (f Fanout) PublishTaskEvent(ctx context.Context, event *ports.TaskEvent) error {
	var errs []error
	for _, sink := range f {
		if err := sink.PublishTaskEvent(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
