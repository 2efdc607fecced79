// Package notifier renders matched slots into alerts and delivers them
// through Telegram, email and ntfy.
package notifier

import (
	"context"
	"errors"
	"log/slog"

	"slot-sniper/model"
)

var ErrMissingCredentials = errors.New("missing credentials")

// Channel delivers one message through one transport.
type Channel interface {
	Name() string
	Send(ctx context.Context, msg model.Message) error
}

// Result is the outcome of one channel's delivery attempt.
type Result struct {
	Channel string
	Err     error
}

func (r Result) OK() bool { return r.Err == nil }

type Dispatcher struct {
	channels []Channel
	log      *slog.Logger
}

func NewDispatcher(log *slog.Logger, channels ...Channel) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{channels: channels, log: log}
}

func (d *Dispatcher) Channels() []string {
	names := make([]string, 0, len(d.channels))
	for _, ch := range d.channels {
		names = append(names, ch.Name())
	}
	return names
}

// Dispatch tries every channel in turn. A failing channel is logged and
// never stops the others.
func (d *Dispatcher) Dispatch(ctx context.Context, msg model.Message) []Result {
	results := make([]Result, 0, len(d.channels))
	for _, ch := range d.channels {
		err := ch.Send(ctx, msg)
		if err != nil {
			d.log.Error("notification failed", slog.String("channel", ch.Name()),
				slog.String("error", err.Error()))
		} else {
			d.log.Info("notification sent", slog.String("channel", ch.Name()))
		}
		results = append(results, Result{Channel: ch.Name(), Err: err})
	}
	return results
}
