// Package poller runs the fetch, extract, match and notify cycle on a fixed
// interval until its context is cancelled.
package poller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"slot-sniper/extractor"
	"slot-sniper/fetcher"
	"slot-sniper/matcher"
	"slot-sniper/model"
	"slot-sniper/notifier"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, msg model.Message) []notifier.Result
}

type Poller struct {
	Fetcher    fetcher.Fetcher
	Dispatcher Dispatcher
	Target     model.SlotTarget
	Hints      model.Hints
	BookingURL string
	Interval   time.Duration
	// FetchTimeout bounds a single fetch and parse. Zero means no extra bound.
	FetchTimeout time.Duration

	Log *slog.Logger
}

// Cycle is what one pass produced. Err is set when the page could not be
// fetched or parsed, in which case Slots is empty.
type Cycle struct {
	Slots    []model.Slot
	Matches  []model.Slot
	Notified []notifier.Result
	Err      error
}

// Run checks immediately, then once per Interval. It only returns when ctx
// is cancelled, and always returns nil then.
func (p *Poller) Run(ctx context.Context) error {
	log := p.logger()
	t := time.NewTimer(p.Interval)
	t.Stop()

	for {
		if ctx.Err() != nil {
			log.Info("stopped", slog.String("reason", context.Cause(ctx).Error()))
			return nil
		}

		p.RunOnce(ctx)

		log.Info(fmt.Sprintf("Next check in %d seconds", int(p.Interval.Seconds())))
		t.Reset(p.Interval)
		select {
		case <-ctx.Done():
			t.Stop()
		case <-t.C:
		}
	}
}

// RunOnce performs a single cycle and dispatches a notification when any
// slot matches.
func (p *Poller) RunOnce(ctx context.Context) Cycle {
	log := p.logger()

	slots, err := p.scrape(ctx)
	if err != nil {
		log.Error("scrape failed", slog.String("url", p.BookingURL), slog.String("error", err.Error()))
		return Cycle{Err: err}
	}

	c := Cycle{Slots: slots, Matches: matcher.Filter(slots, p.Target)}
	if len(c.Matches) == 0 {
		log.Debug("no matching slots this run", slog.Int("candidates", len(slots)))
		return c
	}

	log.Info("target slot(s) found", slog.Int("count", len(c.Matches)), slog.Any("slots", c.Matches))
	if p.Dispatcher != nil {
		c.Notified = p.Dispatcher.Dispatch(ctx, notifier.Format(c.Matches, p.BookingURL))
	}

	return c
}

func (p *Poller) scrape(ctx context.Context) (slots []model.Slot, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during scrape: %v", r)
		}
	}()

	if p.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.FetchTimeout)
		defer cancel()
	}

	html, err := p.Fetcher.Fetch(ctx, p.BookingURL)
	if err != nil {
		return nil, err
	}

	return extractor.Extract(html, p.Hints)
}

func (p *Poller) logger() *slog.Logger {
	if p.Log == nil {
		return slog.Default()
	}
	return p.Log
}
