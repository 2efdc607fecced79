package fetcher

import (
	"context"
	"fmt"
	"html"

	"slot-sniper/model"
)

// Demo serves a synthetic page holding one slot equal to the target, so the
// whole pipeline can be tried without a real booking site.
type Demo struct {
	Target model.SlotTarget
}

func (d *Demo) Fetch(_ context.Context, _ string) (string, error) {
	return fmt.Sprintf(`<html><body><div data-date="%s" data-time="%s - %s" data-location="%s">Demo slot</div></body></html>`,
		html.EscapeString(d.Target.Date),
		html.EscapeString(d.Target.TimeStart),
		html.EscapeString(d.Target.TimeEnd),
		html.EscapeString(d.Target.Location),
	), nil
}
