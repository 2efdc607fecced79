// Package fetcher loads the raw HTML of the booking page.
package fetcher

import (
	"context"
	"errors"
	"time"
)

const (
	UserAgent      = "slot-sniper/1.0"
	DefaultTimeout = 30 * time.Second
)

var ErrUnexpectedStatus = errors.New("unexpected status code")

// Fetcher returns the HTML found at url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}
