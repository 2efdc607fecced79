package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slot-sniper/extractor"
	"slot-sniper/matcher"
	"slot-sniper/model"
)

func TestHTTP_Fetch(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantErr    error
	}{
		{name: "ok", statusCode: http.StatusOK, body: "<html><body>slots</body></html>"},
		{name: "not found", statusCode: http.StatusNotFound, wantErr: ErrUnexpectedStatus},
		{name: "server error", statusCode: http.StatusInternalServerError, wantErr: ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			html, err := NewHTTP(5*time.Second).Fetch(context.Background(), server.URL)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.body, html)
		})
	}
}

func TestHTTP_FetchUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewHTTP(time.Second).Fetch(context.Background(), url)
	assert.Error(t, err)
}

func TestHTTP_FetchCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewHTTP(0).Fetch(ctx, server.URL)
	assert.Error(t, err)
}

func TestDemo_FetchMatchesTarget(t *testing.T) {
	target := model.SlotTarget{
		Date:      "2025-02-15",
		TimeStart: "19:00",
		TimeEnd:   "21:00",
		Location:  "Central Badminton Club & Spa",
	}

	html, err := (&Demo{Target: target}).Fetch(context.Background(), "ignored")
	require.NoError(t, err)

	slots, err := extractor.Extract(html, model.Hints{})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "Central Badminton Club & Spa", slots[0].Location)
	assert.Equal(t, "Demo slot", slots[0].RawText)
	assert.True(t, matcher.Matches(slots[0], target))
}
