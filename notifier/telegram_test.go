package notifier

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slot-sniper/model"
)

func newTestTelegram(t *testing.T, botToken, chatID string, handler http.HandlerFunc) *Telegram {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewTelegram(botToken, chatID).WithAPIURL(server.URL + "/")
}

func TestTelegram_Send(t *testing.T) {
	tg := newTestTelegram(t, "test-token", "12345", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bottest-token/sendMessage", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "12345", r.PostForm.Get("chat_id"))
		assert.Equal(t, "<b>hi</b>", r.PostForm.Get("text"))
		assert.Equal(t, "HTML", r.PostForm.Get("parse_mode"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	})

	err := tg.Send(context.Background(), model.Message{HTML: "<b>hi</b>", Plain: "hi"})
	assert.NoError(t, err)
}

func TestTelegram_SendAPIErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "ok false", status: http.StatusOK, body: `{"ok":false,"description":"Bad Request: chat not found"}`},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"ok":false,"error_code":401,"description":"Unauthorized"}`},
		{name: "not json", status: http.StatusBadGateway, body: `<html>bad gateway</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := newTestTelegram(t, "test-token", "12345", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := tg.Send(context.Background(), model.Message{HTML: "x"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTelegramAPI))
		})
	}
}

func TestTelegram_DefaultAPIURL(t *testing.T) {
	assert.Equal(t, DefaultTelegramAPI, NewTelegram("a", "b").apiURL)
	assert.Equal(t, DefaultTelegramAPI, NewTelegram("a", "b").WithAPIURL("").apiURL)
}

func TestTelegram_SendMissingCredentials(t *testing.T) {
	for _, tg := range []*Telegram{NewTelegram("", "1"), NewTelegram("token", "")} {
		err := tg.Send(context.Background(), model.Message{HTML: "x"})
		assert.True(t, errors.Is(err, ErrMissingCredentials))
	}
}
