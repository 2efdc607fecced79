package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"slot-sniper/model"
)

const (
	DefaultTelegramAPI = "https://api.telegram.org"
	telegramTimeout    = 10 * time.Second
)

var ErrTelegramAPI = errors.New("telegram API error")

type Telegram struct {
	apiURL     string
	botToken   string
	chatID     string
	httpClient *http.Client
}

func NewTelegram(botToken, chatID string) *Telegram {
	return &Telegram{
		apiURL:     DefaultTelegramAPI,
		botToken:   botToken,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: telegramTimeout},
	}
}

// WithAPIURL points the client at a self-hosted Bot API server.
func (t *Telegram) WithAPIURL(apiURL string) *Telegram {
	if apiURL != "" {
		t.apiURL = strings.TrimRight(apiURL, "/")
	}
	return t
}

func (t *Telegram) Name() string { return "telegram" }

// Send posts the HTML variant to the sendMessage endpoint. Only a JSON reply
// with ok=true counts as delivered.
func (t *Telegram) Send(ctx context.Context, msg model.Message) error {
	if t.botToken == "" || t.chatID == "" {
		return fmt.Errorf("telegram: %w (bot token and chat id are required)", ErrMissingCredentials)
	}

	form := url.Values{
		"chat_id":    {t.chatID},
		"text":       {msg.HTML},
		"parse_mode": {"HTML"},
	}
	endpoint := t.apiURL + "/bot" + t.botToken + "/sendMessage"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("%w: status %d: unparseable response %q", ErrTelegramAPI, resp.StatusCode, string(body))
	}
	if !result.OK {
		return fmt.Errorf("%w: status %d: %s", ErrTelegramAPI, resp.StatusCode, result.Description)
	}

	return nil
}
