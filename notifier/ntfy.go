package notifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"slot-sniper/model"
	"slot-sniper/utils"
)

const (
	DefaultNtfyServer = "https://ntfy.sh"
	ntfyTimeout       = 10 * time.Second
)

// Ntfy publishes the plain variant to an ntfy topic.
type Ntfy struct {
	server     string
	topic      string
	httpClient *http.Client
}

func NewNtfy(server, topic string) *Ntfy {
	if server == "" {
		server = DefaultNtfyServer
	}
	return &Ntfy{
		server:     strings.TrimRight(server, "/"),
		topic:      topic,
		httpClient: &http.Client{Timeout: ntfyTimeout},
	}
}

func (n *Ntfy) Name() string { return "ntfy" }

func (n *Ntfy) Send(ctx context.Context, msg model.Message) error {
	return n.publish(ctx, &model.Notification{
		Topic:    n.topic,
		Title:    fmt.Sprintf("%v %s", utils.EmojiTada, msg.Subject),
		Tags:     []string{"calendar"},
		Message:  msg.Plain,
		Priority: 4,
	})
}

func (n *Ntfy) publish(ctx context.Context, ntf *model.Notification) error {
	if ntf.Topic == "" {
		return fmt.Errorf("ntfy: %w (topic is required)", ErrMissingCredentials)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.server+"/"+ntf.Topic,
		strings.NewReader(ntf.Message))
	if err != nil {
		return fmt.Errorf("can't create request to NTFY: %w", err)
	}

	req.Header.Set("Content-Type", "text/plain")
	if ntf.Title != "" {
		req.Header.Set("Title", ntf.Title)
	}
	if len(ntf.Tags) > 0 {
		req.Header.Set("Tags", strings.Join(ntf.Tags, ","))
	}
	if ntf.Priority != 0 {
		req.Header.Set("Priority", strconv.Itoa(ntf.Priority))
	} else {
		req.Header.Set("Priority", "3")
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("can't send request to NTFY: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("NTFY error response %s: %s", resp.Status, string(bodyBytes))
	}

	return nil
}
