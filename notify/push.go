package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// PushChannel delivers found-pet alerts to the owner's registered device
// through the FCM HTTP API.
type PushChannel struct {
	endpoint  string
	serverKey string
	client    *http.Client
}

func NewPushChannel(endpoint, serverKey string) *PushChannel {
	return &PushChannel{
		endpoint:  endpoint,
		serverKey: serverKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type pushPayload struct {
	To           string            `json:"to"`
	Notification pushNotification  `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type pushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (p *PushChannel) Send(ctx context.Context, notif Notification) error {
	payload := pushPayload{
		To: notif.Recipient,
		Notification: pushNotification{
			Title: notif.Message.Title(),
			Body:  notif.Message.Body(),
		},
		Data: map[string]string{
			"pet_id":   notif.Message.PetID,
			"location": string(notif.Message.Location),
		},
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+p.serverKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("push send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return fmt.Errorf("push send: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return nil
}
