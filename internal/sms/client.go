package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"school-admin-db/internal/config"
	"school-admin-db/internal/logger"

	"github.com/rs/zerolog"
)

// Client talks to the external SMS gateway. Callers treat dispatch as
// best-effort: a gateway failure never fails the request that asked for
// the message.
type Client struct {
	cfg    config.SMSConfig
	client *http.Client
	log    zerolog.Logger
}

func NewClient(cfg *config.Config) *Client {
	timeout := cfg.SMS.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		cfg: cfg.SMS,
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger.Get(),
	}
}

func (c *Client) Enabled() bool {
	return c.cfg.Enabled
}

func (c *Client) Send(ctx context.Context, mobile, message string) error {
	payload := map[string]string{
		"to":      mobile,
		"sender":  c.cfg.Sender,
		"message": message,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal SMS payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("SMS gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("SMS gateway returned status %d", resp.StatusCode)
	}

	c.log.Debug().Str("mobile", mobile).Msg("SMS dispatched")
	return nil
}
