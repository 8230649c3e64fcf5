package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	colorError   = 0xE74C3C
	colorWarning = 0xF1C40F
	colorInfo    = 0x3498DB
)

// GetWebhookURL returns the full webhook URL.
func (d *discordImpl) GetWebhookURL() string {
	return fmt.Sprintf("https://discord.com/api/webhooks/%s/%s", d.webhook.ID, d.webhook.Token)
}

// SendMessage sends a plain text message to the webhook.
func (d *discordImpl) SendMessage(ctx context.Context, content string) error {
	return d.send(ctx, WebhookPayload{
		Content:  content,
		Username: d.config.DefaultUsername,
	})
}

// SendError sends an error embed to the webhook.
func (d *discordImpl) SendError(ctx context.Context, title, description string, err error) error {
	embed := Embed{
		Title:       title,
		Description: description,
		Color:       colorError,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	if err != nil {
		embed.Fields = append(embed.Fields, EmbedField{
			Name:  "Error",
			Value: err.Error(),
		})
	}

	return d.send(ctx, WebhookPayload{
		Username: d.config.DefaultUsername,
		Embeds:   []Embed{embed},
	})
}

// SendWarning sends a warning embed to the webhook.
func (d *discordImpl) SendWarning(ctx context.Context, title, description string) error {
	return d.send(ctx, WebhookPayload{
		Username: d.config.DefaultUsername,
		Embeds: []Embed{{
			Title:       title,
			Description: description,
			Color:       colorWarning,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}},
	})
}

// SendInfo sends an informational embed to the webhook.
func (d *discordImpl) SendInfo(ctx context.Context, title, description string) error {
	return d.send(ctx, WebhookPayload{
		Username: d.config.DefaultUsername,
		Embeds: []Embed{{
			Title:       title,
			Description: description,
			Color:       colorInfo,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}},
	})
}

// Close releases the underlying HTTP client resources.
func (d *discordImpl) Close() error {
	d.client.CloseIdleConnections()
	return nil
}

func (d *discordImpl) send(ctx context.Context, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		d.l.Errorf(ctx, "discord.send: marshal payload: %v", err)
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.GetWebhookURL(), bytes.NewReader(body))
	if err != nil {
		d.l.Errorf(ctx, "discord.send: build request: %v", err)
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		d.l.Errorf(ctx, "discord.send: do request: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		d.l.Errorf(ctx, "discord.send: unexpected status %d", resp.StatusCode)
		return errUnexpectedCode
	}

	return nil
}
