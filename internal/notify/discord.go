package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/donaldgifford/bluegem/internal/metrics"
	domain "github.com/donaldgifford/bluegem/pkg/types"
)

const (
	colorBlue   = 0x3498DB // playside blue 50%+
	colorPurple = 0x9B59B6 // playside blue 25-49%
	colorGray   = 0x95A5A6 // below 25% or no pattern data
)

// Discord accepts at most 10 embeds per message.
const maxEmbeds = 10

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

var _ Notifier = (*DiscordNotifier)(nil)

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Image       *discordImage       `json:"image,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordImage struct {
	URL string `json:"url"`
}

// SendAlert sends a single sale as a Discord embed.
func (d *DiscordNotifier) SendAlert(ctx context.Context, alert *SaleAlert) error {
	return d.post(ctx, discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(alert)},
	})
}

// SendBatchAlert sends multiple sales as a single Discord message.
func (d *DiscordNotifier) SendBatchAlert(
	ctx context.Context,
	alerts []SaleAlert,
	watchName string,
) error {
	if len(alerts) == 0 {
		return nil
	}

	limit := min(len(alerts), maxEmbeds)
	if len(alerts) > maxEmbeds {
		limit = maxEmbeds - 1
	}

	embeds := make([]discordEmbed, 0, maxEmbeds)
	for i := range limit {
		embeds = append(embeds, buildEmbed(&alerts[i]))
	}

	if len(alerts) > limit {
		embeds = append(embeds, discordEmbed{
			Title:       fmt.Sprintf("... and %d more sales for %s", len(alerts)-limit, watchName),
			Color:       colorGray,
			Description: "Run `bluegem search` for the full list.",
		})
	}

	return d.post(ctx, discordWebhookPayload{Embeds: embeds})
}

func buildEmbed(alert *SaleAlert) discordEmbed {
	s := &alert.Sale

	currency := alert.Currency
	if currency == "" {
		currency = domain.USD
	}

	embed := discordEmbed{
		Title:     fmt.Sprintf("New sale: %s #%d", alert.Item, s.Pattern),
		Color:     coverageColor(s.PatternData),
		Timestamp: s.Timestamp.UTC().Format(time.RFC3339),
		Fields: []discordEmbedField{
			{Name: "Price", Value: s.Price.StringFixed(2) + " " + string(currency), Inline: true},
			{Name: "Wear", Value: fmt.Sprintf("%.6f", s.Wear), Inline: true},
			{Name: "Type", Value: string(s.Type), Inline: true},
			{Name: "Origin", Value: string(s.Origin), Inline: true},
			{Name: "Watch", Value: alert.WatchName, Inline: true},
		},
	}

	if pd := s.PatternData; pd != nil {
		embed.Fields = append(embed.Fields,
			discordEmbedField{Name: "Playside Blue", Value: fmt.Sprintf("%.2f%%", pd.PlaysideBlue), Inline: true},
			discordEmbedField{Name: "Backside Blue", Value: fmt.Sprintf("%.2f%%", pd.BacksideBlue), Inline: true},
		)
	}

	if s.Screenshots != nil {
		if link, err := s.Screenshots.InspectLink(); err == nil {
			embed.URL = link
			embed.Image = &discordImage{URL: link}
		}
	}

	return embed
}

func coverageColor(pd *domain.PatternData) int {
	switch {
	case pd == nil:
		return colorGray
	case pd.PlaysideBlue >= 50:
		return colorBlue
	case pd.PlaysideBlue >= 25:
		return colorPurple
	default:
		return colorGray
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 512))
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
