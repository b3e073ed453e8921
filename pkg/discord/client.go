// Package discord provides a minimal client for the Discord REST API.
//
// It covers the two capabilities the reminder scheduler needs: resolving
// a channel and delivering a text message to it.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const defaultBaseURL = "https://discord.com/api/v10"

// ErrChannelNotFound is returned when a channel does not exist or the bot
// cannot see it.
var ErrChannelNotFound = errors.New("channel not found")

// Client represents a Discord bot client used to send notifications.
type Client struct {
	token   string       // bot token for authentication
	BaseURL string       // API base URL, overridable for tests
	client  *http.Client // HTTP client used to make requests
}

// NewClient creates a new Discord Client instance with the given bot token.
func NewClient(token string) *Client {
	return &Client{
		token:   token,
		BaseURL: defaultBaseURL,
		client:  &http.Client{},
	}
}

// channelResponse is the subset of the channel object the client reads.
type channelResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// createMessageRequest represents the payload for the create-message API.
type createMessageRequest struct {
	Content string `json:"content"` // message text
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bot "+c.token)
	req.Header.Set("Content-Type", "application/json")

	return c.client.Do(req)
}

// ResolveChannel checks that the channel exists and is visible to the bot,
// returning its name. A 403 or 404 maps to ErrChannelNotFound; any other
// failure is transient.
func (c *Client) ResolveChannel(ctx context.Context, channelID string) (string, error) {
	url := fmt.Sprintf("%s/channels/%s", c.BaseURL, channelID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("get channel: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: %s", ErrChannelNotFound, channelID)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("discord API error: %s", resp.Status)
	}

	var ch channelResponse
	if err := json.NewDecoder(resp.Body).Decode(&ch); err != nil {
		return "", fmt.Errorf("decode channel: %w", err)
	}

	return ch.Name, nil
}

// Send delivers a text message to the specified channel.
func (c *Client) Send(ctx context.Context, channelID, text string) error {
	url := fmt.Sprintf("%s/channels/%s/messages", c.BaseURL, channelID)

	body, err := json.Marshal(createMessageRequest{Content: text})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("discord API error: %s", resp.Status)
	}

	return nil
}
