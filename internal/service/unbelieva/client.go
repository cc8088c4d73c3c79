package unbelieva

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ChipTick/internal/domain/models"
	drepo "ChipTick/internal/domain/repository"
	httpclient "ChipTick/pkg/http"
)

// Client implements an ItemPublisher backed by the UnbelievaBoat REST API.
// Each publish patches the store item's price and rewrites its description
// with the day's notes.
type Client struct {
	http     *httpclient.Client
	apiBase  string
	token    string
	guildID  string
	itemName string
	unit     string
	pagesURL string

	// itemID caches the resolved item id; set it up front to skip the
	// name lookup entirely.
	itemID string
}

// New creates a new UnbelievaBoat ItemPublisher.
func New(http *httpclient.Client, apiBase, token, guildID, itemName, itemID, unit, pagesURL string) drepo.ItemPublisher {
	return &Client{
		http:     http,
		apiBase:  strings.TrimRight(apiBase, "/"),
		token:    token,
		guildID:  guildID,
		itemName: itemName,
		itemID:   itemID,
		unit:     unit,
		pagesURL: pagesURL,
	}
}

type ubItem struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

// itemsPayload tolerates both shapes the API has returned over time:
// a bare array and an object wrapping it under "items".
type itemsPayload struct {
	Items []ubItem
}

func (p *itemsPayload) UnmarshalJSON(b []byte) error {
	var wrapped struct {
		Items []ubItem `json:"items"`
	}
	if err := json.Unmarshal(b, &wrapped); err == nil && wrapped.Items != nil {
		p.Items = wrapped.Items
		return nil
	}
	return json.Unmarshal(b, &p.Items)
}

// FindItemID resolves the store item id by case-insensitive name match.
func (c *Client) FindItemID(ctx context.Context) (string, error) {
	if c.itemID != "" {
		return c.itemID, nil
	}

	url := fmt.Sprintf("%s/guilds/%s/items", c.apiBase, c.guildID)
	var payload itemsPayload
	err := c.http.SendAndParse(ctx, &httpclient.RequestOptions{
		Method:  httpclient.MethodGet,
		URL:     url,
		Headers: map[string]string{"Authorization": c.token},
	}, &payload)
	if err != nil {
		return "", fmt.Errorf("list items: %w", err)
	}

	for _, it := range payload.Items {
		if strings.EqualFold(it.Name, c.itemName) {
			c.itemID = it.ID.String()
			return c.itemID, nil
		}
	}
	return "", fmt.Errorf("item %q not found in guild %s", c.itemName, c.guildID)
}

// Publish patches the item with the day's price and description.
func (c *Client) Publish(ctx context.Context, res *models.TickResult) error {
	id, err := c.FindItemID(ctx)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/guilds/%s/items/%s", c.apiBase, c.guildID, id)
	body := map[string]interface{}{
		"price":       res.Price,
		"description": c.description(res),
	}
	err = c.http.SendAndParse(ctx, &httpclient.RequestOptions{
		Method:  httpclient.MethodPatch,
		URL:     url,
		Headers: map[string]string{"Authorization": c.token},
		Body:    body,
	}, nil)
	if err != nil {
		return fmt.Errorf("patch item %s: %w", id, err)
	}
	return nil
}

func (c *Client) description(res *models.TickResult) string {
	desc := fmt.Sprintf("%s • %d %s • Updated %s • Chart: %s",
		c.itemName, res.Price, c.unit, res.Date, c.pagesURL)
	if len(res.Notes) > 0 {
		desc = desc + " • " + strings.Join(res.Notes, " • ")
	}
	return desc
}
