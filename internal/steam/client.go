// Package steam fetches a public Steam community inventory.
package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"steamwatch/internal/inventory"
)

const (
	DefaultAppID     = 730 // CS:GO; 440=TF2, 570=Dota2
	DefaultContextID = 2

	DefaultBaseURL   = "https://steamcommunity.com"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultTimeout   = 30 * time.Second
)

type Config struct {
	SteamID   string
	AppID     int
	ContextID int

	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client issues one bounded GET per Fetch against the public inventory
// endpoint. No retries; the scheduler's next cycle is the retry mechanism.
type Client struct {
	cfg  Config
	http *http.Client
}

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SteamID) == "" {
		return nil, fmt.Errorf("steam id is empty")
	}
	if cfg.AppID <= 0 {
		cfg.AppID = DefaultAppID
	}
	if cfg.ContextID <= 0 {
		cfg.ContextID = DefaultContextID
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}, nil
}

// Wire shapes of the inventory endpoint. Assets is a RawMessage so a 200
// response without an assets field (private inventory, throttling page) is
// distinguishable from a present-but-empty list.
type inventoryResponse struct {
	Assets       json.RawMessage   `json:"assets"`
	Descriptions []descriptionJSON `json:"descriptions"`
}

type assetJSON struct {
	AssetID    string `json:"assetid"`
	ClassID    string `json:"classid"`
	InstanceID string `json:"instanceid"`
	Amount     string `json:"amount"`
}

type descriptionJSON struct {
	ClassID        string `json:"classid"`
	InstanceID     string `json:"instanceid"`
	MarketHashName string `json:"market_hash_name"`
}

// Fetch retrieves the current inventory as a snapshot plus the display
// metadata that came with it.
//
// Any transport error, non-2xx status, or body without an assets list
// returns a non-nil error ("no data"); callers must skip the comparison
// cycle rather than treat that as an empty inventory. An empty assets
// array is a valid, empty snapshot.
func (c *Client) Fetch(ctx context.Context) (inventory.Snapshot, inventory.Descriptions, error) {
	url := fmt.Sprintf("%s/inventory/%s/%d/%d", c.cfg.BaseURL, c.cfg.SteamID, c.cfg.AppID, c.cfg.ContextID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("inventory request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, nil, fmt.Errorf("inventory request: unexpected status %d", resp.StatusCode)
	}

	var body inventoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, nil, fmt.Errorf("inventory decode: %w", err)
	}
	if len(body.Assets) == 0 || string(body.Assets) == "null" {
		return nil, nil, fmt.Errorf("inventory response has no assets field")
	}

	var assets []assetJSON
	if err := json.Unmarshal(body.Assets, &assets); err != nil {
		return nil, nil, fmt.Errorf("inventory assets decode: %w", err)
	}

	snap := make(inventory.Snapshot, len(assets))
	for _, a := range assets {
		instance := a.InstanceID
		if instance == "" {
			instance = "0"
		}
		snap[a.AssetID] = inventory.Item{
			ClassID:    a.ClassID,
			Amount:     a.Amount,
			InstanceID: instance,
		}
	}

	descs := make(inventory.Descriptions, len(body.Descriptions))
	for _, d := range body.Descriptions {
		descs[inventory.DescriptionKey(d.ClassID, d.InstanceID)] = inventory.Description{Name: d.MarketHashName}
	}

	return snap, descs, nil
}
