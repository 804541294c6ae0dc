package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleBody = `{
  "assets": [
    {"assetid": "a1", "classid": "1", "instanceid": "0", "amount": "2"},
    {"assetid": "a2", "classid": "9", "amount": "1"}
  ],
  "descriptions": [
    {"classid": "1", "instanceid": "0", "market_hash_name": "AK-47 | Redline"}
  ],
  "total_inventory_count": 2
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{SteamID: "76561199088392199", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestFetchParsesAssetsAndDescriptions(t *testing.T) {
	t.Parallel()
	var gotPath, gotUA string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(sampleBody))
	})

	snap, descs, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if gotPath != "/inventory/76561199088392199/730/2" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotUA != DefaultUserAgent {
		t.Fatalf("user agent = %q", gotUA)
	}

	if len(snap) != 2 {
		t.Fatalf("snapshot size = %d, want 2", len(snap))
	}
	if it := snap["a1"]; it.ClassID != "1" || it.Amount != "2" || it.InstanceID != "0" {
		t.Fatalf("a1 = %+v", it)
	}
	// Missing instanceid defaults to "0".
	if it := snap["a2"]; it.InstanceID != "0" {
		t.Fatalf("a2 instanceid = %q, want 0", it.InstanceID)
	}
	if d, ok := descs["1_0"]; !ok || d.Name != "AK-47 | Redline" {
		t.Fatalf("descriptions = %+v", descs)
	}
}

func TestFetchEmptyAssetsIsValid(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"assets": [], "descriptions": []}`))
	})

	snap, _, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("empty assets must be valid: %v", err)
	}
	if len(snap) != 0 {
		t.Fatalf("snapshot = %+v, want empty", snap)
	}
}

func TestFetchFailures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http 500",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "missing assets field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"success": 1}`))
			},
		},
		{
			name: "null assets",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"assets": null}`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>rate limited</html>`))
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, tt.handler)
			if _, _, err := c.Fetch(context.Background()); err == nil {
				t.Fatal("expected error, got none")
			}
		})
	}
}

func TestNewRequiresSteamID(t *testing.T) {
	t.Parallel()
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for empty steam id")
	}
}
