package push

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"steamwatch/internal/inventory"
)

// barkBase is the fixed Bark API host (https://bark.day.app/).
var barkBase = "https://api.day.app"

// Bark pushes to iOS devices via the Bark app. The message rides in the URL
// path, so the HTML report is stripped to plain text first.
type Bark struct {
	key  string // device key
	http *http.Client
}

func (b *Bark) Name() string { return "bark" }

func (b *Bark) Push(ctx context.Context, title, body string) error {
	text := inventory.StripTags(body)
	endpoint := barkBase + "/" + b.key + "/" + url.PathEscape(title) + "/" + url.PathEscape(text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	return checkStatus("bark send", resp.StatusCode)
}
