package push

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// pushPlusURL is the fixed PushPlus send endpoint (http://www.pushplus.plus/).
var pushPlusURL = "http://www.pushplus.plus/send"

// PushPlus posts HTML messages to the PushPlus relay.
type PushPlus struct {
	token string
	http  *http.Client
}

func (p *PushPlus) Name() string { return "pushplus" }

func (p *PushPlus) Push(ctx context.Context, title, body string) error {
	payload := map[string]string{
		"token":    p.token,
		"title":    title,
		"content":  body,
		"template": "html",
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, pushPlusURL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	return checkStatus("pushplus send", resp.StatusCode)
}
