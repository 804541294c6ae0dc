package push

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// serverChanBase is the fixed ServerChan API host (https://sct.ftqq.com/).
var serverChanBase = "https://sctapi.ftqq.com"

// ServerChan posts messages as a form body to the ServerChan relay.
type ServerChan struct {
	token string
	http  *http.Client
}

func (s *ServerChan) Name() string { return "serverchan" }

func (s *ServerChan) Push(ctx context.Context, title, body string) error {
	form := url.Values{
		"title": {title},
		"desp":  {body},
	}
	endpoint := serverChanBase + "/" + s.token + ".send"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	return checkStatus("serverchan send", resp.StatusCode)
}
