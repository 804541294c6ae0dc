package push

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"steamwatch/pkg/logx"
)

func TestNewPusherSelection(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cfg      Config
		wantName string
		wantErr  bool
	}{
		{name: "no provider no token", cfg: Config{}, wantName: "console"},
		{name: "bare token defaults to pushplus", cfg: Config{Token: "tok"}, wantName: "pushplus"},
		{name: "explicit serverchan", cfg: Config{Provider: "serverchan", Token: "tok"}, wantName: "serverchan"},
		{name: "explicit bark", cfg: Config{Provider: "bark", Token: "key"}, wantName: "bark"},
		{name: "pushplus without token", cfg: Config{Provider: "pushplus"}, wantErr: true},
		{name: "unknown provider", cfg: Config{Provider: "smoke-signals"}, wantErr: true},
		{name: "telegram without token", cfg: Config{Provider: "telegram"}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := NewPusher(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPusher: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Fatalf("pusher = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}

func TestPushPlusPayload(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = w.Write([]byte(`{"code":200}`))
	}))
	defer srv.Close()

	old := pushPlusURL
	pushPlusURL = srv.URL
	defer func() { pushPlusURL = old }()

	p := &PushPlus{token: "tok", http: srv.Client()}
	if err := p.Push(context.Background(), "Inventory changed", "<h3>hi</h3>"); err != nil {
		t.Fatalf("Push: %v", err)
	}

	if got["token"] != "tok" || got["title"] != "Inventory changed" || got["template"] != "html" {
		t.Fatalf("payload = %+v", got)
	}
	if got["content"] != "<h3>hi</h3>" {
		t.Fatalf("content = %q, want raw html", got["content"])
	}
}

func TestPushPlusNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	old := pushPlusURL
	pushPlusURL = srv.URL
	defer func() { pushPlusURL = old }()

	p := &PushPlus{token: "tok", http: srv.Client()}
	if err := p.Push(context.Background(), "t", "b"); err == nil {
		t.Fatal("expected error on 502")
	}
}

func TestServerChanForm(t *testing.T) {
	var gotPath, gotTitle, gotDesp string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotTitle = r.PostFormValue("title")
		gotDesp = r.PostFormValue("desp")
		_, _ = w.Write([]byte(`{"code":0}`))
	}))
	defer srv.Close()

	old := serverChanBase
	serverChanBase = srv.URL
	defer func() { serverChanBase = old }()

	s := &ServerChan{token: "SCT123", http: srv.Client()}
	if err := s.Push(context.Background(), "title!", "body"); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if gotPath != "/SCT123.send" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotTitle != "title!" || gotDesp != "body" {
		t.Fatalf("form = title %q desp %q", gotTitle, gotDesp)
	}
}

func TestBarkEscapesAndStrips(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"code":200}`))
	}))
	defer srv.Close()

	old := barkBase
	barkBase = srv.URL
	defer func() { barkBase = old }()

	b := &Bark{key: "devkey", http: srv.Client()}
	if err := b.Push(context.Background(), "Inventory changed", "<h3>New items (1):</h3><ul><li>Thing x1</li></ul>"); err != nil {
		t.Fatalf("Push: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/devkey/") {
		t.Fatalf("path = %q", gotPath)
	}
	decoded, err := url.PathUnescape(gotPath)
	if err != nil {
		t.Fatalf("unescape: %v", err)
	}
	if strings.ContainsAny(decoded, "<>") {
		t.Fatalf("bark body should be tag-stripped: %q", decoded)
	}
	if !strings.Contains(decoded, "Thing x1") {
		t.Fatalf("bark body missing item line: %q", decoded)
	}
}

type fakePusher struct {
	calls int
	err   error
}

func (f *fakePusher) Name() string { return "fake" }
func (f *fakePusher) Push(ctx context.Context, title, body string) error {
	f.calls++
	return f.err
}

func TestServiceRecordsHistory(t *testing.T) {
	t.Parallel()
	fp := &fakePusher{err: errors.New("relay down")}
	svc := NewService(Config{RatePerSec: 100}, fp, logx.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := svc.Notify(ctx, "t1", "b1"); err == nil {
		t.Fatal("expected delivery error")
	}
	fp.err = nil
	if err := svc.Notify(ctx, "t2", "b2"); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	h := svc.History()
	if len(h) != 2 {
		t.Fatalf("history len = %d, want 2", len(h))
	}
	if h[0].Err == "" || h[1].Err != "" {
		t.Fatalf("history = %+v", h)
	}
	if fp.calls != 2 {
		t.Fatalf("pusher calls = %d, want 2", fp.calls)
	}
}
