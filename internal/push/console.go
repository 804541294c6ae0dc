package push

import (
	"context"
	"fmt"

	"steamwatch/internal/inventory"
	"steamwatch/pkg/logx"
)

func stripForText(body string) string { return inventory.StripTags(body) }

// Console is the fallback when no push credential is configured: it prints
// the report to stdout with markup stripped.
type Console struct{}

func (Console) Name() string { return "console" }

func (Console) Push(ctx context.Context, title, body string) error {
	_ = ctx
	fmt.Fprintf(logx.Stdout(), "[notification] %s\n%s\n", title, stripForText(body))
	return nil
}
