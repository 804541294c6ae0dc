package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"steamwatch/pkg/logx"
)

func TestFileStoreAppendAndRecent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "history.jsonl")

	st, err := Open(Config{Driver: "file", Path: path}, logx.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		e := ChangeEvent{
			At:      base.Add(time.Duration(i) * time.Minute),
			SteamID: "76561199088392199",
			Added:   i,
			Report:  "<h3>r</h3>",
		}
		if err := st.AppendChange(ctx, e); err != nil {
			t.Fatalf("AppendChange: %v", err)
		}
	}

	got, err := st.RecentChanges(ctx, 3)
	if err != nil {
		t.Fatalf("RecentChanges: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Newest first.
	if got[0].Added != 4 || got[2].Added != 2 {
		t.Fatalf("order wrong: %+v", got)
	}
	if got[0].SteamID != "76561199088392199" || got[0].Report != "<h3>r</h3>" {
		t.Fatalf("fields wrong: %+v", got[0])
	}
}

func TestOpenDisabled(t *testing.T) {
	t.Parallel()
	for _, driver := range []string{"", "none"} {
		st, err := Open(Config{Driver: driver}, logx.Nop())
		if err != nil {
			t.Fatalf("Open(%q): %v", driver, err)
		}
		if st != nil {
			t.Fatalf("Open(%q) = %v, want nil store", driver, st)
		}
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Parallel()
	if _, err := Open(Config{Driver: "postgres"}, logx.Nop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestFileStoreRequiresPath(t *testing.T) {
	t.Parallel()
	if _, err := Open(Config{Driver: "file"}, logx.Nop()); err == nil {
		t.Fatal("expected error for missing path")
	}
}
