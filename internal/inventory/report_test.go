package inventory

import (
	"strings"
	"testing"
)

func TestRenderEmptyDiff(t *testing.T) {
	t.Parallel()
	d := Diff(Snapshot{}, Snapshot{})
	if got := Render(d, Snapshot{}, Descriptions{}); got != "" {
		t.Fatalf("render of empty diff = %q, want empty string", got)
	}
}

func TestRenderChangedSection(t *testing.T) {
	t.Parallel()
	prev := Snapshot{"a1": {ClassID: "1", Amount: "2", InstanceID: "0"}}
	cur := Snapshot{"a1": {ClassID: "1", Amount: "3", InstanceID: "0"}}
	descs := Descriptions{"1_0": {Name: "AK-47 | Redline"}}

	out := Render(Diff(cur, prev), prev, descs)

	if !strings.Contains(out, "Amount changes (1)") {
		t.Fatalf("missing changed section: %q", out)
	}
	if !strings.Contains(out, "AK-47 | Redline: 2 → 3") {
		t.Fatalf("missing old→new line: %q", out)
	}
	if strings.Contains(out, "New items") || strings.Contains(out, "Removed items") {
		t.Fatalf("empty sections must be omitted: %q", out)
	}
}

func TestRenderSectionOrderAndContent(t *testing.T) {
	t.Parallel()
	prev := Snapshot{
		"gone": {ClassID: "10", Amount: "1", InstanceID: "0"},
		"chg":  {ClassID: "11", Amount: "4", InstanceID: "0"},
	}
	cur := Snapshot{
		"new": {ClassID: "12", Amount: "2", InstanceID: "0"},
		"chg": {ClassID: "11", Amount: "6", InstanceID: "0"},
	}
	descs := Descriptions{
		"10_0": {Name: "Old Thing"},
		"12_0": {Name: "New Thing"},
	}

	out := Render(Diff(cur, prev), prev, descs)

	iAdded := strings.Index(out, "New items (1)")
	iRemoved := strings.Index(out, "Removed items (1)")
	iChanged := strings.Index(out, "Amount changes (1)")
	if iAdded < 0 || iRemoved < 0 || iChanged < 0 {
		t.Fatalf("missing section: %q", out)
	}
	if !(iAdded < iRemoved && iRemoved < iChanged) {
		t.Fatalf("sections out of order: %q", out)
	}
	if !strings.Contains(out, "<li>New Thing x2</li>") {
		t.Fatalf("added line wrong: %q", out)
	}
	if !strings.Contains(out, "<li>Old Thing x1</li>") {
		t.Fatalf("removed line wrong: %q", out)
	}
	// classid 11 has no description: fallback label, resolved via previous snapshot.
	if !strings.Contains(out, "<li>item id: 11: 4 → 6</li>") {
		t.Fatalf("fallback label wrong: %q", out)
	}
}

func TestStripTags(t *testing.T) {
	t.Parallel()
	html := "<p>Checked at: now</p><h3>🎁 New items (1):</h3><ul><li>Thing x1</li></ul>"
	got := StripTags(html)
	if strings.ContainsAny(got, "<>") {
		t.Fatalf("tags left behind: %q", got)
	}
	if !strings.Contains(got, "  • Thing x1") {
		t.Fatalf("bullet formatting missing: %q", got)
	}
}
