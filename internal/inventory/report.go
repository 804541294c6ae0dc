package inventory

import (
	"fmt"
	"strings"
)

// Render formats a diff as an HTML report (the format PushPlus and Telegram
// accept natively; other transports strip the tags).
//
// Sections appear in fixed order added/removed/changed; empty sections are
// omitted entirely, and an empty diff renders as "". Item display names are
// looked up in descs by classid_instanceid; for changed entries the lookup
// goes through the previous snapshot because the diff itself only carries
// amounts. Iteration order within a section follows map order, which is
// fine for a notification body.
func Render(d DiffResult, previous Snapshot, descs Descriptions) string {
	if d.Empty() {
		return ""
	}

	var b strings.Builder

	if len(d.Added) > 0 {
		fmt.Fprintf(&b, "<h3>🎁 New items (%d):</h3><ul>", len(d.Added))
		for _, it := range d.Added {
			fmt.Fprintf(&b, "<li>%s x%s</li>", displayName(descs, it.ClassID, it.InstanceID), it.Amount)
		}
		b.WriteString("</ul>")
	}

	if len(d.Removed) > 0 {
		fmt.Fprintf(&b, "<h3>📤 Removed items (%d):</h3><ul>", len(d.Removed))
		for _, it := range d.Removed {
			fmt.Fprintf(&b, "<li>%s x%s</li>", displayName(descs, it.ClassID, it.InstanceID), it.Amount)
		}
		b.WriteString("</ul>")
	}

	if len(d.Changed) > 0 {
		fmt.Fprintf(&b, "<h3>🔄 Amount changes (%d):</h3><ul>", len(d.Changed))
		for id, ch := range d.Changed {
			it := previous[id]
			fmt.Fprintf(&b, "<li>%s: %s → %s</li>", displayName(descs, it.ClassID, it.InstanceID), ch.Old, ch.New)
		}
		b.WriteString("</ul>")
	}

	return b.String()
}

func displayName(descs Descriptions, classID, instanceID string) string {
	if d, ok := descs[DescriptionKey(classID, instanceID)]; ok && strings.TrimSpace(d.Name) != "" {
		return d.Name
	}
	return "item id: " + classID
}

var tagStripper = strings.NewReplacer(
	"<h3>", "\n", "</h3>", "\n",
	"<ul>", "", "</ul>", "\n",
	"<li>", "  • ", "</li>", "\n",
	"<p>", "", "</p>", "\n",
)

// StripTags converts a rendered report to plain text for transports that do
// not understand HTML (console fallback, Bark).
func StripTags(html string) string {
	return strings.TrimSpace(tagStripper.Replace(html))
}
