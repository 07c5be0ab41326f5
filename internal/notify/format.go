package notify

import (
	"fmt"
	"strings"
)

// Color constants for digest accents.
const (
	ColorActive = "#36a64f"
	ColorQuiet  = "#2196f3"
)

// Field is a name/value pair rendered as a short column by adapters that
// support structured messages.
type Field struct {
	Name  string
	Value string
	Short bool
}

// DigestColor picks the accent color for a digest.
func DigestColor(d *Digest) string {
	if d.TotalEvents > 0 {
		return ColorActive
	}
	return ColorQuiet
}

// DigestTitle renders the digest headline with its period.
func DigestTitle(d *Digest) string {
	return fmt.Sprintf("Corkboard activity %s to %s",
		d.PeriodStart.Format("Jan 2 15:04"),
		d.PeriodEnd.Format("Jan 2 15:04"))
}

// DigestFields renders the per-transition counts as structured fields.
// Zero counts are omitted so quiet categories don't pad the message.
func DigestFields(d *Digest) []Field {
	var fields []Field
	add := func(name string, n int) {
		if n > 0 {
			fields = append(fields, Field{Name: name, Value: fmt.Sprintf("%d", n), Short: true})
		}
	}
	add("Created", d.Created)
	add("Updated", d.Updated)
	add("Moved", d.Moved)
	add("Archived", d.Archived)
	return fields
}

// FormatDigest renders a digest as plain text, the fallback form for
// adapters without structured messages.
func FormatDigest(d *Digest) string {
	var lines []string
	lines = append(lines, DigestTitle(d))
	lines = append(lines, fmt.Sprintf("%d events: %d created, %d updated, %d moved, %d archived",
		d.TotalEvents, d.Created, d.Updated, d.Moved, d.Archived))
	if len(d.BusiestCards) > 0 {
		lines = append(lines, "Busiest cards:")
		for _, c := range d.BusiestCards {
			lines = append(lines, fmt.Sprintf("  #%d %s (%d events)", c.CardID, c.CardName, c.EventCount))
		}
	}
	return strings.Join(lines, "\n")
}
