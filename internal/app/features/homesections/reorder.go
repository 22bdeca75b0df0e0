// internal/app/features/homesections/reorder.go
package homesections

import (
	"github.com/dalemusser/vitrine/internal/app/store/sectionstore"
	"github.com/dalemusser/vitrine/internal/domain/models"
)

// Move shifts the section at position from to position to and
// reassigns sequential order values. It operates on a copy; the input
// slice is never mutated. Out-of-range positions return the input
// renumbered but otherwise unchanged, so callers can apply the result
// unconditionally.
func Move(sections []models.HomepageSection, from, to int) []models.HomepageSection {
	out := make([]models.HomepageSection, len(sections))
	copy(out, sections)

	if from >= 0 && from < len(out) && to >= 0 && to < len(out) && from != to {
		moved := out[from]
		out = append(out[:from], out[from+1:]...)
		// Insert at the target position.
		out = append(out, models.HomepageSection{})
		copy(out[to+1:], out[to:])
		out[to] = moved
	}

	for i := range out {
		out[i].Order = i
	}
	return out
}

// Entries converts an ordered slice of sections into the reorder
// payload the store applies, preserving the slice positions as order
// values.
func Entries(sections []models.HomepageSection) []sectionstore.ReorderEntry {
	entries := make([]sectionstore.ReorderEntry, len(sections))
	for i, sec := range sections {
		entries[i] = sectionstore.ReorderEntry{ID: sec.ID.Hex(), Order: i}
	}
	return entries
}
