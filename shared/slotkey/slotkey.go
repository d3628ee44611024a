// Package slotkey builds the canonical lookup keys for booked slots.
//
// A slot is addressed by the canonical start time of its range label and the
// court it occupies, joined as "HH:MM|court". Labels come in two historical
// spellings ("18:00 - 21:00" and "18.00 - 21.00") and the midnight night
// package is labelled with a "24:00" start; both must collide into one key.
package slotkey

import (
	"fmt"
	"strings"
)

const Separator = "|"

const rangeSeparator = " - "

// CanonicalStart extracts the canonical "HH:MM" start of a "<start> - <end>"
// range label. Dot separators become colons and the wrap-around "24:00" start
// is folded into "00:00". ok is false when the label has no range separator.
func CanonicalStart(label string) (string, bool) {
	start, _, found := strings.Cut(label, rangeSeparator)
	if !found {
		return "", false
	}

	start = strings.ReplaceAll(strings.TrimSpace(start), ".", ":")

	if start == "24:00" {
		start = "00:00"
	}

	return start, true
}

// NormalizeStart is CanonicalStart for labels already known to be well formed.
// Callers must validate labels against the slot catalog first; a label without
// the " - " separator violates the precondition and panics.
func NormalizeStart(label string) string {
	start, ok := CanonicalStart(label)
	if !ok {
		panic(fmt.Sprintf("slotkey: malformed slot label %q", label))
	}

	return start
}

// Key combines a slot label and a court identifier into the ledger lookup key.
func Key(label, courtID string) string {
	return NormalizeStart(label) + Separator + courtID
}
