package catalog

import (
	"fmt"
	"strings"
)

// validateWords performs structural checks on the word set beyond what
// the JSON schema covers. Returns a combined error describing all
// problems found, or nil if valid.
func validateWords(words []Word) error {
	var errs []string

	idSet := make(map[string]bool, len(words))

	// Check for duplicate and empty IDs.
	for _, w := range words {
		if w.ID == "" {
			errs = append(errs, "word with empty ID")
			continue
		}
		if idSet[w.ID] {
			errs = append(errs, fmt.Sprintf("duplicate word ID: %q", w.ID))
		}
		idSet[w.ID] = true
	}

	for _, w := range words {
		if w.Text == "" {
			errs = append(errs, fmt.Sprintf("word %q has no display text", w.ID))
		}
		if w.InitialLetter != "" && !isLowerLetter(w.InitialLetter) {
			errs = append(errs, fmt.Sprintf("word %q has invalid initial letter %q", w.ID, w.InitialLetter))
		}
		// Difficulty 0 means the catalog did not set one.
		if w.Difficulty != 0 && (w.Difficulty < 1 || w.Difficulty > 5) {
			errs = append(errs, fmt.Sprintf("word %q difficulty must be in [1, 5], got %d", w.ID, w.Difficulty))
		}
		// Check for dangling distractor references.
		for _, id := range w.DistractorIDs {
			if id == w.ID {
				errs = append(errs, fmt.Sprintf("word %q lists itself as a distractor", w.ID))
				continue
			}
			if !idSet[id] {
				errs = append(errs, fmt.Sprintf("word %q references nonexistent distractor %q", w.ID, id))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("word catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// isLowerLetter reports whether s is a single lowercase ASCII letter.
func isLowerLetter(s string) bool {
	return len(s) == 1 && s[0] >= 'a' && s[0] <= 'z'
}
