package catalog

// Word is a single vocabulary entry loaded from the word catalog.
// Words are immutable once loaded; scheduling state lives elsewhere,
// keyed by word ID.
type Word struct {
	// ID uniquely identifies the word (e.g. "dog").
	ID string

	// Text is the English display form shown to the learner.
	Text string

	// Translation is the Hebrew translation. Empty if none.
	Translation string

	// Image is an asset reference for picture prompts/answers. Empty if none.
	Image string

	// Audio is an asset reference for spoken prompts. Empty if none.
	Audio string

	// InitialLetter is the normalized lowercase first letter (a-z).
	// Empty when the word does not participate in letter drills.
	InitialLetter string

	// DistractorIDs lists curated distractor word IDs, tried before the
	// random pool when building options.
	DistractorIDs []string

	// Tags and Difficulty are carried from the catalog for reporting.
	Tags       []string
	Difficulty int
}

// HasModality reports whether the word carries the content needed to
// appear in the given modality, as prompt or as answer option.
func (w Word) HasModality(m Modality) bool {
	switch m {
	case ModalityText:
		return w.Text != ""
	case ModalityTranslation:
		return w.Translation != ""
	case ModalityImage:
		return w.Image != ""
	case ModalityAudio:
		return w.Audio != ""
	case ModalityLetter:
		return w.InitialLetter != ""
	}
	return false
}

// Supports reports whether the word satisfies every structural
// requirement of the format.
func (w Word) Supports(f Format) bool {
	for _, m := range f.Requires {
		if !w.HasModality(m) {
			return false
		}
	}
	return true
}
