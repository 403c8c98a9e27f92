package catalog

// Modality identifies how content is presented in a prompt or answered.
type Modality string

const (
	ModalityText        Modality = "text"
	ModalityTranslation Modality = "translation"
	ModalityImage       Modality = "image"
	ModalityAudio       Modality = "audio"
	ModalityLetter      Modality = "letter"
)

// Format describes one exercise shape: what the prompt shows and what
// kind of options the learner picks from. The requirement set lists the
// modalities a word must carry to be schedulable in this format.
type Format struct {
	ID       string
	Prompt   Modality
	Answer   Modality
	Requires []Modality
}

// ActiveFormats returns the current format catalog in display order.
func ActiveFormats() []Format {
	return []Format{
		newFormat("image_to_text", ModalityImage, ModalityText),
		newFormat("text_to_image", ModalityText, ModalityImage),
		newFormat("translation_to_image", ModalityTranslation, ModalityImage),
		newFormat("image_to_translation", ModalityImage, ModalityTranslation),
		newFormat("audio_to_image", ModalityAudio, ModalityImage),
		newFormat("audio_to_text", ModalityAudio, ModalityText),
		newFormat("letter_to_image", ModalityLetter, ModalityImage),
		newFormat("image_to_letter", ModalityImage, ModalityLetter),
	}
}

// deprecatedFormats are format IDs retired from scheduling. They still
// appear in old history entries and must stay parseable there.
var deprecatedFormats = map[string]bool{
	"text_to_translation":  true,
	"audio_to_translation": true,
}

// IsDeprecatedFormat reports whether the ID belongs to a retired format.
func IsDeprecatedFormat(id string) bool {
	return deprecatedFormats[id]
}

func newFormat(id string, prompt, answer Modality) Format {
	f := Format{ID: id, Prompt: prompt, Answer: answer}
	f.Requires = append(f.Requires, prompt)
	if answer != prompt {
		f.Requires = append(f.Requires, answer)
	}
	return f
}
