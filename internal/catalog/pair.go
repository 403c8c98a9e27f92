package catalog

// Pair identifies one (word, format) scheduling unit. It is used as a
// composite map key throughout the engine; word and format IDs are
// never joined into a single string.
type Pair struct {
	WordID   string
	FormatID string
}
