package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed words_schema.json
var wordsSchemaJSON []byte

var (
	wordsSchemaOnce sync.Once
	wordsSchema     *jsonschema.Schema
	wordsSchemaErr  error
)

// wordFile mirrors the on-disk catalog shape produced by the word
// importer: {"words": [...]} with camelCase field names.
type wordFile struct {
	Words []wordJSON `json:"words"`
}

type wordJSON struct {
	ID                  string   `json:"id"`
	English             string   `json:"english"`
	Hebrew              string   `json:"hebrew,omitempty"`
	Image               string   `json:"image,omitempty"`
	Audio               string   `json:"audio,omitempty"`
	InitialLetter       string   `json:"initialLetter,omitempty"`
	FirstLetterOptional bool     `json:"firstLetterOptional,omitempty"`
	DistractorWordIDs   []string `json:"distractorWordIds,omitempty"`
	Tags                []string `json:"tags,omitempty"`
	Difficulty          int      `json:"difficulty,omitempty"`
}

// Load reads a word catalog file, validates it against the embedded
// JSON schema, and returns the constructed catalog. Any schema or
// structural problem is a configuration defect and fails loudly.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read words file: %w", err)
	}
	words, err := ParseWords(raw)
	if err != nil {
		return nil, fmt.Errorf("words file %s: %w", path, err)
	}
	return New(words)
}

// ParseWords validates and decodes raw catalog JSON into words.
func ParseWords(raw []byte) ([]Word, error) {
	compiled, err := compiledWordsSchema()
	if err != nil {
		return nil, fmt.Errorf("compile words schema: %w", err)
	}

	// The jsonschema library validates a parsed JSON value, not raw bytes.
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var file wordFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode words: %w", err)
	}

	words := make([]Word, 0, len(file.Words))
	for _, wj := range file.Words {
		words = append(words, Word{
			ID:            wj.ID,
			Text:          wj.English,
			Translation:   wj.Hebrew,
			Image:         wj.Image,
			Audio:         wj.Audio,
			InitialLetter: resolveInitialLetter(wj),
			DistractorIDs: wj.DistractorWordIDs,
			Tags:          wj.Tags,
			Difficulty:    wj.Difficulty,
		})
	}
	return words, nil
}

// resolveInitialLetter normalizes the explicit initial letter, or
// derives one from the English text when the word opts into letter
// drills. Returns "" when no usable a-z letter exists.
func resolveInitialLetter(wj wordJSON) string {
	if wj.InitialLetter != "" {
		return NormalizeLetter(wj.InitialLetter)
	}
	if !wj.FirstLetterOptional {
		return ""
	}
	for _, r := range wj.English {
		return NormalizeLetter(string(r))
	}
	return ""
}

// NormalizeLetter lowercases a single-letter string and returns it, or
// "" when the input is not one alphabetic a-z character.
func NormalizeLetter(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) != 1 {
		return ""
	}
	r := runes[0]
	if r < 'a' || r > 'z' {
		return ""
	}
	return string(r)
}

func compiledWordsSchema() (*jsonschema.Schema, error) {
	wordsSchemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(wordsSchemaJSON, &def); err != nil {
			wordsSchemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const schemaURL = "schema://words.json"
		if err := c.AddResource(schemaURL, def); err != nil {
			wordsSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		wordsSchema, wordsSchemaErr = c.Compile(schemaURL)
	})
	return wordsSchema, wordsSchemaErr
}
