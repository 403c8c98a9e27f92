package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validWordsJSON = `{
  "words": [
    {
      "id": "dog",
      "english": "Dog",
      "hebrew": "כלב",
      "image": "dog.png",
      "audio": "dog.mp3",
      "firstLetterOptional": true,
      "distractorWordIds": ["cat"],
      "tags": ["animals"],
      "difficulty": 1
    },
    {"id": "cat", "english": "cat", "hebrew": "חתול", "image": "cat.png", "initialLetter": "C"}
  ]
}`

func TestParseWords_Valid(t *testing.T) {
	words, err := ParseWords([]byte(validWordsJSON))
	if err != nil {
		t.Fatalf("ParseWords: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("len(words) = %d, want 2", len(words))
	}

	dog := words[0]
	if dog.Text != "Dog" {
		t.Errorf("Text = %q, want Dog", dog.Text)
	}
	if dog.Translation != "כלב" {
		t.Errorf("Translation = %q, want כלב", dog.Translation)
	}
	// firstLetterOptional derives the letter from the English text.
	if dog.InitialLetter != "d" {
		t.Errorf("InitialLetter = %q, want d", dog.InitialLetter)
	}
	if len(dog.DistractorIDs) != 1 || dog.DistractorIDs[0] != "cat" {
		t.Errorf("DistractorIDs = %v, want [cat]", dog.DistractorIDs)
	}

	// Explicit initialLetter is normalized to lowercase.
	if words[1].InitialLetter != "c" {
		t.Errorf("InitialLetter = %q, want c", words[1].InitialLetter)
	}
}

func TestParseWords_SchemaRejectsMissingEnglish(t *testing.T) {
	raw := `{"words": [{"id": "dog"}]}`
	if _, err := ParseWords([]byte(raw)); err == nil {
		t.Error("expected schema validation error")
	}
}

func TestParseWords_SchemaRejectsUnknownField(t *testing.T) {
	raw := `{"words": [{"id": "dog", "english": "dog", "bogus": 1}]}`
	if _, err := ParseWords([]byte(raw)); err == nil {
		t.Error("expected schema validation error for unknown field")
	}
}

func TestParseWords_InvalidJSON(t *testing.T) {
	if _, err := ParseWords([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.json")
	if err := os.WriteFile(path, []byte(validWordsJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNormalizeLetter(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"d", "d"},
		{"D", "d"},
		{"1", ""},
		{"", ""},
		{"dd", ""},
		{"ד", ""}, // Hebrew letters are not drillable in a-z drills
	}
	for _, c := range cases {
		if got := NormalizeLetter(c.in); got != c.want {
			t.Errorf("NormalizeLetter(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidateWords_ReportsAllProblems(t *testing.T) {
	words := []Word{
		{ID: "dog", Text: "dog", DistractorIDs: []string{"ghost", "dog"}},
		{ID: "dog", Text: "dog again"},
		{ID: "bad", Text: ""},
	}
	err := validateWords(words)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"duplicate word ID", "nonexistent distractor", "lists itself", "no display text"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error missing %q:\n%s", want, msg)
		}
	}
}
