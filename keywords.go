package pytok

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// KeywordSet is the vocabulary checked against completed identifier
// lexemes. The lexer never mutates it.
type KeywordSet map[string]struct{}

// NewKeywordSet builds a set from the given words.
func NewKeywordSet(words ...string) KeywordSet {
	ks := make(KeywordSet, len(words))
	for _, w := range words {
		ks[w] = struct{}{}
	}
	return ks
}

// Contains reports whether word is a keyword.
func (ks KeywordSet) Contains(word string) bool {
	_, ok := ks[word]
	return ok
}

// Words returns the keywords in no particular order.
func (ks KeywordSet) Words() []string {
	out := make([]string, 0, len(ks))
	for w := range ks {
		out = append(out, w)
	}
	return out
}

// ReadKeywords parses a whitespace-separated word list, the classic
// keywords.txt format.
func ReadKeywords(r io.Reader) (KeywordSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewKeywordSet(strings.Fields(string(data))...), nil
}

// keywordFile is the YAML keyword-list document.
type keywordFile struct {
	Keywords []string `yaml:"keywords"`
}

// ReadKeywordsYAML parses a YAML document of the form
//
//	keywords:
//	  - if
//	  - else
func ReadKeywordsYAML(r io.Reader) (KeywordSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var f keywordFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("keyword file: %w", err)
	}
	return NewKeywordSet(f.Keywords...), nil
}

// ReadKeywordsFile loads a keyword set from disk, choosing the format
// by extension: .yaml/.yml documents, plain word lists otherwise.
func ReadKeywordsFile(path string) (KeywordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ReadKeywordsYAML(f)
	default:
		return ReadKeywords(f)
	}
}

// DefaultKeywords returns the stock Python vocabulary.
func DefaultKeywords() KeywordSet {
	return NewKeywordSet(
		"and", "as", "assert", "break", "class", "continue", "def",
		"del", "elif", "else", "except", "exec", "False", "finally",
		"for", "from", "global", "if", "import", "in", "is", "lambda",
		"None", "not", "or", "pass", "raise", "return", "True", "try",
		"while", "with", "yield",
	)
}
