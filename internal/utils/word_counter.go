package utils

import (
	"strings"
	"unicode"

	"draftconv/internal/domain/models/document"
)

// CountWords counts the words a reader sees in doc.
//
// Leaf text is joined per element so words never merge across block
// boundaries. Embed data (captions, comment text) is not counted.
func CountWords(doc document.Document) int {
	count := 0
	for _, n := range doc {
		count += countNode(n)
	}
	return count
}

func countNode(n document.Node) int {
	if n.IsText() {
		return countFields(n.TextValue())
	}

	// Adjacent leaves of one element form a single run: "foo" + "bar"
	// inside a paragraph is one word.
	count := 0
	var run strings.Builder
	for _, child := range n.Children {
		if child.IsText() {
			run.WriteString(child.TextValue())
			continue
		}
		count += countFields(run.String())
		run.Reset()
		count += countNode(child)
	}
	return count + countFields(run.String())
}

func countFields(text string) int {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r)
	})

	// Tokens made only of punctuation are not words
	count := 0
	for _, word := range words {
		if strings.IndexFunc(word, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		}) >= 0 {
			count++
		}
	}
	return count
}
