package pipeline

import (
	"errors"
	"strings"
)

// ErrNoBody indicates the document has no <body> element.
var ErrNoBody = errors.New("document has no body")

// ExtractBody returns the inner content of the <body> element.
// Matching is case-insensitive and tolerates attributes on the opening tag.
func ExtractBody(doc string) (string, error) {
	lower := strings.ToLower(doc)

	start := strings.Index(lower, "<body")
	if start == -1 {
		return "", ErrNoBody
	}
	openEnd := strings.Index(lower[start:], ">")
	if openEnd == -1 {
		return "", ErrNoBody
	}
	contentStart := start + openEnd + 1

	end := strings.LastIndex(lower, "</body>")
	if end == -1 || end < contentStart {
		return doc[contentStart:], nil
	}
	return doc[contentStart:end], nil
}

// SanitizeCSS escapes sequences that could close a <style> block early.
func SanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
