package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Highlight placeholders live in the Unicode Private Use Area so they pass
// through goldmark untouched and become <mark> tags afterwards.
const (
	MarkStartPlaceholder = "\uE000"
	MarkEndPlaceholder   = "\uE001"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==(.*?)==`)

	// Generated content sometimes arrives wrapped in a ```markdown fence.
	outerFence = regexp.MustCompile("(?s)^\\s*```(?:markdown|md)\\s*\\n(.*)\\n```\\s*$")
)

// MarkdownPreprocessor prepares markdown before conversion.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor normalizes generated stage content.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown normalizes line endings, unwraps an outer markdown
// fence, converts ==highlights== and compresses blank lines.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = unwrapFence(content)
	content = highlightPattern.ReplaceAllString(content, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
	content = multipleBlankLines.ReplaceAllString(content, "\n\n")
	return content
}

func unwrapFence(content string) string {
	if m := outerFence.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return content
}

// ConvertMarkPlaceholders turns highlight placeholders into <mark> tags.
func ConvertMarkPlaceholders(content string) string {
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, "<mark>"),
		MarkEndPlaceholder, "</mark>",
	)
}
