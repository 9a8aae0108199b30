package pipeline

import (
	"context"
	"testing"
)

func TestCommonMarkPreprocessor_PreprocessMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "CRLF and CR are normalized",
			input: "a\r\nb\rc",
			want:  "a\nb\nc",
		},
		{
			name:  "blank lines are compressed",
			input: "a\n\n\n\n\nb",
			want:  "a\n\nb",
		},
		{
			name:  "highlight becomes placeholders",
			input: "==x==",
			want:  MarkStartPlaceholder + "x" + MarkEndPlaceholder,
		},
		{
			name:  "md fence is unwrapped",
			input: "```md\n# T\n```",
			want:  "# T",
		},
		{
			name:  "inner code fence is kept",
			input: "texto\n\n```python\nprint(1)\n```",
			want:  "texto\n\n```python\nprint(1)\n```",
		},
	}

	p := &CommonMarkPreprocessor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := p.PreprocessMarkdown(context.Background(), tt.input); got != tt.want {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCommonMarkPreprocessor_CanceledContextReturnsInput(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "a\r\n==b=="
	if got := (&CommonMarkPreprocessor{}).PreprocessMarkdown(ctx, input); got != input {
		t.Errorf("got %q, want input unchanged", got)
	}
}

func TestConvertMarkPlaceholders(t *testing.T) {
	t.Parallel()

	in := "<p>" + MarkStartPlaceholder + "a" + MarkEndPlaceholder + "</p>"
	if got, want := ConvertMarkPlaceholders(in), "<p><mark>a</mark></p>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
