package pipeline

import (
	"errors"
	"testing"
)

func TestExtractBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		want    string
		wantErr error
	}{
		{
			name: "plain body",
			doc:  "<html><head></head><body><p>x</p></body></html>",
			want: "<p>x</p>",
		},
		{
			name: "body with attributes and upper case",
			doc:  `<HTML><BODY class="doc"><h1>T</h1></BODY></HTML>`,
			want: "<h1>T</h1>",
		},
		{
			name: "missing closing tag keeps the rest",
			doc:  "<body><p>x</p>",
			want: "<p>x</p>",
		},
		{
			name:    "no body",
			doc:     "<p>x</p>",
			wantErr: ErrNoBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractBody(tt.doc)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractBody() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	if got, want := SanitizeCSS("a{}</style><script>"), `a{}<\/style><script>`; got != want {
		t.Errorf("SanitizeCSS() = %q, want %q", got, want)
	}
}
