package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Run("plain text passes through", func(t *testing.T) {
		assert.Equal(t, "just plain text", Sanitize("just plain text"))
	})

	t.Run("empty string", func(t *testing.T) {
		assert.Equal(t, "", Sanitize(""))
	})

	t.Run("script content is removed", func(t *testing.T) {
		out := Sanitize(`<script>alert('xss')</script>hello world`)
		assert.NotContains(t, out, "alert")
		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "hello world")
	})

	t.Run("tags stripped without concatenating words", func(t *testing.T) {
		out := Sanitize(`hello<br>world`)
		assert.NotContains(t, out, "helloworld")
		assert.Contains(t, out, "hello")
		assert.Contains(t, out, "world")
	})
}

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips tags and trims",
			input: "  <p>build box</p>  ",
			want:  "build box",
		},
		{
			name:  "collapses spaces after stripping",
			input: "<b>a</b> <b>b</b>",
			want:  "a b",
		},
		{
			name:  "drops script content entirely",
			input: `<script>alert('xss')</script>lab runner`,
			want:  "lab runner",
		},
		{
			name:  "unescapes entities",
			input: "resized &amp; tuned",
			want:  "resized & tuned",
		},
		{
			name:  "normalizes non-breaking spaces",
			input: "a b",
			want:  "a b",
		},
		{
			name:  "preserves newlines while collapsing spaces",
			input: "line one   x\nline  two",
			want:  "line one x\nline two",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}
