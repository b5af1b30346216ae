package stringutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripTags(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain text unchanged", "hello world", "hello world"},
		{"tags removed", "<b>bold</b> text", "bold text"},
		{"quotes encoded", `say "hi" it's`, "say &#34;hi&#34; it&#39;s"},
		{"script content dropped", "a<script>alert(1)</script>b", "ab"},
		{"comment dropped", "a<!-- x -->b", "ab"},
		{"entities kept escaped", "1 &lt; 2", "1 &lt; 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripTags(tt.in))
		})
	}
}
