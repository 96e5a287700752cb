package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  Sarah   Johnson  ", "Sarah Johnson"},
		{"tags", "<p>TechCorp <b>expands</b></p>", "TechCorp expands"},
		{"entities", "Smith &amp; Sons &ldquo;rocks&rdquo;", "Smith & Sons “rocks”"},
		{"script removed", "<p>Hi</p><script>alert(1)</script>", "Hi"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdef...", Truncate("abcdefghijkl", 9))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
	assert.Equal(t, "anything", Truncate("anything", 0))
}
