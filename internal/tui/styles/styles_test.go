package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Severance", 20, "Severance"},
		{"Severance", 9, "Severance"},
		{"Severance", 8, "Sever..."},
		{"Severance", 3, "Sev"},
		{"Severance", 0, ""},
		{"Ñandú Ñandú", 7, "Ñand..."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.width), "Truncate(%q, %d)", tt.in, tt.width)
	}
}

func TestHighlightMatchesWithoutIndexes(t *testing.T) {
	assert.Equal(t, "Pilot", HighlightMatches("Pilot", nil))
}

func TestHighlightMatchesKeepsText(t *testing.T) {
	out := HighlightMatches("Pilot", []int{0, 2})
	assert.Contains(t, out, "P")
	assert.Contains(t, out, "ot")
}
