package tui

import (
	"strings"
	"testing"

	"github.com/bassamadnan/codeshare/document"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 2, "he"},
		{"hello", 0, ""},
		{"hello", -1, ""},
		{"héllo wörld", 8, "héllo..."},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.in, tt.maxLen))
		})
	}
}

func TestRenderOutput(t *testing.T) {
	t.Run("placeholder before first run", func(t *testing.T) {
		assert.Contains(t, ansi.Strip(renderOutput(nil)), outputHint)
	})

	t.Run("one line per output line", func(t *testing.T) {
		out := renderOutput(&document.ExecutionResult{OutputLines: []string{"1", "2", "3"}})
		assert.Equal(t, "1\n2\n3", ansi.Strip(out))
	})

	t.Run("error output", func(t *testing.T) {
		out := renderOutput(&document.ExecutionResult{OutputLines: []string{"oops"}, IsError: true})
		assert.Equal(t, "oops", ansi.Strip(out))
	})
}

func TestRenderAccessList(t *testing.T) {
	access := []string{"a@x.com", "b@x.com"}
	none := func(string) bool { return false }

	t.Run("empty", func(t *testing.T) {
		assert.Contains(t, ansi.Strip(renderAccessList(nil, 0, false, none, 40)), "Not shared")
	})

	t.Run("browsing has no markers", func(t *testing.T) {
		out := ansi.Strip(renderAccessList(access, 1, false, none, 40))
		lines := strings.Split(out, "\n")
		assert.Len(t, lines, 2)
		assert.NotContains(t, out, removeMarker+" ")
		assert.Contains(t, lines[1], selectedPrefix+"  b@x.com")
	})

	t.Run("removal mode marks every entry", func(t *testing.T) {
		out := ansi.Strip(renderAccessList(access, 0, true, none, 40))
		for _, line := range strings.Split(out, "\n") {
			assert.Contains(t, line, removeMarker+" ")
		}
	})

	t.Run("pending change is flagged", func(t *testing.T) {
		busy := func(email string) bool { return email == "b@x.com" }
		out := ansi.Strip(renderAccessList(access, 0, false, busy, 40))
		assert.Contains(t, out, "b@x.com …")
		assert.NotContains(t, out, "a@x.com …")
	})
}

func TestFormatHeader(t *testing.T) {
	assert.Equal(t, "Hello (abc) · go", formatHeader("Hello", "abc", "go"))
	assert.Equal(t, "Untitled (abc) · python", formatHeader("", "abc", "python"))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, clamp(-1, 3))
	assert.Equal(t, 2, clamp(5, 3))
	assert.Equal(t, 1, clamp(1, 3))
	assert.Equal(t, 0, clamp(2, 0))
}
