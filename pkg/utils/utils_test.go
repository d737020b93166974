package utils

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	u := New()

	testCases := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "simple title",
			title:    "My First Post About Testing",
			expected: "my-first-post-about-testing",
		},
		{
			name:     "special characters removed",
			title:    "Hello, World! (Part 2)",
			expected: "hello-world-part-2",
		},
		{
			name:     "consecutive separators collapse",
			title:    "too   many --- separators",
			expected: "too-many-separators",
		},
		{
			name:     "leading and trailing separators trimmed",
			title:    "  -- framed title --  ",
			expected: "framed-title",
		},
		{
			name:     "uppercase lowered",
			title:    "UPPER Case TITLE",
			expected: "upper-case-title",
		},
		{
			name:     "empty title",
			title:    "",
			expected: "",
		},
		{
			name:     "only invalid characters",
			title:    "!!! ??? ***",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, u.GenerateSlug(tc.title))
		})
	}
}

func TestGenerateSlugLength(t *testing.T) {
	u := New()

	long := strings.Repeat("word ", 50)
	slug := u.GenerateSlug(long)

	assert.LessOrEqual(t, len(slug), 100)
	assert.False(t, strings.HasPrefix(slug, "-"))
	assert.False(t, strings.HasSuffix(slug, "-"))
}

func TestGenerateExcerpt(t *testing.T) {
	u := New()

	t.Run("short content passes through", func(t *testing.T) {
		content := "A short post."
		assert.Equal(t, content, u.GenerateExcerpt(content, 150))
	})

	t.Run("markup is stripped", func(t *testing.T) {
		content := "<p>Hello <strong>there</strong></p>"
		assert.Equal(t, "Hello there", u.GenerateExcerpt(content, 150))
	})

	t.Run("long content truncates on word boundary", func(t *testing.T) {
		content := strings.Repeat("lorem ipsum dolor sit amet ", 20)
		excerpt := u.GenerateExcerpt(content, 150)

		assert.True(t, strings.HasSuffix(excerpt, "..."))
		assert.LessOrEqual(t, len(excerpt), 153)

		trimmed := strings.TrimSuffix(excerpt, "...")
		assert.False(t, strings.HasSuffix(trimmed, " "))
	})

	t.Run("no space in window cuts mid word", func(t *testing.T) {
		content := strings.Repeat("a", 200)
		excerpt := u.GenerateExcerpt(content, 150)

		assert.Equal(t, strings.Repeat("a", 150)+"...", excerpt)
	})

	t.Run("multibyte content within limit passes through", func(t *testing.T) {
		content := strings.Repeat("世", 100)
		assert.Equal(t, content, u.GenerateExcerpt(content, 150))
	})

	t.Run("multibyte content truncates by character count", func(t *testing.T) {
		content := "a" + strings.Repeat("世", 200)
		excerpt := u.GenerateExcerpt(content, 150)

		assert.True(t, utf8.ValidString(excerpt))
		assert.Equal(t, "a"+strings.Repeat("世", 149)+"...", excerpt)
	})

	t.Run("empty content", func(t *testing.T) {
		assert.Equal(t, "", u.GenerateExcerpt("", 150))
	})

	t.Run("non positive max falls back to default", func(t *testing.T) {
		content := strings.Repeat("word ", 60)
		excerpt := u.GenerateExcerpt(content, 0)

		assert.LessOrEqual(t, len(excerpt), ExcerptMaxLength+3)
	})
}

func TestNewULIDFromTimestamp(t *testing.T) {
	u := New()

	first, err := u.NewULIDFromTimestamp(time.Now())
	require.NoError(t, err)
	require.Len(t, first, 26)

	second, err := u.NewULIDFromTimestamp(time.Now())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
