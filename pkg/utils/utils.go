package utils

import (
	"crypto/rand"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	slugMaxLength    = 100
	ExcerptMaxLength = 150
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSeparators   = regexp.MustCompile(`[\s-]+`)
	markupTags       = regexp.MustCompile(`<.*?>`)
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	GenerateSlug(title string) string
	GenerateExcerpt(content string, maxLength int) string
}

type utils struct{}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// GenerateSlug turns a title into a URL-safe identifier: lowercase, only
// letters, digits and hyphens, no leading or trailing hyphen, at most 100
// characters.
func (u *utils) GenerateSlug(title string) string {
	if title == "" {
		return ""
	}

	slug := strings.ToLower(title)
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugSeparators.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > slugMaxLength {
		slug = strings.Trim(slug[:slugMaxLength], "-")
	}

	return slug
}

// GenerateExcerpt strips markup tags from content and trims it to maxLength
// characters on a word boundary, appending an ellipsis when truncated.
func (u *utils) GenerateExcerpt(content string, maxLength int) string {
	if content == "" {
		return ""
	}
	if maxLength <= 0 {
		maxLength = ExcerptMaxLength
	}

	plainText := markupTags.ReplaceAllString(content, "")

	// Length is counted in characters, not bytes.
	runes := []rune(plainText)
	if len(runes) <= maxLength {
		return plainText
	}

	excerpt := string(runes[:maxLength])
	if lastSpace := strings.LastIndex(excerpt, " "); lastSpace > 0 {
		excerpt = excerpt[:lastSpace]
	}

	return excerpt + "..."
}
