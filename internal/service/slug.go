package service

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Slugify lowercases the title and collapses every non-alphanumeric run into
// a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// timeToken returns the time-based slug disambiguator used on first attempt.
func timeToken() string {
	ms := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(ms) > 4 {
		ms = ms[len(ms)-4:]
	}
	return ms
}

// randomToken returns the disambiguator used on the single collision retry.
// Random instead of time-based: the retry happens within the same
// millisecond as the collision.
func randomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
