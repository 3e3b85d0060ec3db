package businessflow

import (
	"encoding/base64"
	"regexp"
	"strings"
)

// dataURLPattern matches "data:<mime>;base64,<payload>". The mime part may
// carry parameters like "; charset=utf-8"; only the media type before the
// first ";" is kept.
var dataURLPattern = regexp.MustCompile(`^data:(.+);base64,(.+)$`)

// ParsedDataURL is the decoded result of a base64 data URL.
type ParsedDataURL struct {
	MimeType string
	Payload  []byte
}

// ParseDataURL decodes a base64 data URL into its mime type and raw bytes.
// Returns ErrInvalidDataURL when the string does not match the expected
// shape or the payload is not valid base64.
func ParseDataURL(content string) (*ParsedDataURL, error) {
	m := dataURLPattern.FindStringSubmatch(content)
	if m == nil {
		return nil, ErrInvalidDataURL
	}

	mimeType := m[1]
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	mimeType = strings.TrimSpace(strings.ToLower(mimeType))
	if mimeType == "" {
		return nil, ErrInvalidDataURL
	}

	payload, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return nil, ErrInvalidDataURL
	}

	return &ParsedDataURL{MimeType: mimeType, Payload: payload}, nil
}

// SanitizeFilename keeps letters, digits, dots, underscores and hyphens,
// replacing everything else with a hyphen.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
