package captions

import (
	"html"
	"regexp"
	"strings"
)

var (
	cueTimingPattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}[.,]\d{3}\s+-->\s+`)
	inlineTagPattern = regexp.MustCompile(`<[^>]*>`)
	cueIDPattern     = regexp.MustCompile(`^\d+$`)
)

// ParseVTT extracts plain transcript text from a WebVTT document: headers,
// cue ids, timing lines, inline tags, and the rolled-up duplicate lines that
// auto-generated tracks produce are all stripped.
func ParseVTT(data string) string {
	var out []string
	lastLine := ""
	inNote := false

	for _, raw := range strings.Split(data, "\n") {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			inNote = false
			continue
		case inNote:
			continue
		case strings.HasPrefix(trimmed, "WEBVTT"),
			strings.HasPrefix(trimmed, "Kind:"),
			strings.HasPrefix(trimmed, "Language:"),
			strings.HasPrefix(trimmed, "STYLE"),
			cueIDPattern.MatchString(trimmed):
			continue
		case strings.HasPrefix(trimmed, "NOTE"):
			inNote = true
			continue
		case cueTimingPattern.MatchString(trimmed):
			continue
		}

		text := inlineTagPattern.ReplaceAllString(trimmed, "")
		text = strings.TrimSpace(html.UnescapeString(text))
		if text == "" || text == lastLine {
			continue
		}
		out = append(out, text)
		lastLine = text
	}

	return strings.Join(out, "\n")
}
