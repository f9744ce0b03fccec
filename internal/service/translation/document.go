package translation

import (
	"context"
	"strings"
)

// defaultMaxChars bounds the input size per translate invocation; long
// transcripts are split on line boundaries to stay under it.
const defaultMaxChars = 4000

// TranslateDocument translates a multi-line transcript chunk by chunk and
// reassembles the result. A single line longer than the budget is sent
// as its own oversized chunk rather than split mid-sentence.
func TranslateDocument(ctx context.Context, svc Service, text, sourceLang, targetLang string) (string, error) {
	chunks := splitIntoChunks(text, defaultMaxChars)

	translated := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		out, err := svc.Translate(ctx, chunk, sourceLang, targetLang)
		if err != nil {
			return "", err
		}
		translated = append(translated, out)
	}
	return strings.Join(translated, "\n"), nil
}

// splitIntoChunks groups lines into chunks of at most maxChars characters.
func splitIntoChunks(text string, maxChars int) []string {
	lines := strings.Split(text, "\n")

	var chunks []string
	var current []string
	currentLen := 0

	for _, line := range lines {
		lineLen := len(line) + 1
		if currentLen+lineLen > maxChars && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n"))
			current = current[:0]
			currentLen = 0
		}
		current = append(current, line)
		currentLen += lineLen
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, "\n"))
	}
	return chunks
}
