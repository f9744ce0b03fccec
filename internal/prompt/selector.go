package prompt

import "strings"

// AskTargetLanguage asks once per batch which language the final transcripts
// should be translated to. Empty input (or an unanswerable prompt) keeps the
// original language. The code is not validated here; downstream capabilities
// apply their own contracts.
func AskTargetLanguage(p Prompter) string {
	answer, err := p.Ask("Target language for the final transcripts (e.g. 'en', 'pt'; press Enter to keep the original): ")
	if err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(answer))
}
