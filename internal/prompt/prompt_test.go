package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdinPrompter_Ask(t *testing.T) {
	var out bytes.Buffer
	p := NewStdinPrompterWithIO(strings.NewReader("  hello \n"), &out)

	answer, err := p.Ask("question? ")
	require.NoError(t, err)
	assert.Equal(t, "hello", answer)
	assert.Equal(t, "question? ", out.String())
}

func TestStdinPrompter_AskEOF(t *testing.T) {
	p := NewStdinPrompterWithIO(strings.NewReader(""), &bytes.Buffer{})

	_, err := p.Ask("question? ")
	require.Error(t, err)
}

func TestStdinPrompter_LastLineWithoutNewline(t *testing.T) {
	p := NewStdinPrompterWithIO(strings.NewReader("pt"), &bytes.Buffer{})

	answer, err := p.Ask("lang? ")
	require.NoError(t, err)
	assert.Equal(t, "pt", answer)
}

// scriptedPrompter returns canned answers in order.
type scriptedPrompter struct {
	answers []string
	asked   int
}

func (p *scriptedPrompter) Ask(question string) (string, error) {
	if p.asked >= len(p.answers) {
		return "", errors.New("no more answers")
	}
	answer := p.answers[p.asked]
	p.asked++
	return answer, nil
}

func TestAskTargetLanguage(t *testing.T) {
	assert.Equal(t, "pt", AskTargetLanguage(&scriptedPrompter{answers: []string{"PT"}}))
	assert.Equal(t, "", AskTargetLanguage(&scriptedPrompter{answers: []string{""}}))
	// prompt failure keeps the original language
	assert.Equal(t, "", AskTargetLanguage(&scriptedPrompter{}))
}
