// Package translation shims the external translate-shell CLI. The pipeline
// only sequences when translation happens; the actual translation engine is
// an external capability with its own contract.
package translation

import (
	"context"
	"strings"

	"github.com/yiApollo/yttx/internal/errors"
	"github.com/yiApollo/yttx/internal/service/common"
)

// Service defines text translation via an external capability
type Service interface {
	// Translate translates text into targetLang. sourceLang may be empty,
	// which lets the external tool detect the source language.
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// service implements Service using the translate-shell CLI ("trans")
type service struct {
	cmdRunner common.CmdRunner
}

// NewService creates a new translation Service with the default CmdRunner
func NewService() Service {
	return NewServiceWithCmdRunner(common.NewCmdRunner())
}

// NewServiceWithCmdRunner creates a new translation Service with a custom CmdRunner (for testing)
func NewServiceWithCmdRunner(cmdRunner common.CmdRunner) Service {
	return &service{cmdRunner: cmdRunner}
}

func (s *service) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New(errors.CodeInvalidArg, "text cannot be empty")
	}
	if targetLang == "" {
		return "", errors.New(errors.CodeInvalidArg, "target language is required")
	}

	// Language codes are passed through unvalidated; the external tool
	// enforces its own contract.
	source := sourceLang
	if source == "" {
		source = "auto"
	}

	args := []string{
		"-brief",
		"-no-warn",
		"-s", source,
		"-t", targetLang,
		text,
	}

	output, err := s.cmdRunner.Run(ctx, "trans", args...)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeExternal, formatTranslateError(err))
	}

	return strings.TrimSpace(string(output)), nil
}

func formatTranslateError(err error) string {
	if strings.Contains(err.Error(), "executable file not found") {
		return "translate-shell is not installed (the 'trans' command was not found on PATH)"
	}
	return "translation failed"
}
