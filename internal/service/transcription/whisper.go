package transcription

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yiApollo/yttx/internal/errors"
	"github.com/yiApollo/yttx/internal/model"
	"github.com/yiApollo/yttx/internal/service/common"
)

// WhisperService defines operations for Whisper transcription
type WhisperService interface {
	// TranscribeAudio transcribes an audio file with the Whisper CLI.
	// language is an optional spoken-language hint; empty means auto-detect.
	TranscribeAudio(ctx context.Context, audioPath string, language string) (*model.WhisperResult, error)
}

// whisperService implements WhisperService using the Whisper CLI
type whisperService struct {
	cmdRunner common.CmdRunner
	model     string
}

// NewWhisperService creates a new WhisperService for the given model size
// (tiny, base, small, medium, large)
func NewWhisperService(model string) WhisperService {
	return NewWhisperServiceWithCmdRunner(common.NewCmdRunner(), model)
}

// NewWhisperServiceWithCmdRunner creates a new WhisperService with a custom CmdRunner (for testing)
func NewWhisperServiceWithCmdRunner(cmdRunner common.CmdRunner, model string) WhisperService {
	if model == "" {
		model = "base"
	}
	return &whisperService{cmdRunner: cmdRunner, model: model}
}

func (s *whisperService) TranscribeAudio(ctx context.Context, audioPath string, language string) (*model.WhisperResult, error) {
	if audioPath == "" {
		return nil, errors.New(errors.CodeInvalidArg, "audio path is required")
	}

	outputDir, err := os.MkdirTemp("", "yttx-whisper-*")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create whisper output directory")
	}
	defer os.RemoveAll(outputDir)

	args := []string{
		audioPath,
		"--model", s.model,
		"--output_format", "json",
		"--output_dir", outputDir,
		"--temperature", "0",
	}
	if language != "" && language != "auto" {
		args = append(args, "--language", language)
	}

	if _, err := s.cmdRunner.Run(ctx, "whisper", args...); err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, s.formatWhisperError(err, audioPath, language))
	}

	baseName := filepath.Base(audioPath)
	baseName = strings.TrimSuffix(baseName, filepath.Ext(baseName))
	jsonPath := filepath.Join(outputDir, baseName+".json")

	jsonData, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to read whisper output")
	}

	var result model.WhisperResult
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to parse whisper output")
	}

	return &result, nil
}

// formatWhisperError maps common Whisper failures to actionable messages.
func (s *whisperService) formatWhisperError(err error, audioPath, language string) string {
	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "executable file not found"), strings.Contains(errMsg, "No module named"):
		return "whisper is not installed. Install OpenAI Whisper: pip install openai-whisper"
	case strings.Contains(errMsg, "not enough memory"), strings.Contains(errMsg, "OutOfMemoryError"):
		return fmt.Sprintf("insufficient memory for model %q, try a smaller one (tiny, base, small)", s.model)
	case strings.Contains(errMsg, "Invalid language"):
		return fmt.Sprintf("unsupported language hint %q", language)
	case strings.Contains(errMsg, "Could not load model"), strings.Contains(errMsg, "Invalid model"):
		return fmt.Sprintf("failed to load whisper model %q (valid: tiny, base, small, medium, large)", s.model)
	default:
		return fmt.Sprintf("transcription of %s failed with model %q", filepath.Base(audioPath), s.model)
	}
}
