// Package transcription implements the whisper fallback path: download the
// video's audio with yt-dlp, transcribe it locally, and clean up the
// per-video working area.
package transcription

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/yiApollo/yttx/internal/errors"
	"github.com/yiApollo/yttx/internal/model"
)

// Service runs the complete fallback for one video
type Service interface {
	// Transcribe downloads the video's audio and transcribes it. langHint is
	// an optional spoken-language hint, not a translation instruction.
	// The per-video work directory is removed before returning, success or not.
	Transcribe(ctx context.Context, ref *model.VideoRef, langHint string) (*model.TranscriptResult, error)
}

// service implements Service
type service struct {
	audio   AudioDownloadService
	whisper WhisperService
	workDir string
}

// NewService creates a fallback Service that stages audio under workDir
func NewService(workDir, whisperModel string) Service {
	return NewServiceWithDependencies(NewAudioDownloadService(), NewWhisperService(whisperModel), workDir)
}

// NewServiceWithDependencies creates a fallback Service with custom collaborators (for testing)
func NewServiceWithDependencies(audio AudioDownloadService, whisper WhisperService, workDir string) Service {
	return &service{
		audio:   audio,
		whisper: whisper,
		workDir: workDir,
	}
}

func (s *service) Transcribe(ctx context.Context, ref *model.VideoRef, langHint string) (*model.TranscriptResult, error) {
	videoDir := filepath.Join(s.workDir, ref.VideoID)
	if err := os.MkdirAll(videoDir, 0755); err != nil {
		return nil, errors.Wrap(err, errors.CodeTranscription, "failed to create work directory")
	}
	// The work area never outlives the video, even on failure
	defer os.RemoveAll(videoDir)

	audioPath, err := s.audio.DownloadAudio(ctx, ref.VideoID, videoDir)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeTranscription, "audio download failed")
	}

	result, err := s.whisper.TranscribeAudio(ctx, audioPath, langHint)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeTranscription, "whisper transcription failed")
	}

	language := result.Language
	if language == "" {
		language = langHint
	}

	return &model.TranscriptResult{
		VideoID:          ref.VideoID,
		Source:           model.SourceWhisper,
		Language:         language,
		Text:             strings.TrimSpace(result.Text),
		DurationEstimate: result.Duration(),
	}, nil
}
