package transcription

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/yiApollo/yttx/internal/errors"
	"github.com/yiApollo/yttx/internal/service/common"
)

// AudioDownloadService defines operations for downloading video audio
type AudioDownloadService interface {
	// DownloadAudio fetches audio-only media for a video id into outputDir
	// and returns the local file path. A file already present for the id is
	// reused without re-downloading.
	DownloadAudio(ctx context.Context, videoID string, outputDir string) (string, error)
}

// audioDownloadService implements AudioDownloadService using yt-dlp
type audioDownloadService struct {
	cmdRunner common.CmdRunner
}

// NewAudioDownloadService creates a new AudioDownloadService with the default CmdRunner
func NewAudioDownloadService() AudioDownloadService {
	return &audioDownloadService{cmdRunner: common.NewCmdRunner()}
}

// NewAudioDownloadServiceWithCmdRunner creates a new AudioDownloadService with a custom CmdRunner (for testing)
func NewAudioDownloadServiceWithCmdRunner(cmdRunner common.CmdRunner) AudioDownloadService {
	return &audioDownloadService{cmdRunner: cmdRunner}
}

// audioExtensions are the formats yt-dlp produces with -x.
var audioExtensions = []string{".m4a", ".mp3", ".webm", ".ogg", ".wav", ".opus"}

func (s *audioDownloadService) DownloadAudio(ctx context.Context, videoID string, outputDir string) (string, error) {
	if videoID == "" {
		return "", errors.New(errors.CodeInvalidArg, "video ID is required")
	}
	if outputDir == "" {
		return "", errors.New(errors.CodeInvalidArg, "output directory is required")
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "failed to create audio directory")
	}

	// Cached from an earlier attempt within this batch
	if path, ok := findAudioFile(outputDir, videoID); ok {
		return path, nil
	}

	args := []string{
		"-x",
		"--audio-format", "best",
		"--audio-quality", "0",
		"--output", filepath.Join(outputDir, "%(id)s.%(ext)s"),
		"https://www.youtube.com/watch?v=" + videoID,
	}

	if _, err := s.cmdRunner.Run(ctx, "yt-dlp", args...); err != nil {
		return "", errors.Wrap(err, errors.CodeExternal, formatDownloadError(err, videoID))
	}

	path, ok := findAudioFile(outputDir, videoID)
	if !ok {
		return "", errors.New(errors.CodeExternal,
			"yt-dlp reported success but no audio file was found for video "+videoID)
	}
	return path, nil
}

// findAudioFile looks for "<video id>.<audio ext>" in dir.
func findAudioFile(dir, videoID string) (string, bool) {
	for _, ext := range audioExtensions {
		path := filepath.Join(dir, videoID+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() && info.Size() > 0 {
			return path, true
		}
	}
	return "", false
}

// formatDownloadError maps common yt-dlp failures to actionable messages.
func formatDownloadError(err error, videoID string) string {
	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "executable file not found"):
		return "yt-dlp is not installed or not on PATH"
	case strings.Contains(errMsg, "Video unavailable"):
		return "video " + videoID + " is not available (private, deleted, or region-blocked)"
	case strings.Contains(errMsg, "403"):
		return "access denied downloading audio for " + videoID + " (region-blocked or login required)"
	case strings.Contains(errMsg, "429"):
		return "rate limited by YouTube while downloading audio for " + videoID
	default:
		return "audio download failed for video " + videoID
	}
}
