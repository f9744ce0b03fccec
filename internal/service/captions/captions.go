// Package captions fetches officially published subtitle tracks via yt-dlp
// and normalizes them into plain transcript text.
package captions

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/yiApollo/yttx/internal/errors"
	"github.com/yiApollo/yttx/internal/model"
	"github.com/yiApollo/yttx/internal/service/common"
)

// Service defines caption track retrieval for a video
type Service interface {
	// Fetch returns the closest matching caption track as a TranscriptResult
	// with Source=captions. It fails with CodeCaptionsUnavailable when no
	// track exists and CodeExternal on transport errors.
	Fetch(ctx context.Context, ref *model.VideoRef, targetLang string) (*model.TranscriptResult, error)
}

// service implements Service using the yt-dlp CLI
type service struct {
	cmdRunner common.CmdRunner
}

// NewService creates a new Service with the default CmdRunner
func NewService() Service {
	return NewServiceWithCmdRunner(common.NewCmdRunner())
}

// NewServiceWithCmdRunner creates a new Service with a custom CmdRunner (for testing)
func NewServiceWithCmdRunner(cmdRunner common.CmdRunner) Service {
	return &service{cmdRunner: cmdRunner}
}

// Fetch downloads subtitle tracks into a scratch directory and picks the best
// one. Manually published tracks are preferred over auto-generated captions,
// so the two kinds are requested in separate passes.
func (s *service) Fetch(ctx context.Context, ref *model.VideoRef, targetLang string) (*model.TranscriptResult, error) {
	scratchDir, err := os.MkdirTemp("", "yttx-captions-*")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create scratch directory")
	}
	defer os.RemoveAll(scratchDir)

	langs := languagePreferences(targetLang)

	for _, subsFlag := range []string{"--write-subs", "--write-auto-subs"} {
		args := []string{
			"--skip-download",
			subsFlag,
			"--sub-langs", strings.Join(langs, ","),
			"--sub-format", "vtt",
			"--output", filepath.Join(scratchDir, "%(id)s.%(ext)s"),
			ref.URL(),
		}
		if _, err := s.cmdRunner.Run(ctx, "yt-dlp", args...); err != nil {
			return nil, errors.Wrap(err, errors.CodeExternal, formatCaptionsError(err, ref.VideoID))
		}

		tracks, err := scanTracks(scratchDir, ref.VideoID)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to scan subtitle files")
		}
		if len(tracks) == 0 {
			continue
		}

		lang, path := pickTrack(tracks, langs)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to read subtitle file")
		}
		text := ParseVTT(string(data))
		if strings.TrimSpace(text) == "" {
			continue
		}

		return &model.TranscriptResult{
			VideoID:  ref.VideoID,
			Source:   model.SourceCaptions,
			Language: lang,
			Text:     text,
		}, nil
	}

	return nil, errors.New(errors.CodeCaptionsUnavailable,
		"no caption track available for video "+ref.VideoID)
}

// languagePreferences builds the ordered track preference list: the requested
// language first, then English as the fallback track.
func languagePreferences(targetLang string) []string {
	if targetLang != "" && targetLang != "en" {
		return []string{targetLang, "en"}
	}
	return []string{"en"}
}

// scanTracks maps language code to subtitle file path for files written as
// "<video id>.<lang>.vtt".
func scanTracks(dir, videoID string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	tracks := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".vtt") {
			continue
		}
		rest := strings.TrimSuffix(strings.TrimPrefix(name, videoID+"."), ".vtt")
		if rest == "" || rest == name {
			continue
		}
		tracks[rest] = filepath.Join(dir, name)
	}
	return tracks, nil
}

// pickTrack picks the preferred language track, falling back to whatever
// single track exists.
func pickTrack(tracks map[string]string, prefs []string) (string, string) {
	for _, lang := range prefs {
		if path, ok := tracks[lang]; ok {
			return lang, path
		}
		// language variants like en-US or en-orig
		for trackLang, path := range tracks {
			if strings.HasPrefix(trackLang, lang+"-") {
				return trackLang, path
			}
		}
	}
	for lang, path := range tracks {
		return lang, path
	}
	return "", ""
}

// formatCaptionsError maps common yt-dlp failures to actionable messages.
func formatCaptionsError(err error, videoID string) string {
	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "executable file not found"), strings.Contains(errMsg, "No such file or directory") && strings.Contains(errMsg, "yt-dlp"):
		return "yt-dlp is not installed or not on PATH"
	case strings.Contains(errMsg, "Video unavailable"), strings.Contains(errMsg, "Private video"):
		return "video " + videoID + " is not available (private, deleted, or region-blocked)"
	case strings.Contains(errMsg, "429"):
		return "rate limited by YouTube while fetching captions for " + videoID
	default:
		return "caption lookup failed for video " + videoID
	}
}
