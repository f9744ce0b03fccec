// Package output renders transcript results as Markdown and maintains the
// batch's on-disk artifacts: one file per video, a consolidated document,
// and the skip log.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yiApollo/yttx/internal/errors"
	"github.com/yiApollo/yttx/internal/model"
)

const (
	individualDirName = "individual_transcripts"
	combinedDirName   = "all_transcripts"
	combinedFileName  = "transcripts.md"
	skipLogName       = "skipped.log"

	// separator between videos in the consolidated document
	videoSeparator = "\n---\n\n"
)

// Writer writes per-video Markdown documents, the consolidated batch
// document, and the skip log. The per-video file is keyed (re-processing a
// video within one run overwrites it); the consolidated document and the
// skip log are append-only.
type Writer struct {
	individualDir string
	combinedPath  string
	skipLogPath   string

	// slug -> video id, for collision detection within a run
	slugs map[string]string
}

// NewWriter creates the output areas under baseDir. The consolidated
// document is started fresh for each run; the skip log persists across runs.
func NewWriter(baseDir string) (*Writer, error) {
	individualDir := filepath.Join(baseDir, individualDirName)
	combinedDir := filepath.Join(baseDir, combinedDirName)
	for _, dir := range []string{individualDir, combinedDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, errors.CodeWrite, "failed to create output directory")
		}
	}

	combinedPath := filepath.Join(combinedDir, combinedFileName)
	if err := os.WriteFile(combinedPath, nil, 0644); err != nil {
		return nil, errors.Wrap(err, errors.CodeWrite, "failed to start consolidated document")
	}

	return &Writer{
		individualDir: individualDir,
		combinedPath:  combinedPath,
		skipLogPath:   filepath.Join(baseDir, skipLogName),
		slugs:         make(map[string]string),
	}, nil
}

// WriteTranscript renders the canonical per-video document, writes it to the
// individual area, and appends it to the consolidated document.
func (w *Writer) WriteTranscript(ref *model.VideoRef, result *model.TranscriptResult) error {
	doc := renderDocument(ref, result)

	path := w.transcriptPath(ref)
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return errors.Wrap(err, errors.CodeWrite, "failed to write transcript for video "+ref.VideoID)
	}

	if err := appendFile(w.combinedPath, videoSeparator+doc); err != nil {
		return errors.Wrap(err, errors.CodeWrite, "failed to append to consolidated document")
	}
	return nil
}

// WriteTranslated writes the translated rendition of an already-written
// transcript next to the original, as "<slug>.<lang>.md". The consolidated
// document keeps the original language only.
func (w *Writer) WriteTranslated(ref *model.VideoRef, result *model.TranscriptResult, targetLang, translatedText string) error {
	translated := &model.TranscriptResult{
		VideoID:          result.VideoID,
		Source:           result.Source,
		Language:         targetLang,
		Text:             translatedText,
		DurationEstimate: result.DurationEstimate,
	}
	doc := renderDocument(ref, translated)

	base := w.transcriptPath(ref)
	path := base[:len(base)-len(".md")] + "." + targetLang + ".md"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return errors.Wrap(err, errors.CodeWrite, "failed to write translated transcript for video "+ref.VideoID)
	}
	return nil
}

// LogSkip appends one tab-separated line to the skip log:
// "<video id>\t<reason>\t<RFC3339 timestamp>".
func (w *Writer) LogSkip(record model.SkipRecord) error {
	line := fmt.Sprintf("%s\t%s\t%s\n",
		record.VideoID, record.Reason, record.Timestamp.UTC().Format(time.RFC3339))
	if err := appendFile(w.skipLogPath, line); err != nil {
		return errors.Wrap(err, errors.CodeWrite, "failed to append to skip log")
	}
	return nil
}

// SkipLogPath returns the location of the skip log for the final report.
func (w *Writer) SkipLogPath() string {
	return w.skipLogPath
}

// transcriptPath resolves the per-video file path, appending the video id
// when another video already claimed the slug. The same ref always maps to
// the same path within a run, so re-processing overwrites.
func (w *Writer) transcriptPath(ref *model.VideoRef) string {
	slug := Slugify(ref.DisplayTitle())
	if slug == "" {
		slug = ref.VideoID
	}
	if owner, taken := w.slugs[slug]; taken && owner != ref.VideoID {
		slug = slug + " " + ref.VideoID
	}
	w.slugs[slug] = ref.VideoID
	return filepath.Join(w.individualDir, slug+".md")
}

// renderDocument produces the canonical Markdown form of one transcript:
// title heading, metadata line, body.
func renderDocument(ref *model.VideoRef, result *model.TranscriptResult) string {
	return fmt.Sprintf("# %s\n\n_source: %s | language: %s | video: %s_\n\n%s\n",
		ref.DisplayTitle(), result.Source, result.Language, result.VideoID, result.Text)
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return err
	}
	return nil
}
