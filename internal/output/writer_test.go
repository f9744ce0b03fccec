package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiApollo/yttx/internal/model"
)

func testResult(videoID string) *model.TranscriptResult {
	return &model.TranscriptResult{
		VideoID:  videoID,
		Source:   model.SourceCaptions,
		Language: "en",
		Text:     "transcript body",
	}
}

func TestWriteTranscript(t *testing.T) {
	baseDir := t.TempDir()
	w, err := NewWriter(baseDir)
	require.NoError(t, err)

	ref := &model.VideoRef{VideoID: "vid00000001", Title: "My Video", Channel: "Chan", PlaylistIndex: 1}
	require.NoError(t, w.WriteTranscript(ref, testResult("vid00000001")))

	data, err := os.ReadFile(filepath.Join(baseDir, "individual_transcripts", "1. My Video - Chan.md"))
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "# 1. My Video - Chan\n"))
	assert.Contains(t, content, "_source: captions | language: en | video: vid00000001_")
	assert.Contains(t, content, "transcript body")

	combined, err := os.ReadFile(filepath.Join(baseDir, "all_transcripts", "transcripts.md"))
	require.NoError(t, err)
	assert.Contains(t, string(combined), "# 1. My Video - Chan")
}

func TestWriteTranscript_IdempotentPerVideoAppendOnlyCombined(t *testing.T) {
	baseDir := t.TempDir()
	w, err := NewWriter(baseDir)
	require.NoError(t, err)

	ref := &model.VideoRef{VideoID: "vid00000001", Title: "My Video"}
	result := testResult("vid00000001")

	require.NoError(t, w.WriteTranscript(ref, result))
	first, err := os.ReadFile(filepath.Join(baseDir, "individual_transcripts", "My Video.md"))
	require.NoError(t, err)

	require.NoError(t, w.WriteTranscript(ref, result))
	second, err := os.ReadFile(filepath.Join(baseDir, "individual_transcripts", "My Video.md"))
	require.NoError(t, err)

	// per-video file: overwrite, not duplication
	assert.Equal(t, string(first), string(second))

	// consolidated file: one appended section per invocation
	combined, err := os.ReadFile(filepath.Join(baseDir, "all_transcripts", "transcripts.md"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(combined), "# My Video"))
}

func TestWriteTranscript_SlugCollision(t *testing.T) {
	baseDir := t.TempDir()
	w, err := NewWriter(baseDir)
	require.NoError(t, err)

	refA := &model.VideoRef{VideoID: "aaaaaaaaaaa", Title: "Same Title"}
	refB := &model.VideoRef{VideoID: "bbbbbbbbbbb", Title: "Same Title"}

	require.NoError(t, w.WriteTranscript(refA, testResult("aaaaaaaaaaa")))
	require.NoError(t, w.WriteTranscript(refB, testResult("bbbbbbbbbbb")))

	entries, err := os.ReadDir(filepath.Join(baseDir, "individual_transcripts"))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	names := []string{entries[0].Name(), entries[1].Name()}
	assert.Contains(t, names, "Same Title.md")
	assert.Contains(t, names, "Same Title bbbbbbbbbbb.md")
}

func TestWriteTranscript_UntitledVideoUsesID(t *testing.T) {
	baseDir := t.TempDir()
	w, err := NewWriter(baseDir)
	require.NoError(t, err)

	ref := &model.VideoRef{VideoID: "vid00000001"}
	require.NoError(t, w.WriteTranscript(ref, testResult("vid00000001")))

	_, err = os.Stat(filepath.Join(baseDir, "individual_transcripts", "vid00000001.md"))
	assert.NoError(t, err)
}

func TestWriteTranslated(t *testing.T) {
	baseDir := t.TempDir()
	w, err := NewWriter(baseDir)
	require.NoError(t, err)

	ref := &model.VideoRef{VideoID: "vid00000001", Title: "My Video"}
	result := testResult("vid00000001")
	require.NoError(t, w.WriteTranscript(ref, result))
	require.NoError(t, w.WriteTranslated(ref, result, "pt", "corpo traduzido"))

	data, err := os.ReadFile(filepath.Join(baseDir, "individual_transcripts", "My Video.pt.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "language: pt")
	assert.Contains(t, string(data), "corpo traduzido")
}

func TestLogSkip(t *testing.T) {
	baseDir := t.TempDir()
	w, err := NewWriter(baseDir)
	require.NoError(t, err)

	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	require.NoError(t, w.LogSkip(model.SkipRecord{
		VideoID:   "vid00000001",
		Reason:    "fallback transcription declined",
		Timestamp: ts,
	}))
	require.NoError(t, w.LogSkip(model.SkipRecord{
		VideoID:   "vid00000002",
		Reason:    "whisper transcription failed",
		Timestamp: ts.Add(time.Minute),
	}))

	data, err := os.ReadFile(w.SkipLogPath())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "vid00000001\tfallback transcription declined\t2025-03-14T09:26:53Z", lines[0])

	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 3)
	_, err = time.Parse(time.RFC3339, fields[2])
	assert.NoError(t, err)
}

func TestNewWriter_TruncatesCombinedKeepsSkipLog(t *testing.T) {
	baseDir := t.TempDir()

	w, err := NewWriter(baseDir)
	require.NoError(t, err)
	ref := &model.VideoRef{VideoID: "vid00000001", Title: "V"}
	require.NoError(t, w.WriteTranscript(ref, testResult("vid00000001")))
	require.NoError(t, w.LogSkip(model.SkipRecord{VideoID: "x", Reason: "r", Timestamp: time.Now()}))

	// a second run starts the consolidated document fresh but keeps the log
	w2, err := NewWriter(baseDir)
	require.NoError(t, err)

	combined, err := os.ReadFile(filepath.Join(baseDir, "all_transcripts", "transcripts.md"))
	require.NoError(t, err)
	assert.Empty(t, combined)

	data, err := os.ReadFile(w2.SkipLogPath())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "What is Go", Slugify(`What is Go?`))
	assert.Equal(t, "ab", Slugify(`a/\b`))
	assert.Equal(t, "spaced out", Slugify("spaced   out "))
	assert.Equal(t, "", Slugify(`<>:"/\|?*`))
	assert.Equal(t, "dots", Slugify("dots..."))
}
