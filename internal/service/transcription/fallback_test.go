package transcription

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yiApollo/yttx/internal/errors"
	"github.com/yiApollo/yttx/internal/model"
)

// mockAudioDownloadService for testing
type mockAudioDownloadService struct {
	mock.Mock
}

func (m *mockAudioDownloadService) DownloadAudio(ctx context.Context, videoID string, outputDir string) (string, error) {
	args := m.Called(ctx, videoID, outputDir)
	return args.String(0), args.Error(1)
}

// mockWhisperService for testing
type mockWhisperService struct {
	mock.Mock
}

func (m *mockWhisperService) TranscribeAudio(ctx context.Context, audioPath string, language string) (*model.WhisperResult, error) {
	args := m.Called(ctx, audioPath, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WhisperResult), args.Error(1)
}

func TestTranscribe_Success(t *testing.T) {
	workDir := t.TempDir()
	ref := &model.VideoRef{VideoID: "vid00000001", Title: "Test"}
	videoDir := filepath.Join(workDir, "vid00000001")
	audioPath := filepath.Join(videoDir, "vid00000001.m4a")

	audio := &mockAudioDownloadService{}
	audio.On("DownloadAudio", mock.Anything, "vid00000001", videoDir).Return(audioPath, nil)

	whisper := &mockWhisperService{}
	whisper.On("TranscribeAudio", mock.Anything, audioPath, "pt").Return(&model.WhisperResult{
		Text:     "  transcribed text \n",
		Language: "pt",
		Segments: []model.WhisperSegment{
			{ID: 0, Start: 0, End: 4.5, Text: "transcribed"},
			{ID: 1, Start: 4.5, End: 9.25, Text: "text"},
		},
	}, nil)

	svc := NewServiceWithDependencies(audio, whisper, workDir)

	result, err := svc.Transcribe(context.Background(), ref, "pt")
	require.NoError(t, err)

	assert.Equal(t, model.SourceWhisper, result.Source)
	assert.Equal(t, "pt", result.Language)
	assert.Equal(t, "transcribed text", result.Text)
	assert.Equal(t, 9.25, result.DurationEstimate)

	// work area cleaned up after success
	_, statErr := os.Stat(videoDir)
	assert.True(t, os.IsNotExist(statErr))

	audio.AssertExpectations(t)
	whisper.AssertExpectations(t)
}

func TestTranscribe_DownloadFailure(t *testing.T) {
	workDir := t.TempDir()
	ref := &model.VideoRef{VideoID: "vid00000001"}

	audio := &mockAudioDownloadService{}
	audio.On("DownloadAudio", mock.Anything, "vid00000001", mock.Anything).
		Return("", errors.New(errors.CodeExternal, "video unavailable"))

	whisper := &mockWhisperService{}

	svc := NewServiceWithDependencies(audio, whisper, workDir)

	_, err := svc.Transcribe(context.Background(), ref, "")
	require.Error(t, err)
	assert.Equal(t, errors.CodeTranscription, errors.Code(err))

	// whisper never runs when the download fails
	whisper.AssertNotCalled(t, "TranscribeAudio", mock.Anything, mock.Anything, mock.Anything)

	// work area cleaned up even on failure
	_, statErr := os.Stat(filepath.Join(workDir, "vid00000001"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestTranscribe_ModelFailure(t *testing.T) {
	workDir := t.TempDir()
	ref := &model.VideoRef{VideoID: "vid00000001"}

	audio := &mockAudioDownloadService{}
	audio.On("DownloadAudio", mock.Anything, "vid00000001", mock.Anything).Return("/tmp/a.m4a", nil)

	whisper := &mockWhisperService{}
	whisper.On("TranscribeAudio", mock.Anything, "/tmp/a.m4a", "").
		Return(nil, errors.New(errors.CodeExternal, "model crashed"))

	svc := NewServiceWithDependencies(audio, whisper, workDir)

	_, err := svc.Transcribe(context.Background(), ref, "")
	require.Error(t, err)
	assert.Equal(t, errors.CodeTranscription, errors.Code(err))
}

func TestTranscribe_EmptyDetectedLanguageFallsBackToHint(t *testing.T) {
	workDir := t.TempDir()
	ref := &model.VideoRef{VideoID: "vid00000001"}

	audio := &mockAudioDownloadService{}
	audio.On("DownloadAudio", mock.Anything, mock.Anything, mock.Anything).Return("/tmp/a.m4a", nil)

	whisper := &mockWhisperService{}
	whisper.On("TranscribeAudio", mock.Anything, mock.Anything, "ja").
		Return(&model.WhisperResult{Text: "x"}, nil)

	svc := NewServiceWithDependencies(audio, whisper, workDir)

	result, err := svc.Transcribe(context.Background(), ref, "ja")
	require.NoError(t, err)
	assert.Equal(t, "ja", result.Language)
	assert.Zero(t, result.DurationEstimate)
}
