package model

import (
	"fmt"
	"time"
)

// TranscriptSource identifies which capability produced a transcript.
type TranscriptSource string

const (
	SourceCaptions TranscriptSource = "captions"
	SourceWhisper  TranscriptSource = "whisper"
)

// VideoRef identifies one video within a batch. PlaylistIndex is 1-based;
// zero means the batch was a single video rather than a playlist.
type VideoRef struct {
	VideoID       string
	Title         string
	Channel       string
	PlaylistIndex int
}

// URL returns the canonical watch URL for the video.
func (v *VideoRef) URL() string {
	return "https://www.youtube.com/watch?v=" + v.VideoID
}

// DisplayTitle returns the heading used in the Markdown documents:
// "<index>. <title> - <channel>" for playlist members, "<title>" otherwise.
// A video whose title could not be resolved falls back to its id.
func (v *VideoRef) DisplayTitle() string {
	title := v.Title
	if title == "" {
		title = v.VideoID
	}
	if v.Channel != "" {
		title = title + " - " + v.Channel
	}
	if v.PlaylistIndex > 0 {
		return fmt.Sprintf("%d. %s", v.PlaylistIndex, title)
	}
	return title
}

// TranscriptResult is the normalized outcome of exactly one adapter call.
// It is never mutated after creation.
type TranscriptResult struct {
	VideoID          string
	Source           TranscriptSource
	Language         string
	Text             string
	DurationEstimate float64 // seconds, 0 when unknown
}

// SkipRecord describes a video for which no transcript could be obtained.
type SkipRecord struct {
	VideoID   string
	Reason    string
	Timestamp time.Time
}

// BatchSummary accumulates per-video outcomes over one run.
type BatchSummary struct {
	Captioned   int
	Transcribed int
	Skipped     int
	Translated  int
}

// Total returns the number of videos that reached a terminal state.
func (s BatchSummary) Total() int {
	return s.Captioned + s.Transcribed + s.Skipped
}

func (s BatchSummary) String() string {
	return fmt.Sprintf("captioned: %d, transcribed: %d, skipped: %d, translated: %d",
		s.Captioned, s.Transcribed, s.Skipped, s.Translated)
}
