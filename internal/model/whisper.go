package model

// WhisperResult mirrors the JSON document the whisper CLI writes next to the
// audio file.
type WhisperResult struct {
	Text     string           `json:"text"`
	Language string           `json:"language"`
	Segments []WhisperSegment `json:"segments"`
}

// WhisperSegment is one timed chunk of a whisper transcription.
type WhisperSegment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Duration returns the end time of the last segment, or 0 when the
// result carries no segments.
func (r *WhisperResult) Duration() float64 {
	if len(r.Segments) == 0 {
		return 0
	}
	return r.Segments[len(r.Segments)-1].End
}
