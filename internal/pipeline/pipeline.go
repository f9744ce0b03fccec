// Package pipeline drives the per-video extraction loop: resolve the input,
// try captions, consult the consent manager, try the whisper fallback, and
// normalize whatever succeeded into the batch outputs.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/yiApollo/yttx/internal/consent"
	"github.com/yiApollo/yttx/internal/errors"
	"github.com/yiApollo/yttx/internal/model"
	"github.com/yiApollo/yttx/internal/output"
	"github.com/yiApollo/yttx/internal/service/captions"
	"github.com/yiApollo/yttx/internal/service/transcription"
	"github.com/yiApollo/yttx/internal/service/translation"
	"github.com/yiApollo/yttx/internal/service/youtube"
)

// Pipeline processes one batch of videos sequentially. Consent state and the
// summary are shared mutable state, so nothing here runs concurrently.
type Pipeline struct {
	resolver   youtube.Service
	captions   captions.Service
	fallback   transcription.Service
	translator translation.Service
	consent    *consent.Manager
	writer     *output.Writer
	out        io.Writer

	showProgress bool
	now          func() time.Time
}

// New creates a Pipeline. out receives status lines and the final report.
func New(
	resolver youtube.Service,
	captionsSvc captions.Service,
	fallback transcription.Service,
	translator translation.Service,
	consentMgr *consent.Manager,
	writer *output.Writer,
	out io.Writer,
	showProgress bool,
) *Pipeline {
	return &Pipeline{
		resolver:     resolver,
		captions:     captionsSvc,
		fallback:     fallback,
		translator:   translator,
		consent:      consentMgr,
		writer:       writer,
		out:          out,
		showProgress: showProgress,
		now:          time.Now,
	}
}

// Run resolves the input and processes every video. Only reference
// resolution is batch-fatal; each per-video failure becomes a skip record
// and the loop moves on.
func (p *Pipeline) Run(ctx context.Context, rawInput, targetLang string) (*model.BatchSummary, error) {
	refs, err := p.resolver.Resolve(ctx, rawInput)
	if err != nil {
		return nil, err
	}

	summary := &model.BatchSummary{}

	var bar *progressbar.ProgressBar
	if p.showProgress && len(refs) > 1 {
		bar = progressbar.NewOptions(len(refs),
			progressbar.OptionSetDescription("Processing videos"),
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for _, ref := range refs {
		p.processVideo(ctx, ref, targetLang, summary)
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	p.report(summary)
	return summary, nil
}

// processVideo walks one video through its terminal state: a written
// transcript or a skip record, never both, never neither.
func (p *Pipeline) processVideo(ctx context.Context, ref *model.VideoRef, targetLang string, summary *model.BatchSummary) {
	result, err := p.captions.Fetch(ctx, ref, targetLang)
	if err != nil {
		// External errors behave like unavailable captions but are
		// surfaced so the operator can triage them.
		if !errors.HasCode(err, errors.CodeCaptionsUnavailable) {
			fmt.Fprintf(p.out, "⚠️  captions lookup failed for %q: %v\n", ref.DisplayTitle(), err)
		}

		if !p.consent.Decide(ref) {
			p.skip(ref, "fallback transcription declined", summary)
			return
		}

		result, err = p.fallback.Transcribe(ctx, ref, targetLang)
		if err != nil {
			p.skip(ref, "whisper transcription failed: "+err.Error(), summary)
			return
		}
	}

	if err := p.writer.WriteTranscript(ref, result); err != nil {
		p.skip(ref, "write failed: "+err.Error(), summary)
		return
	}

	if result.Source == model.SourceCaptions {
		summary.Captioned++
	} else {
		summary.Transcribed++
	}

	p.maybeTranslate(ctx, ref, result, targetLang, summary)
}

// maybeTranslate writes a translated rendition when a target language was
// chosen and the transcript is not already in it. Translation failures are
// warnings: the original transcript is already on disk.
func (p *Pipeline) maybeTranslate(ctx context.Context, ref *model.VideoRef, result *model.TranscriptResult, targetLang string, summary *model.BatchSummary) {
	if p.translator == nil || targetLang == "" || targetLang == result.Language {
		return
	}

	translated, err := translation.TranslateDocument(ctx, p.translator, result.Text, result.Language, targetLang)
	if err != nil {
		fmt.Fprintf(p.out, "⚠️  failed to translate transcript for %q: %v\n", ref.DisplayTitle(), err)
		return
	}
	if err := p.writer.WriteTranslated(ref, result, targetLang, translated); err != nil {
		fmt.Fprintf(p.out, "⚠️  failed to write translated transcript for %q: %v\n", ref.DisplayTitle(), err)
		return
	}
	summary.Translated++
}

func (p *Pipeline) skip(ref *model.VideoRef, reason string, summary *model.BatchSummary) {
	record := model.SkipRecord{
		VideoID:   ref.VideoID,
		Reason:    reason,
		Timestamp: p.now(),
	}
	if err := p.writer.LogSkip(record); err != nil {
		fmt.Fprintf(p.out, "⚠️  failed to record skip for %s: %v\n", ref.VideoID, err)
	}
	summary.Skipped++
	fmt.Fprintf(p.out, "⚠️  skipped %q: %s\n", ref.DisplayTitle(), reason)
}

func (p *Pipeline) report(summary *model.BatchSummary) {
	fmt.Fprintf(p.out, "\n✅ Batch complete (%s)\n", summary)
	if summary.Skipped > 0 {
		fmt.Fprintf(p.out, "Skipped videos are listed in %s\n", p.writer.SkipLogPath())
	}
}
