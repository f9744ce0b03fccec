package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yiApollo/yttx/internal/config"
	"github.com/yiApollo/yttx/internal/consent"
	"github.com/yiApollo/yttx/internal/output"
	"github.com/yiApollo/yttx/internal/pipeline"
	"github.com/yiApollo/yttx/internal/prompt"
	"github.com/yiApollo/yttx/internal/service/captions"
	"github.com/yiApollo/yttx/internal/service/transcription"
	"github.com/yiApollo/yttx/internal/service/translation"
	"github.com/yiApollo/yttx/internal/service/youtube"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [URL]",
	Short: "Extract transcripts for a video or playlist",
	Long: `Extract transcripts for a single video or a whole playlist.

URL may be a watch URL, a youtu.be short link, a /shorts/ link, a playlist
URL, or a bare 11-character video ID. Captions are used when available; for
videos without captions you are asked whether to run the whisper fallback.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		language, _ := cmd.Flags().GetString("language")
		model, _ := cmd.Flags().GetString("model")
		outputDir, _ := cmd.Flags().GetString("output")
		acceptAll, _ := cmd.Flags().GetBool("yes")
		noFallback, _ := cmd.Flags().GetBool("no-fallback")
		noProgress, _ := cmd.Flags().GetBool("no-progress")

		// Load configuration
		cfg, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if model == "" {
			model = cfg.WhisperModel
		}
		if outputDir == "" {
			outputDir = cfg.OutputDir
		}

		prompter := prompt.NewStdinPrompter()

		// Target language: flag > config > one-time prompt
		targetLang := language
		if targetLang == "" {
			targetLang = cfg.TargetLanguage
		}
		if targetLang == "" {
			targetLang = prompt.AskTargetLanguage(prompter)
		}

		state := consent.StateAsk
		switch {
		case acceptAll:
			state = consent.StateAcceptAll
		case noFallback:
			state = consent.StateDeclineAll
		}

		writer, err := output.NewWriter(outputDir)
		if err != nil {
			return err
		}

		workDir := filepath.Join(outputDir, "video_files")

		p := pipeline.New(
			youtube.NewService(cfg.YouTubeAPIKey),
			captions.NewService(),
			transcription.NewService(workDir, model),
			translation.NewService(),
			consent.NewManagerWithState(prompter, state),
			writer,
			os.Stdout,
			!noProgress,
		)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		_, err = p.Run(ctx, args[0], targetLang)
		return err
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("language", "l", "", "target language code (skips the interactive prompt)")
	extractCmd.Flags().StringP("model", "m", "", "whisper model for fallback transcription (default from config)")
	extractCmd.Flags().StringP("output", "o", "", "base output directory (default from config)")
	extractCmd.Flags().BoolP("yes", "y", false, "run the whisper fallback for every video without asking")
	extractCmd.Flags().Bool("no-fallback", false, "never run the whisper fallback; skip videos without captions")
	extractCmd.Flags().Bool("no-progress", false, "disable the playlist progress bar")
}
