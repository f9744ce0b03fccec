package cmd

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "yttx",
	Short: "Extract YouTube transcripts as Markdown",
	Long: `yttx extracts transcripts from YouTube videos and playlists.

It prefers the official caption tracks and, when a video has none, can fall
back to local whisper speech-to-text after asking for your consent. Results
are written as Markdown: one file per video plus a consolidated document for
the whole batch.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
