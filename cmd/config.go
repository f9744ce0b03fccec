package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yiApollo/yttx/internal/config"
	"github.com/yiApollo/yttx/internal/service/common"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration settings",
	Long:  `Manage configuration settings for yttx.`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init [API_KEY]",
	Short: "Initialize configuration file",
	Long:  `Create a new configuration file with a YouTube Data API key and defaults.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var apiKey string
		if len(args) > 0 {
			apiKey = args[0]
		}

		if err := config.InitConfig(apiKey); err != nil {
			return err
		}

		configPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		fmt.Printf("Created configuration file: %s\n", configPath)
		fmt.Println("Set youtube_api_key in this file (or YOUTUBE_API_KEY) to enable playlist expansion.")

		return nil
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration file path, settings, and tool availability.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		fmt.Printf("Configuration file: %s\n\n", configPath)

		cfg, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		fmt.Printf("youtube_api_key: %s\n", redactKey(cfg.YouTubeAPIKey))
		fmt.Printf("whisper_model: %s\n", cfg.WhisperModel)
		fmt.Printf("target_language: %s\n", cfg.TargetLanguage)
		fmt.Printf("output_dir: %s\n", cfg.OutputDir)

		fmt.Println()
		runner := common.NewCmdRunner()
		for _, tool := range []string{"yt-dlp", "whisper", "trans"} {
			if _, err := runner.LookPath(tool); err != nil {
				fmt.Printf("%s: not found in PATH\n", tool)
			} else {
				fmt.Printf("%s: available\n", tool)
			}
		}

		return nil
	},
}

// redactKey hides all but the last four characters of the API key.
func redactKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
