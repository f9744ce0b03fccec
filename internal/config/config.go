package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// YouTubeAPIKey authenticates Data API calls for playlist expansion
	// and video metadata lookup.
	YouTubeAPIKey string `yaml:"youtube_api_key"`
	// WhisperModel is the model passed to the whisper CLI for fallback
	// transcription (tiny, base, small, medium, large).
	WhisperModel string `yaml:"whisper_model"`
	// TargetLanguage, when set, is used for every batch without prompting.
	TargetLanguage string `yaml:"target_language"`
	// OutputDir is the base directory for transcript output. Defaults to
	// the current working directory.
	OutputDir string `yaml:"output_dir"`
}

// NewConfig loads configuration with the following priority:
// Environment variables > Config file (required)
func NewConfig() (*Config, error) {
	config := &Config{}
	if err := loadConfigFile(config); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found. Please run 'yttx config init' to create it")
		}
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Apply environment variables (can override config file)
	if envKey := os.Getenv("YOUTUBE_API_KEY"); envKey != "" {
		config.YouTubeAPIKey = envKey
	}
	if envLang := os.Getenv("YTTX_TARGET_LANGUAGE"); envLang != "" {
		config.TargetLanguage = envLang
	}

	config.applyDefaults()
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.WhisperModel == "" {
		c.WhisperModel = "base"
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
}

// InitConfig creates a new configuration file with the given API key
func InitConfig(apiKey string) error {
	configDir, err := getConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := getConfigFilePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists: %s", configPath)
	}

	if apiKey == "" {
		apiKey = "your-youtube-data-api-key"
	}

	yamlContent := fmt.Sprintf(`# yttx configuration file
# youtube_api_key: YouTube Data API v3 key, used for playlist expansion and
# video metadata. Can be overridden with the YOUTUBE_API_KEY env variable.
youtube_api_key: "%s"

# whisper_model: model used for fallback transcription
# (tiny, base, small, medium, large)
whisper_model: "base"

# target_language: optional language code applied to every batch without
# prompting (e.g. "en", "pt"). Leave empty to be asked per run.
target_language: ""

# output_dir: base directory for individual_transcripts/, all_transcripts/,
# skipped.log and the temporary audio area.
output_dir: "."
`, apiKey)

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the configuration file
func GetConfigPath() (string, error) {
	return getConfigFilePath()
}

// getConfigDir returns the configuration directory path (~/.yttx)
func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".yttx"), nil
}

// getConfigFilePath returns the full path to the config file
func getConfigFilePath() (string, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// loadConfigFile loads configuration from ~/.yttx/config.yaml
func loadConfigFile(config *Config) error {
	configPath, err := getConfigFilePath()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}
