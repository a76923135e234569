package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/platevision/mmrclient/pkg/types"
)

// Config holds the CLI configuration. Values start from Defaults and are
// overridden by .env files and environment variables; flags override last.
type Config struct {
	ServerAddress string   `env:"MMR_SERVER_ADDRESS"` // base URL, trailing slash expected
	APIKey        string   `env:"MMR_API_KEY"`
	SaveImage     bool     `env:"MMR_SAVE_IMAGE"`
	SavePlateText bool     `env:"MMR_SAVE_PLATE_TEXT"`
	Tasks         []string `env:"MMR_TASKS" envSeparator:","` // DETECTION,OCR,MMR
	OCRModuleID   int      `env:"MMR_OCR_MODULE_ID"`

	// Pre-upload preparation; MaxDim 0 disables resizing, Prepare false
	// sends the original bytes untouched.
	Prepare     bool   `env:"MMR_PREPARE"`
	SendFormat  string `env:"MMR_SEND_FORMAT"`
	SendMaxDim  int    `env:"MMR_SEND_MAX_DIM"`
	SendQuality int    `env:"MMR_SEND_QUALITY"`

	OutputDir string `env:"MMR_OUTPUT_DIR"`
	Debug     bool   `env:"MMR_DEBUG"`
}

// Defaults returns a configuration with default values.
func Defaults() *Config {
	return &Config{
		ServerAddress: "https://trafficeye.ai/",
		SaveImage:     false,
		SavePlateText: true,
		Tasks:         []string{"DETECTION", "OCR", "MMR"},
		OCRModuleID:   types.DefaultOCRModuleID,
		Prepare:       false,
		SendFormat:    "jpg",
		SendMaxDim:    1920,
		SendQuality:   85,
		OutputDir:     "out",
	}
}

// Load builds the configuration from defaults, .env, and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server address cannot be empty")
	}
	if c.APIKey == "" {
		return fmt.Errorf("api key cannot be empty")
	}
	if len(c.Tasks) == 0 {
		return fmt.Errorf("tasks cannot be empty")
	}
	if c.OCRModuleID <= 0 {
		return fmt.Errorf("ocr module id must be positive")
	}
	if c.SendQuality < 1 || c.SendQuality > 100 {
		return fmt.Errorf("send quality must be between 1 and 100")
	}
	if c.SendMaxDim < 0 {
		return fmt.Errorf("send max dimension cannot be negative")
	}
	return nil
}

// RecognitionRequest converts the configured task list and toggles into the
// wire request, validating the task names.
func (c *Config) RecognitionRequest() (*types.RecognitionRequest, error) {
	tasks := make([]types.Task, 0, len(c.Tasks))
	for _, t := range c.Tasks {
		tasks = append(tasks, types.Task(t))
	}
	req := &types.RecognitionRequest{
		SaveImage:     c.SaveImage,
		SavePlateText: c.SavePlateText,
		Tasks:         tasks,
		OCRModuleID:   c.OCRModuleID,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}
