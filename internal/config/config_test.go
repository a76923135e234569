package config

import (
	"testing"

	"github.com/platevision/mmrclient/pkg/types"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.SaveImage {
		t.Error("save image should default to false")
	}
	if !cfg.SavePlateText {
		t.Error("save plate text should default to true")
	}
	if cfg.OCRModuleID != 801 {
		t.Errorf("Expected OCR module 801, got %d", cfg.OCRModuleID)
	}
	if len(cfg.Tasks) != 3 {
		t.Errorf("Expected 3 default tasks, got %d", len(cfg.Tasks))
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MMR_SERVER_ADDRESS", "https://example.test/")
	t.Setenv("MMR_API_KEY", "env-key")
	t.Setenv("MMR_TASKS", "DETECTION,OCR")
	t.Setenv("MMR_OCR_MODULE_ID", "102")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerAddress != "https://example.test/" {
		t.Errorf("server address not overridden: %s", cfg.ServerAddress)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("api key not overridden: %s", cfg.APIKey)
	}
	if len(cfg.Tasks) != 2 || cfg.Tasks[0] != "DETECTION" || cfg.Tasks[1] != "OCR" {
		t.Errorf("tasks not overridden: %v", cfg.Tasks)
	}
	if cfg.OCRModuleID != 102 {
		t.Errorf("ocr module not overridden: %d", cfg.OCRModuleID)
	}
}

func TestValidate(t *testing.T) {
	valid := Defaults()
	valid.APIKey = "key"
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty server", func(c *Config) { c.ServerAddress = "" }},
		{"empty key", func(c *Config) { c.APIKey = "" }},
		{"no tasks", func(c *Config) { c.Tasks = nil }},
		{"bad module", func(c *Config) { c.OCRModuleID = 0 }},
		{"bad quality", func(c *Config) { c.SendQuality = 200 }},
		{"negative dim", func(c *Config) { c.SendMaxDim = -1 }},
	}

	for _, test := range tests {
		cfg := Defaults()
		cfg.APIKey = "key"
		test.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", test.name)
		}
	}
}

func TestRecognitionRequest(t *testing.T) {
	cfg := Defaults()
	cfg.APIKey = "key"

	req, err := cfg.RecognitionRequest()
	if err != nil {
		t.Fatalf("RecognitionRequest failed: %v", err)
	}
	if len(req.Tasks) != 3 || req.Tasks[0] != types.TaskDetection {
		t.Errorf("unexpected tasks: %v", req.Tasks)
	}

	cfg.Tasks = []string{"NOT_A_TASK"}
	if _, err := cfg.RecognitionRequest(); err == nil {
		t.Error("expected error for unknown task name")
	}
}
