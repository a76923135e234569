package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/platevision/mmrclient"
	"github.com/platevision/mmrclient/internal/config"
	"github.com/platevision/mmrclient/internal/utils"
	"github.com/platevision/mmrclient/pkg/processing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet
		panic(err)
	}

	var image, tasks string
	var infoOnly bool

	flag.StringVar(&cfg.ServerAddress, "server", cfg.ServerAddress, "recognition server base URL (trailing slash expected)")
	flag.StringVar(&cfg.APIKey, "key", cfg.APIKey, "API key (also MMR_API_KEY)")
	flag.StringVar(&image, "image", "", "image path or URL to recognize")
	flag.StringVar(&tasks, "tasks", strings.Join(cfg.Tasks, ","), "comma-separated tasks: DETECTION,OCR,MMR")
	flag.BoolVar(&cfg.SaveImage, "save-image", cfg.SaveImage, "ask the server to store the image")
	flag.BoolVar(&cfg.SavePlateText, "save-plate-text", cfg.SavePlateText, "keep the plate text in the server request history")
	flag.IntVar(&cfg.OCRModuleID, "ocr-module", cfg.OCRModuleID, "OCR module id")
	flag.BoolVar(&cfg.Prepare, "prepare", cfg.Prepare, "downscale and re-encode the image before upload")
	flag.StringVar(&cfg.SendFormat, "sendfmt", cfg.SendFormat, "upload format when preparing: jpg|png|webp")
	flag.IntVar(&cfg.SendMaxDim, "sendsize", cfg.SendMaxDim, "max long side when preparing (px), 0=original")
	flag.IntVar(&cfg.SendQuality, "sendq", cfg.SendQuality, "JPEG/WebP quality when preparing (1-100)")
	flag.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "directory for the raw JSON response")
	flag.BoolVar(&infoOnly, "info-only", false, "only query server status")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging")
	flag.Parse()
	cfg.Tasks = splitTasks(tasks)

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() {
		_ = logger.Sync()
	}()

	if err := cfg.Validate(); err != nil {
		sugar.Fatalw("Invalid configuration", "error", err)
	}
	if !infoOnly && image == "" {
		sugar.Fatalf("usage: %s -key API_KEY -image input.jpg|URL [-server url] [-tasks DETECTION,OCR,MMR] [-info-only]", os.Args[0])
	}

	var client *mmrclient.MMRClient
	if cfg.Prepare {
		client = mmrclient.NewWithPreparation(cfg.ServerAddress, processing.Options{
			Format:  cfg.SendFormat,
			MaxDim:  cfg.SendMaxDim,
			Quality: cfg.SendQuality,
		})
	} else {
		client = mmrclient.New(cfg.ServerAddress)
	}

	ctx := context.Background()

	info, err := client.Info(ctx, cfg.APIKey)
	if err != nil {
		sugar.Fatalw("Info query failed", "server", cfg.ServerAddress, "error", err)
	}
	sugar.Infow("Server status", "info", info)

	if infoOnly {
		return
	}

	if utils.FileExists(image) && !utils.IsImageFile(image) {
		sugar.Warnw("Input does not have a known image extension", "image", image)
	}
	if fi, err := os.Stat(image); err == nil {
		sugar.Debugw("Submitting local file", "image", image, "size", utils.FormatFileSize(fi.Size()))
	}

	req, err := cfg.RecognitionRequest()
	if err != nil {
		sugar.Fatalw("Invalid recognition request", "error", err)
	}

	result, err := client.RecognizePlates(ctx, cfg.APIKey, image, req)
	if err != nil {
		sugar.Fatalw("Recognition failed", "image", image, "error", err)
	}

	for _, plate := range result.Plates {
		sugar.Infow("Recognized plate",
			"plate", plate.Text,
			"confidence", plate.Confidence,
			"make", plate.Make,
			"model", plate.Model,
			"category", plate.Category,
		)
	}
	if len(result.Plates) == 0 {
		sugar.Infow("No plates extracted from response; see raw output")
	}

	if err := utils.EnsureDir(cfg.OutputDir); err != nil {
		sugar.Fatalw("Failed to create output directory", "dir", cfg.OutputDir, "error", err)
	}
	outPath := utils.GenerateOutputFilename(image, cfg.OutputDir, "", "_result", "json")
	js, err := json.MarshalIndent(result.Raw, "", "  ")
	if err != nil {
		sugar.Fatalw("Failed to marshal response", "error", err)
	}
	if err := os.WriteFile(outPath, js, 0o644); err != nil {
		sugar.Fatalw("Failed to write response", "path", outPath, "error", err)
	}
	sugar.Infow("Wrote raw response", "path", outPath, "size", utils.FormatFileSize(int64(len(js))))
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// splitTasks parses the -tasks flag, trimming whitespace and dropping empties.
func splitTasks(v string) []string {
	parts := strings.Split(v, ",")
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			cleaned = append(cleaned, strings.ToUpper(p))
		}
	}
	return cleaned
}
