// Package mmrclient provides a client for remote license-plate recognition
// REST services performing detection, OCR, and make-model-recognition (MMR).
//
// The client exposes two operations: querying server status and submitting an
// image for recognition. Images can come from a local file path or a remote
// URL; the client resolves the ambiguity once, reads the bytes, and uploads
// them as a multipart form together with a JSON request field.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/platevision/mmrclient"
//	)
//
//	func main() {
//		client := mmrclient.New("https://trafficeye.ai/")
//		ctx := context.Background()
//
//		// Query server status
//		info, err := client.Info(ctx, "YOUR_API_KEY")
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(info)
//
//		// Submit an image (file path or URL) with the default tasks
//		result, err := client.Recognize(ctx, "YOUR_API_KEY", "car.jpg")
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(result)
//	}
//
// The package consists of these components:
//
// 1. API client (pkg/mmrapi): request encoding, response decoding, error mapping
// 2. Source handling (pkg/imagesource): local-path vs. remote-URL classification
// 3. Recognition helpers (pkg/recognition): typed plate extraction
// 4. Processing (pkg/processing): optional pre-upload downscaling and re-encoding
//
// All calls are synchronous and stateless with respect to prior calls. Errors
// are returned to the caller without retries; see pkg/mmrapi and
// pkg/imagesource for the error types.
package mmrclient

import (
	"context"

	"github.com/platevision/mmrclient/pkg/imagesource"
	"github.com/platevision/mmrclient/pkg/mmrapi"
	"github.com/platevision/mmrclient/pkg/processing"
	"github.com/platevision/mmrclient/pkg/recognition"
	"github.com/platevision/mmrclient/pkg/types"
)

// Version of the mmrclient library
const Version = "1.0.0"

// MMRClient provides a high-level interface to a recognition server.
type MMRClient struct {
	api       *mmrapi.Client
	processor *processing.Processor
	prep      *processing.Options
}

// New creates a client for the server at serverAddress. The address must end
// with a trailing slash (e.g. "https://trafficeye.ai/"). Uploaded images are
// sent byte-for-byte as read.
func New(serverAddress string) *MMRClient {
	return &MMRClient{
		api:       mmrapi.NewClient(serverAddress),
		processor: processing.NewProcessor(),
	}
}

// NewWithPreparation creates a client that re-encodes images before upload
// according to opts (downscale, change format). Useful for large photos when
// upload size matters more than pixel fidelity.
func NewWithPreparation(serverAddress string, opts processing.Options) *MMRClient {
	c := New(serverAddress)
	c.prep = &opts
	return c
}

// Info queries the server status.
func (c *MMRClient) Info(ctx context.Context, apiKey string) (types.InfoResult, error) {
	return c.api.Info(ctx, apiKey)
}

// Recognize submits an image for recognition with the default request
// (all tasks, global OCR module). source may be a file path or a URL.
func (c *MMRClient) Recognize(ctx context.Context, apiKey, source string) (types.RecognitionResult, error) {
	return c.RecognizeWithRequest(ctx, apiKey, source, nil)
}

// RecognizeWithRequest submits an image with an explicit recognition request.
// A nil req means the defaults.
func (c *MMRClient) RecognizeWithRequest(ctx context.Context, apiKey, source string, req *types.RecognitionRequest) (types.RecognitionResult, error) {
	if c.prep == nil {
		return c.api.Recognize(ctx, apiKey, source, req)
	}

	src, err := imagesource.Classify(source)
	if err != nil {
		return nil, err
	}
	data, err := src.Resolve(ctx, c.api.HTTPClient())
	if err != nil {
		return nil, err
	}
	prepared, err := c.processor.PrepareUpload(data, *c.prep)
	if err != nil {
		return nil, err
	}
	return c.api.RecognizeBytes(ctx, apiKey, source, prepared, req)
}

// RecognizePlates submits an image and extracts typed plate views from the
// response alongside the raw passthrough map. Preparation settings apply the
// same way as in RecognizeWithRequest.
func (c *MMRClient) RecognizePlates(ctx context.Context, apiKey, source string, req *types.RecognitionRequest) (*recognition.Result, error) {
	raw, err := c.RecognizeWithRequest(ctx, apiKey, source, req)
	if err != nil {
		return nil, err
	}
	return &recognition.Result{Raw: raw, Plates: recognition.ExtractPlates(raw)}, nil
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
