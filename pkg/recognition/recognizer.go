// Package recognition layers a typed view on top of the raw recognition
// response. The server's JSON schema varies between deployments, so the
// extraction is best-effort: the untouched response map is always kept next
// to whatever plates could be pulled out of it.
package recognition

import (
	"context"
	"strings"

	"github.com/platevision/mmrclient/pkg/client"
	"github.com/platevision/mmrclient/pkg/types"
)

// Result pairs the passthrough response with the extracted plate views.
type Result struct {
	Raw    types.RecognitionResult
	Plates []types.Plate
}

// Recognizer wraps a RecognitionAPI and post-processes its results.
type Recognizer struct {
	api client.RecognitionAPI
}

// NewRecognizer creates a recognizer backed by the given API client.
func NewRecognizer(api client.RecognitionAPI) *Recognizer {
	return &Recognizer{api: api}
}

// RecognizePlates submits the image and extracts typed plates from the
// response. The raw map in the result is the server response, unmodified.
func (r *Recognizer) RecognizePlates(ctx context.Context, apiKey, source string, req *types.RecognitionRequest) (*Result, error) {
	raw, err := r.api.Recognize(ctx, apiKey, source, req)
	if err != nil {
		return nil, err
	}
	return &Result{Raw: raw, Plates: ExtractPlates(raw)}, nil
}

// ExtractPlates walks the response map looking for recognized vehicles.
// Top-level arrays named results, vehicles, or plates are tried first; when
// none exist the whole map is scanned for objects carrying plate-like keys.
func ExtractPlates(raw types.RecognitionResult) []types.Plate {
	var plates []types.Plate

	for _, key := range []string{"results", "vehicles", "plates"} {
		if items, ok := raw[key].([]any); ok {
			for _, item := range items {
				if obj, ok := item.(map[string]any); ok {
					if p, ok := plateFromObject(obj); ok {
						plates = append(plates, p)
					}
				}
			}
		}
	}
	if plates != nil {
		return plates
	}

	// No recognized container key; scan the document instead.
	scanForPlates(map[string]any(raw), &plates)
	return plates
}

// plateFromObject reads one vehicle object. It counts as a plate when any
// plate-text key is present.
func plateFromObject(obj map[string]any) (types.Plate, bool) {
	var p types.Plate
	p.Text = stringField(obj, "plateText", "plate", "text")
	if p.Text == "" {
		if ocr, ok := obj["ocr"].(map[string]any); ok {
			p.Text = stringField(ocr, "text", "plateText")
			if p.Confidence == 0 {
				p.Confidence = floatField(ocr, "confidence", "score")
			}
		}
	}
	if p.Text == "" {
		return types.Plate{}, false
	}
	if p.Confidence == 0 {
		p.Confidence = floatField(obj, "confidence", "score")
	}
	p.Make = stringField(obj, "make")
	p.Model = stringField(obj, "model")
	p.Category = stringField(obj, "category", "type")
	if mmr, ok := obj["mmr"].(map[string]any); ok {
		if p.Make == "" {
			p.Make = stringField(mmr, "make")
		}
		if p.Model == "" {
			p.Model = stringField(mmr, "model")
		}
		if p.Category == "" {
			p.Category = stringField(mmr, "category", "type")
		}
	}
	return p, true
}

// scanForPlates recursively visits nested objects and arrays.
func scanForPlates(node any, out *[]types.Plate) {
	switch v := node.(type) {
	case map[string]any:
		if p, ok := plateFromObject(v); ok {
			*out = append(*out, p)
			return
		}
		for _, child := range v {
			scanForPlates(child, out)
		}
	case []any:
		for _, child := range v {
			scanForPlates(child, out)
		}
	}
}

func stringField(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func floatField(obj map[string]any, keys ...string) float64 {
	for _, key := range keys {
		if f, ok := obj[key].(float64); ok {
			return f
		}
	}
	return 0
}
