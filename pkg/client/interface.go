package client

import (
	"context"

	"github.com/platevision/mmrclient/pkg/types"
)

// RecognitionAPI is the surface of the recognition server consumed by the
// higher-level helpers. *mmrapi.Client implements it.
type RecognitionAPI interface {
	Info(ctx context.Context, apiKey string) (types.InfoResult, error)
	Recognize(ctx context.Context, apiKey, source string, req *types.RecognitionRequest) (types.RecognitionResult, error)
}
