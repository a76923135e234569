// Package imagesource classifies a caller-supplied string as either a local
// file path or a remote URL and resolves it to raw image bytes.
package imagesource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/platevision/mmrclient/internal/utils"
)

// ErrInvalidInput reports a source string that is neither an existing local
// file path nor a URL with both a scheme and a host.
var ErrInvalidInput = errors.New("input is neither a valid file path nor a URL")

// ErrImageRead reports a source that classified fine but whose byte content
// could not be obtained.
var ErrImageRead = errors.New("failed to read image")

// Kind discriminates the two accepted source forms.
type Kind int

const (
	// KindLocalFile means the source names an existing file on disk.
	KindLocalFile Kind = iota + 1
	// KindRemoteURL means the source parses as a URL with scheme and host.
	KindRemoteURL
)

// Source is a classified image origin. Raw always keeps the string exactly as
// the caller supplied it; the server sees it as the uploaded filename.
type Source struct {
	Kind Kind
	Raw  string
}

// Classify resolves the path-or-URL ambiguity once, up front. An existing
// local file wins; otherwise the string is URL-decoded and must parse with
// both a scheme and a host to count as remote.
func Classify(input string) (Source, error) {
	if utils.FileExists(input) {
		return Source{Kind: KindLocalFile, Raw: input}, nil
	}

	decoded, err := url.QueryUnescape(input)
	if err != nil {
		decoded = input
	}
	if u, err := url.Parse(decoded); err == nil && u.Scheme != "" && u.Host != "" {
		return Source{Kind: KindRemoteURL, Raw: input}, nil
	}

	return Source{}, fmt.Errorf("%w: %q", ErrInvalidInput, input)
}

// Resolve obtains the raw bytes of the image. Local files are read in full;
// remote URLs are fetched with a single GET through httpClient. Any failure
// to produce bytes is reported as ErrImageRead.
func (s Source) Resolve(ctx context.Context, httpClient *http.Client) ([]byte, error) {
	switch s.Kind {
	case KindLocalFile:
		data, err := os.ReadFile(s.Raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageRead, err)
		}
		return data, nil

	case KindRemoteURL:
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Raw, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageRead, err)
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageRead, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: fetching %s returned %s", ErrImageRead, s.Raw, resp.Status)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageRead, err)
		}
		return data, nil

	default:
		return nil, fmt.Errorf("%w: unclassified source", ErrImageRead)
	}
}
