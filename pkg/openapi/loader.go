package openapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/cenkalti/backoff/v3"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/rs/zerolog"

	"github.com/blimu-dev/openapi-iots-gen/pkg/generrors"
)

// MaxDocumentSize bounds how much of a remote response body is read
const MaxDocumentSize = 64 << 20

// FetchOptions controls how a document is read from its source
type FetchOptions struct {
	// Timeout bounds each HTTP attempt. Zero means no timeout.
	Timeout time.Duration
	// Retries is the number of extra attempts after a failed HTTP fetch
	Retries int
	// InitialInterval is the first backoff delay between attempts
	InitialInterval time.Duration
	// Client overrides the HTTP client
	Client *http.Client
	// Validate runs the OpenAPI 3 validator over the document before it is parsed
	Validate bool
}

// IsURL reports whether input is an http(s) URL rather than a file path.
func IsURL(input string) bool {
	u, err := url.Parse(input)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// Fetch reads the raw bytes of a document from a local file path or an
// HTTP(S) URL.
func Fetch(ctx context.Context, input string, opts FetchOptions) ([]byte, error) {
	if IsURL(input) {
		return fetchURL(ctx, input, opts)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, &generrors.IOError{Op: "read", Target: input, Cause: err}
	}
	return data, nil
}

func fetchURL(ctx context.Context, input string, opts FetchOptions) ([]byte, error) {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	var body []byte
	attempt := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, input, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			return fmt.Errorf("unexpected status %s", resp.Status)
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("unexpected status %s", resp.Status))
		}
		body, err = io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize))
		return err
	}

	exp := backoff.NewExponentialBackOff()
	if opts.InitialInterval > 0 {
		exp.InitialInterval = opts.InitialInterval
	}
	retries := opts.Retries
	if retries < 0 {
		retries = 0
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)

	notify := func(err error, next time.Duration) {
		zerolog.Ctx(ctx).Warn().Err(err).Str("url", input).Dur("retry_in", next).Msg("fetching spec failed, retrying")
	}
	if err := backoff.RetryNotify(attempt, policy, notify); err != nil {
		return nil, &generrors.IOError{Op: "fetch", Target: input, Cause: err}
	}
	return body, nil
}

// LoadDocument fetches and parses a document. The result is the raw tree,
// not yet normalized.
func LoadDocument(ctx context.Context, input string, opts FetchOptions) (map[string]any, error) {
	data, err := Fetch(ctx, input, opts)
	if err != nil {
		return nil, err
	}
	if opts.Validate {
		if err := ValidateData(ctx, data); err != nil {
			return nil, generrors.Validationf("#", nil, "%s is not a valid OpenAPI 3 document: %v", input, err)
		}
	}
	doc, err := Parse(data, input)
	if err != nil {
		return nil, err
	}
	checkVersion(ctx, doc, input)
	return doc, nil
}

// ValidateDocument loads a document and runs the full OpenAPI 3 validation
// over it.
func ValidateDocument(ctx context.Context, input string, opts FetchOptions) error {
	data, err := Fetch(ctx, input, opts)
	if err != nil {
		return err
	}
	return ValidateData(ctx, data)
}

// ValidateData validates an OpenAPI 3 document held in memory.
func ValidateData(ctx context.Context, data []byte) error {
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: false}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return err
	}
	return doc.Validate(ctx)
}
