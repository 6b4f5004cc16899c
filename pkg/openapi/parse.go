package openapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/blimu-dev/openapi-iots-gen/pkg/generrors"
)

// Parse decodes a document, trying JSON first and YAML second. The root must
// be an object. YAML mapping keys that are not strings (such as response
// codes written as bare integers) are converted to strings.
func Parse(data []byte, source string) (map[string]any, error) {
	var doc any
	jsonErr := json.Unmarshal(data, &doc)
	if jsonErr != nil {
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &generrors.FormatError{Source: source, Cause: err}
		}
		normalized, err := normalizeKeys(raw)
		if err != nil {
			return nil, &generrors.FormatError{Source: source, Cause: err}
		}
		doc = normalized
	}

	root, ok := doc.(map[string]any)
	if !ok {
		return nil, &generrors.FormatError{Source: source, Cause: fmt.Errorf("root is %T, not an object", doc)}
	}
	return root, nil
}

func normalizeKeys(node any) (any, error) {
	switch v := node.(type) {
	case map[string]any:
		for k, child := range v {
			n, err := normalizeKeys(child)
			if err != nil {
				return nil, err
			}
			v[k] = n
		}
		return v, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, child := range v {
			key, err := cast.ToStringE(k)
			if err != nil {
				return nil, fmt.Errorf("mapping key %v: %w", k, err)
			}
			n, err := normalizeKeys(child)
			if err != nil {
				return nil, err
			}
			out[key] = n
		}
		return out, nil
	case []any:
		for i, item := range v {
			n, err := normalizeKeys(item)
			if err != nil {
				return nil, err
			}
			v[i] = n
		}
		return v, nil
	default:
		return v, nil
	}
}

// checkVersion warns when the document does not declare an OpenAPI 3 version.
// Generation still proceeds.
func checkVersion(ctx context.Context, doc map[string]any, source string) {
	logger := zerolog.Ctx(ctx)
	raw, ok := doc["openapi"]
	if !ok {
		logger.Warn().Str("source", source).Msg("document has no openapi version field")
		return
	}
	v, err := semver.NewVersion(cast.ToString(raw))
	if err != nil {
		logger.Warn().Str("source", source).Interface("openapi", raw).Msg("unparseable openapi version")
		return
	}
	if v.Major() != 3 {
		logger.Warn().Str("source", source).Str("openapi", v.String()).Msg("unsupported openapi version")
	}
}
