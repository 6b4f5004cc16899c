package openapi

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/go-openapi/jsonpointer"

	"github.com/blimu-dev/openapi-iots-gen/pkg/generrors"
)

// Lookup walks a local reference of the form #/a/b/c from the document root.
// A segment that cannot be followed fails with a ReferenceError naming the
// pointer and the segment.
func Lookup(root any, ref string) (any, error) {
	tokens, err := pointerTokens(ref)
	if err != nil {
		return nil, err
	}

	current := root
	for _, tok := range tokens {
		switch v := current.(type) {
		case map[string]any:
			next, ok := v[tok]
			if !ok {
				return nil, &generrors.ReferenceError{Ref: ref, Segment: tok, Message: "no value"}
			}
			current = next
		case []any:
			index, err := strconv.Atoi(tok)
			if err != nil || index < 0 || index >= len(v) {
				return nil, &generrors.ReferenceError{Ref: ref, Segment: tok, Message: "invalid array index"}
			}
			current = v[index]
		default:
			return nil, &generrors.ReferenceError{Ref: ref, Segment: tok, Message: "no map"}
		}
	}
	return current, nil
}

func pointerTokens(ref string) ([]string, error) {
	if !strings.HasPrefix(ref, "#") {
		return nil, &generrors.ReferenceError{Ref: ref, Message: "only local references of the form #/a/b/c are supported"}
	}
	p, err := jsonpointer.New(strings.TrimPrefix(ref, "#"))
	if err != nil {
		return nil, &generrors.ReferenceError{Ref: ref, Message: err.Error()}
	}
	return p.DecodedTokens(), nil
}

// Join appends one escaped segment to a pointer.
func Join(pointer, segment string) string {
	return pointer + "/" + jsonpointer.Escape(segment)
}

// SortedKeys returns the keys of an object node in ascending order.
func SortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
