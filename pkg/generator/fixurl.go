package generator

import (
	"strings"

	"github.com/blimu-dev/openapi-iots-gen/pkg/generrors"
	"github.com/blimu-dev/openapi-iots-gen/pkg/ir"
	"github.com/blimu-dev/openapi-iots-gen/pkg/orderedmap"
)

// FixURL replaces every path segment equal to from with the placeholder {to}.
func FixURL(url, from, to string) string {
	segments := strings.Split(url, "/")
	for i, s := range segments {
		if s == from {
			segments[i] = "{" + to + "}"
		}
	}
	return strings.Join(segments, "/")
}

// FixURLParam returns a copy of spec in which the literal segment from of
// every path has become the placeholder {to}. Every handler of a rewritten
// path gets a required string path parameter named to. Handlers of paths
// that do not contain the segment are shared with spec.
func FixURLParam(spec *ir.Spec, from, to string) (*ir.Spec, error) {
	out := ir.NewSpec()
	for url, methods := range spec.Paths.All() {
		fixed := FixURL(url, from, to)
		if fixed != url {
			var err error
			if methods, err = addPathParam(methods, fixed, to); err != nil {
				return nil, err
			}
		}
		if err := out.Paths.Insert(fixed, methods); err != nil {
			return nil, generrors.Validationf("", nil, "path %s collides with an existing path after rewriting %q", fixed, from)
		}
	}
	return out, nil
}

func addPathParam(methods *orderedmap.Map[ir.Method, *ir.Handler], url, name string) (*orderedmap.Map[ir.Method, *ir.Handler], error) {
	out := orderedmap.New[ir.Method, *ir.Handler]()
	for method, h := range methods.All() {
		c := h.Clone()
		if err := c.AddParam(name, ir.InPath, ir.String{Required: true}, true); err != nil {
			return nil, generrors.Validationf("", nil, "%s %s: duplicate parameter %q", method.Upper(), url, name)
		}
		out.Set(method, c)
	}
	return out, nil
}
