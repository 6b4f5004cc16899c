package generator

import (
	"errors"
	"strings"

	"github.com/spf13/cast"

	"github.com/blimu-dev/openapi-iots-gen/pkg/generrors"
	"github.com/blimu-dev/openapi-iots-gen/pkg/ir"
	"github.com/blimu-dev/openapi-iots-gen/pkg/openapi"
	"github.com/blimu-dev/openapi-iots-gen/pkg/orderedmap"
)

// Path item keys that describe the path rather than name a method.
var pathMetadataKeys = []string{"summary", "description", "servers", "parameters"}

// BuildSpec assembles the handler model of every path and method of a
// normalized document.
func BuildSpec(doc map[string]any) (*ir.Spec, error) {
	raw, ok := doc["paths"]
	if !ok {
		return nil, generrors.Validationf("#", nil, "document has no paths")
	}
	paths, ok := raw.(map[string]any)
	if !ok {
		return nil, generrors.Validationf("#/paths", raw, "paths must be an object")
	}

	r := NewResolver(doc)
	spec := ir.NewSpec()
	for _, url := range openapi.SortedKeys(paths) {
		methods, err := buildPathItem(r, url, paths[url])
		if err != nil {
			return nil, err
		}
		spec.Paths.Set(url, methods)
	}
	return spec, nil
}

func buildPathItem(r *Resolver, url string, raw any) (*orderedmap.Map[ir.Method, *ir.Handler], error) {
	at := openapi.Join("#/paths", url)
	item, ok := raw.(map[string]any)
	if !ok {
		return nil, generrors.Validationf(at, raw, "path item must be an object")
	}

	shared, err := parameterList(item["parameters"], openapi.Join(at, "parameters"))
	if err != nil {
		return nil, err
	}

	methods := orderedmap.New[ir.Method, *ir.Handler]()
	for _, key := range openapi.SortedKeys(item) {
		if isPathMetadata(key) {
			continue
		}
		opAt := openapi.Join(at, key)
		method, err := ir.ParseMethod(key)
		if err != nil {
			return nil, withPath(err, opAt)
		}
		op, ok := item[key].(map[string]any)
		if !ok {
			return nil, generrors.Validationf(opAt, item[key], "operation must be an object")
		}
		h, err := buildHandler(r, opAt, op, shared)
		if err != nil {
			return nil, err
		}
		if err := methods.Insert(method, h); err != nil {
			return nil, generrors.Validationf(opAt, nil, "duplicate method %s", method.Upper())
		}
	}
	return methods, nil
}

func isPathMetadata(key string) bool {
	if strings.HasPrefix(key, "x-") {
		return true
	}
	for _, k := range pathMetadataKeys {
		if k == key {
			return true
		}
	}
	return false
}

// paramRef pairs a parameter node with its location in the document.
type paramRef struct {
	node map[string]any
	at   string
	name string
	in   string
}

func parameterList(raw any, at string) ([]paramRef, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, generrors.Validationf(at, raw, "parameters must be a list")
	}
	out := make([]paramRef, 0, len(list))
	for i, item := range list {
		pAt := openapi.Join(at, cast.ToString(i))
		node, ok := item.(map[string]any)
		if !ok {
			return nil, generrors.Validationf(pAt, item, "parameter must be an object")
		}
		name, ok := node["name"].(string)
		if !ok || name == "" {
			return nil, generrors.Validationf(pAt, node, "parameter has no name")
		}
		in, ok := node["in"].(string)
		if !ok {
			return nil, generrors.Validationf(pAt, node, "parameter %q has no location", name)
		}
		out = append(out, paramRef{node: node, at: pAt, name: name, in: in})
	}
	return out, nil
}

// mergeParameters applies path level parameters before the operation's
// own. An operation parameter with the same name and location replaces the
// path level one.
func mergeParameters(shared, own []paramRef) []paramRef {
	out := make([]paramRef, 0, len(shared)+len(own))
	for _, s := range shared {
		overridden := false
		for _, o := range own {
			if o.name == s.name && strings.EqualFold(o.in, s.in) {
				overridden = true
				break
			}
		}
		if !overridden {
			out = append(out, s)
		}
	}
	return append(out, own...)
}

func buildHandler(r *Resolver, at string, op map[string]any, shared []paramRef) (*ir.Handler, error) {
	own, err := parameterList(op["parameters"], openapi.Join(at, "parameters"))
	if err != nil {
		return nil, err
	}

	h := ir.NewHandler()
	for _, p := range mergeParameters(shared, own) {
		in, err := ir.ParseParamIn(p.in)
		if err != nil {
			return nil, withPath(err, openapi.Join(p.at, "in"))
		}
		required, err := requiredFlag(p.node, p.at)
		if err != nil {
			return nil, err
		}
		t, err := r.Resolve(p.node, p.at)
		if err != nil {
			return nil, err
		}
		if err := h.AddParam(p.name, in, t, required); err != nil {
			return nil, withPath(err, p.at)
		}
	}

	if raw, ok := op["requestBody"]; ok {
		bodyAt := openapi.Join(at, "requestBody")
		body, ok := raw.(map[string]any)
		if !ok {
			return nil, generrors.Validationf(bodyAt, raw, "requestBody must be an object")
		}
		required, err := requiredFlag(body, bodyAt)
		if err != nil {
			return nil, err
		}
		t, err := r.Resolve(body, bodyAt)
		if err != nil {
			return nil, err
		}
		if err := h.AddParam(ir.RequestBodyName, ir.InBody, t, required); err != nil {
			return nil, withPath(err, bodyAt)
		}
	}

	if raw, ok := op["responses"]; ok {
		respAt := openapi.Join(at, "responses")
		responses, ok := raw.(map[string]any)
		if !ok {
			return nil, generrors.Validationf(respAt, raw, "responses must be an object")
		}
		for _, key := range openapi.SortedKeys(responses) {
			codeAt := openapi.Join(respAt, key)
			code, err := cast.ToIntE(key)
			if err != nil || code < 100 || code > 599 {
				return nil, generrors.Validationf(codeAt, nil, "unsupported response code %q", key)
			}
			t, err := r.Resolve(responses[key], codeAt)
			if err != nil {
				return nil, err
			}
			if err := h.AddResponse(code, t); err != nil {
				return nil, withPath(err, codeAt)
			}
		}
	}
	return h, nil
}

// requiredFlag reads the boolean required field of a parameter or request
// body. An absent flag is false.
func requiredFlag(node map[string]any, at string) (bool, error) {
	raw, ok := node["required"]
	if !ok {
		return false, nil
	}
	required, err := cast.ToBoolE(raw)
	if err != nil {
		return false, generrors.Validationf(openapi.Join(at, "required"), raw, "required must be a boolean")
	}
	return required, nil
}

// withPath fills in the location of a validation error raised by a model
// type that does not know where in the document it is.
func withPath(err error, at string) error {
	var verr *generrors.ValidationError
	if errors.As(err, &verr) && verr.Path == "" {
		verr.Path = at
	}
	return err
}
