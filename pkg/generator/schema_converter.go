package generator

import (
	"slices"
	"strconv"
	"strings"

	"github.com/blimu-dev/openapi-iots-gen/pkg/generrors"
	"github.com/blimu-dev/openapi-iots-gen/pkg/ir"
	"github.com/blimu-dev/openapi-iots-gen/pkg/openapi"
	"github.com/blimu-dev/openapi-iots-gen/pkg/orderedmap"
)

// Resolver infers the Type IR of schema nodes from a normalized document.
// The root is kept for the pointers that survive normalization, such as
// discriminator mappings written as strings or references produced by
// fan-out.
type Resolver struct {
	root      map[string]any
	resolving []string
}

// NewResolver returns a resolver over a normalized document.
func NewResolver(root map[string]any) *Resolver {
	return &Resolver{root: root}
}

// matchFunc tries to read node under one expected shape. ok is false when
// the node does not have that shape; err is set when it does but is invalid.
type matchFunc func(node map[string]any, at string) (t ir.Type, ok bool, err error)

// matchers returns the shape matchers in priority order.
func (r *Resolver) matchers() []matchFunc {
	return []matchFunc{
		r.matchDiscriminator,
		r.matchOneOf,
		r.matchTyped,
		r.matchContent,
		r.matchSchema,
		r.matchRef,
		matchEmpty,
		matchDescription,
	}
}

// Resolve returns the type of the schema node found at the pointer at. The
// returned type is always required; callers adjust the flag for the slot
// they store it in.
func (r *Resolver) Resolve(node any, at string) (ir.Type, error) {
	obj, ok := node.(map[string]any)
	if !ok {
		return nil, generrors.Validationf(at, node, "schema must be an object")
	}
	for _, match := range r.matchers() {
		t, ok, err := match(obj, at)
		if err != nil {
			return nil, err
		}
		if ok {
			return t, nil
		}
	}
	return nil, generrors.Validationf(at, node, "schema matches no known shape")
}

// Keys that may accompany any shape without changing the inferred type.
var annotationKeys = []string{
	"default", "deprecated", "description", "enum", "example", "examples",
	"exclusiveMaximum", "exclusiveMinimum", "externalDocs", "format",
	"maxItems", "maxLength", "maxProperties", "maximum", "minItems",
	"minLength", "minProperties", "minimum", "multipleOf", "nullable",
	"pattern", "readOnly", "title", "uniqueItems", "writeOnly", "xml",
}

// Keys of the parameter, request body, response and media type objects
// that wrap a schema.
var wrapperKeys = []string{
	"allowEmptyValue", "allowReserved", "encoding", "explode", "headers",
	"in", "links", "name", "required", "style",
}

// onlyKeys reports whether every key of node is one of own, an annotation
// or an extension (x-...).
func onlyKeys(node map[string]any, own ...[]string) bool {
	for k := range node {
		if strings.HasPrefix(k, "x-") || slices.Contains(annotationKeys, k) {
			continue
		}
		known := false
		for _, set := range own {
			if slices.Contains(set, k) {
				known = true
				break
			}
		}
		if !known {
			return false
		}
	}
	return true
}

func (r *Resolver) matchDiscriminator(node map[string]any, at string) (ir.Type, bool, error) {
	disc, ok := node["discriminator"].(map[string]any)
	if !ok {
		return nil, false, nil
	}
	propertyName, ok := disc["propertyName"].(string)
	if !ok {
		return nil, false, nil
	}
	mapping, ok := disc["mapping"].(map[string]any)
	if !ok {
		return nil, false, nil
	}
	if !onlyKeys(node, []string{"discriminator", "oneOf", "anyOf", "type"}) {
		return nil, false, nil
	}
	if len(mapping) == 0 {
		return nil, false, generrors.Validationf(openapi.Join(at, "discriminator"), disc, "discriminator mapping is empty")
	}

	list := make([]ir.Type, 0, len(mapping))
	for _, tag := range openapi.SortedKeys(mapping) {
		entryAt := openapi.Join(openapi.Join(openapi.Join(at, "discriminator"), "mapping"), tag)

		var (
			variant ir.Type
			err     error
		)
		switch target := mapping[tag].(type) {
		case string:
			variant, err = r.resolveRef(target)
		default:
			variant, err = r.Resolve(target, entryAt)
		}
		if err != nil {
			return nil, false, err
		}

		tagged, err := ir.WithLiteralField(variant, propertyName, tag)
		if err != nil {
			return nil, false, generrors.Validationf(entryAt, mapping[tag], "discriminator variant %q is %s, not an object", tag, variant.Kind())
		}
		list = append(list, tagged)
	}
	return ir.Union{List: list, Required: true}, true, nil
}

func (r *Resolver) matchOneOf(node map[string]any, at string) (ir.Type, bool, error) {
	raw, ok := node["oneOf"]
	if !ok || !onlyKeys(node, []string{"oneOf", "discriminator", "type"}) {
		return nil, false, nil
	}
	members, ok := raw.([]any)
	if !ok {
		return nil, false, generrors.Validationf(at, node, "oneOf must be a list")
	}
	if len(members) == 0 {
		return nil, false, generrors.Validationf(at, node, "oneOf has no members")
	}

	list := make([]ir.Type, 0, len(members))
	for i, member := range members {
		t, err := r.Resolve(member, openapi.Join(openapi.Join(at, "oneOf"), strconv.Itoa(i)))
		if err != nil {
			return nil, false, err
		}
		list = append(list, t)
	}
	if len(list) == 1 {
		return list[0], true, nil
	}
	return ir.Union{List: list, Required: true}, true, nil
}

func (r *Resolver) matchTyped(node map[string]any, at string) (ir.Type, bool, error) {
	token, ok := node["type"].(string)
	if !ok {
		return nil, false, nil
	}

	switch strings.ToLower(token) {
	case "string":
		return ir.String{Required: true}, onlyKeys(node, []string{"type"}, wrapperKeys), nil
	case "integer", "number":
		return ir.Number{Required: true}, onlyKeys(node, []string{"type"}, wrapperKeys), nil
	case "boolean":
		return ir.Boolean{Required: true}, onlyKeys(node, []string{"type"}, wrapperKeys), nil
	case "array":
		return r.matchArray(node, at)
	case "object":
		if t, ok, err := r.matchMapShape(node, at); ok || err != nil {
			return t, ok, err
		}
		if t, ok, err := r.matchRecordShape(node, at); ok || err != nil {
			return t, ok, err
		}
		return nil, false, generrors.Validationf(at, node, "object schema matches neither map nor record shape")
	}
	return nil, false, generrors.Validationf(at, node, "unknown type %q", token)
}

func (r *Resolver) matchArray(node map[string]any, at string) (ir.Type, bool, error) {
	if !onlyKeys(node, []string{"type", "items"}, wrapperKeys) {
		return nil, false, nil
	}
	items, ok := node["items"]
	if !ok {
		return nil, false, generrors.Validationf(at, node, "array schema without items")
	}
	t, err := r.Resolve(items, openapi.Join(at, "items"))
	if err != nil {
		return nil, false, err
	}
	return ir.Array{Items: t, Required: true}, true, nil
}

// matchMapShape reads {type: object, additionalProperties: X} without fixed
// properties as a string-keyed map of X.
func (r *Resolver) matchMapShape(node map[string]any, at string) (ir.Type, bool, error) {
	additional, ok := node["additionalProperties"]
	if !ok || additional == false {
		return nil, false, nil
	}
	if props, ok := node["properties"].(map[string]any); ok && len(props) > 0 {
		return nil, false, nil
	}
	if !onlyKeys(node, []string{"type", "additionalProperties", "properties"}) {
		return nil, false, nil
	}

	if additional == true {
		return ir.Record{Value: ir.Unknown{Required: true}, Required: true}, true, nil
	}
	value, err := r.Resolve(additional, openapi.Join(at, "additionalProperties"))
	if err != nil {
		return nil, false, err
	}
	return ir.Record{Value: value, Required: true}, true, nil
}

// matchRecordShape reads {type: object, properties, required} as a fixed
// shape object. A property is required exactly when it is named in the
// required list.
func (r *Resolver) matchRecordShape(node map[string]any, at string) (ir.Type, bool, error) {
	if !onlyKeys(node, []string{"type", "properties", "required", "additionalProperties"}) {
		return nil, false, nil
	}

	required, err := requiredSet(node, at)
	if err != nil {
		return nil, false, err
	}

	obj := ir.NewObject()
	if raw, ok := node["properties"]; ok {
		props, ok := raw.(map[string]any)
		if !ok {
			return nil, false, generrors.Validationf(openapi.Join(at, "properties"), raw, "properties must be an object")
		}
		resolved, err := r.ResolveProps(props, openapi.Join(at, "properties"))
		if err != nil {
			return nil, false, err
		}
		for name, t := range resolved.All() {
			obj.Props.Set(name, t.WithRequired(required[name]))
		}
	}
	return obj, true, nil
}

func requiredSet(node map[string]any, at string) (map[string]bool, error) {
	out := map[string]bool{}
	raw, ok := node["required"]
	if !ok {
		return out, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, generrors.Validationf(openapi.Join(at, "required"), raw, "required must be a list of property names")
	}
	for _, item := range list {
		name, ok := item.(string)
		if !ok {
			return nil, generrors.Validationf(openapi.Join(at, "required"), raw, "required must be a list of property names")
		}
		if out[name] {
			return nil, generrors.Validationf(openapi.Join(at, "required"), raw, "duplicate values in required: %q", name)
		}
		out[name] = true
	}
	return out, nil
}

func (r *Resolver) matchContent(node map[string]any, at string) (ir.Type, bool, error) {
	raw, ok := node["content"]
	if !ok || !onlyKeys(node, []string{"content"}, wrapperKeys) {
		return nil, false, nil
	}
	content, ok := raw.(map[string]any)
	if !ok {
		return nil, false, generrors.Validationf(at, node, "content must be an object")
	}

	mediaTypes := openapi.SortedKeys(content)
	switch len(mediaTypes) {
	case 0:
		return nil, false, generrors.Validationf(openapi.Join(at, "content"), raw, "schema is missing")
	case 1:
	default:
		return nil, false, generrors.Validationf(openapi.Join(at, "content"), nil,
			"one media type was expected, received %s", strings.Join(mediaTypes, ", "))
	}

	t, err := r.Resolve(content[mediaTypes[0]], openapi.Join(openapi.Join(at, "content"), mediaTypes[0]))
	if err != nil {
		return nil, false, err
	}
	return t, true, nil
}

func (r *Resolver) matchSchema(node map[string]any, at string) (ir.Type, bool, error) {
	schema, ok := node["schema"]
	if !ok || !onlyKeys(node, []string{"schema"}, wrapperKeys) {
		return nil, false, nil
	}
	t, err := r.Resolve(schema, openapi.Join(at, "schema"))
	if err != nil {
		return nil, false, err
	}
	return t, true, nil
}

func (r *Resolver) matchRef(node map[string]any, _ string) (ir.Type, bool, error) {
	ref, ok := node["$ref"].(string)
	if !ok || len(node) != 1 {
		return nil, false, nil
	}
	t, err := r.resolveRef(ref)
	if err != nil {
		return nil, false, err
	}
	return t, true, nil
}

// resolveRef looks a pointer up in the root and resolves its target. A
// pointer that is already being resolved further up is circular.
func (r *Resolver) resolveRef(ref string) (ir.Type, error) {
	if slices.Contains(r.resolving, ref) {
		return nil, &generrors.ReferenceError{Ref: ref, IsCircular: true}
	}
	target, err := openapi.Lookup(r.root, ref)
	if err != nil {
		return nil, err
	}

	r.resolving = append(r.resolving, ref)
	defer func() { r.resolving = r.resolving[:len(r.resolving)-1] }()
	return r.Resolve(target, ref)
}

// matchEmpty accepts a node carrying nothing but annotations.
func matchEmpty(node map[string]any, _ string) (ir.Type, bool, error) {
	if _, ok := node["description"]; ok || !onlyKeys(node) {
		return nil, false, nil
	}
	return ir.Unknown{Required: true}, true, nil
}

// matchDescription accepts a bare description, such as a response without
// content.
func matchDescription(node map[string]any, _ string) (ir.Type, bool, error) {
	if _, ok := node["description"]; !ok {
		return nil, false, nil
	}
	for k := range node {
		if k != "description" && k != "headers" && k != "links" && !strings.HasPrefix(k, "x-") {
			return nil, false, nil
		}
	}
	return ir.Unknown{Required: true}, true, nil
}

// ResolveProps resolves every entry of a schema map, in key order.
func (r *Resolver) ResolveProps(schemas map[string]any, at string) (*orderedmap.Map[string, ir.Type], error) {
	out := orderedmap.New[string, ir.Type]()
	for _, name := range openapi.SortedKeys(schemas) {
		t, err := r.Resolve(schemas[name], openapi.Join(at, name))
		if err != nil {
			return nil, err
		}
		out.Set(name, t)
	}
	return out, nil
}
