package openapi

import (
	"strconv"

	"github.com/mitchellh/copystructure"

	"github.com/blimu-dev/openapi-iots-gen/pkg/generrors"
)

// Dereference returns a copy of doc in which every {"$ref": "#/..."} node is
// replaced by the fully dereferenced content it points to. Discriminator
// mappings (tag -> pointer) are rewritten in place with the resolved bodies.
// The input is never modified and the output shares no containers with it.
//
// A reference that is reached again while it is still being resolved fails
// with a circular ReferenceError.
func Dereference(doc any) (any, error) {
	work, err := copystructure.Copy(doc)
	if err != nil {
		return nil, err
	}
	d := &dereferencer{root: doc, resolving: map[string]bool{}}
	return d.deref(work, "#")
}

type dereferencer struct {
	root      any
	resolving map[string]bool
}

// deref rewrites node in place and returns its replacement.
func (d *dereferencer) deref(node any, at string) (any, error) {
	switch v := node.(type) {
	case map[string]any:
		if ref, ok := refPointer(v); ok {
			return d.resolve(ref)
		}
		if mapping, ok := discriminatorMapping(v); ok {
			return v, d.derefMapping(mapping)
		}
		for _, k := range SortedKeys(v) {
			child, err := d.deref(v[k], Join(at, k))
			if err != nil {
				return nil, err
			}
			v[k] = child
		}
		return v, nil
	case []any:
		for i, item := range v {
			child, err := d.deref(item, Join(at, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			v[i] = child
		}
		return v, nil
	default:
		return v, nil
	}
}

// resolve returns a dereferenced copy of the pointer's target.
func (d *dereferencer) resolve(ref string) (any, error) {
	if d.resolving[ref] {
		return nil, &generrors.ReferenceError{Ref: ref, IsCircular: true}
	}
	target, err := Lookup(d.root, ref)
	if err != nil {
		return nil, err
	}
	body, err := copystructure.Copy(target)
	if err != nil {
		return nil, err
	}

	d.resolving[ref] = true
	defer delete(d.resolving, ref)
	return d.deref(body, ref)
}

func (d *dereferencer) derefMapping(mapping map[string]any) error {
	for _, tag := range SortedKeys(mapping) {
		body, err := d.resolve(mapping[tag].(string))
		if err != nil {
			return err
		}
		mapping[tag] = body
	}
	return nil
}

// refPointer reports whether node is a reference. Sibling fields of $ref
// carry no meaning and are dropped with the node.
func refPointer(node map[string]any) (string, bool) {
	ref, ok := node["$ref"].(string)
	return ref, ok
}

// discriminatorMapping returns the mapping of a discriminator node whose
// entries are still unresolved pointers.
func discriminatorMapping(node map[string]any) (map[string]any, bool) {
	if _, ok := node["propertyName"].(string); !ok {
		return nil, false
	}
	mapping, ok := node["mapping"].(map[string]any)
	if !ok || len(mapping) == 0 {
		return nil, false
	}
	for _, v := range mapping {
		if _, ok := v.(string); !ok {
			return nil, false
		}
	}
	return mapping, true
}
