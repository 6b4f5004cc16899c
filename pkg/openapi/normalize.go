package openapi

import "fmt"

// Normalize runs the Dereferencer and then the Null Filter over a raw
// document. The result has no $ref nodes and no null-valued fields.
func Normalize(doc map[string]any) (map[string]any, error) {
	deref, err := Dereference(doc)
	if err != nil {
		return nil, err
	}
	root, ok := FilterNull(deref).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("normalized root is %T, not an object", deref)
	}
	return root, nil
}
