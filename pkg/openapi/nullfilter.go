package openapi

// FilterNull returns a copy of node without null-valued object fields.
// Arrays keep their length; null array items are left in place.
func FilterNull(node any) any {
	switch v := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, child := range v {
			if child == nil {
				continue
			}
			out[k] = FilterNull(child)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = FilterNull(item)
		}
		return out
	default:
		return v
	}
}
