package ir

import "strconv"

// Describe renders a type as plain maps and slices, for dumping with a YAML
// or JSON encoder.
func Describe(t Type) map[string]any {
	out := map[string]any{"kind": string(t.Kind()), "required": t.IsRequired()}
	switch v := t.(type) {
	case LiteralString:
		out["value"] = v.Value
	case Array:
		out["items"] = Describe(v.Items)
	case Object:
		props := map[string]any{}
		for name, prop := range v.Props.All() {
			props[name] = Describe(prop)
		}
		out["props"] = props
	case Record:
		out["value"] = Describe(v.Value)
	case Union:
		list := make([]any, 0, len(v.List))
		for _, item := range v.List {
			list = append(list, Describe(item))
		}
		out["list"] = list
	}
	return out
}

// Describe renders the handler as plain maps and slices.
func (h *Handler) Describe() map[string]any {
	params := make([]any, 0, len(h.Parameters))
	for _, p := range h.Parameters {
		params = append(params, map[string]any{
			"in":   string(p.In),
			"name": p.Name,
			"type": Describe(p.Type),
		})
	}
	responses := map[string]any{}
	for code, t := range h.Responses.All() {
		responses[strconv.Itoa(code)] = Describe(t)
	}
	return map[string]any{"parameters": params, "responses": responses}
}
