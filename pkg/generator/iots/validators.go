package iots

import (
	"strings"

	"github.com/blimu-dev/openapi-iots-gen/pkg/ir"
)

// Validator renders t as an io-ts codec expression at the given nesting
// depth. Every case mirrors the one in StaticType.
func Validator(t ir.Type, depth int) string {
	var out string
	switch v := t.(type) {
	case ir.LiteralString:
		out = "t.literal(" + quote(v.Value) + ")"
	case ir.String:
		out = "t.string"
	case ir.Number:
		out = "t.number"
	case ir.Boolean:
		out = "t.boolean"
	case ir.Unknown:
		out = "t.unknown"
	case ir.Array:
		out = "t.array(" + Validator(v.Items, depth) + ")"
	case ir.Record:
		out = "t.record(t.string, " + Validator(v.Value, depth) + ")"
	case ir.Object:
		if v.Props.Len() == 0 {
			out = "t.interface({})"
			break
		}
		var b strings.Builder
		b.WriteString("t.interface({\n")
		for name, prop := range v.Props.All() {
			b.WriteString(pad(depth + 1))
			b.WriteString(propKey(name))
			b.WriteString(": ")
			b.WriteString(Validator(prop, depth+1))
			b.WriteString(",\n")
		}
		b.WriteString(pad(depth) + "})")
		out = b.String()
	case ir.Union:
		if len(v.List) == 1 {
			out = Validator(v.List[0], depth)
			break
		}
		members := make([]string, 0, len(v.List))
		for _, m := range v.List {
			members = append(members, Validator(m, depth))
		}
		out = "t.union([" + strings.Join(members, ", ") + "])"
	}

	if !t.IsRequired() {
		return "t.union([t.null, t.undefined, " + out + "])"
	}
	return out
}
