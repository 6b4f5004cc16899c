package iots

import (
	"strings"

	"github.com/blimu-dev/openapi-iots-gen/pkg/ir"
	"github.com/blimu-dev/openapi-iots-gen/pkg/utils"
)

// indentWidth is the number of spaces per nesting level.
const indentWidth = 4

func pad(depth int) string {
	return strings.Repeat(" ", depth*indentWidth)
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)

// quote renders s as a single-quoted string literal.
func quote(s string) string {
	return "'" + quoteEscaper.Replace(s) + "'"
}

// propKey renders an object key, quoting it unless it is a plain identifier.
func propKey(name string) string {
	if utils.IsIdentifier(name) {
		return name
	}
	return quote(name)
}

// StaticType renders t as a TypeScript type at the given nesting depth.
func StaticType(t ir.Type, depth int) string {
	var out string
	switch v := t.(type) {
	case ir.LiteralString:
		out = quote(v.Value)
	case ir.String:
		out = "string"
	case ir.Number:
		out = "number"
	case ir.Boolean:
		out = "boolean"
	case ir.Unknown:
		out = "unknown"
	case ir.Array:
		out = "Array<" + StaticType(v.Items, depth) + ">"
	case ir.Record:
		out = "Record<string, " + StaticType(v.Value, depth) + ">"
	case ir.Object:
		if v.Props.Len() == 0 {
			out = "{}"
			break
		}
		var b strings.Builder
		b.WriteString("{\n")
		for name, prop := range v.Props.All() {
			b.WriteString(pad(depth + 1))
			b.WriteString(propKey(name))
			if !prop.IsRequired() {
				b.WriteString("?")
			}
			b.WriteString(": ")
			b.WriteString(StaticType(prop, depth+1))
			b.WriteString(",\n")
		}
		b.WriteString(pad(depth) + "}")
		out = b.String()
	case ir.Union:
		if len(v.List) == 1 {
			out = StaticType(v.List[0], depth)
			break
		}
		members := make([]string, 0, len(v.List))
		for _, m := range v.List {
			members = append(members, StaticType(m, depth))
		}
		out = strings.Join(members, " | ")
	}

	if !t.IsRequired() {
		return "null | undefined | " + out
	}
	return out
}
