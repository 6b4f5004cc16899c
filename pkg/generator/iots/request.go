package iots

import (
	"fmt"
	"strings"

	"github.com/blimu-dev/openapi-iots-gen/pkg/ir"
	"github.com/blimu-dev/openapi-iots-gen/pkg/utils"
)

// paramsType renders the ParamsType interface holding every path, query and
// body parameter, and returns the name the request functions bind it to.
func paramsType(h *ir.Handler) (decl, name string) {
	var b strings.Builder
	b.WriteString("export interface ParamsType {\n")
	count := 0
	for _, p := range h.Parameters {
		if p.In == ir.InHeader {
			continue
		}
		count++
		b.WriteString(pad(1))
		b.WriteString(utils.ParamIdentifier(p.Name))
		if !p.Type.IsRequired() {
			b.WriteString("?")
		}
		b.WriteString(": ")
		b.WriteString(StaticType(p.Type, 1))
		b.WriteString(",\n")
	}
	b.WriteString("}")

	if count == 0 {
		return b.String(), "_params"
	}
	return b.String(), "params"
}

// URLExpression renders the url template as the body of a template literal.
// Every {name} segment becomes an access into the params record, and the
// query parameters, if any, are appended as a serialized query string.
func URLExpression(url string, h *ir.Handler) string {
	segments := strings.Split(url, "/")
	for i, s := range segments {
		if len(s) > 2 && strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
			segments[i] = "${params." + utils.ParamIdentifier(s[1:len(s)-1]) + "}"
		}
	}
	expr := strings.Join(segments, "/")

	query := h.ParamsIn(ir.InQuery)
	if len(query) == 0 {
		return expr
	}
	fields := make([]string, 0, len(query))
	for _, p := range query {
		fields = append(fields, quote(p.Name)+": params."+utils.ParamIdentifier(p.Name))
	}
	return expr + "?${qs.stringify({ " + strings.Join(fields, ", ") + " }, { skipNull: true })}"
}

// bodyExpression selects the request payload.
func bodyExpression(h *ir.Handler) string {
	if body, ok := h.Body(); ok {
		return "params." + body.Name
	}
	return "undefined"
}

// extraHeaders renders the ExtraHeadersType declaration and the parameter
// that carries it. The parameter is optional when no header is declared.
func extraHeaders(h *ir.Handler) (decl, arg string) {
	headers := h.ParamsIn(ir.InHeader)
	if len(headers) == 0 {
		return "type ExtraHeadersType = Record<string, string>;", "extraHeaders?: ExtraHeadersType"
	}

	var b strings.Builder
	b.WriteString("type ExtraHeadersType = {\n")
	for _, p := range headers {
		b.WriteString(pad(1))
		b.WriteString(propKey(p.Name))
		if !p.Type.IsRequired() {
			b.WriteString("?")
		}
		b.WriteString(": ")
		b.WriteString(StaticType(p.Type, 1))
		b.WriteString(",\n")
	}
	b.WriteString("};")
	return b.String(), "extraHeaders: ExtraHeadersType"
}

type responseData struct {
	Code      int
	Validator string
	Static    string
}

func responses(h *ir.Handler) []responseData {
	out := make([]responseData, 0, h.Responses.Len())
	for code, t := range h.Responses.All() {
		out = append(out, responseData{Code: code, Validator: Validator(t, 0), Static: StaticType(t, 0)})
	}
	return out
}

// responseUnion renders the tagged result type of the status dispatcher.
func responseUnion(h *ir.Handler) string {
	if h.Responses.Len() == 0 {
		return "never"
	}
	variants := make([]string, 0, h.Responses.Len())
	for _, code := range h.Responses.Keys() {
		variants = append(variants, fmt.Sprintf("{ status: %d, body: Response%dType }", code, code))
	}
	return strings.Join(variants, " | ")
}

// emptyBodyCodes lists the status codes whose response is an unknown value,
// for which an empty body decodes as undefined instead of failing to parse.
func emptyBodyCodes(h *ir.Handler) []int {
	var codes []int
	for code, t := range h.Responses.All() {
		if t.Kind() == ir.KindUnknown {
			codes = append(codes, code)
		}
	}
	return codes
}
