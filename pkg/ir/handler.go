package ir

import (
	"strings"

	"github.com/blimu-dev/openapi-iots-gen/pkg/generrors"
	"github.com/blimu-dev/openapi-iots-gen/pkg/orderedmap"
)

// Method is an HTTP method token
type Method string

const (
	MethodGet    Method = "get"
	MethodPost   Method = "post"
	MethodPut    Method = "put"
	MethodDelete Method = "delete"
	MethodPatch  Method = "patch"
)

// ParseMethod parses a method token case-insensitively.
func ParseMethod(token string) (Method, error) {
	switch m := Method(strings.ToLower(token)); m {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch:
		return m, nil
	}
	return "", generrors.Validationf("", nil, "unknown http method %q", token)
}

// Upper returns the method as it appears on the wire.
func (m Method) Upper() string {
	return strings.ToUpper(string(m))
}

// UnmarshalText lets control files decode method tokens directly.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParamIn is where a parameter travels in the request
type ParamIn string

const (
	InPath   ParamIn = "path"
	InQuery  ParamIn = "query"
	InHeader ParamIn = "header"
	InBody   ParamIn = "body"
)

// ParseParamIn parses the `in` field of a parameter declaration. Only the
// locations a document may declare are accepted; the body location is
// reserved for the request body.
func ParseParamIn(token string) (ParamIn, error) {
	switch in := ParamIn(strings.ToLower(token)); in {
	case InPath, InQuery, InHeader:
		return in, nil
	}
	return "", generrors.Validationf("", nil, "unknown parameter location %q", token)
}

// RequestBodyName is the parameter name given to the request body
const RequestBodyName = "requestBody"

// Param is one resolved handler parameter
type Param struct {
	In   ParamIn
	Name string
	Type Type
}

// Handler is the resolved parameter list and response map of one path+method
type Handler struct {
	Parameters []Param
	Responses  *orderedmap.Map[int, Type]
}

// NewHandler returns an empty handler.
func NewHandler() *Handler {
	return &Handler{Responses: orderedmap.New[int, Type]()}
}

// AddParam appends a parameter whose slot flag is set to required. A name
// that is already present is rejected and the handler is left unchanged.
func (h *Handler) AddParam(name string, in ParamIn, t Type, required bool) error {
	for _, p := range h.Parameters {
		if p.Name == name {
			return generrors.Validationf("", nil, "duplicate parameter %q", name)
		}
	}
	h.Parameters = append(h.Parameters, Param{In: in, Name: name, Type: t.WithRequired(required)})
	return nil
}

// AddResponse registers the type returned for a status code. A code that is
// already present is rejected and the handler is left unchanged.
func (h *Handler) AddResponse(code int, t Type) error {
	if err := h.Responses.Insert(code, t); err != nil {
		return generrors.Validationf("", nil, "duplicate response code %d", code)
	}
	return nil
}

// ParamsIn returns the parameters at a location, in declaration order.
func (h *Handler) ParamsIn(in ParamIn) []Param {
	var out []Param
	for _, p := range h.Parameters {
		if p.In == in {
			out = append(out, p)
		}
	}
	return out
}

// Body returns the request body parameter, if any.
func (h *Handler) Body() (Param, bool) {
	for _, p := range h.Parameters {
		if p.In == InBody {
			return p, true
		}
	}
	return Param{}, false
}

// Clone returns a copy whose parameter list and response map can be changed
// independently. Types are values and are shared.
func (h *Handler) Clone() *Handler {
	return &Handler{
		Parameters: append([]Param(nil), h.Parameters...),
		Responses:  h.Responses.Clone(),
	}
}

// Spec maps url templates to their methods' handlers
type Spec struct {
	Paths *orderedmap.Map[string, *orderedmap.Map[Method, *Handler]]
}

// NewSpec returns an empty spec.
func NewSpec() *Spec {
	return &Spec{Paths: orderedmap.New[string, *orderedmap.Map[Method, *Handler]]()}
}

// Handler looks up the handler for url and method.
func (s *Spec) Handler(url string, method Method) (*Handler, error) {
	methods, ok := s.Paths.Get(url)
	if !ok {
		return nil, generrors.Validationf("", nil, "no path in the specification %s", url)
	}
	h, ok := methods.Get(method)
	if !ok {
		return nil, generrors.Validationf("", nil, "no method in the specification %s %s", url, method.Upper())
	}
	return h, nil
}
