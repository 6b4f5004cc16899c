package ir

// Operation is one unit of generated output: the handler selected by a
// control file entry, together with the url template and method it was
// selected by.
type Operation struct {
	// Name is the generated file stem, e.g. openapi_wallet_getBalance
	Name    string
	URL     string
	Method  Method
	Handler *Handler
}
