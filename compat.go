package htmlparser

// Handler receives the result of a Parser run. It follows the callback convention of
// streaming HTML parsers that predate Parse.
type Handler interface {
	OnComplete(dom []Node)
	OnError(err error)
}

// DefaultHandler stores the parsed tree and reports it to a callback.
type DefaultHandler struct {
	// Dom is the last tree passed to OnComplete.
	Dom []Node

	callback func(err error, dom []Node)
}

var _ Handler = (*DefaultHandler)(nil)

// NewDefaultHandler returns a handler that invokes cb with (nil, dom) on success and with
// (err, nil) on failure. cb may be nil.
func NewDefaultHandler(cb func(err error, dom []Node)) *DefaultHandler {
	return &DefaultHandler{callback: cb}
}

func (h *DefaultHandler) OnComplete(dom []Node) {
	h.Dom = dom
	if h.callback != nil {
		h.callback(nil, dom)
	}
}

func (h *DefaultHandler) OnError(err error) {
	if h.callback != nil {
		h.callback(err, nil)
	}
}

// Parser runs the parser on behalf of a Handler.
type Parser struct {
	handler Handler
	opts    Options
}

// NewParser returns a Parser reporting to h. DefaultOptions are used unless opts is given.
func NewParser(h Handler, opts ...Options) *Parser {
	o := DefaultOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	return &Parser{handler: h, opts: o}
}

// ParseComplete parses markup synchronously and passes the tree to the handler. A panic
// inside the parser is delivered to OnError as a *ParseError.
func (p *Parser) ParseComplete(markup string) {
	dom, err := newParser(markup, p.opts).run()
	if err != nil {
		p.handler.OnError(err)
		return
	}
	p.handler.OnComplete(dom)
}
