package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/net/html"

	"github.com/dpotapov/go-htmlparser"
)

// defaultMaxBodySize limits the markup accepted in a single request or message.
const defaultMaxBodySize = 1 << 20

// wsUpgrader is a Gorilla WebSocket instance, used to respond HTTP requests with WebSocket.
var wsUpgrader = websocket.Upgrader{}

// Handler serves the parser over HTTP.
//
// A POST request carries markup in its body and is answered with the parsed tree. A
// WebSocket connection parses every text message it receives and answers each with the
// tree, until the client closes the connection.
//
// The query parameters ignore_whitespace, lowercase_tags and lowercase_attrs override
// Options. The format parameter selects the response: "json" (default) for the node
// tree, "html" for the tree written back as markup, "dom" for the output of html.Render
// on the golang.org/x/net/html conversion.
type Handler struct {
	// Options are the parse options used when a request does not override them. If nil,
	// htmlparser.DefaultOptions is used.
	Options *htmlparser.Options

	// MaxBodySize is the maximum size of the markup in bytes. Defaults to 1 MiB.
	MaxBodySize int64

	// OnError is a callback that is called when an error occurs while serving a request.
	OnError func(*http.Request, error)

	// Logger configures logging for internal events.
	Logger *slog.Logger

	// init is used to initialize the handler only once.
	init sync.Once

	// logger is a private logger instance that is used to log internal events.
	logger *slog.Logger
}

// statusError is an error that is reported to the client with a specific status code.
type statusError struct {
	code int
	err  error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

func errorf(code int, format string, args ...any) error {
	return &statusError{code: code, err: fmt.Errorf(format, args...)}
}

// ServeHTTP implements the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.init.Do(func() {
		h.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		if h.Logger != nil {
			h.logger = h.Logger
		}
	})

	err := h.handleRequest(w, r)
	if err == nil {
		return
	}

	var se *statusError
	if errors.As(err, &se) {
		http.Error(w, se.Error(), se.code)
		h.logger.Info("Reject HTTP request", "url", r.URL.Redacted(), "status", se.code, "error", err)
		return
	}

	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

	h.logger.Error("Serve HTTP request", "url", r.URL.Redacted(), "error", err)

	if h.OnError != nil {
		h.OnError(r, err)
	}
}

func (h *Handler) handleRequest(w http.ResponseWriter, r *http.Request) error {
	opts, err := h.parseOptions(r)
	if err != nil {
		return err
	}
	enc, err := newEncoder(r.URL.Query().Get("format"))
	if err != nil {
		return err
	}

	if websocket.IsWebSocketUpgrade(r) {
		return h.serveWebSocket(w, r, opts, enc)
	}

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		return errorf(http.StatusMethodNotAllowed, "method %s not allowed", r.Method)
	}

	body := http.MaxBytesReader(w, r.Body, h.maxBodySize())
	nodes, err := htmlparser.ParseReader(r.Context(), body, opts)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return errorf(http.StatusRequestEntityTooLarge, "markup exceeds %d bytes", mbe.Limit)
		}
		return err
	}

	w.Header().Set("Content-Type", enc.contentType)
	return enc.encode(w, nodes)
}

func (h *Handler) serveWebSocket(w http.ResponseWriter, r *http.Request, opts htmlparser.Options, enc *encoder) error {
	ws, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		h.logger.Info("Upgrade websocket", "error", err)
		return nil
	}
	defer ws.Close()

	ws.SetReadLimit(h.maxBodySize())

	for {
		if err := r.Context().Err(); err != nil {
			return nil
		}
		mt, msg, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("read websocket message: %w", err)
		}
		if mt != websocket.TextMessage {
			continue
		}

		nodes := htmlparser.ParseWithOptions(string(msg), opts)

		mw, err := ws.NextWriter(websocket.TextMessage)
		if err != nil {
			return fmt.Errorf("get websocket writer: %w", err)
		}
		if err := enc.encode(mw, nodes); err != nil {
			return fmt.Errorf("encode tree: %w", err)
		}
		if err := mw.Close(); err != nil {
			return fmt.Errorf("close websocket writer: %w", err)
		}
	}
}

func (h *Handler) maxBodySize() int64 {
	if h.MaxBodySize > 0 {
		return h.MaxBodySize
	}
	return defaultMaxBodySize
}

func (h *Handler) parseOptions(r *http.Request) (htmlparser.Options, error) {
	opts := htmlparser.DefaultOptions()
	if h.Options != nil {
		opts = *h.Options
	}
	q := r.URL.Query()
	for _, p := range []struct {
		key string
		dst *bool
	}{
		{"ignore_whitespace", &opts.IgnoreWhitespace},
		{"lowercase_tags", &opts.LowercaseTags},
		{"lowercase_attrs", &opts.LowercaseAttrs},
	} {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errorf(http.StatusBadRequest, "invalid %s: %q", p.key, v)
		}
		*p.dst = b
	}
	return opts, nil
}

type encoder struct {
	contentType string
	encode      func(io.Writer, []htmlparser.Node) error
}

func newEncoder(format string) (*encoder, error) {
	switch format {
	case "", "json":
		return &encoder{contentType: "application/json", encode: encodeJSON}, nil
	case "html":
		return &encoder{contentType: "text/html; charset=utf-8", encode: htmlparser.Render}, nil
	case "dom":
		return &encoder{contentType: "text/html; charset=utf-8", encode: encodeDOM}, nil
	default:
		return nil, errorf(http.StatusBadRequest, "unknown format %q", format)
	}
}

func encodeJSON(w io.Writer, nodes []htmlparser.Node) error {
	b, err := htmlparser.MarshalNodes(nodes)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func encodeDOM(w io.Writer, nodes []htmlparser.Node) error {
	return html.Render(w, htmlparser.ToHTMLNode(nodes))
}

// ListenAndServe serves h on addr until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	}
}
