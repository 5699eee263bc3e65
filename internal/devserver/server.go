package devserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	"github.com/lsy641/notes2html/internal/fileutil"
)

// Sentinel errors.
var (
	ErrListen     = errors.New("cannot listen")
	ErrRootNotDir = errors.New("serve root is not a directory")
)

const (
	eventsPath = "/events"

	// Responses smaller than this are sent uncompressed.
	gzipMinSize = 1024

	shutdownTimeout = 5 * time.Second
)

// Builder turns a changed markdown file into its HTML page and returns the
// written path.
type Builder interface {
	Build(ctx context.Context, path string) (string, error)
}

// BuildFunc adapts a function to Builder.
type BuildFunc func(ctx context.Context, path string) (string, error)

// Build calls f.
func (f BuildFunc) Build(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}

// Options configures a Server.
type Options struct {
	Root string
	Addr string // host:port; port 0 picks a free port

	// Builder rebuilds markdown on change. Nil disables rebuilding.
	Builder Builder

	// OpenBrowser is called with the page URL once listening. Nil leaves
	// the browser alone.
	OpenBrowser func(url string)

	Logger *zap.Logger
	Stdout io.Writer
}

// Server is a static file server with live reload.
type Server struct {
	opts    Options
	hub     *Hub
	handler http.Handler
	logger  *zap.Logger
	stdout  io.Writer
}

// New builds a Server for opts.Root.
func New(opts Options) (*Server, error) {
	if !fileutil.DirExists(opts.Root) {
		return nil, fmt.Errorf("%w: %s", ErrRootNotDir, opts.Root)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}

	s := &Server{
		opts:   opts,
		hub:    NewHub(logger),
		logger: logger,
		stdout: stdout,
	}
	handler, err := s.routes()
	if err != nil {
		return nil, err
	}
	s.handler = handler
	return s, nil
}

// Handler returns the full handler chain. The hub must be running for
// /events to stream.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Hub returns the server's reload hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) routes() (http.Handler, error) {
	gzip, err := gzhttp.NewWrapper(
		gzhttp.MinSize(gzipMinSize),
		gzhttp.CompressionLevel(6),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gzip wrapper: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(eventsPath, s.handleEvents)
	mux.Handle("/", gzip(injectLiveReload(http.FileServer(http.Dir(s.opts.Root)))))

	return s.logRequests(withDevHeaders(mux)), nil
}

// withDevHeaders allows any origin, disables caching and answers CORS
// preflight requests.
func withDevHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Set("Cache-Control", "no-cache, no-store, must-revalidate")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleEvents streams hub messages as Server-Sent Events until the client
// goes away or the hub stops.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	events, cancel := s.hub.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", msg); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	go s.hub.Run(ctx)

	watcher, err := NewWatcher(s.opts.Root, s.hub, s.opts.Builder, s.logger)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()
	if err := watcher.Start(ctx); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("%w on %s: %v", ErrListen, s.opts.Addr, err)
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		// Request contexts end with ctx so open event streams let go on shutdown.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	url := "http://" + displayAddr(ln.Addr())
	fmt.Fprintf(s.stdout, "Serving %s at %s\n", s.opts.Root, url)
	fmt.Fprintln(s.stdout, "Press Ctrl+C to stop")
	if s.opts.OpenBrowser != nil {
		s.opts.OpenBrowser(url)
	}

	select {
	case <-ctx.Done():
		fmt.Fprintln(s.stdout, "\nShutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// displayAddr prefers localhost for wildcard listeners.
func displayAddr(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}

// logRequests records each request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps event streams working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
