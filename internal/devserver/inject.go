package devserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/lsy641/notes2html/internal/pipeline"
)

// liveReloadScript is appended to every HTML page the server sends.
const liveReloadScript = `<script>
(function() {
  if (typeof EventSource === 'undefined') {
    return;
  }
  var source = new EventSource('/events');
  source.onmessage = function(event) {
    if (event.data === 'reload') {
      source.close();
      location.reload();
    }
  };
})();
</script>`

// injectLiveReload buffers HTML responses from next and adds the reload
// script. Other responses stream through untouched.
func injectLiveReload(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lrw := &liveReloadResponseWriter{ResponseWriter: w, head: r.Method == http.MethodHead}
		next.ServeHTTP(lrw, r)
		lrw.flush()
	})
}

type liveReloadResponseWriter struct {
	http.ResponseWriter
	buffer      []byte
	statusCode  int
	wroteHeader bool
	isHTML      bool
	checked     bool
	head        bool
}

func (w *liveReloadResponseWriter) WriteHeader(code int) {
	if w.statusCode == 0 {
		w.statusCode = code
	}
}

func (w *liveReloadResponseWriter) Write(b []byte) (int, error) {
	w.check()
	if w.isHTML {
		w.buffer = append(w.buffer, b...)
		return len(b), nil
	}
	w.writeHeader()
	return w.ResponseWriter.Write(b)
}

func (w *liveReloadResponseWriter) check() {
	if !w.checked {
		w.checked = true
		w.isHTML = strings.Contains(w.Header().Get("Content-Type"), "text/html")
	}
}

func (w *liveReloadResponseWriter) writeHeader() {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	if w.statusCode != 0 {
		w.ResponseWriter.WriteHeader(w.statusCode)
	}
}

// flush writes the buffered page with the script in place. A HEAD response
// gets the length the matching GET will send. Other responses, such as 304
// or a partial range, are forwarded unchanged.
func (w *liveReloadResponseWriter) flush() {
	w.check()
	if !w.isHTML || (w.statusCode != 0 && w.statusCode != http.StatusOK) {
		w.writeHeader()
		if len(w.buffer) > 0 {
			_, _ = w.ResponseWriter.Write(w.buffer)
		}
		return
	}

	if w.head {
		if n, err := strconv.Atoi(w.Header().Get("Content-Length")); err == nil {
			w.Header().Set("Content-Length", strconv.Itoa(n+len(liveReloadScript)))
		}
		w.writeHeader()
		return
	}

	content := pipeline.InjectBeforeBodyEnd(string(w.buffer), liveReloadScript)
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.writeHeader()
	_, _ = w.ResponseWriter.Write([]byte(content))
}
