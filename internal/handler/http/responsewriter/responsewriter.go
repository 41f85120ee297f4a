// Package responsewriter captures the status code and body size of a
// response so access logging and metrics can report them.
package responsewriter

import "net/http"

// ResponseWriter wraps http.ResponseWriter and remembers what was sent.
type ResponseWriter struct {
	http.ResponseWriter

	status      int
	bytes       int
	wroteHeader bool
}

// Wrap returns a recording wrapper around w. The status defaults to 200
// until WriteHeader is called.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader forwards the first status code and ignores later calls.
func (w *ResponseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// StatusCode reports the status sent to the client.
func (w *ResponseWriter) StatusCode() int { return w.status }

// BytesWritten reports the body size written so far.
func (w *ResponseWriter) BytesWritten() int { return w.bytes }

// Unwrap exposes the wrapped writer for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
