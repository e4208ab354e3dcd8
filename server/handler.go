package server

import (
	errs "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// stackTracer is an error containing stack trace
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// StatusError represents an error with an associated HTTP status code.
type StatusError struct {
	Code int
	Err  error
}

// NewStatusError creates new StatusError
func NewStatusError(code int, err string) StatusError {
	return StatusError{code, errs.New(err)}
}

// ToStatusError creates new StatusError
func ToStatusError(code int, err error) StatusError {
	return StatusError{code, err}
}

// Error allows StatusError to satisfy the error interface.
func (se StatusError) Error() string {
	return se.Err.Error()
}

// Status returns our HTTP status code.
func (se StatusError) Status() int {
	return se.Code
}

// StackTrace returns stacktrace of child error or nil
func (se StatusError) StackTrace() errors.StackTrace {
	if se, ok := se.Err.(stackTracer); ok {
		return se.StackTrace()
	}
	return nil
}

// Handler wraps a route function that reports failures through its error
// return instead of writing them itself.
type Handler struct {
	H func(w http.ResponseWriter, r *http.Request) error
}

// ServeHTTP renders a returned StatusError with its code; any other error
// becomes a plain 500.
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := h.H(w, r)
	if err == nil {
		return
	}

	if st, ok := err.(stackTracer); ok {
		frames := make([]string, len(st.StackTrace()))
		for i, f := range st.StackTrace() {
			frames[i] = fmt.Sprintf("%+s", f)
		}
		log.Debug(strings.Join(frames, "\n"))
	}

	var se StatusError
	if errors.As(errors.Cause(err), &se) {
		log.Printf("HTTP %d - %s\n", se.Status(), se)
		if err := WriteJSON(se.Status(), map[string]string{"error": se.Error()}, w); err != nil {
			log.Error(err)
		}

		return
	}

	http.Error(w, http.StatusText(http.StatusInternalServerError),
		http.StatusInternalServerError)
}
