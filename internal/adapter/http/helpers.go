package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/Strob0t/animalfarm/internal/domain"
	"github.com/Strob0t/animalfarm/internal/logger"
)

const maxBodySize = 1 << 20

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

// readJSON decodes a JSON request body with a size limit. An empty body
// decodes to the zero value.
func readJSON[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		} else {
			writeError(w, http.StatusBadRequest, "invalid request body")
		}
		return v, false
	}
	return v, true
}

// readFields decodes a JSON object body into loosely typed fields so that
// handlers can report a wrongly typed field by name.
func readFields(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	fields, ok := readJSON[map[string]any](w, r)
	if ok && fields == nil {
		fields = map[string]any{}
	}
	return fields, ok
}

// animalName returns the decoded {name} path segment. chi matches on the
// escaped path whenever the URL keeps one, so "Rex%2FJr" is unescaped here.
func animalName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, true
	}
	name, err := url.PathUnescape(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid animal name in path")
		return "", false
	}
	return name, true
}

// ---------------------------------------------------------------------------
// Response helpers
// ---------------------------------------------------------------------------

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// statusFor maps a domain error kind to an HTTP status. Zero means the error
// is not a domain error.
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindNameRequired, domain.KindDuplicateName, domain.KindValidation,
		domain.KindNoDutyAssigned, domain.KindNoActionAssigned, domain.KindIncapacitated,
		domain.KindInvalidAction, domain.KindCapabilityMissing:
		return http.StatusBadRequest
	}
	return 0
}

// writeDomainError writes a domain failure with its own message. Anything
// else is logged and answered with a generic 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	if status := statusFor(domain.KindOf(err)); status != 0 {
		writeError(w, status, err.Error())
		return
	}
	writeInternalError(w, r, err)
}

// writeInternalError logs the actual error server-side and returns a generic message to the client.
func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.From(r.Context()).Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
