package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	apperrors "github.com/louisbranch/cafe/internal/platform/errors"
	"github.com/louisbranch/cafe/internal/services/tab/engine"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write json response: %v", err)
	}
}

// writeError renders err as {code, message}. Internal failures are logged
// and their detail withheld from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	mapped := engine.DomainError(err)
	var structured *apperrors.Error
	if !errors.As(mapped, &structured) {
		// Context errors pass through DomainError unchanged.
		structured = apperrors.Wrap(apperrors.CodeInternal, "request canceled", mapped)
	}
	status := structured.Code.HTTPStatus()
	message := structured.Message
	if status >= http.StatusInternalServerError {
		log.Printf("tab api %s %s request_id=%s: %v", r.Method, r.URL.Path, middleware.GetReqID(r.Context()), err)
		message = "internal error"
	}
	writeJSON(w, status, errorResponse{Code: string(structured.Code), Message: message})
}

func invalidArgument(format string, args ...any) error {
	return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf(format, args...))
}

func tabIDParam(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "tabID"))
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apperrors.WithMetadata(apperrors.CodeInvalidArgument, "invalid tab id", map[string]string{"tab_id": raw})
	}
	return id, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return invalidArgument("request body is required")
		}
		return invalidArgument("invalid request body: %v", err)
	}
	if decoder.More() {
		return invalidArgument("request body must contain a single JSON object")
	}
	return nil
}
