// internal/adapters/in/http/handler/respond.go
package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"voucherhub/internal/domain/apperr"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// writeErr serializes err as {code, message}. Only the caller-safe message
// crosses the wire; the wrapped cause stays in the log.
func writeErr(w http.ResponseWriter, op string, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal || kind == apperr.Unknown {
		log.Printf("[%s] %s error: %v", op, kind, err)
	}
	writeJSON(w, apperr.HTTPStatus(kind), map[string]string{
		"code":    string(kind),
		"message": apperr.PublicMessage(err),
	})
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
}

func writeBadBody(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"code":    string(apperr.InvalidArgument),
		"message": "invalid request body",
	})
}
