package web

import (
	"encoding/json"
	"net/http"

	"github.com/yuzeguitarist/qrgen/internal/qr"
)

type errorBody struct {
	Error   string          `json:"error"`
	Details []qr.FieldError `json:"details,omitempty"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, errorBody{Error: message})
}

func respondWithValidation(w http.ResponseWriter, ve *qr.ValidationError) {
	respondWithJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "validation failed", Details: ve.Fields})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	b, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("content-type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to marshal response"}`))
		return
	}
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(b)
}
