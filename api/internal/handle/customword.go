package handle

import (
	"net/http"
	"strings"

	"vakyashuddhi/api/internal/customdict"
)

// CustomWordHandler serves the admin dictionary endpoints. It is mounted
// separately from Handle because it needs no engines or user store.
type CustomWordHandler struct {
	Dict *customdict.Dict
}

func (h *CustomWordHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req struct {
		Word string `json:"word"`
	}
	if err := decodeBody(r, &req); err != nil || req.Word == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}
	if err := h.Dict.Add(r.Context(), req.Word); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (h *CustomWordHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	word := strings.TrimPrefix(r.URL.Path, "/api/v1/custom-word/")
	if word == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "word is required"})
		return
	}
	if err := h.Dict.Remove(r.Context(), word); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
