package handle

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"vakyashuddhi/api/internal/auth"
	"vakyashuddhi/api/internal/paraphrase"
	"vakyashuddhi/api/internal/store"
)

type ParaphraseRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

type ParaphraseResponse struct {
	Original    string `json:"original"`
	Paraphrased string `json:"paraphrased"`
	Language    string `json:"language"`
}

func (h *Handle) Paraphrase(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST only"})
		return
	}
	id, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	var req ParaphraseRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is empty"})
		return
	}

	allowed, remaining, err := h.users.CheckQuota(r.Context(), id.UID, store.ActionParaphrase)
	if err != nil {
		log.Printf("handle: quota check failed for %s: %v", id.UID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "quota check failed"})
		return
	}
	if !allowed {
		writeJSON(w, http.StatusForbidden, map[string]any{
			"error":     "paraphrase limit reached",
			"remaining": remaining,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(r, 60*time.Second))
	defer cancel()
	out, err := h.para.Paraphrase(ctx, req.Message, req.Language)
	switch {
	case errors.Is(err, paraphrase.ErrUnsupportedLanguage),
		errors.Is(err, paraphrase.ErrEmptyInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "paraphrase error: " + err.Error()})
		return
	}

	if _, err := h.history.SaveParaphrase(r.Context(), id.UID, req.Message, out, req.Language); err != nil {
		log.Printf("handle: save paraphrase history: %v", err)
	}
	if err := h.users.IncrementUsage(r.Context(), id.UID, store.ActionParaphrase); err != nil {
		log.Printf("handle: increment paraphrase usage: %v", err)
	}

	writeJSON(w, http.StatusOK, ParaphraseResponse{
		Original:    req.Message,
		Paraphrased: out,
		Language:    req.Language,
	})
}
