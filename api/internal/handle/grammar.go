package handle

import (
	"context"
	"log"
	"net/http"
	"time"

	"vakyashuddhi/api/internal/auth"
	"vakyashuddhi/api/internal/store"
)

type GrammarRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

// GrammarCheck runs the reconciliation engine for the authenticated caller.
// An empty message is not an error: it yields the all-100 zero-error report.
func (h *Handle) GrammarCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST only"})
		return
	}
	id, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	var req GrammarRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json: " + err.Error()})
		return
	}
	if req.Language == "" {
		req.Language = "hindi"
	}

	allowed, remaining, err := h.users.CheckQuota(r.Context(), id.UID, store.ActionGrammar)
	if err != nil {
		log.Printf("handle: quota check failed for %s: %v", id.UID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "quota check failed"})
		return
	}
	if !allowed {
		writeJSON(w, http.StatusForbidden, map[string]any{
			"error":     "grammar check limit reached",
			"remaining": remaining,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(r, 60*time.Second))
	defer cancel()
	report := h.checker.Check(ctx, req.Message)

	// History and usage are once-per-request, best-effort: the report is
	// already computed and belongs to the caller either way.
	if _, err := h.history.SaveGrammar(r.Context(), id.UID, req.Message, req.Language, report.Errors); err != nil {
		log.Printf("handle: save grammar history: %v", err)
	}
	if err := h.users.IncrementUsage(r.Context(), id.UID, store.ActionGrammar); err != nil {
		log.Printf("handle: increment grammar usage: %v", err)
	}

	writeJSON(w, http.StatusOK, report)
}

// Usage reports the approximate remaining allowance for both actions.
func (h *Handle) Usage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "GET only"})
		return
	}
	id, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	_, grammarLeft, err := h.users.CheckQuota(r.Context(), id.UID, store.ActionGrammar)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "quota check failed"})
		return
	}
	_, paraLeft, err := h.users.CheckQuota(r.Context(), id.UID, store.ActionParaphrase)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "quota check failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"grammar_remaining":    grammarLeft,
		"paraphrase_remaining": paraLeft,
	})
}
