// Package handle exposes the grammar and paraphrase engines over HTTP. The
// engines know nothing about HTTP, tokens or quotas; everything they need is
// resolved here and passed in as plain values.
package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"vakyashuddhi/api/internal/auth"
	"vakyashuddhi/api/internal/grammar"
	"vakyashuddhi/api/internal/store"
)

// Users is the quota/identity surface backed by store.UserRepo.
type Users interface {
	GetOrCreate(ctx context.Context, uid, email, name string) (store.User, error)
	CheckQuota(ctx context.Context, uid, action string) (bool, int, error)
	IncrementUsage(ctx context.Context, uid, action string) error
}

// History is the request-history sink backed by store.HistoryRepo.
type History interface {
	SaveGrammar(ctx context.Context, uid, original, language string, errs []grammar.Error) (string, error)
	SaveParaphrase(ctx context.Context, uid, original, paraphrased, language string) (string, error)
	ListGrammar(ctx context.Context, uid string, limit int) ([]store.GrammarRecord, error)
	ListParaphrases(ctx context.Context, uid string, limit int) ([]store.ParaphraseRecord, error)
}

// Paraphraser is the pipeline surface backed by paraphrase.Pipeline.
type Paraphraser interface {
	Paraphrase(ctx context.Context, text, language string) (string, error)
}

type Handle struct {
	checker  *grammar.Checker
	para     Paraphraser
	users    Users
	history  History
	tokens   *auth.Manager
	verifier auth.Verifier
}

func New(checker *grammar.Checker, para Paraphraser, users Users, history History, tokens *auth.Manager, verifier auth.Verifier) *Handle {
	return &Handle{
		checker:  checker,
		para:     para,
		users:    users,
		history:  history,
		tokens:   tokens,
		verifier: verifier,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// requestTimeout honors X-Request-Timeout (seconds); model calls dominate
// latency and must not hang the handler forever.
func requestTimeout(r *http.Request, def time.Duration) time.Duration {
	if ts := r.Header.Get("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			return time.Duration(v) * time.Second
		}
	}
	return def
}
