package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"vakyashuddhi/api/internal/auth"
	"vakyashuddhi/api/internal/config"
	"vakyashuddhi/api/internal/customdict"
	"vakyashuddhi/api/internal/grammar"
	"vakyashuddhi/api/internal/handle"
	"vakyashuddhi/api/internal/hunspell"
	"vakyashuddhi/api/internal/infer"
	"vakyashuddhi/api/internal/infer/gemini"
	"vakyashuddhi/api/internal/infer/hf"
	"vakyashuddhi/api/internal/paraphrase"
	"vakyashuddhi/api/internal/store"
)

func main() {
	cfg := config.Load()

	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		cfg.Port = p
	}

	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	if err := store.Migrate(context.Background(), db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	dict := customdict.New(rdb)

	speller, err := hunspell.New(cfg.DicPath, cfg.AffPath)
	if err != nil {
		log.Fatalf("load dictionary: %v", err)
	}
	speller.SetExtra(func(word string) bool {
		return dict.Contains(context.Background(), word)
	})

	engines := &infer.Engines{
		HF: hf.New(cfg.HFCorrectURL, cfg.HFGenerateURL, cfg.HFToken),
	}
	if cfg.GeminiAPIKey != "" {
		engines.Gemini = gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
	}

	// The corrector is best-effort: without an engine the checker degrades
	// to dictionary-only detection instead of refusing requests.
	var corrector grammar.Corrector
	engine, err := engines.Get(cfg.Engine)
	if err != nil {
		log.Printf("model engine %q unavailable, running dictionary-only: %v", cfg.Engine, err)
	} else {
		corrector = infer.NewCachedCorrector(engine)
	}
	checker := grammar.NewChecker(speller, corrector)

	var translator paraphrase.Translator
	if engines.Gemini != nil {
		translator = engines.Gemini
	}
	para := paraphrase.New(engine, translator)

	tokens := auth.NewManager(cfg.AccessSecret, cfg.RefreshSecret)
	verifier := &auth.GoogleVerifier{Audience: cfg.GoogleAudience}

	users := store.NewUserRepo(db)
	history := store.NewHistoryRepo(db)
	h := handle.New(checker, para, users, history, tokens, verifier)
	cw := &handle.CustomWordHandler{Dict: dict}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/auth/login", h.Login)
	mux.HandleFunc("/auth/refresh", h.Refresh)

	mux.Handle("/grammar_check", tokens.Middleware(http.HandlerFunc(h.GrammarCheck)))
	mux.Handle("/paraphrase", tokens.Middleware(http.HandlerFunc(h.Paraphrase)))
	mux.Handle("/history/grammar", tokens.Middleware(http.HandlerFunc(h.GrammarHistory)))
	mux.Handle("/history/paraphrase", tokens.Middleware(http.HandlerFunc(h.ParaphraseHistory)))
	mux.Handle("/usage", tokens.Middleware(http.HandlerFunc(h.Usage)))

	mux.HandleFunc("/api/v1/custom-word", cw.Add)
	mux.HandleFunc("/api/v1/custom-word/", cw.Remove)

	addr := ":" + cfg.Port
	log.Printf("vakyashuddhi listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
