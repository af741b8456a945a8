package hf

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vakyashuddhi/api/internal/infer"
)

type captured struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters"`
	Options    map[string]any `json:"options"`
}

func newTestEngine(t *testing.T, handler http.HandlerFunc) (*Engine, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	e := New(srv.URL, srv.URL, "test-token").WithHTTPClient(srv.Client())
	return e, srv
}

func TestCorrect(t *testing.T) {
	var got captured
	var auth string
	e, _ := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Error(err)
		}
		json.NewEncoder(w).Encode([]map[string]string{{"generated_text": " मुझे किताब चाहिए "}})
	})

	out, err := e.Correct(t.Context(), "मुजे किताब चाहिए")
	if err != nil {
		t.Fatal(err)
	}
	if out != "मुझे किताब चाहिए" {
		t.Errorf("out = %q", out)
	}
	if got.Inputs != "मुजे किताब चाहिए </s> <2hi>" {
		t.Errorf("inputs = %q", got.Inputs)
	}
	if got.Parameters["num_beams"] != float64(5) || got.Parameters["max_length"] != float64(128) {
		t.Errorf("parameters = %v", got.Parameters)
	}
	if got.Options["wait_for_model"] != true {
		t.Errorf("options = %v", got.Options)
	}
	if auth != "Bearer test-token" {
		t.Errorf("auth header = %q", auth)
	}
}

func TestGenerate(t *testing.T) {
	var got captured
	e, _ := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Error(err)
		}
		json.NewEncoder(w).Encode([]map[string]string{{"generated_text": "नया वाक्य"}})
	})

	out, err := e.Generate(t.Context(), infer.GenerateInput{
		Text:                     "पुराना वाक्य",
		LangTag:                  "<2ta>",
		NumBeams:                 4,
		MaxLength:                64,
		NoRepeatNGramSize:        3,
		EncoderNoRepeatNGramSize: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out != "नया वाक्य" {
		t.Errorf("out = %q", out)
	}
	if got.Inputs != "पुराना वाक्य </s> <2ta>" {
		t.Errorf("inputs = %q", got.Inputs)
	}
	if got.Parameters["no_repeat_ngram_size"] != float64(3) ||
		got.Parameters["encoder_no_repeat_ngram_size"] != float64(3) {
		t.Errorf("parameters = %v", got.Parameters)
	}
	if got.Parameters["do_sample"] != false {
		t.Errorf("do_sample = %v", got.Parameters["do_sample"])
	}
}

func TestColdModel(t *testing.T) {
	e, _ := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model is loading"}`, http.StatusServiceUnavailable)
	})
	if _, err := e.Correct(t.Context(), "कुछ"); !errors.Is(err, infer.ErrModelUnavailable) {
		t.Errorf("err = %v, want ErrModelUnavailable", err)
	}
}

func TestServerError(t *testing.T) {
	e, _ := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	_, err := e.Correct(t.Context(), "कुछ")
	if err == nil || errors.Is(err, infer.ErrModelUnavailable) {
		t.Errorf("err = %v, want a plain server error", err)
	}
}

func TestEmptyGeneration(t *testing.T) {
	e, _ := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{})
	})
	if _, err := e.Correct(t.Context(), "कुछ"); err == nil {
		t.Error("want error for empty generation")
	}
}

func TestUnconfiguredEndpoints(t *testing.T) {
	e := New("", "", "")
	if _, err := e.Correct(t.Context(), "कुछ"); !errors.Is(err, infer.ErrModelUnavailable) {
		t.Errorf("Correct without URL: %v", err)
	}
	if _, err := e.Generate(t.Context(), infer.GenerateInput{Text: "कुछ"}); !errors.Is(err, infer.ErrModelUnavailable) {
		t.Errorf("Generate without URL: %v", err)
	}
	if _, err := e.Translate(t.Context(), "कुछ", "ta"); !errors.Is(err, infer.ErrModelUnavailable) {
		t.Errorf("Translate: %v", err)
	}
}
