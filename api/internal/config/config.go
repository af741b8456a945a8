package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DicPath string
	AffPath string

	// Engine selects the backing model service: "hf" or "gemini".
	Engine string

	HFCorrectURL  string
	HFGenerateURL string
	HFToken       string

	GeminiAPIKey string
	GeminiModel  string

	AccessSecret  string
	RefreshSecret string

	// GoogleAudience is the OAuth client ID login tokens must be issued for.
	GoogleAudience string
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8000"),

		DatabaseURL: mustEnv("DATABASE_URL"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		DicPath: getEnv("HUNSPELL_DIC", "data/hi_IN.dic"),
		AffPath: getEnv("HUNSPELL_AFF", "data/hi_IN.aff"),

		Engine: getEnv("MODEL_ENGINE", "hf"),

		HFCorrectURL:  getEnv("HF_CORRECT_URL", "https://api-inference.huggingface.co/models/ai4bharat/IndicBART"),
		HFGenerateURL: getEnv("HF_GENERATE_URL", "https://api-inference.huggingface.co/models/ai4bharat/MultiIndicParaphraseGeneration"),
		HFToken:       os.Getenv("HF_TOKEN"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		AccessSecret:  mustEnv("ACCESS_SECRET_KEY"),
		RefreshSecret: mustEnv("REFRESH_SECRET_KEY"),

		GoogleAudience: os.Getenv("GOOGLE_AUDIENCE"),
	}
}
