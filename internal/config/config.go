package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Summarizer providers accepted in SUMMARIZER_PROVIDER.
const (
	ProviderAuto      = "auto"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderNone      = "none"
)

const (
	defaultPort             = "9000"
	defaultEutilsBaseURL    = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	defaultUserAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultMaxDocumentBytes = 20 << 20
)

type Config struct {
	Port     string
	LogLevel slog.Level

	// Auth; empty disables bearer checks
	APIKey string

	// CORS
	CORSOrigins []string

	// Simplification collaborator
	SummarizerProvider string
	AnthropicAPIKey    string
	AnthropicModel     string
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	OpenAIModel        string
	GoogleAPIKey       string
	GeminiModel        string
	SummaryTimeout     time.Duration
	StatsWindow        time.Duration

	// PMC E-utilities
	NCBIAPIKey    string
	EutilsBaseURL string
	EutilsTimeout time.Duration

	// Generic fetch
	FetchTimeout     time.Duration
	MaxDocumentBytes int64
	RespectRobots    bool
	UserAgent        string
}

func Load() Config {
	cfg := Config{
		Port:     envOr("PORT", defaultPort),
		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),

		APIKey: os.Getenv("API_KEY"),

		CORSOrigins: envList("CORS_ORIGINS", []string{"*"}),

		SummarizerProvider: strings.ToLower(envOr("SUMMARIZER_PROVIDER", ProviderAuto)),
		AnthropicAPIKey:    os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:     envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:      os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:        envOr("OPENAI_MODEL", "gpt-4o-mini"),
		GoogleAPIKey:       os.Getenv("GOOGLE_API_KEY"),
		GeminiModel:        envOr("GEMINI_MODEL", "gemini-2.0-flash"),
		SummaryTimeout:     envDuration("SUMMARY_TIMEOUT", 90*time.Second),
		StatsWindow:        envDuration("STATS_WINDOW", time.Hour),

		NCBIAPIKey:    os.Getenv("NCBI_API_KEY"),
		EutilsBaseURL: strings.TrimRight(envOr("EUTILS_BASE_URL", defaultEutilsBaseURL), "/"),
		EutilsTimeout: envDuration("EUTILS_TIMEOUT", 60*time.Second),

		FetchTimeout:     envDuration("FETCH_TIMEOUT", 30*time.Second),
		MaxDocumentBytes: envInt64("MAX_DOCUMENT_BYTES", defaultMaxDocumentBytes),
		RespectRobots:    envBool("RESPECT_ROBOTS", false),
		UserAgent:        envOr("USER_AGENT", defaultUserAgent),
	}

	if cfg.SummaryTimeout <= 0 {
		cfg.SummaryTimeout = 90 * time.Second
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = time.Hour
	}
	if cfg.EutilsTimeout <= 0 {
		cfg.EutilsTimeout = 60 * time.Second
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}
	if cfg.MaxDocumentBytes <= 0 {
		cfg.MaxDocumentBytes = defaultMaxDocumentBytes
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	switch c.SummarizerProvider {
	case ProviderAuto, ProviderNone:
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for SUMMARIZER_PROVIDER=%s", c.SummarizerProvider)
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for SUMMARIZER_PROVIDER=%s", c.SummarizerProvider)
		}
	case ProviderGemini:
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY is required for SUMMARIZER_PROVIDER=%s", c.SummarizerProvider)
		}
	default:
		return fmt.Errorf("unknown SUMMARIZER_PROVIDER %q", c.SummarizerProvider)
	}
	if c.EutilsBaseURL == "" {
		return fmt.Errorf("EUTILS_BASE_URL must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envList splits a comma-separated value, dropping blank entries.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func envLevel(key string, fallback slog.Level) slog.Level {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(v)); err != nil {
		return fallback
	}
	return lvl
}
