package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingCredential is returned by Load when no backend API key is set.
var ErrMissingCredential = errors.New("config: GEMINI_API_KEY is not set")

type Config struct {
	Port string
	Env  string

	// AllowedOrigins are cross-origin callers admitted by CORS and the
	// websocket upgrade, besides the serving host itself.
	AllowedOrigins []string

	LLM     LLMConfig
	Fetch   FetchConfig
	Archive ArchiveConfig
	Session SessionConfig
	Log     LogConfig
}

type LLMConfig struct {
	APIKey         string
	Model          string
	Temperature    float32
	MaxRetries     int
	RetryBaseDelay time.Duration
	RPS            float64
	Burst          int
}

type FetchConfig struct {
	DefaultBranch string
	GitHubToken   string
	Timeout       time.Duration
	MaxBytes      int64

	// MaxExtractBytes caps the uncompressed size of an archive.
	MaxExtractBytes int64
}

// ArchiveConfig points at an S3-compatible store serving s3:// archives.
type ArchiveConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

type SessionConfig struct {
	TTL        time.Duration
	MaxEntries int
}

type LogConfig struct {
	Level  string
	Format string
}

// Options tweak Load. RequireCredential is false only for fake-backend runs.
type Options struct {
	RequireCredential bool
}

func Load(opts Options) (*Config, error) {
	_ = godotenv.Load()

	port := firstNonEmpty(strings.TrimSpace(os.Getenv("PORT")), ":8080")
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		port = ":" + port
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	cfg := &Config{
		Port:    port,
		Env:     env,
		LLM:     loadLLMConfig(),
		Fetch:   loadFetchConfig(),
		Archive: loadArchiveConfig(env),
		Session: SessionConfig{
			TTL:        envDuration("SESSION_TTL", 2*time.Hour),
			MaxEntries: envInt("SESSION_MAX", 256),
		},
		Log: LogConfig{
			Level:  firstNonEmpty(strings.TrimSpace(os.Getenv("LOG_LEVEL")), "info"),
			Format: firstNonEmpty(strings.TrimSpace(os.Getenv("LOG_FORMAT")), "text"),
		},
	}
	cfg.AllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if opts.RequireCredential && cfg.LLM.APIKey == "" {
		return nil, ErrMissingCredential
	}
	return cfg, nil
}

func loadLLMConfig() LLMConfig {
	temp := float32(0.1)
	if raw := strings.TrimSpace(os.Getenv("LLM_TEMPERATURE")); raw != "" {
		if f, err := strconv.ParseFloat(raw, 32); err == nil {
			temp = float32(f)
		}
	}
	rps := 0.0
	if raw := strings.TrimSpace(os.Getenv("LLM_RPS")); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			rps = f
		}
	}
	return LLMConfig{
		APIKey:         firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_API_KEY")), strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))),
		Model:          firstNonEmpty(strings.TrimSpace(os.Getenv("LLM_MODEL")), "gemini-2.0-flash"),
		Temperature:    temp,
		MaxRetries:     envInt("LLM_MAX_RETRIES", 3),
		RetryBaseDelay: time.Duration(envInt("LLM_RETRY_BASE_MS", 300)) * time.Millisecond,
		RPS:            rps,
		Burst:          envInt("LLM_BURST", 1),
	}
}

func loadFetchConfig() FetchConfig {
	return FetchConfig{
		DefaultBranch: firstNonEmpty(strings.TrimSpace(os.Getenv("REPO_DEFAULT_BRANCH")), "main"),
		GitHubToken:   strings.TrimSpace(os.Getenv("GITHUB_TOKEN")),
		Timeout:       envDuration("FETCH_TIMEOUT", 60*time.Second),
		MaxBytes:      int64(envInt("FETCH_MAX_BYTES", 200<<20)),

		MaxExtractBytes: int64(envInt("EXTRACT_MAX_BYTES", 1<<30)),
	}
}

func loadArchiveConfig(env string) ArchiveConfig {
	if strings.EqualFold(env, "local") {
		return localArchiveConfig()
	}
	return ArchiveConfig{
		Endpoint:  strings.TrimSpace(os.Getenv("ARCHIVE_S3_ENDPOINT")),
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("ARCHIVE_S3_REGION")), "us-east-1"),
		AccessKey: strings.TrimSpace(os.Getenv("ARCHIVE_S3_ACCESS_KEY")),
		SecretKey: strings.TrimSpace(os.Getenv("ARCHIVE_S3_SECRET_KEY")),
		UseSSL:    envBool("ARCHIVE_S3_USE_SSL", true),
	}
}

// CanUseS3 reports whether enough settings are present to open a client.
func (c ArchiveConfig) CanUseS3() bool {
	return c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != ""
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
