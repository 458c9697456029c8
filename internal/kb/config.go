package kb

import (
	"fmt"
	"os"
	"time"

	"github.com/abhisek/sonoprep/internal/llm"
)

// Config selects and configures the knowledge-base backend.
type Config struct {
	// Backend is "proxy", "llm", or "auto" (proxy when Endpoint is set,
	// otherwise llm).
	Backend string

	// Endpoint is the proxy URL that receives every POST.
	Endpoint string

	// Notebook identifies the notebook on the proxy side.
	Notebook string

	// Timeout bounds one proxy request. Callers may still cancel sooner.
	Timeout time.Duration
}

// DefaultNotebook is sent when SONOPREP_KB_NOTEBOOK is unset.
const DefaultNotebook = "spi-ultrasound-physics"

// DefaultConfig returns the auto backend with a 30s timeout.
func DefaultConfig() Config {
	return Config{
		Backend:  "auto",
		Notebook: DefaultNotebook,
		Timeout:  30 * time.Second,
	}
}

// ConfigFromEnv reads SONOPREP_KB_* variables over DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("SONOPREP_KB_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("SONOPREP_KB_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("SONOPREP_KB_NOTEBOOK"); v != "" {
		cfg.Notebook = v
	}
	if v := os.Getenv("SONOPREP_KB_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		} else {
			fmt.Fprintf(os.Stderr, "warning: ignoring SONOPREP_KB_TIMEOUT=%q\n", v)
		}
	}
	return cfg
}

// New builds the configured Service. provider may be nil when no LLM is
// configured; it is only needed by the llm backend.
func New(cfg Config, provider llm.Provider) (Service, error) {
	switch cfg.Backend {
	case "proxy":
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("%w: SONOPREP_KB_ENDPOINT is required for the proxy backend", ErrNotConfigured)
		}
		return NewProxyClient(cfg), nil
	case "llm":
		if provider == nil {
			return nil, fmt.Errorf("%w: the llm backend needs an LLM provider", ErrNotConfigured)
		}
		return NewLLMClient(provider), nil
	case "auto", "":
		if cfg.Endpoint != "" {
			return NewProxyClient(cfg), nil
		}
		if provider != nil {
			return NewLLMClient(provider), nil
		}
		return nil, ErrNotConfigured
	default:
		return nil, fmt.Errorf("unknown knowledge base backend: %q", cfg.Backend)
	}
}
