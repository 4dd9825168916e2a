package llm

import (
	"errors"
	"testing"

	contractx "github.com/wirelimit/visara/agent/contract"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := Config{APIKey: "k", Model: "gemini-1.5-flash"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if err := (Config{Model: "m"}).Validate(); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("Validate() without api key = %v, want ErrValidation", err)
	}
	if err := (Config{APIKey: "k", Model: "   "}).Validate(); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("Validate() without model = %v, want ErrValidation", err)
	}
}

func TestGeminiConfigTrimsFields(t *testing.T) {
	t.Parallel()

	cfg := Config{
		BaseURL: " https://example.test/v1 ",
		APIKey:  " k ",
		Model:   " m ",
	}

	got := cfg.GeminiConfig()
	if got.BaseURL != "https://example.test/v1" || got.APIKey != "k" || got.Model != "m" {
		t.Fatalf("GeminiConfig() = %+v, want trimmed fields", got)
	}
}
