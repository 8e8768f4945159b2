package config

import (
	"strings"
	"testing"
)

func TestValidateWithDetailsValid(t *testing.T) {
	if err := ValidateWithDetails(DefaultConfig()); err != nil {
		t.Errorf("default config: %v", err)
	}
}

func TestValidateWithDetailsCollectsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.App.Environment = "exotic"
	cfg.Server.Port = 0
	cfg.Mind.EmbeddingDim = -1

	err := ValidateWithDetails(cfg)
	if err == nil {
		t.Fatal("invalid config accepted")
	}
	details, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("err type = %T, want ValidationErrors", err)
	}
	if len(details) < 3 {
		t.Errorf("got %d errors, want >= 3: %v", len(details), details)
	}

	msg := err.Error()
	for _, fragment := range []string{"Environment", "Port", "EmbeddingDim"} {
		if !strings.Contains(msg, fragment) {
			t.Errorf("error message missing %q:\n%s", fragment, msg)
		}
	}
}

func TestConfigErrorMessage(t *testing.T) {
	e := ConfigError{Field: "Server.Port", Message: "must be at least 1", Value: 0}
	got := e.Error()
	if !strings.Contains(got, "Server.Port") || !strings.Contains(got, "must be at least 1") {
		t.Errorf("Error() = %q", got)
	}
}

func TestValidationErrorsEmpty(t *testing.T) {
	var e ValidationErrors
	if e.Error() != "no validation errors" {
		t.Errorf("Error() = %q", e.Error())
	}
}
