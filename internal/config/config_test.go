package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "AI_TIMEOUT_SECONDS", "ARTICLE_LIMIT",
		"ENHANCEMENT_ENABLED", "ENABLE_AI_GENERATION"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8000" {
		t.Errorf("default port: %q", cfg.Port)
	}
	if cfg.AITimeout != 15*time.Second {
		t.Errorf("default AI timeout: %v", cfg.AITimeout)
	}
	if cfg.ArticleLimit != 5 {
		t.Errorf("default article limit: %d", cfg.ArticleLimit)
	}
	if !cfg.EnhancementEnabled {
		t.Error("enhancement should default to enabled")
	}
	if cfg.EnableAIGeneration {
		t.Error("AI generation must default to off")
	}
}

func TestAIFlagRequiresCredential(t *testing.T) {
	t.Setenv("ENABLE_AI_GENERATION", "true")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg := Load()
	if cfg.EnableAIGeneration {
		t.Error("flag without a credential must leave AI generation off")
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg = Load()
	if !cfg.EnableAIGeneration {
		t.Error("flag plus credential should enable AI generation")
	}
}

func TestEnhancementOptOut(t *testing.T) {
	t.Setenv("ENHANCEMENT_ENABLED", "false")
	cfg := Load()
	if cfg.EnhancementEnabled {
		t.Error("ENHANCEMENT_ENABLED=false must disable enhancement")
	}
}
