package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"MONGODB_URI", "MONGO_URI", "POSTGRES_URI", "REDIS_URI",
		"PORT", "ENV", "FRONTEND_URL", "FRONTEND_URL_2", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.IsProduction() {
		t.Fatal("expected development default")
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected default origins: %v", cfg.AllowedOrigins)
	}
}

func TestLoadAllowedOriginsFromList(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://skillswap.app, https://staging.skillswap.app")

	cfg := Load()
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.AllowedOrigins[0] != "https://skillswap.app" ||
		cfg.AllowedOrigins[1] != "https://staging.skillswap.app" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestIsProduction(t *testing.T) {
	t.Setenv("ENV", "Production")
	if !Load().IsProduction() {
		t.Fatal("expected production mode")
	}
}
