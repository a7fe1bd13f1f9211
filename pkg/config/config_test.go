package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "dev" {
		t.Fatalf("expected App.Env dev, got %q", cfg.App.Env)
	}
	if !cfg.App.IsDev() {
		t.Fatal("expected IsDev() for default env")
	}
	if cfg.HTTP.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.HTTP.Port)
	}
	if cfg.DB.Path != "./data/procurement.db" {
		t.Fatalf("unexpected DB path %q", cfg.DB.Path)
	}
	if cfg.Engine.Seed {
		t.Fatal("seeding should default off")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PROCURE_APP_ENV", "prod")
	t.Setenv("PROCURE_HTTP_PORT", "9090")
	t.Setenv("PROCURE_CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("PROCURE_SEED_ON_START", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if !cfg.App.IsProd() {
		t.Fatal("expected IsProd()")
	}
	if cfg.HTTP.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.HTTP.Port)
	}
	origins := cfg.HTTP.Origins()
	if len(origins) != 2 || origins[0] != "https://a.example.com" || origins[1] != "https://b.example.com" {
		t.Fatalf("unexpected origins %v", origins)
	}
	if !cfg.Engine.Seed {
		t.Fatal("expected seeding enabled")
	}
}
