package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("expected 15s read timeout, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Database.Namespace != "foundry" {
		t.Errorf("expected default namespace foundry, got %s", cfg.Database.Namespace)
	}
	if cfg.Upload.MaxBytes != DefaultMaxUploadBytes {
		t.Errorf("expected %d max upload bytes, got %d", int64(DefaultMaxUploadBytes), cfg.Upload.MaxBytes)
	}
	if cfg.Submission.Strict {
		t.Error("strict submissions must be off by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("SUBMISSION_STRICT", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("expected host db.internal, got %s", cfg.Database.Host)
	}
	if cfg.Upload.MaxBytes != 1024 {
		t.Errorf("expected 1024 max bytes, got %d", cfg.Upload.MaxBytes)
	}
	if !cfg.Submission.Strict {
		t.Error("expected strict submissions enabled")
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins: %v", cfg.Server.AllowedOrigins)
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg, _ := Load()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestValidate_MissingDatabase(t *testing.T) {
	cfg, _ := Load()
	cfg.Database.Host = ""
	cfg.Database.Namespace = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for missing database settings")
	}
}

func TestValidate_InvalidEnv(t *testing.T) {
	cfg, _ := Load()
	cfg.Server.Env = "staging"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown env")
	}
}

func TestValidate_BadUpload(t *testing.T) {
	cfg, _ := Load()
	cfg.Upload.Dir = ""
	cfg.Upload.MaxBytes = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for upload settings")
	}
}
