package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "secret-pass")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Addr() != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.Addr())
	}
	if cfg.RegistryBackend != RegistryPostgres {
		t.Errorf("expected postgres registry, got %s", cfg.RegistryBackend)
	}
	if cfg.StorageDriver != StorageNone {
		t.Errorf("expected no storage driver, got %s", cfg.StorageDriver)
	}
	if cfg.RedisQueueDB != 1 {
		t.Errorf("expected queue db 1, got %d", cfg.RedisQueueDB)
	}
	if cfg.SMTPEnabled() {
		t.Error("SMTP must be disabled by default")
	}
	if got := cfg.CORSOriginList(); len(got) != 2 {
		t.Errorf("expected 2 origins, got %v", got)
	}
	if cfg.Location().String() != "America/Sao_Paulo" {
		t.Errorf("unexpected location %s", cfg.Location())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "secret-pass")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REGISTRY_BACKEND", "MONGO")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("CORS_ORIGINS", " https://a.example.com , ,https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerPort != "9090" {
		t.Errorf("expected 9090, got %s", cfg.ServerPort)
	}
	if cfg.RegistryBackend != RegistryMongo {
		t.Errorf("expected mongo registry, got %s", cfg.RegistryBackend)
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Errorf("expected 2.5 rps, got %v", cfg.RateLimitRPS)
	}
	if cfg.SMTPPort != 2525 || !cfg.SMTPEnabled() {
		t.Errorf("unexpected smtp config %s:%d", cfg.SMTPHost, cfg.SMTPPort)
	}
	origins := cfg.CORSOriginList()
	if len(origins) != 2 || origins[0] != "https://a.example.com" || origins[1] != "https://b.example.com" {
		t.Errorf("unexpected origins %v", origins)
	}
}

func TestLoad_RejectsBadConfig(t *testing.T) {
	cases := map[string]map[string]string{
		"missing admin password": {},
		"unknown registry": {
			"ADMIN_PASSWORD":   "x",
			"REGISTRY_BACKEND": "redis",
		},
		"cloudinary without credentials": {
			"ADMIN_PASSWORD": "x",
			"STORAGE_DRIVER": "cloudinary",
		},
		"s3 without bucket": {
			"ADMIN_PASSWORD": "x",
			"STORAGE_DRIVER": "s3",
		},
		"weak secret in production": {
			"ADMIN_PASSWORD": "x",
			"ENV":            "production",
		},
		"bad timezone": {
			"ADMIN_PASSWORD": "x",
			"TIMEZONE":       "Mars/Olympus",
		},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("ADMIN_PASSWORD", "")
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected an error")
			} else if !strings.HasPrefix(err.Error(), "config:") {
				t.Fatalf("unexpected error format: %v", err)
			}
		})
	}
}
