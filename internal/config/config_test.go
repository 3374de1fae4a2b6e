package config

import (
	"strings"
	"testing"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is unset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/clinic")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.DBMaxConns != 10 {
		t.Errorf("expected default max conns 10, got %d", cfg.DBMaxConns)
	}
}

func TestValidate_MissingCipherKey(t *testing.T) {
	cfg := &Config{Env: "development"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing CIPHER_KEY")
	}
	if !strings.Contains(err.Error(), "CIPHER_KEY") {
		t.Errorf("error should mention CIPHER_KEY, got: %v", err)
	}
}

func TestValidate_MalformedCipherKey(t *testing.T) {
	cases := []struct {
		name string
		key  string
	}{
		{"not hex", "zzzz"},
		{"too short", "0001020304"},
		{"31 bytes", strings.Repeat("ab", 31)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{Env: "development", CipherKey: tc.key}
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected error for key %q", tc.key)
			}
		})
	}
}

func TestValidate_ValidKey(t *testing.T) {
	cfg := &Config{Env: "development", CipherKey: testKey}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_AuthSecretRequiredInProduction(t *testing.T) {
	cfg := &Config{Env: "production", CipherKey: testKey}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing AUTH_SECRET in production")
	}

	cfg.AuthSecret = "super-secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
