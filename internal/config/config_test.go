package config

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"  padded  ", "padded"},
		{`"double quoted"`, "double quoted"},
		{"'single quoted'", "single quoted"},
		{`" quoted and padded "`, "quoted and padded"},
		{`"mismatched'`, `"mismatched'`},
		{`""`, ""},
		{"", ""},
		{`'nested "inner"'`, `nested "inner"`},
	}
	for _, c := range cases {
		if got := normalize(c.in); got != c.want {
			t.Errorf("normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SPNKR_CLIENT_ID", "SPNKR_CLIENT_SECRET", "SPNKR_REDIRECT_URI",
		"SPNKR_REFRESH_TOKEN", "DEFAULT_GAMERTAG", "PORT", "FLASK_DEBUG",
		"CORS_ORIGINS", "WEB_DIR",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load(zerolog.Nop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.RedirectURI != "https://localhost" {
		t.Errorf("expected default redirect URI https://localhost, got %s", cfg.RedirectURI)
	}
	if cfg.DefaultGamertag != "itsmrpixle" {
		t.Errorf("expected default gamertag itsmrpixle, got %s", cfg.DefaultGamertag)
	}
	if cfg.ServerPort != "5000" {
		t.Errorf("expected default port 5000, got %s", cfg.ServerPort)
	}
	if !cfg.Debug {
		t.Error("expected debug to default to true")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("expected wildcard CORS origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoadNormalizesQuotedValues(t *testing.T) {
	t.Setenv("SPNKR_CLIENT_ID", `"  client-id  "`)
	t.Setenv("SPNKR_CLIENT_SECRET", "'secret'")
	t.Setenv("SPNKR_REFRESH_TOKEN", "  token  ")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, http://localhost:3000")

	cfg, err := Load(zerolog.Nop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ClientID != "client-id" {
		t.Errorf("client id not normalized: %q", cfg.ClientID)
	}
	if cfg.ClientSecret != "secret" {
		t.Errorf("client secret not normalized: %q", cfg.ClientSecret)
	}
	if cfg.RefreshToken != "token" {
		t.Errorf("refresh token not normalized: %q", cfg.RefreshToken)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://localhost:3000" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
}

func TestRequireCredentials(t *testing.T) {
	t.Run("MissingRefreshToken", func(t *testing.T) {
		cfg := &Config{ClientID: "id", ClientSecret: "secret"}
		err := cfg.RequireCredentials()
		if err == nil {
			t.Fatal("expected error for missing refresh token")
		}
		if !strings.Contains(err.Error(), "SPNKR_REFRESH_TOKEN") {
			t.Errorf("error should name the missing variable, got: %v", err)
		}
	})

	t.Run("MissingClientID", func(t *testing.T) {
		cfg := &Config{ClientSecret: "secret", RefreshToken: "tok"}
		err := cfg.RequireCredentials()
		if err == nil || !strings.Contains(err.Error(), "SPNKR_CLIENT_ID") {
			t.Errorf("error should name SPNKR_CLIENT_ID, got: %v", err)
		}
	})

	t.Run("AllPresent", func(t *testing.T) {
		cfg := &Config{ClientID: "id", ClientSecret: "secret", RefreshToken: "tok"}
		if err := cfg.RequireCredentials(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
