package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const DefaultRedirectURI = "https://localhost"

type Config struct {
	ClientID        string
	ClientSecret    string
	RedirectURI     string
	RefreshToken    string
	DefaultGamertag string
	ServerPort      string
	Debug           bool
	CORSOrigins     []string
	WebDir          string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		ClientID:        getEnv("SPNKR_CLIENT_ID", ""),
		ClientSecret:    getEnv("SPNKR_CLIENT_SECRET", ""),
		RedirectURI:     getEnv("SPNKR_REDIRECT_URI", DefaultRedirectURI),
		RefreshToken:    getEnv("SPNKR_REFRESH_TOKEN", ""),
		DefaultGamertag: getEnv("DEFAULT_GAMERTAG", "itsmrpixle"),
		ServerPort:      getEnv("PORT", "5000"),
		Debug:           parseBool(getEnv("FLASK_DEBUG", "true")),
		CORSOrigins:     parseOrigins(getEnv("CORS_ORIGINS", "")),
		WebDir:          getEnv("WEB_DIR", "web"),
	}

	logger.Info().
		Str("redirect_uri", cfg.RedirectURI).
		Str("default_gamertag", cfg.DefaultGamertag).
		Str("server_port", cfg.ServerPort).
		Bool("debug", cfg.Debug).
		Strs("cors_origins", cfg.CORSOrigins).
		Bool("client_id_set", cfg.ClientID != "").
		Bool("refresh_token_set", cfg.RefreshToken != "").
		Msg("configuration loaded")

	return cfg, nil
}

// RequireCredentials reports the first missing credential by its
// environment variable name. Called before any network I/O so a
// misconfigured deployment fails immediately.
func (c *Config) RequireCredentials() error {
	required := []struct {
		name  string
		value string
	}{
		{"SPNKR_CLIENT_ID", c.ClientID},
		{"SPNKR_CLIENT_SECRET", c.ClientSecret},
		{"SPNKR_REFRESH_TOKEN", c.RefreshToken},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("missing required environment variable: %s", r.name)
		}
	}
	return nil
}

// RequireClient is the weaker check used by the authenticate flow,
// which exists to obtain a refresh token in the first place.
func (c *Config) RequireClient() error {
	if c.ClientID == "" {
		return fmt.Errorf("missing required environment variable: SPNKR_CLIENT_ID")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("missing required environment variable: SPNKR_CLIENT_SECRET")
	}
	return nil
}

func getEnv(key, fallback string) string {
	v := normalize(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

// normalize trims whitespace and one layer of matching single or
// double quotes. Values pasted into .env files routinely carry both.
func normalize(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			v = strings.TrimSpace(v[1 : len(v)-1])
		}
	}
	return v
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func parseOrigins(v string) []string {
	if v == "" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(v, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

var Module = fx.Provide(Load)
