package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"translayer/internal/domain/entities"
)

type Config struct {
	DatabaseURL    string
	DefaultLocale  string
	FallbackLocale string
	OperatorLocale string
	MigrationsPath string
	HTTPAddr       string
	CORSOrigin     string
	LogLevel       string
	LogFile        string
	LogMaxSizeMB   int
	LogMaxFiles    int
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DefaultLocale:  getEnv("DEFAULT_LOCALE", "en"),
		FallbackLocale: os.Getenv("FALLBACK_LOCALE"),
		OperatorLocale: os.Getenv("OPERATOR_LOCALE"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		CORSOrigin:     os.Getenv("CORS_ORIGIN"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        os.Getenv("LOG_FILE"),
	}

	var err error
	if cfg.LogMaxSizeMB, err = getEnvInt("LOG_MAX_SIZE_MB", 10); err != nil {
		return nil, err
	}
	if cfg.LogMaxFiles, err = getEnvInt("LOG_MAX_FILES", 5); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applique toutes les règles métier sur la configuration chargée.
func (c *Config) validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		// Valeur par défaut utile en local lorsque DATABASE_URL n'est pas fournie.
		c.DatabaseURL = "postgres://localhost:5432/translayer?sslmode=disable"
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL invalide (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: DATABASE_URL invalide (%q): scheme ou host manquant", c.DatabaseURL)
	}

	norm, ok := entities.NormalizeLocale(c.DefaultLocale)
	if !ok {
		return fmt.Errorf("config: DEFAULT_LOCALE invalide (%q)", c.DefaultLocale)
	}
	c.DefaultLocale = norm

	if strings.TrimSpace(c.FallbackLocale) == "" {
		c.FallbackLocale = c.DefaultLocale
	} else if c.FallbackLocale, ok = entities.NormalizeLocale(c.FallbackLocale); !ok {
		return fmt.Errorf("config: FALLBACK_LOCALE invalide")
	}

	if strings.TrimSpace(c.OperatorLocale) == "" {
		c.OperatorLocale = c.DefaultLocale
	}

	if strings.TrimSpace(c.MigrationsPath) == "" {
		return fmt.Errorf("config: MIGRATIONS_PATH ne peut pas être vide")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("config: %s doit être un entier (%q): %w", key, raw, err)
	}
	return n, nil
}
