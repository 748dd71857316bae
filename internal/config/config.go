package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Upload / extraction settings.
	UploadMaxBytes    int64  `mapstructure:"UPLOAD_MAX_BYTES"`
	OCREnabled        bool   `mapstructure:"OCR_ENABLED"`
	OCRDPI            int    `mapstructure:"OCR_DPI"`
	OCRTimeoutSeconds int    `mapstructure:"OCR_TIMEOUT_SECONDS"`
	OCRPdftoppm       string `mapstructure:"OCR_PDFTOPPM"`
	OCRTesseract      string `mapstructure:"OCR_TESSERACT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("UPLOAD_MAX_BYTES", 20<<20)
	v.SetDefault("OCR_ENABLED", true)
	v.SetDefault("OCR_DPI", 300)
	v.SetDefault("OCR_TIMEOUT_SECONDS", 120)
	v.SetDefault("OCR_PDFTOPPM", "pdftoppm")
	v.SetDefault("OCR_TESSERACT", "tesseract")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("UPLOAD_MAX_BYTES")
	v.BindEnv("OCR_ENABLED")
	v.BindEnv("OCR_DPI")
	v.BindEnv("OCR_TIMEOUT_SECONDS")
	v.BindEnv("OCR_PDFTOPPM")
	v.BindEnv("OCR_TESSERACT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// OCRTimeout returns the OCR deadline as a duration. Zero disables the bound.
func (c *Config) OCRTimeout() time.Duration {
	return time.Duration(c.OCRTimeoutSeconds) * time.Second
}
