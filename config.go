package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/bodul/wordsearch/wordsearch"
)

// Config is read from the environment, after loading an optional .env file.
type Config struct {
	Port         string
	LogLevel     string
	Development  bool
	ProjectID    string
	Region       string
	APIKey       string
	Model        string
	ClientOrigin string
	Tiers        wordsearch.Tiers
}

// LoadConfig builds the configuration. DIFFICULTY_FILE, when set, names a
// YAML file replacing the default difficulty tiers.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Development:  os.Getenv("DEVELOPMENT") != "" && os.Getenv("DEVELOPMENT") != "0",
		ProjectID:    os.Getenv("GCP_PROJECT_ID"),
		Region:       os.Getenv("GCP_REGION"),
		APIKey:       os.Getenv("GEMINI_API_KEY"),
		Model:        os.Getenv("GEMINI_MODEL"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Tiers:        wordsearch.DefaultTiers(),
	}

	if path := os.Getenv("DIFFICULTY_FILE"); path != "" {
		tiers, err := loadTiers(path)
		if err != nil {
			return nil, err
		}
		cfg.Tiers = tiers
	}
	return cfg, nil
}

func loadTiers(path string) (wordsearch.Tiers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read difficulty file: %w", err)
	}
	return parseTiers(data)
}

// parseTiers decodes a YAML mapping of difficulty name to tier, e.g.
//
//	easy:   {size: 10, min_words: 5, max_words: 10}
//	medium: {size: 15, min_words: 10, max_words: 20, diagonals: true}
func parseTiers(data []byte) (wordsearch.Tiers, error) {
	var tiers wordsearch.Tiers
	if err := yaml.Unmarshal(data, &tiers); err != nil {
		return nil, fmt.Errorf("parse difficulty file: %w", err)
	}
	if err := tiers.Validate(); err != nil {
		return nil, err
	}
	return tiers, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
