// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string `yaml:"port"`
	DatabaseDSN string `yaml:"database_dsn"`

	// Jobbies credited when a new applicant profile is created.
	WelcomeBonus int `yaml:"welcome_bonus"`

	// Assumed max queue size for the dashboard progress bar. Purely
	// presentational, see QueueService.ProgressEstimate.
	MaxQueueSize int `yaml:"max_queue_size"`
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         "8080",
		WelcomeBonus: 10,
		MaxQueueSize: 50,
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "configs/config.yaml"
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", path, err)
		}
	}

	// Env vars win over the file
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		cfg.DatabaseDSN = dsn
	}
	if bonus := os.Getenv("WELCOME_BONUS"); bonus != "" {
		n, err := strconv.Atoi(bonus)
		if err != nil {
			log.Fatalf("Invalid WELCOME_BONUS: %v", err)
		}
		cfg.WelcomeBonus = n
	}
	if size := os.Getenv("MAX_QUEUE_SIZE"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil || n <= 0 {
			log.Fatalf("Invalid MAX_QUEUE_SIZE: %q", size)
		}
		cfg.MaxQueueSize = n
	}

	return cfg
}
