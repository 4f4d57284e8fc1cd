package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultDBPath = "./dev.db"
	defaultPort   = "8080"
	defaultEnv    = "development"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env         string
	Port        string
	DBPath      string
	JWTSecret   string
	SuperAdmins []string
}

// IsDev reports whether the server runs in local development mode.
func (c Config) IsDev() bool {
	return c.Env == "" || strings.EqualFold(c.Env, defaultEnv) || strings.EqualFold(c.Env, "dev")
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path. A missing file is fine;
// production injects real environment variables, which are never overwritten.
func LoadFrom(path string) Config {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: read %s: %v", path, err)
	}

	cfg := Config{
		Env:         os.Getenv("APP_ENV"),
		Port:        os.Getenv("PORT"),
		DBPath:      os.Getenv("DB_PATH"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		SuperAdmins: splitEmails(os.Getenv("SUPER_ADMINS")),
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	if cfg.JWTSecret == "" {
		log.Print("warning: JWT_SECRET is not set")
	}
	if len(cfg.SuperAdmins) == 0 {
		log.Print("warning: SUPER_ADMINS is not set")
	}

	return cfg
}

func splitEmails(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if e := strings.ToLower(strings.TrimSpace(part)); e != "" {
			out = append(out, e)
		}
	}
	return out
}
