package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

// Backend constants
const (
	BackendPolling = "polling"
	BackendPush    = "push"
)

type Config struct {
	Port         int
	Backend      string
	SheetURL     string
	DatabaseURL  string
	CachePath    string
	AdminPIN     string
	PollInterval int // seconds
}

// ParseFlags validates flags and fills in defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("expovote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.Backend, "b", "", "Remote backend (polling or push)")
	fs.StringVar(&cfg.SheetURL, "sheet-url", "", "Endpoint URL for the polling backend")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Postgres URL for the push backend")
	fs.StringVar(&cfg.CachePath, "cache", "", "Path of the local sqlite cache")
	fs.IntVar(&cfg.PollInterval, "interval", 0, "Polling interval in seconds")

	// Secret (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminPIN, "admin-pin", "", "Admin PIN (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 4620 // default
		}
	}

	if cfg.Backend == "" {
		cfg.Backend = os.Getenv("BACKEND")
		if cfg.Backend == "" {
			cfg.Backend = BackendPolling
		}
	}
	if cfg.Backend != BackendPolling && cfg.Backend != BackendPush {
		return Config{}, errors.New("backend must be 'polling' or 'push'")
	}

	// The sheet URL may legitimately be absent: the polling backend then
	// runs permanently disconnected and the app keeps working locally.
	if cfg.SheetURL == "" {
		cfg.SheetURL = os.Getenv("SHEET_URL")
	}

	// The database URL may also be absent: the push backend then runs
	// permanently disconnected, same as polling without a sheet URL.
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if cfg.CachePath == "" {
		cfg.CachePath = os.Getenv("CACHE_PATH")
		if cfg.CachePath == "" {
			cfg.CachePath = "expovote.db"
		}
	}

	if cfg.PollInterval == 0 {
		if s := os.Getenv("POLL_INTERVAL"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return Config{}, errors.New("invalid POLL_INTERVAL env variable")
			}
			cfg.PollInterval = n
		} else {
			cfg.PollInterval = 5
		}
	}

	// Secret - MUST be provided
	if cfg.AdminPIN == "" {
		cfg.AdminPIN = os.Getenv("ADMIN_PIN")
	}
	if cfg.AdminPIN == "" {
		return Config{}, errors.New("ADMIN_PIN required")
	}

	return cfg, nil
}
