package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/danielhkuo/approval-bot/db"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	ConfigFile   string
	// ExpireMinutes is the default voting window for new approval
	// requests when the create call doesn't name one.
	ExpireMinutes int
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("approval-bot", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or sqlite file path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.ConfigFile, "c", "", "Roster config file (YAML)")
	fs.IntVar(&cfg.ExpireMinutes, "expire-minutes", 0, "Default voting window in minutes")

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
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = db.DriverSQLite
		}
	}
	if cfg.DatabaseType != db.DriverSQLite && cfg.DatabaseType != db.DriverPostgres {
		return Config{}, fmt.Errorf("invalid database type %q (sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == db.DriverSQLite {
			cfg.DatabaseURL = "approvals.sqlite3"
		} else {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	}

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv("CONFIG_FILE")
		if cfg.ConfigFile == "" {
			cfg.ConfigFile = "config.yml"
		}
	}

	if cfg.ExpireMinutes == 0 {
		if minStr := os.Getenv("APPROVAL_END_MINUTES"); minStr != "" {
			mins, err := strconv.Atoi(minStr)
			if err != nil {
				return Config{}, errors.New("invalid APPROVAL_END_MINUTES env variable")
			}
			cfg.ExpireMinutes = mins
		} else {
			cfg.ExpireMinutes = 60 // default
		}
	}
	if cfg.ExpireMinutes < 0 {
		return Config{}, errors.New("voting window must be positive")
	}

	return cfg, nil
}
