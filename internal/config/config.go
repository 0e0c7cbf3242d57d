package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Config is the immutable process configuration, read once at startup.
type Config struct {
	FrontAddr   string
	BrokerID    string
	UserID      string
	Password    string
	Instruments []string

	StreamListenAddr string

	KafkaBrokers []string
	KafkaTopic   string

	Development bool
}

// Load reads configuration from the environment, with a .env file as
// fallback for unset keys.
func Load() (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, fmt.Errorf("unable to load .env: %w", err)
	}

	cfg := Config{
		FrontAddr:        os.Getenv("CtpFrontAddr"),
		BrokerID:         os.Getenv("CtpBrokerId"),
		UserID:           os.Getenv("CtpUserId"),
		Password:         os.Getenv("CtpPassword"),
		Instruments:      splitList(os.Getenv("CtpInstruments")),
		StreamListenAddr: os.Getenv("StreamListenAddr"),
		KafkaBrokers:     splitList(os.Getenv("KafkaBrokers")),
		KafkaTopic:       os.Getenv("KafkaTopic"),
		Development:      os.Getenv("Environment") != "production",
	}
	if cfg.StreamListenAddr == "" {
		cfg.StreamListenAddr = ":8000"
	}

	if cfg.FrontAddr == "" {
		return Config{}, errors.New("CtpFrontAddr is required")
	}
	if cfg.BrokerID == "" || cfg.UserID == "" || cfg.Password == "" {
		return Config{}, errors.New("CtpBrokerId, CtpUserId and CtpPassword are required")
	}
	if len(cfg.Instruments) == 0 {
		return Config{}, errors.New("CtpInstruments must list at least one instrument")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		return Config{}, errors.New("KafkaTopic is required when KafkaBrokers is set")
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
