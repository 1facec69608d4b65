package config

import (
	"os"
	"strconv"
	"time"

	"k8s.io/klog/v2"
)

// Config holds all application configuration
type Config struct {
	Port          string
	DataFile      string // empty means the embedded work data
	DBPath        string
	AdminUsername string
	AdminPassword string
	SessionIdle   time.Duration
	WatchData     bool
}

// Load reads configuration from the environment.
// Values from a .env file are already in the environment by the time this runs.
func Load() *Config {
	c := &Config{
		Port:          getenv("PORT", "8080"),
		DataFile:      os.Getenv("DATA_FILE"),
		DBPath:        getenv("DB_PATH", "portfolio.db"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionIdle:   30 * time.Minute,
	}

	if v := os.Getenv("SESSION_IDLE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			klog.Warningf("ignoring SESSION_IDLE=%q: want a positive duration", v)
		} else {
			c.SessionIdle = d
		}
	}

	if v := os.Getenv("WATCH_DATA"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			klog.Warningf("ignoring WATCH_DATA=%q: %v", v, err)
		}
		c.WatchData = b
	}

	// Default credentials for development (set both in production)
	if c.AdminUsername == "" {
		c.AdminUsername = "admin"
		klog.Warning("Using default admin username. Set ADMIN_USERNAME environment variable.")
	}
	if c.AdminPassword == "" {
		c.AdminPassword = "admin123"
		klog.Warning("Using default admin password. Set ADMIN_PASSWORD environment variable.")
	}

	return c
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
