package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Default submission endpoint used when the host/port variables are unset.
const (
	DefaultHost = "mail.xmit.sh"
	DefaultPort = 587
)

// Descriptions printed alongside each required variable when it is missing.
var requiredVars = []struct {
	Name string
	Desc string
}{
	{"XMIT_API_KEY", "Your Transmit API key"},
	{"XMIT_FROM_EMAIL", "Sender email address"},
	{"XMIT_TO_EMAIL", "Recipient email address"},
}

// Config holds everything the tool needs, resolved from the process
// environment before any network activity happens.
type Config struct {
	APIKey    string
	FromEmail string
	ToEmail   string
	Host      string
	Port      int
	LogLevel  string
}

// MissingError reports the required environment variables that were absent
// or empty, in declaration order.
type MissingError struct {
	Vars []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Vars, ", "))
}

// Usage returns the fixed itemized block printed to the operator, naming
// every required variable with its purpose.
func (e *MissingError) Usage() string {
	var b strings.Builder
	b.WriteString("Error: Missing required environment variables\n")
	for _, v := range requiredVars {
		fmt.Fprintf(&b, "  %-15s - %s\n", v.Name, v.Desc)
	}
	return b.String()
}

// FromEnv resolves the configuration from the environment. Required values
// that are absent or empty are collected into a *MissingError. A malformed
// XMIT_SMTP_PORT is returned as a plain error, not a *MissingError, so it
// surfaces through the generic failure path.
func FromEnv() (*Config, error) {
	cfg := &Config{
		APIKey:    os.Getenv("XMIT_API_KEY"),
		FromEmail: os.Getenv("XMIT_FROM_EMAIL"),
		ToEmail:   os.Getenv("XMIT_TO_EMAIL"),
		Host:      DefaultHost,
		Port:      DefaultPort,
		LogLevel:  "info",
	}

	var missing []string
	for _, v := range requiredVars {
		if os.Getenv(v.Name) == "" {
			missing = append(missing, v.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingError{Vars: missing}
	}

	if host := os.Getenv("XMIT_SMTP_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("XMIT_SMTP_PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid XMIT_SMTP_PORT %q: %w", port, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("invalid XMIT_SMTP_PORT %q: must be a positive integer", port)
		}
		cfg.Port = n
	}
	if level := os.Getenv("XMIT_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}

// Addr returns the host:port dial target.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
