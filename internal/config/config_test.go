package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("XMIT_API_KEY", "xmit_test_key")
	t.Setenv("XMIT_FROM_EMAIL", "sender@example.com")
	t.Setenv("XMIT_TO_EMAIL", "recipient@example.org")
}

func clearOptional(t *testing.T) {
	t.Setenv("XMIT_SMTP_HOST", "")
	t.Setenv("XMIT_SMTP_PORT", "")
	t.Setenv("XMIT_LOG_LEVEL", "")
}

func TestFromEnvAllMissing(t *testing.T) {
	t.Setenv("XMIT_API_KEY", "")
	t.Setenv("XMIT_FROM_EMAIL", "")
	t.Setenv("XMIT_TO_EMAIL", "")

	_, err := FromEnv()
	require.Error(t, err)

	var missing *MissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"XMIT_API_KEY", "XMIT_FROM_EMAIL", "XMIT_TO_EMAIL"}, missing.Vars)

	usage := missing.Usage()
	assert.Contains(t, usage, "Missing required environment variables")
	assert.Contains(t, usage, "XMIT_API_KEY")
	assert.Contains(t, usage, "XMIT_FROM_EMAIL")
	assert.Contains(t, usage, "XMIT_TO_EMAIL")
}

func TestFromEnvOneMissing(t *testing.T) {
	setRequired(t)
	t.Setenv("XMIT_API_KEY", "")

	_, err := FromEnv()
	var missing *MissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"XMIT_API_KEY"}, missing.Vars)
}

func TestFromEnvDefaults(t *testing.T) {
	setRequired(t)
	clearOptional(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "mail.xmit.sh", cfg.Host)
	assert.Equal(t, 587, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "mail.xmit.sh:587", cfg.Addr())
}

func TestFromEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("XMIT_SMTP_HOST", "smtp.example.net")
	t.Setenv("XMIT_SMTP_PORT", "2525")
	t.Setenv("XMIT_LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "xmit_test_key", cfg.APIKey)
	assert.Equal(t, "sender@example.com", cfg.FromEmail)
	assert.Equal(t, "recipient@example.org", cfg.ToEmail)
	assert.Equal(t, "smtp.example.net:2525", cfg.Addr())
	assert.Equal(t, "debug", cfg.LogLevel)
}

// A non-numeric port is a generic error, not a MissingError, so it reports
// through the unclassified failure branch.
func TestFromEnvMalformedPort(t *testing.T) {
	setRequired(t)
	t.Setenv("XMIT_SMTP_PORT", "not-a-port")

	_, err := FromEnv()
	require.Error(t, err)

	var missing *MissingError
	assert.False(t, errors.As(err, &missing))
	assert.Contains(t, err.Error(), "XMIT_SMTP_PORT")
}

func TestFromEnvNegativePort(t *testing.T) {
	setRequired(t)
	t.Setenv("XMIT_SMTP_PORT", "-1")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive")
}
