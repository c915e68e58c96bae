package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"test", "-a", ":7070", "-i", "corp", "-t", "15", "-m", "-g", "dbhost"}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddr)
	assert.Equal(t, "corp", cfg.ProviderID)
	assert.Equal(t, 15*time.Minute, cfg.TokenValidityDuration)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, "dbhost", cfg.DBHost)
}

func TestParseFlags_UnknownFlagsIgnored(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"test", "-zz", "whatever", "-a", ":7070"}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddr)
}
