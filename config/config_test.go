/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fstranieri/cloudchat/config"
	"github.com/fstranieri/cloudchat/errors"
	"github.com/fstranieri/cloudchat/zone"
)

var allEnv = []string{
	config.EnvRegion, config.EnvAccessKey, config.EnvSecretKey, config.EnvTable,
	config.EnvEndpoint, config.EnvZone, config.EnvSync, config.EnvPersistence, config.EnvLogLevel,
}

// clearEnv unsets every variable Load reads and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allEnv {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvRegion, "eu-central-1")
	t.Setenv(config.EnvTable, "chat")
	t.Setenv(config.EnvLogLevel, "DEBUG")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "eu-central-1", cfg.AWS.Region)
	assert.Equal(t, "chat", cfg.AWS.Table)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, zone.DefaultConfig(), cfg.ZoneConfig())
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "cloudchat.yaml", `
aws:
  region: us-east-1
  table: chat-dev
  endpoint: http://localhost:8000
zone:
  name: Staging
  sync: cloud_only
  persistence: false
logLevel: warn
`)
	t.Setenv(config.EnvTable, "chat-override")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Equal(t, "chat-override", cfg.AWS.Table)
	assert.Equal(t, "http://localhost:8000", cfg.ClientConfig().Endpoint)
	assert.Equal(t, zone.Config{
		Name:               "Staging",
		SyncProperty:       zone.SyncCloudOnly,
		AccessProperty:     zone.AccessPublic,
		PersistenceEnabled: false,
	}, cfg.ZoneConfig())
	assert.Equal(t, slog.LevelWarn, cfg.Level())
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvRegion, "eu-west-1")
	envFile := writeFile(t, ".env", "AWS_REGION=ap-south-1\nAWS_DDB_TABLE=from-dotenv\nAWS_ACCESS_KEY=AKIA\nAWS_SECRET_KEY=secret\n")

	cfg, err := config.Load("", envFile)
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.AWS.Region, "process environment wins over the env file")
	assert.Equal(t, "from-dotenv", cfg.AWS.Table)
	assert.Equal(t, "AKIA", cfg.ClientConfig().AccessKey)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		yaml  string
		check func(error) bool
	}{
		{
			name:  "missing table",
			env:   map[string]string{config.EnvRegion: "eu-central-1"},
			check: errors.IsValidationError,
		},
		{
			name: "unknown sync property",
			env: map[string]string{
				config.EnvRegion: "eu-central-1", config.EnvTable: "chat", config.EnvSync: "eventual",
			},
			check: errors.IsValidationError,
		},
		{
			name: "access key without secret",
			env: map[string]string{
				config.EnvRegion: "eu-central-1", config.EnvTable: "chat", config.EnvAccessKey: "AKIA",
			},
			check: errors.IsValidationError,
		},
		{
			name: "bad persistence flag",
			env: map[string]string{
				config.EnvRegion: "eu-central-1", config.EnvTable: "chat", config.EnvPersistence: "maybe",
			},
			check: errors.IsValidationError,
		},
		{
			name:  "malformed yaml",
			yaml:  "aws: [",
			check: func(err error) bool { return err != nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.yaml != "" {
				path = writeFile(t, "bad.yaml", tt.yaml)
			}
			_, err := config.Load(path)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "warn"

	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "zone", "ChatDemo")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "zone=ChatDemo")
}
