/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/fstranieri/cloudchat/datastore/ddb"
	"github.com/fstranieri/cloudchat/errors"
	"github.com/fstranieri/cloudchat/zone"
)

// Environment variables read by Load.
const (
	EnvRegion      = "AWS_REGION"
	EnvAccessKey   = "AWS_ACCESS_KEY"
	EnvSecretKey   = "AWS_SECRET_KEY"
	EnvTable       = "AWS_DDB_TABLE"
	EnvEndpoint    = "AWS_DDB_ENDPOINT"
	EnvZone        = "CLOUDCHAT_ZONE"
	EnvSync        = "CLOUDCHAT_SYNC"
	EnvPersistence = "CLOUDCHAT_PERSISTENCE"
	EnvLogLevel    = "CLOUDCHAT_LOG_LEVEL"
)

var validate = validator.New()

// Config holds all settings.
type Config struct {
	AWS      AWSConfig  `yaml:"aws"`
	Zone     ZoneConfig `yaml:"zone"`
	LogLevel string     `yaml:"logLevel" validate:"oneof=debug info warn error"`
}

// AWSConfig selects the DynamoDB table.
type AWSConfig struct {
	Region    string `yaml:"region" validate:"required"`
	AccessKey string `yaml:"accessKey" validate:"required_with=SecretKey"`
	SecretKey string `yaml:"secretKey" validate:"required_with=AccessKey"`
	Table     string `yaml:"table" validate:"required"`
	Endpoint  string `yaml:"endpoint" validate:"omitempty,url"`
}

// ZoneConfig describes the zone to open.
type ZoneConfig struct {
	Name        string `yaml:"name" validate:"required"`
	Sync        string `yaml:"sync" validate:"oneof=cloud_cache cloud_only local_only"`
	Access      string `yaml:"access" validate:"oneof=public"`
	Persistence bool   `yaml:"persistence"`
}

// Default returns the configuration before any file or environment is applied.
func Default() *Config {
	def := zone.DefaultConfig()
	return &Config{
		Zone: ZoneConfig{
			Name:        def.Name,
			Sync:        string(def.SyncProperty),
			Access:      string(def.AccessProperty),
			Persistence: def.PersistenceEnabled,
		},
		LogLevel: "info",
	}
}

// Load builds the configuration. path names an optional YAML file; envFiles
// are dotenv files loaded into the environment without overriding variables
// already set. Without envFiles a .env file in the working directory is used
// when present.
func Load(path string, envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		err := godotenv.Load()
		if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	for env, dst := range map[string]*string{
		EnvRegion:    &c.AWS.Region,
		EnvAccessKey: &c.AWS.AccessKey,
		EnvSecretKey: &c.AWS.SecretKey,
		EnvTable:     &c.AWS.Table,
		EnvEndpoint:  &c.AWS.Endpoint,
		EnvZone:      &c.Zone.Name,
		EnvSync:      &c.Zone.Sync,
		EnvLogLevel:  &c.LogLevel,
	} {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(EnvPersistence); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.NewValidationError(EnvPersistence, fmt.Sprintf("invalid boolean %q", v))
		}
		c.Zone.Persistence = b
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	return nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return errors.NewValidationError(first.Namespace(),
			fmt.Sprintf("failed %q check (value %q)", first.Tag(), fmt.Sprint(first.Value())))
	}
	return fmt.Errorf("config validation failed: %w", err)
}

// ZoneConfig returns the zone settings.
func (c *Config) ZoneConfig() zone.Config {
	return zone.Config{
		Name:               c.Zone.Name,
		SyncProperty:       zone.SyncProperty(c.Zone.Sync),
		AccessProperty:     zone.AccessProperty(c.Zone.Access),
		PersistenceEnabled: c.Zone.Persistence,
	}
}

// ClientConfig returns the DynamoDB client settings.
func (c *Config) ClientConfig() ddb.ClientConfig {
	return ddb.ClientConfig{
		AccessKey: c.AWS.AccessKey,
		SecretKey: c.AWS.SecretKey,
		Region:    c.AWS.Region,
		Endpoint:  c.AWS.Endpoint,
	}
}

// Level returns the slog level for LogLevel.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a text logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}
