/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package zone

import (
	"fmt"

	"github.com/fstranieri/cloudchat/errors"
)

// SyncProperty selects where zone data lives.
type SyncProperty string

const (
	SyncCloudCache SyncProperty = "cloud_cache"
	SyncCloudOnly  SyncProperty = "cloud_only"
	SyncLocalOnly  SyncProperty = "local_only"
)

// AccessProperty selects who may read the zone.
type AccessProperty string

const (
	AccessPublic AccessProperty = "public"
)

// DefaultName is the zone the chat application opens.
const DefaultName = "ChatDemo"

// Config describes a zone to open.
type Config struct {
	Name               string
	SyncProperty       SyncProperty
	AccessProperty     AccessProperty
	PersistenceEnabled bool
}

// DefaultConfig returns the configuration the chat application uses.
func DefaultConfig() Config {
	return Config{
		Name:               DefaultName,
		SyncProperty:       SyncCloudCache,
		AccessProperty:     AccessPublic,
		PersistenceEnabled: true,
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.Name == "" {
		return errors.NewValidationError("name", "zone name is required")
	}
	switch c.SyncProperty {
	case SyncCloudCache, SyncCloudOnly, SyncLocalOnly:
	default:
		return errors.NewValidationError("syncProperty", fmt.Sprintf("unsupported value %q", c.SyncProperty))
	}
	if c.AccessProperty != AccessPublic {
		return errors.NewValidationError("accessProperty", fmt.Sprintf("unsupported value %q", c.AccessProperty))
	}
	return nil
}
