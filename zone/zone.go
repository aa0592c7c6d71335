/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package zone

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fstranieri/cloudchat/errors"
	"github.com/fstranieri/cloudchat/objecttype"
	"github.com/fstranieri/cloudchat/registry"
)

// State is the connection state of a zone.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateConnectionFailed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateConnectionFailed:
		return "connection failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// SchemaRegistrar stores object type descriptors per zone. ddb.SchemaStore and
// mock.SchemaStore implement it.
type SchemaRegistrar interface {
	CreateObjectType(ctx context.Context, zone string, info objecttype.Info) error
}

const subscriberBuffer = 8

// Zone is a cloud database zone. It is safe for concurrent use.
type Zone struct {
	cfg       Config
	registrar SchemaRegistrar
	logger    *slog.Logger

	mu      sync.RWMutex
	info    *objecttype.Info
	state   State
	err     error
	subs    map[int]chan State
	nextSub int
	// gen counts Open and Close calls; a registrar result only applies
	// while gen still matches the attempt that started it.
	gen uint64
}

// New creates a disconnected zone.
func New(cfg Config, registrar SchemaRegistrar, logger *slog.Logger) (*Zone, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if registrar == nil {
		return nil, errors.NewValidationError("registrar", "schema registrar is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Zone{
		cfg:       cfg,
		registrar: registrar,
		logger:    logger.With("zone", cfg.Name),
		subs:      make(map[int]chan State),
	}, nil
}

// Name returns the zone name.
func (z *Zone) Name() string {
	return z.cfg.Name
}

// Config returns the zone configuration.
func (z *Zone) Config() Config {
	return z.cfg
}

// CreateObjectType declares the object types of the zone. It must be called
// before Open; every declared type needs a registered unmarshal function.
func (z *Zone) CreateObjectType(info objecttype.Info) error {
	if err := info.Validate(); err != nil {
		return err
	}
	if err := registry.CheckRegistered(info); err != nil {
		return err
	}

	z.mu.Lock()
	defer z.mu.Unlock()
	if z.state == StateConnecting || z.state == StateConnected {
		return errors.NewValidationError("objectTypes", "cannot change object types of an open zone")
	}
	c := info.Clone()
	z.info = &c
	return nil
}

// ObjectTypeInfo returns the declared descriptor, if any.
func (z *Zone) ObjectTypeInfo() (objecttype.Info, bool) {
	z.mu.RLock()
	defer z.mu.RUnlock()
	if z.info == nil {
		return objecttype.Info{}, false
	}
	return z.info.Clone(), true
}

// Open registers the declared object types with the backend and connects the zone.
// Opening a connected zone is a no-op. On failure the zone is left in
// StateConnectionFailed and Open may be retried.
func (z *Zone) Open(ctx context.Context) error {
	z.mu.Lock()
	switch {
	case z.state == StateConnected:
		z.mu.Unlock()
		return nil
	case z.state == StateConnecting:
		z.mu.Unlock()
		return errors.NewZoneStateError(z.cfg.Name, StateConnecting.String())
	case z.info == nil:
		z.mu.Unlock()
		return errors.NewValidationError("objectTypes", "no object types declared; call CreateObjectType first")
	}
	info := z.info.Clone()
	z.err = nil
	z.gen++
	attempt := z.gen
	z.setStateLocked(StateConnecting)
	z.mu.Unlock()

	z.logger.Info("opening zone", "sync", z.cfg.SyncProperty, "persistence", z.cfg.PersistenceEnabled)
	err := z.registrar.CreateObjectType(ctx, z.cfg.Name, info)

	z.mu.Lock()
	defer z.mu.Unlock()

	if z.gen != attempt {
		// Closed or reopened while connecting.
		z.logger.Debug("discarding stale open result", "error", err)
		return errors.NewZoneStateError(z.cfg.Name, z.state.String())
	}
	if err != nil {
		z.err = err
		z.setStateLocked(StateConnectionFailed)
		z.logger.Error("failed to open zone", "error", err)
		return fmt.Errorf("open zone %q: %w", z.cfg.Name, err)
	}
	z.setStateLocked(StateConnected)
	z.logger.Info("zone connected", "object_type_version", info.ObjectTypeVersion)
	return nil
}

// Close disconnects the zone. Declared object types are kept for a later Open.
func (z *Zone) Close() {
	z.mu.Lock()
	defer z.mu.Unlock()
	if z.state == StateDisconnected {
		return
	}
	z.gen++
	z.err = nil
	z.setStateLocked(StateDisconnected)
	z.logger.Info("zone closed")
}

// State returns the current connection state.
func (z *Zone) State() State {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.state
}

// Err returns the error that put the zone in StateConnectionFailed.
func (z *Zone) Err() error {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.err
}

// Ready returns nil when the zone is connected and a ZoneStateError otherwise.
func (z *Zone) Ready() error {
	z.mu.RLock()
	defer z.mu.RUnlock()
	if z.state == StateConnected {
		return nil
	}
	return errors.NewZoneStateError(z.cfg.Name, z.state.String())
}

// Subscribe returns a channel receiving the current state followed by every
// state change, and a function that cancels the subscription and closes the
// channel. A subscriber that falls behind loses the oldest pending states.
func (z *Zone) Subscribe() (<-chan State, func()) {
	z.mu.Lock()
	defer z.mu.Unlock()

	id := z.nextSub
	z.nextSub++
	ch := make(chan State, subscriberBuffer)
	ch <- z.state
	z.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			z.mu.Lock()
			defer z.mu.Unlock()
			delete(z.subs, id)
			close(ch)
		})
	}
}

func (z *Zone) setStateLocked(s State) {
	z.state = s
	for _, ch := range z.subs {
		select {
		case ch <- s:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}
