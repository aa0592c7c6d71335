/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package zone_test

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fstranieri/cloudchat/datastore/mock"
	"github.com/fstranieri/cloudchat/errors"
	"github.com/fstranieri/cloudchat/models"
	"github.com/fstranieri/cloudchat/objecttype"
	"github.com/fstranieri/cloudchat/zone"
)

func newZone(t *testing.T, store zone.SchemaRegistrar) *zone.Zone {
	t.Helper()
	z, err := zone.New(zone.DefaultConfig(), store, nil)
	require.NoError(t, err)
	return z
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*zone.Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*zone.Config) {}},
		{name: "cloud only", mutate: func(c *zone.Config) { c.SyncProperty = zone.SyncCloudOnly }},
		{name: "empty name", mutate: func(c *zone.Config) { c.Name = "" }, wantErr: true},
		{name: "unknown sync", mutate: func(c *zone.Config) { c.SyncProperty = "eventual" }, wantErr: true},
		{name: "unknown access", mutate: func(c *zone.Config) { c.AccessProperty = "private" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := zone.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := zone.DefaultConfig()
	assert.Equal(t, "ChatDemo", cfg.Name)
	assert.Equal(t, zone.SyncCloudCache, cfg.SyncProperty)
	assert.Equal(t, zone.AccessPublic, cfg.AccessProperty)
	assert.True(t, cfg.PersistenceEnabled)
}

func TestNewRequiresRegistrar(t *testing.T) {
	_, err := zone.New(zone.DefaultConfig(), nil, nil)
	assert.True(t, errors.IsValidationError(err))
}

func TestOpenLifecycle(t *testing.T) {
	ctx := context.Background()
	store := mock.NewSchemaStore()
	z := newZone(t, store)

	assert.Equal(t, zone.StateDisconnected, z.State())
	assert.True(t, errors.IsZoneNotOpen(z.Ready()))

	t.Run("open without object types", func(t *testing.T) {
		err := z.Open(ctx)
		assert.True(t, stderrors.Is(err, errors.ErrInvalidInput))
		assert.Equal(t, zone.StateDisconnected, z.State())
	})

	require.NoError(t, z.CreateObjectType(models.GetObjectTypeInfo()))
	info, ok := z.ObjectTypeInfo()
	require.True(t, ok)
	assert.True(t, info.SameTypes(models.GetObjectTypeInfo()))

	require.NoError(t, z.Open(ctx))
	assert.Equal(t, zone.StateConnected, z.State())
	assert.NoError(t, z.Ready())
	assert.NoError(t, z.Err())

	remote, err := store.RemoteObjectTypeInfo(ctx, zone.DefaultName)
	require.NoError(t, err)
	assert.Equal(t, models.ObjectTypeVersion, remote.ObjectTypeVersion)

	// Second open is a no-op.
	require.NoError(t, z.Open(ctx))
	assert.Equal(t, 1, store.Calls())

	t.Run("object types are frozen while open", func(t *testing.T) {
		err := z.CreateObjectType(models.GetObjectTypeInfo())
		assert.True(t, errors.IsValidationError(err))
	})

	z.Close()
	assert.Equal(t, zone.StateDisconnected, z.State())
	assert.True(t, errors.IsZoneNotOpen(z.Ready()))

	require.NoError(t, z.Open(ctx))
	assert.Equal(t, zone.StateConnected, z.State())
}

func TestOpenFailure(t *testing.T) {
	ctx := context.Background()
	boom := stderrors.New("table unavailable")
	z := newZone(t, mock.NewSchemaStore().WithCreateError(boom))
	require.NoError(t, z.CreateObjectType(models.GetObjectTypeInfo()))

	err := z.Open(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, zone.StateConnectionFailed, z.State())
	assert.ErrorIs(t, z.Err(), boom)
	assert.True(t, errors.IsZoneNotOpen(z.Ready()))
}

func TestOpenSchemaMismatch(t *testing.T) {
	ctx := context.Background()
	store := mock.NewSchemaStore()

	newer := models.GetObjectTypeInfo()
	newer.ObjectTypeVersion++
	require.NoError(t, store.CreateObjectType(ctx, zone.DefaultName, newer))

	z := newZone(t, store)
	require.NoError(t, z.CreateObjectType(models.GetObjectTypeInfo()))

	err := z.Open(ctx)
	assert.True(t, errors.IsSchemaMismatch(err))
	assert.Equal(t, zone.StateConnectionFailed, z.State())
}

func TestCreateObjectTypeRejectsInvalid(t *testing.T) {
	z := newZone(t, mock.NewSchemaStore())

	tests := []struct {
		name  string
		info  objecttype.Info
		check func(error) bool
	}{
		{
			name:  "empty",
			info:  objecttype.Info{FormatVersion: 2, ObjectTypeVersion: 15},
			check: errors.IsValidationError,
		},
		{
			name: "duplicate",
			info: objecttype.Info{FormatVersion: 2, ObjectTypeVersion: 15,
				ObjectTypes: []objecttype.TypeID{models.TypeUsers, models.TypeUsers}},
			check: errors.IsValidationError,
		},
		{
			name: "unregistered",
			info: objecttype.Info{FormatVersion: 2, ObjectTypeVersion: 15,
				ObjectTypes: []objecttype.TypeID{"polls"}},
			check: errors.IsUnknownObjectType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := z.CreateObjectType(tt.info)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}

	_, ok := z.ObjectTypeInfo()
	assert.False(t, ok)
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	z := newZone(t, mock.NewSchemaStore())
	require.NoError(t, z.CreateObjectType(models.GetObjectTypeInfo()))

	states, cancel := z.Subscribe()

	require.NoError(t, z.Open(ctx))
	z.Close()

	var got []zone.State
	timeout := time.After(time.Second)
	for len(got) < 4 {
		select {
		case s := <-states:
			got = append(got, s)
		case <-timeout:
			t.Fatalf("timed out, got %v", got)
		}
	}
	assert.Equal(t, []zone.State{
		zone.StateDisconnected,
		zone.StateConnecting,
		zone.StateConnected,
		zone.StateDisconnected,
	}, got)

	cancel()
	cancel()
	_, open := <-states
	assert.False(t, open)

	// Changes after cancel do not panic on the closed channel.
	require.NoError(t, z.Open(ctx))
}

func TestConcurrentOpen(t *testing.T) {
	ctx := context.Background()
	store := mock.NewSchemaStore()
	z := newZone(t, store)
	require.NoError(t, z.CreateObjectType(models.GetObjectTypeInfo()))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := z.Open(ctx); err != nil {
				assert.True(t, errors.IsZoneNotOpen(err), "unexpected error: %v", err)
			}
			_ = z.State()
		}()
	}
	wg.Wait()

	assert.Equal(t, zone.StateConnected, z.State())
	assert.Equal(t, 1, store.Calls())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "connected", zone.StateConnected.String())
	assert.Equal(t, "connection failed", zone.StateConnectionFailed.String())
	assert.Equal(t, "State(9)", zone.State(9).String())
}

// gatedRegistrar blocks every CreateObjectType call until its result is sent
// on the channel published through calls.
type gatedRegistrar struct {
	calls chan chan error
}

func newGatedRegistrar() *gatedRegistrar {
	return &gatedRegistrar{calls: make(chan chan error, 2)}
}

func (g *gatedRegistrar) CreateObjectType(ctx context.Context, _ string, _ objecttype.Info) error {
	release := make(chan error)
	g.calls <- release
	select {
	case err := <-release:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func nextCall(t *testing.T, g *gatedRegistrar) chan error {
	t.Helper()
	select {
	case release := <-g.calls:
		return release
	case <-time.After(time.Second):
		t.Fatal("registrar was not called")
		return nil
	}
}

func TestCloseWhileConnecting(t *testing.T) {
	ctx := context.Background()

	// open starts Open in the background and returns its pending result and
	// the channel that releases its registrar call.
	open := func(t *testing.T, z *zone.Zone, reg *gatedRegistrar) (<-chan error, chan error) {
		t.Helper()
		done := make(chan error, 1)
		go func() { done <- z.Open(ctx) }()
		return done, nextCall(t, reg)
	}

	t.Run("StaleSuccessIgnoredAfterReopen", func(t *testing.T) {
		reg := newGatedRegistrar()
		z := newZone(t, reg)
		require.NoError(t, z.CreateObjectType(models.GetObjectTypeInfo()))

		first, releaseFirst := open(t, z, reg)
		z.Close()
		second, releaseSecond := open(t, z, reg)

		releaseFirst <- nil
		err := <-first
		assert.True(t, errors.IsZoneNotOpen(err), "unexpected error: %v", err)
		assert.Equal(t, zone.StateConnecting, z.State())

		releaseSecond <- nil
		require.NoError(t, <-second)
		assert.Equal(t, zone.StateConnected, z.State())
	})

	t.Run("StaleFailureIgnoredAfterReopen", func(t *testing.T) {
		reg := newGatedRegistrar()
		z := newZone(t, reg)
		require.NoError(t, z.CreateObjectType(models.GetObjectTypeInfo()))

		first, releaseFirst := open(t, z, reg)
		z.Close()
		second, releaseSecond := open(t, z, reg)

		releaseFirst <- stderrors.New("table unavailable")
		assert.True(t, errors.IsZoneNotOpen(<-first))
		assert.Equal(t, zone.StateConnecting, z.State())
		assert.NoError(t, z.Err())

		releaseSecond <- nil
		require.NoError(t, <-second)
		assert.Equal(t, zone.StateConnected, z.State())
	})

	t.Run("ClosedStaysDisconnected", func(t *testing.T) {
		reg := newGatedRegistrar()
		z := newZone(t, reg)
		require.NoError(t, z.CreateObjectType(models.GetObjectTypeInfo()))

		first, releaseFirst := open(t, z, reg)
		z.Close()

		releaseFirst <- nil
		assert.True(t, errors.IsZoneNotOpen(<-first))
		assert.Equal(t, zone.StateDisconnected, z.State())
	})
}
