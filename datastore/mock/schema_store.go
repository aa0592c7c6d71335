/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package mock

import (
	"context"
	"sync"

	"github.com/fstranieri/cloudchat/errors"
	"github.com/fstranieri/cloudchat/objecttype"
)

// SchemaStore is an in-memory object type registrar with the same negotiation
// rules as ddb.SchemaStore.
type SchemaStore struct {
	mu        sync.Mutex
	zones     map[string]objecttype.Info
	createErr error
	calls     int
}

// NewSchemaStore creates an empty SchemaStore
func NewSchemaStore() *SchemaStore {
	return &SchemaStore{zones: make(map[string]objecttype.Info)}
}

// WithCreateError makes CreateObjectType fail with err
func (s *SchemaStore) WithCreateError(err error) *SchemaStore {
	s.createErr = err
	return s
}

// CreateObjectType registers info for zone
func (s *SchemaStore) CreateObjectType(ctx context.Context, zone string, info objecttype.Info) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.createErr != nil {
		return s.createErr
	}
	if err := info.Validate(); err != nil {
		return err
	}
	if remote, ok := s.zones[zone]; ok {
		if err := info.Compatible(remote); err != nil {
			return err
		}
	}
	s.zones[zone] = info.Clone()
	return nil
}

// RemoteObjectTypeInfo returns the descriptor registered for zone
func (s *SchemaStore) RemoteObjectTypeInfo(ctx context.Context, zone string) (objecttype.Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.zones[zone]
	if !ok {
		return objecttype.Info{}, errors.NewNotFoundError("object type descriptor", zone)
	}
	return info.Clone(), nil
}

// Calls returns how many times CreateObjectType was invoked
func (s *SchemaStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
