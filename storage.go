/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package cloudchat

import (
	"fmt"
	"sort"
	"sync"

	"github.com/fstranieri/cloudchat/errors"
	"github.com/fstranieri/cloudchat/objecttype"
)

// Storage holds one datastore per declared object type. Only the object types
// listed in its descriptor can be registered. It is safe for concurrent use.
type Storage struct {
	info objecttype.Info

	mu     sync.RWMutex
	stores map[objecttype.TypeID]any
}

// NewStorage creates an empty Storage for the given descriptor.
func NewStorage(info objecttype.Info) (*Storage, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return &Storage{
		info:   info.Clone(),
		stores: make(map[objecttype.TypeID]any, len(info.ObjectTypes)),
	}, nil
}

// Info returns the descriptor the storage was created with.
func (s *Storage) Info() objecttype.Info {
	return s.info.Clone()
}

// Register stores ds under the object type id.
func (s *Storage) Register(id objecttype.TypeID, ds any) error {
	if ds == nil {
		return errors.NewValidationError("datastore", fmt.Sprintf("nil datastore for %q", id))
	}
	if !s.info.Contains(id) {
		return errors.NewUnknownObjectTypeError(string(id))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.stores[id]; exists {
		return errors.NewAlreadyExistsError("datastore", string(id))
	}
	s.stores[id] = ds
	return nil
}

// Get returns the datastore registered under id. The caller type-asserts it;
// GetDataStore does that for a model type.
func (s *Storage) Get(id objecttype.TypeID) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds, exists := s.stores[id]
	if !exists {
		if !s.info.Contains(id) {
			return nil, errors.NewUnknownObjectTypeError(string(id))
		}
		return nil, errors.NewNotFoundError("datastore", string(id))
	}
	return ds, nil
}

// Registered returns the object types that have a datastore, sorted.
func (s *Storage) Registered() []objecttype.TypeID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]objecttype.TypeID, 0, len(s.stores))
	for id := range s.stores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Missing returns the declared object types that have no datastore yet, in
// declaration order.
func (s *Storage) Missing() []objecttype.TypeID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var missing []objecttype.TypeID
	for _, id := range s.info.ObjectTypes {
		if _, ok := s.stores[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
