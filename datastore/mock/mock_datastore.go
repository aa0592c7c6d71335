/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

// Package mock provides in-memory implementations of the datastore interfaces for testing
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fstranieri/cloudchat/errors"
	"github.com/fstranieri/cloudchat/storagemodels"
)

// Keyed is implemented by entities that know their own store key.
type Keyed interface {
	Key() string
}

// IndexFunc places an entity in a GSI1 partition and, for timelines, at a point in time.
type IndexFunc[T any] func(entity T) (partition string, at time.Time)

// DataStore is a mock implementation of datastore.IndexedDataStore[T] for testing
type DataStore[T any] struct {
	mu          sync.RWMutex
	data        map[string]T
	queryFunc   func(ctx context.Context, params *storagemodels.QueryParams) ([]T, error)
	getKeyFunc  func(entity T) string
	indexFunc   IndexFunc[T]
	putError    error
	deleteError error
	updateError error
	updates     []map[string]interface{}
}

// New creates a new mock DataStore
func New[T any]() *DataStore[T] {
	return &DataStore[T]{
		data: make(map[string]T),
	}
}

// WithGetKeyFunc sets a custom function to extract keys from entities
func (m *DataStore[T]) WithGetKeyFunc(f func(T) string) *DataStore[T] {
	m.getKeyFunc = f
	return m
}

// WithIndexFunc sets the function used by QueryByGSI1PK and StreamTimeline.
// Without one, every entity belongs to every partition at the zero time.
func (m *DataStore[T]) WithIndexFunc(f IndexFunc[T]) *DataStore[T] {
	m.indexFunc = f
	return m
}

// WithQueryFunc sets a custom query function for testing
func (m *DataStore[T]) WithQueryFunc(f func(ctx context.Context, params *storagemodels.QueryParams) ([]T, error)) *DataStore[T] {
	m.queryFunc = f
	return m
}

// WithPutError makes Put operations return an error
func (m *DataStore[T]) WithPutError(err error) *DataStore[T] {
	m.putError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore[T]) WithDeleteError(err error) *DataStore[T] {
	m.deleteError = err
	return m
}

// WithUpdateError makes UpdateWithCondition operations return an error
func (m *DataStore[T]) WithUpdateError(err error) *DataStore[T] {
	m.updateError = err
	return m
}

// GetOne retrieves an entity by key
func (m *DataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if entity, exists := m.data[key]; exists {
		return &entity, nil
	}

	var zero T
	return nil, errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
}

// Put stores an entity, replacing any entity with the same key
func (m *DataStore[T]) Put(ctx context.Context, entity T) error {
	if m.putError != nil {
		return m.putError
	}

	key := m.extractKey(entity)
	if key == "" {
		return errors.NewValidationError("key", "unable to extract key from entity")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = entity
	return nil
}

// UpdateWithCondition records the updates for an existing string key. The condition is not evaluated.
func (m *DataStore[T]) UpdateWithCondition(ctx context.Context, keyInput any, updates map[string]interface{}, condition string) error {
	if m.updateError != nil {
		return m.updateError
	}

	key, ok := keyInput.(string)
	if !ok {
		return errors.NewValidationError("keyInput", "must be a string for mock")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		return errors.NewConditionFailedError("update", condition)
	}
	m.updates = append(m.updates, updates)
	return nil
}

// Query executes a query. Without a query func it returns every entity ordered by key.
func (m *DataStore[T]) Query(ctx context.Context, params *storagemodels.QueryParams) ([]T, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, params)
	}
	return m.sorted(), nil
}

// Stream delivers the result of Query on a channel
func (m *DataStore[T]) Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.ApplyStreamOptions(opts...)
	resultChan := make(chan storagemodels.StreamResult[T], options.BufferSize)

	go func() {
		defer close(resultChan)

		items, err := m.Query(ctx, params)
		if err != nil {
			select {
			case <-ctx.Done():
			case resultChan <- storagemodels.StreamResult[T]{Error: err}:
			}
			return
		}

		for i, v := range items {
			select {
			case <-ctx.Done():
				return
			case resultChan <- storagemodels.StreamResult[T]{
				Item: v,
				Meta: storagemodels.StreamMeta{
					Index:      int64(i),
					PageNumber: 1,
				},
			}:
			}
		}
	}()

	return resultChan
}

// QueryByGSI1PK returns the entities of partition pkValue ordered by time, then key.
func (m *DataStore[T]) QueryByGSI1PK(ctx context.Context, pkValue string) ([]T, error) {
	return m.partition(pkValue, time.Time{}, time.Time{}), nil
}

// StreamTimeline streams the entities of partition pkValue placed within [from, to].
func (m *DataStore[T]) StreamTimeline(ctx context.Context, pkValue string, from, to time.Time, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.ApplyStreamOptions(opts...)
	resultChan := make(chan storagemodels.StreamResult[T], options.BufferSize)
	items := m.partition(pkValue, from, to)

	go func() {
		defer close(resultChan)
		for i, v := range items {
			select {
			case <-ctx.Done():
				return
			case resultChan <- storagemodels.StreamResult[T]{
				Item: v,
				Meta: storagemodels.StreamMeta{Index: int64(i), PageNumber: 1},
			}:
			}
		}
	}()

	return resultChan
}

// Delete removes an entity by key
func (m *DataStore[T]) Delete(ctx context.Context, key string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		var zero T
		return errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
	}

	delete(m.data, key)
	return nil
}

// Helper methods for testing

// SetData directly sets the internal data map (for testing)
func (m *DataStore[T]) SetData(data map[string]T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
}

// GetData returns a copy of the internal data map (for testing)
func (m *DataStore[T]) GetData() map[string]T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]T, len(m.data))
	for k, v := range m.data {
		result[k] = v
	}
	return result
}

// Updates returns the update maps accepted so far
func (m *DataStore[T]) Updates() []map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]map[string]interface{}(nil), m.updates...)
}

// Count returns the number of stored entities
func (m *DataStore[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all data
func (m *DataStore[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]T)
}

func (m *DataStore[T]) sorted() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m.data[k])
	}
	return out
}

func (m *DataStore[T]) partition(pkValue string, from, to time.Time) []T {
	all := m.sorted()
	if m.indexFunc == nil {
		return all
	}

	type placed struct {
		item T
		at   time.Time
	}
	var in []placed
	for _, item := range all {
		p, at := m.indexFunc(item)
		if p != pkValue {
			continue
		}
		if (!from.IsZero() && at.Before(from)) || (!to.IsZero() && at.After(to)) {
			continue
		}
		in = append(in, placed{item: item, at: at})
	}
	sort.SliceStable(in, func(i, j int) bool { return in[i].at.Before(in[j].at) })

	out := make([]T, 0, len(in))
	for _, p := range in {
		out = append(out, p.item)
	}
	return out
}

// extractKey uses the key func, then the Keyed interface, then the formatted value.
func (m *DataStore[T]) extractKey(entity T) string {
	if m.getKeyFunc != nil {
		return m.getKeyFunc(entity)
	}
	if k, ok := any(entity).(Keyed); ok {
		return k.Key()
	}
	return fmt.Sprintf("key_%v", entity)
}
