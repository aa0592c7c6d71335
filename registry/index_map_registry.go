/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"

	"github.com/fstranieri/cloudchat/objecttype"
)

// entry is what the registry knows about a Go type: its DynamoDB index map and the object type it persists as.
type entry struct {
	indexMap   map[string]string
	objectType objecttype.TypeID
}

var (
	indexMapRegistry = make(map[reflect.Type]entry)
	mu               sync.RWMutex
)

// RegisterIndexMap associates a Go type T with a given DynamoDB index map (PK, SK, etc.).
func RegisterIndexMap[T any](idxMap map[string]string) {
	t := typeOf[T]()

	mu.Lock()
	defer mu.Unlock()
	e := indexMapRegistry[t]
	e.indexMap = copyMap(idxMap)
	indexMapRegistry[t] = e
}

// GetIndexMap retrieves a copy of the indexMap for type T, if any.
func GetIndexMap[T any]() (map[string]string, bool) {
	t := typeOf[T]()

	mu.RLock()
	defer mu.RUnlock()
	e, ok := indexMapRegistry[t]
	if !ok || e.indexMap == nil {
		return nil, false
	}
	return copyMap(e.indexMap), true
}

// RegisterObjectType records the object type identifier that values of T are stored under.
// It is written to each item as the EntityType attribute.
func RegisterObjectType[T any](objectType objecttype.TypeID) {
	t := typeOf[T]()

	mu.Lock()
	defer mu.Unlock()
	e := indexMapRegistry[t]
	e.objectType = objectType
	indexMapRegistry[t] = e
}

// ObjectTypeOf returns the object type identifier registered for T.
func ObjectTypeOf[T any]() (objecttype.TypeID, bool) {
	t := typeOf[T]()

	mu.RLock()
	defer mu.RUnlock()
	e, ok := indexMapRegistry[t]
	if !ok || e.objectType == "" {
		return "", false
	}
	return e.objectType, true
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
