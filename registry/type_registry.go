/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/fstranieri/cloudchat/errors"
	"github.com/fstranieri/cloudchat/objecttype"
)

// UnmarshalFunc defines a function that takes a raw DynamoDB item and returns the unmarshaled object.
type UnmarshalFunc func(item map[string]types.AttributeValue) (interface{}, error)

var (
	// typeRegistry holds the mapping from an object type (like "users", "messages") to its unmarshal function.
	typeRegistry = make(map[objecttype.TypeID]UnmarshalFunc)
	typeMu       sync.RWMutex
)

// RegisterType registers an unmarshal function for a given object type.
// If a function is already registered for the type, it panics to prevent accidental overrides.
func RegisterType(objectType objecttype.TypeID, fn UnmarshalFunc) {
	typeMu.Lock()
	defer typeMu.Unlock()

	if _, exists := typeRegistry[objectType]; exists {
		panic(fmt.Sprintf("type registry: object type %q already registered", objectType))
	}
	typeRegistry[objectType] = fn
}

// GetUnmarshalFunc returns the registered unmarshal function for the given object type.
// If no function is registered, it returns an UnknownObjectTypeError.
func GetUnmarshalFunc(objectType objecttype.TypeID) (UnmarshalFunc, error) {
	typeMu.RLock()
	defer typeMu.RUnlock()

	fn, ok := typeRegistry[objectType]
	if !ok {
		return nil, fmt.Errorf("type registry: %w", errors.NewUnknownObjectTypeError(string(objectType)))
	}
	return fn, nil
}

// RegisteredTypes returns every object type with an unmarshal function, sorted by name.
func RegisteredTypes() []objecttype.TypeID {
	typeMu.RLock()
	defer typeMu.RUnlock()

	out := make([]objecttype.TypeID, 0, len(typeRegistry))
	for t := range typeRegistry {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CheckRegistered verifies that every object type declared in info has an unmarshal function.
func CheckRegistered(info objecttype.Info) error {
	typeMu.RLock()
	defer typeMu.RUnlock()

	for _, t := range info.ObjectTypes {
		if _, ok := typeRegistry[t]; !ok {
			return errors.NewUnknownObjectTypeError(string(t))
		}
	}
	return nil
}
