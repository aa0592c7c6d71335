/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package cloudchat

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/fstranieri/cloudchat/datastore"
	"github.com/fstranieri/cloudchat/datastore/ddb"
	"github.com/fstranieri/cloudchat/errors"
	"github.com/fstranieri/cloudchat/models"
	"github.com/fstranieri/cloudchat/objecttype"
	"github.com/fstranieri/cloudchat/registry"
)

func objectTypeFor[T any]() (objecttype.TypeID, error) {
	id, ok := registry.ObjectTypeOf[T]()
	if !ok {
		return "", errors.NewUnknownObjectTypeError(reflect.TypeOf((*T)(nil)).Elem().String())
	}
	return id, nil
}

// RegisterDataStore registers ds under the object type registered for T.
func RegisterDataStore[T any](s *Storage, ds datastore.DataStore[T]) error {
	id, err := objectTypeFor[T]()
	if err != nil {
		return err
	}
	return s.Register(id, ds)
}

// GetDataStore returns the datastore registered for T.
func GetDataStore[T any](s *Storage) (datastore.DataStore[T], error) {
	id, err := objectTypeFor[T]()
	if err != nil {
		return nil, err
	}
	ds, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	typed, ok := ds.(datastore.DataStore[T])
	if !ok {
		return nil, fmt.Errorf("datastore for %q has type %T", id, ds)
	}
	return typed, nil
}

// GetIndexedDataStore returns the datastore registered for T when it also
// serves GSI1 reads.
func GetIndexedDataStore[T any](s *Storage) (datastore.IndexedDataStore[T], error) {
	ds, err := GetDataStore[T](s)
	if err != nil {
		return nil, err
	}
	indexed, ok := ds.(datastore.IndexedDataStore[T])
	if !ok {
		return nil, errors.NewValidationError("datastore", fmt.Sprintf("%T does not support index queries", ds))
	}
	return indexed, nil
}

// NewDynamoDBStorage creates a Storage backed by one DynamoDB table, with a
// datastore for each of the chat object types.
func NewDynamoDBStorage(client ddb.Client, tableName string, logger *slog.Logger) (*Storage, error) {
	s, err := NewStorage(models.GetObjectTypeInfo())
	if err != nil {
		return nil, err
	}
	if err := registerDynamoDB[models.UserPushTokens](s, client, tableName, logger); err != nil {
		return nil, err
	}
	if err := registerDynamoDB[models.Messages](s, client, tableName, logger); err != nil {
		return nil, err
	}
	if err := registerDynamoDB[models.Users](s, client, tableName, logger); err != nil {
		return nil, err
	}
	if err := registerDynamoDB[models.FullMessage](s, client, tableName, logger); err != nil {
		return nil, err
	}
	return s, nil
}

func registerDynamoDB[T any](s *Storage, client ddb.Client, tableName string, logger *slog.Logger) error {
	ds, err := ddb.NewDynamodbDataStore[T](client, tableName, logger)
	if err != nil {
		return err
	}
	return RegisterDataStore[T](s, ds)
}
