/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package registry

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/fstranieri/cloudchat/errors"
	"github.com/fstranieri/cloudchat/objecttype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registryTestRecord struct {
	ID string `dynamodbav:"id"`
}

func noopUnmarshal(item map[string]types.AttributeValue) (interface{}, error) {
	return &registryTestRecord{}, nil
}

func TestRegisterType(t *testing.T) {
	RegisterType("registry_test_record", noopUnmarshal)

	t.Run("Lookup", func(t *testing.T) {
		fn, err := GetUnmarshalFunc("registry_test_record")
		require.NoError(t, err)
		obj, err := fn(nil)
		require.NoError(t, err)
		assert.IsType(t, &registryTestRecord{}, obj)
		assert.Contains(t, RegisteredTypes(), objecttype.TypeID("registry_test_record"))
	})

	t.Run("DuplicatePanics", func(t *testing.T) {
		assert.Panics(t, func() {
			RegisterType("registry_test_record", noopUnmarshal)
		})
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := GetUnmarshalFunc("registry_test_missing")
		require.Error(t, err)
		assert.True(t, errors.IsUnknownObjectType(err))
	})

	t.Run("CheckRegistered", func(t *testing.T) {
		ok := objecttype.Info{FormatVersion: 1, ObjectTypeVersion: 1, ObjectTypes: []objecttype.TypeID{"registry_test_record"}}
		assert.NoError(t, CheckRegistered(ok))

		missing := objecttype.Info{FormatVersion: 1, ObjectTypeVersion: 1, ObjectTypes: []objecttype.TypeID{"registry_test_record", "registry_test_missing"}}
		err := CheckRegistered(missing)
		assert.True(t, errors.IsUnknownObjectType(err))
	})
}

func TestIndexMapRegistry(t *testing.T) {
	idx := map[string]string{"PK": "REC#{id}", "SK": "REC#{id}"}
	RegisterIndexMap[registryTestRecord](idx)
	RegisterObjectType[registryTestRecord]("registry_test_record")

	got, ok := GetIndexMap[registryTestRecord]()
	require.True(t, ok)
	assert.Equal(t, idx, got)

	// Callers get a copy; mutating it must not leak back into the registry.
	got["PK"] = "changed"
	again, _ := GetIndexMap[registryTestRecord]()
	assert.Equal(t, "REC#{id}", again["PK"])

	ot, ok := ObjectTypeOf[registryTestRecord]()
	require.True(t, ok)
	assert.Equal(t, objecttype.TypeID("registry_test_record"), ot)

	_, ok = GetIndexMap[struct{ Other int }]()
	assert.False(t, ok)
	_, ok = ObjectTypeOf[struct{ Other int }]()
	assert.False(t, ok)
}
