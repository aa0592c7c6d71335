/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package ddb

import (
	"context"
	"testing"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	storeerrors "github.com/fstranieri/cloudchat/errors"
	"github.com/fstranieri/cloudchat/models"
	"github.com/fstranieri/cloudchat/objecttype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staleReadClient serves a fixed item from GetItem, as a read that lost a race
// with another writer would.
type staleReadClient struct {
	*fakeClient
	item map[string]types.AttributeValue
}

func (c *staleReadClient) GetItem(ctx context.Context, in *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	return &sdk.GetItemOutput{Item: c.item}, nil
}

func TestSchemaStore(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	schemas := NewSchemaStore(client, testTable, nil)

	_, err := schemas.RemoteObjectTypeInfo(ctx, "ChatDemo")
	assert.True(t, storeerrors.IsNotFound(err))

	info := models.GetObjectTypeInfo()
	require.NoError(t, schemas.CreateObjectType(ctx, "ChatDemo", info))

	remote, err := schemas.RemoteObjectTypeInfo(ctx, "ChatDemo")
	require.NoError(t, err)
	assert.Equal(t, info, remote)

	t.Run("SameVersionAgain", func(t *testing.T) {
		assert.NoError(t, schemas.CreateObjectType(ctx, "ChatDemo", info))
	})

	t.Run("OlderClientRejected", func(t *testing.T) {
		older := info.Clone()
		older.ObjectTypeVersion = 14
		err := schemas.CreateObjectType(ctx, "ChatDemo", older)
		assert.True(t, storeerrors.IsSchemaMismatch(err), "got %v", err)
	})

	t.Run("NewerClientUpgrades", func(t *testing.T) {
		newer := info.Clone()
		newer.ObjectTypeVersion = 16
		newer.ObjectTypes = append(newer.ObjectTypes, objecttype.TypeID("poll_lunch"))
		require.NoError(t, schemas.CreateObjectType(ctx, "ChatDemo", newer))

		remote, err := schemas.RemoteObjectTypeInfo(ctx, "ChatDemo")
		require.NoError(t, err)
		assert.Equal(t, 16, remote.ObjectTypeVersion)
		assert.True(t, remote.Contains("poll_lunch"))
	})

	t.Run("NewerRegisteredConcurrently", func(t *testing.T) {
		client := newFakeClient()
		schemas := NewSchemaStore(client, testTable, nil)
		require.NoError(t, schemas.CreateObjectType(ctx, "ChatDemo", info))
		stale := client.items[itemKey(schemaKey("ChatDemo"))]
		require.NotNil(t, stale)

		newer := info.Clone()
		newer.ObjectTypeVersion = 16
		require.NoError(t, schemas.CreateObjectType(ctx, "ChatDemo", newer))

		racing := NewSchemaStore(&staleReadClient{fakeClient: client, item: stale}, testTable, nil)
		err := racing.CreateObjectType(ctx, "ChatDemo", info)
		assert.True(t, storeerrors.IsSchemaMismatch(err), "got %v", err)

		remote, err := schemas.RemoteObjectTypeInfo(ctx, "ChatDemo")
		require.NoError(t, err)
		assert.Equal(t, 16, remote.ObjectTypeVersion)
	})

	t.Run("ZonesAreIndependent", func(t *testing.T) {
		assert.NoError(t, schemas.CreateObjectType(ctx, "OtherZone", info))
	})

	t.Run("InvalidDescriptor", func(t *testing.T) {
		err := schemas.CreateObjectType(ctx, "ChatDemo", objecttype.Info{})
		assert.True(t, storeerrors.IsValidationError(err))
	})
}
