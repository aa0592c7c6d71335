/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	storeerrors "github.com/fstranieri/cloudchat/errors"
	"github.com/fstranieri/cloudchat/objecttype"
)

// Key of the item holding the object type descriptor for a zone.
const schemaKeyPrefix = "OBJECTTYPES#"

// SchemaStore keeps one object type descriptor per zone in the table and negotiates
// client descriptors against it.
type SchemaStore struct {
	client    Client
	tableName string
	logger    *slog.Logger
}

// NewSchemaStore creates a SchemaStore on the given table.
func NewSchemaStore(client Client, tableName string, logger *slog.Logger) *SchemaStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SchemaStore{client: client, tableName: tableName, logger: logger}
}

func schemaKey(zone string) map[string]types.AttributeValue {
	k := schemaKeyPrefix + zone
	return map[string]types.AttributeValue{
		AttrPK: &types.AttributeValueMemberS{Value: k},
		AttrSK: &types.AttributeValueMemberS{Value: k},
	}
}

// RemoteObjectTypeInfo returns the descriptor stored for zone.
// It returns a NotFoundError if none was registered yet.
func (s *SchemaStore) RemoteObjectTypeInfo(ctx context.Context, zone string) (objecttype.Info, error) {
	out, err := s.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:      &s.tableName,
		Key:            schemaKey(zone),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return objecttype.Info{}, fmt.Errorf("GetItem error: %w", err)
	}
	if len(out.Item) == 0 {
		return objecttype.Info{}, storeerrors.NewNotFoundError("object type descriptor", zone)
	}

	var info objecttype.Info
	if err := attributevalue.UnmarshalMap(out.Item, &info); err != nil {
		return objecttype.Info{}, fmt.Errorf("failed to unmarshal object type descriptor: %w", err)
	}
	return info, nil
}

// CreateObjectType registers info for zone. A descriptor already stored with a
// newer object type version, or another format version, is a SchemaMismatchError.
// Registering the same or a newer version overwrites the stored descriptor.
func (s *SchemaStore) CreateObjectType(ctx context.Context, zone string, info objecttype.Info) error {
	if err := info.Validate(); err != nil {
		return err
	}

	remote, err := s.RemoteObjectTypeInfo(ctx, zone)
	switch {
	case err == nil:
		if err := info.Compatible(remote); err != nil {
			return err
		}
	case storeerrors.IsNotFound(err):
	default:
		return err
	}

	item, err := attributevalue.MarshalMap(info)
	if err != nil {
		return fmt.Errorf("failed to marshal object type descriptor: %w", err)
	}
	for k, v := range schemaKey(zone) {
		item[k] = v
	}
	item[AttrEntityType] = &types.AttributeValueMemberS{Value: "object_type_info"}

	cond := "attribute_not_exists(PK) OR (FormatVersion = :fv AND ObjectTypeVersion <= :otv)"
	_, err = s.client.PutItem(ctx, &sdk.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: &cond,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":fv":  &types.AttributeValueMemberN{Value: strconv.Itoa(info.FormatVersion)},
			":otv": &types.AttributeValueMemberN{Value: strconv.Itoa(info.ObjectTypeVersion)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			// Another client registered a newer descriptor between our read and write.
			return storeerrors.NewSchemaMismatchError(info.String(), "newer descriptor registered concurrently")
		}
		return fmt.Errorf("PutItem failed: %w", err)
	}

	s.logger.Info("object types registered", "zone", zone,
		"format_version", info.FormatVersion,
		"object_type_version", info.ObjectTypeVersion,
		"object_types", info.Names())
	return nil
}
