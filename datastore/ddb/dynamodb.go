/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	storeerrors "github.com/fstranieri/cloudchat/errors"
	"github.com/fstranieri/cloudchat/registry"
)

// DynamodbDataStore implements datastore.DataStore[T] by using AWS DynamoDB as the underlying data store.
// All object types share one table; the EntityType attribute tells them apart.
type DynamodbDataStore[T any] struct {
	client    Client
	tableName string
	logger    *slog.Logger
}

// NewDynamodbDataStore constructs a new DynamodbDataStore for type T on the given table.
// T must have an index map and an object type in the registry.
func NewDynamodbDataStore[T any](client Client, tableName string, logger *slog.Logger) (*DynamodbDataStore[T], error) {
	if client == nil {
		return nil, storeerrors.NewValidationError("client", "dynamodb client is required")
	}
	if tableName == "" {
		return nil, storeerrors.NewValidationError("tableName", "table name is required")
	}
	if _, ok := registry.GetIndexMap[T](); !ok {
		return nil, fmt.Errorf("%w: %T", storeerrors.ErrNoIndexMap, *new(T))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DynamodbDataStore[T]{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}, nil
}

// TableName returns the table this datastore reads and writes.
func (d *DynamodbDataStore[T]) TableName() string {
	return d.tableName
}

func (d *DynamodbDataStore[T]) indexMap() (map[string]string, error) {
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return nil, fmt.Errorf("%w: %T", storeerrors.ErrNoIndexMap, *new(T))
	}
	return indexMap, nil
}

// keyFor expands a string key into the table's primary key for T.
func (d *DynamodbDataStore[T]) keyFor(key string) (map[string]types.AttributeValue, error) {
	indexMap, err := d.indexMap()
	if err != nil {
		return nil, err
	}
	keyMap, err := buildKeyFromExpanded(expandStringKey(indexMap, key))
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}
	return keyMap, nil
}

// GetOne retrieves a single item from DynamoDB using a string key.
// A missing item is reported as a NotFoundError.
func (d *DynamodbDataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	keyMap, err := d.keyFor(key)
	if err != nil {
		return nil, err
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, storeerrors.NewNotFoundError(d.objectTypeName(), key)
	}

	result := new(T)
	if err := attributevalue.UnmarshalMap(out.Item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// Put upserts the given entity, populating partition/sort keys (and GSI keys) from
// the index map macros and tagging the item with its EntityType.
func (d *DynamodbDataStore[T]) Put(ctx context.Context, entity T) error {
	indexMap, err := d.indexMap()
	if err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	expanded, err := expandMacros(indexMap, entity)
	if err != nil {
		return err
	}
	if _, err := buildKeyFromExpanded(expanded); err != nil {
		return storeerrors.NewValidationError("key", err.Error())
	}

	for k, v := range expanded {
		if v == "" {
			// Sparse GSI: leave the attribute out rather than write an empty key.
			continue
		}
		av[k] = &types.AttributeValueMemberS{Value: v}
	}
	if ot, ok := registry.ObjectTypeOf[T](); ok {
		av[AttrEntityType] = &types.AttributeValueMemberS{Value: string(ot)}
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	d.logger.Debug("item stored", "object_type", d.objectTypeName(), "pk", expanded[AttrPK])
	return nil
}

// Delete removes an item from DynamoDB using a string key.
func (d *DynamodbDataStore[T]) Delete(ctx context.Context, key string) error {
	keyMap, err := d.keyFor(key)
	if err != nil {
		return err
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return fmt.Errorf("%w: %v", storeerrors.NewConditionFailedError("delete", key), err)
		}
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	d.logger.Debug("item deleted", "object_type", d.objectTypeName(), "key", key)
	return nil
}

// UpdateWithCondition applies updates to the item identified by keyInput when condition holds.
// keyInput is either a string key or a value whose fields fill the index map macros.
func (d *DynamodbDataStore[T]) UpdateWithCondition(ctx context.Context, keyInput any, updates map[string]interface{}, condition string) error {
	indexMap, err := d.indexMap()
	if err != nil {
		return err
	}

	var expanded map[string]string
	if s, ok := keyInput.(string); ok {
		expanded = expandStringKey(indexMap, s)
	} else if expanded, err = expandMacros(indexMap, keyInput); err != nil {
		return err
	}
	key, err := buildKeyFromExpanded(expanded)
	if err != nil {
		return fmt.Errorf("failed to build key: %w", err)
	}

	updateExpr, exprAttrNames, exprAttrValues, err := buildUpdateExpression(updates)
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}

	input := &sdk.UpdateItemInput{
		TableName:                 &d.tableName,
		Key:                       key,
		UpdateExpression:          &updateExpr,
		ExpressionAttributeNames:  exprAttrNames,
		ExpressionAttributeValues: exprAttrValues,
		ReturnValues:              types.ReturnValueNone,
	}
	if condition != "" {
		input.ConditionExpression = &condition
	}

	if _, err = d.client.UpdateItem(ctx, input); err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return storeerrors.NewConditionFailedError("update", condition)
		}
		return fmt.Errorf("UpdateWithCondition failed: %w", err)
	}
	return nil
}

// buildUpdateExpression transforms a map of field->value into:
//   - an "update expression" (e.g., "SET #f0 = :v0, #f1 = :v1")
//   - a corresponding map of expression attribute names
//   - a corresponding map of expression attribute values
//
// Fields are emitted in sorted order so the expression is deterministic.
func buildUpdateExpression(updates map[string]interface{}) (string,
	map[string]string,
	map[string]types.AttributeValue,
	error) {

	if len(updates) == 0 {
		return "", nil, nil, storeerrors.NewValidationError("updates", "no updates provided")
	}

	fields := make([]string, 0, len(updates))
	for field := range updates {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	setClauses := make([]string, 0, len(fields))
	exprAttrNames := make(map[string]string, len(fields))
	exprAttrValues := make(map[string]types.AttributeValue, len(fields))

	for i, field := range fields {
		placeholderName := fmt.Sprintf("#f%d", i)
		placeholderValue := fmt.Sprintf(":v%d", i)

		av, err := attributevalue.Marshal(updates[field])
		if err != nil {
			return "", nil, nil, fmt.Errorf("unhandled update value type for field '%s': %w", field, err)
		}

		setClauses = append(setClauses, fmt.Sprintf("%s = %s", placeholderName, placeholderValue))
		exprAttrNames[placeholderName] = field
		exprAttrValues[placeholderValue] = av
	}

	return "SET " + strings.Join(setClauses, ", "), exprAttrNames, exprAttrValues, nil
}

func (d *DynamodbDataStore[T]) objectTypeName() string {
	if ot, ok := registry.ObjectTypeOf[T](); ok {
		return string(ot)
	}
	return fmt.Sprintf("%T", *new(T))
}
