/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/fstranieri/cloudchat/objecttype"
	"github.com/fstranieri/cloudchat/registry"
	"github.com/fstranieri/cloudchat/storagemodels"
)

func (d *DynamodbDataStore[T]) queryInput(params *storagemodels.QueryParams) *sdk.QueryInput {
	return &sdk.QueryInput{
		TableName:                 &d.tableName,
		KeyConditionExpression:    &params.KeyConditionExpression,
		ExpressionAttributeNames:  params.ExpressionAttributeNames,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		FilterExpression:          params.FilterExpression,
		IndexName:                 params.IndexName,
		Limit:                     params.Limit,
		ExclusiveStartKey:         params.ExclusiveStartKey,
		ScanIndexForward:          params.ScanIndexForward,
	}
}

// Query performs a single-page query against the table and decodes every item into T.
// Items of another object type that share the key space are skipped.
func (d *DynamodbDataStore[T]) Query(ctx context.Context, params *storagemodels.QueryParams) ([]T, error) {
	page, err := d.QueryPage(ctx, params)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// QueryPage is Query plus the LastEvaluatedKey to continue from.
func (d *DynamodbDataStore[T]) QueryPage(ctx context.Context, params *storagemodels.QueryParams) (*storagemodels.QueryPage[T], error) {
	out, err := d.client.Query(ctx, d.queryInput(params))
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	page := &storagemodels.QueryPage[T]{
		Items:            make([]T, 0, len(out.Items)),
		LastEvaluatedKey: out.LastEvaluatedKey,
	}
	for _, item := range out.Items {
		if !d.ownsItem(item) {
			continue
		}
		obj, err := decodeItem[T](item)
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, obj)
	}
	return page, nil
}

// ownsItem reports whether item was written for T. Items without an EntityType are accepted.
func (d *DynamodbDataStore[T]) ownsItem(item map[string]types.AttributeValue) bool {
	want, ok := registry.ObjectTypeOf[T]()
	if !ok {
		return true
	}
	got, ok := entityTypeOf(item)
	return !ok || got == want
}

func entityTypeOf(item map[string]types.AttributeValue) (objecttype.TypeID, bool) {
	attr, ok := item[AttrEntityType]
	if !ok {
		return "", false
	}
	var entityType string
	if err := attributevalue.Unmarshal(attr, &entityType); err != nil {
		return "", false
	}
	return objecttype.TypeID(entityType), true
}

// decodeItem converts a raw item into T. It uses the unmarshal function registered
// for the item's EntityType when there is one, and falls back to a direct unmarshal.
func decodeItem[T any](item map[string]types.AttributeValue) (T, error) {
	var zero T

	if entityType, ok := entityTypeOf(item); ok {
		if unmarshalFn, err := registry.GetUnmarshalFunc(entityType); err == nil {
			obj, err := unmarshalFn(item)
			if err != nil {
				return zero, fmt.Errorf("failed to unmarshal item for EntityType %q: %w", entityType, err)
			}
			switch typed := obj.(type) {
			case T:
				return typed, nil
			case *T:
				return *typed, nil
			}
		}
	}

	var result T
	if err := attributevalue.UnmarshalMap(item, &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal item to type %T: %w", zero, err)
	}
	return result, nil
}
