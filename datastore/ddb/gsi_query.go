/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	storeerrors "github.com/fstranieri/cloudchat/errors"
	"github.com/fstranieri/cloudchat/registry"
	"github.com/fstranieri/cloudchat/storagemodels"
)

// GSIQueryBuilder provides a fluent interface for building GSI queries.
// Partition and sort key values are expanded through T's index map patterns,
// so callers pass raw values ("u1") rather than stored keys ("USER#u1").
type GSIQueryBuilder[T any] struct {
	store      *DynamodbDataStore[T]
	indexName  string
	pkValue    string
	skValue    string
	skValue2   string
	skOperator string // ">=", "<=", "BETWEEN"
	forward    *bool
	startKey   map[string]types.AttributeValue
}

// QueryGSI creates a new query builder on GSI1.
func (d *DynamodbDataStore[T]) QueryGSI() *GSIQueryBuilder[T] {
	return &GSIQueryBuilder[T]{
		store:     d,
		indexName: "GSI1",
	}
}

// WithPartitionKey sets the GSI partition key value
func (q *GSIQueryBuilder[T]) WithPartitionKey(value string) *GSIQueryBuilder[T] {
	q.pkValue = value
	return q
}

// WithSortKeyAtLeast sets the GSI sort key to use >= operator
func (q *GSIQueryBuilder[T]) WithSortKeyAtLeast(value string) *GSIQueryBuilder[T] {
	return q.sortKey(">=", value)
}

// WithSortKeyAtMost sets the GSI sort key to use <= operator
func (q *GSIQueryBuilder[T]) WithSortKeyAtMost(value string) *GSIQueryBuilder[T] {
	return q.sortKey("<=", value)
}

// WithSortKeyBetween sets the GSI sort key to use BETWEEN operator. Both ends are inclusive.
func (q *GSIQueryBuilder[T]) WithSortKeyBetween(start, end string) *GSIQueryBuilder[T] {
	q.skValue2 = end
	return q.sortKey("BETWEEN", start)
}

func (q *GSIQueryBuilder[T]) sortKey(op, value string) *GSIQueryBuilder[T] {
	q.skOperator = op
	q.skValue = value
	return q
}

// WithScanForward sets the sort key traversal order.
func (q *GSIQueryBuilder[T]) WithScanForward(ascending bool) *GSIQueryBuilder[T] {
	q.forward = aws.Bool(ascending)
	return q
}

// WithStartKey resumes from a LastEvaluatedKey.
func (q *GSIQueryBuilder[T]) WithStartKey(key map[string]types.AttributeValue) *GSIQueryBuilder[T] {
	q.startKey = key
	return q
}

// Build constructs the final query parameters. A key value given for a pattern
// without a macro is a ValidationError, since it could not narrow the query.
func (q *GSIQueryBuilder[T]) Build() (*storagemodels.QueryParams, error) {
	gsi, ok := GetGSIConfig(q.indexName)
	if !ok {
		return nil, storeerrors.NewValidationError("indexName", fmt.Sprintf("unknown GSI %q", q.indexName))
	}

	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return nil, fmt.Errorf("%w: %T", storeerrors.ErrNoIndexMap, *new(T))
	}

	pkPattern, ok := indexMap[gsi.PartitionKeyName]
	if !ok {
		return nil, fmt.Errorf("%s not found in index map", gsi.PartitionKeyName)
	}
	switch {
	case q.pkValue == "" && macroPattern.MatchString(pkPattern):
		return nil, storeerrors.NewValidationError(gsi.PartitionKeyName, "GSI partition key value is required")
	case q.pkValue != "" && !macroPattern.MatchString(pkPattern):
		return nil, storeerrors.NewValidationError(gsi.PartitionKeyName,
			fmt.Sprintf("pattern %q takes no value, got %q", pkPattern, q.pkValue))
	}

	values := map[string]types.AttributeValue{
		":pk": &types.AttributeValueMemberS{Value: expandPattern(pkPattern, q.pkValue)},
	}
	keyConditions := []string{gsi.PartitionKeyName + " = :pk"}

	if q.skOperator != "" {
		skPattern, ok := indexMap[gsi.SortKeyName]
		if !ok {
			return nil, fmt.Errorf("%s not found in index map", gsi.SortKeyName)
		}
		if !macroPattern.MatchString(skPattern) {
			return nil, storeerrors.NewValidationError(gsi.SortKeyName,
				fmt.Sprintf("pattern %q takes no value, got %q", skPattern, q.skValue))
		}
		values[":sk"] = &types.AttributeValueMemberS{Value: expandPattern(skPattern, q.skValue)}

		if q.skOperator == "BETWEEN" {
			values[":sk2"] = &types.AttributeValueMemberS{Value: expandPattern(skPattern, q.skValue2)}
			keyConditions = append(keyConditions, gsi.SortKeyName+" BETWEEN :sk AND :sk2")
		} else {
			keyConditions = append(keyConditions, fmt.Sprintf("%s %s :sk", gsi.SortKeyName, q.skOperator))
		}
	}

	return &storagemodels.QueryParams{
		KeyConditionExpression:    strings.Join(keyConditions, " AND "),
		ExpressionAttributeValues: values,
		IndexName:                 aws.String(gsi.IndexName),
		ScanIndexForward:          q.forward,
		ExclusiveStartKey:         q.startKey,
	}, nil
}

// ExecuteWithPagination runs one page starting at exclusiveStartKey and returns the key to resume from.
func (q *GSIQueryBuilder[T]) ExecuteWithPagination(ctx context.Context, exclusiveStartKey map[string]types.AttributeValue) ([]T, map[string]types.AttributeValue, error) {
	params, err := q.WithStartKey(exclusiveStartKey).Build()
	if err != nil {
		return nil, nil, err
	}
	page, err := q.store.QueryPage(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	return page.Items, page.LastEvaluatedKey, nil
}

// ExecuteAll follows LastEvaluatedKey until the query is exhausted.
func (q *GSIQueryBuilder[T]) ExecuteAll(ctx context.Context) ([]T, error) {
	var all []T
	var startKey map[string]types.AttributeValue
	for {
		items, next, err := q.ExecuteWithPagination(ctx, startKey)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(next) == 0 {
			return all, nil
		}
		startKey = next
	}
}

// Stream executes the query as a stream
func (q *GSIQueryBuilder[T]) Stream(ctx context.Context, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	params, err := q.Build()
	if err != nil {
		ch := make(chan storagemodels.StreamResult[T], 1)
		ch <- storagemodels.StreamResult[T]{
			Error: fmt.Errorf("failed to build query: %w", err),
		}
		close(ch)
		return ch
	}
	return q.store.Stream(ctx, params, opts...)
}

// QueryByGSI1PK returns every item of the GSI1 partition built from pkValue, in sort key order.
func (d *DynamodbDataStore[T]) QueryByGSI1PK(ctx context.Context, pkValue string) ([]T, error) {
	return d.QueryGSI().
		WithPartitionKey(pkValue).
		ExecuteAll(ctx)
}
