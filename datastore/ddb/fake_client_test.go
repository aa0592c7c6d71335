/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package ddb

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeClient is an in-memory stand-in for the DynamoDB API. It understands
// primary keys, GSI1 partition lookups, the sort key conditions the query
// builders emit, Limit and ExclusiveStartKey, and the schema store's put
// condition. Other expressions are recorded, not evaluated.
type fakeClient struct {
	mu      sync.Mutex
	items   map[string]map[string]types.AttributeValue
	updates []*sdk.UpdateItemInput
	queries []*sdk.QueryInput

	queryErrs []error // returned, in order, before queries succeed
	putErr    error
	pageSize  int // caps every Query page when set
}

func newFakeClient() *fakeClient {
	return &fakeClient{items: make(map[string]map[string]types.AttributeValue)}
}

func attrS(item map[string]types.AttributeValue, name string) string {
	if v, ok := item[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func attrN(item map[string]types.AttributeValue, name string) int {
	if v, ok := item[name].(*types.AttributeValueMemberN); ok {
		n, _ := strconv.Atoi(v.Value)
		return n
	}
	return 0
}

func itemKey(item map[string]types.AttributeValue) string {
	return attrS(item, AttrPK) + "|" + attrS(item, AttrSK)
}

func (f *fakeClient) GetItem(ctx context.Context, in *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &sdk.GetItemOutput{Item: f.items[itemKey(in.Key)]}, nil
}

func (f *fakeClient) PutItem(ctx context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return nil, f.putErr
	}
	k := itemKey(in.Item)
	if existing, ok := f.items[k]; ok && in.ConditionExpression != nil {
		fv := attrN(in.ExpressionAttributeValues, ":fv")
		otv := attrN(in.ExpressionAttributeValues, ":otv")
		if attrN(existing, "FormatVersion") != fv || attrN(existing, "ObjectTypeVersion") > otv {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	f.items[k] = in.Item
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeClient) DeleteItem(ctx context.Context, in *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, itemKey(in.Key))
	return &sdk.DeleteItemOutput{}, nil
}

func (f *fakeClient) UpdateItem(ctx context.Context, in *sdk.UpdateItemInput, _ ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, in)
	if _, ok := f.items[itemKey(in.Key)]; !ok && in.ConditionExpression != nil {
		return nil, &types.ConditionalCheckFailedException{}
	}
	return &sdk.UpdateItemOutput{}, nil
}

func (f *fakeClient) Query(ctx context.Context, in *sdk.QueryInput, _ ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, in)
	if len(f.queryErrs) > 0 {
		err := f.queryErrs[0]
		f.queryErrs = f.queryErrs[1:]
		return nil, err
	}

	pkAttr, skAttr := AttrPK, AttrSK
	if in.IndexName != nil {
		gsi, _ := GetGSIConfig(*in.IndexName)
		pkAttr, skAttr = gsi.PartitionKeyName, gsi.SortKeyName
	}
	pk := attrS(in.ExpressionAttributeValues, ":pk")
	cond := ""
	if in.KeyConditionExpression != nil {
		cond = *in.KeyConditionExpression
	}
	sk := attrS(in.ExpressionAttributeValues, ":sk")
	sk2 := attrS(in.ExpressionAttributeValues, ":sk2")

	var matched []map[string]types.AttributeValue
	for _, item := range f.items {
		if attrS(item, pkAttr) != pk {
			continue
		}
		v := attrS(item, skAttr)
		switch {
		case strings.Contains(cond, "BETWEEN"):
			if v < sk || v > sk2 {
				continue
			}
		case strings.Contains(cond, ">= :sk"):
			if v < sk {
				continue
			}
		case strings.Contains(cond, "<= :sk"):
			if v > sk {
				continue
			}
		}
		matched = append(matched, item)
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := attrS(matched[i], skAttr)+itemKey(matched[i]), attrS(matched[j], skAttr)+itemKey(matched[j])
		if in.ScanIndexForward != nil && !*in.ScanIndexForward {
			return a > b
		}
		return a < b
	})

	start := 0
	if len(in.ExclusiveStartKey) > 0 {
		for i, item := range matched {
			if itemKey(item) == itemKey(in.ExclusiveStartKey) {
				start = i + 1
				break
			}
		}
	}
	matched = matched[start:]

	limit := len(matched)
	if in.Limit != nil && int(*in.Limit) < limit {
		limit = int(*in.Limit)
	}
	if f.pageSize > 0 && f.pageSize < limit {
		limit = f.pageSize
	}

	out := &sdk.QueryOutput{}
	if limit < len(matched) {
		matched = matched[:limit]
		last := matched[len(matched)-1]
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			AttrPK: last[AttrPK],
			AttrSK: last[AttrSK],
		}
	}
	out.Items = matched
	out.Count = int32(len(matched))
	return out, nil
}
