/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package datastore

import (
	"context"
	"time"

	"github.com/fstranieri/cloudchat/storagemodels"
)

// DataStore is the persistence contract for one object type T.
type DataStore[T any] interface {
	GetOne(ctx context.Context, key string) (*T, error)

	Put(ctx context.Context, entity T) error

	UpdateWithCondition(ctx context.Context, keyInput any, updates map[string]interface{}, condition string) error

	Query(ctx context.Context, params *storagemodels.QueryParams) ([]T, error)

	Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]

	Delete(ctx context.Context, key string) error
}

// IndexedDataStore adds GSI1 reads to DataStore.
type IndexedDataStore[T any] interface {
	DataStore[T]

	// QueryByGSI1PK returns every item of the GSI1 partition built from pkValue, in sort key order.
	QueryByGSI1PK(ctx context.Context, pkValue string) ([]T, error)

	// StreamTimeline streams a GSI1 partition whose sort key embeds a timestamp,
	// oldest first, limited to [from, to]. A zero bound leaves that side open.
	StreamTimeline(ctx context.Context, pkValue string, from, to time.Time, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]
}
