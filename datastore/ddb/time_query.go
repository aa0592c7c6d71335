/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package ddb

import (
	"context"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/fstranieri/cloudchat/storagemodels"
)

// FormatSortTime renders t as stored in time-ordered sort keys: RFC3339 with
// milliseconds, in UTC, so lexical order equals chronological order.
func FormatSortTime(t time.Time) string {
	return strfmt.DateTime(t.UTC()).String()
}

// TimeRangeQueryBuilder provides time-based queries on a GSI whose sort key pattern embeds a timestamp
type TimeRangeQueryBuilder[T any] struct {
	*GSIQueryBuilder[T]
}

// QueryByTimeRange creates a new time-based query builder on GSI1.
// partitionKey must be empty when the GSI1PK pattern is static.
func (d *DynamodbDataStore[T]) QueryByTimeRange(partitionKey string) *TimeRangeQueryBuilder[T] {
	return &TimeRangeQueryBuilder[T]{
		GSIQueryBuilder: d.QueryGSI().WithPartitionKey(partitionKey),
	}
}

// Between queries items between two timestamps, inclusive
func (q *TimeRangeQueryBuilder[T]) Between(start, end time.Time) *TimeRangeQueryBuilder[T] {
	q.WithSortKeyBetween(FormatSortTime(start), FormatSortTime(end))
	return q
}

// Since queries items at or after a specific timestamp
func (q *TimeRangeQueryBuilder[T]) Since(timestamp time.Time) *TimeRangeQueryBuilder[T] {
	q.WithSortKeyAtLeast(FormatSortTime(timestamp))
	return q
}

// Until queries items at or before a specific timestamp
func (q *TimeRangeQueryBuilder[T]) Until(timestamp time.Time) *TimeRangeQueryBuilder[T] {
	q.WithSortKeyAtMost(FormatSortTime(timestamp))
	return q
}

// Oldest returns results in ascending time order (oldest first)
func (q *TimeRangeQueryBuilder[T]) Oldest() *TimeRangeQueryBuilder[T] {
	q.WithScanForward(true)
	return q
}

// StreamTimeline streams the GSI1 partition of pkValue oldest first, limited
// to [from, to]. A zero bound leaves that side of the range open.
func (d *DynamodbDataStore[T]) StreamTimeline(ctx context.Context, pkValue string, from, to time.Time, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	q := d.QueryByTimeRange(pkValue).Oldest()
	switch {
	case !from.IsZero() && !to.IsZero():
		q.Between(from, to)
	case !from.IsZero():
		q.Since(from)
	case !to.IsZero():
		q.Until(to)
	}
	return q.Stream(ctx, opts...)
}
