/*
Package datastore defines the core interfaces for the cloudchat persistence layer.

The main interface is DataStore[T], which provides generic CRUD operations for
one object type T:

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, key string) (*T, error)
	    Put(ctx context.Context, entity T) error
	    UpdateWithCondition(ctx context.Context, keyInput any, updates map[string]interface{}, condition string) error
	    Query(ctx context.Context, params *storagemodels.QueryParams) ([]T, error)
	    Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]
	    Delete(ctx context.Context, key string) error
	}

Implementations:
  - ddb: DynamoDB implementation with support for single-table design
  - mock: In-memory implementation for testing

GetOne reports a missing entity with errors.NotFoundError, so callers can use
errors.IsNotFound regardless of backend.
*/
package datastore
