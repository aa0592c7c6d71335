/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

The DynamodbDataStore supports:
  - Single-table design: every object type lives in one table
  - Macro-based key expansion (e.g., "USER#{id}")
  - Global Secondary Index (GSI) and time-range queries
  - Streaming with retry logic and progress tracking
  - Conditional updates for optimistic locking
  - Automatic EntityType injection for polymorphic storage

SchemaStore persists the object type descriptor of each zone and rejects
clients whose descriptor is older than the stored one.

Macro Expansion:
Keys use macros that are replaced with attribute values of the entity:

	indexMap := map[string]string{
	    "PK":     "USER#{id}",     // Becomes "USER#123"
	    "SK":     "USER#{id}",
	    "GSI1PK": "EMAIL#{email}",
	    "GSI1SK": "USER",          // Static value
	}

Streaming:

	results := store.Stream(ctx, params,
	    storagemodels.WithBufferSize(100),
	    storagemodels.WithPageSize(25),
	    storagemodels.WithMaxRetries(3),
	)
	for r := range results {
	    if r.Error != nil {
	        ...
	    }
	}

Index reads:

	msgs, err := messages.QueryByGSI1PK(ctx, "u1")               // GSI1PK = "USER#u1"
	recent := full.StreamTimeline(ctx, "", since, time.Time{}) // GSI1SK >= "DATE#<since>"

The store talks to DynamoDB through the Client interface, which *dynamodb.Client
satisfies; tests substitute an in-memory fake.
*/
package ddb
