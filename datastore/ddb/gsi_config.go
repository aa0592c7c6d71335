/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package ddb

// GSIConfig holds the configuration for GSI key mappings
type GSIConfig struct {
	// IndexName is the actual GSI name in DynamoDB (e.g., "GSI1")
	IndexName string
	// PartitionKeyName is the partition key attribute of the GSI; it is also the index map entry holding its pattern.
	PartitionKeyName string
	// SortKeyName is the sort key attribute of the GSI; it is also the index map entry holding its pattern.
	SortKeyName string
}

// DefaultGSIConfigs holds the GSIs the cloudchat table is created with.
var DefaultGSIConfigs = map[string]GSIConfig{
	"GSI1": {
		IndexName:        "GSI1",
		PartitionKeyName: "GSI1PK",
		SortKeyName:      "GSI1SK",
	},
}

// GetGSIConfig returns the GSI configuration for a given index name
func GetGSIConfig(indexName string) (GSIConfig, bool) {
	config, ok := DefaultGSIConfigs[indexName]
	return config, ok
}
