/*
Package storagemodels defines the data structures shared by the datastore
implementations.

QueryParams:
Parameters for querying the datastore. The table name comes from the datastore.

	params := &QueryParams{
	    KeyConditionExpression: "GSI1PK = :pk",
	    ExpressionAttributeValues: map[string]types.AttributeValue{
	        ":pk": &types.AttributeValueMemberS{Value: "FULLMESSAGE"},
	    },
	    IndexName: aws.String("GSI1"),
	    Limit:     aws.Int32(100),
	}

StreamResult:
Results from streaming operations with metadata. Item-level failures travel in
the Error field rather than closing the stream.

StreamOptions:

	opts := []StreamOption{
	    WithBufferSize(100),
	    WithPageSize(25),
	    WithMaxRetries(3),
	    WithProgressHandler(progressFunc),
	}
*/
package storagemodels
