/*
Package registry manages type registration and index mapping for the cloudchat
object types.

The registry system enables:
  - Polymorphic storage of all object types in a single DynamoDB table
  - Dynamic type resolution based on the EntityType attribute
  - Flexible key patterns through index maps

Type Registry:
Maps object type identifiers to unmarshal functions:

	registry.RegisterType("users", func(item map[string]types.AttributeValue) (interface{}, error) {
	    var u Users
	    err := attributevalue.UnmarshalMap(item, &u)
	    return &u, err
	})

Index Map Registry:
Associates Go types with DynamoDB key patterns and their object type:

	registry.RegisterIndexMap[Users](map[string]string{
	    "PK":     "USER#{id}",
	    "SK":     "USER#{id}",
	    "GSI1PK": "EMAIL#{email}",
	    "GSI1SK": "USER",
	})
	registry.RegisterObjectType[Users]("users")

The registry is thread-safe and is populated by the generated init code in the
models package.
*/
package registry
