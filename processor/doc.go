/*
Package processor is the object type compiler. It reads the YAML declaration
of an application's object types and generates the Go registrar that hands the
descriptor to the cloud database.

Schema:

	package: models
	formatVersion: 2
	objectTypeVersion: 15
	types:
	  - user_push_tokens
	  - messages
	  - users
	  - full_message

Generated code:

	const (
	    FormatVersion     = 2
	    ObjectTypeVersion = 15
	)

	const (
	    TypeUserPushTokens objecttype.TypeID = "user_push_tokens"
	    ...
	)

	func GetObjectTypeInfo() objecttype.Info { ... }

Schemas are checked with the same rules as objecttype.Info.Validate, so an
invalid declaration never reaches generated code. Type names must be lower
snake case.
*/
package processor
