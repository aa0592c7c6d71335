/*
Package models holds the record shapes the chat application stores in the
cloud database, together with the generated object type registrar.

Object types:
  - user_push_tokens: push tokens per user and platform
  - messages: messages as written by clients
  - users: user profiles
  - full_message: messages joined with their author, as read by clients

GetObjectTypeInfo returns the descriptor handed to the zone at startup. Each
model registers its unmarshal function, object type and DynamoDB index map
from init, so importing this package is enough to make the datastores work.
*/
package models

//go:generate go run ../cmd/objecttypes generate -f object_types.yaml -o object_type_info.go
