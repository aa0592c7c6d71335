/*
Package cloudchat is the data layer of a chat application backed by a cloud
database zone.

Before a zone is opened the application declares the record shapes it uses.
The declaration is generated into the models package:

	info := models.GetObjectTypeInfo()
	// info.FormatVersion == 2, info.ObjectTypeVersion == 15
	// info.ObjectTypes == [user_push_tokens messages users full_message]

A Storage holds one datastore per declared object type and refuses anything
else:

	storage, err := cloudchat.NewDynamoDBStorage(client, "chat", logger)
	if err != nil {
	    return err
	}
	users, err := cloudchat.GetDataStore[models.Users](storage)

Packages:
  - objecttype: the object type descriptor
  - models: the record shapes and their generated registration
  - zone: zone lifecycle and descriptor negotiation
  - chat: the repository used by the application
  - datastore: DataStore[T] with DynamoDB and in-memory implementations
  - processor: the object type compiler behind models/object_type_info.go
*/
package cloudchat
