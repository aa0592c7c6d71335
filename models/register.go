/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package models

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/fstranieri/cloudchat/objecttype"
	"github.com/fstranieri/cloudchat/registry"
)

// Index maps. Macros refer to dynamodbav attribute names.
var (
	UserPushTokensIndexMap = map[string]string{
		"PK":     "PUSHTOKEN#{token}",
		"SK":     "PUSHTOKEN#{token}",
		"GSI1PK": "USER#{user_id}",
		"GSI1SK": "PUSHTOKEN#{token}",
	}

	MessagesIndexMap = map[string]string{
		"PK":     "MESSAGE#{id}",
		"SK":     "MESSAGE#{id}",
		"GSI1PK": "USER#{user_id}",
		"GSI1SK": "MESSAGE#{id}",
	}

	UsersIndexMap = map[string]string{
		"PK":     "USER#{id}",
		"SK":     "USER#{id}",
		"GSI1PK": "EMAIL#{email}",
		"GSI1SK": "USER",
	}

	FullMessageIndexMap = map[string]string{
		"PK":     "FULLMESSAGE#{id}",
		"SK":     "FULLMESSAGE#{id}",
		"GSI1PK": "FULLMESSAGE",
		"GSI1SK": "DATE#{date_ins}",
	}
)

func init() {
	register[UserPushTokens](TypeUserPushTokens, UserPushTokensIndexMap)
	register[Messages](TypeMessages, MessagesIndexMap)
	register[Users](TypeUsers, UsersIndexMap)
	register[FullMessage](TypeFullMessage, FullMessageIndexMap)
}

func register[T any](objectType objecttype.TypeID, indexMap map[string]string) {
	registry.RegisterType(objectType, func(item map[string]types.AttributeValue) (interface{}, error) {
		out := new(T)
		if err := attributevalue.UnmarshalMap(item, out); err != nil {
			return nil, err
		}
		return out, nil
	})
	registry.RegisterIndexMap[T](indexMap)
	registry.RegisterObjectType[T](objectType)
}
