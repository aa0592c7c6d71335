/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package models

import "github.com/fstranieri/cloudchat/objecttype"

// Push token platforms.
const (
	PlatformAndroid = 0
)

// UserPushTokens binds a push token to a user.
type UserPushTokens struct {
	Token    string `json:"token" dynamodbav:"token"`
	UserID   string `json:"user_id" dynamodbav:"user_id"`
	Platform int    `json:"platform" dynamodbav:"platform"`
}

func (UserPushTokens) ObjectType() objecttype.TypeID { return TypeUserPushTokens }

// Key is the store key of the record.
func (m UserPushTokens) Key() string { return m.Token }
