/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package models

import "github.com/fstranieri/cloudchat/objecttype"

// Message kinds.
const (
	MessageTypeStandard = 0
	MessageTypePoll     = 1
)

// Messages is a chat message as written by a client.
type Messages struct {
	ID     string `json:"id" dynamodbav:"id"`
	Text   string `json:"text" dynamodbav:"text"`
	UserID string `json:"user_id" dynamodbav:"user_id"`
	Type   int    `json:"type" dynamodbav:"type"`
}

func (Messages) ObjectType() objecttype.TypeID { return TypeMessages }

// Key is the store key of the record.
func (m Messages) Key() string { return m.ID }
