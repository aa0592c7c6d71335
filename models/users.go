/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package models

import "github.com/fstranieri/cloudchat/objecttype"

// Users is a user profile, keyed by the authentication uid.
type Users struct {
	ID          string `json:"id" dynamodbav:"id"`
	Nickname    string `json:"nickname,omitempty" dynamodbav:"nickname,omitempty"`
	Email       string `json:"email,omitempty" dynamodbav:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty" dynamodbav:"phone_number,omitempty"`
	PictureURL  string `json:"picture_url,omitempty" dynamodbav:"picture_url,omitempty"`
	ProviderID  string `json:"provider_id,omitempty" dynamodbav:"provider_id,omitempty"`
	Color       string `json:"color,omitempty" dynamodbav:"color,omitempty"`
}

func (Users) ObjectType() objecttype.TypeID { return TypeUsers }

// Key is the store key of the record.
func (m Users) Key() string { return m.ID }
