/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package models

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
	"github.com/fstranieri/cloudchat/objecttype"
)

// FullMessage is a message joined with its author's profile.
type FullMessage struct {
	ID         string          `json:"id"`
	Text       string          `json:"text"`
	UserID     string          `json:"user_id"`
	Type       int             `json:"type"`
	Nickname   string          `json:"nickname,omitempty"`
	PictureURL string          `json:"picture_url,omitempty"`
	Color      string          `json:"color,omitempty"`
	DateIns    strfmt.DateTime `json:"date_ins"`
}

func (FullMessage) ObjectType() objecttype.TypeID { return TypeFullMessage }

// fullMessageItem is the stored form: DateIns is kept as an RFC3339 UTC string so
// it sorts lexically in key expressions.
type fullMessageItem struct {
	ID         string `dynamodbav:"id"`
	Text       string `dynamodbav:"text"`
	UserID     string `dynamodbav:"user_id"`
	Type       int    `dynamodbav:"type"`
	Nickname   string `dynamodbav:"nickname,omitempty"`
	PictureURL string `dynamodbav:"picture_url,omitempty"`
	Color      string `dynamodbav:"color,omitempty"`
	DateIns    string `dynamodbav:"date_ins"`
}

// MarshalDynamoDBAttributeValue implements attributevalue.Marshaler.
func (m FullMessage) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return attributevalue.Marshal(fullMessageItem{
		ID:         m.ID,
		Text:       m.Text,
		UserID:     m.UserID,
		Type:       m.Type,
		Nickname:   m.Nickname,
		PictureURL: m.PictureURL,
		Color:      m.Color,
		DateIns:    FormatDate(time.Time(m.DateIns)),
	})
}

// UnmarshalDynamoDBAttributeValue implements attributevalue.Unmarshaler.
func (m *FullMessage) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	var item fullMessageItem
	if err := attributevalue.Unmarshal(av, &item); err != nil {
		return err
	}
	*m = FullMessage{
		ID:         item.ID,
		Text:       item.Text,
		UserID:     item.UserID,
		Type:       item.Type,
		Nickname:   item.Nickname,
		PictureURL: item.PictureURL,
		Color:      item.Color,
	}
	if item.DateIns != "" {
		dt, err := strfmt.ParseDateTime(item.DateIns)
		if err != nil {
			return fmt.Errorf("full_message %q: invalid date_ins: %w", item.ID, err)
		}
		m.DateIns = dt
	}
	return nil
}

// FormatDate renders t the way date_ins is stored and indexed.
func FormatDate(t time.Time) string {
	return strfmt.DateTime(t.UTC()).String()
}

// Key is the store key of the record.
func (m FullMessage) Key() string { return m.ID }
