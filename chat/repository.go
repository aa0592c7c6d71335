/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package chat

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/fstranieri/cloudchat"
	"github.com/fstranieri/cloudchat/datastore"
	"github.com/fstranieri/cloudchat/errors"
	"github.com/fstranieri/cloudchat/models"
)

// Zone reports whether the zone backing the repository is usable. *zone.Zone
// implements it.
type Zone interface {
	Name() string
	Ready() error
}

// Account is the authenticated user profile a users record is built from.
type Account struct {
	UID         string
	DisplayName string
	Email       string
	Phone       string
	PhotoURL    string
	ProviderID  string
}

// Repository reads and writes chat data.
type Repository struct {
	zone     Zone
	users    datastore.DataStore[models.Users]
	tokens   datastore.DataStore[models.UserPushTokens]
	messages datastore.IndexedDataStore[models.Messages]
	full     datastore.IndexedDataStore[models.FullMessage]
	logger   *slog.Logger

	now   func() time.Time
	newID func() string
}

// New creates a Repository on top of the datastores registered in storage.
func New(z Zone, storage *cloudchat.Storage, logger *slog.Logger) (*Repository, error) {
	if z == nil {
		return nil, errors.NewValidationError("zone", "zone is required")
	}
	if storage == nil {
		return nil, errors.NewValidationError("storage", "storage is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Repository{
		zone:   z,
		logger: logger.With("zone", z.Name()),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}

	var err error
	if r.users, err = cloudchat.GetDataStore[models.Users](storage); err != nil {
		return nil, fmt.Errorf("users datastore: %w", err)
	}
	if r.tokens, err = cloudchat.GetDataStore[models.UserPushTokens](storage); err != nil {
		return nil, fmt.Errorf("user_push_tokens datastore: %w", err)
	}
	if r.messages, err = cloudchat.GetIndexedDataStore[models.Messages](storage); err != nil {
		return nil, fmt.Errorf("messages datastore: %w", err)
	}
	if r.full, err = cloudchat.GetIndexedDataStore[models.FullMessage](storage); err != nil {
		return nil, fmt.Errorf("full_message datastore: %w", err)
	}
	return r, nil
}

// WithClock replaces the clock used for message dates.
func (r *Repository) WithClock(now func() time.Time) *Repository {
	r.now = now
	return r
}

// WithIDGenerator replaces the generator of new message ids.
func (r *Repository) WithIDGenerator(newID func() string) *Repository {
	r.newID = newID
	return r
}

// SaveUser upserts the users record of an account.
func (r *Repository) SaveUser(ctx context.Context, account Account) error {
	if err := r.zone.Ready(); err != nil {
		return err
	}
	if account.UID == "" {
		return errors.NewValidationError("uid", "user id is required")
	}

	user := models.Users{
		ID:          account.UID,
		Nickname:    account.DisplayName,
		Email:       account.Email,
		PhoneNumber: account.Phone,
		PictureURL:  account.PhotoURL,
		ProviderID:  account.ProviderID,
	}
	// Keep the color a previous login picked.
	if existing, err := r.users.GetOne(ctx, user.ID); err == nil {
		user.Color = existing.Color
	} else if !errors.IsNotFound(err) {
		return fmt.Errorf("load user %q: %w", user.ID, err)
	}

	r.logger.Debug("saving user", "user_id", user.ID, "nickname", user.Nickname)
	if err := r.users.Put(ctx, user); err != nil {
		return fmt.Errorf("save user %q: %w", user.ID, err)
	}
	return nil
}

// DeleteUser removes the users record. Deleting a missing user is not an error.
func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	if err := r.zone.Ready(); err != nil {
		return err
	}
	if id == "" {
		return errors.NewValidationError("id", "user id is required")
	}

	r.logger.Debug("deleting user", "user_id", id)
	if err := r.users.Delete(ctx, id); err != nil && !errors.IsNotFound(err) {
		return fmt.Errorf("delete user %q: %w", id, err)
	}
	return nil
}

// UserDataAvailable reports whether a users record exists for id.
func (r *Repository) UserDataAvailable(ctx context.Context, id string) (bool, error) {
	if err := r.zone.Ready(); err != nil {
		return false, err
	}
	if id == "" {
		return false, errors.NewValidationError("id", "user id is required")
	}

	_, err := r.users.GetOne(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.IsNotFound(err):
		return false, nil
	default:
		return false, fmt.Errorf("load user %q: %w", id, err)
	}
}

// SavePushToken upserts the push token of a user.
func (r *Repository) SavePushToken(ctx context.Context, userID, token string) error {
	if err := r.zone.Ready(); err != nil {
		return err
	}
	if userID == "" {
		return errors.NewValidationError("userID", "user id is required")
	}
	if token == "" {
		return errors.NewValidationError("token", "push token is required")
	}

	r.logger.Debug("saving push token", "user_id", userID)
	err := r.tokens.Put(ctx, models.UserPushTokens{
		Token:    token,
		UserID:   userID,
		Platform: models.PlatformAndroid,
	})
	if err != nil {
		return fmt.Errorf("save push token for %q: %w", userID, err)
	}
	return nil
}

// SendMessage stores a new standard message from userID and returns its
// full_message projection.
func (r *Repository) SendMessage(ctx context.Context, userID, text string) (*models.FullMessage, error) {
	if err := r.zone.Ready(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, errors.NewValidationError("userID", "user id is required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewValidationError("text", "message text is required")
	}

	msg := models.Messages{
		ID:     r.newID(),
		Text:   text,
		UserID: userID,
		Type:   models.MessageTypeStandard,
	}
	r.logger.Debug("sending message", "message_id", msg.ID, "user_id", userID, "length", len(text))
	return r.write(ctx, msg, strfmt.DateTime(r.now().UTC()))
}

// EditMessage replaces the text of an existing message, keeping its id, author,
// type and date.
func (r *Repository) EditMessage(ctx context.Context, text string, message models.FullMessage) (*models.FullMessage, error) {
	if err := r.zone.Ready(); err != nil {
		return nil, err
	}
	if message.ID == "" {
		return nil, errors.NewValidationError("id", "message id is required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewValidationError("text", "message text is required")
	}

	msg := models.Messages{
		ID:     message.ID,
		Text:   text,
		UserID: message.UserID,
		Type:   message.Type,
	}
	date := message.DateIns
	if time.Time(date).IsZero() {
		date = strfmt.DateTime(r.now().UTC())
	}
	r.logger.Debug("editing message", "message_id", msg.ID)
	return r.write(ctx, msg, date)
}

func (r *Repository) write(ctx context.Context, msg models.Messages, date strfmt.DateTime) (*models.FullMessage, error) {
	if err := r.messages.Put(ctx, msg); err != nil {
		return nil, fmt.Errorf("save message %q: %w", msg.ID, err)
	}

	full := models.FullMessage{
		ID:      msg.ID,
		Text:    msg.Text,
		UserID:  msg.UserID,
		Type:    msg.Type,
		DateIns: date,
	}
	author, err := r.users.GetOne(ctx, msg.UserID)
	switch {
	case err == nil:
		full.Nickname = author.Nickname
		full.PictureURL = author.PictureURL
		full.Color = author.Color
	case errors.IsNotFound(err):
		r.logger.Warn("message author has no profile", "message_id", msg.ID, "user_id", msg.UserID)
	default:
		return nil, fmt.Errorf("load author %q: %w", msg.UserID, err)
	}

	if err := r.full.Put(ctx, full); err != nil {
		return nil, fmt.Errorf("save full message %q: %w", msg.ID, err)
	}
	return &full, nil
}

// DeleteMessage removes a message and its full_message projection. Records
// already gone are skipped.
func (r *Repository) DeleteMessage(ctx context.Context, message models.FullMessage) error {
	if err := r.zone.Ready(); err != nil {
		return err
	}
	if message.ID == "" {
		return errors.NewValidationError("id", "message id is required")
	}

	r.logger.Debug("deleting message", "message_id", message.ID)
	if err := r.messages.Delete(ctx, message.ID); err != nil && !errors.IsNotFound(err) {
		return fmt.Errorf("delete message %q: %w", message.ID, err)
	}
	if err := r.full.Delete(ctx, message.ID); err != nil && !errors.IsNotFound(err) {
		return fmt.Errorf("delete full message %q: %w", message.ID, err)
	}
	return nil
}

// ListMessages returns the standard and poll messages ordered by date.
func (r *Repository) ListMessages(ctx context.Context) ([]models.FullMessage, error) {
	if err := r.zone.Ready(); err != nil {
		return nil, err
	}

	var list []models.FullMessage
	for res := range r.full.StreamTimeline(ctx, "", time.Time{}, time.Time{}) {
		if res.Error != nil {
			return nil, fmt.Errorf("list messages: %w", res.Error)
		}
		switch res.Item.Type {
		case models.MessageTypeStandard, models.MessageTypePoll:
			list = append(list, res.Item)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(list, func(i, j int) bool {
		return time.Time(list[i].DateIns).Before(time.Time(list[j].DateIns))
	})
	r.logger.Debug("listed messages", "count", len(list))
	return list, nil
}

// MessagesByUser returns the messages records written by userID.
func (r *Repository) MessagesByUser(ctx context.Context, userID string) ([]models.Messages, error) {
	if err := r.zone.Ready(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, errors.NewValidationError("userID", "user id is required")
	}

	msgs, err := r.messages.QueryByGSI1PK(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("messages of %q: %w", userID, err)
	}
	return msgs, nil
}

// WatchMessages sends the current ListMessages result, then polls every
// interval and sends the list again whenever it changed. The channel is closed
// when ctx is done or the zone stops being connected.
func (r *Repository) WatchMessages(ctx context.Context, interval time.Duration) (<-chan []models.FullMessage, error) {
	if interval <= 0 {
		return nil, errors.NewValidationError("interval", "poll interval must be positive")
	}
	last, err := r.ListMessages(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan []models.FullMessage, 1)
	out <- last

	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			list, err := r.ListMessages(ctx)
			switch {
			case ctx.Err() != nil:
				return
			case errors.IsZoneNotOpen(err):
				r.logger.Info("message watch stopped", "reason", err)
				return
			case err != nil:
				r.logger.Warn("message poll failed", "error", err)
				continue
			case reflect.DeepEqual(list, last):
				continue
			}

			last = list
			select {
			case <-ctx.Done():
				return
			case out <- list:
			}
		}
	}()

	return out, nil
}
