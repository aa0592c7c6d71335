/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package mock_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/fstranieri/cloudchat/datastore"
	"github.com/fstranieri/cloudchat/datastore/mock"
	"github.com/fstranieri/cloudchat/errors"
	"github.com/fstranieri/cloudchat/models"
	"github.com/fstranieri/cloudchat/objecttype"
	"github.com/fstranieri/cloudchat/storagemodels"
)

var _ datastore.IndexedDataStore[models.Users] = (*mock.DataStore[models.Users])(nil)

func TestMockDataStore(t *testing.T) {
	ctx := context.Background()

	t.Run("BasicOperations", func(t *testing.T) {
		mockStore := mock.New[models.Users]()

		// Users implements Keyed, so no key func is needed
		user := models.Users{ID: "123", Nickname: "Test"}
		if err := mockStore.Put(ctx, user); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		retrieved, err := mockStore.GetOne(ctx, "123")
		if err != nil {
			t.Fatalf("GetOne failed: %v", err)
		}
		if retrieved.ID != "123" || retrieved.Nickname != "Test" {
			t.Fatalf("Retrieved entity mismatch: %+v", retrieved)
		}

		if err := mockStore.Delete(ctx, "123"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		_, err = mockStore.GetOne(ctx, "123")
		if !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error, got: %v", err)
		}
	})

	t.Run("EmptyKeyRejected", func(t *testing.T) {
		mockStore := mock.New[models.Messages]()
		err := mockStore.Put(ctx, models.Messages{Text: "no id"})
		if !errors.IsValidationError(err) {
			t.Fatalf("Expected validation error, got: %v", err)
		}
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		mockStore := mock.New[models.Users]()

		putErr := errors.NewValidationError("nickname", "required")
		mockStore.WithPutError(putErr)
		if err := mockStore.Put(ctx, models.Users{ID: "123"}); err != putErr {
			t.Fatalf("Expected put error, got: %v", err)
		}

		deleteErr := errors.NewConditionFailedError("delete", "version mismatch")
		mockStore.WithDeleteError(deleteErr)
		if err := mockStore.Delete(ctx, "123"); err != deleteErr {
			t.Fatalf("Expected delete error, got: %v", err)
		}
	})

	t.Run("UpdateWithCondition", func(t *testing.T) {
		mockStore := mock.New[models.Users]()
		_ = mockStore.Put(ctx, models.Users{ID: "1"})

		if err := mockStore.UpdateWithCondition(ctx, "1", map[string]interface{}{"color": "red"}, "attribute_exists(PK)"); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if len(mockStore.Updates()) != 1 {
			t.Fatalf("Expected 1 recorded update, got %d", len(mockStore.Updates()))
		}

		err := mockStore.UpdateWithCondition(ctx, "2", map[string]interface{}{"color": "red"}, "attribute_exists(PK)")
		if !errors.IsConditionFailed(err) {
			t.Fatalf("Expected condition failure, got: %v", err)
		}
	})

	t.Run("QueryAndStream", func(t *testing.T) {
		mockStore := mock.New[models.Messages]()
		for _, id := range []string{"3", "1", "2"} {
			_ = mockStore.Put(ctx, models.Messages{ID: id, Text: "msg " + id})
		}

		results, err := mockStore.Query(ctx, &storagemodels.QueryParams{})
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if len(results) != 3 || results[0].ID != "1" || results[2].ID != "3" {
			t.Fatalf("Expected 3 results ordered by key, got %+v", results)
		}

		streamCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()

		count := 0
		for result := range mockStore.Stream(streamCtx, &storagemodels.QueryParams{}) {
			if result.Error != nil {
				t.Fatalf("Stream error: %v", result.Error)
			}
			if result.Meta.Index != int64(count) {
				t.Fatalf("Expected index %d, got %d", count, result.Meta.Index)
			}
			count++
		}
		if count != 3 {
			t.Fatalf("Expected 3 streamed items, got %d", count)
		}
	})

	t.Run("CustomQueryFunction", func(t *testing.T) {
		mockStore := mock.New[models.Messages]().
			WithQueryFunc(func(ctx context.Context, params *storagemodels.QueryParams) ([]models.Messages, error) {
				return []models.Messages{{ID: "1", Text: "Filtered"}}, nil
			})

		results, err := mockStore.Query(ctx, &storagemodels.QueryParams{})
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if len(results) != 1 || results[0].Text != "Filtered" {
			t.Fatalf("Expected the filtered result, got %+v", results)
		}
	})

	t.Run("IndexQueries", func(t *testing.T) {
		base := time.Date(2022, 6, 26, 9, 0, 0, 0, time.UTC)
		mockStore := mock.New[models.FullMessage]().
			WithIndexFunc(func(m models.FullMessage) (string, time.Time) {
				return m.UserID, time.Time(m.DateIns)
			})
		for i, id := range []string{"a", "b", "c", "d"} {
			user := "u1"
			if id == "c" {
				user = "u2"
			}
			_ = mockStore.Put(ctx, models.FullMessage{
				ID:      id,
				UserID:  user,
				DateIns: strfmt.DateTime(base.Add(time.Duration(3-i) * time.Minute)),
			})
		}

		byUser, err := mockStore.QueryByGSI1PK(ctx, "u1")
		if err != nil {
			t.Fatalf("QueryByGSI1PK failed: %v", err)
		}
		if len(byUser) != 3 || byUser[0].ID != "d" || byUser[2].ID != "a" {
			t.Fatalf("Expected u1 messages oldest first, got %+v", byUser)
		}

		var ids []string
		for result := range mockStore.StreamTimeline(ctx, "u1", base.Add(time.Minute), base.Add(2*time.Minute)) {
			if result.Error != nil {
				t.Fatalf("StreamTimeline error: %v", result.Error)
			}
			ids = append(ids, result.Item.ID)
		}
		if len(ids) != 1 || ids[0] != "b" {
			t.Fatalf("Expected only b within the range, got %v", ids)
		}
	})

	t.Run("HelperMethods", func(t *testing.T) {
		mockStore := mock.New[models.Users]().
			WithGetKeyFunc(func(u models.Users) string { return u.Email })

		mockStore.SetData(map[string]models.Users{
			"a@example.com": {ID: "1", Email: "a@example.com"},
			"b@example.com": {ID: "2", Email: "b@example.com"},
		})
		if mockStore.Count() != 2 {
			t.Fatalf("Expected count 2, got %d", mockStore.Count())
		}
		if len(mockStore.GetData()) != 2 {
			t.Fatalf("Expected 2 items in data, got %d", len(mockStore.GetData()))
		}

		mockStore.Clear()
		if mockStore.Count() != 0 {
			t.Fatalf("Expected count 0 after clear, got %d", mockStore.Count())
		}
	})
}

func TestMockSchemaStore(t *testing.T) {
	ctx := context.Background()
	schemas := mock.NewSchemaStore()
	info := models.GetObjectTypeInfo()

	if err := schemas.CreateObjectType(ctx, "ChatDemo", info); err != nil {
		t.Fatalf("CreateObjectType failed: %v", err)
	}

	remote, err := schemas.RemoteObjectTypeInfo(ctx, "ChatDemo")
	if err != nil {
		t.Fatalf("RemoteObjectTypeInfo failed: %v", err)
	}
	if !remote.SameTypes(info) {
		t.Fatalf("Expected stored descriptor to match, got %v", remote)
	}

	older := info.Clone()
	older.ObjectTypeVersion = 1
	if err := schemas.CreateObjectType(ctx, "ChatDemo", older); !errors.IsSchemaMismatch(err) {
		t.Fatalf("Expected schema mismatch, got: %v", err)
	}

	if err := schemas.CreateObjectType(ctx, "ChatDemo", objecttype.Info{}); !errors.IsValidationError(err) {
		t.Fatalf("Expected validation error, got: %v", err)
	}

	if schemas.Calls() != 3 {
		t.Fatalf("Expected 3 calls, got %d", schemas.Calls())
	}
}
