/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")
	
	// ErrAlreadyExists is returned when attempting to create an entity that already exists
	ErrAlreadyExists = errors.New("entity already exists")
	
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
	
	// ErrConditionFailed is returned when a conditional update fails
	ErrConditionFailed = errors.New("condition check failed")
	
	// ErrNoIndexMap is returned when no index map is found for a type
	ErrNoIndexMap = errors.New("no index map found for type")

	// ErrUnknownObjectType is returned for an object type that was never declared or registered
	ErrUnknownObjectType = errors.New("unknown object type")

	// ErrSchemaMismatch is returned when the local object type descriptor cannot be reconciled with the cloud one
	ErrSchemaMismatch = errors.New("object type schema mismatch")

	// ErrZoneNotOpen is returned when a zone operation is attempted before the zone is connected
	ErrZoneNotOpen = errors.New("cloud zone not open")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConditionFailedError represents a failed conditional operation
type ConditionFailedError struct {
	Operation string
	Condition string
}

func (e *ConditionFailedError) Error() string {
	return fmt.Sprintf("condition check failed for %s operation: %s", e.Operation, e.Condition)
}

func (e *ConditionFailedError) Is(target error) bool {
	return target == ErrConditionFailed
}

// UnknownObjectTypeError represents a reference to an undeclared object type
type UnknownObjectTypeError struct {
	Type string
}

func (e *UnknownObjectTypeError) Error() string {
	return fmt.Sprintf("object type %q is not registered", e.Type)
}

func (e *UnknownObjectTypeError) Is(target error) bool {
	return target == ErrUnknownObjectType
}

// SchemaMismatchError represents a local descriptor that is incompatible with the stored one
type SchemaMismatchError struct {
	Local  string
	Remote string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("object type schema mismatch: local %s, cloud %s", e.Local, e.Remote)
}

func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// ZoneStateError represents an operation rejected because of the zone's connection state
type ZoneStateError struct {
	Zone  string
	State string
}

func (e *ZoneStateError) Error() string {
	return fmt.Sprintf("cloud zone %q is %s", e.Zone, e.State)
}

func (e *ZoneStateError) Is(target error) bool {
	return target == ErrZoneNotOpen
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(entityType, key string) error {
	return &AlreadyExistsError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewConditionFailedError creates a new ConditionFailedError
func NewConditionFailedError(operation, condition string) error {
	return &ConditionFailedError{Operation: operation, Condition: condition}
}

// NewUnknownObjectTypeError creates a new UnknownObjectTypeError
func NewUnknownObjectTypeError(objectType string) error {
	return &UnknownObjectTypeError{Type: objectType}
}

// NewSchemaMismatchError creates a new SchemaMismatchError
func NewSchemaMismatchError(local, remote string) error {
	return &SchemaMismatchError{Local: local, Remote: remote}
}

// NewZoneStateError creates a new ZoneStateError
func NewZoneStateError(zone, state string) error {
	return &ZoneStateError{Zone: zone, State: state}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConditionFailed checks if an error is a condition failed error
func IsConditionFailed(err error) bool {
	return errors.Is(err, ErrConditionFailed)
}

// IsUnknownObjectType checks if an error is an unknown object type error
func IsUnknownObjectType(err error) bool {
	return errors.Is(err, ErrUnknownObjectType)
}

// IsSchemaMismatch checks if an error is a schema mismatch error
func IsSchemaMismatch(err error) bool {
	return errors.Is(err, ErrSchemaMismatch)
}

// IsZoneNotOpen checks if an error was caused by a zone that is not connected
func IsZoneNotOpen(err error) bool {
	return errors.Is(err, ErrZoneNotOpen)
}
