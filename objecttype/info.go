/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package objecttype

import (
	"fmt"
	"strings"

	"github.com/fstranieri/cloudchat/errors"
)

// TypeID names one record shape managed by the cloud database (e.g. "users").
type TypeID string

func (t TypeID) String() string {
	return string(t)
}

// Info is the object type descriptor handed to the database at initialization.
type Info struct {
	FormatVersion     int      `json:"formatVersion" yaml:"formatVersion" dynamodbav:"FormatVersion"`
	ObjectTypeVersion int      `json:"objectTypeVersion" yaml:"objectTypeVersion" dynamodbav:"ObjectTypeVersion"`
	ObjectTypes       []TypeID `json:"objectTypes" yaml:"objectTypes" dynamodbav:"ObjectTypes"`
}

// Validate checks the descriptor invariants: positive versions and a non-empty
// list of distinct, non-empty identifiers.
func (i Info) Validate() error {
	if i.FormatVersion <= 0 {
		return errors.NewValidationError("formatVersion", fmt.Sprintf("must be positive, got %d", i.FormatVersion))
	}
	if i.ObjectTypeVersion <= 0 {
		return errors.NewValidationError("objectTypeVersion", fmt.Sprintf("must be positive, got %d", i.ObjectTypeVersion))
	}
	if len(i.ObjectTypes) == 0 {
		return errors.NewValidationError("objectTypes", "at least one object type is required")
	}

	seen := make(map[TypeID]struct{}, len(i.ObjectTypes))
	for idx, t := range i.ObjectTypes {
		if strings.TrimSpace(string(t)) == "" {
			return errors.NewValidationError("objectTypes", fmt.Sprintf("entry %d is empty", idx))
		}
		if _, dup := seen[t]; dup {
			return errors.NewValidationError("objectTypes", fmt.Sprintf("duplicate object type %q", t))
		}
		seen[t] = struct{}{}
	}
	return nil
}

// MustValidate panics if the descriptor is invalid. Generated registrars call it
// from init so a broken table never reaches runtime.
func (i Info) MustValidate() {
	if err := i.Validate(); err != nil {
		panic(fmt.Sprintf("objecttype: invalid descriptor: %v", err))
	}
}

// Contains reports whether t is one of the declared object types.
func (i Info) Contains(t TypeID) bool {
	for _, declared := range i.ObjectTypes {
		if declared == t {
			return true
		}
	}
	return false
}

// SameTypes reports whether both descriptors declare the same set of object
// types, ignoring order.
func (i Info) SameTypes(other Info) bool {
	if len(i.ObjectTypes) != len(other.ObjectTypes) {
		return false
	}
	set := make(map[TypeID]int, len(i.ObjectTypes))
	for _, t := range i.ObjectTypes {
		set[t]++
	}
	for _, t := range other.ObjectTypes {
		if set[t] == 0 {
			return false
		}
		set[t]--
	}
	return true
}

// Compatible checks a locally declared descriptor against the one stored on the
// cloud side. The formats must match and the local object type version must not
// be older than the remote one.
func (i Info) Compatible(remote Info) error {
	if i.FormatVersion != remote.FormatVersion {
		return errors.NewSchemaMismatchError(
			fmt.Sprintf("format version %d", i.FormatVersion),
			fmt.Sprintf("format version %d", remote.FormatVersion))
	}
	if i.ObjectTypeVersion < remote.ObjectTypeVersion {
		return errors.NewSchemaMismatchError(
			fmt.Sprintf("object type version %d", i.ObjectTypeVersion),
			fmt.Sprintf("object type version %d", remote.ObjectTypeVersion))
	}
	return nil
}

// Clone returns a deep copy of the descriptor.
func (i Info) Clone() Info {
	c := i
	c.ObjectTypes = append([]TypeID(nil), i.ObjectTypes...)
	return c
}

// Names returns the declared identifiers as plain strings, in declaration order.
func (i Info) Names() []string {
	names := make([]string, len(i.ObjectTypes))
	for idx, t := range i.ObjectTypes {
		names[idx] = string(t)
	}
	return names
}

func (i Info) String() string {
	return fmt.Sprintf("format=%d version=%d types=[%s]",
		i.FormatVersion, i.ObjectTypeVersion, strings.Join(i.Names(), ","))
}
