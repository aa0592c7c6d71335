/*
Package errors provides semantic error types for cloudchat.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound        = errors.New("entity not found")
	    ErrAlreadyExists   = errors.New("entity already exists")
	    ErrInvalidInput    = errors.New("invalid input")
	    ErrConditionFailed = errors.New("condition check failed")
	    ErrNoIndexMap      = errors.New("no index map found for type")
	    ErrUnknownObjectType = errors.New("unknown object type")
	    ErrSchemaMismatch    = errors.New("object type schema mismatch")
	    ErrZoneNotOpen       = errors.New("cloud zone not open")
	)

Usage:

	// Check error type
	user, err := users.GetOne(ctx, "123")
	if err != nil {
	    if errors.IsNotFound(err) {
	        // Handle not found case
	        return nil, fmt.Errorf("user %s does not exist", "123")
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewNotFoundError("User", "123")
	err := errors.NewValidationError("email", "invalid format")
	err := errors.NewConditionFailedError("update", "version mismatch")
	err := errors.NewSchemaMismatchError("object type version 14", "object type version 15")

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors