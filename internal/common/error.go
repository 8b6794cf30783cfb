// Package common defines shared sentinel errors and small helpers used across
// the storage, repository and service layers of gophauth. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// Configuration errors.
	ErrorUnknownDriver = errors.New("unknown storage driver")
	ErrorUnknownScheme = errors.New("unknown hashing scheme")
)
