// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors. For example, ErrNotFound maps to an
// HTTP 404 for a missing product, while ErrEmailExists signals that a
// user insert hit the unique index on the email column.
package repository

import "errors"

// ErrNotFound is returned when the requested row does not exist or an
// update/delete affected no rows. Handlers translate this into an HTTP
// 404 (or 400 for product updates, matching the external contract).
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a user insert violates the unique email
// constraint. The constraint is enforced atomically by the database, so
// two concurrent registrations with the same email cannot both succeed.
var ErrEmailExists = errors.New("email already exists")
