package repositories

import "errors"

// ErrNotFound is wrapped by lookups that come back empty so callers can map
// missing records to a 404 without inspecting gorm internals.
var ErrNotFound = errors.New("not found")
