package services

import "errors"

// ErrNotFound reports that no application exists with the requested id.
// Storage failures are returned as-is so callers can tell the two apart;
// validation failures come back as *validation.Error.
var ErrNotFound = errors.New("application not found")
