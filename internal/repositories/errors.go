package repositories

import "errors"

// ErrNotFound marks lookups for rows that do not exist, so handlers
// can answer 404 instead of treating the miss as a server fault.
var ErrNotFound = errors.New("record not found")
