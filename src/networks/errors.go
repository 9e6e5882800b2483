package networks

import "errors"

// ErrSchemaMismatch is returned when a delivered report does not carry the
// expected columns. Guessing column positions would silently corrupt the
// batch, so the whole window is aborted instead.
var ErrSchemaMismatch = errors.New("report schema mismatch")
