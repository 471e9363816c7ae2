package errors

import "errors"

// ErrOptimisticLock signals that a row changed under a concurrent writer and
// the caller should re-read before retrying.
var ErrOptimisticLock = errors.New("record was modified by another operation")
