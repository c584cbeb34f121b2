package catalog

import "errors"

// ErrNotFound is returned by targeted writes and mutations when the addressed
// record does not exist. Read paths report absence as a nil result instead;
// callers distinguish the two with errors.Is.
var ErrNotFound = errors.New("record not found")
