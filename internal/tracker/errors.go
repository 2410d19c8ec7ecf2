package tracker

import "errors"

// ErrNotFound indicates the referenced entity id does not exist. Lookups
// return it wrapped with the entity kind and id.
var ErrNotFound = errors.New("not found")
